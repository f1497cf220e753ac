package painter

import "unicode/utf8"

// EstimateText returns an approximate bounding box for a single line of text.
// It uses conservative estimates with an average character width of
// 0.7 * size and a line height of 1.5 * size, so it needs no font files and
// is stable across machines.
func EstimateText(text string, size float64) (w, h float64) {
	if text == "" {
		return 0, 0
	}
	avgCharWidth := size * 0.7
	lineHeight := size * 1.5
	return float64(utf8.RuneCountInString(text)) * avgCharWidth, lineHeight
}
