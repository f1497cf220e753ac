package cli

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired palette.
var (
	colorGreen = lipgloss.Color("#8ec07c")
	colorDim   = lipgloss.Color("#928374")
	colorFg    = lipgloss.Color("#ebdbb2")
)

type styles struct {
	success lipgloss.Style
	bold    lipgloss.Style
	dim     lipgloss.Style
}

// newStyles returns the output styles; when color is false every style
// renders its input unchanged.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{success: plain, bold: plain, dim: plain}
	}
	return styles{
		success: lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
		bold:    lipgloss.NewStyle().Foreground(colorFg).Bold(true),
		dim:     lipgloss.NewStyle().Foreground(colorDim),
	}
}
