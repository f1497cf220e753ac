package roadmap

import "roadmapper/internal/painter"

// TextBlock is a single line of text at a fixed position: the title or the
// footer.
type TextBlock struct {
	Text   string
	Style  Style
	Box    painter.Rect
	TextAt painter.Point
}

// newTextBlock measures text and places it with its top edge at top,
// aligned horizontally across the canvas width.
func newTextBlock(c painter.Canvas, text string, style Style, top float64, l Layout) *TextBlock {
	w, h := c.MeasureText(text, style.font())
	cw := float64(c.Width())

	var x float64
	switch style.alignment() {
	case painter.AlignLeft:
		x = l.MarginLeft
	case painter.AlignRight:
		x = cw - l.MarginRight - w
	default:
		x = (cw - w) / 2
	}
	box := painter.Rect{X: x, Y: top, W: w, H: h}
	return &TextBlock{
		Text:   text,
		Style:  style,
		Box:    box,
		TextAt: painter.Point{X: x, Y: top + h/2},
	}
}

func (b *TextBlock) draw(c painter.Canvas) {
	c.DrawText(b.TextAt, b.Text, b.Style.font(), painter.AlignLeft)
}
