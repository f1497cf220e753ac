package painter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// PNG is a raster Canvas backed by a gg context. Text is set in Go Regular
// regardless of the requested family, so measurements match what is drawn.
//
// Drawing methods have no error return; the first failure is kept and
// reported by Save.
type PNG struct {
	ctx    *gg.Context
	source *text.FontSource
	faces  map[float64]text.Face
	err    error
}

// NewPNG creates a white raster canvas of the given size. A nil logger keeps
// gg silent.
func NewPNG(width, height int, logger *slog.Logger) (*PNG, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading embedded font: %w", err)
	}
	gg.SetLogger(logger)
	ctx := gg.NewContext(width, height)
	ctx.ClearWithColor(gg.White)
	return &PNG{ctx: ctx, source: source, faces: make(map[float64]text.Face)}, nil
}

// Width returns the canvas width in pixels.
func (p *PNG) Width() int { return p.ctx.Width() }

// Height returns the canvas height in pixels.
func (p *PNG) Height() int { return p.ctx.Height() }

// face returns the cached face for size, creating it on first use.
func (p *PNG) face(size float64) text.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := p.source.Face(size)
	p.faces[size] = f
	return f
}

// MeasureText returns the advance width and line height of text.
func (p *PNG) MeasureText(s string, font Font) (w, h float64) {
	return text.Measure(s, p.face(font.Size))
}

// SetBackgroundColour clears the whole canvas to colour.
func (p *PNG) SetBackgroundColour(colour string) {
	c, err := ResolveColour(colour)
	if err != nil {
		p.keep(err)
		return
	}
	p.ctx.ClearWithColor(gg.FromColor(c))
}

// DrawRectangle fills box, then strokes it when border has a width.
func (p *PNG) DrawRectangle(box Rect, fill string, border Border) {
	if !p.setColour(fill) {
		return
	}
	p.ctx.DrawRectangle(box.X, box.Y, box.W, box.H)
	p.keep(p.ctx.Fill())
	if border.Width <= 0 || !p.setColour(border.Colour) {
		return
	}
	p.ctx.SetLineWidth(border.Width)
	p.ctx.DrawRectangle(box.X, box.Y, box.W, box.H)
	p.keep(p.ctx.Stroke())
}

// DrawDiamond fills and strokes the diamond inscribed in box.
func (p *PNG) DrawDiamond(box Rect, fill, stroke string) {
	c := box.Center()
	path := func() {
		p.ctx.MoveTo(c.X, box.Y)
		p.ctx.LineTo(box.Right(), c.Y)
		p.ctx.LineTo(c.X, box.Bottom())
		p.ctx.LineTo(box.X, c.Y)
		p.ctx.ClosePath()
	}
	if !p.setColour(fill) {
		return
	}
	path()
	p.keep(p.ctx.Fill())
	if !p.setColour(stroke) {
		return
	}
	p.ctx.SetLineWidth(1)
	path()
	p.keep(p.ctx.Stroke())
}

// DrawText draws s with its box vertically centred on at.Y.
func (p *PNG) DrawText(at Point, s string, font Font, align Alignment) {
	if s == "" || !p.setColour(font.Colour) {
		return
	}
	face := p.face(font.Size)
	w, _ := text.Measure(s, face)
	x := at.X
	switch align {
	case AlignCentre:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	// Place the baseline so the ascent/descent box is centred on at.Y.
	m := face.Metrics()
	baseline := at.Y + (m.Ascent-m.Descent)/2
	p.ctx.SetFont(face)
	p.ctx.DrawString(s, x, baseline)
}

// DrawLine strokes a line with the dash pattern for style.
func (p *PNG) DrawLine(from, to Point, colour string, width float64, style LineStyle) {
	if !p.setColour(colour) {
		return
	}
	p.ctx.SetLineWidth(width)
	if pattern := dashPattern(style); pattern != nil {
		p.ctx.SetDash(pattern...)
		defer p.ctx.ClearDash()
	}
	p.ctx.DrawLine(from.X, from.Y, to.X, to.Y)
	p.keep(p.ctx.Stroke())
}

// Save encodes the canvas as PNG. It reports the first drawing error, if any,
// joined with the encoding error.
func (p *PNG) Save(path string) error {
	err := p.ctx.SavePNG(path)
	if err != nil {
		err = fmt.Errorf("error writing PNG file: %w", err)
	}
	return errors.Join(p.err, err)
}

// Close releases the font source and the drawing context.
func (p *PNG) Close() error {
	return errors.Join(p.source.Close(), p.ctx.Close())
}

func (p *PNG) setColour(name string) bool {
	c, err := ResolveColour(name)
	if err != nil {
		p.keep(err)
		return false
	}
	p.ctx.SetColor(c)
	return true
}

func (p *PNG) keep(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}
