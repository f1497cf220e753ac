/*
Package painter defines the drawing primitives the roadmap layout engine
consumes and ships the backends that implement them: an SVG writer, a PNG
rasteriser built on gogpu/gg, and a Recorder that captures calls.

All coordinates are canvas pixels with the origin at the top-left corner.
Colours are opaque strings (HTML colour names or hex codes) resolved by each
backend.
*/
package painter

import (
	"fmt"
	"strings"
)

// Point is a canvas position.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the box.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Alignment controls horizontal text placement relative to an anchor.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCentre Alignment = "centre"
	AlignRight  Alignment = "right"
)

// ParseAlignment accepts left, centre/center and right, case-insensitively.
// An empty string yields AlignCentre.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AlignCentre, nil
	case "left":
		return AlignLeft, nil
	case "centre", "center":
		return AlignCentre, nil
	case "right":
		return AlignRight, nil
	}
	return "", fmt.Errorf("unknown text alignment %q (expected left, centre or right)", s)
}

// LineStyle is the stroke pattern of a line.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// ParseLineStyle accepts solid, dashed and dotted. An empty string yields LineSolid.
func ParseLineStyle(s string) (LineStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return LineSolid, nil
	case "dashed":
		return LineDashed, nil
	case "dotted":
		return LineDotted, nil
	}
	return "", fmt.Errorf("unknown line style %q (expected solid, dashed or dotted)", s)
}

// dashPattern returns alternating dash/gap lengths for style, nil for solid.
func dashPattern(style LineStyle) []float64 {
	switch style {
	case LineDashed:
		return []float64{6, 4}
	case LineDotted:
		return []float64{2, 3}
	}
	return nil
}

// Font is the text style handed to DrawText and MeasureText.
type Font struct {
	Family string
	Size   float64
	Colour string
}

// Border describes a rectangle outline. A zero Width draws no outline.
type Border struct {
	Colour string
	Width  float64
}

// Canvas is the drawing-primitive contract. Implementations own the surface
// they draw on; the layout engine never inspects pixels.
//
// DrawText anchors the text at the given point: X is the left edge, centre
// or right edge depending on align, Y is the vertical middle of the line.
type Canvas interface {
	Width() int
	Height() int
	MeasureText(text string, font Font) (w, h float64)
	SetBackgroundColour(colour string)
	DrawRectangle(box Rect, fill string, border Border)
	DrawDiamond(box Rect, fill, stroke string)
	DrawText(at Point, text string, font Font, align Alignment)
	DrawLine(from, to Point, colour string, width float64, style LineStyle)
	Save(path string) error
}
