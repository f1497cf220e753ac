package painter

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// SVG is a Canvas that accumulates SVG elements in memory and writes the
// document on Save. Text is measured with EstimateText.
type SVG struct {
	width, height int
	background    string
	body          strings.Builder
}

// NewSVG creates an empty SVG canvas with a white background.
func NewSVG(width, height int) *SVG {
	return &SVG{width: width, height: height, background: "#ffffff"}
}

// Width returns the canvas width in pixels.
func (s *SVG) Width() int { return s.width }

// Height returns the canvas height in pixels.
func (s *SVG) Height() int { return s.height }

// MeasureText estimates the text box from the font size.
func (s *SVG) MeasureText(text string, font Font) (w, h float64) {
	return EstimateText(text, font.Size)
}

// SetBackgroundColour sets the fill of the full-canvas background rect.
func (s *SVG) SetBackgroundColour(colour string) {
	s.background = ColourHex(colour)
}

// DrawRectangle appends a rect element, stroked only when border has a width.
func (s *SVG) DrawRectangle(box Rect, fill string, border Border) {
	stroke := ""
	if border.Width > 0 {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="%s"`, ColourHex(border.Colour), num(border.Width))
	}
	s.body.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`,
		num(box.X), num(box.Y), num(box.W), num(box.H), ColourHex(fill), stroke))
	s.body.WriteByte('\n')
}

// DrawDiamond draws the diamond as a rotated square polygon inscribed in box.
func (s *SVG) DrawDiamond(box Rect, fill, stroke string) {
	c := box.Center()
	s.body.WriteString(fmt.Sprintf(`<polygon points="%s,%s %s,%s %s,%s %s,%s" fill="%s" stroke="%s" stroke-width="1"/>`,
		num(c.X), num(box.Y), // top
		num(box.Right()), num(c.Y), // right
		num(c.X), num(box.Bottom()), // bottom
		num(box.X), num(c.Y), // left
		ColourHex(fill), ColourHex(stroke)))
	s.body.WriteByte('\n')
}

// DrawText appends a text element anchored at at according to align.
func (s *SVG) DrawText(at Point, text string, font Font, align Alignment) {
	anchor := "middle"
	switch align {
	case AlignLeft:
		anchor = "start"
	case AlignRight:
		anchor = "end"
	}
	s.body.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" font-family="%s" font-size="%s" fill="%s">%s</text>`,
		num(at.X), num(at.Y), anchor, escapeXML(font.Family), num(font.Size), ColourHex(font.Colour), escapeXML(text)))
	s.body.WriteByte('\n')
}

// DrawLine appends a line element with a dash pattern for style.
func (s *SVG) DrawLine(from, to Point, colour string, width float64, style LineStyle) {
	dash := ""
	if pattern := dashPattern(style); pattern != nil {
		parts := make([]string, len(pattern))
		for i, v := range pattern {
			parts[i] = num(v)
		}
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	s.body.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"%s/>`,
		num(from.X), num(from.Y), num(to.X), num(to.Y), ColourHex(colour), num(width), dash))
	s.body.WriteByte('\n')
}

// String returns the complete SVG document.
func (s *SVG) String() string {
	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.background))
	svg.WriteString(s.body.String())
	svg.WriteString("</svg>\n")
	return svg.String()
}

// Save writes the SVG document to path.
func (s *SVG) Save(path string) error {
	if err := os.WriteFile(path, []byte(s.String()), 0644); err != nil {
		return fmt.Errorf("error writing SVG file: %w", err)
	}
	return nil
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// escapeXML escapes special XML characters in a string to ensure valid SVG output.
// It replaces XML special characters (&, <, >, ", ') with their corresponding
// XML entity references (&amp;, &lt;, &gt;, &quot;, &apos;) to prevent
// malformed XML when the string is embedded in SVG content.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
