package painter

import "fmt"

// Call is one captured drawing primitive.
type Call struct {
	Op     string // background, rectangle, diamond, text, line, save
	Box    Rect
	From   Point
	To     Point
	Text   string
	Font   Font
	Align  Alignment
	Fill   string
	Stroke string
	Width  float64
	Style  LineStyle
	Path   string
}

// String formats the call for test failure messages.
func (c Call) String() string {
	switch c.Op {
	case "rectangle", "diamond":
		return fmt.Sprintf("%s %v %s", c.Op, c.Box, c.Fill)
	case "text":
		return fmt.Sprintf("text %q at (%.2f, %.2f) %s", c.Text, c.From.X, c.From.Y, c.Align)
	case "line":
		return fmt.Sprintf("line (%.2f, %.2f)-(%.2f, %.2f) %s", c.From.X, c.From.Y, c.To.X, c.To.Y, c.Style)
	}
	return c.Op
}

// Recorder is a Canvas that records every call in order. Text is measured
// with EstimateText. It backs dry runs and layout tests.
type Recorder struct {
	W, H  int
	Calls []Call
}

// NewRecorder creates a recorder for a canvas of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{W: width, H: height}
}

// Width returns the canvas width in pixels.
func (r *Recorder) Width() int { return r.W }

// Height returns the canvas height in pixels.
func (r *Recorder) Height() int { return r.H }

// MeasureText estimates the text box from the font size.
func (r *Recorder) MeasureText(text string, font Font) (w, h float64) {
	return EstimateText(text, font.Size)
}

// SetBackgroundColour records a background call.
func (r *Recorder) SetBackgroundColour(colour string) {
	r.Calls = append(r.Calls, Call{Op: "background", Fill: colour})
}

// DrawRectangle records a rectangle call.
func (r *Recorder) DrawRectangle(box Rect, fill string, border Border) {
	r.Calls = append(r.Calls, Call{Op: "rectangle", Box: box, Fill: fill, Stroke: border.Colour, Width: border.Width})
}

// DrawDiamond records a diamond call.
func (r *Recorder) DrawDiamond(box Rect, fill, stroke string) {
	r.Calls = append(r.Calls, Call{Op: "diamond", Box: box, Fill: fill, Stroke: stroke})
}

// DrawText records a text call.
func (r *Recorder) DrawText(at Point, text string, font Font, align Alignment) {
	r.Calls = append(r.Calls, Call{Op: "text", From: at, Text: text, Font: font, Align: align})
}

// DrawLine records a line call.
func (r *Recorder) DrawLine(from, to Point, colour string, width float64, style LineStyle) {
	r.Calls = append(r.Calls, Call{Op: "line", From: from, To: to, Stroke: colour, Width: width, Style: style})
}

// Save records a save call and writes nothing.
func (r *Recorder) Save(path string) error {
	r.Calls = append(r.Calls, Call{Op: "save", Path: path})
	return nil
}

// Ops returns the operation names in call order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}
