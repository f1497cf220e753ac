package roadmap

import (
	"time"

	"roadmapper/internal/painter"
)

// Marker is the "current date" indicator: a label above the timeline and a
// vertical line from the timeline bottom to the bottom of the last group.
//
// The label is placed as soon as the timeline exists; the line only once all
// groups are committed, because its length depends on them.
type Marker struct {
	Date     time.Time
	Label    string
	Style    Style
	Line     LineAttrs
	LabelAt  painter.Point
	LineFrom painter.Point
	LineTo   painter.Point
}

// MarkerConfig configures Roadmap.SetMarker. A zero Date means today,
// resolved when SetMarker is called; an empty Label shows the date.
type MarkerConfig struct {
	Date  time.Time
	Label string
	Style Style
	Line  LineAttrs
}

func (m *Marker) layoutLabel(tl *Timeline, l Layout) {
	m.LabelAt = painter.Point{X: tl.Project(m.Date), Y: tl.Top() - l.MarkerLabelGap}
}

func (m *Marker) layoutLine(tl *Timeline, bottom float64) {
	x := m.LabelAt.X
	m.LineFrom = painter.Point{X: x, Y: tl.Bottom()}
	m.LineTo = painter.Point{X: x, Y: bottom}
}

func (m *Marker) draw(c painter.Canvas) {
	c.DrawText(m.LabelAt, m.Label, m.Style.font(), painter.AlignCentre)
	style, err := painter.ParseLineStyle(m.Line.Style)
	if err != nil {
		style = painter.LineDashed
	}
	c.DrawLine(m.LineFrom, m.LineTo, m.Line.Colour, m.Line.Width, style)
}
