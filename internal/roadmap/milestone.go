package roadmap

import (
	"time"

	"roadmapper/internal/painter"
)

// Milestone is a single date drawn as a diamond on its owning task's row.
// Milestones sharing a date are drawn on top of each other.
type Milestone struct {
	Text    string
	Date    time.Time
	Style   Style
	Diamond painter.Rect
	TextAt  painter.Point
}

// Center returns the diamond centre.
func (m *Milestone) Center() painter.Point { return m.Diamond.Center() }

func (m *Milestone) layout(tl *Timeline, taskBox painter.Rect, l Layout) {
	cx := tl.Project(m.Date)
	cy := taskBox.Y + taskBox.H/2
	size := l.MilestoneSize
	m.Diamond = painter.Rect{X: cx - size/2, Y: cy - size/2, W: size, H: size}
	m.TextAt = painter.Point{X: m.Diamond.Right() + l.MilestoneLabelGap, Y: cy}
}

func (m *Milestone) draw(c painter.Canvas) {
	c.DrawDiamond(m.Diamond, m.Style.Fill, m.Style.FontColour)
	if m.Text != "" {
		c.DrawText(m.TextAt, m.Text, m.Style.font(), painter.AlignLeft)
	}
}
