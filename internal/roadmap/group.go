package roadmap

import (
	"fmt"
	"time"

	"roadmapper/internal/painter"
)

// Group is a labelled band spanning the timeline width that stacks its
// tasks vertically. Obtain one with Roadmap.BeginGroup, populate it, then
// hand it back to Roadmap.CommitGroup, which lays it out exactly once.
type Group struct {
	Text   string
	Style  Style
	Box    painter.Rect
	TextAt painter.Point
	Tasks  []*Task

	rm        *Roadmap
	committed bool
}

// Committed reports whether the group has been laid out.
func (g *Group) Committed() bool { return g.committed }

// AddTask appends a task row to the group.
func (g *Group) AddTask(text string, start, end time.Time, style Style) (*Task, error) {
	if err := g.editable(); err != nil {
		return nil, err
	}
	t, err := g.newTask(text, start, end, style)
	if err != nil {
		return nil, err
	}
	g.Tasks = append(g.Tasks, t)
	return t, nil
}

func (g *Group) editable() error {
	if g.committed {
		return fmt.Errorf("group %q: %w", g.Text, ErrGroupCommitted)
	}
	return nil
}

func (g *Group) newTask(text string, start, end time.Time, style Style) (*Task, error) {
	start, end = day(start), day(end)
	if start.After(end) {
		return nil, fmt.Errorf("task %q: start %s after end %s: %w",
			text, formatDate(start), formatDate(end), ErrInvalidRange)
	}
	if g.rm.validation == ValidationStrict {
		if start.Equal(end) {
			return nil, fmt.Errorf("task %q: zero-length range on %s: %w", text, formatDate(start), ErrInvalidRange)
		}
		tl := g.rm.timeline
		if !tl.Contains(start) || !tl.Contains(end) {
			return nil, fmt.Errorf("task %q: %s..%s outside timeline %s..%s: %w",
				text, formatDate(start), formatDate(end),
				formatDate(tl.RangeStart()), formatDate(tl.RangeEnd()), ErrOutOfRange)
		}
	}
	return &Task{
		Text:  text,
		Start: start,
		End:   end,
		Style: style.Or(g.rm.theme.Task),
		group: g,
	}, nil
}

// layout stacks the tasks below the header band starting at originY and
// returns the y coordinate of the group's bottom edge.
func (g *Group) layout(tl *Timeline, originY float64, l Layout) float64 {
	rowY := originY + l.GroupHeaderHeight
	var tasksHeight float64
	for _, t := range g.Tasks {
		h := t.layout(tl, rowY, l)
		rowY += h
		tasksHeight += h
	}
	g.Box = painter.Rect{
		X: tl.X(),
		Y: originY,
		W: tl.Width(),
		H: l.GroupHeaderHeight + tasksHeight + l.GroupBottomPadding,
	}
	header := painter.Rect{X: g.Box.X, Y: g.Box.Y, W: g.Box.W, H: l.GroupHeaderHeight}
	g.TextAt = anchor(header, g.Style.alignment(), l.TextPadding)
	g.committed = true
	return g.Box.Bottom()
}

func (g *Group) draw(c painter.Canvas) {
	c.DrawRectangle(g.Box, g.Style.Fill, painter.Border{})
	c.DrawText(g.TextAt, g.Text, g.Style.font(), g.Style.alignment())
	for _, t := range g.Tasks {
		t.draw(c)
	}
}
