package roadmap

import (
	"fmt"
	"time"

	"roadmapper/internal/painter"
)

// Task is a labelled interval projected onto the timeline. Parallel tasks
// are nested tasks stacked in rows directly below their parent.
type Task struct {
	Text       string
	Start      time.Time
	End        time.Time
	Style      Style
	Box        painter.Rect
	TextAt     painter.Point
	Milestones []*Milestone
	Tasks      []*Task

	group  *Group
	height float64
}

// AddMilestone attaches a milestone to the task.
func (t *Task) AddMilestone(text string, date time.Time, style Style) (*Milestone, error) {
	if err := t.group.editable(); err != nil {
		return nil, err
	}
	date = day(date)
	rm := t.group.rm
	if rm.validation == ValidationStrict {
		if date.Before(t.Start) || date.After(t.End) {
			return nil, fmt.Errorf("milestone %q on %s outside task %q (%s..%s): %w",
				text, formatDate(date), t.Text, formatDate(t.Start), formatDate(t.End), ErrOutOfRange)
		}
	}
	m := &Milestone{Text: text, Date: date, Style: style.Or(rm.theme.Milestone)}
	t.Milestones = append(t.Milestones, m)
	return m, nil
}

// AddParallelTask nests a task under t. It is drawn in its own row below t.
func (t *Task) AddParallelTask(text string, start, end time.Time, style Style) (*Task, error) {
	if err := t.group.editable(); err != nil {
		return nil, err
	}
	child, err := t.group.newTask(text, start, end, style)
	if err != nil {
		return nil, err
	}
	t.Tasks = append(t.Tasks, child)
	return child, nil
}

// Height returns the vertical space consumed by the task and all of its
// parallel tasks. It is zero until the owning group is committed.
func (t *Task) Height() float64 { return t.height }

// layout places the task row at rowY, then its milestones, then each
// parallel task below it, recursively. It returns the total height used.
func (t *Task) layout(tl *Timeline, rowY float64, l Layout) float64 {
	x0 := tl.Project(t.Start)
	x1 := tl.Project(t.End)
	t.Box = painter.Rect{X: x0, Y: rowY, W: x1 - x0, H: l.TaskRowHeight}
	t.TextAt = anchor(t.Box, t.Style.alignment(), l.TextPadding)

	for _, m := range t.Milestones {
		m.layout(tl, t.Box, l)
	}

	t.height = l.TaskRowHeight
	y := t.Box.Bottom()
	for _, child := range t.Tasks {
		h := child.layout(tl, y, l)
		y += h
		t.height += h
	}
	return t.height
}

func (t *Task) draw(c painter.Canvas) {
	c.DrawRectangle(t.Box, t.Style.Fill, painter.Border{})
	c.DrawText(t.TextAt, t.Text, t.Style.font(), t.Style.alignment())
	for _, m := range t.Milestones {
		m.draw(c)
	}
	for _, child := range t.Tasks {
		child.draw(c)
	}
}
