package roadmap

import (
	"sort"
	"time"

	"roadmapper/internal/painter"
)

// TimelineItem is one labelled period box along the horizontal axis.
// The period covers [Start, End).
type TimelineItem struct {
	Text   string
	Value  int
	Start  time.Time
	End    time.Time
	Box    painter.Rect
	TextAt painter.Point
}

// Timeline partitions the usable canvas width into equal-width period boxes
// and owns the date to x projection used by every temporal element.
type Timeline struct {
	Mode  Mode
	Start time.Time
	Style Style
	Items []TimelineItem

	x, width float64
}

// newTimeline computes item periods and boxes. start is aligned to the
// beginning of its calendar period; x and width give the usable span, y and
// height the item row.
func newTimeline(mode Mode, start time.Time, count int, x, y, width, height float64, style Style, padding float64) *Timeline {
	t := &Timeline{Mode: mode, Start: mode.align(start), Style: style, x: x, width: width}
	itemWidth := width / float64(count)
	align := style.alignment()

	periodStart := t.Start
	for i := 0; i < count; i++ {
		periodEnd := mode.next(periodStart)
		text, value := mode.label(periodStart)
		box := painter.Rect{X: x + float64(i)*itemWidth, Y: y, W: itemWidth, H: height}
		t.Items = append(t.Items, TimelineItem{
			Text:   text,
			Value:  value,
			Start:  periodStart,
			End:    periodEnd,
			Box:    box,
			TextAt: anchor(box, align, padding),
		})
		periodStart = periodEnd
	}
	return t
}

// X returns the left edge of the usable span.
func (t *Timeline) X() float64 { return t.x }

// Width returns the usable span width.
func (t *Timeline) Width() float64 { return t.width }

// Top returns the y coordinate of the item row's top edge.
func (t *Timeline) Top() float64 { return t.Items[0].Box.Y }

// Bottom returns the y coordinate of the item row's bottom edge.
func (t *Timeline) Bottom() float64 { return t.Items[0].Box.Bottom() }

// RangeStart returns the first day covered by the timeline.
func (t *Timeline) RangeStart() time.Time { return t.Items[0].Start }

// RangeEnd returns the first day after the timeline.
func (t *Timeline) RangeEnd() time.Time { return t.Items[len(t.Items)-1].End }

// Contains reports whether d falls inside [RangeStart, RangeEnd].
func (t *Timeline) Contains(d time.Time) bool {
	d = day(d)
	return !d.Before(t.RangeStart()) && !d.After(t.RangeEnd())
}

// Project maps a date to an x coordinate. The item whose period contains d
// is located and d is interpolated linearly within its box by the elapsed
// fraction of the period. A date on a boundary maps to the start of the
// later item, which is the same x as the end of the earlier one.
//
// Dates outside the timeline are not rejected: they are extrapolated from
// the first or last item and may land outside the canvas.
func (t *Timeline) Project(d time.Time) float64 {
	d = day(d)
	i := sort.Search(len(t.Items), func(i int) bool {
		return t.Items[i].End.After(d)
	})
	if i == len(t.Items) {
		i = len(t.Items) - 1
	}
	item := t.Items[i]
	frac := float64(d.Sub(item.Start)) / float64(item.End.Sub(item.Start))
	return item.Box.X + item.Box.W*frac
}

func (t *Timeline) draw(c painter.Canvas, background string) {
	for _, item := range t.Items {
		c.DrawRectangle(item.Box, t.Style.Fill, painter.Border{Colour: background, Width: 1})
		c.DrawText(item.TextAt, item.Text, t.Style.font(), t.Style.alignment())
	}
}
