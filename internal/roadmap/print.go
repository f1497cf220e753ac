package roadmap

import (
	"fmt"
	"io"
	"strings"
)

// PrintArea selects which part of the geometry Print writes.
type PrintArea string

const (
	PrintAll      PrintArea = "all"
	PrintTitle    PrintArea = "title"
	PrintTimeline PrintArea = "timeline"
	PrintGroups   PrintArea = "groups"
	PrintMarker   PrintArea = "marker"
	PrintFooter   PrintArea = "footer"
)

// ParsePrintArea validates a print area name. An empty name means all.
func ParsePrintArea(s string) (PrintArea, error) {
	switch a := PrintArea(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return PrintAll, nil
	case PrintAll, PrintTitle, PrintTimeline, PrintGroups, PrintMarker, PrintFooter:
		return a, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownArea, s)
}

const (
	dash  = "─"
	space = " "
)

// Print writes the computed geometry as indented lines. Components that
// were never configured (title, marker, footer) are skipped; the timeline
// and groups require SetTimeline and no open group, and a configured marker
// requires the groups to be finalized so its line has been stretched.
func (r *Roadmap) Print(w io.Writer, area PrintArea) error {
	if _, err := ParsePrintArea(string(area)); err != nil {
		return err
	}
	want := func(a PrintArea) bool { return area == PrintAll || area == a }

	if (want(PrintTimeline) || want(PrintGroups)) && r.timeline == nil {
		return &PhaseError{Op: "Print", Phase: r.phase}
	}
	if want(PrintGroups) && r.open != nil {
		return fmt.Errorf("group %q: %w", r.open.Text, ErrGroupOpen)
	}
	if want(PrintMarker) && r.marker != nil && r.phase < PhaseGroupsFinalized {
		return &PhaseError{Op: "Print", Phase: r.phase}
	}

	p := &printer{w: w}
	if want(PrintTitle) && r.title != nil {
		p.line("Title: %s, x=%s, y=%s, w=%s, h=%s",
			r.title.Text, f2(r.title.Box.X), f2(r.title.Box.Y), f2(r.title.Box.W), f2(r.title.Box.H))
	}
	if want(PrintTimeline) {
		for _, item := range r.timeline.Items {
			p.line("Timeline: %s, value=%d, start=%s, end=%s, box_x=%s, box_y=%s, box_w=%s, box_h=%s, text_x=%s, text_y=%s",
				item.Text, item.Value, formatDate(item.Start), formatDate(item.End),
				f2(item.Box.X), f2(item.Box.Y), f2(item.Box.W), f2(item.Box.H),
				f2(item.TextAt.X), f2(item.TextAt.Y))
		}
	}
	if want(PrintGroups) {
		for _, g := range r.groups {
			p.line("Group: %s, x=%s, y=%s, w=%s, h=%s",
				g.Text, f2(g.Box.X), f2(g.Box.Y), f2(g.Box.W), f2(g.Box.H))
			for _, t := range g.Tasks {
				p.task(t, 0, "")
			}
		}
	}
	if want(PrintMarker) && r.marker != nil {
		m := r.marker
		p.line("Marker: %s, date=%s, label_x=%s, label_y=%s, line_x=%s, line_y1=%s, line_y2=%s",
			m.Label, formatDate(m.Date), f2(m.LabelAt.X), f2(m.LabelAt.Y),
			f2(m.LineFrom.X), f2(m.LineFrom.Y), f2(m.LineTo.Y))
	}
	if want(PrintFooter) && r.footer != nil {
		p.line("Footer: %s, x=%s, y=%s, w=%s, h=%s",
			r.footer.Text, f2(r.footer.Box.X), f2(r.footer.Box.Y), f2(r.footer.Box.W), f2(r.footer.Box.H))
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// task prints t and its subtree. depth 0 is a group's direct task.
func (p *printer) task(t *Task, depth int, prefix string) {
	var indent string
	switch depth {
	case 0:
		p.line("└%s%s, start=%s, end=%s, x=%s, y=%s, w=%s, h=%s",
			strings.Repeat(dash, 8), t.Text, formatDate(t.Start), formatDate(t.End),
			f2(t.Box.X), f2(t.Box.Y), f2(t.Box.W), f2(t.Box.H))
		indent = strings.Repeat(space, 9)
	default:
		p.line("%s└%sParallel Task: %s, start=%s, end=%s, x=%s, y=%s, w=%s, h=%s",
			prefix, strings.Repeat(dash, 4), t.Text, formatDate(t.Start), formatDate(t.End),
			f2(t.Box.X), f2(t.Box.Y), f2(t.Box.W), f2(t.Box.H))
		indent = prefix + strings.Repeat(space, 5)
	}
	for _, m := range t.Milestones {
		c := m.Center()
		p.line("%s├%s%s, date=%s, x=%s, y=%s, w=%s, h=%s, font_colour=%s, fill_colour=%s",
			indent, strings.Repeat(dash, 4), m.Text, formatDate(m.Date),
			f2(c.X), f2(c.Y), f2(m.Diamond.W), f2(m.Diamond.H), m.Style.FontColour, m.Style.Fill)
	}
	for _, child := range t.Tasks {
		p.task(child, depth+1, indent)
	}
}

func f2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
