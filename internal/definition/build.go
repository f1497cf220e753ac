package definition

import (
	"fmt"
	"time"

	"roadmapper/internal/roadmap"
)

// Build replays the document against rm: title, marker, timeline, each
// group, then footer. Drawing and saving are left to the caller.
func Build(doc *Document, rm *roadmap.Roadmap) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.Title != nil {
		if err := rm.SetTitle(doc.Title.Text, doc.Title.Style); err != nil {
			return err
		}
	}

	if m := doc.Marker; m != nil && (m.Enabled == nil || *m.Enabled) {
		cfg := roadmap.MarkerConfig{Label: m.Label, Style: m.Style, Line: m.Line}
		if m.Date != "" {
			cfg.Date = mustDate(m.Date)
		}
		if err := rm.SetMarker(cfg); err != nil {
			return err
		}
	}

	mode := roadmap.ModeMonthly
	if doc.Timeline.Mode != "" {
		mode, _ = roadmap.ParseMode(doc.Timeline.Mode)
	}
	var start time.Time
	if doc.Timeline.Start != "" {
		start = mustDate(doc.Timeline.Start)
	}
	items := doc.Timeline.Items
	if items == 0 {
		items = DefaultItems
	}
	if err := rm.SetTimeline(mode, start, items, doc.Timeline.Style); err != nil {
		return err
	}

	for _, gd := range doc.Groups {
		err := rm.AddGroup(gd.Text, gd.Style, func(g *roadmap.Group) error {
			for _, td := range gd.Tasks {
				t, err := g.AddTask(td.Text, mustDate(td.Start), mustDate(td.End), td.Style)
				if err != nil {
					return err
				}
				if err := fillTask(t, td); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("group %q: %w", gd.Text, err)
		}
	}

	if doc.Footer != nil {
		if err := rm.SetFooter(doc.Footer.Text, doc.Footer.Style); err != nil {
			return err
		}
	}
	return nil
}

func fillTask(t *roadmap.Task, td TaskDef) error {
	for _, md := range td.Milestones {
		if _, err := t.AddMilestone(md.Text, mustDate(md.Date), md.Style); err != nil {
			return err
		}
	}
	for _, cd := range td.Tasks {
		child, err := t.AddParallelTask(cd.Text, mustDate(cd.Start), mustDate(cd.End), cd.Style)
		if err != nil {
			return err
		}
		if err := fillTask(child, cd); err != nil {
			return err
		}
	}
	return nil
}

// mustDate parses a date that Validate has already accepted.
func mustDate(s string) time.Time {
	d, err := roadmap.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
