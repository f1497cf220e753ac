/*
Package definition reads roadmap definitions and replays them against a
roadmap.Roadmap in the order its phases require.

A definition is a YAML document:

	title:
	  text: Product roadmap
	timeline:
	  mode: monthly
	  start: 2024-01-01
	  items: 6
	marker:
	  date: 2024-03-15
	groups:
	  - text: Platform
	    tasks:
	      - text: Storage rewrite
	        start: 2024-01-15
	        end: 2024-03-31
	        milestones:
	          - text: Beta
	            date: 2024-02-15
	        parallel_tasks:
	          - text: Migration tooling
	            start: 2024-02-01
	            end: 2024-03-15
	footer:
	  text: Draft

Groups can also be read from CSV with ParseCSV.
*/
package definition

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"roadmapper/internal/painter"
	"roadmapper/internal/roadmap"
)

// DefaultItems is the number of timeline items used when a definition
// does not set one.
const DefaultItems = 12

type Document struct {
	Title    *TextDef    `yaml:"title"`
	Timeline TimelineDef `yaml:"timeline"`
	Marker   *MarkerDef  `yaml:"marker"`
	Groups   []GroupDef  `yaml:"groups"`
	Footer   *TextDef    `yaml:"footer"`
}

type TextDef struct {
	Text  string        `yaml:"text"`
	Style roadmap.Style `yaml:",inline"`
}

type TimelineDef struct {
	Mode  string        `yaml:"mode"`  // daily, weekly, monthly, quarterly, half_yearly, yearly
	Start string        `yaml:"start"` // YYYY-MM-DD; empty means today
	Items int           `yaml:"items"` // number of periods; 0 means DefaultItems
	Style roadmap.Style `yaml:",inline"`
}

type MarkerDef struct {
	Enabled *bool             `yaml:"enabled"` // nil counts as enabled
	Date    string            `yaml:"date"`    // YYYY-MM-DD; empty means today
	Label   string            `yaml:"label"`
	Style   roadmap.Style     `yaml:",inline"`
	Line    roadmap.LineAttrs `yaml:"line"`
}

type GroupDef struct {
	Text  string        `yaml:"text"`
	Style roadmap.Style `yaml:",inline"`
	Tasks []TaskDef     `yaml:"tasks"`
}

type TaskDef struct {
	Text       string         `yaml:"text"`
	Start      string         `yaml:"start"`
	End        string         `yaml:"end"`
	Style      roadmap.Style  `yaml:",inline"`
	Milestones []MilestoneDef `yaml:"milestones"`
	Tasks      []TaskDef      `yaml:"parallel_tasks"`
}

type MilestoneDef struct {
	Text  string        `yaml:"text"`
	Date  string        `yaml:"date"`
	Style roadmap.Style `yaml:",inline"`
}

// Load reads and validates a YAML definition file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading definition file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a YAML definition.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing definition: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks every date, the timeline mode, the item count and the
// alignment and line style names, and returns all problems found joined
// into one error.
func (d *Document) Validate() error {
	var errs []error
	if d.Title != nil {
		errs = appendStyle(errs, "title", d.Title.Style)
	}
	errs = appendStyle(errs, "timeline", d.Timeline.Style)
	if d.Footer != nil {
		errs = appendStyle(errs, "footer", d.Footer.Style)
	}
	if d.Timeline.Mode != "" {
		if _, err := roadmap.ParseMode(d.Timeline.Mode); err != nil {
			errs = append(errs, fmt.Errorf("timeline.mode: %w", err))
		}
	}
	if d.Timeline.Start != "" {
		if _, err := roadmap.ParseDate(d.Timeline.Start); err != nil {
			errs = append(errs, fmt.Errorf("timeline.start: %w", err))
		}
	}
	if d.Timeline.Items < 0 {
		errs = append(errs, fmt.Errorf("timeline.items: %w: got %d", roadmap.ErrInvalidItemCount, d.Timeline.Items))
	}
	if d.Marker != nil {
		if d.Marker.Date != "" {
			if _, err := roadmap.ParseDate(d.Marker.Date); err != nil {
				errs = append(errs, fmt.Errorf("marker.date: %w", err))
			}
		}
		errs = appendStyle(errs, "marker", d.Marker.Style)
		if _, err := painter.ParseLineStyle(d.Marker.Line.Style); err != nil {
			errs = append(errs, fmt.Errorf("marker.line: %w", err))
		}
	}
	for i, g := range d.Groups {
		errs = appendStyle(errs, fmt.Sprintf("groups[%d]", i), g.Style)
		for j, t := range g.Tasks {
			errs = append(errs, validateTask(fmt.Sprintf("groups[%d].tasks[%d]", i, j), t)...)
		}
	}
	return errors.Join(errs...)
}

func validateTask(path string, t TaskDef) []error {
	errs := appendStyle(nil, path, t.Style)
	start, serr := roadmap.ParseDate(t.Start)
	if serr != nil {
		errs = append(errs, fmt.Errorf("%s.start: %w", path, serr))
	}
	end, eerr := roadmap.ParseDate(t.End)
	if eerr != nil {
		errs = append(errs, fmt.Errorf("%s.end: %w", path, eerr))
	}
	if serr == nil && eerr == nil && start.After(end) {
		errs = append(errs, fmt.Errorf("%s: start %s after end %s: %w", path, t.Start, t.End, roadmap.ErrInvalidRange))
	}
	for i, m := range t.Milestones {
		if _, err := roadmap.ParseDate(m.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.milestones[%d].date: %w", path, i, err))
		}
		errs = appendStyle(errs, fmt.Sprintf("%s.milestones[%d]", path, i), m.Style)
	}
	for i, child := range t.Tasks {
		errs = append(errs, validateTask(fmt.Sprintf("%s.parallel_tasks[%d]", path, i), child)...)
	}
	return errs
}

// appendStyle adds an error for an unknown text alignment in s.
func appendStyle(errs []error, path string, s roadmap.Style) []error {
	if _, err := painter.ParseAlignment(s.Alignment); err != nil {
		errs = append(errs, fmt.Errorf("%s.text_alignment: %w", path, err))
	}
	return errs
}
