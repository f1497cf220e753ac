package roadmap

import (
	"roadmapper/internal/painter"
)

// Layout holds the fixed geometry constants, in pixels.
type Layout struct {
	MarginLeft         float64 `yaml:"margin_left"`          // Left edge of the timeline and groups
	MarginRight        float64 `yaml:"margin_right"`         // Space kept free right of the timeline
	TitleTop           float64 `yaml:"title_top"`            // Offset of the title from the canvas top
	TitleGap           float64 `yaml:"title_gap"`            // Space between title bottom and timeline top; holds the marker label
	TimelineHeight     float64 `yaml:"timeline_height"`      // Height of every timeline item box
	GroupHeaderHeight  float64 `yaml:"group_header_height"`  // Band at the top of a group holding its label
	GroupBottomPadding float64 `yaml:"group_bottom_padding"` // Space below the last task row of a group
	GroupGap           float64 `yaml:"group_gap"`            // Space between consecutive groups and above the first one
	TaskRowHeight      float64 `yaml:"task_row_height"`      // Height of one task or parallel task row
	MilestoneSize      float64 `yaml:"milestone_size"`       // Width and height of the milestone diamond
	MilestoneLabelGap  float64 `yaml:"milestone_label_gap"`  // Gap between the diamond and its label
	MarkerLabelGap     float64 `yaml:"marker_label_gap"`     // Distance from timeline top up to the marker label centre
	FooterGap          float64 `yaml:"footer_gap"`           // Space between the lowest drawn item and the footer
	TextPadding        float64 `yaml:"text_padding"`         // Inset of left/right aligned text inside boxes
}

// DefaultLayout returns the layout used when no configuration overrides it.
func DefaultLayout() Layout {
	return Layout{
		MarginLeft:         20,
		MarginRight:        20,
		TitleTop:           10,
		TitleGap:           30,
		TimelineHeight:     30,
		GroupHeaderHeight:  24,
		GroupBottomPadding: 6,
		GroupGap:           5,
		TaskRowHeight:      24,
		MilestoneSize:      16,
		MilestoneLabelGap:  4,
		MarkerLabelGap:     12,
		FooterGap:          20,
		TextPadding:        4,
	}
}

// Style carries the opaque visual attributes of one element. Empty fields
// fall back to the theme default for that element kind.
type Style struct {
	Font       string  `yaml:"font"`
	FontSize   float64 `yaml:"font_size"`
	FontColour string  `yaml:"font_colour"`
	Fill       string  `yaml:"fill_colour"`
	Alignment  string  `yaml:"text_alignment"`
}

// Or fills the empty fields of s from def.
func (s Style) Or(def Style) Style {
	if s.Font == "" {
		s.Font = def.Font
	}
	if s.FontSize == 0 {
		s.FontSize = def.FontSize
	}
	if s.FontColour == "" {
		s.FontColour = def.FontColour
	}
	if s.Fill == "" {
		s.Fill = def.Fill
	}
	if s.Alignment == "" {
		s.Alignment = def.Alignment
	}
	return s
}

func (s Style) font() painter.Font {
	return painter.Font{Family: s.Font, Size: s.FontSize, Colour: s.FontColour}
}

func (s Style) alignment() painter.Alignment {
	a, err := painter.ParseAlignment(s.Alignment)
	if err != nil {
		return painter.AlignCentre
	}
	return a
}

// LineAttrs styles the marker line.
type LineAttrs struct {
	Colour string  `yaml:"colour"`
	Width  float64 `yaml:"width"`
	Style  string  `yaml:"style"`
}

// Or fills the empty fields of l from def.
func (l LineAttrs) Or(def LineAttrs) LineAttrs {
	if l.Colour == "" {
		l.Colour = def.Colour
	}
	if l.Width == 0 {
		l.Width = def.Width
	}
	if l.Style == "" {
		l.Style = def.Style
	}
	return l
}

// Theme holds the default style of every element kind.
type Theme struct {
	Background string    `yaml:"background"`
	Title      Style     `yaml:"title"`
	Timeline   Style     `yaml:"timeline"`
	Group      Style     `yaml:"group"`
	Task       Style     `yaml:"task"`
	Milestone  Style     `yaml:"milestone"`
	Marker     Style     `yaml:"marker"`
	MarkerLine LineAttrs `yaml:"marker_line"`
	Footer     Style     `yaml:"footer"`
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	return Theme{
		Background: "White",
		Title:      Style{Font: "Arial", FontSize: 18, FontColour: "Black", Alignment: "centre"},
		Timeline:   Style{Font: "Arial", FontSize: 10, FontColour: "Black", Fill: "LightGrey", Alignment: "centre"},
		Group:      Style{Font: "Arial", FontSize: 10, FontColour: "Black", Fill: "LightGrey", Alignment: "left"},
		Task:       Style{Font: "Arial", FontSize: 12, FontColour: "Black", Fill: "LightGreen", Alignment: "centre"},
		Milestone:  Style{Font: "Arial", FontSize: 10, FontColour: "Red", Fill: "Red", Alignment: "left"},
		Marker:     Style{Font: "Arial", FontSize: 10, FontColour: "Black", Alignment: "centre"},
		MarkerLine: LineAttrs{Colour: "Black", Width: 2, Style: "dashed"},
		Footer:     Style{Font: "Arial", FontSize: 12, FontColour: "Black", Alignment: "centre"},
	}
}

// anchor returns the text anchor for a box given the alignment.
func anchor(box painter.Rect, align painter.Alignment, padding float64) painter.Point {
	y := box.Y + box.H/2
	switch align {
	case painter.AlignLeft:
		return painter.Point{X: box.X + padding, Y: y}
	case painter.AlignRight:
		return painter.Point{X: box.Right() - padding, Y: y}
	}
	return painter.Point{X: box.X + box.W/2, Y: y}
}
