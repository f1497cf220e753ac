/*
Package config loads the rendering configuration: canvas size, layout
constants, default element styles and the validation mode.

Configuration files are YAML and are applied on top of DefaultConfig, so a
file only needs to name the values it changes:

	canvas:
	  width: 1600
	layout:
	  task_row_height: 30
	theme:
	  task:
	    fill_colour: "#8ec07c"
	validation: strict
*/
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"roadmapper/internal/painter"
	"roadmapper/internal/roadmap"
)

// Config represents the complete configuration for roadmap rendering.
type Config struct {
	Canvas struct {
		Width  int `yaml:"width"`  // Canvas width in pixels
		Height int `yaml:"height"` // Canvas height in pixels
	} `yaml:"canvas"`
	Layout     roadmap.Layout         `yaml:"layout"`
	Theme      roadmap.Theme          `yaml:"theme"`
	Validation roadmap.ValidationMode `yaml:"validation"` // "permissive" or "strict"
}

// DefaultConfig returns the configuration used when no file is given:
// a 1200x600 white canvas with the built-in layout and theme.
func DefaultConfig() Config {
	var cfg Config
	cfg.Canvas.Width = 1200
	cfg.Canvas.Height = 600
	cfg.Layout = roadmap.DefaultLayout()
	cfg.Theme = roadmap.DefaultTheme()
	cfg.Validation = roadmap.ValidationPermissive
	return cfg
}

// Load reads configuration from a YAML file, or returns the defaults when
// path is empty.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values a YAML file can set to something unusable.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas: width and height must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Layout.MarginLeft+c.Layout.MarginRight >= float64(c.Canvas.Width) {
		errs = append(errs, fmt.Errorf("layout: margins leave no room for the timeline"))
	}
	if c.Layout.TaskRowHeight <= 0 || c.Layout.TimelineHeight <= 0 {
		errs = append(errs, fmt.Errorf("layout: task_row_height and timeline_height must be positive"))
	}
	switch c.Validation {
	case roadmap.ValidationPermissive, roadmap.ValidationStrict:
	default:
		errs = append(errs, fmt.Errorf("validation: unknown mode %q (expected permissive or strict)", c.Validation))
	}
	if _, err := painter.ParseLineStyle(c.Theme.MarkerLine.Style); err != nil {
		errs = append(errs, fmt.Errorf("theme.marker_line: %w", err))
	}
	for name, s := range map[string]roadmap.Style{
		"title": c.Theme.Title, "timeline": c.Theme.Timeline, "group": c.Theme.Group,
		"task": c.Theme.Task, "milestone": c.Theme.Milestone, "marker": c.Theme.Marker,
		"footer": c.Theme.Footer,
	} {
		if _, err := painter.ParseAlignment(s.Alignment); err != nil {
			errs = append(errs, fmt.Errorf("theme.%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Options returns the roadmap options this configuration implies.
func (c Config) Options() []roadmap.Option {
	return []roadmap.Option{
		roadmap.WithLayout(c.Layout),
		roadmap.WithTheme(c.Theme),
		roadmap.WithValidation(c.Validation),
	}
}
