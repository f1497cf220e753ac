package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"roadmapper/internal/config"
	"roadmapper/internal/definition"
	"roadmapper/internal/logging"
	"roadmapper/internal/painter"
	"roadmapper/internal/roadmap"
)

// App holds the process environment the commands run against.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	// IsInteractive reports whether Stdout is a terminal; styled output is
	// only used when it is.
	IsInteractive func() bool
}

// NewApp returns an App wired to the real process streams and clock.
func NewApp() *App {
	return &App{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Now:           time.Now,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
}

// inputFlags are shared by every command that builds a roadmap.
type inputFlags struct {
	file       string
	csv        string
	config     string
	debug      bool
	logLevel   string
	logFormat  string
	strict     bool
	title      string
	mode       string
	start      string
	items      int
	markerDate string
}

// NewRootCmd creates the top-level "roadmapper" command and registers its
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	in := &inputFlags{}
	root := &cobra.Command{
		Use:           "roadmapper",
		Short:         "Lay out and render roadmap diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&in.file, "file", "f", "", "YAML roadmap definition")
	pf.StringVar(&in.csv, "csv", "", "CSV file with groups, tasks and milestones")
	pf.StringVarP(&in.config, "config", "c", "", "YAML configuration file (optional)")
	pf.BoolVar(&in.debug, "debug", false, "Enable debug mode for verbose output")
	pf.StringVar(&in.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&in.logFormat, "log-format", "text", "Log format: text or json")
	pf.BoolVar(&in.strict, "strict", false, "Reject dates outside the timeline")
	pf.StringVar(&in.title, "title", "", "Override the roadmap title")
	pf.StringVar(&in.mode, "mode", "", "Override the timeline mode")
	pf.StringVar(&in.start, "start", "", "Override the timeline start date (YYYY-MM-DD)")
	pf.IntVar(&in.items, "items", 0, "Override the number of timeline items")
	pf.StringVar(&in.markerDate, "marker", "", "Show the current-date marker at this date (YYYY-MM-DD, or \"today\")")

	root.AddCommand(
		newRenderCmd(app, in),
		newPrintCmd(app, in),
	)
	return root
}

// build loads the configuration and definition named by in and lays the
// roadmap out on the canvas returned by newCanvas.
func build(app *App, in *inputFlags, newCanvas func(w, h int, logger *slog.Logger) (painter.Canvas, error)) (*roadmap.Roadmap, error) {
	logger, err := logging.New(logging.Options{
		Level:  in.logLevel,
		Format: logging.Format(in.logFormat),
		Debug:  in.debug,
		Output: app.Stderr,
	})
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(in.config)
	if err != nil {
		return nil, err
	}
	if in.strict {
		cfg.Validation = roadmap.ValidationStrict
	}
	logger.Debug("configuration loaded", "path", in.config, "canvas_width", cfg.Canvas.Width, "canvas_height", cfg.Canvas.Height, "validation", cfg.Validation)

	doc, err := loadDocument(in)
	if err != nil {
		return nil, err
	}
	logger.Debug("definition loaded", "file", in.file, "csv", in.csv, "groups", len(doc.Groups))

	canvas, err := newCanvas(cfg.Canvas.Width, cfg.Canvas.Height, logger)
	if err != nil {
		return nil, err
	}
	opts := append(cfg.Options(), roadmap.WithLogger(logger), roadmap.WithClock(app.Now))
	rm := roadmap.New(canvas, opts...)
	if err := definition.Build(doc, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func loadDocument(in *inputFlags) (*definition.Document, error) {
	if in.file == "" && in.csv == "" {
		return nil, fmt.Errorf("no input: pass --file or --csv")
	}
	doc := &definition.Document{}
	if in.file != "" {
		var err error
		if doc, err = definition.Load(in.file); err != nil {
			return nil, err
		}
	}
	if in.csv != "" {
		groups, err := definition.ReadCSV(in.csv)
		if err != nil {
			return nil, err
		}
		doc.Groups = append(doc.Groups, groups...)
	}

	if in.title != "" {
		if doc.Title == nil {
			doc.Title = &definition.TextDef{}
		}
		doc.Title.Text = in.title
	}
	if in.mode != "" {
		doc.Timeline.Mode = in.mode
	}
	if in.start != "" {
		doc.Timeline.Start = in.start
	}
	if in.items != 0 {
		doc.Timeline.Items = in.items
	}
	if in.markerDate != "" {
		if doc.Marker == nil {
			doc.Marker = &definition.MarkerDef{}
		}
		enabled := true
		doc.Marker.Enabled = &enabled
		doc.Marker.Date = in.markerDate
		if in.markerDate == "today" {
			doc.Marker.Date = ""
		}
	}
	return doc, nil
}
