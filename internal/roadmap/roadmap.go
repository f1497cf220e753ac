/*
Package roadmap lays out a roadmap diagram: a title, a horizontally scaled
timeline, vertically stacked groups of tasks with milestones and parallel
tasks, an optional current-date marker and a footer.

Layout is a single pass in a fixed order. Each call computes the geometry of
one component from the geometry of the components before it:

	New → SetTitle → SetTimeline → BeginGroup/CommitGroup × N → SetFooter → Draw → Save

SetMarker may be called at any point before the groups are finalized. Calls
made out of order return a *PhaseError instead of producing half-computed
geometry.
*/
package roadmap

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"roadmapper/internal/painter"
)

// Option configures a Roadmap.
type Option func(*Roadmap)

// WithLayout overrides the geometry constants.
func WithLayout(l Layout) Option {
	return func(r *Roadmap) { r.layout = l }
}

// WithTheme overrides the default element styles.
func WithTheme(t Theme) Option {
	return func(r *Roadmap) { r.theme = t }
}

// WithClock sets the source of "today" used for defaulted dates.
func WithClock(now func() time.Time) Option {
	return func(r *Roadmap) { r.now = now }
}

// WithLogger sets the logger that receives layout diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Roadmap) { r.logger = l }
}

// WithValidation selects permissive or strict handling of degenerate dates.
func WithValidation(v ValidationMode) Option {
	return func(r *Roadmap) { r.validation = v }
}

// Roadmap owns the canvas and every laid out component.
type Roadmap struct {
	canvas     painter.Canvas
	layout     Layout
	theme      Theme
	now        func() time.Time
	logger     *slog.Logger
	validation ValidationMode

	phase    Phase
	title    *TextBlock
	timeline *Timeline
	groups   []*Group
	open     *Group
	marker   *Marker
	footer   *TextBlock

	nextY      float64 // origin of the next group
	lastBottom float64 // bottom of the last committed group, or of the timeline
}

// New creates a roadmap drawing on canvas and paints its background.
func New(canvas painter.Canvas, opts ...Option) *Roadmap {
	r := &Roadmap{
		canvas:     canvas,
		layout:     DefaultLayout(),
		theme:      DefaultTheme(),
		now:        time.Now,
		logger:     slog.New(slog.DiscardHandler),
		validation: ValidationPermissive,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.canvas.SetBackgroundColour(r.theme.Background)
	r.phase = PhaseInitialized
	return r
}

// Phase returns the current orchestrator phase.
func (r *Roadmap) Phase() Phase { return r.phase }

// Layout returns the spacing the roadmap was created with.
func (r *Roadmap) Layout() Layout { return r.layout }

// Title returns the title block, or nil when SetTitle was not called.
func (r *Roadmap) Title() *TextBlock { return r.title }

// Timeline returns the timeline, or nil before SetTimeline.
func (r *Roadmap) Timeline() *Timeline { return r.timeline }

// Groups returns the committed groups in layout order.
func (r *Roadmap) Groups() []*Group { return r.groups }

// Footer returns the footer block, or nil when SetFooter was not called.
func (r *Roadmap) Footer() *TextBlock { return r.footer }

// Marker returns the marker, or nil when none was configured.
func (r *Roadmap) Marker() *Marker { return r.marker }

func (r *Roadmap) require(op string, allowed ...Phase) error {
	for _, p := range allowed {
		if r.phase == p {
			return nil
		}
	}
	return &PhaseError{Op: op, Phase: r.phase}
}

// SetTitle places the title at a fixed offset from the canvas top. It must
// precede SetTimeline because the timeline starts below the title.
func (r *Roadmap) SetTitle(text string, style Style) error {
	if err := r.require("SetTitle", PhaseInitialized); err != nil {
		return err
	}
	r.title = newTextBlock(r.canvas, text, style.Or(r.theme.Title), r.layout.TitleTop, r.layout)
	r.phase = PhaseTitleSet
	r.logger.Debug("title placed", "text", text, "box", r.title.Box)
	return nil
}

// SetMarker enables the current-date marker. If the timeline is already set
// the label is placed immediately, otherwise SetTimeline places it.
func (r *Roadmap) SetMarker(cfg MarkerConfig) error {
	if err := r.require("SetMarker", PhaseInitialized, PhaseTitleSet, PhaseTimelineSet); err != nil {
		return err
	}
	date := cfg.Date
	if date.IsZero() {
		date = r.now()
	}
	date = day(date)
	if r.validation == ValidationStrict && r.timeline != nil && !r.timeline.Contains(date) {
		return fmt.Errorf("marker date %s outside timeline: %w", formatDate(date), ErrOutOfRange)
	}
	label := cfg.Label
	if label == "" {
		label = formatDate(date)
	}
	r.marker = &Marker{
		Date:  date,
		Label: label,
		Style: cfg.Style.Or(r.theme.Marker),
		Line:  cfg.Line.Or(r.theme.MarkerLine),
	}
	if r.timeline != nil {
		r.marker.layoutLabel(r.timeline, r.layout)
	}
	return nil
}

// SetTimeline partitions the usable width into count items of the given
// mode starting at the calendar period containing start. A zero start means
// today, resolved at call time.
func (r *Roadmap) SetTimeline(mode Mode, start time.Time, count int, style Style) error {
	if err := r.require("SetTimeline", PhaseInitialized, PhaseTitleSet); err != nil {
		return err
	}
	if !mode.valid() {
		return fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
	if count <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidItemCount, count)
	}
	if start.IsZero() {
		start = r.now()
	}

	l := r.layout
	top := l.TitleTop + l.TitleGap
	if r.title != nil {
		top = r.title.Box.Bottom() + l.TitleGap
	}
	width := float64(r.canvas.Width()) - l.MarginLeft - l.MarginRight
	r.timeline = newTimeline(mode, start, count, l.MarginLeft, top, width, l.TimelineHeight, style.Or(r.theme.Timeline), l.TextPadding)

	if r.marker != nil {
		if r.validation == ValidationStrict && !r.timeline.Contains(r.marker.Date) {
			r.timeline = nil
			return fmt.Errorf("marker date %s outside timeline: %w", formatDate(r.marker.Date), ErrOutOfRange)
		}
		r.marker.layoutLabel(r.timeline, l)
	}

	r.lastBottom = r.timeline.Bottom()
	r.nextY = r.lastBottom + l.GroupGap
	r.phase = PhaseTimelineSet
	r.logger.Debug("timeline placed",
		"mode", string(mode), "start", formatDate(r.timeline.Start), "items", count,
		"x", r.timeline.X(), "width", r.timeline.Width())
	return nil
}

// BeginGroup appends a new group and returns it for population. The group
// is laid out by CommitGroup; only one group may be open at a time.
func (r *Roadmap) BeginGroup(text string, style Style) (*Group, error) {
	if err := r.require("BeginGroup", PhaseTimelineSet); err != nil {
		return nil, err
	}
	if r.open != nil {
		return nil, fmt.Errorf("group %q: %w", r.open.Text, ErrGroupOpen)
	}
	g := &Group{Text: text, Style: style.Or(r.theme.Group), rm: r}
	r.groups = append(r.groups, g)
	r.open = g
	return g, nil
}

// CommitGroup lays out g directly below the previous group (plus the
// configured gap). It must be the group returned by the last BeginGroup.
func (r *Roadmap) CommitGroup(g *Group) error {
	if err := r.require("CommitGroup", PhaseTimelineSet); err != nil {
		return err
	}
	if g == nil || g != r.open {
		if g != nil && g.committed {
			return fmt.Errorf("group %q: %w", g.Text, ErrGroupCommitted)
		}
		return ErrGroupNotOpen
	}
	bottom := g.layout(r.timeline, r.nextY, r.layout)
	r.open = nil
	r.lastBottom = bottom
	r.nextY = bottom + r.layout.GroupGap
	r.logger.Debug("group placed", "text", g.Text, "tasks", len(g.Tasks), "box", g.Box)
	return nil
}

// AddGroup begins a group, hands it to fill and commits it afterwards, even
// when fill fails. fill's error is returned after the commit.
func (r *Roadmap) AddGroup(text string, style Style, fill func(*Group) error) (err error) {
	g, err := r.BeginGroup(text, style)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.CommitGroup(g); err == nil {
			err = cerr
		}
	}()
	return fill(g)
}

// SetFooter finalizes the groups, stretches the marker line down to the last
// group and places the footer below everything drawn so far.
func (r *Roadmap) SetFooter(text string, style Style) error {
	if err := r.require("SetFooter", PhaseTimelineSet); err != nil {
		return err
	}
	if err := r.finalize(); err != nil {
		return err
	}
	bottom := r.lastBottom
	if r.marker != nil {
		bottom = math.Max(bottom, r.marker.LineTo.Y)
	}
	top := bottom + r.layout.FooterGap
	r.footer = newTextBlock(r.canvas, text, style.Or(r.theme.Footer), top, r.layout)
	r.logger.Debug("footer placed", "text", text, "box", r.footer.Box)
	return nil
}

func (r *Roadmap) finalize() error {
	if r.open != nil {
		return fmt.Errorf("group %q: %w", r.open.Text, ErrGroupOpen)
	}
	if r.marker != nil {
		r.marker.layoutLine(r.timeline, r.lastBottom)
		r.logger.Debug("marker placed", "date", formatDate(r.marker.Date), "from", r.marker.LineFrom, "to", r.marker.LineTo)
	}
	r.phase = PhaseGroupsFinalized
	return nil
}

// Draw issues the drawing primitives top to bottom: title, timeline, groups,
// marker, footer. If no footer was set, the groups are finalized first.
func (r *Roadmap) Draw() error {
	if err := r.require("Draw", PhaseTimelineSet, PhaseGroupsFinalized); err != nil {
		return err
	}
	if r.phase == PhaseTimelineSet {
		if err := r.finalize(); err != nil {
			return err
		}
	}
	if r.title != nil {
		r.title.draw(r.canvas)
	}
	r.timeline.draw(r.canvas, r.theme.Background)
	for _, g := range r.groups {
		g.draw(r.canvas)
	}
	if r.marker != nil {
		r.marker.draw(r.canvas)
	}
	if r.footer != nil {
		r.footer.draw(r.canvas)
	}
	r.phase = PhaseRendered
	return nil
}

// Save persists the rendered canvas to path.
func (r *Roadmap) Save(path string) error {
	if err := r.require("Save", PhaseRendered); err != nil {
		return err
	}
	if err := r.canvas.Save(path); err != nil {
		return err
	}
	r.phase = PhaseSaved
	r.logger.Debug("roadmap saved", "path", path)
	return nil
}
