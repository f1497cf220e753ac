package roadmap

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadmapper/internal/painter"
)

var fixedNow = time.Date(2024, time.February, 10, 15, 4, 5, 0, time.UTC)

func newTestRoadmap(t *testing.T, opts ...Option) (*Roadmap, *painter.Recorder) {
	t.Helper()
	rec := painter.NewRecorder(1000, 600)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	rm := New(rec, opts...)
	require.Equal(t, PhaseInitialized, rm.Phase())
	return rm, rec
}

// withTimeline returns a roadmap titled "Roadmap" with three months from
// January 2024.
func withTimeline(t *testing.T, opts ...Option) (*Roadmap, *painter.Recorder) {
	t.Helper()
	rm, rec := newTestRoadmap(t, opts...)
	require.NoError(t, rm.SetTitle("Roadmap", Style{}))
	require.NoError(t, rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{}))
	return rm, rec
}

func TestTitleAndTimelinePlacement(t *testing.T) {
	rm, _ := withTimeline(t)
	l := rm.Layout()

	title := rm.Title()
	require.NotNil(t, title)
	assert.InDelta(t, 7*0.7*18, title.Box.W, 1e-9)
	assert.InDelta(t, (1000-title.Box.W)/2, title.Box.X, 1e-9)
	assert.Equal(t, l.TitleTop, title.Box.Y)

	tl := rm.Timeline()
	require.NotNil(t, tl)
	assert.InDelta(t, title.Box.Bottom()+l.TitleGap, tl.Top(), 1e-9)
	assert.Equal(t, l.MarginLeft, tl.X())
	assert.Equal(t, 1000-l.MarginLeft-l.MarginRight, tl.Width())
	assert.Equal(t, PhaseTimelineSet, rm.Phase())
}

func TestTimelineWithoutTitle(t *testing.T) {
	rm, _ := newTestRoadmap(t)
	require.NoError(t, rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{}))
	l := rm.Layout()
	assert.Equal(t, l.TitleTop+l.TitleGap, rm.Timeline().Top())
}

func TestTimelineDefaultsStartToClock(t *testing.T) {
	rm, _ := newTestRoadmap(t)
	require.NoError(t, rm.SetTimeline(ModeMonthly, time.Time{}, 2, Style{}))
	assert.Equal(t, date(t, "2024-02-01"), rm.Timeline().RangeStart())
}

func TestSetTimelineRejectsBadArguments(t *testing.T) {
	rm, _ := newTestRoadmap(t)
	err := rm.SetTimeline(Mode("fortnightly"), date(t, "2024-01-01"), 3, Style{})
	assert.ErrorIs(t, err, ErrUnknownMode)

	err = rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 0, Style{})
	assert.ErrorIs(t, err, ErrInvalidItemCount)
	assert.Equal(t, PhaseInitialized, rm.Phase())
}

func TestTaskSpansInterpolatedDates(t *testing.T) {
	rm, _ := withTimeline(t)
	var task *Task
	require.NoError(t, rm.AddGroup("Platform", Style{}, func(g *Group) error {
		var err error
		task, err = g.AddTask("Storage", date(t, "2024-01-15"), date(t, "2024-02-15"), Style{})
		return err
	}))

	x0 := 20 + 320*14.0/31
	x1 := 340 + 320*14.0/29
	assert.InDelta(t, x0, task.Box.X, 1e-9)
	assert.InDelta(t, x1, task.Box.Right(), 1e-9)
	assert.Equal(t, rm.Layout().TaskRowHeight, task.Box.H)
	assert.Equal(t, "LightGreen", task.Style.Fill, "task style falls back to the theme")
}

func TestGroupHeightAndStacking(t *testing.T) {
	for _, gap := range []float64{0, 5, 12} {
		l := DefaultLayout()
		l.GroupGap = gap
		rm, _ := withTimeline(t, WithLayout(l))

		var groups []*Group
		for _, name := range []string{"First", "Second"} {
			g, err := rm.BeginGroup(name, Style{})
			require.NoError(t, err)
			_, err = g.AddTask(name+" task", date(t, "2024-01-10"), date(t, "2024-02-10"), Style{})
			require.NoError(t, err)
			require.NoError(t, rm.CommitGroup(g))
			groups = append(groups, g)
		}

		first, second := groups[0], groups[1]
		assert.Equal(t, l.GroupHeaderHeight+l.TaskRowHeight+l.GroupBottomPadding, first.Box.H)
		assert.Equal(t, rm.Timeline().Bottom()+gap, first.Box.Y)
		assert.Equal(t, first.Box.Y+first.Box.H+gap, second.Box.Y, "gap %v", gap)
		assert.Equal(t, rm.Timeline().X(), first.Box.X)
		assert.Equal(t, rm.Timeline().Width(), first.Box.W)
		assert.Equal(t, first.Box.Y+first.Box.H, first.Tasks[0].Box.Bottom()+l.GroupBottomPadding)
	}
}

func TestEmptyGroupHeight(t *testing.T) {
	rm, _ := withTimeline(t)
	require.NoError(t, rm.AddGroup("Empty", Style{}, func(*Group) error { return nil }))
	l := rm.Layout()
	assert.Equal(t, l.GroupHeaderHeight+l.GroupBottomPadding, rm.Groups()[0].Box.H)
}

func TestParallelTasksStackBelowParent(t *testing.T) {
	rm, _ := withTimeline(t)
	var parent, child, grandchild *Task
	require.NoError(t, rm.AddGroup("Platform", Style{}, func(g *Group) error {
		var err error
		if parent, err = g.AddTask("Parent", date(t, "2024-01-01"), date(t, "2024-03-01"), Style{}); err != nil {
			return err
		}
		if child, err = parent.AddParallelTask("Child", date(t, "2024-01-15"), date(t, "2024-02-01"), Style{}); err != nil {
			return err
		}
		grandchild, err = child.AddParallelTask("Grandchild", date(t, "2024-01-20"), date(t, "2024-01-25"), Style{})
		return err
	}))

	row := rm.Layout().TaskRowHeight
	assert.Equal(t, parent.Box.Bottom(), child.Box.Y)
	assert.Equal(t, child.Box.Bottom(), grandchild.Box.Y)
	assert.Equal(t, 3*row, parent.Height())
	assert.Equal(t, 2*row, child.Height())

	g := rm.Groups()[0]
	l := rm.Layout()
	assert.Equal(t, l.GroupHeaderHeight+3*row+l.GroupBottomPadding, g.Box.H)
}

func TestMilestonePlacement(t *testing.T) {
	for _, row := range []float64{10, 20, 25, 33} {
		l := DefaultLayout()
		l.TaskRowHeight = row
		rm, _ := withTimeline(t, WithLayout(l))

		var task, child *Task
		var ms, childMs *Milestone
		require.NoError(t, rm.AddGroup("Platform", Style{}, func(g *Group) error {
			var err error
			if task, err = g.AddTask("Storage", date(t, "2024-01-15"), date(t, "2024-03-15"), Style{}); err != nil {
				return err
			}
			if ms, err = task.AddMilestone("Beta", date(t, "2024-02-01"), Style{}); err != nil {
				return err
			}
			if child, err = task.AddParallelTask("Migration", date(t, "2024-01-20"), date(t, "2024-03-01"), Style{}); err != nil {
				return err
			}
			childMs, err = child.AddMilestone("Cutover", date(t, "2024-02-10"), Style{})
			return err
		}))

		c := ms.Center()
		assert.InDelta(t, 340, c.X, 1e-9, "row %v", row)
		assert.InDelta(t, task.Box.Y+row/2, c.Y, 1e-9, "row %v", row)
		assert.Equal(t, l.MilestoneSize, ms.Diamond.W)
		assert.Equal(t, ms.Diamond.Right()+l.MilestoneLabelGap, ms.TextAt.X)
		assert.Equal(t, "Red", ms.Style.Fill)

		cc := childMs.Center()
		assert.InDelta(t, rm.Timeline().Project(date(t, "2024-02-10")), cc.X, 1e-9, "row %v", row)
		assert.InDelta(t, child.Box.Y+row/2, cc.Y, 1e-9, "row %v", row)
		assert.InDelta(t, c.Y+row, cc.Y, 1e-9, "row %v", row)
	}
}

func TestMarker(t *testing.T) {
	t.Run("label placed at timeline and line spans groups", func(t *testing.T) {
		rm, _ := newTestRoadmap(t)
		require.NoError(t, rm.SetMarker(MarkerConfig{Date: date(t, "2024-02-01")}))
		require.NoError(t, rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{}))
		for _, name := range []string{"A", "B"} {
			require.NoError(t, rm.AddGroup(name, Style{}, func(g *Group) error {
				_, err := g.AddTask(name, date(t, "2024-01-01"), date(t, "2024-02-01"), Style{})
				return err
			}))
		}
		require.NoError(t, rm.SetFooter("Draft", Style{}))

		m := rm.Marker()
		require.NotNil(t, m)
		tl := rm.Timeline()
		assert.Equal(t, "2024-02-01", m.Label)
		assert.InDelta(t, 340, m.LabelAt.X, 1e-9)
		assert.Equal(t, tl.Top()-rm.Layout().MarkerLabelGap, m.LabelAt.Y)
		assert.Equal(t, m.LabelAt.X, m.LineFrom.X)
		assert.Equal(t, m.LineFrom.X, m.LineTo.X)
		assert.Equal(t, tl.Bottom(), m.LineFrom.Y)
		assert.Equal(t, rm.Groups()[1].Box.Bottom(), m.LineTo.Y)
		assert.Equal(t, m.LineTo.Y+rm.Layout().FooterGap, rm.Footer().Box.Y)
		assert.Equal(t, "dashed", m.Line.Style)
	})

	t.Run("defaults to clock date", func(t *testing.T) {
		rm, _ := withTimeline(t)
		require.NoError(t, rm.SetMarker(MarkerConfig{Label: "Today"}))
		assert.Equal(t, date(t, "2024-02-10"), rm.Marker().Date)
		assert.Equal(t, "Today", rm.Marker().Label)
		assert.InDelta(t, rm.Timeline().Project(date(t, "2024-02-10")), rm.Marker().LabelAt.X, 1e-9)
	})

	t.Run("without groups the line ends at the timeline", func(t *testing.T) {
		rm, _ := withTimeline(t)
		require.NoError(t, rm.SetMarker(MarkerConfig{Date: date(t, "2024-01-10")}))
		require.NoError(t, rm.Draw())
		m := rm.Marker()
		assert.Equal(t, m.LineFrom.Y, m.LineTo.Y)
	})

	t.Run("absent unless set", func(t *testing.T) {
		rm, _ := withTimeline(t)
		assert.Nil(t, rm.Marker())
	})
}

func TestFooterWithoutGroups(t *testing.T) {
	rm, _ := withTimeline(t)
	require.NoError(t, rm.SetFooter("Draft", Style{}))
	assert.Equal(t, rm.Timeline().Bottom()+rm.Layout().FooterGap, rm.Footer().Box.Y)
	assert.Equal(t, PhaseGroupsFinalized, rm.Phase())
}

func TestPhaseOrdering(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, rm *Roadmap) error
	}{
		{"footer before timeline", func(t *testing.T, rm *Roadmap) error {
			return rm.SetFooter("x", Style{})
		}},
		{"group before timeline", func(t *testing.T, rm *Roadmap) error {
			_, err := rm.BeginGroup("x", Style{})
			return err
		}},
		{"draw before timeline", func(t *testing.T, rm *Roadmap) error {
			return rm.Draw()
		}},
		{"save before draw", func(t *testing.T, rm *Roadmap) error {
			require.NoError(t, rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{}))
			return rm.Save("out.svg")
		}},
		{"title after timeline", func(t *testing.T, rm *Roadmap) error {
			require.NoError(t, rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{}))
			return rm.SetTitle("late", Style{})
		}},
		{"timeline twice", func(t *testing.T, rm *Roadmap) error {
			require.NoError(t, rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{}))
			return rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{})
		}},
		{"group after footer", func(t *testing.T, rm *Roadmap) error {
			require.NoError(t, rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{}))
			require.NoError(t, rm.SetFooter("x", Style{}))
			_, err := rm.BeginGroup("x", Style{})
			return err
		}},
		{"marker after footer", func(t *testing.T, rm *Roadmap) error {
			require.NoError(t, rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{}))
			require.NoError(t, rm.SetFooter("x", Style{}))
			return rm.SetMarker(MarkerConfig{})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm, _ := newTestRoadmap(t)
			err := tt.run(t, rm)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPhase)
			var pe *PhaseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestGroupContract(t *testing.T) {
	t.Run("one open group at a time", func(t *testing.T) {
		rm, _ := withTimeline(t)
		_, err := rm.BeginGroup("A", Style{})
		require.NoError(t, err)
		_, err = rm.BeginGroup("B", Style{})
		assert.ErrorIs(t, err, ErrGroupOpen)
	})

	t.Run("footer refuses an open group", func(t *testing.T) {
		rm, _ := withTimeline(t)
		_, err := rm.BeginGroup("A", Style{})
		require.NoError(t, err)
		assert.ErrorIs(t, rm.SetFooter("x", Style{}), ErrGroupOpen)
		assert.ErrorIs(t, rm.Draw(), ErrGroupOpen)
	})

	t.Run("commit twice", func(t *testing.T) {
		rm, _ := withTimeline(t)
		g, err := rm.BeginGroup("A", Style{})
		require.NoError(t, err)
		require.NoError(t, rm.CommitGroup(g))
		assert.ErrorIs(t, rm.CommitGroup(g), ErrGroupCommitted)
		_, err = g.AddTask("late", date(t, "2024-01-01"), date(t, "2024-01-02"), Style{})
		assert.ErrorIs(t, err, ErrGroupCommitted)
	})

	t.Run("commit without begin", func(t *testing.T) {
		rm, _ := withTimeline(t)
		assert.ErrorIs(t, rm.CommitGroup(nil), ErrGroupNotOpen)
	})

	t.Run("AddGroup commits when fill fails", func(t *testing.T) {
		rm, _ := withTimeline(t)
		boom := errors.New("boom")
		err := rm.AddGroup("A", Style{}, func(g *Group) error {
			_, err := g.AddTask("ok", date(t, "2024-01-01"), date(t, "2024-01-10"), Style{})
			require.NoError(t, err)
			return boom
		})
		assert.ErrorIs(t, err, boom)
		require.Len(t, rm.Groups(), 1)
		assert.True(t, rm.Groups()[0].Committed())
		require.NoError(t, rm.AddGroup("B", Style{}, func(*Group) error { return nil }))
	})
}

func TestTaskValidation(t *testing.T) {
	tests := []struct {
		name       string
		validation ValidationMode
		start, end string
		wantErr    error
	}{
		{"reversed range permissive", ValidationPermissive, "2024-02-01", "2024-01-01", ErrInvalidRange},
		{"reversed range strict", ValidationStrict, "2024-02-01", "2024-01-01", ErrInvalidRange},
		{"zero width permissive", ValidationPermissive, "2024-02-01", "2024-02-01", nil},
		{"zero width strict", ValidationStrict, "2024-02-01", "2024-02-01", ErrInvalidRange},
		{"outside timeline permissive", ValidationPermissive, "2023-11-01", "2024-06-01", nil},
		{"outside timeline strict", ValidationStrict, "2023-11-01", "2024-02-01", ErrOutOfRange},
		{"inside timeline strict", ValidationStrict, "2024-01-01", "2024-04-01", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm, _ := withTimeline(t, WithValidation(tt.validation))
			g, err := rm.BeginGroup("G", Style{})
			require.NoError(t, err)
			task, err := g.AddTask("T", date(t, tt.start), date(t, tt.end), Style{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			require.NoError(t, rm.CommitGroup(g))
			assert.GreaterOrEqual(t, task.Box.W, 0.0)
		})
	}
}

func TestMilestoneValidation(t *testing.T) {
	for _, tt := range []struct {
		validation ValidationMode
		wantErr    error
	}{
		{ValidationPermissive, nil},
		{ValidationStrict, ErrOutOfRange},
	} {
		t.Run(string(tt.validation), func(t *testing.T) {
			rm, _ := withTimeline(t, WithValidation(tt.validation))
			g, err := rm.BeginGroup("G", Style{})
			require.NoError(t, err)
			task, err := g.AddTask("T", date(t, "2024-01-10"), date(t, "2024-01-20"), Style{})
			require.NoError(t, err)
			_, err = task.AddMilestone("late", date(t, "2024-03-01"), Style{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStrictMarkerOutsideTimeline(t *testing.T) {
	rm, _ := withTimeline(t, WithValidation(ValidationStrict))
	err := rm.SetMarker(MarkerConfig{Date: date(t, "2025-01-01")})
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Nil(t, rm.Marker())

	rm, _ = newTestRoadmap(t, WithValidation(ValidationStrict))
	require.NoError(t, rm.SetMarker(MarkerConfig{Date: date(t, "2025-01-01")}))
	err = rm.SetTimeline(ModeMonthly, date(t, "2024-01-01"), 3, Style{})
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Nil(t, rm.Timeline())
	assert.Equal(t, PhaseInitialized, rm.Phase())
}

func TestDrawOrderAndSave(t *testing.T) {
	rm, rec := withTimeline(t)
	require.NoError(t, rm.SetMarker(MarkerConfig{Date: date(t, "2024-02-01")}))
	require.NoError(t, rm.AddGroup("G", Style{}, func(g *Group) error {
		task, err := g.AddTask("T", date(t, "2024-01-10"), date(t, "2024-02-20"), Style{})
		if err != nil {
			return err
		}
		_, err = task.AddMilestone("M", date(t, "2024-02-01"), Style{})
		return err
	}))
	require.NoError(t, rm.SetFooter("Footer", Style{}))
	require.NoError(t, rm.Draw())
	assert.Equal(t, PhaseRendered, rm.Phase())
	require.NoError(t, rm.Save("roadmap.svg"))
	assert.Equal(t, PhaseSaved, rm.Phase())

	assert.Equal(t, []string{
		"background",
		// title
		"text",
		// timeline
		"rectangle", "text", "rectangle", "text", "rectangle", "text",
		// group, task, milestone
		"rectangle", "text", "rectangle", "text", "diamond", "text",
		// marker
		"text", "line",
		// footer
		"text",
		"save",
	}, rec.Ops())

	last := rec.Calls[len(rec.Calls)-1]
	assert.Equal(t, "roadmap.svg", last.Path)
	assert.Equal(t, painter.LineDashed, rec.Calls[len(rec.Calls)-3].Style)

	assert.Error(t, rm.Draw(), "drawing twice is out of order")
}

func TestRoadmapsDoNotShareState(t *testing.T) {
	first, _ := withTimeline(t)
	second, _ := withTimeline(t)
	require.NoError(t, first.AddGroup("only in first", Style{}, func(*Group) error { return nil }))
	assert.Len(t, first.Groups(), 1)
	assert.Empty(t, second.Groups())
}
