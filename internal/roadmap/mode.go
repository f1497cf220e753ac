package roadmap

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the granularity of one timeline item.
type Mode string

const (
	ModeDaily      Mode = "daily"
	ModeWeekly     Mode = "weekly"
	ModeMonthly    Mode = "monthly"
	ModeQuarterly  Mode = "quarterly"
	ModeHalfYearly Mode = "half_yearly"
	ModeYearly     Mode = "yearly"
)

// ParseMode accepts the canonical mode names and their short forms
// (day, week, month, quarter, half_year, year).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily":
		return ModeDaily, nil
	case "week", "weekly":
		return ModeWeekly, nil
	case "month", "monthly":
		return ModeMonthly, nil
	case "quarter", "quarterly":
		return ModeQuarterly, nil
	case "half_year", "half_yearly", "halfyearly", "half-yearly":
		return ModeHalfYearly, nil
	case "year", "yearly":
		return ModeYearly, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

func (m Mode) valid() bool {
	switch m {
	case ModeDaily, ModeWeekly, ModeMonthly, ModeQuarterly, ModeHalfYearly, ModeYearly:
		return true
	}
	return false
}

// align moves d back to the start of the calendar period containing it.
// Weeks start on Monday.
func (m Mode) align(d time.Time) time.Time {
	d = day(d)
	y, mon, _ := d.Date()
	switch m {
	case ModeWeekly:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case ModeMonthly:
		return time.Date(y, mon, 1, 0, 0, 0, 0, time.UTC)
	case ModeQuarterly:
		first := time.Month((int(mon)-1)/3*3 + 1)
		return time.Date(y, first, 1, 0, 0, 0, 0, time.UTC)
	case ModeHalfYearly:
		first := time.January
		if mon >= time.July {
			first = time.July
		}
		return time.Date(y, first, 1, 0, 0, 0, 0, time.UTC)
	case ModeYearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return d
}

// next returns the start of the period following the one starting at d.
func (m Mode) next(d time.Time) time.Time {
	switch m {
	case ModeWeekly:
		return d.AddDate(0, 0, 7)
	case ModeMonthly:
		return d.AddDate(0, 1, 0)
	case ModeQuarterly:
		return d.AddDate(0, 3, 0)
	case ModeHalfYearly:
		return d.AddDate(0, 6, 0)
	case ModeYearly:
		return d.AddDate(1, 0, 0)
	}
	return d.AddDate(0, 0, 1)
}

// label returns the display text and logical value of the period starting at d.
func (m Mode) label(d time.Time) (string, int) {
	switch m {
	case ModeWeekly:
		year, week := d.ISOWeek()
		return fmt.Sprintf("W%02d %d", week, year), week
	case ModeMonthly:
		return d.Format("Jan 2006"), int(d.Month())
	case ModeQuarterly:
		q := (int(d.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", q, d.Year()), q
	case ModeHalfYearly:
		h := 1
		if d.Month() >= time.July {
			h = 2
		}
		return fmt.Sprintf("H%d %d", h, d.Year()), h
	case ModeYearly:
		return d.Format("2006"), d.Year()
	}
	return d.Format("Jan 02"), d.Day()
}
