package calendar

import (
	"fmt"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/model"
)

type View int

const (
	ViewDaily View = iota
	ViewWeekly
)

func ParseView(s string) (View, error) {
	switch s {
	case "", "daily":
		return ViewDaily, nil
	case "weekly":
		return ViewWeekly, nil
	default:
		return 0, fmt.Errorf("unknown view: %q", s)
	}
}

// DateColumn is one visible day of the calendar grid.
type DateColumn struct {
	Date       time.Time
	DateString string
	IsToday    bool
}

// Columns builds the visible window for a view anchored at the given date:
// a single column for the daily view, seven columns starting Sunday for the
// weekly view. now is injectable so IsToday is deterministic in tests.
func Columns(view View, anchor time.Time, now func() time.Time) []DateColumn {
	anchor = model.Day(anchor)

	if view == ViewDaily {
		return Range(anchor, anchor, now)
	}

	weekStart := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	return Range(weekStart, weekStart.AddDate(0, 0, 6), now)
}

// Range builds one column per day from from to to inclusive.
func Range(from, to time.Time, now func() time.Time) []DateColumn {
	today := model.FormatDate(now())

	var cols []DateColumn
	for d := model.Day(from); !d.After(model.Day(to)); d = d.AddDate(0, 0, 1) {
		ds := model.FormatDate(d)
		cols = append(cols, DateColumn{
			Date:       d,
			DateString: ds,
			IsToday:    ds == today,
		})
	}

	return cols
}
