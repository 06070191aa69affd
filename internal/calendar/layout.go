package calendar

import (
	"github.com/avasiliev/personal-planner-backend/internal/model"
)

const (
	minutesPerDay = 24 * 60

	// MinHeight keeps very short events legible and clickable on the grid.
	MinHeight = 40
)

// Placement positions an event instance inside a day column, in pixels at a
// scale of one pixel per minute.
type Placement struct {
	Top    int
	Height int
}

type ColumnRole int

const (
	// ColumnRoleNone: the instance does not render in this column.
	ColumnRoleNone ColumnRole = iota
	// ColumnRoleStart: the column is the instance's own start date.
	ColumnRoleStart
	// ColumnRoleContinuation: the column is the calendar date immediately
	// after the start date of an overnight instance.
	ColumnRoleContinuation
)

// Overnight reports whether the instance crosses midnight. Detection is
// purely by time of day: an end numerically earlier than the start implies
// the event runs into the next day. Spans longer than one day expressed via
// the end date are deliberately not classified here; see DESIGN.md.
func Overnight(e *model.Event) bool {
	return e.EndTime < e.StartTime
}

// Role classifies how an instance relates to a column. An overnight instance
// renders in at most two columns: its start date and the very next date.
func Role(e *model.Event, columnDate string) ColumnRole {
	start := model.FormatDate(e.StartDate)
	if columnDate == start {
		return ColumnRoleStart
	}

	if Overnight(e) && columnDate == model.FormatDate(e.StartDate.AddDate(0, 0, 1)) {
		return ColumnRoleContinuation
	}

	return ColumnRoleNone
}

// Layout maps an instance to its vertical placement within the given column.
// The second return value is false when the instance does not render there.
func Layout(e *model.Event, columnDate string) (Placement, bool) {
	switch Role(e, columnDate) {
	case ColumnRoleStart:
		start := e.StartTime.Minutes()
		end := e.EndTime.Minutes()
		if Overnight(e) {
			end = minutesPerDay
		}
		return Placement{Top: start, Height: clampHeight(end - start)}, true

	case ColumnRoleContinuation:
		return Placement{Top: 0, Height: clampHeight(e.EndTime.Minutes())}, true

	default:
		return Placement{}, false
	}
}

func clampHeight(h int) int {
	if h < MinHeight {
		return MinHeight
	}
	return h
}

// OverlapsDay reports whether an instance occupies any part of the given
// column, either starting on it or running into it overnight.
func OverlapsDay(e *model.Event, columnDate string) bool {
	return Role(e, columnDate) != ColumnRoleNone
}
