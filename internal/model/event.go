package model

import (
	"time"

	"github.com/gerow/go-color"
)

type EventCreate struct {
	Title     string
	Content   string
	Tag       string
	Color     color.RGB
	StartDate time.Time
	EndDate   time.Time
	StartTime TimeOfDay
	EndTime   TimeOfDay
	Rule      RecurrenceRule
	Reminders []time.Duration
}

type Event struct {
	ID string
	// OriginalEventID is set only on exception events, standalone one-shot
	// events that replace a single occurrence of a series.
	OriginalEventID string
	// Excluded holds occurrence dates (YYYY-MM-DD) suppressed from the series.
	Excluded map[string]struct{}
	EventCreate
}

// StartInstant combines the start date with the wall-clock start time.
func (e *EventCreate) StartInstant() time.Time {
	return e.StartDate.Add(time.Duration(e.StartTime) * time.Minute)
}

// EndInstant combines the end date with the wall-clock end time.
func (e *EventCreate) EndInstant() time.Time {
	return e.EndDate.Add(time.Duration(e.EndTime) * time.Minute)
}

// EventRef identifies either a whole series (zero Date) or a single
// occurrence of it. Occurrence references are always carried as this pair,
// never encoded into the event id string.
type EventRef struct {
	BaseID int64
	Date   time.Time
}

func (r EventRef) Instance() bool {
	return !r.Date.IsZero()
}

type EventsFilter struct {
	From time.Time
	To   time.Time
	Tag  string
}

type EditScope int

const (
	EditScopeAll EditScope = iota
	EditScopeSingle
)

func ParseEditScope(s string) (EditScope, bool) {
	switch s {
	case "", "all":
		return EditScopeAll, true
	case "single":
		return EditScopeSingle, true
	default:
		return 0, false
	}
}
