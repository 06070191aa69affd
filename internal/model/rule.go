package model

import (
	"fmt"
	"time"
)

type Freq int

const (
	FreqNone Freq = iota
	FreqDaily
	FreqWeekly
	FreqMonthly
)

func ParseFreq(s string) (Freq, error) {
	switch s {
	case "", "none":
		return FreqNone, nil
	case "daily":
		return FreqDaily, nil
	case "weekly":
		return FreqWeekly, nil
	case "monthly":
		return FreqMonthly, nil
	default:
		return 0, fmt.Errorf("unknown repeat type: %q", s)
	}
}

func (f Freq) String() string {
	switch f {
	case FreqDaily:
		return "daily"
	case FreqWeekly:
		return "weekly"
	case FreqMonthly:
		return "monthly"
	default:
		return "none"
	}
}

// RecurrenceRule is the single canonical recurrence shape. It is built once
// at the input boundary (see recurrence.Normalize) so the expansion logic
// never has to dispatch on legacy field combinations.
type RecurrenceRule struct {
	Freq     Freq
	Interval int
	// DaysOfWeek restricts weekly rules to the listed weekdays (0 = Sunday).
	DaysOfWeek []time.Weekday
	// DayOfMonth forces monthly rules to a fixed day, clamped to the last
	// valid day of short months. Zero preserves the base event's day.
	DayOfMonth int
	// Count bounds the total number of occurrences, including the first.
	// Zero means unset; expansion then applies its safety ceiling.
	Count int
}

func (r RecurrenceRule) Recurring() bool {
	return r.Freq != FreqNone
}
