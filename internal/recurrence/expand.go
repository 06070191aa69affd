package recurrence

import (
	"fmt"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/calendar"
	"github.com/avasiliev/personal-planner-backend/internal/model"
)

const (
	// DefaultMaxOccurrences bounds a series that carries no explicit limit.
	DefaultMaxOccurrences = 1000

	// maxIterations stops the weekly walker on malformed rules. Hitting it
	// truncates the series silently rather than stalling the caller.
	maxIterations = 10000
)

// Expand materializes concrete instances of the given base events within the
// visible window. The scan range is padded by one day on each side so
// overnight events starting just before the first column still show up.
//
// The occurrence counter is series-absolute: occurrences before or after the
// scan range still advance and consume the budget, so the Nth occurrence is
// the same regardless of which window is being looked at. Non-recurring
// events pass through unchanged. Expand never fails; malformed rules produce
// fewer instances, never an error.
func Expand(events []*model.Event, window []calendar.DateColumn) []*model.Event {
	if len(window) == 0 {
		return nil
	}

	scanFrom := window[0].Date.AddDate(0, 0, -1)
	scanTo := window[len(window)-1].Date.AddDate(0, 0, 1)

	var res []*model.Event
	for _, e := range events {
		if !e.Rule.Recurring() {
			res = append(res, e)
			continue
		}

		res = append(res, expandSeries(e, scanFrom, scanTo)...)
	}

	return res
}

func expandSeries(e *model.Event, scanFrom, scanTo time.Time) []*model.Event {
	limit := e.Rule.Count
	if limit <= 0 {
		limit = DefaultMaxOccurrences
	}

	interval := e.Rule.Interval
	if interval < 1 {
		interval = 1
	}

	start := model.Day(e.StartDate)

	switch e.Rule.Freq {
	case model.FreqDaily:
		return expandByStep(e, start, interval, limit, scanFrom, scanTo)
	case model.FreqWeekly:
		if len(e.Rule.DaysOfWeek) == 0 {
			// Empty day lists fall back to plain same-weekday stepping.
			return expandByStep(e, start, 7*interval, limit, scanFrom, scanTo)
		}
		return expandWeekdays(e, start, interval, limit, scanFrom, scanTo)
	case model.FreqMonthly:
		return expandMonthly(e, start, interval, limit, scanFrom, scanTo)
	default:
		return nil
	}
}

// expandByStep walks fixed day steps: daily rules and weekly rules without an
// explicit weekday list.
func expandByStep(e *model.Event, start time.Time, stepDays, limit int, scanFrom, scanTo time.Time) []*model.Event {
	var res []*model.Event

	date := start
	for count := 0; count < limit; count++ {
		if date.After(scanTo) {
			break
		}
		if !date.Before(scanFrom) {
			res = append(res, instance(e, date))
		}
		date = date.AddDate(0, 0, stepDays)
	}

	return res
}

// expandWeekdays emits one occurrence per listed weekday inside week blocks
// of interval weeks, blocks anchored at the Sunday of the base event's week.
// All emitted occurrences share the series' single occurrence budget.
func expandWeekdays(e *model.Event, start time.Time, interval, limit int, scanFrom, scanTo time.Time) []*model.Event {
	var res []*model.Event

	weekStart := start.AddDate(0, 0, -int(start.Weekday()))

	count := 0
	for iter := 0; count < limit && iter < maxIterations; iter++ {
		blockStart := weekStart.AddDate(0, 0, iter*7*interval)
		if blockStart.After(scanTo) {
			break
		}

		for _, wd := range e.Rule.DaysOfWeek {
			date := blockStart.AddDate(0, 0, int(wd))
			if date.Before(start) {
				continue
			}
			if count >= limit {
				break
			}
			count++
			if !date.Before(scanFrom) && !date.After(scanTo) {
				res = append(res, instance(e, date))
			}
		}
	}

	return res
}

// expandMonthly steps whole months, clamping the target day to the last
// valid day of short months (Jan 31 -> Feb 28 -> Mar 31).
func expandMonthly(e *model.Event, start time.Time, interval, limit int, scanFrom, scanTo time.Time) []*model.Event {
	var res []*model.Event

	day := start.Day()
	if e.Rule.DayOfMonth > 0 {
		day = e.Rule.DayOfMonth
	}

	for count := 0; count < limit; count++ {
		months := int(start.Month()) - 1 + count*interval
		year := start.Year() + months/12
		month := time.Month(months%12 + 1)

		d := day
		if last := daysInMonth(year, month); d > last {
			d = last
		}

		date := time.Date(year, month, d, 0, 0, 0, 0, start.Location())
		if date.After(scanTo) {
			break
		}
		if !date.Before(scanFrom) {
			res = append(res, instance(e, date))
		}
	}

	return res
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// instance copies the base event onto a concrete occurrence date. Only the
// id and start date change; everything else, the end date included, is
// carried over verbatim.
func instance(base *model.Event, date time.Time) *model.Event {
	inst := *base
	inst.ID = fmt.Sprintf("%s-%s", base.ID, model.FormatDate(date))
	inst.StartDate = date
	return &inst
}
