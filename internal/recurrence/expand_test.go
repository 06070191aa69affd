package recurrence

import (
	"reflect"
	"testing"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/calendar"
	"github.com/avasiliev/personal-planner-backend/internal/model"
)

func testWindow(t *testing.T, from, to string) []calendar.DateColumn {
	t.Helper()

	fromDate, err := model.ParseDate(from)
	if err != nil {
		t.Fatalf("parse from date: %v", err)
	}
	toDate, err := model.ParseDate(to)
	if err != nil {
		t.Fatalf("parse to date: %v", err)
	}

	return calendar.Range(fromDate, toDate, func() time.Time { return fromDate })
}

func testEvent(t *testing.T, id, start string, rule model.RecurrenceRule) *model.Event {
	t.Helper()

	date, err := model.ParseDate(start)
	if err != nil {
		t.Fatalf("parse start date: %v", err)
	}

	return &model.Event{
		ID: id,
		EventCreate: model.EventCreate{
			Title:     "standup",
			StartDate: date,
			EndDate:   date,
			StartTime: model.TimeOfDay(9 * 60),
			EndTime:   model.TimeOfDay(10 * 60),
			Rule:      rule,
		},
	}
}

func instanceDates(instances []*model.Event) []string {
	var dates []string
	for _, inst := range instances {
		dates = append(dates, model.FormatDate(inst.StartDate))
	}
	return dates
}

func TestExpandNonRecurring(t *testing.T) {
	event := testEvent(t, "1", "2024-01-10", model.RecurrenceRule{})
	window := testWindow(t, "2024-01-01", "2024-01-31")

	got := Expand([]*model.Event{event}, window)

	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0] != event {
		t.Error("non-recurring event should pass through unchanged")
	}
	if got[0].ID != "1" {
		t.Errorf("id = %q, want %q", got[0].ID, "1")
	}
}

func TestExpandEmptyWindow(t *testing.T) {
	event := testEvent(t, "1", "2024-01-10", model.RecurrenceRule{})

	if got := Expand([]*model.Event{event}, nil); got != nil {
		t.Errorf("got %d events for empty window, want none", len(got))
	}
}

func TestExpandDaily(t *testing.T) {
	t.Run("interval", func(t *testing.T) {
		event := testEvent(t, "7", "2024-01-01", model.RecurrenceRule{
			Freq:     model.FreqDaily,
			Interval: 3,
		})
		window := testWindow(t, "2024-01-01", "2024-01-10")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2024-01-01", "2024-01-04", "2024-01-07", "2024-01-10"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("count bound", func(t *testing.T) {
		event := testEvent(t, "7", "2024-01-01", model.RecurrenceRule{
			Freq:     model.FreqDaily,
			Interval: 1,
			Count:    5,
		})
		window := testWindow(t, "2024-01-01", "2024-12-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("window padding", func(t *testing.T) {
		// The day before the first column is still scanned so overnight
		// events spilling into it are not lost.
		event := testEvent(t, "7", "2023-12-25", model.RecurrenceRule{
			Freq:     model.FreqDaily,
			Interval: 1,
		})
		window := testWindow(t, "2024-01-01", "2024-01-02")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2023-12-31", "2024-01-01", "2024-01-02", "2024-01-03"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("counter is series absolute", func(t *testing.T) {
		// Occurrences before the window still consume the budget, so a
		// later window sees only what remains of the series.
		event := testEvent(t, "7", "2024-01-01", model.RecurrenceRule{
			Freq:     model.FreqDaily,
			Interval: 1,
			Count:    6,
		})
		window := testWindow(t, "2024-01-05", "2024-01-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2024-01-04", "2024-01-05", "2024-01-06"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})
}

func TestExpandWeekly(t *testing.T) {
	t.Run("same weekday without day list", func(t *testing.T) {
		event := testEvent(t, "3", "2024-01-02", model.RecurrenceRule{
			Freq:     model.FreqWeekly,
			Interval: 2,
		})
		window := testWindow(t, "2024-01-01", "2024-02-29")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2024-01-02", "2024-01-16", "2024-01-30", "2024-02-13", "2024-02-27"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("day list", func(t *testing.T) {
		// 2024-01-01 is a Monday.
		event := testEvent(t, "3", "2024-01-01", model.RecurrenceRule{
			Freq:       model.FreqWeekly,
			Interval:   1,
			DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			Count:      6,
		})
		window := testWindow(t, "2024-01-01", "2024-01-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2024-01-01", "2024-01-03", "2024-01-05", "2024-01-08", "2024-01-10", "2024-01-12"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("days before the start are skipped", func(t *testing.T) {
		// 2024-01-03 is a Wednesday; the Monday of that week predates the
		// series and must not produce an occurrence.
		event := testEvent(t, "3", "2024-01-03", model.RecurrenceRule{
			Freq:       model.FreqWeekly,
			Interval:   1,
			DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
			Count:      4,
		})
		window := testWindow(t, "2024-01-01", "2024-01-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2024-01-03", "2024-01-08", "2024-01-10", "2024-01-15"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("interval week blocks", func(t *testing.T) {
		// 2024-01-02 is a Tuesday anchored in the week of Sunday 2023-12-31.
		event := testEvent(t, "3", "2024-01-02", model.RecurrenceRule{
			Freq:       model.FreqWeekly,
			Interval:   2,
			DaysOfWeek: []time.Weekday{time.Tuesday, time.Thursday},
			Count:      4,
		})
		window := testWindow(t, "2024-01-01", "2024-01-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2024-01-02", "2024-01-04", "2024-01-16", "2024-01-18"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})
}

func TestExpandMonthly(t *testing.T) {
	t.Run("month end clamp", func(t *testing.T) {
		event := testEvent(t, "5", "2023-01-31", model.RecurrenceRule{
			Freq:     model.FreqMonthly,
			Interval: 1,
			Count:    3,
		})
		window := testWindow(t, "2023-01-01", "2023-12-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2023-01-31", "2023-02-28", "2023-03-31"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("leap february", func(t *testing.T) {
		event := testEvent(t, "5", "2024-01-31", model.RecurrenceRule{
			Freq:     model.FreqMonthly,
			Interval: 1,
			Count:    2,
		})
		window := testWindow(t, "2024-01-01", "2024-12-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2024-01-31", "2024-02-29"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("forced day of month", func(t *testing.T) {
		event := testEvent(t, "5", "2023-01-15", model.RecurrenceRule{
			Freq:       model.FreqMonthly,
			Interval:   1,
			DayOfMonth: 31,
			Count:      3,
		})
		window := testWindow(t, "2023-01-01", "2023-12-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2023-01-31", "2023-02-28", "2023-03-31"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("interval", func(t *testing.T) {
		event := testEvent(t, "5", "2023-01-10", model.RecurrenceRule{
			Freq:     model.FreqMonthly,
			Interval: 3,
			Count:    4,
		})
		window := testWindow(t, "2023-01-01", "2023-12-31")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2023-01-10", "2023-04-10", "2023-07-10", "2023-10-10"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})

	t.Run("year rollover", func(t *testing.T) {
		event := testEvent(t, "5", "2023-11-15", model.RecurrenceRule{
			Freq:     model.FreqMonthly,
			Interval: 1,
			Count:    4,
		})
		window := testWindow(t, "2023-11-01", "2024-02-29")

		got := instanceDates(Expand([]*model.Event{event}, window))
		want := []string{"2023-11-15", "2023-12-15", "2024-01-15", "2024-02-15"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dates = %v, want %v", got, want)
		}
	})
}

func TestExpandInstanceFields(t *testing.T) {
	event := testEvent(t, "42", "2024-01-01", model.RecurrenceRule{
		Freq:     model.FreqDaily,
		Interval: 1,
		Count:    2,
	})
	event.Content = "notes"
	event.Tag = "work"
	window := testWindow(t, "2024-01-01", "2024-01-07")

	got := Expand([]*model.Event{event}, window)
	if len(got) != 2 {
		t.Fatalf("got %d instances, want 2", len(got))
	}

	second := got[1]
	if second.ID != "42-2024-01-02" {
		t.Errorf("instance id = %q, want %q", second.ID, "42-2024-01-02")
	}
	if model.FormatDate(second.StartDate) != "2024-01-02" {
		t.Errorf("start date = %v, want 2024-01-02", second.StartDate)
	}
	// The end date stays the series' own; concrete ends are derived from
	// the wall-clock times at render time.
	if !second.EndDate.Equal(event.EndDate) {
		t.Errorf("end date = %v, want %v", second.EndDate, event.EndDate)
	}
	if second.Title != event.Title || second.Content != event.Content || second.Tag != event.Tag {
		t.Error("instance should carry the series' fields verbatim")
	}
}

func TestExpandDeterministic(t *testing.T) {
	events := []*model.Event{
		testEvent(t, "1", "2024-01-01", model.RecurrenceRule{Freq: model.FreqDaily, Interval: 2}),
		testEvent(t, "2", "2024-01-03", model.RecurrenceRule{
			Freq:       model.FreqWeekly,
			Interval:   1,
			DaysOfWeek: []time.Weekday{time.Wednesday, time.Friday},
		}),
		testEvent(t, "3", "2024-01-15", model.RecurrenceRule{}),
	}
	window := testWindow(t, "2024-01-01", "2024-01-31")

	first := Expand(events, window)
	second := Expand(events, window)

	if !reflect.DeepEqual(first, second) {
		t.Error("expansion of the same inputs should be identical")
	}
}
