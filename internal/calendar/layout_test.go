package calendar

import (
	"testing"

	"github.com/avasiliev/personal-planner-backend/internal/model"
)

func layoutEvent(t *testing.T, start string, startTime, endTime string) *model.Event {
	t.Helper()

	date, err := model.ParseDate(start)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	st, err := model.ParseTimeOfDay(startTime)
	if err != nil {
		t.Fatalf("parse start time: %v", err)
	}
	et, err := model.ParseTimeOfDay(endTime)
	if err != nil {
		t.Fatalf("parse end time: %v", err)
	}

	return &model.Event{
		ID: "1",
		EventCreate: model.EventCreate{
			StartDate: date,
			EndDate:   date,
			StartTime: st,
			EndTime:   et,
		},
	}
}

func TestOvernight(t *testing.T) {
	if Overnight(layoutEvent(t, "2024-01-01", "09:00", "10:00")) {
		t.Error("same day event classified as overnight")
	}
	if !Overnight(layoutEvent(t, "2024-01-01", "22:00", "02:00")) {
		t.Error("event ending before it starts should be overnight")
	}
	if Overnight(layoutEvent(t, "2024-01-01", "10:00", "10:00")) {
		t.Error("zero duration event classified as overnight")
	}
}

func TestLayout(t *testing.T) {
	t.Run("same day", func(t *testing.T) {
		e := layoutEvent(t, "2024-01-01", "09:00", "10:30")

		p, ok := Layout(e, "2024-01-01")
		if !ok {
			t.Fatal("event should render on its own start date")
		}
		if p.Top != 540 || p.Height != 90 {
			t.Errorf("placement = %+v, want {Top:540 Height:90}", p)
		}
	})

	t.Run("minimum height", func(t *testing.T) {
		e := layoutEvent(t, "2024-01-01", "09:00", "09:10")

		p, ok := Layout(e, "2024-01-01")
		if !ok {
			t.Fatal("event should render on its own start date")
		}
		if p.Height != MinHeight {
			t.Errorf("height = %d, want the %d floor", p.Height, MinHeight)
		}
	})

	t.Run("overnight start column", func(t *testing.T) {
		e := layoutEvent(t, "2024-01-01", "22:00", "02:00")

		p, ok := Layout(e, "2024-01-01")
		if !ok {
			t.Fatal("event should render on its own start date")
		}
		if p.Top != 1320 || p.Height != 120 {
			t.Errorf("placement = %+v, want {Top:1320 Height:120}", p)
		}
	})

	t.Run("overnight continuation column", func(t *testing.T) {
		e := layoutEvent(t, "2024-01-01", "22:00", "02:00")

		p, ok := Layout(e, "2024-01-02")
		if !ok {
			t.Fatal("overnight event should continue into the next column")
		}
		if p.Top != 0 || p.Height != 120 {
			t.Errorf("placement = %+v, want {Top:0 Height:120}", p)
		}
	})

	t.Run("overnight continuation minimum height", func(t *testing.T) {
		e := layoutEvent(t, "2024-01-01", "23:50", "00:10")

		p, ok := Layout(e, "2024-01-02")
		if !ok {
			t.Fatal("overnight event should continue into the next column")
		}
		if p.Height != MinHeight {
			t.Errorf("height = %d, want the %d floor", p.Height, MinHeight)
		}
	})

	t.Run("unrelated column", func(t *testing.T) {
		e := layoutEvent(t, "2024-01-01", "22:00", "02:00")

		if _, ok := Layout(e, "2024-01-03"); ok {
			t.Error("overnight event spans at most two columns")
		}
		if _, ok := Layout(layoutEvent(t, "2024-01-01", "09:00", "10:00"), "2024-01-02"); ok {
			t.Error("same day event renders in one column only")
		}
	})
}

func TestRole(t *testing.T) {
	e := layoutEvent(t, "2024-01-01", "22:00", "02:00")

	if got := Role(e, "2024-01-01"); got != ColumnRoleStart {
		t.Errorf("role on start date = %v, want start", got)
	}
	if got := Role(e, "2024-01-02"); got != ColumnRoleContinuation {
		t.Errorf("role on next date = %v, want continuation", got)
	}
	if got := Role(e, "2023-12-31"); got != ColumnRoleNone {
		t.Errorf("role on previous date = %v, want none", got)
	}
}

func TestOverlapsDay(t *testing.T) {
	e := layoutEvent(t, "2024-01-01", "22:00", "02:00")

	if !OverlapsDay(e, "2024-01-01") || !OverlapsDay(e, "2024-01-02") {
		t.Error("overnight event should overlap both its columns")
	}
	if OverlapsDay(e, "2024-01-03") {
		t.Error("overnight event should not overlap later columns")
	}
}
