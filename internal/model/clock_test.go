package model

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate() error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.February || d.Day() != 29 {
		t.Errorf("date = %v", d)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("date should be midnight, got %v", d)
	}
	if FormatDate(d) != "2024-02-29" {
		t.Errorf("FormatDate() = %q", FormatDate(d))
	}

	for _, s := range []string{"", "2024-1-1", "01-02-2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
		}
	}
}

func TestDay(t *testing.T) {
	d := time.Date(2024, 3, 15, 17, 45, 12, 999, time.Local)
	got := Day(d)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Day() = %v, want midnight", got)
	}
	if FormatDate(got) != "2024-03-15" {
		t.Errorf("Day() date = %q", FormatDate(got))
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
	}{
		{"00:00", 0},
		{"09:05", 9*60 + 5},
		{"23:59", 23*60 + 59},
	}
	for _, tc := range tests {
		got, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if got.String() != tc.in {
			t.Errorf("String() = %q, want %q", got.String(), tc.in)
		}
	}

	for _, s := range []string{"", "24:00", "12:60", "-1:00", "12", "12:3:4", "ab:cd"} {
		if _, err := ParseTimeOfDay(s); err == nil {
			t.Errorf("ParseTimeOfDay(%q) should fail", s)
		}
	}
}

func TestEventInstants(t *testing.T) {
	start, _ := ParseDate("2024-01-01")
	end, _ := ParseDate("2024-01-02")

	e := EventCreate{
		StartDate: start,
		EndDate:   end,
		StartTime: TimeOfDay(22 * 60),
		EndTime:   TimeOfDay(2 * 60),
	}

	if want := start.Add(22 * time.Hour); !e.StartInstant().Equal(want) {
		t.Errorf("StartInstant() = %v, want %v", e.StartInstant(), want)
	}
	if want := end.Add(2 * time.Hour); !e.EndInstant().Equal(want) {
		t.Errorf("EndInstant() = %v, want %v", e.EndInstant(), want)
	}
}

func TestParseEditScope(t *testing.T) {
	if scope, ok := ParseEditScope(""); !ok || scope != EditScopeAll {
		t.Error("empty scope should default to all")
	}
	if scope, ok := ParseEditScope("single"); !ok || scope != EditScopeSingle {
		t.Error("single scope should parse")
	}
	if _, ok := ParseEditScope("everything"); ok {
		t.Error("unknown scope should fail")
	}
}
