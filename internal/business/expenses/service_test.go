package expenses

import (
	"testing"

	"github.com/avasiliev/personal-planner-backend/internal/model"
)

func expense(t *testing.T, amount int64, category, date string) *model.Expense {
	t.Helper()

	d, err := model.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}

	return &model.Expense{
		ID: 1,
		ExpenseCreate: model.ExpenseCreate{
			Amount:   amount,
			Category: category,
			Date:     d,
		},
	}
}

func TestAggregate(t *testing.T) {
	expenses := []*model.Expense{
		expense(t, 1250, "groceries", "2024-01-02"),
		expense(t, 4000, "rent", "2024-01-01"),
		expense(t, 750, "groceries", "2024-01-01"),
		expense(t, 2000, "transport", "2024-01-03"),
	}

	stats := Aggregate(expenses)

	if stats.Count != 4 {
		t.Errorf("count = %d, want 4", stats.Count)
	}
	if stats.Total != 8000 {
		t.Errorf("total = %d, want 8000", stats.Total)
	}

	wantCategories := []model.CategoryTotal{
		{Category: "rent", Total: 4000},
		{Category: "groceries", Total: 2000},
		{Category: "transport", Total: 2000},
	}
	if len(stats.ByCategory) != len(wantCategories) {
		t.Fatalf("by category = %v, want %v", stats.ByCategory, wantCategories)
	}
	for i, want := range wantCategories {
		if stats.ByCategory[i] != want {
			t.Errorf("category %d = %v, want %v", i, stats.ByCategory[i], want)
		}
	}

	wantTrend := []model.DailyTotal{
		{Date: "2024-01-01", Total: 4750},
		{Date: "2024-01-02", Total: 1250},
		{Date: "2024-01-03", Total: 2000},
	}
	if len(stats.Trend) != len(wantTrend) {
		t.Fatalf("trend = %v, want %v", stats.Trend, wantTrend)
	}
	for i, want := range wantTrend {
		if stats.Trend[i] != want {
			t.Errorf("trend %d = %v, want %v", i, stats.Trend[i], want)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)

	if stats.Count != 0 || stats.Total != 0 {
		t.Errorf("stats = %+v, want zero counts", stats)
	}
	if len(stats.ByCategory) != 0 || len(stats.Trend) != 0 {
		t.Errorf("stats = %+v, want empty breakdowns", stats)
	}
}

func TestAggregateTiesBreakByName(t *testing.T) {
	expenses := []*model.Expense{
		expense(t, 100, "zoo", "2024-01-01"),
		expense(t, 100, "arcade", "2024-01-01"),
	}

	stats := Aggregate(expenses)

	if stats.ByCategory[0].Category != "arcade" {
		t.Errorf("first category = %q, equal totals should order by name", stats.ByCategory[0].Category)
	}
}
