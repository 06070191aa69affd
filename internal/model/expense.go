package model

import "time"

type ExpenseCreate struct {
	// Amount is stored in minor currency units (cents).
	Amount   int64
	Category string
	Note     string
	Date     time.Time
}

type Expense struct {
	ID        int64
	CreatedAt time.Time
	ExpenseCreate
}

type ExpensesFilter struct {
	From     time.Time
	To       time.Time
	Category string
}

type CategoryTotal struct {
	Category string
	Total    int64
}

type DailyTotal struct {
	Date  string
	Total int64
}

type ExpenseStats struct {
	Count      int
	Total      int64
	ByCategory []CategoryTotal
	Trend      []DailyTotal
}
