package expenses

import (
	"context"
	"fmt"

	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
)

type Service struct {
	db                 database.PGX
	expensesRepository expensesRepository
}

type expensesRepository interface {
	CreateExpense(ctx context.Context, q database.Queryable, expense *model.ExpenseCreate) (int64, error)
	GetExpense(ctx context.Context, q database.Queryable, id int64) (*model.Expense, error)
	GetExpenses(ctx context.Context, q database.Queryable, filter model.ExpensesFilter) ([]*model.Expense, error)
	UpdateExpense(ctx context.Context, q database.Queryable, expense *model.Expense) error
	DeleteExpense(ctx context.Context, q database.Queryable, id int64) error
}

func NewService(db database.PGX, repo expensesRepository) *Service {
	return &Service{
		db:                 db,
		expensesRepository: repo,
	}
}

func (s *Service) CreateExpense(ctx context.Context, info *model.ExpenseCreate) (*model.Expense, error) {
	id, err := s.expensesRepository.CreateExpense(ctx, s.db, info)
	if err != nil {
		return nil, fmt.Errorf("expensesRepository.CreateExpense: %w", err)
	}

	return s.expensesRepository.GetExpense(ctx, s.db, id)
}

func (s *Service) GetExpenses(ctx context.Context, filter model.ExpensesFilter) ([]*model.Expense, error) {
	return s.expensesRepository.GetExpenses(ctx, s.db, filter)
}

func (s *Service) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	if _, err := s.expensesRepository.GetExpense(ctx, s.db, expense.ID); err != nil {
		return fmt.Errorf("get expense: %w", err)
	}

	if err := s.expensesRepository.UpdateExpense(ctx, s.db, expense); err != nil {
		return fmt.Errorf("expensesRepository.UpdateExpense: %w", err)
	}

	return nil
}

func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.expensesRepository.DeleteExpense(ctx, s.db, id); err != nil {
		return fmt.Errorf("expensesRepository.DeleteExpense: %w", err)
	}
	return nil
}

// GetStats aggregates expenses in the filter window into totals per
// category and per day.
func (s *Service) GetStats(ctx context.Context, filter model.ExpensesFilter) (*model.ExpenseStats, error) {
	expenses, err := s.expensesRepository.GetExpenses(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("expensesRepository.GetExpenses: %w", err)
	}

	return Aggregate(expenses), nil
}

// Aggregate computes summary stats over a set of expenses. Category totals
// are ordered by descending amount, the daily trend chronologically.
func Aggregate(expenses []*model.Expense) *model.ExpenseStats {
	stats := &model.ExpenseStats{Count: len(expenses)}

	byCategory := make(map[string]int64)
	byDay := make(map[string]int64)

	for _, e := range expenses {
		stats.Total += e.Amount
		byCategory[e.Category] += e.Amount
		byDay[model.FormatDate(e.Date)] += e.Amount
	}

	for category, total := range byCategory {
		stats.ByCategory = append(stats.ByCategory, model.CategoryTotal{Category: category, Total: total})
	}
	sortCategoryTotals(stats.ByCategory)

	for date, total := range byDay {
		stats.Trend = append(stats.Trend, model.DailyTotal{Date: date, Total: total})
	}
	sortDailyTotals(stats.Trend)

	return stats
}
