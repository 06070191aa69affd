package expenses

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id", "amount", "category", "note", "date", "created_at").
	From(database.ExpensesTable)

type expenseDTO struct {
	ID        int64
	Amount    int64
	Category  string
	Note      string
	Date      time.Time
	CreatedAt time.Time
}

func mapToExpense(dto *expenseDTO) *model.Expense {
	return &model.Expense{
		ID:        dto.ID,
		CreatedAt: dto.CreatedAt,
		ExpenseCreate: model.ExpenseCreate{
			Amount:   dto.Amount,
			Category: dto.Category,
			Note:     dto.Note,
			Date:     model.Day(dto.Date.In(time.Local)),
		},
	}
}

func (*Repository) CreateExpense(ctx context.Context, q database.Queryable, expense *model.ExpenseCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.ExpensesTable).
		Columns("amount", "category", "note", "date", "created_at").
		Values(expense.Amount, expense.Category, expense.Note, expense.Date, time.Now()).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}

func (*Repository) GetExpense(ctx context.Context, q database.Queryable, id int64) (*model.Expense, error) {
	qb := baseQuery.Where(sq.Eq{"id": id})

	var dto expenseDTO
	if err := q.Get(ctx, &dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToExpense(&dto), nil
}

func (*Repository) GetExpenses(ctx context.Context, q database.Queryable, filter model.ExpensesFilter) ([]*model.Expense, error) {
	qb := baseQuery.OrderBy("date desc", "id desc")

	if !filter.From.IsZero() {
		qb = qb.Where(sq.GtOrEq{"date": filter.From})
	}
	if !filter.To.IsZero() {
		qb = qb.Where(sq.LtOrEq{"date": filter.To})
	}
	if filter.Category != "" {
		qb = qb.Where(sq.Eq{"category": filter.Category})
	}

	var dtos []*expenseDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Expense, len(dtos))
	for i, d := range dtos {
		res[i] = mapToExpense(d)
	}

	return res, nil
}

func (*Repository) UpdateExpense(ctx context.Context, q database.Queryable, expense *model.Expense) error {
	qb := database.PSQL.
		Update(database.ExpensesTable).
		SetMap(map[string]interface{}{
			"amount":   expense.Amount,
			"category": expense.Category,
			"note":     expense.Note,
			"date":     expense.Date,
		}).
		Where(sq.Eq{"id": expense.ID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteExpense(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Delete(database.ExpensesTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
