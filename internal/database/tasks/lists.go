package tasks

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

type listDTO struct {
	ID        int64
	Name      string
	Kind      int
	CreatedAt time.Time
}

func mapToList(dto *listDTO) *model.TaskList {
	return &model.TaskList{
		ID:        dto.ID,
		CreatedAt: dto.CreatedAt,
		TaskListCreate: model.TaskListCreate{
			Name: dto.Name,
			Kind: model.TaskListKind(dto.Kind),
		},
	}
}

func (*Repository) CreateList(ctx context.Context, q database.Queryable, list *model.TaskListCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.TaskListsTable).
		Columns("name", "kind").
		Values(list.Name, int(list.Kind)).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}

func (*Repository) GetList(ctx context.Context, q database.Queryable, id int64) (*model.TaskList, error) {
	qb := listsQuery.Where(sq.Eq{"id": id})

	var dto listDTO
	if err := q.Get(ctx, &dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToList(&dto), nil
}

func (*Repository) GetLists(ctx context.Context, q database.Queryable) ([]*model.TaskList, error) {
	qb := listsQuery.OrderBy("created_at")

	var dtos []*listDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.TaskList, len(dtos))
	for i, d := range dtos {
		res[i] = mapToList(d)
	}

	return res, nil
}

func (*Repository) UpdateList(ctx context.Context, q database.Queryable, list *model.TaskList) error {
	qb := database.PSQL.
		Update(database.TaskListsTable).
		SetMap(map[string]interface{}{
			"name": list.Name,
			"kind": int(list.Kind),
		}).
		Where(sq.Eq{"id": list.ID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteList(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Delete(database.TaskListsTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
