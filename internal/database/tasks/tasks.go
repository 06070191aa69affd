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

type taskDTO struct {
	ID        int64
	ListID    int64
	Title     string
	Note      string
	Priority  int
	DueDate   *time.Time
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func mapToTask(dto *taskDTO) *model.Task {
	return &model.Task{
		ID:        dto.ID,
		Done:      dto.Done,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		TaskCreate: model.TaskCreate{
			ListID:   dto.ListID,
			Title:    dto.Title,
			Note:     dto.Note,
			Priority: model.Priority(dto.Priority),
			DueDate:  dto.DueDate,
		},
	}
}

func (*Repository) CreateTask(ctx context.Context, q database.Queryable, task *model.TaskCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.TasksTable).
		Columns("list_id", "title", "note", "priority", "due_date", "done", "created_at", "updated_at").
		Values(task.ListID, task.Title, task.Note, int(task.Priority), task.DueDate, false, time.Now(), time.Now()).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}

func (*Repository) GetTask(ctx context.Context, q database.Queryable, id int64) (*model.Task, error) {
	qb := tasksQuery.Where(sq.Eq{"id": id})

	var dto taskDTO
	if err := q.Get(ctx, &dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToTask(&dto), nil
}

func (*Repository) GetTasks(ctx context.Context, q database.Queryable, listID int64) ([]*model.Task, error) {
	qb := tasksQuery.
		Where(sq.Eq{"list_id": listID}).
		OrderBy("done", "priority desc", "created_at")

	var dtos []*taskDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Task, len(dtos))
	for i, d := range dtos {
		res[i] = mapToTask(d)
	}

	return res, nil
}

func (*Repository) UpdateTask(ctx context.Context, q database.Queryable, task *model.Task) error {
	qb := database.PSQL.
		Update(database.TasksTable).
		SetMap(map[string]interface{}{
			"title":      task.Title,
			"note":       task.Note,
			"priority":   int(task.Priority),
			"due_date":   task.DueDate,
			"done":       task.Done,
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"id": task.ID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteTask(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Delete(database.TasksTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// DeleteCompleted clears every finished task from a list.
func (*Repository) DeleteCompleted(ctx context.Context, q database.Queryable, listID int64) error {
	qb := database.PSQL.
		Delete(database.TasksTable).
		Where(sq.Eq{"list_id": listID, "done": true})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
