package events

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, id int64) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	var dto eventDTO
	if err := q.Get(ctx, &dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToEvent(&dto)
}

// GetEvents returns base events that can produce instances inside the
// filter window: one-shot events overlapping it plus every recurring series
// that starts before its end. Expansion decides what actually falls inside.
func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.LtOrEq{"start_date": filter.To}).
		Where(sq.Or{
			sq.NotEq{"recurrence_rule": ""},
			sq.GtOrEq{"end_date": filter.From},
		})

	if filter.Tag != "" {
		qb = qb.Where(sq.Eq{"tag": filter.Tag})
	}
	qb = qb.OrderBy("id")

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		var err error
		res[i], err = mapToEvent(d)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}
