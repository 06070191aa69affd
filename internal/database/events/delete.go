package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avasiliev/personal-planner-backend/internal/database"
)

func (*Repository) DeleteEvent(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// DeleteExceptions removes the standalone exception events that were split
// off the given series, so deleting a series leaves no orphans behind.
func (*Repository) DeleteExceptions(ctx context.Context, q database.Queryable, originalID int64) error {
	qb := database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"original_event_id": originalID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
