package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/avasiliev/personal-planner-backend/internal/recurrence"
)

func (*Repository) UpdateEvent(ctx context.Context, q database.Queryable, id int64, event *model.Event) error {
	rule, err := recurrence.RuleString(event.Rule)
	if err != nil {
		return fmt.Errorf("serialize rule: %w", err)
	}

	reminders := make([]int64, len(event.Reminders))
	for i, r := range event.Reminders {
		reminders[i] = int64(r)
	}

	excluded := make([]string, 0, len(event.Excluded))
	for d := range event.Excluded {
		excluded = append(excluded, d)
	}

	qb := database.PSQL.
		Update(database.EventsTable).
		SetMap(map[string]interface{}{
			"title":           event.Title,
			"content":         event.Content,
			"tag":             event.Tag,
			"color":           event.Color.ToHTML(),
			"start_date":      event.StartDate,
			"end_date":        event.EndDate,
			"start_time":      int(event.StartTime),
			"end_time":        int(event.EndTime),
			"recurrence_rule": rule,
			"excluded_dates":  excluded,
			"reminders":       reminders,
		}).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
