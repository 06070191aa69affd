package events

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/avasiliev/personal-planner-backend/internal/recurrence"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error) {
	rule, err := recurrence.RuleString(event.Rule)
	if err != nil {
		return 0, fmt.Errorf("serialize rule: %w", err)
	}

	reminders := make([]int64, len(event.Reminders))
	for i, r := range event.Reminders {
		reminders[i] = int64(r)
	}

	excluded := make([]string, 0, len(event.Excluded))
	for d := range event.Excluded {
		excluded = append(excluded, d)
	}

	var originalID *int64
	if event.OriginalEventID != "" {
		id, err := strconv.ParseInt(event.OriginalEventID, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid original event id %q: %w", event.OriginalEventID, err)
		}
		originalID = &id
	}

	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"title",
			"content",
			"tag",
			"color",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"recurrence_rule",
			"excluded_dates",
			"original_event_id",
			"reminders",
		).
		Values(
			event.Title,
			event.Content,
			event.Tag,
			event.Color.ToHTML(),
			event.StartDate,
			event.EndDate,
			int(event.StartTime),
			int(event.EndTime),
			rule,
			excluded,
			originalID,
			reminders,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
