package events

import "github.com/avasiliev/personal-planner-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
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
	From(database.EventsTable)
