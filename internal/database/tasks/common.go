package tasks

import "github.com/avasiliev/personal-planner-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var listsQuery = database.PSQL.
	Select("id", "name", "kind", "created_at").
	From(database.TaskListsTable)

var tasksQuery = database.PSQL.
	Select("id", "list_id", "title", "note", "priority", "due_date", "done", "created_at", "updated_at").
	From(database.TasksTable)
