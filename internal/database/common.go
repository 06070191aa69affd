package database

import sq "github.com/Masterminds/squirrel"

var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	EventsTable    = "events"
	TaskListsTable = "task_lists"
	TasksTable     = "tasks"
	ExpensesTable  = "expenses"
	NotesTable     = "notes"
)
