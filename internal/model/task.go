package model

import (
	"fmt"
	"time"
)

type TaskListKind int

const (
	TaskListKindTodo TaskListKind = iota
	TaskListKindShopping
)

func ParseTaskListKind(s string) (TaskListKind, error) {
	switch s {
	case "", "todo":
		return TaskListKindTodo, nil
	case "shopping":
		return TaskListKindShopping, nil
	default:
		return 0, fmt.Errorf("unknown list kind: %q", s)
	}
}

func (k TaskListKind) String() string {
	if k == TaskListKindShopping {
		return "shopping"
	}
	return "todo"
}

type TaskListCreate struct {
	Name string
	Kind TaskListKind
}

type TaskList struct {
	ID        int64
	CreatedAt time.Time
	TaskListCreate
}

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func ParsePriority(s string) (Priority, error) {
	switch s {
	case "", "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return 0, fmt.Errorf("unknown priority: %q", s)
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

type TaskCreate struct {
	ListID   int64
	Title    string
	Note     string
	Priority Priority
	DueDate  *time.Time
}

type Task struct {
	ID        int64
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
	TaskCreate
}
