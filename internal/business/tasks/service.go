package tasks

import (
	"context"
	"fmt"

	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
)

type Service struct {
	db              database.PGX
	tasksRepository tasksRepository
}

type tasksRepository interface {
	CreateList(ctx context.Context, q database.Queryable, list *model.TaskListCreate) (int64, error)
	GetList(ctx context.Context, q database.Queryable, id int64) (*model.TaskList, error)
	GetLists(ctx context.Context, q database.Queryable) ([]*model.TaskList, error)
	UpdateList(ctx context.Context, q database.Queryable, list *model.TaskList) error
	DeleteList(ctx context.Context, q database.Queryable, id int64) error
	CreateTask(ctx context.Context, q database.Queryable, task *model.TaskCreate) (int64, error)
	GetTask(ctx context.Context, q database.Queryable, id int64) (*model.Task, error)
	GetTasks(ctx context.Context, q database.Queryable, listID int64) ([]*model.Task, error)
	UpdateTask(ctx context.Context, q database.Queryable, task *model.Task) error
	DeleteTask(ctx context.Context, q database.Queryable, id int64) error
	DeleteCompleted(ctx context.Context, q database.Queryable, listID int64) error
}

func NewService(db database.PGX, repo tasksRepository) *Service {
	return &Service{
		db:              db,
		tasksRepository: repo,
	}
}

func (s *Service) CreateList(ctx context.Context, info *model.TaskListCreate) (*model.TaskList, error) {
	id, err := s.tasksRepository.CreateList(ctx, s.db, info)
	if err != nil {
		return nil, fmt.Errorf("tasksRepository.CreateList: %w", err)
	}

	return s.tasksRepository.GetList(ctx, s.db, id)
}

func (s *Service) GetList(ctx context.Context, id int64) (*model.TaskList, error) {
	return s.tasksRepository.GetList(ctx, s.db, id)
}

func (s *Service) GetLists(ctx context.Context) ([]*model.TaskList, error) {
	return s.tasksRepository.GetLists(ctx, s.db)
}

func (s *Service) UpdateList(ctx context.Context, list *model.TaskList) error {
	if err := s.tasksRepository.UpdateList(ctx, s.db, list); err != nil {
		return fmt.Errorf("tasksRepository.UpdateList: %w", err)
	}
	return nil
}

func (s *Service) DeleteList(ctx context.Context, id int64) error {
	if err := s.tasksRepository.DeleteList(ctx, s.db, id); err != nil {
		return fmt.Errorf("tasksRepository.DeleteList: %w", err)
	}
	return nil
}

func (s *Service) CreateTask(ctx context.Context, info *model.TaskCreate) (*model.Task, error) {
	if _, err := s.tasksRepository.GetList(ctx, s.db, info.ListID); err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}

	id, err := s.tasksRepository.CreateTask(ctx, s.db, info)
	if err != nil {
		return nil, fmt.Errorf("tasksRepository.CreateTask: %w", err)
	}

	return s.tasksRepository.GetTask(ctx, s.db, id)
}

func (s *Service) GetTasks(ctx context.Context, listID int64) ([]*model.Task, error) {
	return s.tasksRepository.GetTasks(ctx, s.db, listID)
}

func (s *Service) UpdateTask(ctx context.Context, task *model.Task) error {
	if err := s.tasksRepository.UpdateTask(ctx, s.db, task); err != nil {
		return fmt.Errorf("tasksRepository.UpdateTask: %w", err)
	}
	return nil
}

// ToggleTask flips a task's done flag and returns the updated task.
func (s *Service) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	task, err := s.tasksRepository.GetTask(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	task.Done = !task.Done
	if err := s.tasksRepository.UpdateTask(ctx, s.db, task); err != nil {
		return nil, fmt.Errorf("tasksRepository.UpdateTask: %w", err)
	}

	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasksRepository.DeleteTask(ctx, s.db, id); err != nil {
		return fmt.Errorf("tasksRepository.DeleteTask: %w", err)
	}
	return nil
}

// ClearCompleted removes every finished task from the list.
func (s *Service) ClearCompleted(ctx context.Context, listID int64) error {
	if err := s.tasksRepository.DeleteCompleted(ctx, s.db, listID); err != nil {
		return fmt.Errorf("tasksRepository.DeleteCompleted: %w", err)
	}
	return nil
}
