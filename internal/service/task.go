package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tasktrack/tasktrack-go/internal/model"
	"github.com/tasktrack/tasktrack-go/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrForbidden    = errors.New("you do not have permission to perform this action")
)

// Caller identifies the authenticated user making a request.
type Caller struct {
	ID      int64
	IsAdmin bool
}

// TaskService handles task business logic: owner scoping on reads and the
// owner-or-admin policy on mutations.
type TaskService struct {
	tasks  repository.Tasks
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks repository.Tasks, logger *slog.Logger) *TaskService {
	return &TaskService{tasks: tasks, logger: logger}
}

// Create stores a new task owned by the caller. Ownership always comes from
// the caller, never from the request body.
func (s *TaskService) Create(ctx context.Context, caller Caller, req model.CreateTaskRequest) (*model.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, FieldErrors{"title": "Title is required."}
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		OwnerID:     caller.ID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	// Re-read for server-assigned timestamps and the owner's username.
	created, err := s.tasks.GetByID(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("read back created task: %w", err)
	}

	s.logger.InfoContext(ctx, "task created",
		slog.Int64("task_id", created.ID),
		slog.Int64("owner_id", caller.ID),
	)

	return created, nil
}

// List returns all tasks owned by the caller.
func (s *TaskService) List(ctx context.Context, caller Caller) ([]model.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task scoped to the caller. A task owned by someone
// else is reported as not found, never as forbidden.
func (s *TaskService) Get(ctx context.Context, caller Caller, id int64) (*model.Task, error) {
	task, err := s.tasks.GetOwned(ctx, caller.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Update applies the non-nil fields of the request to the task, subject to
// the owner-or-admin policy.
func (s *TaskService) Update(ctx context.Context, caller Caller, id int64, req model.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task for update: %w", err)
	}

	if !CanModify(caller, task) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, FieldErrors{"title": "Title must not be empty."}
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	updated, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read back updated task: %w", err)
	}

	return updated, nil
}

// Delete removes a task, subject to the owner-or-admin policy.
func (s *TaskService) Delete(ctx context.Context, caller Caller, id int64) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("get task for delete: %w", err)
	}

	if !CanModify(caller, task) {
		return ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.InfoContext(ctx, "task deleted",
		slog.Int64("task_id", id),
		slog.Int64("caller_id", caller.ID),
	)

	return nil
}
