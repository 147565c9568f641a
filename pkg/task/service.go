// Package task implements per-user task management with ownership
// enforcement and paginated listings.
package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
	"github.com/aufgabe-dev/aufgabe/pkg/observability"
	"github.com/aufgabe-dev/aufgabe/pkg/storage"
)

const (
	// MsgTaskNotFound is returned when the addressed task does not exist.
	// It takes precedence over the ownership check: a caller probing a
	// foreign task ID that happens not to exist gets 404, not 403.
	MsgTaskNotFound = "Task not found"

	MsgNotOwnerUpdate = "Not authorized to update this task"
	MsgNotOwnerDelete = "Not authorized to delete this task"
)

// Service provides task CRUD scoped to the authenticated user.
type Service struct {
	tasks storage.TaskStore
}

// NewService creates a task service.
func NewService(tasks storage.TaskStore) *Service {
	return &Service{tasks: tasks}
}

// Create stores a new task owned by userID. An absent status defaults to
// pending; status validity is enforced by request validation upstream.
func (s *Service) Create(ctx context.Context, userID string, req api.CreateTaskRequest) (*api.Task, error) {
	status := api.TaskStatus(req.Status)
	if status == "" {
		status = api.TaskStatusPending
	}

	t := &api.Task{
		ID:          api.NewTaskID(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		UserID:      userID,
	}

	if err := s.tasks.CreateTask(ctx, t); err != nil {
		return nil, api.NewServerError(fmt.Sprintf("creating task: %v", err))
	}

	observability.TasksCreatedTotal.Inc()
	return t, nil
}

// List returns one page of the user's tasks, newest-created first. The
// returned metadata echoes the normalized page and limit so clients can
// page without tracking their own request parameters.
func (s *Service) List(ctx context.Context, userID string, filter storage.TaskFilter) (*api.TaskList, error) {
	// Normalize here, not just in the store: the page math below and the
	// echoed metadata both need the defaulted window.
	filter.Normalize()

	items, total, err := s.tasks.ListTasks(ctx, userID, filter)
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("listing tasks: %v", err))
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit

	return &api.TaskList{
		Items: items,
		Meta: api.PageMeta{
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

// Update applies the provided fields to the task. The task must exist and
// be owned by userID; fields left nil keep their stored values.
func (s *Service) Update(ctx context.Context, userID, taskID string, req api.UpdateTaskRequest) (*api.Task, error) {
	t, err := s.load(ctx, taskID, userID, MsgNotOwnerUpdate)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		t.Status = api.TaskStatus(*req.Status)
	}

	if err := s.tasks.UpdateTask(ctx, t); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError(MsgTaskNotFound)
		}
		return nil, api.NewServerError(fmt.Sprintf("updating task: %v", err))
	}
	return t, nil
}

// Delete removes the task. The task must exist and be owned by userID.
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := s.load(ctx, taskID, userID, MsgNotOwnerDelete); err != nil {
		return err
	}

	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return api.NewNotFoundError(MsgTaskNotFound)
		}
		return api.NewServerError(fmt.Sprintf("deleting task: %v", err))
	}
	return nil
}

// load fetches a task and runs the existence-then-ownership gate shared by
// Update and Delete.
func (s *Service) load(ctx context.Context, taskID, userID, forbiddenMsg string) (*api.Task, error) {
	t, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError(MsgTaskNotFound)
		}
		return nil, api.NewServerError(fmt.Sprintf("loading task: %v", err))
	}
	if t.UserID != userID {
		return nil, api.NewForbiddenError(forbiddenMsg)
	}
	return t, nil
}
