package storage

import (
	"context"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
)

// TaskFilter controls pagination and filtering for task listings.
// Page and Limit are 1-based; the zero value is normalized by Normalize.
type TaskFilter struct {
	Page   int
	Limit  int
	Status api.TaskStatus // empty means no status filter
}

// Normalize applies the default page (1) and limit (10) for out-of-range
// values and returns the row offset for the window.
func (f *TaskFilter) Normalize() (offset int) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	return (f.Page - 1) * f.Limit
}

// UserStore handles persistence of user accounts.
type UserStore interface {
	// CreateUser stores a new user. Returns ErrConflict if the email is
	// already registered (case-insensitive).
	CreateUser(ctx context.Context, user *api.User) error

	// GetUserByEmail retrieves a user by email, case-insensitively.
	// Returns ErrNotFound if no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*api.User, error)

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*api.User, error)
}

// TaskStore handles persistence of tasks.
type TaskStore interface {
	// CreateTask stores a new task.
	CreateTask(ctx context.Context, task *api.Task) error

	// GetTask retrieves a task by ID regardless of owner; ownership is
	// enforced by the task service. Returns ErrNotFound if absent.
	GetTask(ctx context.Context, id string) (*api.Task, error)

	// ListTasks returns one page of the user's tasks sorted newest-created
	// first, plus the total number of matching tasks across all pages.
	ListTasks(ctx context.Context, userID string, filter TaskFilter) ([]*api.Task, int, error)

	// UpdateTask persists changes to an existing task. Returns ErrNotFound
	// if the task no longer exists.
	UpdateTask(ctx context.Context, task *api.Task) error

	// DeleteTask removes a task by ID. Returns ErrNotFound if absent.
	DeleteTask(ctx context.Context, id string) error
}

// Store combines the user and task stores with lifecycle operations; both
// storage adapters implement it.
type Store interface {
	UserStore
	TaskStore

	// HealthCheck verifies the store connection is functional.
	HealthCheck(ctx context.Context) error

	// Close releases database connections and resources.
	Close() error
}
