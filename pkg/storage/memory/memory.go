// Package memory provides an in-memory implementation of storage.Store for
// testing and storage-free deployments. All data is lost when the process
// restarts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
	"github.com/aufgabe-dev/aufgabe/pkg/storage"
)

// Store is an in-memory user and task store guarded by a single RWMutex.
type Store struct {
	mu    sync.RWMutex
	users map[string]*api.User // keyed by user ID
	tasks map[string]*api.Task // keyed by task ID
}

// Ensure Store implements storage.Store at compile time.
var _ storage.Store = (*Store)(nil)

// New creates a new empty in-memory store.
func New() *Store {
	return &Store{
		users: make(map[string]*api.User),
		tasks: make(map[string]*api.Task),
	}
}

// CreateUser stores a new user. The email uniqueness check is
// case-insensitive, matching the lower(email) unique index in postgres.
func (s *Store) CreateUser(_ context.Context, user *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lowered := strings.ToLower(user.Email)
	for _, u := range s.users {
		if strings.ToLower(u.Email) == lowered {
			return storage.ErrConflict
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lowered := strings.ToLower(email)
	for _, u := range s.users {
		if strings.ToLower(u.Email) == lowered {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(_ context.Context, id string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// CreateTask stores a new task.
func (s *Store) CreateTask(_ context.Context, task *api.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return storage.ErrConflict
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := *task
	s.tasks[task.ID] = &stored
	return nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(_ context.Context, id string) (*api.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

// ListTasks returns one page of the user's tasks, newest-created first,
// plus the total number of matching tasks.
func (s *Store) ListTasks(_ context.Context, userID string, filter storage.TaskFilter) ([]*api.Task, int, error) {
	offset := filter.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*api.Task
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		copied := *t
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			// Stable order for tasks created within the same tick.
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []*api.Task{}, total, nil
	}
	end := offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// UpdateTask persists changes to an existing task.
func (s *Store) UpdateTask(_ context.Context, task *api.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return storage.ErrNotFound
	}

	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now()

	stored := *task
	s.tasks[task.ID] = &stored
	return nil
}

// DeleteTask removes a task by ID.
func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
