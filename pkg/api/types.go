package api

import "time"

// ---------------------------------------------------------------------------
// Identities
// ---------------------------------------------------------------------------

// User represents a registered account. The password hash is excluded from
// all JSON serialization; only the store layer ever sees it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// PublicUser is the user projection returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	}
	return false
}

// Task represents a unit of work owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Request payloads
// ---------------------------------------------------------------------------

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTaskRequest is the payload for POST /api/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateTaskRequest is the payload for PUT /api/tasks/{id}. All fields are
// optional; absent fields leave the stored value unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ---------------------------------------------------------------------------
// Response payloads
// ---------------------------------------------------------------------------

// Envelope is the uniform response shape for every endpoint: success carries
// {success:true, message, data}, failure carries {success:false, message}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// AuthData is the data payload for a successful login.
type AuthData struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// RegisterData is the data payload for a successful registration.
type RegisterData struct {
	User PublicUser `json:"user"`
}

// TaskData wraps a single task in a response payload.
type TaskData struct {
	Task *Task `json:"task"`
}

// PageMeta describes the pagination window of a list response.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TaskList is the data payload for GET /api/tasks.
type TaskList struct {
	Items []*Task  `json:"items"`
	Meta  PageMeta `json:"meta"`
}
