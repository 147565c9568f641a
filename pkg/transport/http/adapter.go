// Package http serves the aufgabe task API over HTTP.
//
// The adapter owns routing, request decoding, and per-route validation;
// business logic lives in pkg/account and pkg/task, and error translation
// in pkg/transport.
package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aufgabe-dev/aufgabe/pkg/account"
	"github.com/aufgabe-dev/aufgabe/pkg/api"
	"github.com/aufgabe-dev/aufgabe/pkg/auth"
	"github.com/aufgabe-dev/aufgabe/pkg/observability"
	"github.com/aufgabe-dev/aufgabe/pkg/storage"
	"github.com/aufgabe-dev/aufgabe/pkg/task"
	"github.com/aufgabe-dev/aufgabe/pkg/transport"
)

// Route rule sets. Built once at startup, read-only at request time; every
// message matches what clients have always received from this API.
var (
	registerRules = api.RuleSet{
		api.Required("name", "Name is required"),
		api.Email("email", "Please provide a valid email"),
		api.MinLength("password", 6, "Password must be at least 6 characters"),
	}

	loginRules = api.RuleSet{
		api.Email("email", "Please provide a valid email"),
		api.Required("password", "Password is required"),
	}

	createTaskRules = api.RuleSet{
		api.Required("title", "Task title is required"),
		api.OneOf("status", []string{"pending", "completed"},
			"Status must be either pending or completed"),
	}

	updateTaskRules = api.RuleSet{
		api.OptionalNonEmpty("title", "Task title cannot be empty"),
		api.OneOf("status", []string{"pending", "completed"},
			"Status must be either pending or completed"),
	}
)

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64
	CORSOrigin  string
	Metrics     bool
	MetricsPath string
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MB
		Metrics:     true,
		MetricsPath: "/metrics",
	}
}

// Adapter routes HTTP requests to the account and task services.
type Adapter struct {
	accounts   *account.Service
	tasks      *task.Service
	store      storage.Store
	translator *transport.Translator
	config     Config
	mux        *http.ServeMux
}

// NewAdapter creates an HTTP adapter. The auth gate built from tokens and
// the store protects every /api/tasks route; register and login stay open.
func NewAdapter(
	accounts *account.Service,
	tasks *task.Service,
	store storage.Store,
	tokens *auth.TokenService,
	logger *slog.Logger,
	cfg Config,
) *Adapter {
	a := &Adapter{
		accounts:   accounts,
		tasks:      tasks,
		store:      store,
		translator: transport.NewTranslator(logger),
		config:     cfg,
		mux:        http.NewServeMux(),
	}

	guard := auth.Middleware(tokens, store)

	a.mux.HandleFunc("GET /{$}", a.handleLiveness)
	a.mux.HandleFunc("GET /healthz", a.handleHealth)
	a.mux.Handle("POST /api/auth/register", a.handler(a.handleRegister))
	a.mux.Handle("POST /api/auth/login", a.handler(a.handleLogin))
	a.mux.Handle("POST /api/tasks", guard(a.handler(a.handleCreateTask)))
	a.mux.Handle("GET /api/tasks", guard(a.handler(a.handleListTasks)))
	a.mux.Handle("PUT /api/tasks/{id}", guard(a.handler(a.handleUpdateTask)))
	a.mux.Handle("DELETE /api/tasks/{id}", guard(a.handler(a.handleDeleteTask)))

	if cfg.Metrics {
		a.mux.Handle("GET "+cfg.MetricsPath, promhttp.Handler())
	}

	return a
}

// Handler returns the complete http.Handler: the router wrapped in
// recovery, request ID, logging, metrics, and CORS middleware.
func (a *Adapter) Handler(logger *slog.Logger) http.Handler {
	chain := transport.Chain(
		transport.Recovery(logger),
		transport.RequestID(),
		transport.Logging(logger),
		observability.MetricsMiddleware,
		transport.CORS(a.config.CORSOrigin),
	)
	return chain(a.mux)
}

// handler wraps a transport.Handler with the centralized error translator.
func (a *Adapter) handler(h transport.Handler) http.Handler {
	return a.translator.Wrap(h)
}

func (a *Adapter) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.store.HealthCheck(r.Context()); err != nil {
		a.translator.WriteError(w, r, err)
		return
	}
	transport.WriteSuccess(w, http.StatusOK, "healthy", nil)
}

func (a *Adapter) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var req api.RegisterRequest
	if err := a.decode(w, r, registerRules, &req); err != nil {
		return err
	}

	user, err := a.accounts.Register(r.Context(), req)
	if err != nil {
		return err
	}

	transport.WriteSuccess(w, http.StatusCreated, "User registered successfully",
		api.RegisterData{User: *user})
	return nil
}

func (a *Adapter) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req api.LoginRequest
	if err := a.decode(w, r, loginRules, &req); err != nil {
		return err
	}

	data, err := a.accounts.Login(r.Context(), req)
	if err != nil {
		return err
	}

	transport.WriteSuccess(w, http.StatusOK, "Login successful", data)
	return nil
}

func (a *Adapter) handleCreateTask(w http.ResponseWriter, r *http.Request) error {
	user, err := requestUser(r)
	if err != nil {
		return err
	}

	var req api.CreateTaskRequest
	if err := a.decode(w, r, createTaskRules, &req); err != nil {
		return err
	}

	created, err := a.tasks.Create(r.Context(), user.ID, req)
	if err != nil {
		return err
	}

	transport.WriteSuccess(w, http.StatusCreated, "Task created successfully",
		api.TaskData{Task: created})
	return nil
}

func (a *Adapter) handleListTasks(w http.ResponseWriter, r *http.Request) error {
	user, err := requestUser(r)
	if err != nil {
		return err
	}

	filter, err := listFilter(r)
	if err != nil {
		return err
	}

	list, err := a.tasks.List(r.Context(), user.ID, filter)
	if err != nil {
		return err
	}

	transport.WriteSuccess(w, http.StatusOK, "Tasks fetched successfully", list)
	return nil
}

func (a *Adapter) handleUpdateTask(w http.ResponseWriter, r *http.Request) error {
	user, err := requestUser(r)
	if err != nil {
		return err
	}

	var req api.UpdateTaskRequest
	if err := a.decode(w, r, updateTaskRules, &req); err != nil {
		return err
	}

	updated, err := a.tasks.Update(r.Context(), user.ID, r.PathValue("id"), req)
	if err != nil {
		return err
	}

	transport.WriteSuccess(w, http.StatusOK, "Task updated successfully",
		api.TaskData{Task: updated})
	return nil
}

func (a *Adapter) handleDeleteTask(w http.ResponseWriter, r *http.Request) error {
	user, err := requestUser(r)
	if err != nil {
		return err
	}

	if err := a.tasks.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		return err
	}

	transport.WriteSuccess(w, http.StatusOK, "Task deleted successfully", nil)
	return nil
}

// decode reads the request body once, validates it as a generic JSON object
// against the route's rule set, then binds it to the typed request. The
// two-step decode keeps validation declarative without reflecting over the
// request structs.
func (a *Adapter) decode(w http.ResponseWriter, r *http.Request, rules api.RuleSet, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return api.NewValidationError("Invalid request body")
	}

	payload := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return api.NewValidationError("Invalid request body")
		}
	}

	if verr := rules.Validate(payload); verr != nil {
		return verr
	}

	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return api.NewValidationError("Invalid request body")
	}
	return nil
}

// requestUser returns the authenticated user injected by the auth gate.
// Reaching a protected handler without one means the route was wired
// without the gate, which is a server fault, not a client error.
func requestUser(r *http.Request) (*api.User, error) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		return nil, api.NewServerError("no authenticated user in request context")
	}
	return user, nil
}

// listFilter parses the pagination and status query parameters. Malformed
// numbers fall back to the defaults; an unknown status is a validation
// failure rather than silently returning everything.
func listFilter(r *http.Request) (storage.TaskFilter, error) {
	q := r.URL.Query()
	filter := storage.TaskFilter{}

	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("status"); v != "" {
		if !api.ValidTaskStatus(v) {
			return filter, api.NewValidationError("Status must be either pending or completed")
		}
		filter.Status = api.TaskStatus(v)
	}
	return filter, nil
}
