package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func TestTranslatorOperationalErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *api.Error
		wantStatus int
	}{
		{name: "validation", err: api.NewValidationError("Name is required"), wantStatus: 400},
		{name: "auth", err: api.NewAuthError("Invalid credentials"), wantStatus: 401},
		{name: "forbidden", err: api.NewForbiddenError("Not authorized to update this task"), wantStatus: 403},
		{name: "not found", err: api.NewNotFoundError("Task not found"), wantStatus: 404},
	}

	tr := NewTranslator(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tr.Wrap(func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			})

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if env.Success || env.Message != tt.err.Message {
				t.Errorf("envelope = %+v, want failure %q", env, tt.err.Message)
			}
		})
	}
}

func TestTranslatorHidesInternalDetail(t *testing.T) {
	var logBuf bytes.Buffer
	tr := NewTranslator(slog.New(slog.NewTextHandler(&logBuf, nil)))

	tests := []struct {
		name string
		err  error
	}{
		{name: "typed server error", err: api.NewServerError("pgx: connection refused on 10.0.0.5")},
		{name: "untyped error", err: errors.New("pgx: connection refused on 10.0.0.5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuf.Reset()
			handler := tr.Wrap(func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			})

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/tasks", nil))

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Message != MsgServerError {
				t.Errorf("client message = %q, want %q", env.Message, MsgServerError)
			}
			if strings.Contains(rec.Body.String(), "10.0.0.5") {
				t.Error("internal detail leaked to client")
			}
			if !strings.Contains(logBuf.String(), "10.0.0.5") {
				t.Error("internal detail missing from server log")
			}
		})
	}
}

func TestTranslatorSuccessPassthrough(t *testing.T) {
	tr := NewTranslator(nil)
	handler := tr.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		WriteSuccess(w, http.StatusCreated, "Task created successfully", map[string]string{"id": "task_x"})
		return nil
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/tasks", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success || env.Message != "Task created successfully" {
		t.Errorf("envelope = %+v", env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}
