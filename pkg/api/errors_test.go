package api

import (
	"net/http"
	"testing"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err        *Error
		wantStatus int
	}{
		{NewValidationError("bad input"), http.StatusBadRequest},
		{NewAuthError("Invalid credentials"), http.StatusUnauthorized},
		{NewForbiddenError("not yours"), http.StatusForbidden},
		{NewNotFoundError("Task not found"), http.StatusNotFound},
		{NewServerError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.err.Status(); got != tt.wantStatus {
			t.Errorf("%s: Status() = %d, want %d", tt.err.Type, got, tt.wantStatus)
		}
	}
}

func TestErrorOperational(t *testing.T) {
	if NewServerError("boom").Operational() {
		t.Error("server error reported as operational")
	}
	for _, e := range []*Error{
		NewValidationError("v"),
		NewAuthError("a"),
		NewForbiddenError("f"),
		NewNotFoundError("n"),
	} {
		if !e.Operational() {
			t.Errorf("%s error reported as non-operational", e.Type)
		}
	}
}

func TestErrorString(t *testing.T) {
	e := NewNotFoundError("Task not found")
	want := "not_found: Task not found"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}
