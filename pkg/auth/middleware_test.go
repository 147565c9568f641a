package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
	"github.com/aufgabe-dev/aufgabe/pkg/storage/memory"
)

// protectedEcho wires the middleware around a handler that records the
// context user.
func protectedEcho(t *testing.T, tokens *TokenService, store *memory.Store, got **api.User) http.Handler {
	t.Helper()
	mw := Middleware(tokens, store)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func seedUser(t *testing.T, store *memory.Store) *api.User {
	t.Helper()
	u := &api.User{
		ID:           api.NewUserID(),
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$notarealhash",
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func TestMiddleware_NoToken(t *testing.T) {
	tokens := NewTokenService(testSecret)
	store := memory.New()

	var got *api.User
	handler := protectedEcho(t, tokens, store, &got)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "bearer without value", header: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Success || env.Message != MsgNoToken {
				t.Errorf("envelope = %+v, want failure %q", env, MsgNoToken)
			}
			if got != nil {
				t.Error("handler ran despite rejection")
			}
		})
	}
}

func TestMiddleware_BadToken(t *testing.T) {
	tokens := NewTokenService(testSecret)
	store := memory.New()

	var got *api.User
	handler := protectedEcho(t, tokens, store, &got)

	otherService := NewTokenService([]byte("some-other-secret"))
	foreign, err := otherService.Issue("usr_whoever")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, token := range []string{"garbage", foreign} {
		req := httptest.NewRequest("GET", "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Message != MsgTokenFailed {
			t.Errorf("message = %q, want %q", env.Message, MsgTokenFailed)
		}
	}
	if got != nil {
		t.Error("handler ran despite rejection")
	}
}

func TestMiddleware_UnknownSubjectFailsClosed(t *testing.T) {
	tokens := NewTokenService(testSecret)
	store := memory.New()

	// Valid signature, but the subject was never registered (or has been
	// deleted since issuance).
	orphan, err := tokens.Issue(api.NewUserID())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got *api.User
	handler := protectedEcho(t, tokens, store, &got)

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+orphan)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != MsgTokenFailed {
		t.Errorf("message = %q, want %q", env.Message, MsgTokenFailed)
	}
	if got != nil {
		t.Error("handler ran with unresolved subject")
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	tokens := NewTokenService(testSecret)
	store := memory.New()
	u := seedUser(t, store)

	token, err := tokens.Issue(u.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got *api.User
	handler := protectedEcho(t, tokens, store, &got)

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil {
		t.Fatal("no user in handler context")
	}
	if got.ID != u.ID || got.Email != u.Email {
		t.Errorf("context user = %+v, want %s", got, u.ID)
	}
	if got.PasswordHash != "" {
		t.Error("password hash leaked into request context")
	}
}
