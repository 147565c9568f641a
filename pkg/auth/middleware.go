package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
	"github.com/aufgabe-dev/aufgabe/pkg/debug"
	"github.com/aufgabe-dev/aufgabe/pkg/observability"
	"github.com/aufgabe-dev/aufgabe/pkg/storage"
)

// Fixed rejection messages. Both token failures use the same generic text
// so responses reveal nothing about why verification failed.
const (
	MsgNoToken     = "Not authorized, no token provided"
	MsgTokenFailed = "Not authorized, token failed"
)

// Middleware creates HTTP middleware that protects the wrapped routes.
// It extracts a bearer token from the Authorization header, verifies it,
// resolves the subject to a stored user with the password hash stripped,
// and injects the user into the request context. Any failure rejects the
// request with 401 before the downstream handler runs.
//
// A verified token whose subject no longer resolves to a user is rejected
// rather than passed through with a nil identity: tokens outlive account
// deletion, and downstream handlers assume a non-nil user.
func Middleware(tokens *TokenService, users storage.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				observability.AuthFailuresTotal.WithLabelValues("no_token").Inc()
				reject(w, MsgNoToken)
				return
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				debug.Log("auth", "token verification failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				observability.AuthFailuresTotal.WithLabelValues("bad_token").Inc()
				reject(w, MsgTokenFailed)
				return
			}

			user, err := users.GetUserByID(r.Context(), subject)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					slog.Warn("token subject no longer resolves", "subject", subject)
					observability.AuthFailuresTotal.WithLabelValues("unknown_subject").Inc()
					reject(w, MsgTokenFailed)
					return
				}
				slog.Error("loading user for token subject", "subject", subject, "error", err)
				writeJSON(w, http.StatusInternalServerError, api.Envelope{
					Success: false,
					Message: "Server Error",
				})
				return
			}

			// The store projection includes the hash; strip it before the
			// user object travels through handler code.
			user.PasswordHash = ""

			next.ServeHTTP(w, r.WithContext(SetUser(r.Context(), user)))
		})
	}
}

func reject(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, api.Envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body api.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
