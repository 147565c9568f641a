package transport

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
)

// Recovery returns middleware that catches panics in the handler chain and
// converts them to generic server error responses. The server continues to
// accept new requests after a panic is recovered.
func Recovery(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", RequestIDFromContext(r.Context()),
						"stack", string(debug.Stack()),
					)
					writeJSON(w, http.StatusInternalServerError,
						api.Envelope{Success: false, Message: MsgServerError})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
