package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// RequestID returns middleware that assigns a unique request ID to each
// request. An ID supplied by the client in X-Request-ID is kept; otherwise
// a new one is generated. The ID is stored in the request context and
// echoed on the response so clients can correlate log entries.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			r = r.WithContext(ContextWithRequestID(r.Context(), id))
			next.ServeHTTP(w, r)
		})
	}
}
