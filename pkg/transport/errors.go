package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
)

// MsgServerError is the only message clients ever see for non-operational
// failures. The real error is logged server-side with the request ID.
const MsgServerError = "Server Error"

// Translator is the single point where handler errors become HTTP
// responses. Operational errors (validation, auth, forbidden, not found)
// pass their status and message through; everything else is logged in
// full and reduced to a generic 500.
type Translator struct {
	logger *slog.Logger
}

// NewTranslator creates a Translator logging unexpected faults to logger.
// A nil logger falls back to slog.Default.
func NewTranslator(logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{logger: logger}
}

// Wrap adapts a Handler into an http.Handler, routing any returned error
// through the translator.
func (t *Translator) Wrap(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			t.WriteError(w, r, err)
		}
	})
}

// WriteError writes the failure envelope for err. The response body never
// carries details of unexpected faults.
func (t *Translator) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *api.Error
	if errors.As(err, &appErr) && appErr.Operational() {
		writeJSON(w, appErr.Status(), api.Envelope{Success: false, Message: appErr.Message})
		return
	}

	t.logger.Error("unhandled error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, api.Envelope{Success: false, Message: MsgServerError})
}

// WriteSuccess writes the success envelope with the given status, message,
// and optional data payload.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, api.Envelope{Success: true, Message: message, Data: data})
}

// writeJSON encodes v with the JSON content type and the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
