// Package shared holds the JSON response helpers every handler uses, so the
// error envelope stays identical across endpoints.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "lendfold/pkg/domain-errors"
)

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes v with the given status. Encoding failures are swallowed;
// the status line has already gone out.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError translates a domain error into the shared envelope. Unknown
// errors map to a generic 500 so internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), errorEnvelope{
		Error:   string(code),
		Message: dErrors.MessageOf(err),
	})
}
