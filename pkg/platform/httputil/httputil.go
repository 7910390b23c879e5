// Package httputil centralizes JSON response writing so handlers stay focused
// on request parsing and service calls.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "riskgate/pkg/domain-errors"
)

// errorResponse is the wire shape of every error the API returns.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError converts a domain error into an HTTP error response. Internal
// errors never expose their description; the caller is expected to have
// logged the detail already.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := errorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		body.ErrorDescription = dErrors.MessageOf(err)
	}
	WriteJSON(w, dErrors.ToHTTPStatus(err), body)
}
