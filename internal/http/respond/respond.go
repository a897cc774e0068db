// Package respond writes the JSON envelopes shared by every endpoint.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hongminglow/atithi-inn/internal/service"
)

// Envelope is a free-form success body; JSON adds "success": true.
type Envelope map[string]any

// ErrorBody is the failure envelope. Error carries internal detail and is
// only filled in development mode.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON writes payload with the given status. Envelope payloads get
// "success": true unless they already carry it.
func JSON(w http.ResponseWriter, status int, payload any) {
	if env, ok := payload.(Envelope); ok {
		if _, set := env["success"]; !set {
			env["success"] = true
		}
	}
	write(w, status, payload)
}

// Message writes {success: true, message}.
func Message(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{"success": true, "message": message})
}

// Error writes an error response with an optional machine-readable code.
func Error(w http.ResponseWriter, status int, message, code string) {
	write(w, status, ErrorBody{Message: message, Code: code})
}

// Fail converts a service error into its status and envelope. Anything that
// is not a *service.Error becomes a generic 500.
func Fail(w http.ResponseWriter, err error, dev bool) {
	se := service.AsError(err)
	body := ErrorBody{Message: se.Message, Code: se.Code, Field: se.Field}
	if dev && se.Kind == service.KindInternal && se.Err != nil {
		body.Error = se.Err.Error()
	}
	write(w, se.Kind.Status(), body)
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}
