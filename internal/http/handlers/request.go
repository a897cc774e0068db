package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hongminglow/atithi-inn/internal/http/respond"
	"github.com/hongminglow/atithi-inn/internal/service"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respond.Error(w, http.StatusRequestEntityTooLarge, "Request body too large", service.CodeValidationFailed)
	case errors.Is(err, io.EOF):
		respond.Error(w, http.StatusBadRequest, "Request body is required", service.CodeValidationFailed)
	default:
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload", service.CodeValidationFailed)
	}
	return false
}

// deletedBody is returned by delete endpoints.
func deletedBody() respond.Envelope {
	return respond.Envelope{"data": struct{}{}}
}
