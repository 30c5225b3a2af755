package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorResponse is the wire shape of every failed request: {"message": "..."}.
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes data as the response body. Success responses carry the payload
// directly, without an envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error translates a domain error into an HTTP status plus a message body.
// The detail text comes from the error itself; the sentinel prefix (e.g.
// "not found: ") is stripped so clients see only the human-readable part.
func Error(w http.ResponseWriter, err error) {
	ErrorWithMessage(w, mapErrorToStatus(err), errorMessage(err))
}

// ErrorWithMessage writes an error response with an explicit status and message.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Message: message}); err != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus maps domain errors to HTTP status codes.
// errors.Is walks the wrap chain, so fmt.Errorf("%w: ...") values match too.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNoAccess):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the part of the error text after the sentinel prefix.
// "not found: Product is out of stock" → "Product is out of stock".
// An unwrapped sentinel or an unexpected error is returned as-is.
func errorMessage(err error) string {
	for _, sentinel := range []error{ErrBadRequest, ErrUnauthorized, ErrNoAccess, ErrNotFound, ErrAlreadyExists, ErrServer} {
		prefix := sentinel.Error() + ": "
		msg := err.Error()
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return err.Error()
}
