package api

import (
	"fmt"
	"net/http"
)

// Error is the one failure value the client returns for anything beyond its
// own boundary: non-2xx responses carry the HTTP status, transport failures
// carry Status == 0.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Detail
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.Status)
}

// Network reports whether the failure happened before any response arrived.
func (e *Error) Network() bool { return e.Status == 0 }

// Unauthorized reports a rejected or missing token. Token validity is only
// ever discovered this way; the client never inspects the token itself.
func (e *Error) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

func connectionError() *Error {
	return &Error{Detail: "connection error"}
}

// defaultDetail is the fallback message when the response body has no usable
// "detail" field.
func defaultDetail(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "not authenticated"
	case http.StatusForbidden:
		return "permission denied"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "validation failed"
	default:
		if status >= 500 {
			return "server error"
		}
		return "request failed"
	}
}
