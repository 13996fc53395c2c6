package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches any ServerError for a 404 response.
var ErrNotFound = errors.New("catalog: not found")

// NetworkError means the request never completed.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response, or a 2xx response that could not be decoded.
type ServerError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: server returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: server returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ValidationError is the server rejecting the payload.
type ValidationError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: payload rejected (%d): %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func statusError(method, path string, status int, body string) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Method: method, Path: path, StatusCode: status, Body: body}
	default:
		return &ServerError{Method: method, Path: path, StatusCode: status, Body: body}
	}
}
