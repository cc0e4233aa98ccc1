package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the performance API client.
var (
	ErrNotFound = errors.New("resource not found")
	ErrUpstream = errors.New("performance api request failed")
)

// APIError is a non-2xx response from the performance API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("performance api: status %d", e.Status)
	}
	return fmt.Sprintf("performance api: status %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match with errors.Is(err, ErrNotFound) / ErrUpstream.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrUpstream
}
