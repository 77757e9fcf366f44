package upstream

import (
	"errors"
	"fmt"
)

// ErrUpstream matches every failed content API call: transport errors and non-2xx responses.
var ErrUpstream = errors.New("upstream request failed")

// ErrResponseTooLarge is returned when a response body exceeds max_response_size.
var ErrResponseTooLarge = errors.New("upstream response too large")

// StatusError is a non-2xx response. Message is taken from the response
// body's "message" field when present.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstream
}
