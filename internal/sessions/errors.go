package sessions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/backoffice/internal/resources"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrInvalidFile     = errors.New("invalid file")
	ErrNoFiles         = errors.New("no files uploaded")
)

// MapHTTPStatus converts session errors to HTTP status codes. Resource and
// content API errors map the way the resources package maps them.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSlotNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrNoFiles) {
		return http.StatusBadRequest
	}
	return resources.MapHTTPStatus(err)
}
