package previews

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/backoffice/pkg/storage"
)

var ErrNotFound = errors.New("preview not found")

// MapHTTPStatus converts preview errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
