package resources

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/backoffice/pkg/upstream"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrNotFound         = errors.New("record not found")
	ErrUnsupported      = errors.New("operation not supported")
	ErrInvalidToggle    = errors.New("invalid toggle request")
)

func unsupported(name string, op Operation) error {
	return fmt.Errorf("%s %s: %w", name, op, ErrUnsupported)
}

// MapHTTPStatus converts resource and content API errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnsupported) {
		return http.StatusMethodNotAllowed
	}
	if errors.Is(err, ErrInvalidToggle) {
		return http.StatusBadRequest
	}
	return UpstreamStatus(err)
}

// UpstreamStatus maps a content API failure: 404 and other client errors
// pass through, anything else is a bad gateway.
func UpstreamStatus(err error) int {
	var serr *upstream.StatusError
	if errors.As(err, &serr) {
		if serr.Status >= 400 && serr.Status < 500 {
			return serr.Status
		}
		return http.StatusBadGateway
	}
	if errors.Is(err, upstream.ErrUpstream) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
