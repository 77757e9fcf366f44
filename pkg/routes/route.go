package routes

import (
	"net/http"

	"github.com/JaimeStill/backoffice/pkg/openapi"
)

// Route is a single endpoint within a Group.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
