package routes

import (
	"net/http"

	"github.com/JaimeStill/backoffice/pkg/openapi"
)

// Register mounts every route of groups on mux and documents the routes
// that carry an OpenAPI operation. basePath prefixes documented paths only;
// mux patterns are relative to the module that serves them.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, g := range groups {
		for pattern, r := range g.All() {
			mux.HandleFunc(r.Method+" "+pattern, r.Handler)
			if r.OpenAPI != nil && spec != nil {
				spec.AddOperation(basePath+pattern, r.Method, r.OpenAPI)
			}
		}
	}
}
