package api

import (
	"net/http"

	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/resources"
	"github.com/JaimeStill/backoffice/internal/sessions"
	"github.com/JaimeStill/backoffice/pkg/openapi"
	"github.com/JaimeStill/backoffice/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	resourcesHandler := resources.NewHandler(domain.Resources, runtime.Upstream, runtime.Logger, runtime.Pagination)
	sessionsHandler := sessions.NewHandler(domain.Sessions, runtime.Upstream, runtime.Logger, runtime.MaxUploadSize)

	spec.Components.AddSchemas(resources.Spec.Schemas())
	spec.Components.AddSchemas(sessions.Spec.Schemas())

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		resourcesHandler.Routes(),
		sessionsHandler.Routes(),
	)
}
