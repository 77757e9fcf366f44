// Package api assembles the JSON API module: resource browsing, edit
// sessions and the generated OpenAPI document.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/infrastructure"
	"github.com/JaimeStill/backoffice/pkg/middleware"
	"github.com/JaimeStill/backoffice/pkg/module"
	"github.com/JaimeStill/backoffice/pkg/openapi"
)

// NewModule builds the API module mounted at cfg.API.BasePath and starts
// the systems it owns on the infrastructure lifecycle.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	if err := domain.Sessions.Start(runtime.Lifecycle); err != nil {
		return nil, fmt.Errorf("sessions start failed: %w", err)
	}

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.AddServer(cfg.Domain)
	cfg.API.OpenAPI.Apply(spec)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
