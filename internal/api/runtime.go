package api

import (
	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/infrastructure"
	"github.com/JaimeStill/backoffice/pkg/assets"
	"github.com/JaimeStill/backoffice/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination    pagination.Config
	Resolver      assets.Resolver
	MaxUploadSize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Storage:   infra.Storage,
			Upstream:  infra.Upstream,
			Previews:  infra.Previews,
		},
		Pagination:    cfg.API.Pagination,
		Resolver:      assets.Resolver{BaseURL: cfg.Upstream.AssetBaseURL},
		MaxUploadSize: cfg.Storage.MaxUploadSizeBytes(),
	}
}
