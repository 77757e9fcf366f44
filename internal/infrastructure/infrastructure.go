// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, storage, content API client, previews) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/previews"
	"github.com/JaimeStill/backoffice/pkg/lifecycle"
	"github.com/JaimeStill/backoffice/pkg/logging"
	"github.com/JaimeStill/backoffice/pkg/storage"
	"github.com/JaimeStill/backoffice/pkg/upstream"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Upstream  *upstream.Client
	Previews  *previews.Registry
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Storage:   store,
		Upstream:  upstream.New(&cfg.Upstream, logger),
		Previews:  previews.NewRegistry(store, logger),
	}, nil
}

// Start registers infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
