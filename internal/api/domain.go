package api

import (
	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/resources"
	"github.com/JaimeStill/backoffice/internal/sessions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Resources resources.System
	Sessions  sessions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	resourcesSys := resources.New(runtime.Logger, runtime.Pagination)

	sessionsSys := sessions.New(
		resourcesSys,
		runtime.Storage,
		runtime.Previews,
		runtime.Resolver,
		sessions.Config{
			TTL:           cfg.Sessions.TTLDuration(),
			SweepInterval: cfg.Sessions.SweepIntervalDuration(),
			StagingPrefix: cfg.Storage.StagingPrefix,
		},
		runtime.Logger,
	)

	return &Domain{
		Resources: resourcesSys,
		Sessions:  sessionsSys,
	}
}
