package main

import (
	"net/http"

	"github.com/JaimeStill/backoffice/internal/api"
	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/infrastructure"
	"github.com/JaimeStill/backoffice/internal/previews"
	"github.com/JaimeStill/backoffice/pkg/module"
)

type Modules struct {
	API      *module.Module
	Previews *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:      apiModule,
		Previews: previews.NewModule(infra.Previews, infra.Logger),
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Previews)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
