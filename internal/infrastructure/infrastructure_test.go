package infrastructure_test

import (
	"testing"

	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/infrastructure"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.BasePath = t.TempDir()
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil || infra.Logger == nil || infra.Storage == nil || infra.Upstream == nil || infra.Previews == nil {
		t.Fatalf("New() left systems unset: %+v", infra)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()
	if !infra.Lifecycle.Ready() {
		t.Error("Ready() = false after startup")
	}
}
