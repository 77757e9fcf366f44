package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/JaimeStill/backoffice/internal/config"
)

func chdirRoot(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir("../../"); err != nil {
		t.Fatalf("chdir to repo root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoad_BaseConfig(t *testing.T) {
	t.Setenv(config.EnvServiceEnv, "")
	chdirRoot(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want %q", cfg.API.BasePath, "/api")
	}
	if cfg.API.Pagination.DefaultPageSize != 5 {
		t.Errorf("DefaultPageSize = %d, want 5", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Storage.MaxUploadSizeBytes() != 50_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 50000000", cfg.Storage.MaxUploadSizeBytes())
	}
	if cfg.Sessions.TTLDuration() != 2*time.Hour {
		t.Errorf("Sessions.TTL = %v, want 2h", cfg.Sessions.TTLDuration())
	}
}

func TestLoad_WithOverlay(t *testing.T) {
	chdirRoot(t)

	overlay := `shutdown_timeout = "60s"

[server]
port = 9090

[upstream]
base_url = "https://content.example.com/api"
`
	if err := os.WriteFile("config.test.toml", []byte(overlay), 0644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	t.Cleanup(func() { os.Remove("config.test.toml") })
	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() with overlay failed: %v", err)
	}

	if cfg.ShutdownTimeout != "60s" {
		t.Errorf("ShutdownTimeout = %q, want %q", cfg.ShutdownTimeout, "60s")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "https://content.example.com/api" {
		t.Errorf("Upstream.BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Env() != "test" {
		t.Errorf("Env() = %q, want %q", cfg.Env(), "test")
	}
}

func TestFinalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServiceShutdownTimeout, "45s")
	t.Setenv("UPSTREAM_BASE_URL", "https://env.example.com/api")
	t.Setenv(config.EnvSessionsTTL, "30m")

	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 45*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want 45s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Upstream.AssetBaseURL != "https://env.example.com" {
		t.Errorf("Upstream.AssetBaseURL = %q", cfg.Upstream.AssetBaseURL)
	}
	if cfg.Sessions.TTLDuration() != 30*time.Minute {
		t.Errorf("Sessions.TTL = %v, want 30m", cfg.Sessions.TTLDuration())
	}
}

func TestFinalize_InvalidDuration(t *testing.T) {
	cfg := &config.Config{ShutdownTimeout: "forever"}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() error = nil, want error")
	}
}

func TestServerConfig_Merge(t *testing.T) {
	base := &config.ServerConfig{Host: "localhost", Port: 8080, ReadTimeout: "30s", WriteTimeout: "30s"}
	base.Merge(&config.ServerConfig{Port: 9090, WriteTimeout: "60s"})

	if base.Host != "localhost" {
		t.Errorf("Host = %q, want %q", base.Host, "localhost")
	}
	if base.Port != 9090 {
		t.Errorf("Port = %d, want 9090", base.Port)
	}
	if base.WriteTimeout != "60s" {
		t.Errorf("WriteTimeout = %q, want %q", base.WriteTimeout, "60s")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"localhost", 3000, "localhost:3000"},
	}

	for _, tt := range tests {
		cfg := &config.ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestServerConfig_InvalidPort(t *testing.T) {
	cfg := &config.ServerConfig{Port: 70000}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() error = nil, want error")
	}
}

func TestSessionsConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.SessionsConfig
		wantErr bool
	}{
		{"defaults", config.SessionsConfig{}, false},
		{"negative ttl", config.SessionsConfig{TTL: "-1m"}, true},
		{"bad sweep", config.SessionsConfig{SweepInterval: "often"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize()
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAPIConfig_BasePath(t *testing.T) {
	t.Setenv("API_BASE_PATH", "")

	tests := []struct {
		name    string
		base    string
		want    string
		wantErr bool
	}{
		{"default", "", "/api", false},
		{"missing leading slash", "admin/api", "/admin/api", false},
		{"trailing slash", "/api/", "/api", false},
		{"root", "/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.APIConfig{BasePath: tt.base}
			err := cfg.Finalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.BasePath != tt.want {
				t.Errorf("BasePath = %q, want %q", cfg.BasePath, tt.want)
			}
		})
	}
}
