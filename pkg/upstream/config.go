package upstream

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/docker/go-units"
)

// Env maps environment variable names for upstream configuration.
type Env struct {
	BaseURL         string
	AssetBaseURL    string
	Timeout         string
	MaxResponseSize string
}

// Config describes the content API the service fronts.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com/api".
	BaseURL string `toml:"base_url"`

	// AssetBaseURL prefixes stored asset paths for display.
	// Default: BaseURL without its path.
	AssetBaseURL string `toml:"asset_base_url"`

	Timeout string `toml:"timeout"`

	// MaxResponseSize caps a response body, e.g. "32MB". It bounds both
	// record payloads and file downloads.
	MaxResponseSize string `toml:"max_response_size"`
}

func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *Config) MaxResponseBytes() int64 {
	n, _ := units.FromHumanSize(c.MaxResponseSize)
	return n
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if err := c.validate(); err != nil {
		return err
	}
	if c.AssetBaseURL == "" {
		u, _ := url.Parse(c.BaseURL)
		c.AssetBaseURL = u.Scheme + "://" + u.Host
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.AssetBaseURL != "" {
		c.AssetBaseURL = overlay.AssetBaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxResponseSize != "" {
		c.MaxResponseSize = overlay.MaxResponseSize
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:5000/api"
	}
	if c.Timeout == "" {
		c.Timeout = "15s"
	}
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = "32MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.AssetBaseURL != "" {
		if v := os.Getenv(env.AssetBaseURL); v != "" {
			c.AssetBaseURL = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxResponseSize != "" {
		if v := os.Getenv(env.MaxResponseSize); v != "" {
			c.MaxResponseSize = v
		}
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be an http or https URL")
	}
	if u.Host == "" {
		return fmt.Errorf("base_url must include a host")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if n, err := units.FromHumanSize(c.MaxResponseSize); err != nil || n <= 0 {
		return fmt.Errorf("invalid max_response_size: %q", c.MaxResponseSize)
	}
	return nil
}
