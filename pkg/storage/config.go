package storage

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/docker/go-units"
)

// Config locates the blob store and bounds what edit sessions may stage in it.
type Config struct {
	// BasePath is the root directory for filesystem storage.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// StagingPrefix is the key prefix under which uploads wait for submit.
	// Everything below it is purged at startup.
	// Default: "staging"
	StagingPrefix string `toml:"staging_prefix"`

	MaxUploadSize string `toml:"max_upload_size"`
	maxUpload     int64
}

type Env struct {
	BasePath      string
	StagingPrefix string
	MaxUploadSize string
}

// MaxUploadSizeBytes is MaxUploadSize in bytes, available after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUpload
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.StagingPrefix != "" {
		c.StagingPrefix = overlay.StagingPrefix
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.StagingPrefix == "" {
		c.StagingPrefix = "staging"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "100MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	for _, o := range []struct {
		name string
		dst  *string
	}{
		{env.BasePath, &c.BasePath},
		{env.StagingPrefix, &c.StagingPrefix},
		{env.MaxUploadSize, &c.MaxUploadSize},
	} {
		if o.name == "" {
			continue
		}
		if v := os.Getenv(o.name); v != "" {
			*o.dst = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	prefix := path.Clean(strings.Trim(c.StagingPrefix, "/"))
	if prefix == "." || prefix == ".." || strings.HasPrefix(prefix, "../") {
		return fmt.Errorf("invalid staging_prefix %q", c.StagingPrefix)
	}
	c.StagingPrefix = prefix

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUpload = size

	return nil
}
