package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvSessionsTTL           = "SESSIONS_TTL"
	EnvSessionsSweepInterval = "SESSIONS_SWEEP_INTERVAL"
)

// SessionsConfig controls how long idle edit sessions keep their staged files.
type SessionsConfig struct {
	TTL           string `toml:"ttl"`
	SweepInterval string `toml:"sweep_interval"`
}

func (c *SessionsConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

func (c *SessionsConfig) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the sessions configuration.
func (c *SessionsConfig) Finalize() error {
	if c.TTL == "" {
		c.TTL = "2h"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "5m"
	}
	if v := os.Getenv(EnvSessionsTTL); v != "" {
		c.TTL = v
	}
	if v := os.Getenv(EnvSessionsSweepInterval); v != "" {
		c.SweepInterval = v
	}

	ttl, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}
	sweep, err := time.ParseDuration(c.SweepInterval)
	if err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	if sweep <= 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SessionsConfig) Merge(overlay *SessionsConfig) {
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
}
