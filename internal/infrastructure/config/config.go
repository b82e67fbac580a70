// Package config loads backend configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Desktop   DesktopConfig
	Cloud     CloudConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8090"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// DesktopConfig holds desktop shell configuration.
type DesktopConfig struct {
	// Initial viewport dimensions; the shell updates them at runtime.
	ViewportWidth  int    `envconfig:"VIEWPORT_WIDTH" default:"1024"`
	ViewportHeight int    `envconfig:"VIEWPORT_HEIGHT" default:"768"`
	SettingsPath   string `envconfig:"DESKTOP_SETTINGS" default:""`
	AppsDir        string `envconfig:"APPS_DIR" default:""`
}

// CloudConfig holds cloud storage collaborator configuration.
type CloudConfig struct {
	Endpoint string `envconfig:"CLOUD_ENDPOINT" default:""`
	APIKey   string `envconfig:"CLOUD_API_KEY" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8090",
			Host: "0.0.0.0",
		},
		Desktop: DesktopConfig{
			ViewportWidth:  1024,
			ViewportHeight: 768,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
