// Package config loads the whaapy-ai service configuration from an
// optional YAML file, a .env file, and the process environment.
package config

import (
	"fmt"
	"net/url"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8000,
			Bind: "all",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 20,
			MaxIdleConns: 5,
		},
		Backend: BackendConfig{
			URL: "https://api.whaapy.com",
		},
		Logging: LoggingConfig{
			Level: "info",
			Style: "json",
		},
	}
}

// AllowedOrigins returns the CORS origin allowlist: the configured backend
// plus localhost for local frontend development.
func (c Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	if c.Backend.URL != "" {
		origins = append([]string{c.Backend.URL}, origins...)
	}
	return origins
}

// Redact returns a copy of cfg with secrets replaced so it can be printed.
func Redact(cfg Config) Config {
	if cfg.Auth.ServiceToken != "" {
		cfg.Auth.ServiceToken = "<redacted>"
	}
	if cfg.LLM.OpenAIAPIKey != "" {
		cfg.LLM.OpenAIAPIKey = "<redacted>"
	}
	if u, err := url.Parse(cfg.Database.URL); err == nil && u.User != nil {
		cfg.Database.URL = u.Redacted()
	}
	return cfg
}
