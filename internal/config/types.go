package config

// Config is the root configuration for the whaapy-ai service.
// Every field can come from the optional YAML config file; the
// environment variables documented on each field take precedence.
type Config struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Database DatabaseConfig `yaml:"database,omitempty"`
	Auth     AuthConfig     `yaml:"auth,omitempty"`
	Backend  BackendConfig  `yaml:"backend,omitempty"`
	LLM      LLMConfig      `yaml:"llm,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port int    `yaml:"port,omitempty"` // env PORT, default 8000
	Bind string `yaml:"bind,omitempty"` // "all" | "loopback"
}

// DatabaseConfig points at the persistent store. A postgres:// URL selects
// the Postgres driver; any other value is treated as a SQLite path
// (":memory:" for tests).
type DatabaseConfig struct {
	URL          string `yaml:"url,omitempty"` // env DATABASE_URL
	MaxOpenConns int    `yaml:"maxOpenConns,omitempty"`
	MaxIdleConns int    `yaml:"maxIdleConns,omitempty"`
}

// AuthConfig holds the shared secret for inbound service-to-service auth.
type AuthConfig struct {
	ServiceToken string `yaml:"serviceToken,omitempty"` // env AI_SERVICE_TOKEN
}

// BackendConfig describes the calling backend. Its URL is granted CORS
// access alongside localhost for local development.
type BackendConfig struct {
	URL string `yaml:"url,omitempty"` // env BACKEND_URL
}

// LLMConfig holds LLM provider credentials. The config endpoints never use
// these; they are recognized so a single env file can configure the whole
// service.
type LLMConfig struct {
	OpenAIAPIKey string `yaml:"openaiApiKey,omitempty"` // env OPENAI_API_KEY
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	Style string `yaml:"style,omitempty"` // "pretty" | "json"
}
