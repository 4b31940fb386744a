// Package config provides centralized configuration management for the
// leaderboard service. It loads configuration from environment variables
// with sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
//
// Presentation settings (sort field, column names, formatters) live in a
// separate YAML file referenced by LEADERBOARD_CONFIG; see the leaderboard
// package.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server      ServerConfig
	Source      SourceConfig
	Leaderboard LeaderboardConfig
	Database    DatabaseConfig
	Rate        RateLimitConfig
	Security    SecurityConfig
	Logging     LoggingConfig
	Metrics     MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// SourceConfig says where the raw leaderboard text comes from.
type SourceConfig struct {
	// URI is a file path, an http(s) URL, or "db:<board>" (default: leaderboard.csv)
	URI string `env:"LEADERBOARD_SOURCE" default:"leaderboard.csv"`

	// Timeout bounds a single fetch (default: 10s)
	Timeout time.Duration `env:"LEADERBOARD_SOURCE_TIMEOUT" default:"10s"`

	// MaxBytes caps the payload size (default: 10MB)
	MaxBytes int64 `env:"LEADERBOARD_MAX_BYTES" default:"10485760"`

	// Query overrides the payload query for db: sources
	Query string `env:"LEADERBOARD_SOURCE_QUERY"`
}

// LeaderboardConfig holds load and presentation settings.
type LeaderboardConfig struct {
	// ConfigPath is an optional YAML presentation config (default: built-in)
	ConfigPath string `env:"LEADERBOARD_CONFIG"`

	// Title is the page heading (default: Leaderboard)
	Title string `env:"LEADERBOARD_TITLE" default:"Leaderboard"`

	// MaxConcurrentLoads bounds parallel loads across requests (default: 8)
	MaxConcurrentLoads int `env:"LEADERBOARD_MAX_CONCURRENT_LOADS" default:"8"`

	// LoadWaitTime is how long a request waits for a load slot (default: 5s)
	LoadWaitTime time.Duration `env:"LEADERBOARD_LOAD_WAIT_TIME" default:"5s"`
}

// DatabaseConfig holds the optional PostgreSQL connection used by db: sources.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// Burst is the number of requests allowed at once (default: 20)
	Burst int `env:"RATE_LIMIT_BURST" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled mounts the metrics endpoint (default: true)
	Enabled bool `env:"METRICS_ENABLED" default:"true"`

	// Path is where metrics are served (default: /metrics)
	Path string `env:"METRICS_PATH" default:"/metrics"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// HasDatabase reports whether a database connection is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}
