// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SWAPIURL is the base URL of the upstream source.
	SWAPIURL string `koanf:"swapi_url"`

	// CachePath locates the on-disk cache artifact. The file is
	// created on first use; deleting it forces a full refresh.
	CachePath string `koanf:"cache_path"`

	// MaxPages guards against runaway upstream pagination.
	MaxPages int `koanf:"max_pages"`

	// RequestTimeoutMS bounds each outbound upstream request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// ResolveConcurrency caps simultaneous per-identifier fetches.
	ResolveConcurrency int `koanf:"resolve_concurrency"`

	// ResolveTimeoutMS bounds each per-identifier resolution fetch.
	ResolveTimeoutMS int `koanf:"resolve_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8000",
		SWAPIURL:           "https://swapi.dev/api",
		CachePath:          "data/cache.db",
		MaxPages:           10,
		RequestTimeoutMS:   10_000,
		ResolveConcurrency: 8,
		ResolveTimeoutMS:   5_000,
	}
}
