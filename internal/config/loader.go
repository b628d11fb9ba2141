package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SWEX_CONFIG is set
//  3. env (prefix SWEX_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SWEX_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: SWEX_ADDR, SWEX_CACHE_PATH, ...
	// Map env keys like SWEX_CACHE_PATH -> cache_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SWEX_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "swex_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.SWAPIURL == "":
		return nil, fmt.Errorf("%w: swapi_url must not be empty", ErrInvalidConfig)
	case cfg.CachePath == "":
		return nil, fmt.Errorf("%w: cache_path must not be empty", ErrInvalidConfig)
	case cfg.MaxPages < 1:
		return nil, fmt.Errorf("%w: max_pages must be positive", ErrInvalidConfig)
	case cfg.ResolveConcurrency < 1:
		return nil, fmt.Errorf("%w: resolve_concurrency must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
