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
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if HILLBOARD_CONFIG is set
//  3. env (prefix HILLBOARD_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("HILLBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: HILLBOARD_ADDR, HILLBOARD_CATALOG_PATH, ...
	// Map env keys like HILLBOARD_CATALOG_PATH -> catalog_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("HILLBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "hillboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.CatalogPath == "":
		return fmt.Errorf("%w: catalog_path must not be empty", ErrInvalidConfig)
	case cfg.Store != StoreMemory && cfg.Store != StoreSQLite:
		return fmt.Errorf("%w: store must be %q or %q", ErrInvalidConfig, StoreMemory, StoreSQLite)
	case cfg.Store == StoreSQLite && cfg.SQLitePath == "":
		return fmt.Errorf("%w: sqlite_path must not be empty when store is sqlite", ErrInvalidConfig)
	case cfg.TopRepsPerLocation < 1:
		return fmt.Errorf("%w: top_reps_per_location must be at least 1", ErrInvalidConfig)
	case cfg.MaxVerticalLimit < 1:
		return fmt.Errorf("%w: max_vertical_limit must be at least 1", ErrInvalidConfig)
	}
	return nil
}
