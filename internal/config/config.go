// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Store backend names accepted by the Store field.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath is the JSON file holding the hill catalog.
	CatalogPath string `koanf:"catalog_path"`

	// Store selects the submission log backend: memory or sqlite.
	Store string `koanf:"store"`

	// SQLitePath is the database file used when Store is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// TopRepsPerLocation bounds the per-location ranking view.
	// 1 yields the single-winner form.
	TopRepsPerLocation int `koanf:"top_reps_per_location"`

	// MaxVerticalLimit caps GET /leaderboard/vertical?limit.
	MaxVerticalLimit int `koanf:"max_vertical_limit"`

	// DefaultStravaLink is recorded when a submission omits a proof link.
	DefaultStravaLink string `koanf:"default_strava_link"`
}

// New creates a Config with defaults. Context is accepted first to satisfy the
// project-wide convention; it is reserved for future use and currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		CatalogPath:        "assets/hills.json",
		Store:              StoreMemory,
		SQLitePath:         "hillboard.db",
		TopRepsPerLocation: 20,
		MaxVerticalLimit:   100,
		DefaultStravaLink:  "no link provided",
	}
	return c
}
