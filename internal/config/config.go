// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and KTREADY_* env vars.
// - Validation failures wrap ErrInvalidConfig; read/parse failures wrap ErrLoadConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// DatasetPath points at a YAML dataset; empty uses the embedded default.
	DatasetPath string `koanf:"dataset_path"`
	// ProgressPolicy is "round" or "truncate".
	ProgressPolicy string `koanf:"progress_policy"`
	// RequireCoordinates fails the load when a country lacks a centroid.
	RequireCoordinates bool `koanf:"require_coordinates"`
	// MarkerJitter is the latitude offset per record index for map markers.
	MarkerJitter float64 `koanf:"marker_jitter"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DatasetPath:        "",
		ProgressPolicy:     "round",
		RequireCoordinates: true,
		MarkerJitter:       0.2,
	}
}
