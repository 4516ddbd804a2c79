// Package config defines core configuration types for mdident.
// These types are pure data structures; loading and discovery live in
// internal/configloader.
package config

import "fmt"

// Default values applied by NewConfig.
const (
	DefaultMode        = "strict"
	DefaultDriftPolicy = "warn"
	DefaultFlavor      = "commonmark"
	DefaultColor       = "auto"
	DefaultLogLevel    = "info"
)

// Config holds the resolved mdident configuration.
type Config struct {
	// Mode selects the identifier resolution mode: "strict" or
	// "compatibility". Applied per Document; never global state.
	Mode string `yaml:"mode"`

	// DriftPolicy controls identity-drift handling on deserialization:
	// "warn" (recompute and proceed) or "fatal".
	DriftPolicy string `yaml:"drift_policy"`

	// MaxDepth bounds canonicalization recursion. Zero selects the
	// built-in default.
	MaxDepth int `yaml:"max_depth"`

	// Flavor is the Markdown flavor: "commonmark" or "gfm".
	Flavor string `yaml:"flavor"`

	// Color controls colorized output: "auto", "always", "never".
	Color string `yaml:"color"`

	// LogLevel is the logging verbosity: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Mode:        DefaultMode,
		DriftPolicy: DefaultDriftPolicy,
		Flavor:      DefaultFlavor,
		Color:       DefaultColor,
		LogLevel:    DefaultLogLevel,
	}
}

// Validate checks that every field holds a recognized value.
func (c *Config) Validate() error {
	switch c.Mode {
	case "strict", "compatibility", "compat":
	default:
		return fmt.Errorf("invalid mode %q (want strict or compatibility)", c.Mode)
	}

	switch c.DriftPolicy {
	case "warn", "fatal":
	default:
		return fmt.Errorf("invalid drift_policy %q (want warn or fatal)", c.DriftPolicy)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth %d (must be non-negative)", c.MaxDepth)
	}

	switch c.Flavor {
	case "commonmark", "gfm":
	default:
		return fmt.Errorf("invalid flavor %q (want commonmark or gfm)", c.Flavor)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q (want auto, always, or never)", c.Color)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}
