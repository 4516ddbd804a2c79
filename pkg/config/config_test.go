package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdident/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, "strict", cfg.Mode)
	assert.Equal(t, "warn", cfg.DriftPolicy)
	assert.Equal(t, "commonmark", cfg.Flavor)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.MaxDepth)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{
			name:   "compatibility mode",
			mutate: func(c *config.Config) { c.Mode = "compatibility" },
		},
		{
			name:   "compat shorthand",
			mutate: func(c *config.Config) { c.Mode = "compat" },
		},
		{
			name:    "unknown mode",
			mutate:  func(c *config.Config) { c.Mode = "lenient" },
			wantErr: "invalid mode",
		},
		{
			name:   "fatal drift",
			mutate: func(c *config.Config) { c.DriftPolicy = "fatal" },
		},
		{
			name:    "unknown drift policy",
			mutate:  func(c *config.Config) { c.DriftPolicy = "ignore" },
			wantErr: "invalid drift_policy",
		},
		{
			name:    "negative depth",
			mutate:  func(c *config.Config) { c.MaxDepth = -1 },
			wantErr: "invalid max_depth",
		},
		{
			name:   "explicit depth",
			mutate: func(c *config.Config) { c.MaxDepth = 500 },
		},
		{
			name:   "gfm flavor",
			mutate: func(c *config.Config) { c.Flavor = "gfm" },
		},
		{
			name:    "unknown flavor",
			mutate:  func(c *config.Config) { c.Flavor = "org" },
			wantErr: "invalid flavor",
		},
		{
			name:    "unknown color",
			mutate:  func(c *config.Config) { c.Color = "sometimes" },
			wantErr: "invalid color",
		},
		{
			name:   "warn log level",
			mutate: func(c *config.Config) { c.LogLevel = "warn" },
		},
		{
			name:    "unknown log level",
			mutate:  func(c *config.Config) { c.LogLevel = "loud" },
			wantErr: "invalid log_level",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			testCase.mutate(cfg)

			err := cfg.Validate()
			if testCase.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.wantErr)
		})
	}
}
