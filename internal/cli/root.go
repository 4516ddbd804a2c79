// Package cli provides the Cobra command structure for mdident.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdident/internal/configloader"
	"github.com/yaklabco/mdident/internal/logging"
	"github.com/yaklabco/mdident/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags holds flag values shared by all subcommands.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root mdident command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdident",
		Short: "Stable content-derived identity for Markdown document trees",
		Long: `mdident assigns every structural node of a Markdown document a
deterministic, content-derived identifier that survives re-parsing,
partial edits, and serialization round-trips.

Identifiers are derived from a canonical form of each node's content, so
they are stable across incidental formatting differences, change when the
text changes, and stay put when only structural wrapping (like a heading's
level) changes. A compatibility mode tolerates legacy positional
identifiers during migration.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newIDCommand(flags))
	rootCmd.AddCommand(newResolveCommand(flags))
	rootCmd.AddCommand(newExportCommand(flags))
	rootCmd.AddCommand(newVerifyCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadConfig resolves configuration for a command invocation, applying
// the global --color flag on top of the file config.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	result, err := configloader.Load(configloader.LoadOptions{
		ExplicitPath: flags.configPath,
	})
	if err != nil {
		return nil, err
	}

	cfg := result.Config
	if flags.color != "" {
		cfg.Color = flags.color
	}
	// --debug wins over the configured level.
	if !flags.debug {
		logging.SetLevel(cfg.LogLevel)
	}
	if result.Path != "" {
		logging.Default().Debug("loaded config", logging.FieldPath, result.Path)
	}

	return cfg, nil
}
