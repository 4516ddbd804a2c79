// Package main is the entry point for the mdident CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdident/internal/cli"
	"github.com/yaklabco/mdident/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrNodeNotFound and ErrDriftFound are exit-code signals, not
		// failures worth logging.
		if !errors.Is(err, cli.ErrNodeNotFound) && !errors.Is(err, cli.ErrDriftFound) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitOK
}
