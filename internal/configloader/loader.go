// Package configloader resolves the mdident configuration: an explicit
// --config path wins, otherwise the working directory and its ancestors
// are searched for a project config file, otherwise defaults apply.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdident/pkg/config"
)

// Project config filenames searched for, in order.
//
//nolint:gochecknoglobals // Fixed search list
var projectConfigNames = []string{".mdident.yml", ".mdident.yaml"}

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// If set, project config discovery is skipped and a missing file is
	// an error.
	ExplicitPath string
}

// LoadResult contains the resolved configuration and its provenance.
type LoadResult struct {
	// Config is the final configuration.
	Config *config.Config

	// Path is the file the configuration was loaded from, or empty when
	// defaults apply.
	Path string
}

// Load resolves the final configuration.
func Load(opts LoadOptions) (*LoadResult, error) {
	cfg := config.NewConfig()

	path := opts.ExplicitPath
	if path == "" {
		workDir := opts.WorkingDir
		if workDir == "" {
			var err error
			workDir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("get working directory: %w", err)
			}
		}
		path = discoverProjectConfig(workDir)
	}

	if path == "" {
		return &LoadResult{Config: cfg}, nil
	}

	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &LoadResult{Config: cfg, Path: path}, nil
}

// discoverProjectConfig searches workDir and its ancestors for a project
// config file. Returns empty when none exists.
func discoverProjectConfig(workDir string) string {
	dir := workDir
	for {
		for _, name := range projectConfigNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFile reads and unmarshals a YAML config file over cfg.
func loadFile(path string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}
