package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ProjectConfigFile is the config file looked up in the working directory
// and its parents.
const ProjectConfigFile = "odconf.yaml"

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
	dir    string
}

// NewLoader creates a loader that searches from the current directory.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &Loader{logger: logger, dir: dir}
}

// WithDir sets the directory the project config search starts from.
func (l *Loader) WithDir(dir string) *Loader {
	l.dir = dir
	return l
}

// Load builds the configuration from, in increasing precedence:
//  1. DefaultConfig
//  2. the file at explicit, or odconf.yaml found upwards from the loader dir
//  3. overrides (typically from command-line flags)
//
// An explicit path that cannot be read is an error; a missing discovered file is not.
// The result is not validated, callers decide when it must be complete.
func (l *Loader) Load(explicit string, overrides *Config) (*Config, error) {
	cfg := DefaultConfig()

	path := explicit
	if path == "" {
		path = l.findProjectConfig()
	}

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		switch {
		case err == nil:
			l.logger.Debug("loaded config", slog.String("path", path))
			*cfg = *fileCfg
		case explicit == "" && errors.Is(err, fs.ErrNotExist):
			l.logger.Debug("no config file", slog.String("path", path))
		default:
			return nil, err
		}
	} else {
		l.logger.Debug("no project config found", slog.String("dir", l.dir))
	}

	cfg.Merge(overrides)
	return cfg, nil
}

// findProjectConfig walks from the loader dir to the filesystem root.
func (l *Loader) findProjectConfig() string {
	dir := l.dir
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
