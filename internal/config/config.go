// Package config provides configuration loading for the odconf tools.
//
// Configuration is a YAML file layered under command-line flags. Every key
// is optional in the file; DefaultConfig supplies the rest.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration errors.
var (
	ErrNoXDC          = errors.New("xdc is required")
	ErrInvalidNodeID  = errors.New("node_id must be between 1 and 254")
	ErrInvalidLevel   = errors.New("invalid log level")
	ErrEmptyNetworkID = errors.New("network_id is required")
)

// Config is the complete odconf configuration.
type Config struct {
	// NetworkID identifies the network (project) the node belongs to.
	NetworkID string `yaml:"network_id"`

	// NodeID is the POWERLINK node ID of the device being edited.
	NodeID uint8 `yaml:"node_id"`

	// XDC is the path of the device description to load and save.
	XDC string `yaml:"xdc"`

	// Project is the optional project file holding forced objects.
	Project string `yaml:"project"`

	// Journal is the optional edit journal (.odlog) path.
	Journal string `yaml:"journal"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Namespace restricts object lookups to elements in this namespace URI.
	Namespace string `yaml:"namespace"`

	// Persist writes accepted values back to the XDC.
	Persist bool `yaml:"persist"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		NetworkID: "default",
		NodeID:    1,
		LogLevel:  "info",
		Persist:   true,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.NetworkID == "" {
		return ErrEmptyNetworkID
	}
	if c.NodeID == 0 || c.NodeID == 255 {
		return fmt.Errorf("%w: got %d", ErrInvalidNodeID, c.NodeID)
	}
	if c.XDC == "" {
		return ErrNoXDC
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level, falling back to info.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel converts a log level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.resolvePaths(filepath.Dir(path))

	return cfg, nil
}

// SaveToFile writes the configuration as YAML, creating the parent directory.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Merge copies the non-zero values of other into c.
//
// Persist is not merged: a false bool cannot be told apart from "unset".
// Callers that override it do so explicitly.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.NetworkID != "" {
		c.NetworkID = other.NetworkID
	}
	if other.NodeID != 0 {
		c.NodeID = other.NodeID
	}
	if other.XDC != "" {
		c.XDC = other.XDC
	}
	if other.Project != "" {
		c.Project = other.Project
	}
	if other.Journal != "" {
		c.Journal = other.Journal
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Namespace != "" {
		c.Namespace = other.Namespace
	}
}

// resolvePaths makes relative file paths relative to the config file's directory.
func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.XDC, &c.Project, &c.Journal} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
