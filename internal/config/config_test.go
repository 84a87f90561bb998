package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "default", cfg.NetworkID)
	assert.Equal(t, uint8(1), cfg.NodeID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Persist)
	assert.Empty(t, cfg.XDC)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.XDC = "node.xdc"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "missing xdc", modify: func(c *Config) { c.XDC = "" }, wantErr: ErrNoXDC},
		{name: "node id zero", modify: func(c *Config) { c.NodeID = 0 }, wantErr: ErrInvalidNodeID},
		{name: "node id broadcast", modify: func(c *Config) { c.NodeID = 255 }, wantErr: ErrInvalidNodeID},
		{name: "managing node", modify: func(c *Config) { c.NodeID = 240 }},
		{name: "empty network", modify: func(c *Config) { c.NetworkID = "" }, wantErr: ErrEmptyNetworkID},
		{name: "bad level", modify: func(c *Config) { c.LogLevel = "loud" }, wantErr: ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"trace", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	cfg := &Config{LogLevel: "nonsense"}
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	base.XDC = "a.xdc"

	base.Merge(&Config{NodeID: 7, Journal: "edits.odlog"})

	assert.Equal(t, uint8(7), base.NodeID)
	assert.Equal(t, "a.xdc", base.XDC)
	assert.Equal(t, "edits.odlog", base.Journal)
	assert.Equal(t, "default", base.NetworkID)
	assert.True(t, base.Persist, "persist is never merged")

	base.Merge(nil)
	assert.Equal(t, uint8(7), base.NodeID)
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "odconf.yaml")

	cfg := DefaultConfig()
	cfg.NodeID = 12
	cfg.XDC = "/abs/node.xdc"
	cfg.Persist = false
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(12), loaded.NodeID)
	assert.Equal(t, "/abs/node.xdc", loaded.XDC)
	assert.False(t, loaded.Persist)
}

func TestLoadFromFileRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "odconf.yaml")
	data := "xdc: devices/node.xdc\nproject: project.xml\nnode_id: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "devices", "node.xdc"), cfg.XDC)
	assert.Equal(t, filepath.Join(dir, "project.xml"), cfg.Project)
	assert.Empty(t, cfg.Journal)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep defaults")
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("node_id: [1"), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoaderLayers(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigFile),
		[]byte("network_id: plant\nnode_id: 4\nxdc: node.xdc\n"), 0o644))

	loader := NewLoader(nil).WithDir(nested)

	cfg, err := loader.Load("", &Config{NodeID: 9})
	require.NoError(t, err)
	assert.Equal(t, "plant", cfg.NetworkID)
	assert.Equal(t, uint8(9), cfg.NodeID, "overrides win")
	assert.Equal(t, filepath.Join(root, "node.xdc"), cfg.XDC)
}

func TestLoaderNoFile(t *testing.T) {
	loader := NewLoader(nil).WithDir(t.TempDir())

	cfg, err := loader.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoaderExplicitMissing(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
