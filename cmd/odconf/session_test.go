package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openconfigurator/odconf-go/cmd/odconf/interactive"
	"github.com/openconfigurator/odconf-go/internal/config"
	odlog "github.com/openconfigurator/odconf-go/pkg/log"
	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xdd"
)

const sessionXDC = `<?xml version="1.0" encoding="UTF-8"?>
<ISO15745ProfileContainer xmlns="http://www.ethernet-powerlink.org">
  <ObjectList>
    <Object index="1006" name="NMT_CycleLen_U32" objectType="7" dataType="0007" accessType="rw" actualValue="5000"/>
    <Object index="2000" name="Setpoint" objectType="7" dataType="0006" accessType="rw" lowLimit="0" highLimit="1000"/>
    <Object index="XYZ" name="Broken" objectType="7"/>
  </ObjectList>
</ISO15745ProfileContainer>
`

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	xdc := filepath.Join(dir, "node.xdc")
	require.NoError(t, os.WriteFile(xdc, []byte(sessionXDC), 0o644))

	cfg := config.DefaultConfig()
	cfg.NodeID = 3
	cfg.XDC = xdc
	cfg.Project = filepath.Join(dir, "project.xml")
	cfg.Journal = filepath.Join(dir, "edits.odlog")
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenSession(t *testing.T) {
	cfg := newTestConfig(t)

	s, err := openSession(cfg, quietLogger())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 2, s.node.Dictionary().Len())
	assert.Len(t, s.node.LoadErrors(), 1)
	assert.True(t, s.project.HasNode(3))

	node, ok := s.network.Node(3)
	require.True(t, ok)
	assert.Same(t, s.node, node)
}

func TestOpenSessionMissingXDC(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.XDC = filepath.Join(t.TempDir(), "missing.xdc")

	_, err := openSession(cfg, quietLogger())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSessionSetSaveAndJournal(t *testing.T) {
	cfg := newTestConfig(t)

	s, err := openSession(cfg, quietLogger())
	require.NoError(t, err)

	var out bytes.Buffer
	cmds := interactive.NewCommands(s, &out)
	ctx := context.Background()

	require.NoError(t, cmds.Exec(ctx, "set", []string{"0x2000", "750"}))
	err = cmds.Exec(ctx, "set", []string{"0x2000", "5000"})
	require.Error(t, err)
	require.NoError(t, cmds.Exec(ctx, "force", []string{"0x2000"}))
	require.NoError(t, s.Close())

	// The device description on disk carries the accepted value.
	doc, err := xdd.Open(cfg.XDC)
	require.NoError(t, err)
	value, ok, err := doc.AttrValue("//Object[@index='2000']", xdd.AnyNamespace, "actualValue")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "750", value)

	// The force mark was persisted to the project file.
	p, err := project.Open(cfg.Project)
	require.NoError(t, err)
	assert.True(t, p.IsForced(3, project.ObjectKey(0x2000)))

	// Edit, rejection and force were journaled in order.
	reader, err := odlog.NewReader(cfg.Journal)
	require.NoError(t, err)
	defer reader.Close()

	var categories []odlog.Category
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, uint8(3), event.NodeID)
		categories = append(categories, event.Category)
	}
	assert.Equal(t, []odlog.Category{odlog.CategoryEdit, odlog.CategoryRejection, odlog.CategoryForce}, categories)
}

func TestSessionSaveOnlyWhenDirty(t *testing.T) {
	cfg := newTestConfig(t)
	before, err := os.ReadFile(cfg.XDC)
	require.NoError(t, err)

	s, err := openSession(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	after, err := os.ReadFile(cfg.XDC)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
