package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/openconfigurator/odconf-go/internal/config"
	"github.com/openconfigurator/odconf-go/pkg/edit"
	"github.com/openconfigurator/odconf-go/pkg/engine"
	"github.com/openconfigurator/odconf-go/pkg/inspect"
	odlog "github.com/openconfigurator/odconf-go/pkg/log"
	"github.com/openconfigurator/odconf-go/pkg/model"
	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xdd"
)

// session holds everything one odconf invocation works on.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	doc       *xdd.Document
	project   *project.File
	node      *model.Node
	network   *model.Network
	editor    *edit.Editor
	inspector *inspect.Inspector
	journal   *odlog.FileLogger
	dirty     bool
}

// openSession loads the device description and project named by cfg and
// wires the edit pipeline.
func openSession(cfg *config.Config, logger *slog.Logger) (*session, error) {
	s := &session{cfg: cfg, logger: logger}

	opts := []xdd.Option{xdd.WithLogger(logger)}

	doc, err := xdd.Open(cfg.XDC, opts...)
	if err != nil {
		return nil, fmt.Errorf("open device description: %w", err)
	}
	s.doc = doc

	if cfg.Project != "" {
		p, err := project.Load(cfg.Project, opts...)
		if err != nil {
			return nil, fmt.Errorf("open project: %w", err)
		}
		if !p.HasNode(cfg.NodeID) {
			if err := p.AddNode(cfg.NodeID, "", cfg.XDC); err != nil {
				return nil, fmt.Errorf("add node to project: %w", err)
			}
		}
		s.project = p
	}

	node, err := model.LoadNode(model.NodeConfig{
		NetworkID: cfg.NetworkID,
		NodeID:    cfg.NodeID,
		Document:  doc,
		Project:   s.project,
		Namespace: xdd.Namespace{URI: cfg.Namespace},
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load object dictionary: %w", err)
	}
	s.node = node

	s.network = model.NewNetwork(cfg.NetworkID)
	if err := s.network.AddNode(node); err != nil {
		return nil, err
	}

	journals := []odlog.Logger{odlog.NewSlogAdapter(logger)}
	if cfg.Journal != "" {
		fl, err := odlog.NewFileLogger(cfg.Journal)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		s.journal = fl
		journals = append(journals, fl)
	}

	s.editor = edit.NewEditor(
		engine.NewLocal(s.network, logger),
		edit.WithJournal(odlog.NewMultiLogger(journals...)),
		edit.WithLogger(logger),
	)
	s.inspector = inspect.NewInspector(node, s.editor)

	return s, nil
}

// Inspector returns the inspector of the loaded node.
func (s *session) Inspector() *inspect.Inspector { return s.inspector }

// Persist reports whether accepted values are written to the device description.
func (s *session) Persist() bool { return s.cfg.Persist }

// MarkDirty records that the device description changed in memory.
func (s *session) MarkDirty() { s.dirty = true }

// Save writes the device description if it changed. Project changes are
// saved by the force operation itself.
func (s *session) Save() error {
	if !s.dirty {
		return nil
	}
	if err := s.doc.Save(); err != nil {
		return fmt.Errorf("save device description: %w", err)
	}
	s.dirty = false
	s.logger.Info("Saved device description", "path", s.doc.Path())
	return nil
}

// Close saves pending changes and closes the journal.
func (s *session) Close() error {
	err := s.Save()
	if s.journal != nil {
		err = errors.Join(err, s.journal.Close())
	}
	return err
}
