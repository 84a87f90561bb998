package model

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xdd"
)

// Node errors.
var (
	ErrNilDocument    = errors.New("nil device description document")
	ErrRefNotFound    = errors.New("uniqueIDRef target not found")
	ErrInvalidRef     = errors.New("invalid uniqueIDRef")
	ErrStrictLoadFail = errors.New("object dictionary contains invalid entries")
)

// ObjectListPath locates the Object elements of a device description.
const ObjectListPath = "//ObjectList/Object"

// NodeConfig configures a node.
type NodeConfig struct {
	NetworkID string
	NodeID    uint8
	Name      string

	// Document is the device description (XDD/XDC) of the node.
	Document *xdd.Document

	// Project is the project file holding forced objects. Optional.
	Project *project.File

	// Namespace restricts document lookups. The zero value matches any.
	Namespace xdd.Namespace

	Logger *slog.Logger

	// Strict makes LoadNode fail on the first invalid entry instead of
	// skipping it.
	Strict bool
}

// Node is one device of a network together with its object dictionary.
type Node struct {
	cfg    NodeConfig
	dict   *Dictionary
	logger *slog.Logger

	loadErrors []error
}

// NewNode creates a node with an empty dictionary.
func NewNode(cfg NodeConfig) (*Node, error) {
	if cfg.Document == nil {
		return nil, ErrNilDocument
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Node{
		cfg:    cfg,
		dict:   NewDictionary(),
		logger: logger.With("network", cfg.NetworkID, "node", cfg.NodeID),
	}, nil
}

// LoadNode creates a node and fills its dictionary from the Object elements
// of the document, in document order. Invalid entries are skipped and
// reported by LoadErrors unless cfg.Strict is set.
func LoadNode(cfg NodeConfig) (*Node, error) {
	n, err := NewNode(cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Document.View(func(root *etree.Element) error {
		path, err := etree.CompilePath(ObjectListPath)
		if err != nil {
			return err
		}
		for _, el := range root.FindElementsPath(path) {
			if cfg.Namespace.URI != "" && el.NamespaceURI() != cfg.Namespace.URI {
				continue
			}
			if err := n.loadObject(el); err != nil {
				if cfg.Strict {
					return fmt.Errorf("%w: %w", ErrStrictLoadFail, err)
				}
				n.logger.Warn("Skipping object", "error", err)
				n.loadErrors = append(n.loadErrors, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	n.logger.Debug("Loaded object dictionary", "objects", n.dict.Len(), "skipped", len(n.loadErrors))
	return n, nil
}

func (n *Node) loadObject(el *etree.Element) error {
	raw, err := ParseRawObject(el)
	if err != nil {
		return err
	}
	obj, err := NewObject(n, raw)
	if err != nil {
		return err
	}
	return n.dict.Add(obj)
}

// NetworkID returns the network (project) identifier.
func (n *Node) NetworkID() string { return n.cfg.NetworkID }

// NodeID returns the POWERLINK node ID.
func (n *Node) NodeID() uint8 { return n.cfg.NodeID }

// Name returns the node name.
func (n *Node) Name() string { return n.cfg.Name }

// Document returns the device description handle.
func (n *Node) Document() *xdd.Document { return n.cfg.Document }

// Project returns the project file, or nil.
func (n *Node) Project() *project.File { return n.cfg.Project }

// Dictionary returns the object dictionary.
func (n *Node) Dictionary() *Dictionary { return n.dict }

// LoadErrors returns the errors of entries skipped by LoadNode.
func (n *Node) LoadErrors() []error {
	return append([]error(nil), n.loadErrors...)
}

// ResolveRef returns a copy of the element whose uniqueID equals ref.
func (n *Node) ResolveRef(ref string) (*etree.Element, error) {
	if ref == "" {
		return nil, ErrInvalidRef
	}
	for _, c := range ref {
		if c == '\'' || c == '"' || c == ']' || c == '[' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
		}
	}

	var found *etree.Element
	err := n.cfg.Document.View(func(root *etree.Element) error {
		path, err := etree.CompilePath("//*[@uniqueID='" + ref + "']")
		if err != nil {
			return err
		}
		if el := root.FindElementPath(path); el != nil {
			found = el.Copy()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrRefNotFound, ref)
	}
	return found, nil
}

func (n *Node) document() *xdd.Document { return n.cfg.Document }

func (n *Node) namespace() xdd.Namespace { return n.cfg.Namespace }
