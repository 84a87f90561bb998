package xdd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/beevik/etree"
)

// Document errors.
var (
	ErrNoRoot   = errors.New("document has no root element")
	ErrNoPath   = errors.New("document has no file path")
	ErrNilBatch = errors.New("nil batch function")
)

// Namespace identifies an XML namespace by prefix and URI.
type Namespace struct {
	Prefix string
	URI    string
}

// AnyNamespace matches elements regardless of their namespace.
var AnyNamespace = Namespace{}

// Well-known namespaces.
var (
	// PowerlinkNamespace is the default namespace of POWERLINK XDD/XDC files.
	PowerlinkNamespace = Namespace{Prefix: "plk", URI: "http://www.ethernet-powerlink.org"}
)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for mutation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Document is a handle to one parsed XML tree.
// It is safe for concurrent use; mutations are serialized.
type Document struct {
	mu     sync.Mutex
	tree   *etree.Document
	path   string
	logger *slog.Logger
}

func newDocument(tree *etree.Document, path string, opts []Option) *Document {
	d := &Document{
		tree:   tree,
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// New creates a document with a single root element.
func New(rootTag string, opts ...Option) *Document {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	tree.CreateElement(rootTag)
	return newDocument(tree, "", opts)
}

// Parse reads a document from XML bytes.
func Parse(data []byte, opts ...Option) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if tree.Root() == nil {
		return nil, ErrNoRoot
	}
	return newDocument(tree, "", opts), nil
}

// Open reads a document from a file. The path is remembered for Save.
func Open(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.path = path
	return d, nil
}

// Path returns the file the document was opened from or last saved to.
func (d *Document) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// Save writes the document back to its file.
func (d *Document) Save() error {
	d.mu.Lock()
	path := d.path
	d.mu.Unlock()

	if path == "" {
		return ErrNoPath
	}
	return d.SaveAs(path)
}

// SaveAs writes the document to path and remembers it for later saves.
func (d *Document) SaveAs(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	d.mu.Lock()
	d.path = path
	d.mu.Unlock()
	return nil
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree.WriteTo(w)
}

// View runs fn with the document locked. fn must not keep references to
// elements after it returns, and must not mutate the tree.
func (d *Document) View(fn func(root *etree.Element) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.tree.Root())
}

// Batch runs several mutations under one lock acquisition.
// Mutations applied before an error are kept.
func (d *Document) Batch(fn func(tx *Tx) error) error {
	if fn == nil {
		return ErrNilBatch
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(&Tx{d: d})
}
