package project

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/beevik/etree"

	"github.com/openconfigurator/odconf-go/pkg/xdd"
	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// Element and attribute names of the project file.
const (
	RootElement           = "OpenCONFIGURATORProject"
	NetworkElement        = "NetworkConfiguration"
	NodeCollectionElement = "NodeCollection"
	NodeElement           = "Node"
	ForcedObjectsElement  = "ForcedObjects"
	ObjectElement         = "Object"

	NodeIDAttr   = "nodeID"
	NameAttr     = "name"
	XDCPathAttr  = "pathToXDC"
	IndexAttr    = "index"
	SubIndexAttr = "subindex"
)

// Namespace is the namespace of openCONFIGURATOR project files.
var Namespace = xdd.Namespace{URI: "http://sourceforge.net/projects/openconf/configuration"}

// Project errors.
var (
	ErrNodeNotFound = errors.New("node not found in project")
	ErrNoPath       = errors.New("project has no file path")
)

// Key identifies an object or sub-object of a node.
type Key struct {
	Index       uint16
	SubIndex    uint8
	HasSubIndex bool
}

// ObjectKey returns the key of an object.
func ObjectKey(index uint16) Key {
	return Key{Index: index}
}

// SubObjectKey returns the key of a sub-object.
func SubObjectKey(index uint16, subIndex uint8) Key {
	return Key{Index: index, SubIndex: subIndex, HasSubIndex: true}
}

// String returns the key in display form ("0x1006" or "0x1F81/0x01").
func (k Key) String() string {
	if k.HasSubIndex {
		return xpath.DisplayIndex(k.Index) + "/" + xpath.DisplaySubIndex(k.SubIndex)
	}
	return xpath.DisplayIndex(k.Index)
}

// matches reports whether a forced-object element records this key.
func (k Key) matches(el *etree.Element) bool {
	idx, err := xpath.ParseIndex(el.SelectAttrValue(IndexAttr, ""))
	if err != nil || idx != k.Index {
		return false
	}
	sub := el.SelectAttr(SubIndexAttr)
	if !k.HasSubIndex {
		return sub == nil
	}
	if sub == nil {
		return false
	}
	s, err := xpath.ParseSubIndex(sub.Value)
	return err == nil && s == k.SubIndex
}

// File is an open project file.
type File struct {
	doc  *xdd.Document
	path string
}

// New creates an empty project file that is not yet stored on disk.
func New(opts ...xdd.Option) *File {
	doc := xdd.New(RootElement, opts...)
	_ = doc.Batch(func(tx *xdd.Tx) error {
		root, err := tx.First("/"+RootElement, xdd.AnyNamespace)
		if err != nil {
			return err
		}
		root.CreateAttr("xmlns", Namespace.URI)
		root.CreateElement(NetworkElement).CreateElement(NodeCollectionElement)
		return nil
	})
	return &File{doc: doc}
}

// Open reads the project file at path.
func Open(path string, opts ...xdd.Option) (*File, error) {
	doc, err := xdd.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return &File{doc: doc, path: path}, nil
}

// Load reads the project file at path, or returns an empty project bound to
// path when the file does not exist yet.
func Load(path string, opts ...xdd.Option) (*File, error) {
	f, err := Open(path, opts...)
	if os.IsNotExist(err) {
		f = New(opts...)
		f.path = path
		return f, nil
	}
	return f, err
}

// FromDocument wraps an already parsed project document.
func FromDocument(doc *xdd.Document) *File {
	return &File{doc: doc, path: doc.Path()}
}

// Document returns the underlying document handle.
func (f *File) Document() *xdd.Document {
	return f.doc
}

// Save writes the project file to its path.
func (f *File) Save() error {
	if f.path == "" {
		return ErrNoPath
	}
	return f.doc.SaveAs(f.path)
}

// SaveAs writes the project file to path.
func (f *File) SaveAs(path string) error {
	f.path = path
	return f.Save()
}

func nodePath(nodeID uint8) string {
	return "//" + NodeElement + "[@" + NodeIDAttr + "='" + strconv.Itoa(int(nodeID)) + "']"
}

func forcedPath(nodeID uint8) string {
	return nodePath(nodeID) + "/" + ForcedObjectsElement
}

func forcedObjectPath(nodeID uint8, index uint16) string {
	return forcedPath(nodeID) + "/" + ObjectElement + "[@" + IndexAttr + "='" + xpath.FormatIndex(index) + "']"
}

// AddNode registers a node in the project. Adding an existing node updates
// its name and description path.
func (f *File) AddNode(nodeID uint8, name, xdcPath string) error {
	return f.doc.Batch(func(tx *xdd.Tx) error {
		existing, err := tx.Find(nodePath(nodeID), xdd.AnyNamespace)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			existing[0].CreateAttr(NameAttr, name)
			existing[0].CreateAttr(XDCPathAttr, xdcPath)
			return nil
		}

		el := etree.NewElement(NodeElement)
		el.CreateAttr(NodeIDAttr, strconv.Itoa(int(nodeID)))
		el.CreateAttr(NameAttr, name)
		el.CreateAttr(XDCPathAttr, xdcPath)
		n, err := tx.AddElement("//"+NodeCollectionElement, xdd.AnyNamespace, el)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("project: no %s element", NodeCollectionElement)
		}
		return nil
	})
}

// HasNode reports whether the project contains the node.
func (f *File) HasNode(nodeID uint8) bool {
	n, err := f.doc.Count(nodePath(nodeID), xdd.AnyNamespace)
	return err == nil && n > 0
}

// IsForced reports whether the object identified by key is forced on the node.
func (f *File) IsForced(nodeID uint8, key Key) bool {
	forced := false
	_ = f.doc.Batch(func(tx *xdd.Tx) error {
		candidates, err := tx.Find(forcedObjectPath(nodeID, key.Index), xdd.AnyNamespace)
		if err != nil {
			return err
		}
		for _, c := range candidates {
			if key.matches(c) {
				forced = true
				break
			}
		}
		return nil
	})
	return forced
}

// SetForced adds (force=true) or removes (force=false) the forced record of
// key on the node. Forcing an already forced object and unforcing an object
// that is not forced are no-ops.
func (f *File) SetForced(nodeID uint8, key Key, force bool) error {
	return f.doc.Batch(func(tx *xdd.Tx) error {
		if _, err := tx.First(nodePath(nodeID), xdd.AnyNamespace); err != nil {
			return fmt.Errorf("%w: %d", ErrNodeNotFound, nodeID)
		}

		if !force {
			_, err := tx.RemoveWhere(forcedObjectPath(nodeID, key.Index), xdd.AnyNamespace, key.matches)
			return err
		}

		candidates, err := tx.Find(forcedObjectPath(nodeID, key.Index), xdd.AnyNamespace)
		if err != nil {
			return err
		}
		for _, c := range candidates {
			if key.matches(c) {
				return nil
			}
		}

		if n, _ := tx.Find(forcedPath(nodeID), xdd.AnyNamespace); len(n) == 0 {
			if _, err := tx.AddElement(nodePath(nodeID), xdd.AnyNamespace, etree.NewElement(ForcedObjectsElement)); err != nil {
				return err
			}
		}

		el := etree.NewElement(ObjectElement)
		el.CreateAttr(IndexAttr, xpath.FormatIndex(key.Index))
		if key.HasSubIndex {
			el.CreateAttr(SubIndexAttr, xpath.FormatSubIndex(key.SubIndex))
		}
		_, err = tx.AddElement(forcedPath(nodeID), xdd.AnyNamespace, el)
		return err
	})
}

// Forced returns the forced keys of a node ordered by index and sub-index.
func (f *File) Forced(nodeID uint8) ([]Key, error) {
	var keys []Key
	err := f.doc.Batch(func(tx *xdd.Tx) error {
		els, err := tx.Find(forcedPath(nodeID)+"/"+ObjectElement, xdd.AnyNamespace)
		if err != nil {
			return err
		}
		for _, el := range els {
			idx, err := xpath.ParseIndex(el.SelectAttrValue(IndexAttr, ""))
			if err != nil {
				return fmt.Errorf("forced object of node %d: %w", nodeID, err)
			}
			key := ObjectKey(idx)
			if sub := el.SelectAttr(SubIndexAttr); sub != nil {
				s, err := xpath.ParseSubIndex(sub.Value)
				if err != nil {
					return fmt.Errorf("forced object %s of node %d: %w", key, nodeID, err)
				}
				key = SubObjectKey(idx, s)
			}
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Index != keys[j].Index {
			return keys[i].Index < keys[j].Index
		}
		if keys[i].HasSubIndex != keys[j].HasSubIndex {
			return !keys[i].HasSubIndex
		}
		return keys[i].SubIndex < keys[j].SubIndex
	})
	return keys, nil
}
