package inspect

import (
	"context"
	"errors"
	"fmt"

	"github.com/openconfigurator/odconf-go/pkg/edit"
	"github.com/openconfigurator/odconf-go/pkg/model"
)

// Inspector errors.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrSubObjectNotFound = errors.New("sub-object not found")
)

// Inspector provides inspection and editing of one node's dictionary.
type Inspector struct {
	node   *model.Node
	editor *edit.Editor
}

// NewInspector creates a new Inspector for the given node. Writes go through
// editor; a nil editor makes the inspector read-only.
func NewInspector(node *model.Node, editor *edit.Editor) *Inspector {
	return &Inspector{node: node, editor: editor}
}

// Node returns the inspected node.
func (i *Inspector) Node() *model.Node {
	return i.node
}

// NodeTree represents the dictionary structure for display.
type NodeTree struct {
	NetworkID string
	NodeID    uint8
	Name      string
	Objects   []EntryInfo
}

// EntryInfo represents an object or sub-object for display.
type EntryInfo struct {
	ID         string
	Path       string
	Name       string
	ObjectType model.ObjectType
	DataType   string
	Access     model.AccessType
	Actual     string
	HasActual  bool
	Default    string
	Editable   bool
	Forced     bool
	RPDO       bool
	TPDO       bool
	Fields     []FieldValue
	SubObjects []EntryInfo
}

// FieldValue is one labelled field of an entry.
type FieldValue struct {
	Field model.Field
	Value string
}

// InspectNode returns the complete dictionary tree of the node.
func (i *Inspector) InspectNode() *NodeTree {
	tree := &NodeTree{
		NetworkID: i.node.NetworkID(),
		NodeID:    i.node.NodeID(),
		Name:      i.node.Name(),
	}
	for _, o := range i.node.Dictionary().Objects() {
		info := entryInfo(o, o.ID())
		for _, s := range o.SubObjects() {
			info.SubObjects = append(info.SubObjects, entryInfo(s, o.ID()+"/"+s.ID()))
		}
		tree.Objects = append(tree.Objects, info)
	}
	return tree
}

func entryInfo(e model.Entry, path string) EntryInfo {
	actual, hasActual := e.ActualValue()
	info := EntryInfo{
		ID:         e.ID(),
		Path:       path,
		Name:       e.Name(),
		ObjectType: e.ObjectType(),
		DataType:   e.DataTypeName(),
		Access:     e.AccessType(),
		Actual:     actual,
		HasActual:  hasActual,
		Default:    e.DefaultValue(),
		Editable:   e.IsEditable(),
		Forced:     e.IsForced(),
		RPDO:       e.IsRpdoMappable(),
		TPDO:       e.IsTpdoMappable(),
	}
	if info.DataType == "" {
		info.DataType = e.DataType()
	}
	for _, f := range e.Fields() {
		info.Fields = append(info.Fields, FieldValue{Field: f, Value: e.Value(f)})
	}
	return info
}

// Resolve returns the entry addressed by path.
func (i *Inspector) Resolve(path *Path) (model.Entry, error) {
	dict := i.node.Dictionary()

	var (
		obj *model.Object
		ok  bool
	)
	if path.Name != "" {
		obj, ok = dict.ObjectByName(path.Name)
	} else {
		obj, ok = dict.Object(path.Index)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path.String())
	}
	if !path.HasSubIndex {
		return obj, nil
	}
	sub, ok := obj.SubObject(path.SubIndex)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSubObjectNotFound, path.String())
	}
	return sub, nil
}

// ReadEntry returns display information about the entry at path.
func (i *Inspector) ReadEntry(path *Path) (*EntryInfo, error) {
	e, err := i.Resolve(path)
	if err != nil {
		return nil, err
	}
	info := entryInfo(e, e.Key().String())
	if obj, ok := e.(*model.Object); ok {
		for _, s := range obj.SubObjects() {
			info.SubObjects = append(info.SubObjects, entryInfo(s, obj.ID()+"/"+s.ID()))
		}
	}
	return &info, nil
}

// WriteActualValue proposes value for the entry at path.
func (i *Inspector) WriteActualValue(ctx context.Context, path *Path, value string, persist bool) error {
	if i.editor == nil {
		return edit.ErrNotEditable
	}
	e, err := i.Resolve(path)
	if err != nil {
		return err
	}
	return i.editor.ProposeActualValue(ctx, e, value, persist)
}

// SetForced forces or unforces the entry at path.
func (i *Inspector) SetForced(ctx context.Context, path *Path, force, persist bool) error {
	if i.editor == nil {
		return edit.ErrNotEditable
	}
	e, err := i.Resolve(path)
	if err != nil {
		return err
	}
	return i.editor.Force(ctx, e, force, persist)
}
