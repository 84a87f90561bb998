package model

import (
	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// SubObject is an entry below an object, addressed by an 8-bit sub-index.
type SubObject struct {
	entry
	parent *Object
}

func newSubObject(parent *Object, raw *RawSubObject) *SubObject {
	s := &SubObject{parent: parent}
	index := parent.key.Index
	s.init(parent.node, project.SubObjectKey(index, raw.SubIndex),
		xpath.SubObject(index, raw.SubIndex), raw.RawEntry)
	return s
}

// Object returns the owning object.
func (s *SubObject) Object() *Object { return s.parent }

// SubIndex returns the sub-index.
func (s *SubObject) SubIndex() uint8 { return s.key.SubIndex }

// ID returns the display form of the sub-index ("0x01").
func (s *SubObject) ID() string { return xpath.DisplaySubIndex(s.key.SubIndex) }

// Text returns the name with the sub-index ("NodeAssignment (0x01)").
func (s *SubObject) Text() string { return s.raw.Name + " (" + s.ID() + ")" }

// Fields returns the fields present on the sub-object in display order.
func (s *SubObject) Fields() []Field { return s.fields(FieldIndex, FieldSubIndex) }

// Value returns the text of field f.
func (s *SubObject) Value(f Field) string { return s.value(f) }
