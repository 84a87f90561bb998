package model

import (
	"errors"
	"fmt"

	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// ErrDuplicateSubIndex is returned when an object lists a sub-index twice.
var ErrDuplicateSubIndex = errors.New("duplicate sub-index")

// Object is a dictionary entry addressed by a 16-bit index.
type Object struct {
	entry

	subs       []*SubObject
	subByIndex map[uint8]*SubObject
	rpdoSubs   []*SubObject
	tpdoSubs   []*SubObject
}

// NewObject builds an object and its sub-objects from their raw form.
// Sub-objects keep document order.
func NewObject(node *Node, raw *RawObject) (*Object, error) {
	if node == nil {
		return nil, ErrNilNode
	}
	if raw == nil {
		return nil, ErrNilRawObject
	}

	o := &Object{subByIndex: make(map[uint8]*SubObject, len(raw.SubObjects))}
	o.init(node, project.ObjectKey(raw.Index), xpath.Object(raw.Index), raw.RawEntry)

	for i := range raw.SubObjects {
		rs := &raw.SubObjects[i]
		if _, exists := o.subByIndex[rs.SubIndex]; exists {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateSubIndex,
				xpath.DisplayIndex(raw.Index), xpath.DisplaySubIndex(rs.SubIndex))
		}
		sub := newSubObject(o, rs)
		o.subs = append(o.subs, sub)
		o.subByIndex[rs.SubIndex] = sub
		if sub.rpdo {
			o.rpdoSubs = append(o.rpdoSubs, sub)
		}
		if sub.tpdo {
			o.tpdoSubs = append(o.tpdoSubs, sub)
		}
	}
	return o, nil
}

// Index returns the object index.
func (o *Object) Index() uint16 { return o.key.Index }

// ID returns the display form of the index ("0x1006").
func (o *Object) ID() string { return xpath.DisplayIndex(o.key.Index) }

// Text returns the name with the index ("NMT_CycleLen_U32 (0x1006)").
func (o *Object) Text() string { return o.raw.Name + " (" + o.ID() + ")" }

// SubObjects returns the sub-objects in document order.
func (o *Object) SubObjects() []*SubObject {
	out := make([]*SubObject, len(o.subs))
	copy(out, o.subs)
	return out
}

// SubObject returns the sub-object with the given sub-index.
func (o *Object) SubObject(subIndex uint8) (*SubObject, bool) {
	s, ok := o.subByIndex[subIndex]
	return s, ok
}

// SubObjectByRaw looks up a sub-object by its raw one byte sub-index.
func (o *Object) SubObjectByRaw(raw []byte) (*SubObject, bool) {
	if len(raw) != 1 {
		return nil, false
	}
	return o.SubObject(raw[0])
}

// RpdoMappableSubObjects returns the RPDO mappable sub-objects in document order.
func (o *Object) RpdoMappableSubObjects() []*SubObject {
	return append([]*SubObject(nil), o.rpdoSubs...)
}

// TpdoMappableSubObjects returns the TPDO mappable sub-objects in document order.
func (o *Object) TpdoMappableSubObjects() []*SubObject {
	return append([]*SubObject(nil), o.tpdoSubs...)
}

// HasRpdoMappableSubObjects returns true if any sub-object is RPDO mappable.
func (o *Object) HasRpdoMappableSubObjects() bool { return len(o.rpdoSubs) > 0 }

// HasTpdoMappableSubObjects returns true if any sub-object is TPDO mappable.
func (o *Object) HasTpdoMappableSubObjects() bool { return len(o.tpdoSubs) > 0 }

// Fields returns the fields present on the object in display order.
func (o *Object) Fields() []Field { return o.fields(FieldIndex) }

// Value returns the text of field f.
func (o *Object) Value(f Field) string {
	if f == FieldSubIndex {
		return ""
	}
	return o.value(f)
}
