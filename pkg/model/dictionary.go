package model

import (
	"errors"
	"fmt"

	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// ErrDuplicateIndex is returned when an index is added twice.
var ErrDuplicateIndex = errors.New("duplicate object index")

// Dictionary is the ordered set of objects of one node.
// It is filled during load and read-only afterwards.
type Dictionary struct {
	objects []*Object
	byIndex map[uint16]*Object
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{byIndex: make(map[uint16]*Object)}
}

// Add appends an object.
func (d *Dictionary) Add(o *Object) error {
	if _, exists := d.byIndex[o.Index()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateIndex, o.ID())
	}
	d.objects = append(d.objects, o)
	d.byIndex[o.Index()] = o
	return nil
}

// Len returns the number of objects.
func (d *Dictionary) Len() int { return len(d.objects) }

// Objects returns all objects in load order.
func (d *Dictionary) Objects() []*Object {
	return append([]*Object(nil), d.objects...)
}

// Object returns the object with the given index.
func (d *Dictionary) Object(index uint16) (*Object, bool) {
	o, ok := d.byIndex[index]
	return o, ok
}

// ObjectByRaw looks up an object by its raw big-endian index bytes.
func (d *Dictionary) ObjectByRaw(raw []byte) (*Object, bool) {
	index, err := xpath.FromBytes(raw)
	if err != nil {
		return nil, false
	}
	return d.Object(index)
}

// ObjectByName returns the first object with the given name.
func (d *Dictionary) ObjectByName(name string) (*Object, bool) {
	for _, o := range d.objects {
		if o.Name() == name {
			return o, true
		}
	}
	return nil, false
}

// Lookup returns the object or sub-object identified by key.
func (d *Dictionary) Lookup(key project.Key) (Entry, bool) {
	o, ok := d.Object(key.Index)
	if !ok {
		return nil, false
	}
	if !key.HasSubIndex {
		return o, true
	}
	s, ok := o.SubObject(key.SubIndex)
	if !ok {
		return nil, false
	}
	return s, true
}

// RpdoMappableObjects returns the objects that are RPDO mappable themselves
// or have RPDO mappable sub-objects.
func (d *Dictionary) RpdoMappableObjects() []*Object {
	var out []*Object
	for _, o := range d.objects {
		if o.IsRpdoMappable() || o.HasRpdoMappableSubObjects() {
			out = append(out, o)
		}
	}
	return out
}

// TpdoMappableObjects returns the objects that are TPDO mappable themselves
// or have TPDO mappable sub-objects.
func (d *Dictionary) TpdoMappableObjects() []*Object {
	var out []*Object
	for _, o := range d.objects {
		if o.IsTpdoMappable() || o.HasTpdoMappableSubObjects() {
			out = append(out, o)
		}
	}
	return out
}
