package model

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/beevik/etree"

	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xdd"
	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// Entry errors.
var (
	ErrNilNode       = errors.New("nil node")
	ErrNilRawObject  = errors.New("nil raw object")
	ErrNoProject     = errors.New("node has no project file")
	ErrNoUniqueIDRef = errors.New("entry has no uniqueIDRef")
)

// Entry is the behavior shared by objects and sub-objects.
type Entry interface {
	Node() *Node
	Key() project.Key
	XPath() string
	ID() string
	Text() string

	Name() string
	ObjectType() ObjectType
	DataType() string
	DataTypeName() string
	AccessType() AccessType
	PDOMapping() PDOMapping
	LowLimit() string
	HighLimit() string
	DefaultValue() string
	UniqueIDRef() string

	IsEditable() bool
	IsRpdoMappable() bool
	IsTpdoMappable() bool

	ActualValue() (string, bool)
	SetActualValue(value string, persist bool) error

	IsForced() bool
	Force(force, persist bool) error

	Fields() []Field
	Value(f Field) string
}

// entry is the state common to Object and SubObject.
// Everything except the actual value is fixed at construction.
type entry struct {
	node  *Node
	key   project.Key
	xpath string
	raw   RawEntry

	rpdo bool
	tpdo bool

	mu        sync.RWMutex
	actual    string
	hasActual bool
}

func (e *entry) init(node *Node, key project.Key, locator string, raw RawEntry) {
	e.node = node
	e.key = key
	e.xpath = locator
	e.raw = raw
	e.actual = raw.ActualValue
	e.hasActual = raw.HasActualValue
	e.rpdo, e.tpdo = classify(raw)
}

// classify derives PDO mappability. The RPDO branch wins for default and
// optional mappings, so those entries are never TPDO mappable.
func classify(raw RawEntry) (rpdo, tpdo bool) {
	hasRef := raw.UniqueIDRef != ""
	switch raw.PDOMapping {
	case PDOMappingDefault, PDOMappingOptional, PDOMappingRPDO:
		rpdo = hasRef || raw.AccessType == AccessRW || raw.AccessType == AccessWO
	case PDOMappingTPDO:
		tpdo = hasRef || raw.AccessType == AccessRO || raw.AccessType == AccessRW
	}
	return rpdo, tpdo
}

// Node returns the owning node.
func (e *entry) Node() *Node { return e.node }

// Key returns the project key of the entry.
func (e *entry) Key() project.Key { return e.key }

// XPath returns the locator of the entry's element.
func (e *entry) XPath() string { return e.xpath }

// Name returns the entry name.
func (e *entry) Name() string { return e.raw.Name }

// ObjectType returns the object code.
func (e *entry) ObjectType() ObjectType { return e.raw.ObjectType }

// DataType returns the raw data type code, or "" when absent.
func (e *entry) DataType() string { return e.raw.DataType }

// DataTypeName returns the data type name, or "" when absent or unknown.
func (e *entry) DataTypeName() string { return DataTypeNameRaw(e.raw.DataType) }

// AccessType returns the access type. AccessUnset means absent.
func (e *entry) AccessType() AccessType { return e.raw.AccessType }

// PDOMapping returns the PDO mapping directive.
func (e *entry) PDOMapping() PDOMapping { return e.raw.PDOMapping }

func (e *entry) LowLimit() string     { return e.raw.LowLimit }
func (e *entry) HighLimit() string    { return e.raw.HighLimit }
func (e *entry) DefaultValue() string { return e.raw.DefaultValue }
func (e *entry) Denotation() string   { return e.raw.Denotation }
func (e *entry) ObjFlags() string     { return e.raw.ObjFlags }
func (e *entry) UniqueIDRef() string  { return e.raw.UniqueIDRef }

// IsRpdoMappable returns true if the entry can be mapped into an RPDO.
func (e *entry) IsRpdoMappable() bool { return e.rpdo }

// IsTpdoMappable returns true if the entry can be mapped into a TPDO.
func (e *entry) IsTpdoMappable() bool { return e.tpdo }

// IsEditable returns true if the actual value may be changed: VAR objects
// with a data type and a writable access type.
func (e *entry) IsEditable() bool {
	return e.raw.ObjectType == ObjectTypeVar &&
		e.raw.DataType != "" &&
		e.raw.AccessType.CanWrite()
}

// ActualValue returns the actual value and whether one is set.
func (e *entry) ActualValue() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.actual, e.hasActual
}

// SetActualValue stores value in memory and, if persist is set, writes the
// actualValue attribute of the entry's element. Both happen under the
// entry's write lock. A returned error means the document write failed after
// the in-memory value was already replaced.
func (e *entry) SetActualValue(value string, persist bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.actual = value
	e.hasActual = true

	if !persist {
		return nil
	}
	attr := xdd.Attr{Key: FieldActualValue.XMLAttr(), Value: value}
	if err := e.node.document().UpdateAttribute(e.xpath, e.node.namespace(), attr); err != nil {
		return fmt.Errorf("write %s of %s: %w", attr.Key, e.key, err)
	}
	return nil
}

// IsForced reports whether the project file marks the entry as forced.
func (e *entry) IsForced() bool {
	p := e.node.Project()
	if p == nil {
		return false
	}
	return p.IsForced(e.node.NodeID(), e.key)
}

// Force adds or removes the forced record of the entry in the project file
// and saves the project if persist is set.
func (e *entry) Force(force, persist bool) error {
	p := e.node.Project()
	if p == nil {
		return ErrNoProject
	}
	if err := p.SetForced(e.node.NodeID(), e.key, force); err != nil {
		return fmt.Errorf("force %s: %w", e.key, err)
	}
	if persist {
		return p.Save()
	}
	return nil
}

// ResolveUniqueIDRef returns a copy of the element the entry's uniqueIDRef
// points to.
func (e *entry) ResolveUniqueIDRef() (*etree.Element, error) {
	if e.raw.UniqueIDRef == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoUniqueIDRef, e.key)
	}
	return e.node.ResolveRef(e.raw.UniqueIDRef)
}

// fields returns the present attribute fields after the identity fields.
func (e *entry) fields(identity ...Field) []Field {
	fields := append([]Field{}, identity...)
	fields = append(fields, FieldName, FieldObjectType)
	if e.raw.DataType != "" {
		fields = append(fields, FieldDataType)
	}
	if e.raw.LowLimit != "" {
		fields = append(fields, FieldLowLimit)
	}
	if e.raw.HighLimit != "" {
		fields = append(fields, FieldHighLimit)
	}
	if e.raw.AccessType != AccessUnset {
		fields = append(fields, FieldAccessType)
	}
	if e.raw.DefaultValue != "" {
		fields = append(fields, FieldDefaultValue)
	}
	if _, ok := e.ActualValue(); ok || e.IsEditable() {
		fields = append(fields, FieldActualValue)
	}
	if e.raw.Denotation != "" {
		fields = append(fields, FieldDenotation)
	}
	if e.raw.PDOMapping != PDOMappingUnset {
		fields = append(fields, FieldPDOMapping)
	}
	if e.raw.ObjFlags != "" {
		fields = append(fields, FieldObjFlags)
	}
	if e.raw.UniqueIDRef != "" {
		fields = append(fields, FieldUniqueIDRef)
	}
	return fields
}

// value returns the text of a field. Identity fields are handled by the
// callers.
func (e *entry) value(f Field) string {
	switch f {
	case FieldIndex:
		return xpath.DisplayIndex(e.key.Index)
	case FieldSubIndex:
		if !e.key.HasSubIndex {
			return ""
		}
		return xpath.DisplaySubIndex(e.key.SubIndex)
	case FieldName:
		return e.raw.Name
	case FieldObjectType:
		return strconv.Itoa(int(e.raw.ObjectType))
	case FieldDataType:
		return e.DataTypeName()
	case FieldLowLimit:
		return e.raw.LowLimit
	case FieldHighLimit:
		return e.raw.HighLimit
	case FieldAccessType:
		return e.raw.AccessType.String()
	case FieldDefaultValue:
		return e.raw.DefaultValue
	case FieldActualValue:
		v, _ := e.ActualValue()
		return v
	case FieldDenotation:
		return e.raw.Denotation
	case FieldPDOMapping:
		return e.raw.PDOMapping.String()
	case FieldObjFlags:
		return e.raw.ObjFlags
	case FieldUniqueIDRef:
		return e.raw.UniqueIDRef
	default:
		return ""
	}
}
