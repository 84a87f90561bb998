package model

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// ErrNotObjectElement is returned when raw parsing is given a foreign element.
var ErrNotObjectElement = errors.New("element is not an Object")

// RawEntry holds the attributes shared by objects and sub-objects as read
// from the device description. Empty strings mean the attribute is absent.
type RawEntry struct {
	Name         string
	ObjectType   ObjectType
	DataType     string
	LowLimit     string
	HighLimit    string
	AccessType   AccessType
	DefaultValue string
	Denotation   string
	PDOMapping   PDOMapping
	ObjFlags     string
	UniqueIDRef  string

	ActualValue    string
	HasActualValue bool
}

// RawObject is the raw form of an Object element.
type RawObject struct {
	RawEntry
	Index      uint16
	SubObjects []RawSubObject
}

// RawSubObject is the raw form of a SubObject element.
type RawSubObject struct {
	RawEntry
	SubIndex uint8
}

// ParseRawObject reads an Object element and its SubObject children.
func ParseRawObject(el *etree.Element) (*RawObject, error) {
	if el == nil {
		return nil, ErrNilRawObject
	}
	if el.Tag != xpath.ObjectElement {
		return nil, fmt.Errorf("%w: <%s>", ErrNotObjectElement, el.FullTag())
	}

	index, err := xpath.ParseIndex(el.SelectAttrValue(xpath.IndexAttr, ""))
	if err != nil {
		return nil, fmt.Errorf("object: %w", err)
	}

	entry, err := parseRawEntry(el)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", xpath.DisplayIndex(index), err)
	}

	raw := &RawObject{RawEntry: entry, Index: index}
	for _, child := range el.ChildElements() {
		if child.Tag != xpath.SubObjectElement {
			continue
		}
		sub, err := xpath.ParseSubIndex(child.SelectAttrValue(xpath.SubIndexAttr, ""))
		if err != nil {
			return nil, fmt.Errorf("object %s: sub-object: %w", xpath.DisplayIndex(index), err)
		}
		subEntry, err := parseRawEntry(child)
		if err != nil {
			return nil, fmt.Errorf("object %s/%s: %w",
				xpath.DisplayIndex(index), xpath.DisplaySubIndex(sub), err)
		}
		raw.SubObjects = append(raw.SubObjects, RawSubObject{RawEntry: subEntry, SubIndex: sub})
	}
	return raw, nil
}

func parseRawEntry(el *etree.Element) (RawEntry, error) {
	e := RawEntry{
		Name:         el.SelectAttrValue(FieldName.XMLAttr(), ""),
		DataType:     el.SelectAttrValue(FieldDataType.XMLAttr(), ""),
		LowLimit:     el.SelectAttrValue(FieldLowLimit.XMLAttr(), ""),
		HighLimit:    el.SelectAttrValue(FieldHighLimit.XMLAttr(), ""),
		DefaultValue: el.SelectAttrValue(FieldDefaultValue.XMLAttr(), ""),
		Denotation:   el.SelectAttrValue(FieldDenotation.XMLAttr(), ""),
		ObjFlags:     el.SelectAttrValue(FieldObjFlags.XMLAttr(), ""),
		UniqueIDRef:  el.SelectAttrValue(FieldUniqueIDRef.XMLAttr(), ""),
	}

	ot, err := ParseObjectType(el.SelectAttrValue(FieldObjectType.XMLAttr(), ""))
	if err != nil {
		return e, err
	}
	e.ObjectType = ot

	if a := el.SelectAttr(FieldAccessType.XMLAttr()); a != nil {
		if e.AccessType, err = ParseAccessType(a.Value); err != nil {
			return e, err
		}
	}
	if a := el.SelectAttr(FieldPDOMapping.XMLAttr()); a != nil {
		if e.PDOMapping, err = ParsePDOMapping(a.Value); err != nil {
			return e, err
		}
	}
	if a := el.SelectAttr(FieldActualValue.XMLAttr()); a != nil {
		e.ActualValue = a.Value
		e.HasActualValue = true
	}
	return e, nil
}
