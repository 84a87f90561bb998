package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAttribute is returned when an attribute value cannot be decoded.
var ErrInvalidAttribute = errors.New("invalid attribute value")

// ObjectType is the numeric object code of a dictionary entry.
type ObjectType uint8

// Object codes.
const (
	ObjectTypeNull      ObjectType = 0
	ObjectTypeDomain    ObjectType = 2
	ObjectTypeDefType   ObjectType = 5
	ObjectTypeDefStruct ObjectType = 6
	ObjectTypeVar       ObjectType = 7
	ObjectTypeArray     ObjectType = 8
	ObjectTypeRecord    ObjectType = 9
)

// String returns the object code name.
func (t ObjectType) String() string {
	switch t {
	case ObjectTypeNull:
		return "NULL"
	case ObjectTypeDomain:
		return "DOMAIN"
	case ObjectTypeDefType:
		return "DEFTYPE"
	case ObjectTypeDefStruct:
		return "DEFSTRUCT"
	case ObjectTypeVar:
		return "VAR"
	case ObjectTypeArray:
		return "ARRAY"
	case ObjectTypeRecord:
		return "RECORD"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// ParseObjectType decodes the objectType attribute (decimal).
func ParseObjectType(s string) (ObjectType, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: objectType %q", ErrInvalidAttribute, s)
	}
	return ObjectType(v), nil
}

// AccessType is the access right of an entry.
// The zero value means the attribute is absent.
type AccessType uint8

// Access types.
const (
	AccessUnset AccessType = iota
	AccessConst
	AccessRO
	AccessWO
	AccessRW
)

// String returns the access type as written in the device description.
func (a AccessType) String() string {
	switch a {
	case AccessConst:
		return "const"
	case AccessRO:
		return "ro"
	case AccessWO:
		return "wo"
	case AccessRW:
		return "rw"
	default:
		return ""
	}
}

// CanRead returns true for const, ro and rw.
func (a AccessType) CanRead() bool {
	return a == AccessConst || a == AccessRO || a == AccessRW
}

// CanWrite returns true for wo and rw.
func (a AccessType) CanWrite() bool {
	return a == AccessWO || a == AccessRW
}

// ParseAccessType decodes the accessType attribute (case-insensitive).
func ParseAccessType(s string) (AccessType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "const":
		return AccessConst, nil
	case "ro":
		return AccessRO, nil
	case "wo":
		return AccessWO, nil
	case "rw":
		return AccessRW, nil
	default:
		return AccessUnset, fmt.Errorf("%w: accessType %q", ErrInvalidAttribute, s)
	}
}

// PDOMapping is the PDO mapping directive of an entry.
// The zero value means the attribute is absent.
type PDOMapping uint8

// PDO mapping directives.
const (
	PDOMappingUnset PDOMapping = iota
	PDOMappingNo
	PDOMappingDefault
	PDOMappingOptional
	PDOMappingRPDO
	PDOMappingTPDO
)

// String returns the directive as written in the device description.
func (m PDOMapping) String() string {
	switch m {
	case PDOMappingNo:
		return "no"
	case PDOMappingDefault:
		return "default"
	case PDOMappingOptional:
		return "optional"
	case PDOMappingRPDO:
		return "RPDO"
	case PDOMappingTPDO:
		return "TPDO"
	default:
		return ""
	}
}

// ParsePDOMapping decodes the PDOmapping attribute (case-insensitive).
func ParsePDOMapping(s string) (PDOMapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no":
		return PDOMappingNo, nil
	case "default":
		return PDOMappingDefault, nil
	case "optional":
		return PDOMappingOptional, nil
	case "rpdo":
		return PDOMappingRPDO, nil
	case "tpdo":
		return PDOMappingTPDO, nil
	default:
		return PDOMappingUnset, fmt.Errorf("%w: PDOmapping %q", ErrInvalidAttribute, s)
	}
}
