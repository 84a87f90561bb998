package model

import (
	"strconv"
	"strings"
)

// Data type codes of the static object dictionary area (0x0001-0x0FFF).
const (
	DataTypeBoolean       uint16 = 0x0001
	DataTypeInteger8      uint16 = 0x0002
	DataTypeInteger16     uint16 = 0x0003
	DataTypeInteger32     uint16 = 0x0004
	DataTypeUnsigned8     uint16 = 0x0005
	DataTypeUnsigned16    uint16 = 0x0006
	DataTypeUnsigned32    uint16 = 0x0007
	DataTypeReal32        uint16 = 0x0008
	DataTypeVisibleString uint16 = 0x0009
	DataTypeOctetString   uint16 = 0x000A
	DataTypeUnicodeString uint16 = 0x000B
	DataTypeTimeOfDay     uint16 = 0x000C
	DataTypeTimeDiff      uint16 = 0x000D
	DataTypeDomain        uint16 = 0x000F
	DataTypeInteger24     uint16 = 0x0010
	DataTypeReal64        uint16 = 0x0011
	DataTypeInteger40     uint16 = 0x0012
	DataTypeInteger48     uint16 = 0x0013
	DataTypeInteger56     uint16 = 0x0014
	DataTypeInteger64     uint16 = 0x0015
	DataTypeUnsigned24    uint16 = 0x0016
	DataTypeUnsigned40    uint16 = 0x0018
	DataTypeUnsigned48    uint16 = 0x0019
	DataTypeUnsigned56    uint16 = 0x001A
	DataTypeUnsigned64    uint16 = 0x001B
	DataTypeMACAddress    uint16 = 0x0401
	DataTypeIPAddress     uint16 = 0x0402
	DataTypeNetTime       uint16 = 0x0403
)

var dataTypeNames = map[uint16]string{
	DataTypeBoolean:       "BOOLEAN",
	DataTypeInteger8:      "INTEGER8",
	DataTypeInteger16:     "INTEGER16",
	DataTypeInteger32:     "INTEGER32",
	DataTypeUnsigned8:     "UNSIGNED8",
	DataTypeUnsigned16:    "UNSIGNED16",
	DataTypeUnsigned32:    "UNSIGNED32",
	DataTypeReal32:        "REAL32",
	DataTypeVisibleString: "VISIBLE_STRING",
	DataTypeOctetString:   "OCTET_STRING",
	DataTypeUnicodeString: "UNICODE_STRING",
	DataTypeTimeOfDay:     "TIME_OF_DAY",
	DataTypeTimeDiff:      "TIME_DIFF",
	DataTypeDomain:        "DOMAIN",
	DataTypeInteger24:     "INTEGER24",
	DataTypeReal64:        "REAL64",
	DataTypeInteger40:     "INTEGER40",
	DataTypeInteger48:     "INTEGER48",
	DataTypeInteger56:     "INTEGER56",
	DataTypeInteger64:     "INTEGER64",
	DataTypeUnsigned24:    "UNSIGNED24",
	DataTypeUnsigned40:    "UNSIGNED40",
	DataTypeUnsigned48:    "UNSIGNED48",
	DataTypeUnsigned56:    "UNSIGNED56",
	DataTypeUnsigned64:    "UNSIGNED64",
	DataTypeMACAddress:    "MAC_ADDRESS",
	DataTypeIPAddress:     "IP_ADDRESS",
	DataTypeNetTime:       "NETTIME",
}

// DataTypeName returns the human-readable name of a data type code.
func DataTypeName(code uint16) string {
	return dataTypeNames[code]
}

// ParseDataType decodes a raw hex data type code ("0007").
// ok is false when the text is not a valid code.
func ParseDataType(raw string) (code uint16, ok bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// DataTypeNameRaw resolves a raw hex data type code to its name.
// Unknown or malformed codes yield "".
func DataTypeNameRaw(raw string) string {
	code, ok := ParseDataType(raw)
	if !ok {
		return ""
	}
	return DataTypeName(code)
}

// DataTypeBits returns the width in bits of numeric data types and 0 for
// everything else.
func DataTypeBits(code uint16) int {
	switch code {
	case DataTypeBoolean, DataTypeInteger8, DataTypeUnsigned8:
		return 8
	case DataTypeInteger16, DataTypeUnsigned16:
		return 16
	case DataTypeInteger24, DataTypeUnsigned24:
		return 24
	case DataTypeInteger32, DataTypeUnsigned32, DataTypeReal32:
		return 32
	case DataTypeInteger40, DataTypeUnsigned40:
		return 40
	case DataTypeInteger48, DataTypeUnsigned48:
		return 48
	case DataTypeInteger56, DataTypeUnsigned56:
		return 56
	case DataTypeInteger64, DataTypeUnsigned64, DataTypeReal64:
		return 64
	default:
		return 0
	}
}

// IsSigned returns true for the INTEGERn types.
func IsSigned(code uint16) bool {
	switch code {
	case DataTypeInteger8, DataTypeInteger16, DataTypeInteger24, DataTypeInteger32,
		DataTypeInteger40, DataTypeInteger48, DataTypeInteger56, DataTypeInteger64:
		return true
	default:
		return false
	}
}

// IsUnsigned returns true for the UNSIGNEDn types.
func IsUnsigned(code uint16) bool {
	switch code {
	case DataTypeUnsigned8, DataTypeUnsigned16, DataTypeUnsigned24, DataTypeUnsigned32,
		DataTypeUnsigned40, DataTypeUnsigned48, DataTypeUnsigned56, DataTypeUnsigned64:
		return true
	default:
		return false
	}
}

// IsReal returns true for REAL32 and REAL64.
func IsReal(code uint16) bool {
	return code == DataTypeReal32 || code == DataTypeReal64
}
