// Package xpath builds the locator strings that identify object dictionary
// entries inside an XDD/XDC document.
//
// Locators are persisted by other tools (project files, journals) and
// re-resolved later, so the output format is frozen:
//
//	Object(0x1006)          //Object[@index='1006']
//	SubObject(0x1F81, 0x01) //Object[@index='1F81']/SubObject[@subIndex='01']
//
// Indices are uppercase hexadecimal without a 0x prefix, padded to the width
// of their byte representation (4 digits for an index, 2 for a sub-index).
package xpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned when parsing raw index text.
var (
	ErrEmptyIndex   = errors.New("empty index")
	ErrInvalidIndex = errors.New("invalid index")
)

// Element and attribute names used in locators.
const (
	ObjectElement    = "Object"
	SubObjectElement = "SubObject"
	IndexAttr        = "index"
	SubIndexAttr     = "subIndex"
)

// FormatIndex returns the raw attribute form of an object index ("1006").
func FormatIndex(index uint16) string {
	return fmt.Sprintf("%04X", index)
}

// FormatSubIndex returns the raw attribute form of a sub-index ("01").
func FormatSubIndex(subIndex uint8) string {
	return fmt.Sprintf("%02X", subIndex)
}

// DisplayIndex returns the display form of an object index ("0x1006").
func DisplayIndex(index uint16) string {
	return "0x" + FormatIndex(index)
}

// DisplaySubIndex returns the display form of a sub-index ("0x01").
func DisplaySubIndex(subIndex uint8) string {
	return "0x" + FormatSubIndex(subIndex)
}

// Object returns the locator of the object with the given index.
func Object(index uint16) string {
	return "//" + ObjectElement + "[@" + IndexAttr + "='" + FormatIndex(index) + "']"
}

// SubObject returns the locator of a sub-object under the given index.
func SubObject(index uint16, subIndex uint8) string {
	return Object(index) + "/" + SubObjectElement + "[@" + SubIndexAttr + "='" + FormatSubIndex(subIndex) + "']"
}

// ParseIndex parses raw index text as found in the index attribute.
// The text is hexadecimal; an optional 0x prefix is accepted.
func ParseIndex(raw string) (uint16, error) {
	v, err := parseHex(raw, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// ParseSubIndex parses raw sub-index text as found in the subIndex attribute.
func ParseSubIndex(raw string) (uint8, error) {
	v, err := parseHex(raw, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

// FromBytes decodes a big-endian raw index such as []byte{0x10, 0x06}.
// Inputs longer than two bytes are rejected.
func FromBytes(b []byte) (uint16, error) {
	switch len(b) {
	case 0:
		return 0, ErrEmptyIndex
	case 1:
		return uint16(b[0]), nil
	case 2:
		return uint16(b[0])<<8 | uint16(b[1]), nil
	default:
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidIndex, len(b))
	}
}

func parseHex(raw string, bits int) (uint64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrEmptyIndex
	}
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, raw)
	}
	return v, nil
}
