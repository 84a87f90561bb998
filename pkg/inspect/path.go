// Package inspect provides object dictionary inspection and editing helpers
// for the command line tools.
//
// The inspect package offers a unified interface for:
//   - Parsing entry paths (e.g., "0x1F81/0x01" or "NMT_CycleLen_U32")
//   - Resolving paths to dictionary entries
//   - Reading entries and writing actual values through the edit pipeline
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric value in path")
)

// Path represents a parsed entry path.
// Format: object[/subindex], where object is an index or an object name.
type Path struct {
	// Index is the object index (valid when Name is empty).
	Index uint16

	// Name is the object name when the path names the object.
	Name string

	// SubIndex is the sub-index (when HasSubIndex is true).
	SubIndex uint8

	// HasSubIndex indicates the path addresses a sub-object.
	HasSubIndex bool

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "0x1006" - object by hex index
//   - "4102" - object by decimal index
//   - "0x1F81/0x01" or "0x1F81/1" - sub-object
//   - "NMT_CycleLen_U32" - object by name
//   - "NMT_NodeAssignment_AU32/0x01" - sub-object of a named object
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, "/")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, input)
	}

	p := &Path{Raw: input}

	if looksNumeric(parts[0]) {
		idx, err := parseUint16(parts[0])
		if err != nil {
			return nil, fmt.Errorf("index: %w: %s", ErrInvalidNumber, parts[0])
		}
		p.Index = idx
	} else {
		p.Name = parts[0]
	}

	if len(parts) == 2 {
		sub, err := parseUint8(parts[1])
		if err != nil {
			return nil, fmt.Errorf("sub-index: %w: %s", ErrInvalidNumber, parts[1])
		}
		p.SubIndex = sub
		p.HasSubIndex = true
	}
	return p, nil
}

// Key returns the project key of a numeric path.
func (p *Path) Key() project.Key {
	if p.HasSubIndex {
		return project.SubObjectKey(p.Index, p.SubIndex)
	}
	return project.ObjectKey(p.Index)
}

// String returns the path in canonical display form.
func (p *Path) String() string {
	var sb strings.Builder
	if p.Name != "" {
		sb.WriteString(p.Name)
	} else {
		sb.WriteString(xpath.DisplayIndex(p.Index))
	}
	if p.HasSubIndex {
		sb.WriteString("/")
		sb.WriteString(xpath.DisplaySubIndex(p.SubIndex))
	}
	return sb.String()
}

// looksNumeric reports whether s starts like a number rather than a name.
func looksNumeric(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// parseUint8 parses a uint8 from decimal or hex string.
func parseUint8(s string) (uint8, error) {
	v, err := parseUint(s, 8)
	return uint8(v), err
}

// parseUint16 parses a uint16 from decimal or hex string.
func parseUint16(s string) (uint16, error) {
	v, err := parseUint(s, 16)
	return uint16(v), err
}

func parseUint(s string, bits int) (uint64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, bits)
	}
	return strconv.ParseUint(s, 10, bits)
}
