package engine

import (
	"context"
	"fmt"

	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// ErrorCode is a configuration engine result code.
type ErrorCode uint16

const (
	// CodeSuccess indicates the value was accepted and applied.
	CodeSuccess ErrorCode = 0

	// CodeNetworkDoesNotExist indicates the network ID is unknown.
	CodeNetworkDoesNotExist ErrorCode = 1

	// CodeNodeDoesNotExist indicates the node ID is unknown.
	CodeNodeDoesNotExist ErrorCode = 2

	// CodeObjectDoesNotExist indicates the index is not in the dictionary.
	CodeObjectDoesNotExist ErrorCode = 3

	// CodeSubObjectDoesNotExist indicates the sub-index is not in the object.
	CodeSubObjectDoesNotExist ErrorCode = 4

	// CodeAccessViolation indicates the entry is not writable.
	CodeAccessViolation ErrorCode = 5

	// CodeDataTypeMismatch indicates the value does not parse as the entry's data type.
	CodeDataTypeMismatch ErrorCode = 6

	// CodeUnsupportedDataType indicates the entry has no usable data type.
	CodeUnsupportedDataType ErrorCode = 7

	// CodeValueTooHigh indicates the value exceeds the high limit.
	CodeValueTooHigh ErrorCode = 8

	// CodeValueTooLow indicates the value is below the low limit.
	CodeValueTooLow ErrorCode = 9

	// CodeValueOutOfRange indicates the value does not fit the data type width.
	CodeValueOutOfRange ErrorCode = 10

	// CodeCanceled indicates the request context ended before completion.
	CodeCanceled ErrorCode = 11

	// CodeInternal indicates an unexpected engine failure.
	CodeInternal ErrorCode = 255
)

var codeTable = map[ErrorCode]struct {
	name string
	text string
}{
	CodeSuccess:               {"SUCCESS", "Success"},
	CodeNetworkDoesNotExist:   {"NETWORK_DOES_NOT_EXIST", "Network does not exist"},
	CodeNodeDoesNotExist:      {"NODE_DOES_NOT_EXIST", "Node does not exist"},
	CodeObjectDoesNotExist:    {"OBJECT_DOES_NOT_EXIST", "Object does not exist in the object dictionary"},
	CodeSubObjectDoesNotExist: {"SUBOBJECT_DOES_NOT_EXIST", "Sub-index does not exist"},
	CodeAccessViolation:       {"ACCESS_VIOLATION", "Attempt to write a read only object"},
	CodeDataTypeMismatch:      {"DATATYPE_MISMATCH", "Value does not match the data type"},
	CodeUnsupportedDataType:   {"UNSUPPORTED_DATATYPE", "Data type is not supported"},
	CodeValueTooHigh:          {"VALUE_TOO_HIGH", "Value written too high"},
	CodeValueTooLow:           {"VALUE_TOO_LOW", "Value written too low"},
	CodeValueOutOfRange:       {"VALUE_OUT_OF_RANGE", "Value range of parameter exceeded"},
	CodeCanceled:              {"CANCELED", "Request canceled"},
	CodeInternal:              {"INTERNAL_ERROR", "General error"},
}

// String returns the code name.
func (c ErrorCode) String() string {
	if e, ok := codeTable[c]; ok {
		return e.name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(c))
}

// Text returns the display text of the code.
func (c ErrorCode) Text() string {
	if e, ok := codeTable[c]; ok {
		return e.text
	}
	return fmt.Sprintf("Unknown error code %d", uint16(c))
}

// Request identifies the entry and the proposed value.
type Request struct {
	NetworkID   string
	NodeID      uint8
	Index       uint16
	SubIndex    uint8
	HasSubIndex bool
	Value       string
}

// NewRequest builds a request for the entry identified by key.
func NewRequest(networkID string, nodeID uint8, key project.Key, value string) Request {
	return Request{
		NetworkID:   networkID,
		NodeID:      nodeID,
		Index:       key.Index,
		SubIndex:    key.SubIndex,
		HasSubIndex: key.HasSubIndex,
		Value:       value,
	}
}

// Key returns the project key of the addressed entry.
func (r Request) Key() project.Key {
	if r.HasSubIndex {
		return project.SubObjectKey(r.Index, r.SubIndex)
	}
	return project.ObjectKey(r.Index)
}

// String returns a short description for logs.
func (r Request) String() string {
	id := xpath.DisplayIndex(r.Index)
	if r.HasSubIndex {
		id += "/" + xpath.DisplaySubIndex(r.SubIndex)
	}
	return fmt.Sprintf("%s node %d %s=%q", r.NetworkID, r.NodeID, id, r.Value)
}

// Result is the outcome of a validation request.
type Result struct {
	Code    ErrorCode
	Message string
}

// OK returns a successful result.
func OK() Result { return Result{Code: CodeSuccess} }

// Fail returns a failed result with a formatted detail message.
func Fail(code ErrorCode, format string, args ...any) Result {
	return Result{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Success returns true if the value was accepted.
func (r Result) Success() bool { return r.Code == CodeSuccess }

// ErrorMessage returns the text to show the user. The engine's detail
// message is preferred over the generic code text.
func (r Result) ErrorMessage() string {
	if r.Success() {
		return ""
	}
	if r.Message != "" {
		return r.Message
	}
	return r.Code.Text()
}

// Validator validates a proposed actual value and applies it to the
// engine's own state when valid.
type Validator interface {
	ValidateAndApply(ctx context.Context, req Request) Result
}

// Func adapts a plain function to the Validator interface.
type Func func(ctx context.Context, req Request) Result

// ValidateAndApply calls f.
func (f Func) ValidateAndApply(ctx context.Context, req Request) Result {
	return f(ctx, req)
}

// AcceptAll is a Validator that accepts every value.
var AcceptAll Validator = Func(func(context.Context, Request) Result { return OK() })
