package log

import (
	"time"

	"github.com/openconfigurator/odconf-go/pkg/xpath"
)

// Event represents one journal record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// TxID identifies the edit transaction (UUID).
	TxID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Stage of the edit pipeline where the event was captured.
	Stage Stage `cbor:"4,keyasint"`

	// NetworkID is the project the node belongs to.
	NetworkID string `cbor:"5,keyasint,omitempty"`

	// NodeID is the POWERLINK node ID.
	NodeID uint8 `cbor:"6,keyasint"`

	// Index of the edited object.
	Index uint16 `cbor:"7,keyasint"`

	// SubIndex of the edited sub-object, nil for objects.
	SubIndex *uint8 `cbor:"8,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Edit      *EditEvent      `cbor:"10,keyasint,omitempty"`
	Force     *ForceEvent     `cbor:"11,keyasint,omitempty"`
	Rejection *RejectionEvent `cbor:"12,keyasint,omitempty"`
	Error     *ErrorEventData `cbor:"13,keyasint,omitempty"`
}

// Entry returns the display form of the addressed entry ("0x1F81/0x01").
func (e Event) Entry() string {
	s := xpath.DisplayIndex(e.Index)
	if e.SubIndex != nil {
		s += "/" + xpath.DisplaySubIndex(*e.SubIndex)
	}
	return s
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryEdit indicates an accepted actual value change.
	CategoryEdit Category = 0
	// CategoryForce indicates a force flag change.
	CategoryForce Category = 1
	// CategoryRejection indicates a value rejected before any change.
	CategoryRejection Category = 2
	// CategoryDivergence indicates the model and document no longer agree.
	CategoryDivergence Category = 3
	// CategoryError indicates any other failure.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryEdit:
		return "EDIT"
	case CategoryForce:
		return "FORCE"
	case CategoryRejection:
		return "REJECTION"
	case CategoryDivergence:
		return "DIVERGENCE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category with the given name.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryEdit; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// Stage indicates which pipeline step captured the event.
type Stage uint8

const (
	// StageEditability is the editability check.
	StageEditability Stage = 0
	// StageValidation is the configuration engine call.
	StageValidation Stage = 1
	// StageModel is the in-memory update.
	StageModel Stage = 2
	// StageDocument is the device description write.
	StageDocument Stage = 3
	// StageProject is the project file write.
	StageProject Stage = 4
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageEditability:
		return "EDITABILITY"
	case StageValidation:
		return "VALIDATION"
	case StageModel:
		return "MODEL"
	case StageDocument:
		return "DOCUMENT"
	case StageProject:
		return "PROJECT"
	default:
		return "UNKNOWN"
	}
}

// EditEvent captures an accepted actual value.
type EditEvent struct {
	// OldValue is the previous actual value (empty if HadOld is false).
	OldValue string `cbor:"1,keyasint,omitempty"`

	// HadOld indicates an actual value existed before.
	HadOld bool `cbor:"2,keyasint,omitempty"`

	// NewValue is the accepted value.
	NewValue string `cbor:"3,keyasint"`

	// Persisted indicates the value was written to the device description.
	Persisted bool `cbor:"4,keyasint,omitempty"`

	// Duration is the time spent in the pipeline, stored as nanoseconds.
	Duration *time.Duration `cbor:"5,keyasint,omitempty"`
}

// ForceEvent captures a force flag change.
type ForceEvent struct {
	// Forced is the new state.
	Forced bool `cbor:"1,keyasint"`

	// Persisted indicates the project file was saved.
	Persisted bool `cbor:"2,keyasint,omitempty"`
}

// RejectionEvent captures a value that was not accepted.
type RejectionEvent struct {
	// Value is the proposed value.
	Value string `cbor:"1,keyasint"`

	// Code is the engine result code (0 when the entry was not editable).
	Code uint16 `cbor:"2,keyasint,omitempty"`

	// CodeName is the symbolic name of Code.
	CodeName string `cbor:"3,keyasint,omitempty"`

	// Message is the text shown to the user.
	Message string `cbor:"4,keyasint"`
}

// ErrorEventData captures failures after the pipeline started changing state.
type ErrorEventData struct {
	// Stage where the error occurred.
	Stage Stage `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Value is the value being written, if any.
	Value string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
