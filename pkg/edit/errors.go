package edit

import (
	"errors"
	"fmt"

	"github.com/openconfigurator/odconf-go/pkg/engine"
	"github.com/openconfigurator/odconf-go/pkg/project"
)

// Edit errors.
var (
	ErrNotEditable = errors.New("actual value is not editable")
	ErrNilEntry    = errors.New("nil entry")
)

// ValidationError is returned when the configuration engine rejects a value.
// Error returns the engine's message unchanged.
type ValidationError struct {
	Key     project.Key
	Value   string
	Code    engine.ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DivergenceError is returned when the in-memory value was updated but the
// document write failed. The model keeps the new value.
type DivergenceError struct {
	Key   project.Key
	XPath string
	Value string
	Err   error
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%s set to %q in memory but not in the document: %v", e.Key, e.Value, e.Err)
}

func (e *DivergenceError) Unwrap() error {
	return e.Err
}
