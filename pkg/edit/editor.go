package edit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openconfigurator/odconf-go/pkg/engine"
	"github.com/openconfigurator/odconf-go/pkg/log"
	"github.com/openconfigurator/odconf-go/pkg/model"
	"github.com/openconfigurator/odconf-go/pkg/project"
)

// Option configures an Editor.
type Option func(*Editor)

// WithJournal sets the journal that records every edit.
func WithJournal(journal log.Logger) Option {
	return func(e *Editor) {
		if journal != nil {
			e.journal = journal
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source of journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// Editor runs the edit pipeline. It is safe for concurrent use; edits of the
// same entry are serialized, edits of different entries run in parallel.
type Editor struct {
	validator engine.Validator
	journal   log.Logger
	logger    *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	locks map[lockKey]*sync.Mutex
}

type lockKey struct {
	network string
	node    uint8
	key     project.Key
}

// NewEditor creates an Editor that validates through validator.
func NewEditor(validator engine.Validator, opts ...Option) *Editor {
	e := &Editor{
		validator: validator,
		journal:   log.NoopLogger{},
		logger:    slog.Default(),
		now:       time.Now,
		locks:     make(map[lockKey]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// lock acquires the edit lock of entry and returns its release function.
func (e *Editor) lock(entry model.Entry) func() {
	k := lockKey{network: entry.Node().NetworkID(), node: entry.Node().NodeID(), key: entry.Key()}

	e.mu.Lock()
	m, ok := e.locks[k]
	if !ok {
		m = &sync.Mutex{}
		e.locks[k] = m
	}
	e.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// ProposeActualValue validates value and, if the engine accepts it, stores it
// as the entry's actual value. With persist set the value is also written to
// the device description.
//
// Errors:
//   - ErrNotEditable: nothing changed, the engine was not called.
//   - *ValidationError: the engine rejected the value, nothing changed.
//   - *DivergenceError: the model holds value, the document does not.
func (e *Editor) ProposeActualValue(ctx context.Context, entry model.Entry, value string, persist bool) error {
	if entry == nil {
		return ErrNilEntry
	}
	unlock := e.lock(entry)
	defer unlock()

	start := e.now()
	tx := uuid.NewString()
	logger := e.logger.With("tx", tx, "node", entry.Node().NodeID(), "entry", entry.Key().String())

	if !entry.IsEditable() {
		e.record(tx, entry, log.CategoryRejection, log.StageEditability, func(ev *log.Event) {
			ev.Rejection = &log.RejectionEvent{Value: value, Message: ErrNotEditable.Error()}
		})
		logger.Debug("Edit refused", "reason", "not editable")
		return fmt.Errorf("%w: %s", ErrNotEditable, entry.Key())
	}

	node := entry.Node()
	req := engine.NewRequest(node.NetworkID(), node.NodeID(), entry.Key(), value)
	res := e.validator.ValidateAndApply(ctx, req)
	if !res.Success() {
		msg := res.ErrorMessage()
		e.record(tx, entry, log.CategoryRejection, log.StageValidation, func(ev *log.Event) {
			ev.Rejection = &log.RejectionEvent{
				Value:    value,
				Code:     uint16(res.Code),
				CodeName: res.Code.String(),
				Message:  msg,
			}
		})
		logger.Debug("Value rejected", "code", res.Code.String(), "message", msg)
		return &ValidationError{Key: entry.Key(), Value: value, Code: res.Code, Message: msg}
	}

	old, hadOld := entry.ActualValue()
	if err := entry.SetActualValue(value, persist); err != nil {
		e.record(tx, entry, log.CategoryDivergence, log.StageDocument, func(ev *log.Event) {
			ev.Error = &log.ErrorEventData{
				Stage:   log.StageDocument,
				Message: err.Error(),
				Value:   value,
				Context: "update " + model.FieldActualValue.XMLAttr(),
			}
		})
		logger.Error("Model and document diverged", "xpath", entry.XPath(), "value", value, "error", err)
		return &DivergenceError{Key: entry.Key(), XPath: entry.XPath(), Value: value, Err: err}
	}

	elapsed := e.now().Sub(start)
	stage := log.StageModel
	if persist {
		stage = log.StageDocument
	}
	e.record(tx, entry, log.CategoryEdit, stage, func(ev *log.Event) {
		ev.Edit = &log.EditEvent{
			OldValue:  old,
			HadOld:    hadOld,
			NewValue:  value,
			Persisted: persist,
			Duration:  &elapsed,
		}
	})
	logger.Debug("Actual value set", "value", value, "persisted", persist)
	return nil
}

// Force adds or removes the forced flag of entry in the project file.
func (e *Editor) Force(ctx context.Context, entry model.Entry, force, persist bool) error {
	if entry == nil {
		return ErrNilEntry
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock := e.lock(entry)
	defer unlock()

	tx := uuid.NewString()
	if err := entry.Force(force, persist); err != nil {
		e.record(tx, entry, log.CategoryError, log.StageProject, func(ev *log.Event) {
			ev.Error = &log.ErrorEventData{
				Stage:   log.StageProject,
				Message: err.Error(),
				Context: fmt.Sprintf("force=%t", force),
			}
		})
		return err
	}

	e.record(tx, entry, log.CategoryForce, log.StageProject, func(ev *log.Event) {
		ev.Force = &log.ForceEvent{Forced: force, Persisted: persist}
	})
	e.logger.Debug("Force changed", "tx", tx, "entry", entry.Key().String(), "forced", force)
	return nil
}

func (e *Editor) record(tx string, entry model.Entry, c log.Category, s log.Stage, fill func(*log.Event)) {
	node := entry.Node()
	key := entry.Key()
	ev := log.Event{
		Timestamp: e.now(),
		TxID:      tx,
		Category:  c,
		Stage:     s,
		NetworkID: node.NetworkID(),
		NodeID:    node.NodeID(),
		Index:     key.Index,
	}
	if key.HasSubIndex {
		sub := key.SubIndex
		ev.SubIndex = &sub
	}
	fill(&ev)
	e.journal.Log(ev)
}
