package edit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openconfigurator/odconf-go/pkg/engine"
	"github.com/openconfigurator/odconf-go/pkg/engine/mocks"
	"github.com/openconfigurator/odconf-go/pkg/log"
	"github.com/openconfigurator/odconf-go/pkg/model"
	"github.com/openconfigurator/odconf-go/pkg/project"
	"github.com/openconfigurator/odconf-go/pkg/xdd"
)

const editXDC = `<?xml version="1.0" encoding="UTF-8"?>
<ISO15745ProfileContainer xmlns="http://www.ethernet-powerlink.org">
  <ObjectList>
    <Object index="1000" name="NMT_DeviceType_U32" objectType="7" dataType="0007" accessType="const" defaultValue="0x000F0191"/>
    <Object index="1F81" name="NMT_NodeAssignment_AU32" objectType="8">
      <SubObject subIndex="01" name="NodeAssignment_01" objectType="7" dataType="0007" accessType="rw"/>
    </Object>
    <Object index="2000" name="Setpoint" objectType="7" dataType="0007" accessType="rw" actualValue="0"/>
    <Object index="2001" name="Limit" objectType="7" dataType="0007" accessType="rw"/>
  </ObjectList>
</ISO15745ProfileContainer>`

type journal struct {
	mu     sync.Mutex
	events []log.Event
}

func (j *journal) Log(e log.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
}

func (j *journal) all() []log.Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]log.Event(nil), j.events...)
}

func loadNode(t *testing.T) *model.Node {
	t.Helper()
	doc, err := xdd.Parse([]byte(editXDC))
	require.NoError(t, err)
	proj := project.New()
	require.NoError(t, proj.AddNode(1, "CN1", "cn1.xdc"))
	node, err := model.LoadNode(model.NodeConfig{
		NetworkID: "net",
		NodeID:    1,
		Document:  doc,
		Project:   proj,
	})
	require.NoError(t, err)
	return node
}

func entry(t *testing.T, node *model.Node, key project.Key) model.Entry {
	t.Helper()
	e, ok := node.Dictionary().Lookup(key)
	require.True(t, ok, "entry %s missing", key)
	return e
}

func documentValue(t *testing.T, e model.Entry) (string, bool) {
	t.Helper()
	v, ok, err := e.Node().Document().AttrValue(e.XPath(), xdd.AnyNamespace, "actualValue")
	require.NoError(t, err)
	return v, ok
}

func TestProposeActualValueAccepted(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.ObjectKey(0x2000))

	v := mocks.NewMockValidator(t)
	v.EXPECT().ValidateAndApply(mock.Anything, engine.Request{
		NetworkID: "net", NodeID: 1, Index: 0x2000, Value: "42",
	}).Return(engine.OK()).Once()

	j := &journal{}
	ed := NewEditor(v, WithJournal(j))

	require.NoError(t, ed.ProposeActualValue(context.Background(), e, "42", true))

	got, ok := e.ActualValue()
	assert.True(t, ok)
	assert.Equal(t, "42", got)

	docVal, ok := documentValue(t, e)
	assert.True(t, ok)
	assert.Equal(t, "42", docVal)

	events := j.all()
	require.Len(t, events, 1)
	assert.Equal(t, log.CategoryEdit, events[0].Category)
	assert.Equal(t, log.StageDocument, events[0].Stage)
	assert.NotEmpty(t, events[0].TxID)
	require.NotNil(t, events[0].Edit)
	assert.Equal(t, "0", events[0].Edit.OldValue)
	assert.True(t, events[0].Edit.HadOld)
	assert.Equal(t, "42", events[0].Edit.NewValue)
	assert.True(t, events[0].Edit.Persisted)
}

func TestProposeActualValueWithoutPersist(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.ObjectKey(0x2001))

	ed := NewEditor(engine.AcceptAll)
	require.NoError(t, ed.ProposeActualValue(context.Background(), e, "7", false))

	got, _ := e.ActualValue()
	assert.Equal(t, "7", got)
	_, ok := documentValue(t, e)
	assert.False(t, ok)
}

func TestProposeActualValueSubObject(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.SubObjectKey(0x1F81, 1))

	v := mocks.NewMockValidator(t)
	v.EXPECT().ValidateAndApply(mock.Anything, mock.MatchedBy(func(r engine.Request) bool {
		return r.HasSubIndex && r.SubIndex == 1 && r.Index == 0x1F81
	})).Return(engine.OK())

	j := &journal{}
	require.NoError(t, NewEditor(v, WithJournal(j)).ProposeActualValue(context.Background(), e, "0x00000003", true))

	docVal, _ := documentValue(t, e)
	assert.Equal(t, "0x00000003", docVal)

	events := j.all()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].SubIndex)
	assert.Equal(t, uint8(1), *events[0].SubIndex)
	assert.False(t, events[0].Edit.HadOld)
}

func TestProposeActualValueRejected(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.ObjectKey(0x2000))

	const engineMsg = "Value 42 exceeds the high limit 10 of 0x2000"
	v := mocks.NewMockValidator(t)
	v.EXPECT().ValidateAndApply(mock.Anything, mock.Anything).
		Return(engine.Result{Code: engine.CodeValueTooHigh, Message: engineMsg})

	j := &journal{}
	err := NewEditor(v, WithJournal(j)).ProposeActualValue(context.Background(), e, "42", true)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, engineMsg, verr.Error())
	assert.Equal(t, engine.CodeValueTooHigh, verr.Code)
	assert.Equal(t, "42", verr.Value)

	got, _ := e.ActualValue()
	assert.Equal(t, "0", got)
	docVal, _ := documentValue(t, e)
	assert.Equal(t, "0", docVal)

	events := j.all()
	require.Len(t, events, 1)
	assert.Equal(t, log.CategoryRejection, events[0].Category)
	assert.Equal(t, log.StageValidation, events[0].Stage)
	assert.Equal(t, "VALUE_TOO_HIGH", events[0].Rejection.CodeName)
}

func TestProposeActualValueRejectedWithoutMessage(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.ObjectKey(0x2000))

	reject := engine.Func(func(context.Context, engine.Request) engine.Result {
		return engine.Result{Code: engine.CodeDataTypeMismatch}
	})
	err := NewEditor(reject).ProposeActualValue(context.Background(), e, "abc", true)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, engine.CodeDataTypeMismatch.Text(), verr.Error())
}

func TestProposeActualValueNotEditable(t *testing.T) {
	node := loadNode(t)

	tests := []struct {
		name string
		key  project.Key
	}{
		{"const object", project.ObjectKey(0x1000)},
		{"array object", project.ObjectKey(0x1F81)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entry(t, node, tt.key)
			v := mocks.NewMockValidator(t)

			j := &journal{}
			err := NewEditor(v, WithJournal(j)).ProposeActualValue(context.Background(), e, "1", true)
			assert.ErrorIs(t, err, ErrNotEditable)
			v.AssertNotCalled(t, "ValidateAndApply", mock.Anything, mock.Anything)

			_, ok := e.ActualValue()
			assert.False(t, ok)
			require.Len(t, j.all(), 1)
			assert.Equal(t, log.StageEditability, j.all()[0].Stage)
		})
	}
}

func TestProposeActualValueDivergence(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.ObjectKey(0x2000))

	n, err := node.Document().RemoveElement(e.XPath(), xdd.AnyNamespace)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	j := &journal{}
	err = NewEditor(engine.AcceptAll, WithJournal(j)).ProposeActualValue(context.Background(), e, "42", true)

	var derr *DivergenceError
	require.ErrorAs(t, err, &derr)
	assert.True(t, errors.Is(err, xdd.ErrNoMatch))
	assert.Equal(t, "//Object[@index='2000']", derr.XPath)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))

	got, _ := e.ActualValue()
	assert.Equal(t, "42", got)

	events := j.all()
	require.Len(t, events, 1)
	assert.Equal(t, log.CategoryDivergence, events[0].Category)
	assert.Equal(t, "42", events[0].Error.Value)
}

func TestProposeActualValueNilEntry(t *testing.T) {
	err := NewEditor(engine.AcceptAll).ProposeActualValue(context.Background(), nil, "1", false)
	assert.ErrorIs(t, err, ErrNilEntry)
}

func TestProposeActualValueSerializesPerEntry(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.ObjectKey(0x2000))

	var inFlight, maxInFlight atomic.Int32
	v := engine.Func(func(context.Context, engine.Request) engine.Result {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return engine.OK()
	})
	ed := NewEditor(v)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ed.ProposeActualValue(context.Background(), e, "1", true))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestProposeActualValueDifferentEntriesInParallel(t *testing.T) {
	node := loadNode(t)
	a := entry(t, node, project.ObjectKey(0x2000))
	b := entry(t, node, project.ObjectKey(0x2001))

	bValidated := make(chan struct{})
	v := engine.Func(func(_ context.Context, req engine.Request) engine.Result {
		if req.Index == 0x2001 {
			close(bValidated)
			return engine.OK()
		}
		select {
		case <-bValidated:
			return engine.OK()
		case <-time.After(2 * time.Second):
			return engine.Fail(engine.CodeInternal, "edits of different entries were serialized")
		}
	})
	ed := NewEditor(v)

	errA := make(chan error, 1)
	go func() { errA <- ed.ProposeActualValue(context.Background(), a, "1", true) }()

	require.NoError(t, ed.ProposeActualValue(context.Background(), b, "2", true))
	require.NoError(t, <-errA)
}

func TestForce(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.SubObjectKey(0x1F81, 1))

	j := &journal{}
	ed := NewEditor(engine.AcceptAll, WithJournal(j))

	require.NoError(t, ed.Force(context.Background(), e, true, false))
	assert.True(t, e.IsForced())

	require.NoError(t, ed.Force(context.Background(), e, false, false))
	assert.False(t, e.IsForced())

	events := j.all()
	require.Len(t, events, 2)
	assert.Equal(t, log.CategoryForce, events[0].Category)
	assert.True(t, events[0].Force.Forced)
	assert.False(t, events[1].Force.Forced)
}

func TestForceWithoutProject(t *testing.T) {
	doc, err := xdd.Parse([]byte(editXDC))
	require.NoError(t, err)
	node, err := model.LoadNode(model.NodeConfig{NetworkID: "net", NodeID: 1, Document: doc})
	require.NoError(t, err)
	e := entry(t, node, project.ObjectKey(0x2000))

	j := &journal{}
	err = NewEditor(engine.AcceptAll, WithJournal(j)).Force(context.Background(), e, true, false)
	assert.ErrorIs(t, err, model.ErrNoProject)
	require.Len(t, j.all(), 1)
	assert.Equal(t, log.CategoryError, j.all()[0].Category)
}

func TestForceCanceled(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.ObjectKey(0x2000))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewEditor(engine.AcceptAll).Force(ctx, e, true, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, e.IsForced())
}

func TestEditorClock(t *testing.T) {
	node := loadNode(t)
	e := entry(t, node, project.ObjectKey(0x2000))

	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	j := &journal{}
	ed := NewEditor(engine.AcceptAll, WithJournal(j), WithClock(func() time.Time { return fixed }))
	require.NoError(t, ed.ProposeActualValue(context.Background(), e, "5", false))

	events := j.all()
	require.Len(t, events, 1)
	assert.True(t, events[0].Timestamp.Equal(fixed))
	assert.Equal(t, time.Duration(0), *events[0].Edit.Duration)
	assert.Equal(t, log.StageModel, events[0].Stage)
}
