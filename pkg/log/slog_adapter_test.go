package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestAdapter() (*SlogAdapter, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(h)), &buf
}

func TestSlogAdapterEdit(t *testing.T) {
	a, buf := newTestAdapter()
	d := 2 * time.Millisecond
	a.Log(Event{
		TxID: "tx-1", NetworkID: "net", NodeID: 1, Index: 0x2000,
		Category: CategoryEdit, Stage: StageDocument,
		Edit: &EditEvent{OldValue: "0", HadOld: true, NewValue: "42", Persisted: true, Duration: &d},
	})

	out := buf.String()
	for _, want := range []string{"level=INFO", "msg=journal", "tx=tx-1", "category=EDIT", "entry=0x2000", "new_value=42", "old_value=0", "persisted=true", "network=net"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterLevels(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		level string
	}{
		{"force", Event{Category: CategoryForce, Force: &ForceEvent{Forced: true}}, "level=INFO"},
		{"rejection", Event{Category: CategoryRejection, Rejection: &RejectionEvent{Value: "x", CodeName: "DATATYPE_MISMATCH", Message: "bad"}}, "level=WARN"},
		{"divergence", Event{Category: CategoryDivergence, Error: &ErrorEventData{Stage: StageDocument, Message: "no match", Value: "42"}}, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, buf := newTestAdapter()
			a.Log(tt.event)
			if !strings.Contains(buf.String(), tt.level) {
				t.Errorf("expected %s in %s", tt.level, buf.String())
			}
		})
	}
}

func TestSlogAdapterSubIndex(t *testing.T) {
	a, buf := newTestAdapter()
	sub := uint8(1)
	a.Log(Event{Index: 0x1F81, SubIndex: &sub, Force: &ForceEvent{}})
	if !strings.Contains(buf.String(), "entry=0x1F81/0x01") {
		t.Errorf("missing entry: %s", buf.String())
	}
}
