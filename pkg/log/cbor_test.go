package log

import (
	"bytes"
	"testing"
	"time"
)

func TestEditEventCBOR(t *testing.T) {
	ts := time.Date(2026, 10, 16, 9, 30, 0, 123456789, time.UTC)
	d := 1500 * time.Microsecond
	original := Event{
		Timestamp: ts,
		TxID:      "5f0c2a1e-8d9b-4c3e-9a7f-0123456789ab",
		Category:  CategoryEdit,
		Stage:     StageDocument,
		NetworkID: "net",
		NodeID:    1,
		Index:     0x2000,
		Edit: &EditEvent{
			OldValue:  "0",
			HadOld:    true,
			NewValue:  "42",
			Persisted: true,
			Duration:  &d,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, ts)
	}
	if decoded.TxID != original.TxID {
		t.Errorf("TxID: got %q, want %q", decoded.TxID, original.TxID)
	}
	if decoded.Category != CategoryEdit || decoded.Stage != StageDocument {
		t.Errorf("Category/Stage: got %v/%v", decoded.Category, decoded.Stage)
	}
	if decoded.NodeID != 1 || decoded.Index != 0x2000 || decoded.SubIndex != nil {
		t.Errorf("entry: got node %d %s", decoded.NodeID, decoded.Entry())
	}
	if decoded.Edit == nil {
		t.Fatal("Edit is nil")
	}
	if decoded.Edit.NewValue != "42" || decoded.Edit.OldValue != "0" || !decoded.Edit.HadOld {
		t.Errorf("Edit: got %+v", *decoded.Edit)
	}
	if decoded.Edit.Duration == nil || *decoded.Edit.Duration != d {
		t.Errorf("Duration: got %v, want %v", decoded.Edit.Duration, d)
	}
	if decoded.Force != nil || decoded.Rejection != nil || decoded.Error != nil {
		t.Error("unexpected payloads decoded")
	}
}

func TestSubIndexSurvivesZero(t *testing.T) {
	sub := uint8(0)
	data, err := EncodeEvent(Event{Index: 0x1F81, SubIndex: &sub, Force: &ForceEvent{Forced: true}})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if decoded.SubIndex == nil || *decoded.SubIndex != 0 {
		t.Errorf("SubIndex: got %v, want 0", decoded.SubIndex)
	}
	if decoded.Force == nil || !decoded.Force.Forced {
		t.Errorf("Force: got %+v", decoded.Force)
	}
}

func TestRejectionAndErrorCBOR(t *testing.T) {
	events := []Event{
		{
			Category: CategoryRejection,
			Stage:    StageValidation,
			Rejection: &RejectionEvent{
				Value:    "5000",
				Code:     8,
				CodeName: "VALUE_TOO_HIGH",
				Message:  "Value 5000 exceeds the high limit 1000",
			},
		},
		{
			Category: CategoryDivergence,
			Stage:    StageDocument,
			Error: &ErrorEventData{
				Stage:   StageDocument,
				Message: "no element matches path",
				Value:   "42",
				Context: "update actualValue",
			},
		},
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	var rej, div Event
	if err := dec.Decode(&rej); err != nil {
		t.Fatalf("Decode rejection failed: %v", err)
	}
	if err := dec.Decode(&div); err != nil {
		t.Fatalf("Decode divergence failed: %v", err)
	}

	if rej.Rejection == nil || rej.Rejection.CodeName != "VALUE_TOO_HIGH" || rej.Rejection.Code != 8 {
		t.Errorf("Rejection: got %+v", rej.Rejection)
	}
	if div.Error == nil || div.Error.Stage != StageDocument || div.Error.Value != "42" {
		t.Errorf("Error: got %+v", div.Error)
	}
}

func TestDecodeEventGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00, 0x13}); err == nil {
		t.Error("expected error for invalid CBOR")
	}
}
