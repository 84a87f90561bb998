package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/openconfigurator/odconf-go/pkg/log"
)

func TestFormatEditEvent(t *testing.T) {
	d := 1500 * time.Microsecond
	event := sampleEvents()[0]
	event.Edit.Duration = &d

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-03-04T10:15:32.123456Z",
		"[tx:11111111]",
		"EDIT",
		"plant node 1 0x1006",
		`"5000" -> "10000"`,
		"Persisted: yes",
		"Duration: 1.500ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatRejectionEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[1])
	output := buf.String()

	for _, want := range []string{"REJECTION", "0x1F81/0x01", "Stage: VALIDATION", "DATATYPE_MISMATCH (6)", "Message: not a number"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatErrorEvent(t *testing.T) {
	event := log.Event{
		Category: log.CategoryDivergence,
		Stage:    log.StageDocument,
		Index:    0x2000,
		Error:    &log.ErrorEventData{Stage: log.StageDocument, Message: "no match", Value: "7", Context: "write actualValue"},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{"DIVERGENCE", "Stage: DOCUMENT", "Message: no match", `Value: "7"`, "Context: write actualValue"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestShortenTxID(t *testing.T) {
	if got := shortenTxID("abc"); got != "abc" {
		t.Errorf("shortenTxID(abc) = %q", got)
	}
	if got := shortenTxID("0123456789"); got != "01234567" {
		t.Errorf("shortenTxID = %q", got)
	}
}

func TestRunViewWithFilter(t *testing.T) {
	path := createTestJournal(t, sampleEvents())

	filter, err := BuildFilter(FilterOptions{NodeID: "1", Category: "rejection"})
	if err != nil {
		t.Fatalf("BuildFilter failed: %v", err)
	}

	var buf bytes.Buffer
	if err := RunView(path, filter, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "REJECTION") {
		t.Errorf("expected rejection event, got:\n%s", output)
	}
	if strings.Contains(output, "EDIT") || strings.Contains(output, "FORCE") {
		t.Errorf("filtered events leaked into output:\n%s", output)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	if err := RunView("/nonexistent/journal.odlog", log.Filter{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing journal")
	}
}
