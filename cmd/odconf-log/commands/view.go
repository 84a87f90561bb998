// Package commands implements the odconf-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/openconfigurator/odconf-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [tx:id] CATEGORY node entry
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [tx:%s] %-10s %s node %d %s\n",
		ts, shortenTxID(event.TxID), event.Category.String(), event.NetworkID, event.NodeID, event.Entry())

	switch {
	case event.Edit != nil:
		formatEditDetails(w, event.Edit)
	case event.Force != nil:
		formatForceDetails(w, event.Force)
	case event.Rejection != nil:
		formatRejectionDetails(w, event.Stage, event.Rejection)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenTxID returns the first 8 characters of the transaction ID.
func shortenTxID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatEditDetails(w io.Writer, e *log.EditEvent) {
	if e.HadOld {
		fmt.Fprintf(w, "  %q -> %q\n", e.OldValue, e.NewValue)
	} else {
		fmt.Fprintf(w, "  -> %q\n", e.NewValue)
	}
	if e.Persisted {
		fmt.Fprintln(w, "  Persisted: yes")
	}
	if e.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*e.Duration))
	}
}

func formatForceDetails(w io.Writer, f *log.ForceEvent) {
	state := "unforced"
	if f.Forced {
		state = "forced"
	}
	fmt.Fprintf(w, "  State: %s\n", state)
	if f.Persisted {
		fmt.Fprintln(w, "  Persisted: yes")
	}
}

func formatRejectionDetails(w io.Writer, stage log.Stage, r *log.RejectionEvent) {
	fmt.Fprintf(w, "  Stage: %s\n", stage.String())
	fmt.Fprintf(w, "  Value: %q\n", r.Value)
	if r.CodeName != "" {
		fmt.Fprintf(w, "  Code: %s (%d)\n", r.CodeName, r.Code)
	}
	fmt.Fprintf(w, "  Message: %s\n", r.Message)
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Stage: %s\n", err.Stage.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Value != "" {
		fmt.Fprintf(w, "  Value: %q\n", err.Value)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunView executes the view command.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
