// Package log provides the edit journal of odconf.
//
// This package defines the Logger interface and Event types for recording
// every change made to an object dictionary: accepted actual values, force
// flag changes, values rejected by the configuration engine and document
// writes that failed after the model was updated. It is separate from
// operational logging (slog); the journal is a complete machine-readable
// trace of what was changed, by which transaction, and with which outcome.
//
// # Basic Usage
//
// Applications configure the journal by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Journal = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Journal, _ = log.NewFileLogger("/var/lib/odconf/project.odlog")
//
//	// Both: use MultiLogger
//	cfg.Journal = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Every event carries the transaction ID of the edit that produced it and
// the entry it concerns. The payload depends on the category:
//   - Edit: old and new actual value (EditEvent)
//   - Force: new forced state (ForceEvent)
//   - Rejection: engine result code and message (RejectionEvent)
//   - Divergence and errors: failing stage and message (ErrorEventData)
//
// # File Format
//
// Journal files use CBOR encoding with .odlog extension. The odconf-log CLI
// tool provides viewing, filtering, and statistics.
package log
