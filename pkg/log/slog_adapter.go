package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes journal events to an slog.Logger.
// Useful for development when you want to see edits in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Edits and force changes are
// logged at Info, rejections at Warn, divergences and errors at Error.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("tx", event.TxID),
		slog.String("category", event.Category.String()),
		slog.String("stage", event.Stage.String()),
		slog.Uint64("node", uint64(event.NodeID)),
		slog.String("entry", event.Entry()),
	}
	if event.NetworkID != "" {
		attrs = append(attrs, slog.String("network", event.NetworkID))
	}

	level := slog.LevelInfo
	switch {
	case event.Edit != nil:
		attrs = append(attrs,
			slog.String("new_value", event.Edit.NewValue),
			slog.Bool("persisted", event.Edit.Persisted),
		)
		if event.Edit.HadOld {
			attrs = append(attrs, slog.String("old_value", event.Edit.OldValue))
		}
		if event.Edit.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Edit.Duration))
		}
	case event.Force != nil:
		attrs = append(attrs,
			slog.Bool("forced", event.Force.Forced),
			slog.Bool("persisted", event.Force.Persisted),
		)
	case event.Rejection != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("value", event.Rejection.Value),
			slog.String("message", event.Rejection.Message),
		)
		if event.Rejection.CodeName != "" {
			attrs = append(attrs, slog.String("code", event.Rejection.CodeName))
		}
	case event.Error != nil:
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("error_stage", event.Error.Stage.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Value != "" {
			attrs = append(attrs, slog.String("value", event.Error.Value))
		}
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "journal", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
