package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/openconfigurator/odconf-go/pkg/inspect"
	"github.com/openconfigurator/odconf-go/pkg/log"
)

// FilterOptions specifies filtering criteria shared by the view, export and
// filter commands. Empty fields match everything.
type FilterOptions struct {
	TxID      string
	NetworkID string
	NodeID    string
	Index     string
	Category  string
	Stage     string
	TimeStart string
	TimeEnd   string
}

// BuildFilter converts command-line options into a journal filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		TxID:      opts.TxID,
		NetworkID: opts.NetworkID,
	}

	if opts.NodeID != "" {
		n, err := strconv.ParseUint(opts.NodeID, 0, 8)
		if err != nil {
			return filter, fmt.Errorf("invalid node: %s", opts.NodeID)
		}
		id := uint8(n)
		filter.NodeID = &id
	}

	if opts.Index != "" {
		p, err := inspect.ParsePath(opts.Index)
		if err != nil {
			return filter, fmt.Errorf("invalid index: %w", err)
		}
		if p.Name != "" || p.HasSubIndex {
			return filter, fmt.Errorf("invalid index: %s (must be a numeric object index)", opts.Index)
		}
		filter.Index = &p.Index
	}

	if opts.Category != "" {
		c, err := parseCategory(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}

	if opts.Stage != "" {
		s, err := parseStage(opts.Stage)
		if err != nil {
			return filter, err
		}
		filter.Stage = &s
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be edit, force, rejection, divergence, or error)", s)
	}
	return c, nil
}

// parseStage parses a stage string (case-insensitive).
func parseStage(s string) (log.Stage, error) {
	for st := log.StageEditability; st <= log.StageProject; st++ {
		if strings.EqualFold(st.String(), s) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid stage: %s (must be editability, validation, model, document, or project)", s)
}

// RunFilter copies the events of path matching filter into a new journal at
// output and returns the number of events written.
func RunFilter(path string, filter log.Filter, output string) (int, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output journal: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}
	return count, nil
}
