package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/openconfigurator/odconf-go/pkg/log"
)

// Stats holds aggregate statistics about a journal.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	RejectionsByCode map[string]int
	Entries          map[string]*EntryStats
	Transactions     map[string]struct{}
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// EntryStats holds statistics for a single dictionary entry.
type EntryStats struct {
	Node       uint8
	Entry      string
	Edits      int
	Rejections int
	LastValue  string
	LastSeen   time.Time
}

// CollectStats reads every event of path into a Stats value.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		RejectionsByCode: make(map[string]int),
		Entries:          make(map[string]*EntryStats),
		Transactions:     make(map[string]struct{}),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	if event.TxID != "" {
		s.Transactions[event.TxID] = struct{}{}
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	key := fmt.Sprintf("%d %s", event.NodeID, event.Entry())
	es, ok := s.Entries[key]
	if !ok {
		es = &EntryStats{Node: event.NodeID, Entry: event.Entry()}
		s.Entries[key] = es
	}
	if event.Timestamp.After(es.LastSeen) {
		es.LastSeen = event.Timestamp
	}

	switch {
	case event.Edit != nil:
		es.Edits++
		es.LastValue = event.Edit.NewValue
	case event.Rejection != nil:
		es.Rejections++
		code := event.Rejection.CodeName
		if code == "" {
			code = event.Stage.String()
		}
		s.RejectionsByCode[code]++
	}
}

// RunStats analyzes the journal and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== odconf Edit Journal Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Transactions: %d\n", len(stats.Transactions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := log.CategoryEdit; c <= log.CategoryError; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.RejectionsByCode) > 0 {
		codes := make([]string, 0, len(stats.RejectionsByCode))
		for code := range stats.RejectionsByCode {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		fmt.Fprintln(w, "Rejections by Code:")
		for _, code := range codes {
			fmt.Fprintf(w, "  %-28s %d\n", code+":", stats.RejectionsByCode[code])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Entries: %d\n", len(stats.Entries))
	entries := make([]*EntryStats, 0, len(stats.Entries))
	for _, es := range stats.Entries {
		entries = append(entries, es)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Node != entries[j].Node {
			return entries[i].Node < entries[j].Node
		}
		return entries[i].Entry < entries[j].Entry
	})
	for _, es := range entries {
		fmt.Fprintf(w, "  [node %d] %-12s %d edits, %d rejections", es.Node, es.Entry, es.Edits, es.Rejections)
		if es.Edits > 0 {
			fmt.Fprintf(w, ", last %q", es.LastValue)
		}
		fmt.Fprintln(w)
	}
}
