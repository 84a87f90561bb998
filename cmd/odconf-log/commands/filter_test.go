package commands

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/openconfigurator/odconf-go/pkg/log"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name    string
		opts    FilterOptions
		wantErr bool
		check   func(t *testing.T, f log.Filter)
	}{
		{
			name: "empty",
			opts: FilterOptions{},
			check: func(t *testing.T, f log.Filter) {
				if f.NodeID != nil || f.Index != nil || f.Category != nil || f.Stage != nil {
					t.Errorf("expected empty filter, got %+v", f)
				}
			},
		},
		{
			name: "hex index",
			opts: FilterOptions{Index: "0x1F81"},
			check: func(t *testing.T, f log.Filter) {
				if f.Index == nil || *f.Index != 0x1F81 {
					t.Errorf("Index = %v", f.Index)
				}
			},
		},
		{
			name: "node and stage",
			opts: FilterOptions{NodeID: "240", Stage: "Document"},
			check: func(t *testing.T, f log.Filter) {
				if f.NodeID == nil || *f.NodeID != 240 {
					t.Errorf("NodeID = %v", f.NodeID)
				}
				if f.Stage == nil || *f.Stage != log.StageDocument {
					t.Errorf("Stage = %v", f.Stage)
				}
			},
		},
		{
			name: "category case-insensitive",
			opts: FilterOptions{Category: "Divergence"},
			check: func(t *testing.T, f log.Filter) {
				if f.Category == nil || *f.Category != log.CategoryDivergence {
					t.Errorf("Category = %v", f.Category)
				}
			},
		},
		{name: "node out of range", opts: FilterOptions{NodeID: "300"}, wantErr: true},
		{name: "sub-object index", opts: FilterOptions{Index: "0x1F81/0x01"}, wantErr: true},
		{name: "named index", opts: FilterOptions{Index: "NMT_CycleLen_U32"}, wantErr: true},
		{name: "bad category", opts: FilterOptions{Category: "message"}, wantErr: true},
		{name: "bad stage", opts: FilterOptions{Stage: "wire"}, wantErr: true},
		{name: "bad time", opts: FilterOptions{TimeStart: "yesterday"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := BuildFilter(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, f)
		})
	}
}

func TestRunFilter(t *testing.T) {
	path := createTestJournal(t, sampleEvents())
	output := filepath.Join(t.TempDir(), "filtered.odlog")

	filter, err := BuildFilter(FilterOptions{Index: "0x1006"})
	if err != nil {
		t.Fatalf("BuildFilter failed: %v", err)
	}

	count, err := RunFilter(path, filter, output)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	reader, err := log.NewReader(output)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := 0
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if event.Index != 0x1006 {
			t.Errorf("unexpected index 0x%04X", event.Index)
		}
		read++
	}
	if read != 2 {
		t.Errorf("read %d events, want 2", read)
	}
}
