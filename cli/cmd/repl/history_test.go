package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{Line: "A=1", Mode: modeDump},
		{Line: "tree", Mode: modeCtrl},
		{Line: "  ", Mode: modeDump},
		{Line: "B=2", Mode: modeDump},
		{Line: "B=2", Mode: modeDump},
		{Line: "A=1", Mode: modeDump},
		{Line: "A=1", Mode: modeCtrl},
	} {
		if _, err := h.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	want := []HistoryEntry{
		{Line: "tree", Mode: modeCtrl},
		{Line: "B=2", Mode: modeDump},
		{Line: "A=1", Mode: modeDump},
		{Line: "A=1", Mode: modeCtrl},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:tree\nD:B=2\nD:A=1\nC:A=1\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_UnprefixedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	if err := os.WriteFile(path, []byte("A=1\n\nC:quit\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{{Line: "A=1", Mode: modeDump}, {Line: "quit", Mode: modeCtrl}}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistory_GetEntry(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))
	if _, err := h.WriteWithMode("A=1", modeDump); err != nil {
		t.Fatal(err)
	}

	if e, err := h.GetEntry(0); err != nil || e.Line != "A=1" {
		t.Errorf("GetEntry(0) = %v, %v", e, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.GetEntry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GetEntry(%d) error = %v, want %v", i, err, ErrOutOfBounds)
		}
	}
}
