package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"directive", "%(inc", 5, "%(inc", 0, 5},
		{"after_assign", "A=%(B", 5, "%(B", 2, 5},
		{"after_comma", "%(diff 'a', %(X", 15, "%(X", 12, 15},
		{"after_append", "A+=B", 4, "B", 3, 4},
		{"inside_quote", "A='x", 4, "x", 3, 4},
		{"after_concat", "A='x'.%(B", 9, "%(B", 6, 9},
		{"empty_at_boundary", "A = ", 4, "", 4, 4},
		{"mid_reference", "%(X)", 2, "%(X)", 0, 4},
		{"mid_word", "FOOBAR", 3, "FOOBAR", 0, 6},
		{"at_start", "FOO", 0, "FOO", 0, 3},
		{"cursor_beyond_input", "FOO", 9, "FOO", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	got := candidates(map[string]struct{}{"FOO": {}})

	for _, want := range []string{"%(include", "%(endif)", "%(shell", "%(relpath", "FOO", "%(FOO)"} {
		if !slices.Contains(got, want) {
			t.Errorf("candidates() does not contain %q", want)
		}
	}

	if slices.Contains(candidates(nil), "FOO") {
		t.Error("candidates(nil) contains a variable")
	}
}

func TestRenderCandidateBar(t *testing.T) {
	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("renderCandidateBar(nil) = %q, want empty", got)
	}
}
