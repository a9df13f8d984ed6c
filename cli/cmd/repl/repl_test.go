package repl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ardnew/mergeconfig/lang"
	"github.com/ardnew/mergeconfig/log"
)

func testModel(t *testing.T, cfg Config) model {
	t.Helper()

	history := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	return newModel(context.Background(), cfg, history, log.Logger{})
}

func TestModel_Dump(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		input  string
		want   string
		errors int
	}{
		{
			name:  "tree text",
			cfg:   Config{Mode: Tree, Indent: 2},
			input: "%(ifeq %(A), 'y') B=1 %(endif)",
			want:  "%(ifeq %(A), 'y')\n  B=1\n%(endif)\n",
		},
		{
			name:   "tree with syntax error",
			cfg:    Config{Mode: Tree},
			input:  "B=1 A=",
			want:   "B=1\n",
			errors: 1,
		},
		{
			name:  "tokens json",
			cfg:   Config{Mode: Tokens, Format: lang.DumpJSON},
			input: "A=y",
			want:  `[{"kind":"variable","pos":"<command-line>:1","value":"A"},{"kind":"assign","pos":"<command-line>:1","value":"="},{"kind":"state","pos":"<command-line>:1","value":"y"}]` + "\n",
		},
		{
			name:   "tokens with illegal character",
			cfg:    Config{Mode: Tokens},
			input:  "A=1 ~",
			errors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t, tt.cfg)

			got, errs, err := m.dump(tt.input)
			if err != nil {
				t.Fatal(err)
			}

			if tt.want != "" && got != tt.want {
				t.Errorf("dump(%q) = %q, want %q", tt.input, got, tt.want)
			}

			if errs != tt.errors {
				t.Errorf("dump(%q) errors = %d, want %d", tt.input, errs, tt.errors)
			}
		})
	}
}

func TestModel_LearnsVariables(t *testing.T) {
	m := testModel(t, Config{})

	if _, _, err := m.dump("A=%(B)\n# C is not set"); err != nil {
		t.Fatal(err)
	}

	if got, want := m.listVars(), "  A\n  B\n  C"; got != want {
		t.Errorf("listVars() = %q, want %q", got, want)
	}
}

func TestModel_Commands(t *testing.T) {
	m := testModel(t, Config{Mode: Tokens})

	m, _ = m.executeCommand("tree")
	if m.stage != Tree {
		t.Errorf("stage = %v, want %v", m.stage, Tree)
	}

	m, _ = m.executeCommand("format yaml")
	if m.format != lang.DumpYAML {
		t.Errorf("format = %q, want %q", m.format, lang.DumpYAML)
	}

	m, _ = m.executeCommand("format xml")
	if m.format != lang.DumpYAML {
		t.Errorf("format changed to %q by invalid name", m.format)
	}

	m, _ = m.executeCommand("quit")
	if !m.quitting {
		t.Error("quit did not set quitting")
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q, want empty", m.View())
	}
}
