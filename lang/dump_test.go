package lang

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"testing"
)

func TestDumpTokens(t *testing.T) {
	tokens, _ := lexString("A=1\nB='x'")

	t.Run("text", func(t *testing.T) {
		var sb strings.Builder
		if err := DumpTokens(context.Background(), &sb, tokens, DumpText, 0); err != nil {
			t.Fatal(err)
		}

		lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
		if len(lines) != 6 {
			t.Fatalf("got %d lines, want 6:\n%s", len(lines), sb.String())
		}

		want := []string{"<command-line>:2", "string", `"x"`}
		if got := strings.Fields(lines[5]); !slices.Equal(got, want) {
			t.Errorf("last line fields = %q, want %q", got, want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var sb strings.Builder
		if err := DumpTokens(context.Background(), &sb, tokens, DumpJSON, 2); err != nil {
			t.Fatal(err)
		}

		var got []map[string]string
		if err := json.Unmarshal([]byte(sb.String()), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", sb.String(), err)
		}

		if len(got) != 6 {
			t.Fatalf("got %d tokens, want 6", len(got))
		}

		want := map[string]string{"kind": "integer", "pos": "<command-line>:1", "value": "1"}
		if !maps.Equal(got[2], want) {
			t.Errorf("token 2 = %v, want %v", got[2], want)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var sb strings.Builder
		if err := DumpTokens(context.Background(), &sb, tokens, DumpYAML, 2); err != nil {
			t.Fatal(err)
		}

		for _, s := range []string{"kind: variable", "kind: assign", "value: x"} {
			if !strings.Contains(sb.String(), s) {
				t.Errorf("YAML output does not contain %q:\n%s", s, sb.String())
			}
		}
	})
}

func TestDumpTree(t *testing.T) {
	doc, _ := parseString("%(ifeq %(A), 'y') B=%(f 'x') %(else) # C is not set\n%(endif)")

	tests := []struct {
		format DumpFormat
		indent int
		want   []string
	}{
		{
			format: DumpText,
			indent: 4,
			want:   []string{"%(ifeq %(A), 'y')\n    B=%(f 'x')\n%(else)\n    # C is not set\n%(endif)\n"},
		},
		{
			format: DumpJSON,
			indent: 0,
			want: []string{
				`"kind":"conditional"`, `"kind":"ref"`, `"kind":"call"`,
				`"kind":"assignment"`, `"kind":"literal"`, `"type":"state"`,
			},
		},
		{
			format: DumpYAML,
			indent: 2,
			want:   []string{"kind: conditional", "kind: call", "name: f", "op: eq"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var sb strings.Builder
			if err := DumpTree(context.Background(), &sb, doc, tt.format, tt.indent); err != nil {
				t.Fatal(err)
			}

			for _, s := range tt.want {
				if !strings.Contains(sb.String(), s) {
					t.Errorf("output does not contain %q:\n%s", s, sb.String())
				}
			}
		})
	}
}

func TestDocument_FormatIncomplete(t *testing.T) {
	doc, parser := parseString("B=1\nA='x'.")
	if parser.Errors() != 1 {
		t.Errorf("errors = %d, want 1", parser.Errors())
	}

	var sb strings.Builder
	if err := doc.Format(&sb, 2); err != nil {
		t.Fatal(err)
	}

	if got := sb.String(); got != "B=1\n" {
		t.Errorf("Format() = %q, want %q", got, "B=1\n")
	}
}

func TestDocument_FormatInclude(t *testing.T) {
	doc := &Document{Statements: []Statement{
		&Include{Path: "/cfg/b.conf", Pos: at(1)},
		&Assignment{Name: "B", Op: OpSet, Value: &Literal{Value: StateValue("y")}, Pos: Pos{File: "/cfg/b.conf", Line: 1}},
	}}

	var sb strings.Builder
	if err := doc.Format(&sb, 2); err != nil {
		t.Fatal(err)
	}

	want := "# include \"/cfg/b.conf\"\nB=y\n"
	if got := sb.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	lexer := NewLexer()
	lexer.AddSource(sb.String(), CommandLine, "")

	for tok := range lexer.All() {
		if tok.Kind == TokenInclude {
			t.Errorf("formatted tree re-lexes to an include of %q", tok.Value)
		}
	}
}

func TestDump_UnknownFormat(t *testing.T) {
	var sb strings.Builder

	err := DumpTokens(context.Background(), &sb, []Token{{Kind: TokenComma}}, DumpFormat("xml"), 0)
	if err == nil {
		t.Error("DumpTokens() with unknown format succeeded")
	}
}
