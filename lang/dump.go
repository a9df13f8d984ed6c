package lang

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// DumpFormat selects the encoding of token and tree dumps.
type DumpFormat string

const (
	DumpText DumpFormat = "text"
	DumpJSON DumpFormat = "json"
	DumpYAML DumpFormat = "yaml"
)

// DumpFormats returns the names of all dump formats.
func DumpFormats() []string {
	return []string{string(DumpText), string(DumpJSON), string(DumpYAML)}
}

// DumpTokens writes tokens to w, one per line in text format.
func DumpTokens(ctx context.Context, w io.Writer, tokens []Token, format DumpFormat, indent int) error {
	if format == DumpText {
		bw := bufio.NewWriter(w)

		for _, tok := range tokens {
			fmt.Fprintf(bw, "%-24s %-12s %q\n", tok.Pos, tok.Kind, tok.Value)
		}

		return bw.Flush()
	}

	native := make([]any, 0, len(tokens))

	for _, tok := range tokens {
		m := map[string]any{"kind": tok.Kind.String(), "pos": tok.Pos.String()}
		if tok.Value != "" {
			m["value"] = tok.Value
		}

		native = append(native, m)
	}

	return encode(ctx, w, native, format, indent)
}

// DumpTree writes the statement tree of doc to w. The text format is the
// document rendered back into source syntax.
func DumpTree(ctx context.Context, w io.Writer, doc *Document, format DumpFormat, indent int) error {
	if format == DumpText {
		return doc.Format(w, indent)
	}

	return encode(ctx, w, doc.ToNative(), format, indent)
}

func encode(ctx context.Context, w io.Writer, v any, format DumpFormat, indent int) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case DumpJSON:
		if indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(v)
		}

		if err == nil {
			data = append(data, '\n')
		}

	case DumpYAML:
		var opts []yaml.EncodeOption
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err = yaml.MarshalContext(ctx, v, opts...)

	default:
		return ErrInternal.With(slog.String("format", string(format)))
	}

	if err != nil {
		return WrapError(err)
	}

	_, err = w.Write(data)

	return err
}

// ToNative converts the document to plain maps and slices, one map per
// node, each tagged with its "kind".
func (d *Document) ToNative() []any {
	return statementsNative(d.Statements)
}

func statementsNative(list []Statement) []any {
	out := make([]any, 0, len(list))
	for _, s := range list {
		out = append(out, statementNative(s))
	}

	return out
}

func statementNative(s Statement) map[string]any {
	m := map[string]any{"pos": s.Position().String()}

	switch s := s.(type) {
	case *Assignment:
		m["kind"] = "assignment"
		m["name"] = s.Name
		m["op"] = string(s.Op)
		m["value"] = exprNative(s.Value)

	case *Comment:
		m["kind"] = "comment"
		m["text"] = s.Text

	case *Include:
		m["kind"] = "include"
		m["path"] = s.Path

	case *Conditional:
		m["kind"] = "conditional"
		m["op"] = string(s.Op)
		m["left"] = exprNative(s.Left)
		m["right"] = exprNative(s.Right)
		m["then"] = statementsNative(s.Then)
		m["else"] = statementsNative(s.Else)

	case *MacroDef:
		m["kind"] = "define"
		m["name"] = s.Name
		m["body"] = statementsNative(s.Body)

	case *Call:
		return exprNative(s)
	}

	return m
}

func exprNative(x Expr) map[string]any {
	switch x := x.(type) {
	case *Literal:
		return map[string]any{
			"kind":  "literal",
			"type":  x.Value.Type.String(),
			"value": x.Value.Text,
		}

	case *Text:
		return map[string]any{"kind": "text", "text": x.Text}

	case *Ref:
		return map[string]any{"kind": "ref", "name": x.Name}

	case *Concat:
		parts := make([]any, 0, len(x.Parts))
		for _, p := range x.Parts {
			parts = append(parts, exprNative(p))
		}

		return map[string]any{"kind": "concat", "parts": parts}

	case *Call:
		args := make([]any, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, exprNative(a))
		}

		return map[string]any{
			"kind": "call",
			"name": x.Name,
			"args": args,
			"pos":  x.Pos.String(),
		}
	}

	return nil
}

// Format writes the document in source syntax, nesting the bodies of
// conditionals and macros by indent spaces per level.
func (d *Document) Format(w io.Writer, indent int) error {
	bw := bufio.NewWriter(w)

	formatStatements(bw, d.Statements, indent, 0)

	return bw.Flush()
}

func formatStatements(w *bufio.Writer, list []Statement, indent, depth int) {
	prefix := strings.Repeat(" ", indent*depth)

	for _, s := range list {
		w.WriteString(prefix)

		switch s := s.(type) {
		case *Assignment:
			if lit, ok := s.Value.(*Literal); ok && s.Op == OpSet {
				w.WriteString(AssignmentLine(s.Name, lit.Value))
			} else {
				w.WriteString(s.Name + string(s.Op) + formatExpr(s.Value))
			}

		case *Comment:
			w.WriteString("#" + s.Text)

		case *Include:
			// The included statements follow in the tree.
			w.WriteString(`# include "` + s.Path + `"`)

		case *Conditional:
			w.WriteString("%(if" + string(s.Op) + " " +
				formatExpr(s.Left) + ", " + formatExpr(s.Right) + ")\n")
			formatStatements(w, s.Then, indent, depth+1)

			if len(s.Else) > 0 {
				w.WriteString(prefix + "%(else)\n")
				formatStatements(w, s.Else, indent, depth+1)
			}

			w.WriteString(prefix + "%(endif)")

		case *MacroDef:
			w.WriteString(`%(define "` + s.Name + `")` + "\n")
			formatStatements(w, s.Body, indent, depth+1)
			w.WriteString(prefix + "%(endef)")

		case *Call:
			w.WriteString(formatExpr(s))
		}

		w.WriteByte('\n')
	}
}

func formatExpr(x Expr) string {
	switch x := x.(type) {
	case *Literal:
		return x.Value.Text

	case *Text:
		return quote(x.Text)

	case *Ref:
		return "%(" + x.Name + ")"

	case *Concat:
		parts := make([]string, 0, len(x.Parts))
		for _, p := range x.Parts {
			parts = append(parts, formatExpr(p))
		}

		return strings.Join(parts, ".")

	case *Call:
		args := make([]string, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, formatExpr(a))
		}

		if len(args) == 0 {
			return "%(" + x.Name + ")"
		}

		return "%(" + x.Name + " " + strings.Join(args, ", ") + ")"
	}

	return ""
}

// quote renders s as a string literal, preferring single quotes.
func quote(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	if strings.Contains(s, "'") {
		return `"` + s + `"`
	}

	return "'" + s + "'"
}
