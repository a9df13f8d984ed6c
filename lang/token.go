package lang

//go:generate go tool stringer --linecomment --type TokenKind,ValueType --output token_string.go

import (
	"log/slog"
	"strconv"
)

// TokenKind identifies the lexical class of a [Token].
//
// The declaration order is the lexer's match priority: at each position the
// first kind whose pattern matches wins, regardless of match length.
type TokenKind int

const (
	TokenInclude    TokenKind = iota // include
	TokenAssign                      // assign
	TokenState                       // state
	TokenComma                       // comma
	TokenCloseParen                  // close-paren
	TokenDot                         // dot
	TokenUnset                       // unset
	TokenHex                         // hex
	TokenInteger                     // integer
	TokenVariable                    // variable
	TokenValueRef                    // value-ref
	TokenString                      // string
	TokenElse                        // else
	TokenEndIf                       // endif
	TokenIf                          // if
	TokenDefine                      // define
	TokenEndDef                      // endef
	TokenFunction                    // function
	TokenComment                     // comment
)

// MarshalText implements encoding.TextMarshaler.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Pos is a source position: an absolute file path and a 1-based line.
type Pos struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

func (p Pos) String() string {
	return p.File + ":" + strconv.Itoa(p.Line)
}

// LogValue implements slog.LogValuer.
func (p Pos) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", p.File),
		slog.Int("line", p.Line),
	)
}

// Token is a single lexeme.
//
// Value holds the captured text: the resolved absolute path of an include,
// the operator of an assignment, "eq" or "neq" for a conditional, the name
// of a variable, value reference, macro or function, the unquoted body of a
// string, the text after '#' of a comment, and the canonical literal of a
// state, integer or hex. Punctuation tokens carry no value.
type Token struct {
	Kind  TokenKind `json:"kind"            yaml:"kind"`
	Value string    `json:"value,omitempty" yaml:"value,omitempty"`
	Pos   Pos       `json:"pos"             yaml:"pos"`
}

func (t Token) String() string {
	if t.Value == "" {
		return t.Kind.String() + "@" + t.Pos.String()
	}

	return t.Kind.String() + "(" + strconv.Quote(t.Value) + ")@" + t.Pos.String()
}
