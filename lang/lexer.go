package lang

import (
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/mergeconfig/log"
)

// rule pairs a token kind with the pattern recognizing it at the start of the
// remaining input.
type rule struct {
	kind TokenKind
	re   *regexp.Regexp
}

// rules is ordered by match priority (see [TokenKind]).
var rules = []rule{
	{TokenInclude, regexp.MustCompile(`^%\(\s*include\s*(?:"([A-Za-z0-9_./-]*)"|'([A-Za-z0-9_./-]*)')\s*\)`)},
	{TokenAssign, regexp.MustCompile(`^(?:\?=|\+=|=\+|-=|=)`)},
	{TokenState, regexp.MustCompile(`^[ymn]`)},
	{TokenComma, regexp.MustCompile(`^,`)},
	{TokenCloseParen, regexp.MustCompile(`^\)`)},
	{TokenDot, regexp.MustCompile(`^\.`)},
	{TokenUnset, regexp.MustCompile(`^#\s([A-Z][A-Za-z0-9_]*)\sis\snot\sset`)},
	{TokenHex, regexp.MustCompile(`^0[xX][A-Fa-f0-9]+`)},
	{TokenInteger, regexp.MustCompile(`^-?[0-9]+`)},
	{TokenVariable, regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*`)},
	{TokenValueRef, regexp.MustCompile(`^%\(\s*([A-Z][A-Za-z0-9_]*)\s*\)`)},
	{TokenString, regexp.MustCompile(`^(?:"[^"]*"|'[^']*')`)},
	{TokenElse, regexp.MustCompile(`^%\(\s*else\s*\)`)},
	{TokenEndIf, regexp.MustCompile(`^%\(\s*endif\s*\)`)},
	{TokenIf, regexp.MustCompile(`^%\(\s*if(eq|neq)\s*`)},
	{TokenDefine, regexp.MustCompile(`^%\(\s*define\s*(?:"([A-Za-z0-9_]*)"|'([A-Za-z0-9_]*)')\s*\)`)},
	{TokenEndDef, regexp.MustCompile(`^%\(\s*endef\s*\)`)},
	{TokenFunction, regexp.MustCompile(`^%\(\s*([a-z][a-z0-9_]*)`)},
	{TokenComment, regexp.MustCompile(`^#(.*)`)},
}

// frame is a source buffer and the position at which tokenizing resumes.
type frame struct {
	node   *IncludeTree
	text   string
	path   string
	offset int
	line   int
}

// Lexer converts a set of source documents into a single token stream,
// splicing in included files where they are referenced.
//
// Sources are tokenized in the order: prepended text, documents added with
// [Lexer.AddFile] or [Lexer.AddSource] in the order they were added, then
// appended text. A Lexer produces its stream once.
type Lexer struct {
	settings

	cur       *frame
	prepended *frame
	appended  *frame
	sources   []*frame
	stack     []*frame
	roots     []*IncludeTree
	started   bool
	errors    int
}

// NewLexer returns a Lexer with no sources.
func NewLexer(opts ...Option) *Lexer {
	return &Lexer{
		settings: makeSettings("lexer", opts...),
	}
}

// AddFile reads the file at path and adds it as a top-level source.
func (l *Lexer) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ErrReadSource.Wrap(err).With(slog.String("path", path))
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return ErrReadSource.Wrap(err).With(slog.String("path", path))
	}

	l.AddSource(string(data), abs, AnnotationFile)

	return nil
}

// AddSource adds text as a top-level source located at path.
// Relative includes in text are resolved against the directory of path,
// unless path is [CommandLine].
func (l *Lexer) AddSource(text, path, annotation string) {
	if path != CommandLine {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	node := &IncludeTree{Path: path, Annotation: annotation}

	l.sources = append(l.sources, newFrame(text, path, node))
	l.roots = append(l.roots, node)
}

// Prepend sets text to be tokenized before every other source.
func (l *Lexer) Prepend(text string) {
	l.prepended = newFrame(text, CommandLine,
		&IncludeTree{Path: CommandLine, Annotation: AnnotationPrepend})
}

// Append sets text to be tokenized after every other source.
func (l *Lexer) Append(text string) {
	l.appended = newFrame(text, CommandLine,
		&IncludeTree{Path: CommandLine, Annotation: AnnotationAppend})
}

func newFrame(text, path string, node *IncludeTree) *frame {
	return &frame{text: text, path: path, node: node, line: 1}
}

// Errors returns the number of recoverable errors encountered so far.
func (l *Lexer) Errors() int { return l.errors }

// Hierarchy returns the include forest discovered so far, one root per
// top-level source in tokenizing order.
func (l *Lexer) Hierarchy() []*IncludeTree {
	forest := make([]*IncludeTree, 0, len(l.roots)+2)

	if l.prepended != nil {
		forest = append(forest, l.prepended.node)
	}

	forest = append(forest, l.roots...)

	if l.appended != nil {
		forest = append(forest, l.appended.node)
	}

	return forest
}

// All returns an iterator over the remaining tokens.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Drain consumes the remaining tokens, which completes the include
// hierarchy and the error count.
func (l *Lexer) Drain() {
	for range l.All() {
	}
}

// Next returns the next token, or false once every source is exhausted.
func (l *Lexer) Next() (Token, bool) {
	if !l.started {
		l.start()
	}

	for {
		if l.cur == nil {
			if len(l.stack) == 0 {
				return Token{}, false
			}

			l.cur = l.stack[len(l.stack)-1]
			l.stack = l.stack[:len(l.stack)-1]

			l.logger.Trace("resume source",
				slog.String("path", l.cur.path),
				slog.Int("line", l.cur.line))
		}

		if tok, ok := l.scan(); ok {
			return tok, true
		}
	}
}

// start pushes the top-level sources so that the first one is on top.
func (l *Lexer) start() {
	l.started = true

	order := make([]*frame, 0, len(l.sources)+2)

	if l.prepended != nil {
		order = append(order, l.prepended)
	}

	order = append(order, l.sources...)

	if l.appended != nil {
		order = append(order, l.appended)
	}

	for i := len(order) - 1; i >= 0; i-- {
		l.stack = append(l.stack, order[i])
	}
}

// scan produces at most one token from the active frame. It returns false
// when nothing was produced, either because the frame is exhausted (and is
// released) or because the input at the cursor was rejected.
func (l *Lexer) scan() (Token, bool) {
	f := l.cur

skip:
	for f.offset < len(f.text) {
		switch f.text[f.offset] {
		case '\n':
			f.line++
		case ' ', '\t', '\r':
		default:
			break skip
		}

		f.offset++
	}

	if f.offset >= len(f.text) {
		l.cur = nil

		return Token{}, false
	}

	rest := f.text[f.offset:]
	pos := Pos{File: f.path, Line: f.line}

	for _, r := range rules {
		m := r.re.FindStringSubmatchIndex(rest)
		if m == nil {
			continue
		}

		lexeme := rest[:m[1]]
		f.offset += m[1]
		f.line += strings.Count(lexeme, "\n")

		tok := Token{Kind: r.kind, Value: tokenValue(r.kind, rest, m), Pos: pos}

		if r.kind == TokenInclude && !l.include(&tok) {
			return Token{}, false
		}

		return tok, true
	}

	ch, size := utf8.DecodeRuneInString(rest)
	f.offset += size

	l.fail(ErrIllegalCharacter.At(pos).With(slog.String("char", string(ch))))

	return Token{}, false
}

// tokenValue extracts the value of a token from the submatch indices m of
// its pattern within s.
func tokenValue(kind TokenKind, s string, m []int) string {
	group := func(n int) (string, bool) {
		if 2*n+1 >= len(m) || m[2*n] < 0 {
			return "", false
		}

		return s[m[2*n]:m[2*n+1]], true
	}

	switch kind {
	case TokenInclude, TokenDefine:
		if v, ok := group(1); ok {
			return v
		}

		v, _ := group(2)

		return v

	case TokenUnset, TokenValueRef, TokenIf, TokenFunction, TokenComment:
		v, _ := group(1)

		return v

	case TokenAssign, TokenState, TokenVariable:
		return s[:m[1]]

	case TokenHex:
		return canonicalHex(s[:m[1]])

	case TokenInteger:
		return canonicalInt(s[:m[1]])

	case TokenString:
		return unquote(s[:m[1]])

	default:
		return ""
	}
}

// unquote removes the delimiting quotes of a string literal, deletes escaped
// line breaks and converts the two-character sequence \n to a newline.
func unquote(s string) string {
	s = s[1 : len(s)-1]
	s = strings.ReplaceAll(s, "\\\n", "")

	return strings.ReplaceAll(s, `\n`, "\n")
}

// include splices the file named by tok into the stream. On success tok.Value
// holds the resolved absolute path, the active frame is suspended right after
// the directive and the included file becomes the next frame.
func (l *Lexer) include(tok *Token) bool {
	path := tok.Value
	attr := slog.String("include", path)

	if !filepath.IsAbs(path) {
		if l.cur.path == CommandLine {
			l.fail(ErrRelativeInclude.At(tok.Pos).With(attr))

			return false
		}

		path = filepath.Join(filepath.Dir(l.cur.path), path)
	}

	path = filepath.Clean(path)
	attr = slog.String("include", path)

	if path == l.cur.path {
		l.fail(ErrRecursiveInclude.At(tok.Pos).With(attr))

		return false
	}

	for _, f := range l.stack {
		if f.path == path {
			l.fail(ErrRecursiveInclude.At(tok.Pos).With(attr))

			return false
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		l.fail(ErrIncludeNotFound.Wrap(err).At(tok.Pos).With(attr))

		return false
	}

	l.logger.Debug("include", attr, slog.Any("pos", tok.Pos))

	tok.Value = path

	l.stack = append(l.stack, l.cur, newFrame(string(data), path, l.cur.node.add(path)))
	l.cur = nil

	return true
}

func (l *Lexer) fail(err *Error) {
	l.errors++
	report(log.DefaultContextProvider(), l.logger, log.LevelError, err)
}
