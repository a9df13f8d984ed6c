package lang

import (
	"context"
	"iter"
	"log/slog"

	"github.com/ardnew/mergeconfig/log"
)

// Parser builds a [Document] from a token stream.
//
// The parser never gives up on malformed input: a token that cannot extend
// the statement being parsed is discarded and counted as a syntax error, and
// parsing continues with the next token.
type Parser struct {
	settings

	ctx    context.Context
	next   func() (Token, bool)
	tok    Token
	ok     bool
	atEOF  bool
	errors int
}

// NewParser returns a Parser.
func NewParser(opts ...Option) *Parser {
	return &Parser{settings: makeSettings("parser", opts...)}
}

// Errors returns the number of syntax errors encountered so far.
func (p *Parser) Errors() int { return p.errors }

// Parse consumes tokens and returns the document they form.
// Parsing stops early, returning the statements completed so far, if ctx is
// canceled.
func (p *Parser) Parse(ctx context.Context, tokens iter.Seq[Token]) *Document {
	next, stop := iter.Pull(tokens)
	defer stop()

	p.ctx = ctx
	p.next = next
	p.atEOF = false
	p.advance()

	doc := &Document{}

	for p.ok && ctx.Err() == nil {
		if !isStatementStart(p.tok.Kind) {
			p.discard()

			continue
		}

		if s := p.statement(); s != nil {
			doc.Statements = append(doc.Statements, s)
		}
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("statements", len(doc.Statements)),
		slog.Int("errors", p.errors))

	return doc
}

func isStatementStart(kind TokenKind) bool {
	switch kind {
	case TokenUnset, TokenVariable, TokenInclude, TokenComment,
		TokenFunction, TokenIf, TokenDefine:
		return true
	default:
		return false
	}
}

func isPartStart(kind TokenKind) bool {
	switch kind {
	case TokenString, TokenValueRef, TokenFunction:
		return true
	default:
		return false
	}
}

func (p *Parser) advance() {
	p.tok, p.ok = p.next()
}

// discard drops the current token as a syntax error.
func (p *Parser) discard() {
	p.errors++
	report(p.ctx, p.logger, log.LevelError,
		ErrSyntax.At(p.tok.Pos).With(slog.String("token", p.tok.Kind.String())))
	p.advance()
}

// expect discards tokens until one satisfies accept. It returns false if the
// input ends first.
func (p *Parser) expect(accept func(TokenKind) bool) bool {
	for p.ok && !accept(p.tok.Kind) {
		p.discard()
	}

	if p.ok {
		return true
	}

	if !p.atEOF {
		p.atEOF = true
		p.errors++
		report(p.ctx, p.logger, log.LevelError, ErrUnexpectedEOF)
	}

	return false
}

func kindIs(kinds ...TokenKind) func(TokenKind) bool {
	return func(k TokenKind) bool {
		for _, kind := range kinds {
			if k == kind {
				return true
			}
		}

		return false
	}
}

// statement parses one statement starting at the current token, which must
// satisfy isStatementStart. It returns nil if the statement is incomplete.
func (p *Parser) statement() Statement {
	tok := p.tok

	switch tok.Kind {
	case TokenUnset:
		p.advance()

		return &Assignment{
			Name:  tok.Value,
			Op:    OpSet,
			Value: &Literal{Value: StateValue("n")},
			Pos:   tok.Pos,
		}

	case TokenVariable:
		if a := p.assignment(); a != nil {
			return a
		}

	case TokenInclude:
		p.advance()

		return &Include{Path: tok.Value, Pos: tok.Pos}

	case TokenComment:
		p.advance()

		return &Comment{Text: tok.Value, Pos: tok.Pos}

	case TokenFunction:
		if call := p.call(); call != nil {
			return call
		}

	case TokenIf:
		if cond := p.conditional(); cond != nil {
			return cond
		}

	case TokenDefine:
		if def := p.macro(); def != nil {
			return def
		}
	}

	return nil
}

// assignment := variable assign-op value
func (p *Parser) assignment() *Assignment {
	a := &Assignment{Name: p.tok.Value, Pos: p.tok.Pos}
	p.advance()

	if !p.expect(kindIs(TokenAssign)) {
		return nil
	}

	a.Op = AssignOp(p.tok.Value)
	p.advance()

	if a.Value = p.value(); a.Value == nil {
		return nil
	}

	return a
}

// value := state | int | hex | operand
func (p *Parser) value() Expr {
	accept := func(k TokenKind) bool {
		return k == TokenState || k == TokenInteger || k == TokenHex ||
			isPartStart(k)
	}

	if !p.expect(accept) {
		return nil
	}

	tok := p.tok

	switch tok.Kind {
	case TokenState:
		p.advance()

		return &Literal{Value: StateValue(tok.Value)}

	case TokenInteger:
		p.advance()

		return &Literal{Value: IntValue(tok.Value)}

	case TokenHex:
		p.advance()

		return &Literal{Value: HexValue(tok.Value)}
	}

	return p.operand()
}

// operand := part (dot part)*
//
// A lone reference or call keeps its own node so that a reference carries
// the referenced type. A lone string literal is a one-part concatenation.
func (p *Parser) operand() Expr {
	first := p.part()
	if first == nil {
		return nil
	}

	parts := []Part{first}

	for p.ok && p.tok.Kind == TokenDot {
		p.advance()

		next := p.part()
		if next == nil {
			return nil
		}

		parts = append(parts, next)
	}

	if len(parts) == 1 {
		switch part := first.(type) {
		case *Ref:
			return part
		case *Call:
			return part
		}
	}

	return &Concat{Parts: parts}
}

// part := string | value-ref | function-call
func (p *Parser) part() Part {
	if !p.expect(isPartStart) {
		return nil
	}

	tok := p.tok

	switch tok.Kind {
	case TokenString:
		p.advance()

		return &Text{Text: tok.Value}

	case TokenValueRef:
		p.advance()

		return &Ref{Name: tok.Value, Pos: tok.Pos}
	}

	if call := p.call(); call != nil {
		return call
	}

	return nil
}

// call := function (operand (comma operand)*)? close-paren
func (p *Parser) call() *Call {
	c := &Call{Name: p.tok.Value, Pos: p.tok.Pos}
	p.advance()

	if !p.expect(func(k TokenKind) bool { return k == TokenCloseParen || isPartStart(k) }) {
		return nil
	}

	if p.tok.Kind == TokenCloseParen {
		p.advance()

		return c
	}

	for {
		arg := p.operand()
		if arg == nil {
			return nil
		}

		c.Args = append(c.Args, arg)

		if !p.expect(kindIs(TokenComma, TokenCloseParen)) {
			return nil
		}

		kind := p.tok.Kind
		p.advance()

		if kind == TokenCloseParen {
			return c
		}
	}
}

// conditional := if operand comma operand close-paren
//
//	statement* (else statement*)? endif
func (p *Parser) conditional() *Conditional {
	c := &Conditional{Op: CompareOp(p.tok.Value), Pos: p.tok.Pos}
	p.advance()

	if c.Left = p.operand(); c.Left == nil {
		return nil
	}

	if !p.expect(kindIs(TokenComma)) {
		return nil
	}

	p.advance()

	if c.Right = p.operand(); c.Right == nil {
		return nil
	}

	if !p.expect(kindIs(TokenCloseParen)) {
		return nil
	}

	p.advance()

	var ok bool

	c.Then, ok = p.block(TokenElse, TokenEndIf)
	if !ok {
		return nil
	}

	if p.tok.Kind == TokenElse {
		p.advance()

		if c.Else, ok = p.block(TokenEndIf); !ok {
			return nil
		}
	}

	p.advance()

	return c
}

// macro := define statement* endef
func (p *Parser) macro() *MacroDef {
	m := &MacroDef{Name: p.tok.Value, Pos: p.tok.Pos}
	p.advance()

	body, ok := p.block(TokenEndDef)
	if !ok {
		return nil
	}

	m.Body = body
	p.advance()

	return m
}

// block parses statements until the current token is one of the given
// terminators, which is left unconsumed.
func (p *Parser) block(terminators ...TokenKind) ([]Statement, bool) {
	isTerminator := kindIs(terminators...)

	var list []Statement

	for {
		if !p.expect(func(k TokenKind) bool { return isTerminator(k) || isStatementStart(k) }) {
			return nil, false
		}

		if isTerminator(p.tok.Kind) {
			return list, true
		}

		if s := p.statement(); s != nil {
			list = append(list, s)
		} else if !p.ok {
			return nil, false
		}
	}
}
