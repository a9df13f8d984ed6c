package lang

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/mergeconfig/log"
)

// Evaluator executes documents against a [Store] and a macro table.
//
// Recoverable problems (undefined references, type changes, builtin misuse
// and the like) are logged and counted, and evaluation continues with a
// fallback value. Only fatal conditions stop evaluation and are returned as
// errors.
type Evaluator struct {
	settings

	store  *Store
	macros map[string][]Statement
	errors int
}

// NewEvaluator returns an Evaluator with an empty store and macro table.
func NewEvaluator(opts ...Option) *Evaluator {
	return &Evaluator{
		settings: makeSettings("eval", opts...),
		store:    NewStore(),
		macros:   make(map[string][]Statement),
	}
}

// Errors returns the number of recoverable errors encountered so far.
func (e *Evaluator) Errors() int { return e.errors }

// Entries returns the resolved configuration in insertion order.
func (e *Evaluator) Entries() []Entry { return e.store.Entries() }

// Store returns the resolved configuration.
func (e *Evaluator) Store() *Store { return e.store }

// Run executes the statements of doc in order.
// The returned error is non-nil only if evaluation was aborted.
func (e *Evaluator) Run(ctx context.Context, doc *Document) error {
	e.logger.TraceContext(ctx, "evaluate",
		slog.Int("statements", len(doc.Statements)),
		slog.Int("depth", e.depth))

	// A document parsed under a canceled context may be truncated.
	if err := ctx.Err(); err != nil {
		return ErrCanceled.Wrap(err)
	}

	err := e.exec(ctx, doc.Statements)

	e.logger.TraceContext(ctx, "evaluate complete",
		slog.Int("entries", len(e.store.Entries())),
		slog.Int("errors", e.errors))

	return err
}

// Resolve returns the authoritative value of the named variable.
// A missing variable yields an empty string value; it is counted as an error
// only when strict is set.
func (e *Evaluator) Resolve(name string, strict bool) (Value, bool) {
	return e.resolve(log.DefaultContextProvider(), name, strict, Pos{})
}

// Record appends value to the history of the named variable.
// A change of type from the previous value is counted as an error, but the
// value is recorded regardless.
func (e *Evaluator) Record(name string, value Value, pos Pos) {
	prev, ok := e.store.Record(name, History{Value: value, Pos: pos})
	if ok && prev != value.Type {
		e.errors++
		report(log.DefaultContextProvider(), e.logger, log.LevelWarn,
			ErrTypeChange.At(pos).With(
				slog.String("name", name),
				slog.String("from", prev.String()),
				slog.String("to", value.Type.String())))
	}
}

// Inject records a string context variable that does not originate from any
// source document.
func (e *Evaluator) Inject(name, value string) {
	e.store.Record(name, History{Value: StringValue(value), Pos: Pos{File: CommandLine}})
}

// Comment appends a comment entry.
func (e *Evaluator) Comment(text string) { e.store.Comment(text) }

func (e *Evaluator) fail(ctx context.Context, err *Error) {
	e.errors++
	report(ctx, e.logger, log.LevelError, err)
}

func (e *Evaluator) resolve(
	ctx context.Context,
	name string,
	strict bool,
	pos Pos,
) (Value, bool) {
	if v, ok := e.store.Lookup(name); ok {
		return v.Last().Value, true
	}

	if strict {
		e.fail(ctx, ErrUndefinedVariable.At(pos).With(slog.String("name", name)))
	}

	return StringValue(""), false
}

func (e *Evaluator) exec(ctx context.Context, list []Statement) error {
	for _, stmt := range list {
		if err := ctx.Err(); err != nil {
			return ErrCanceled.Wrap(err)
		}

		var err error

		switch s := stmt.(type) {
		case *Include:
			e.logger.TraceContext(ctx, "included", slog.String("path", s.Path))

		case *Comment:
			e.store.Comment(s.Text)

		case *MacroDef:
			e.define(ctx, s)

		case *Assignment:
			err = e.assign(ctx, s)

		case *Call:
			_, err = e.call(ctx, s)

		case *Conditional:
			err = e.conditional(ctx, s)

		default:
			err = ErrInternal.At(stmt.Position()).With(slog.Any("statement", stmt))
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (e *Evaluator) define(ctx context.Context, m *MacroDef) {
	if _, ok := e.macros[m.Name]; ok {
		e.fail(ctx, ErrMacroRedefined.At(m.Pos).With(slog.String("name", m.Name)))

		return
	}

	e.macros[m.Name] = m.Body
}

func (e *Evaluator) assign(ctx context.Context, a *Assignment) error {
	val, err := e.reduce(ctx, a.Value)
	if err != nil {
		return err
	}

	switch a.Op {
	case OpSet:

	case OpDefault:
		if _, ok := e.resolve(ctx, a.Name, false, a.Pos); ok {
			return nil
		}

	case OpAppend, OpPrefix, OpRemove:
		cur, _ := e.resolve(ctx, a.Name, false, a.Pos)

		switch a.Op {
		case OpAppend:
			val = StringValue(cur.Text + val.Text)
		case OpPrefix:
			val = StringValue(val.Text + cur.Text)
		default:
			val = StringValue(strings.ReplaceAll(cur.Text, val.Text, ""))
		}

	default:
		return ErrInternal.At(a.Pos).With(slog.String("op", string(a.Op)))
	}

	e.Record(a.Name, val, a.Pos)

	return nil
}

func (e *Evaluator) conditional(ctx context.Context, c *Conditional) error {
	left, err := e.reduce(ctx, c.Left)
	if err != nil {
		return err
	}

	right, err := e.reduce(ctx, c.Right)
	if err != nil {
		return err
	}

	equal := left.Text == right.Text

	switch c.Op {
	case CompareEq:
	case CompareNeq:
		equal = !equal
	default:
		return ErrInternal.At(c.Pos).With(slog.String("op", string(c.Op)))
	}

	if equal {
		return e.exec(ctx, c.Then)
	}

	return e.exec(ctx, c.Else)
}

// reduce evaluates an expression to a typed value. Only literals and plain
// references keep their own type; everything else is a string.
func (e *Evaluator) reduce(ctx context.Context, x Expr) (Value, error) {
	switch x := x.(type) {
	case *Literal:
		return x.Value, nil

	case *Ref:
		v, _ := e.resolve(ctx, x.Name, true, x.Pos)

		return v, nil

	case *Call:
		s, err := e.call(ctx, x)

		return StringValue(s), err

	case *Text:
		return StringValue(x.Text), nil

	case *Concat:
		var sb strings.Builder

		for _, part := range x.Parts {
			v, err := e.reduce(ctx, part)
			if err != nil {
				return Value{}, err
			}

			sb.WriteString(v.Text)
		}

		return StringValue(sb.String()), nil

	default:
		return Value{}, ErrInternal.With(slog.Any("expr", x))
	}
}

// call reduces the arguments of c left to right and invokes the builtin.
func (e *Evaluator) call(ctx context.Context, c *Call) (string, error) {
	args := make([]string, 0, len(c.Args))

	for _, arg := range c.Args {
		v, err := e.reduce(ctx, arg)
		if err != nil {
			return "", err
		}

		args = append(args, v.Text)
	}

	fn, ok := builtins[c.Name]
	if !ok {
		e.fail(ctx, ErrUnknownFunction.At(c.Pos).With(slog.String("name", c.Name)))

		return "", nil
	}

	e.logger.TraceContext(ctx, "call",
		slog.String("name", c.Name),
		slog.Int("args", len(args)),
		slog.Any("pos", c.Pos))

	return fn(ctx, e, c, args)
}

// invoke runs the body of the named macro against this evaluator.
func (e *Evaluator) invoke(ctx context.Context, name string, pos Pos) error {
	body, ok := e.macros[name]
	if !ok {
		e.fail(ctx, ErrMacroUnknown.At(pos).With(slog.String("name", name)))

		return nil
	}

	if e.depth >= e.maxDepth {
		e.fail(ctx, ErrMaxDepthExceeded.At(pos).With(
			slog.String("name", name),
			slog.Int("max_depth", e.maxDepth)))

		return nil
	}

	e.depth++
	defer func() { e.depth-- }()

	return e.exec(ctx, body)
}
