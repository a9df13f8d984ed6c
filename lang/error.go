package lang

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/mergeconfig/log"
)

// Predefined errors (sentinel values).
//
// Only [ErrFatal], [ErrInternal], [ErrCanceled] and [ErrReadSource] are ever
// returned. The rest describe recoverable conditions: they are logged and
// counted, and processing continues.
var (
	ErrFatal    = NewError("fatal error")
	ErrInternal = NewError("internal error")
	ErrCanceled = NewError("evaluation canceled")

	ErrReadSource = NewError("read source")

	ErrIllegalCharacter  = NewError("illegal character")
	ErrRelativeInclude   = NewError("relative include from command-line text")
	ErrRecursiveInclude  = NewError("recursive include")
	ErrIncludeNotFound   = NewError("include not found")
	ErrSyntax            = NewError("syntax error")
	ErrUnexpectedEOF     = NewError("syntax error at EOF")
	ErrUndefinedVariable = NewError("undefined variable")
	ErrTypeChange        = NewError("type changed on reassignment")
	ErrMacroRedefined    = NewError("macro redefined")
	ErrMacroUnknown      = NewError("unknown macro")
	ErrMacroUnnamed      = NewError("macro name is empty")
	ErrMaxDepthExceeded  = NewError("maximum macro depth exceeded")
	ErrUnknownFunction   = NewError("unknown function")
	ErrArgumentCount     = NewError("wrong number of arguments")
	ErrNestedProcess     = NewError("nested document has errors")
	ErrFormatLine        = NewError("malformed format variable")
	ErrFormatTemplate    = NewError("malformed format template")
	ErrFormatMissingKey  = NewError("format key not provided")
	ErrShellEmpty        = NewError("empty shell command")
	ErrShellNotFound     = NewError("shell command not found")
	ErrShellExit         = NewError("shell command failed")
	ErrShellTimeout      = NewError("shell command timed out")
	ErrReadFile          = NewError("read file")
	ErrSaveFile          = NewError("save file")
	ErrVersion           = NewError("invalid version")
	ErrRelativePath      = NewError("relative path")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
//
// Errors produced by [Error.Wrap] and [Error.With] are new values, so
// identity comparison alone would never match the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || len(t.attrs) != 0 {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// At attaches a source position to the error.
func (e *Error) At(pos Pos) *Error {
	return e.With(slog.Any("pos", pos))
}

// report logs err at the given level using the error message as the log
// message.
func report(ctx context.Context, logger log.Logger, level log.Level, err *Error) {
	attrs := err.attrs
	if err.err != nil {
		attrs = append([]slog.Attr{slog.String("cause", err.err.Error())}, attrs...)
	}

	switch level {
	case log.LevelWarn:
		logger.WarnContext(ctx, err.msg, attrs...)
	case log.LevelFatal:
		logger.FatalContext(ctx, err.msg, attrs...)
	default:
		logger.ErrorContext(ctx, err.msg, attrs...)
	}
}
