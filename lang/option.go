package lang

import (
	"time"

	"github.com/ardnew/mergeconfig/log"
)

// DefaultMaxDepth is the default maximum depth of nested macro invocations
// and nested process documents.
// Users may modify this before constructing an [Evaluator].
var DefaultMaxDepth = 100

// DefaultShellTimeout bounds the run time of every external command started
// by the shell builtin.
var DefaultShellTimeout = 5 * time.Second

// settings is shared by [Lexer], [Parser] and [Evaluator]. Options that do
// not apply to a component are ignored by it.
type settings struct {
	root         log.Logger
	logger       log.Logger
	maxDepth     int
	shellTimeout time.Duration
	depth        int
}

// Option configures a [Lexer], [Parser] or [Evaluator].
type Option func(*settings)

// WithLogger sets the structured logger.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMaxDepth sets the maximum nesting depth of macro invocations and
// process documents.
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		s.maxDepth = depth
	}
}

// WithShellTimeout sets the timeout applied to each shell builtin call.
func WithShellTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.shellTimeout = timeout
	}
}

// withDepth starts an evaluator at the given nesting depth.
func withDepth(depth int) Option {
	return func(s *settings) {
		s.depth = depth
	}
}

func makeSettings(component string, opts ...Option) settings {
	s := settings{
		maxDepth:     DefaultMaxDepth,
		shellTimeout: DefaultShellTimeout,
	}

	for _, opt := range opts {
		opt(&s)
	}

	s.root = s.logger

	// A nested run shares the caller's logger; its tag is replaced.
	if s.logger.Logger != nil {
		s.logger = s.logger.Wrap(log.WithComponent(component))
	}

	return s
}
