// Package lang implements a preprocessor for Kconfig-style configuration
// documents.
//
// A document is a sequence of assignments, comments, includes,
// conditionals, macro definitions and builtin function calls. Processing
// runs in three stages:
//
//   - [Lexer] turns one or more sources into a token stream, splicing in
//     included files depth-first and rejecting include cycles.
//   - [Parser] builds a [Document] from the tokens, discarding tokens that
//     do not fit the grammar.
//   - [Evaluator] executes the document into an ordered list of [Entry]
//     values with the full assignment history of every variable.
//
// [Formatter] renders the result as configuration text.
//
// # Syntax
//
//	# a comment
//	# NAME is not set       unset a variable (state n)
//	NAME=y                  state (y, m or n), integer or 0x hex literal
//	NAME='text'             string; "text" works too
//	NAME=%(OTHER)           value of another variable, with its type
//	NAME='a'.%(B).%(f 'x')  concatenation
//	NAME?=1                 set only if NAME has no value yet
//	NAME+='x'               append; =+ prepends and -= removes
//	%(include "file.conf")
//	%(ifeq %(A), 'y') ... %(else) ... %(endif)
//	%(define "name") ... %(endef)
//	%(call 'name')
//
// # Errors
//
// Almost every problem is recoverable: it is logged, counted by the stage
// that found it ([Lexer.Errors], [Parser.Errors], [Evaluator.Errors]) and
// processing continues. A run is degraded if any count is non-zero. Only a
// fatal condition, such as an external command that cannot be started, is
// returned by [Evaluator.Run].
//
// # Builtins
//
// process, format, shell, strip, diff, call, file, save, fail, comment,
// major, minor, patch and relpath. See [Builtins].
package lang
