package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// signatures lists the parameters of every builtin function and of the
// directives that take arguments. A "..." prefix marks a variadic parameter.
var signatures = map[string][]string{
	"include": {"path"},
	"define":  {"name"},
	"ifeq":    {"left", "right"},
	"ifneq":   {"left", "right"},
	"process": {"...lines"},
	"format":  {"template", "...lines"},
	"shell":   {"command", "...args"},
	"strip":   {"...text"},
	"diff":    {"old", "new"},
	"call":    {"...macros"},
	"file":    {"...paths"},
	"save":    {"path", "...content"},
	"fail":    {"...message"},
	"comment": {"...message"},
	"major":   {"version"},
	"minor":   {"version"},
	"patch":   {"version"},
	"relpath": {"path", "base"},
}

func signatureOf(name string) []string { return signatures[name] }

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the innermost call enclosing the cursor.
type functionCall struct {
	name     string
	argIndex int // 0-based
	inCall   bool
}

// detectCall finds the innermost "%(name" opened before cursor and not yet
// closed, and the index of the argument under the cursor. Quoted text is
// skipped, so commas and parentheses inside strings are ignored.
func detectCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	var (
		stack []functionCall
		quote byte
	)

	for i := 0; i < cursor; i++ {
		c := input[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}

		case c == '"' || c == '\'':
			quote = c

		case c == '%' && i+1 < len(input) && input[i+1] == '(':
			start := i + 2
			for start < len(input) && (input[start] == ' ' || input[start] == '\t') {
				start++
			}

			end := start
			for end < len(input) && isNameByte(input[end]) {
				end++
			}

			stack = append(stack, functionCall{name: input[start:end], inCall: true})
			i = max(end, i+2) - 1

		case c == ')':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case c == ',':
			if len(stack) > 0 {
				stack[len(stack)-1].argIndex++
			}
		}
	}

	if len(stack) == 0 {
		return functionCall{}
	}

	return stack[len(stack)-1]
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// renderSignatureHint renders name(params...) with the parameter at argIdx
// highlighted. A variadic parameter stays highlighted for every later
// argument.
func renderSignatureHint(name string, params []string, argIdx int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")
		if (variadic && argIdx >= i) || (!variadic && argIdx == i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
