package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/mergeconfig/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "tokens", "tree", "format", "vars", "clear", "quit"}

// directives are the keywords of the language, completed with the opening
// "%(" included.
var directives = []string{
	"%(include", "%(ifeq", "%(ifneq", "%(else)", "%(endif)", "%(define", "%(endef)",
}

// isWordBoundary reports whether r delimits words for completion purposes:
// whitespace, argument separators, concatenation and assignment operators,
// and quotes. The characters '%', '(' and ')' belong to words so that
// directives and references complete as a whole.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', ',', '.', '=', '+', '?', '-', '"', '\'':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completions available in dump mode: directives,
// builtin function calls, and every variable seen, both bare and as a
// value reference.
func candidates(vars map[string]struct{}) []string {
	names := slices.Clone(directives)

	for _, fn := range lang.Builtins() {
		names = append(names, "%("+fn)
	}

	for _, v := range slices.Sorted(maps.Keys(vars)) {
		names = append(names, v, "%("+v+")")
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. An empty word yields no matches, leaving the hint line visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	list []string,
	wordStart, wordEnd int,
) {
	word, wordStart, wordEnd := wordBounds(m.input.Value(), m.input.Position())
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl {
		list = ctrlCommands
	} else {
		list = candidates(m.vars)
	}

	return fuzzy.Find(word, list), list, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		last := i == len(matches)-1

		if i > 0 && used+entryWidth+ellipsisWidth > width && !last {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
