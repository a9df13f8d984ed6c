package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/mergeconfig/lang"
	"github.com/ardnew/mergeconfig/log"
)

// Mode selects the stage whose output the REPL prints for each line.
type Mode int

const (
	Tokens Mode = iota
	Tree
)

func (m Mode) String() string {
	if m == Tree {
		return "tree"
	}

	return "tokens"
}

// Config configures a REPL session.
type Config struct {
	Mode     Mode
	Format   lang.DumpFormat
	Indent   int
	CacheDir string
	Options  []lang.Option
}

const (
	dumpPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help             Print this cruft
  tokens           Dump the tokens of each line
  tree             Dump the statement tree of each line
  format <name>    Select the dump format (text, json, yaml)
  vars             List the variables seen so far
  clear            Clear screen
  quit             Exit REPL

Usage:
  Type a line of configuration text to dump it
  Completions for directives, functions and variables appear as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between dump and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeDump inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

func formatCommand(input string) string {
	return promptStyle.Render(dumpPrompt) + inputStyle.Render(input)
}

func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	logger       log.Logger
	history      *History
	vars         map[string]struct{} // variable names seen in dumped lines
	opts         []lang.Option
	format       lang.DumpFormat
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	preTabText   string        // input text before tab-cycling began
	dumpText     string
	ctrlText     string
	historyIdx   int
	indent       int
	wordStart    int // byte offset of current word start
	wordEnd      int // byte offset of current word end
	suggIdx      int // selected candidate index
	preTabCursor int // cursor position before tab-cycling began
	width        int // terminal width for ellipsization
	dumpCursor   int
	ctrlCursor   int
	stage        Mode
	mode         inputMode
	tabActive    bool // whether user is tab-cycling
	quitting     bool
}

// Run starts an interactive session that dumps each line entered.
func Run(ctx context.Context, cfg Config, logger log.Logger) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("mode", cfg.Mode.String()),
		slog.String("format", string(cfg.Format)),
		slog.String("cache_dir", cfg.CacheDir),
	)

	history := NewHistory(filepath.Join(cfg.CacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()))

	p := tea.NewProgram(newModel(ctx, cfg, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	cfg Config,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(dumpPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	format := cfg.Format
	if format == "" {
		format = lang.DumpText
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		logger:     logger,
		history:    history,
		vars:       make(map[string]struct{}),
		opts:       cfg.Options,
		format:     format,
		historyIdx: history.Len(),
		indent:     cfg.Indent,
		width:      defaultWidth,
		stage:      cfg.Mode,
		mode:       modeDump,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(dumpPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()
	call := detectCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type a line to dump its " + m.stage.String() +
			" as " + string(m.format) + ", or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: help, tokens, tree, format, vars, clear, quit (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case call.inCall && m.mode == modeDump && signatureOf(call.name) != nil:
		b.WriteString(renderSignatureHint(call.name, signatureOf(call.name), call.argIndex))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modeDump {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeDump), nil

	case tea.KeyRunes:
		// Space is a "breaking" key while tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step (1 forward, -1 backward).
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals it. Deletions and
// cursor movement pass false so that editing never completes unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.dumpText, m.dumpCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")

	_, _ = m.history.WriteWithMode(input, m.mode)
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("input", input))

		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl dump", slog.String("input", input))

	echoCmd := tea.Println(formatCommand(input))

	out, errs, err := m.dump(input)
	if err != nil {
		return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	out = strings.TrimSuffix(out, "\n")

	if errs > 0 {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(resultStyle.Render(out)),
			tea.Println(errorStyle.Render(fmt.Sprintf("%d error(s)", errs))),
		)
	}

	return m, tea.Sequence(echoCmd, tea.Println(resultStyle.Render(out)))
}

// dump tokenizes (and for [Tree], parses) a line of command-line text and
// renders it in the selected format. It also returns the number of
// recoverable errors found.
func (m model) dump(input string) (string, int, error) {
	ctx := m.ctxFunc()

	lexer := lang.NewLexer(m.opts...)
	lexer.AddSource(input, lang.CommandLine, "")

	tokens := slices.Collect(lexer.All())
	m.learn(tokens)

	var (
		sb   strings.Builder
		err  error
		errs = lexer.Errors()
	)

	switch m.stage {
	case Tree:
		parser := lang.NewParser(m.opts...)
		doc := parser.Parse(ctx, slices.Values(tokens))
		errs += parser.Errors()
		err = lang.DumpTree(ctx, &sb, doc, m.format, m.indent)

	default:
		err = lang.DumpTokens(ctx, &sb, tokens, m.format, m.indent)
	}

	return sb.String(), errs, err
}

// learn remembers the variable names in tokens for completion.
func (m model) learn(tokens []lang.Token) {
	for _, tok := range tokens {
		switch tok.Kind {
		case lang.TokenVariable, lang.TokenValueRef, lang.TokenUnset:
			m.vars[tok.Value] = struct{}{}
		}
	}
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCtrlCommand(input))

	cmd, args := parts[0], parts[1:]

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "tokens":
		m.stage = Tokens

		return m, echoCmd

	case "tree":
		m.stage = Tree

		return m, echoCmd

	case "f", "format":
		if len(args) != 1 || !slices.Contains(lang.DumpFormats(), args[0]) {
			return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render(
				"usage: format "+strings.Join(lang.DumpFormats(), "|"))))
		}

		m.format = lang.DumpFormat(args[0])

		return m, echoCmd

	case "v", "vars":
		return m, tea.Sequence(echoCmd, tea.Println(m.listVars()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) listVars() string {
	if len(m.vars) == 0 {
		return hintStyle.Render("  (none)")
	}

	var b strings.Builder

	for _, name := range slices.Sorted(maps.Keys(m.vars)) {
		b.WriteString("  " + name + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historyStep moves through history by dir (-1 older, 1 newer). With
// sameMode set, entries of the other input mode are skipped; otherwise the
// input mode follows the entry. Stepping past the newest entry clears the
// input.
func (m model) historyStep(dir int, sameMode bool) model {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		entry, err := m.history.GetEntry(i)
		if err != nil || (sameMode && entry.Mode != m.mode) {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to the specified mode, preserving the input of each.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeDump {
		m.dumpText, m.dumpCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	if mode == modeDump {
		m.input.Prompt = promptStyle.Render(dumpPrompt)
		m.input.SetValue(m.dumpText)
		m.input.SetCursor(m.dumpCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
