package lang

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/ardnew/mergeconfig/log"
)

// builtin implements a function callable from document text. Arguments are
// already reduced to strings. A non-nil error aborts evaluation.
type builtin func(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error)

// builtins is populated in init because several builtins re-enter the
// evaluator, which itself dispatches through this table.
var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"process": builtinProcess,
		"format":  builtinFormat,
		"shell":   builtinShell,
		"strip":   builtinStrip,
		"diff":    builtinDiff,
		"call":    builtinCall,
		"file":    builtinFile,
		"save":    builtinSave,
		"fail":    builtinFail,
		"comment": builtinComment,
		"major":   builtinVersion("major", (*semver.Version).Major),
		"minor":   builtinVersion("minor", (*semver.Version).Minor),
		"patch":   builtinVersion("patch", (*semver.Version).Patch),
		"relpath": builtinRelpath,
	}
}

// Builtins returns the names of all builtin functions in sorted order.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// sourceDir returns the directory of the document containing pos. Text from
// the command line is located in the base directory, if known, or else the
// working directory.
func (e *Evaluator) sourceDir(pos Pos) string {
	if pos.File != CommandLine && pos.File != "" {
		return filepath.Dir(pos.File)
	}

	if v, ok := e.store.Lookup(VarBase); ok {
		return v.Last().Value.Text
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}

// resolvePath interprets path relative to the document containing pos.
func (e *Evaluator) resolvePath(path string, pos Pos) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(e.sourceDir(pos), path)
}

// builtinProcess evaluates its arguments as an independent document and
// returns the rendered result.
func builtinProcess(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	if e.depth >= e.maxDepth {
		e.fail(ctx, ErrMaxDepthExceeded.At(c.Pos).With(slog.Int("max_depth", e.maxDepth)))

		return "", nil
	}

	dir := e.sourceDir(c.Pos)

	path := c.Pos.File
	if path == "" {
		path = CommandLine
	}

	opts := []Option{
		WithLogger(e.root.With(slog.Any("process", c.Pos))),
		WithMaxDepth(e.maxDepth),
		WithShellTimeout(e.shellTimeout),
		withDepth(e.depth + 1),
	}

	lexer := NewLexer(opts...)
	lexer.AddSource(strings.Join(args, "\n")+"\n", path, AnnotationProcess)

	nested := NewEvaluator(opts...)
	nested.Inject(VarBase, dir)
	nested.Inject(VarTmp, dir)

	generated, ok := e.resolve(ctx, VarGenerated, false, c.Pos)
	if !ok {
		generated = StringValue(dir)
	}

	nested.Inject(VarGenerated, generated.Text)

	e.logger.InfoContext(ctx, "process started", slog.Any("pos", c.Pos))

	parser := NewParser(opts...)

	if err := nested.Run(ctx, parser.Parse(ctx, lexer.All())); err != nil {
		return "", err
	}

	if n := lexer.Errors() + parser.Errors() + nested.Errors(); n > 0 {
		e.fail(ctx, ErrNestedProcess.At(c.Pos).With(slog.Int("errors", n)))

		return "", nil
	}

	e.logger.InfoContext(ctx, "process finished", slog.Any("pos", c.Pos))

	return strings.TrimSpace(Formatter{BaseDir: dir}.String(nested.Entries())), nil
}

// builtinFormat substitutes {key} placeholders in the template (first
// argument) with values from KEY=VALUE lines (remaining arguments).
func builtinFormat(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}

	vars := make(map[string]string)

	for _, line := range strings.Split(strings.Join(args[1:], "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		kv := strings.Split(line, "=")
		if len(kv) != 2 {
			e.fail(ctx, ErrFormatLine.At(c.Pos).With(slog.String("line", line)))

			continue
		}

		vars[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}

	return e.expand(ctx, args[0], vars, c.Pos), nil
}

// expand replaces each {key} field of template with vars[key]. Doubled
// braces stand for literal braces, and anything after ':' or '!' in a field
// is ignored. Unknown keys are kept as {key} and counted once each.
func (e *Evaluator) expand(ctx context.Context, template string, vars map[string]string, pos Pos) string {
	var sb strings.Builder

	missing := make(map[string]bool)

	for i := 0; i < len(template); i++ {
		ch := template[i]

		switch {
		case ch == '{' && strings.HasPrefix(template[i:], "{{"):
			sb.WriteByte('{')
			i++

		case ch == '}' && strings.HasPrefix(template[i:], "}}"):
			sb.WriteByte('}')
			i++

		case ch == '{':
			end := strings.IndexAny(template[i+1:], "{}")
			if end < 0 || template[i+1+end] != '}' || end == 0 {
				e.fail(ctx, ErrFormatTemplate.At(pos).With(slog.Int("offset", i)))
				sb.WriteString(template[i:])

				return sb.String()
			}

			field := template[i+1 : i+1+end]
			key := field

			if k := strings.IndexAny(field, ":!"); k >= 0 {
				key = field[:k]
			}

			if val, ok := vars[key]; ok {
				sb.WriteString(val)
			} else {
				if !missing[key] {
					missing[key] = true
					e.fail(ctx, ErrFormatMissingKey.At(pos).With(slog.String("key", key)))
				}

				sb.WriteString("{" + key + "}")
			}

			i += end + 1

		case ch == '}':
			e.fail(ctx, ErrFormatTemplate.At(pos).With(slog.Int("offset", i)))
			sb.WriteByte(ch)

		default:
			sb.WriteByte(ch)
		}
	}

	return sb.String()
}

// builtinShell runs an external command without shell interpretation and
// returns its standard output.
func builtinShell(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		e.fail(ctx, ErrShellEmpty.At(c.Pos))

		return "", nil
	}

	runCtx, cancel := context.WithTimeout(ctx, e.shellTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()

	attr := slog.String("command", args[0])

	var exitErr *exec.ExitError

	switch {
	case err == nil:
		return stdout.String(), nil

	case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
		e.fail(ctx, ErrShellNotFound.At(c.Pos).With(attr))

		return "", nil

	case ctx.Err() != nil:
		return "", ErrCanceled.Wrap(ctx.Err())

	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		e.fail(ctx, ErrShellTimeout.At(c.Pos).With(attr,
			slog.Duration("timeout", e.shellTimeout)))

		return stdout.String(), nil

	case errors.As(err, &exitErr):
		for line := range strings.Lines(stderr.String()) {
			e.logger.ErrorContext(ctx, strings.TrimRight(line, "\r\n"), attr)
		}

		e.fail(ctx, ErrShellExit.At(c.Pos).With(attr,
			slog.Int("status", exitErr.ExitCode())))

		return stdout.String(), nil

	default:
		err := ErrFatal.Wrap(err).At(c.Pos).With(attr)
		report(ctx, e.logger, log.LevelFatal, err)

		return "", err
	}
}

func builtinStrip(_ context.Context, _ *Evaluator, _ *Call, args []string) (string, error) {
	return strings.TrimSpace(strings.Join(args, "")), nil
}

// builtinDiff returns the unified diff of exactly two texts.
func builtinDiff(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	if len(args) != 2 {
		e.fail(ctx, ErrArgumentCount.At(c.Pos).With(
			slog.String("name", c.Name), slog.Int("want", 2), slog.Int("got", len(args))))

		return "", nil
	}

	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:       difflib.SplitLines(args[0]),
		B:       difflib.SplitLines(args[1]),
		Context: 6,
	})
	if err != nil {
		return "", ErrInternal.Wrap(err).At(c.Pos)
	}

	return out, nil
}

// builtinCall invokes each named macro in order.
func builtinCall(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	for _, arg := range args {
		name := strings.TrimSpace(arg)
		if name == "" {
			e.fail(ctx, ErrMacroUnnamed.At(c.Pos))

			continue
		}

		if err := e.invoke(ctx, name, c.Pos); err != nil {
			return "", err
		}
	}

	return "", nil
}

// builtinFile returns the concatenated contents of the named files.
func builtinFile(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	var sb strings.Builder

	for _, arg := range args {
		data, err := os.ReadFile(e.resolvePath(arg, c.Pos))
		if err != nil {
			e.fail(ctx, ErrReadFile.Wrap(err).At(c.Pos))

			continue
		}

		sb.Write(data)
	}

	return sb.String(), nil
}

// builtinSave writes the remaining arguments to the file named by the first
// and returns its absolute path.
func builtinSave(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		e.fail(ctx, ErrSaveFile.At(c.Pos).With(slog.String("reason", "empty path")))

		return "", nil
	}

	path, err := filepath.Abs(e.resolvePath(args[0], c.Pos))
	if err != nil {
		e.fail(ctx, ErrSaveFile.Wrap(err).At(c.Pos))

		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.fail(ctx, ErrSaveFile.Wrap(err).At(c.Pos))

		return "", nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(args[1:], "")), 0o644); err != nil {
		e.fail(ctx, ErrSaveFile.Wrap(err).At(c.Pos))

		return "", nil
	}

	return path, nil
}

// builtinFail logs its message at the most severe level. It neither counts
// an error nor stops evaluation.
func builtinFail(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	e.logger.FatalContext(ctx, strings.TrimSpace(strings.Join(args, "")),
		slog.Any("pos", c.Pos))

	return "", nil
}

func builtinComment(_ context.Context, e *Evaluator, _ *Call, args []string) (string, error) {
	msg := strings.Join(args, "")
	e.store.Comment(msg)

	return msg, nil
}

// builtinVersion returns a builtin extracting one component of a semantic
// version.
func builtinVersion(part string, get func(*semver.Version) uint64) builtin {
	return func(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
		if len(args) == 0 {
			e.fail(ctx, ErrArgumentCount.At(c.Pos).With(
				slog.String("name", part), slog.Int("want", 1), slog.Int("got", 0)))

			return "", nil
		}

		v, err := semver.NewVersion(strings.TrimSpace(args[0]))
		if err != nil {
			e.fail(ctx, ErrVersion.Wrap(err).At(c.Pos).With(slog.String("version", args[0])))

			return "", nil
		}

		return strconv.FormatUint(get(v), 10), nil
	}
}

// builtinRelpath expresses the first path relative to the second.
func builtinRelpath(ctx context.Context, e *Evaluator, c *Call, args []string) (string, error) {
	if len(args) != 2 {
		e.fail(ctx, ErrArgumentCount.At(c.Pos).With(
			slog.String("name", c.Name), slog.Int("want", 2), slog.Int("got", len(args))))

		return "", nil
	}

	target, err := filepath.Abs(args[0])
	if err == nil {
		var base string

		if base, err = filepath.Abs(args[1]); err == nil {
			var rel string

			if rel, err = filepath.Rel(base, target); err == nil {
				return rel, nil
			}
		}
	}

	e.fail(ctx, ErrRelativePath.Wrap(err).At(c.Pos))

	return "", nil
}
