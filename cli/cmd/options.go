package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ardnew/mergeconfig/lang"
	"github.com/ardnew/mergeconfig/log"
)

// stdio is the output path denoting standard output.
const stdio = "-"

// Options holds the flags shared by every command that reads configuration
// fragments.
type Options struct {
	Output       string        `default:"-"   help:"Output destination ('-' for stdout)"          placeholder:"PATH" short:"o"`
	BaseDir      string        `              help:"Base directory (default: dir of first file)" placeholder:"DIR"  short:"b"`
	TmpDir       string        `              help:"Temporary directory (default: base dir)"     placeholder:"DIR"  short:"t"`
	Prepend      string        `              help:"Text processed before the files"             placeholder:"TEXT" short:"p"`
	Append       string        `              help:"Text processed after the files"              placeholder:"TEXT" short:"a"`
	StripHistory bool          `              help:"Omit the history of reassigned variables"`
	NoHeader     bool          `              help:"Omit the include structure header"`
	MaxDepth     int           `default:"100" help:"Maximum nesting of macros and subprocesses"`
	ShellTimeout time.Duration `default:"5s"  help:"Timeout of each shell function call"`
}

func (o *Options) langOptions() []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(o.MaxDepth),
		lang.WithShellTimeout(o.ShellTimeout),
	}
}

// hasText reports whether prepend or append text was given.
func (o *Options) hasText() bool { return o.Prepend != "" || o.Append != "" }

// lexer returns a Lexer over the prepend text, files and append text.
func (o *Options) lexer(ctx context.Context, files []string) (*lang.Lexer, error) {
	lexer := lang.NewLexer(o.langOptions()...)

	if o.Prepend != "" {
		lexer.Prepend(o.Prepend)
	}

	for _, path := range uniqueFiles(ctx, files) {
		if err := lexer.AddFile(path); err != nil {
			return nil, ErrReadInput.Wrap(err)
		}

		log.DebugContext(ctx, "input added", slog.String("path", path))
	}

	if o.Append != "" {
		lexer.Append(o.Append)
	}

	return lexer, nil
}

// baseDir returns the absolute base directory: --base-dir if given, else
// the directory of the first file, else the working directory.
func (o *Options) baseDir(files []string) (string, error) {
	switch {
	case o.BaseDir != "":
		return filepath.Abs(o.BaseDir)
	case len(files) > 0:
		abs, err := filepath.Abs(files[0])
		if err != nil {
			return "", err
		}

		return filepath.Dir(abs), nil
	default:
		return os.Getwd()
	}
}

// tmpDir returns the absolute temporary directory, defaulting to base.
func (o *Options) tmpDir(base string) (string, error) {
	if o.TmpDir == "" {
		return base, nil
	}

	return filepath.Abs(o.TmpDir)
}

// output opens the output destination. Parent directories of an output file
// are created as needed.
func (o *Options) output() (io.WriteCloser, error) {
	if o.Output == "" || o.Output == stdio {
		return nopCloser{os.Stdout}, nil
	}

	if err := os.MkdirAll(filepath.Dir(o.Output), 0o755); err != nil {
		return nil, ErrWriteOutput.Wrap(err).With(slog.String("path", o.Output))
	}

	file, err := os.Create(o.Output)
	if err != nil {
		return nil, ErrWriteOutput.Wrap(err).With(slog.String("path", o.Output))
	}

	return file, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
