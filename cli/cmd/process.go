package cmd

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/mergeconfig/lang"
	"github.com/ardnew/mergeconfig/log"
)

// Process resolves configuration fragments into a single configuration.
type Process struct {
	Files []string `arg:"" help:"Configuration fragments, processed in order" name:"file" optional:"" type:"existingfile"`
}

// Run executes the process command.
//
// The output is written even when recoverable errors were found; the error
// count is then reported as [ErrDegraded].
func (p *Process) Run(ctx context.Context, opts *Options) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if len(p.Files) == 0 && !opts.hasText() {
		return ErrNoInput
	}

	lexer, err := opts.lexer(ctx, p.Files)
	if err != nil {
		return err
	}

	base, err := opts.baseDir(p.Files)
	if err != nil {
		return ErrReadInput.Wrap(err)
	}

	tmp, err := opts.tmpDir(base)
	if err != nil {
		return ErrReadInput.Wrap(err)
	}

	eval := lang.NewEvaluator(opts.langOptions()...)
	eval.Inject(lang.VarBase, base)
	eval.Inject(lang.VarTmp, tmp)

	if opts.Output != "" && opts.Output != stdio {
		out, err := filepath.Abs(opts.Output)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		eval.Inject(lang.VarOutputDir, filepath.Dir(out))
		eval.Inject(lang.VarOutputName, filepath.Base(out))
	}

	log.DebugContext(ctx, "processing",
		slog.String("base", base),
		slog.String("tmp", tmp),
		slog.Int("files", len(p.Files)),
	)

	parser := lang.NewParser(opts.langOptions()...)

	if err := eval.Run(ctx, parser.Parse(ctx, lexer.All())); err != nil {
		return err
	}

	w, err := opts.output()
	if err != nil {
		return err
	}

	err = render(w, opts, lexer.Hierarchy(), base, eval.Entries())
	if cerr := w.Close(); err == nil && cerr != nil {
		err = cerr
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("path", opts.Output))
	}

	if n := lexer.Errors() + parser.Errors() + eval.Errors(); n > 0 {
		return ErrDegraded.With(
			slog.String("output", opts.Output),
			slog.Int("errors", n),
		)
	}

	log.InfoContext(ctx, "processing done", slog.String("output", opts.Output))

	return nil
}

// render writes the generated-file header, the include structure (unless
// disabled) and the formatted entries.
func render(
	w io.Writer,
	opts *Options,
	forest []*lang.IncludeTree,
	base string,
	entries []lang.Entry,
) error {
	if _, err := io.WriteString(w, lang.GeneratedHeader+"\n"); err != nil {
		return err
	}

	if !opts.NoHeader {
		if _, err := io.WriteString(w, "# Files include structure:\n"); err != nil {
			return err
		}

		if err := lang.WriteHierarchy(w, forest, base); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	return lang.Formatter{BaseDir: base, StripHistory: opts.StripHistory}.Format(w, entries)
}
