package cmd

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/mergeconfig/cli/cmd/repl"
	"github.com/ardnew/mergeconfig/lang"
	"github.com/ardnew/mergeconfig/log"
)

// DumpFormatIdentifier is the kong variable identifier containing the
// comma-separated names of the dump formats.
const DumpFormatIdentifier = "dumpFormatEnum"

// DumpFlags are the flags of the [Tokens] and [Tree] commands.
type DumpFlags struct {
	Format string   `default:"text" enum:"${dumpFormatEnum}" help:"Dump format (${enum})" short:"f"`
	Indent int      `default:"2"                              help:"Indent width of nested output"`
	Files  []string `arg:""                                   help:"Configuration fragments (interactive when omitted)" name:"file" optional:"" type:"existingfile"`
}

// Tokens prints the token stream of the inputs, with includes spliced in.
type Tokens struct {
	DumpFlags `embed:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context, opts *Options) error {
	return t.run(ctx, opts, repl.Tokens)
}

// Tree prints the statement tree parsed from the inputs.
type Tree struct {
	DumpFlags `embed:""`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context, opts *Options) error {
	return t.run(ctx, opts, repl.Tree)
}

func (d *DumpFlags) run(ctx context.Context, opts *Options, mode repl.Mode) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format := lang.DumpFormat(d.Format)

	if len(d.Files) == 0 && !opts.hasText() {
		return repl.Run(ctx, repl.Config{
			Mode:     mode,
			Format:   format,
			Indent:   d.Indent,
			CacheDir: cacheDirFrom(ctx),
			Options:  opts.langOptions(),
		}, log.Default().Component("repl"))
	}

	lexer, err := opts.lexer(ctx, d.Files)
	if err != nil {
		return err
	}

	tokens := slices.Collect(lexer.All())
	errs := lexer.Errors()

	w, err := opts.output()
	if err != nil {
		return err
	}

	defer w.Close()

	switch mode {
	case repl.Tree:
		parser := lang.NewParser(opts.langOptions()...)
		doc := parser.Parse(ctx, slices.Values(tokens))
		errs += parser.Errors()
		err = lang.DumpTree(ctx, w, doc, format, d.Indent)

	default:
		err = lang.DumpTokens(ctx, w, tokens, format, d.Indent)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if errs > 0 {
		log.WarnContext(ctx, "dump finished with errors",
			slog.String("mode", mode.String()),
			slog.Int("errors", errs))
	}

	return nil
}

// cacheDirFrom returns the cache directory defined in the kong model, or
// the empty string (the working directory) if there is none.
func cacheDirFrom(ctx context.Context) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[CacheIdentifier]
}
