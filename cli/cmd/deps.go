package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/mergeconfig/lang"
)

// Deps prints the inputs and every file they include, depth-first in
// include order, relative to the base directory and separated by spaces.
type Deps struct {
	Files []string `arg:"" help:"Configuration fragments" name:"file" type:"existingfile"`
}

// Run executes the deps command.
func (d *Deps) Run(ctx context.Context, opts *Options) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	lexer, err := opts.lexer(ctx, d.Files)
	if err != nil {
		return err
	}

	lexer.Drain()

	base, err := opts.baseDir(d.Files)
	if err != nil {
		return ErrReadInput.Wrap(err)
	}

	w, err := opts.output()
	if err != nil {
		return err
	}

	defer w.Close()

	_, err = fmt.Fprintln(w, strings.Join(lang.Dependencies(lexer.Hierarchy(), base), " "))
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
