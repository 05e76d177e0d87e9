package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ardnew/lamb/lang"
)

// Deps prints the functions that a function calls, directly or
// transitively, dependencies first.
type Deps struct {
	Name string `arg:"" help:"Function name, e.g. f or m::f." name:"name"`

	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:""`
}

// Run executes the deps command.
func (d *Deps) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := loadProgram(ctx, d.Files)
	if err != nil {
		return err
	}

	deps, err := prog.Dependencies(d.Name)
	if errors.Is(err, lang.ErrFunctionNotFound) {
		return ErrNoFunction.With(slog.String("name", d.Name)).Wrap(err)
	}

	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	for _, name := range deps {
		fmt.Fprintln(w, name)
	}

	return nil
}
