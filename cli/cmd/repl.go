package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/lamb/cli/cmd/repl"
	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/log"
)

// Repl starts an interactive session.
type Repl struct {
	Files []string `arg:"" help:"Source files to preload or '-' for stdin." name:"file" optional:""`
}

// Run executes the repl command. Without sources the session starts with
// no definitions.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog := &lang.Program{Functions: []*lang.FunctionDef{}}

	if len(r.Files)+len(sourcesFrom(ctx)) > 0 {
		prog, err = loadProgram(ctx, r.Files)
		if err != nil {
			return err
		}
	}

	cacheDir := ""
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	logger := log.Default().With(slog.String("command", "repl"))

	return repl.Run(ctx, prog, cacheDir, logger, parseOptionsFrom(ctx)...)
}
