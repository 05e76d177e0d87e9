package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/log"
)

// Check parses each source and reports whether it is well formed.
type Check struct {
	Quiet bool `help:"Report failures only." short:"q"`

	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:""`
}

// Run executes the check command. Every source is checked even after a
// failure; the command fails if any source does.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	srcs, err := loadSources(ctx, c.Files)
	if err != nil {
		return err
	}

	progs := make([]*lang.Program, len(srcs))
	errs := make([]error, len(srcs))

	var g errgroup.Group

	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, src := range srcs {
		g.Go(func() error {
			progs[i], errs[i] = src.parse(ctx, parseOptionsFrom(ctx)...)

			return nil
		})
	}

	_ = g.Wait()

	w := outputFrom(ctx)
	failed := 0

	for i, src := range srcs {
		if errs[i] != nil {
			failed++

			fmt.Fprintf(w, "%s:%s\n", src, diagnostic(errs[i]))

			continue
		}

		if !c.Quiet {
			fmt.Fprintf(w, "%s: ok (%d functions)\n", src, len(progs[i].Functions))
		}
	}

	log.DebugContext(ctx, "check complete",
		slog.Int("sources", len(srcs)),
		slog.Int("failed", failed),
	)

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.Int("sources", len(srcs)),
			slog.Int("failed", failed),
		)
	}

	return nil
}

// diagnostic renders err for display after a source name: a parse error
// yields "line:col: message" with its snippet, anything else " message".
func diagnostic(err error) string {
	if pe := (*lang.ParseError)(nil); errors.As(err, &pe) {
		return pe.Error()
	}

	return " " + err.Error()
}
