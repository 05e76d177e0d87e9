package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lamb/lang"
)

type (
	kongContextKey  struct{}
	sourcesKey      struct{}
	searchPathKey   struct{}
	parseOptionsKey struct{}
	outputKey       struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongContextKey{}).(*kong.Context)

	return ktx
}

// WithSources returns a new context.Context holding source names that every
// command reads in addition to its own arguments.
func WithSources(ctx context.Context, names []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, names)
}

func sourcesFrom(ctx context.Context) []string {
	names, _ := ctx.Value(sourcesKey{}).([]string)

	return names
}

// WithSearchPath returns a new context.Context holding the directories
// searched for relative source names.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// WithParseOptions returns a new context.Context holding the options passed
// to the parser for every source.
func WithParseOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, parseOptionsKey{}, opts)
}

func parseOptionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(parseOptionsKey{}).([]lang.Option)

	return opts
}

// WithOutput returns a new context.Context directing command output to w.
// Commands write to os.Stdout when no output is set.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}
