package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/log"
)

// stdinSource is the special source name for reading from stdin.
const stdinSource = "-"

// stdin is the reader used for [stdinSource].
var stdin io.Reader = os.Stdin

// source is a resolved input: a regular file, or stdin when path is empty.
type source struct {
	path string
	info os.FileInfo
}

func (s source) String() string {
	if s.path == "" {
		return "<stdin>"
	}

	return s.path
}

func (s source) open() (io.ReadCloser, error) {
	if s.path == "" {
		return io.NopCloser(stdin), nil
	}

	return os.Open(s.path)
}

// parse reads and parses the source.
func (s source) parse(ctx context.Context, opts ...lang.Option) (*lang.Program, error) {
	r, err := s.open()
	if err != nil {
		return nil, ErrReadSource.
			With(slog.String("source", s.String())).
			Wrap(err)
	}
	defer r.Close()

	prog, err := lang.ParseReader(ctx, r, opts...)
	if err != nil {
		return nil, ErrParseSource.
			With(slog.String("source", s.String())).
			Wrap(err)
	}

	return prog, nil
}

// resolveSources maps source names to distinct inputs.
//
// An empty list means stdin. Every "-" collapses into a single stdin source
// placed last. Names that refer to the same file (through relative paths or
// symlinks) are read once. Relative names missing from the working directory
// are looked up in each directory of search, in order.
func resolveSources(names, search []string) ([]source, error) {
	if len(names) == 0 {
		return []source{{}}, nil
	}

	srcs := make([]source, 0, len(names))
	hasStdin := false

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		src, err := locate(name, search)
		if err != nil {
			return nil, ErrSourceNotFound.
				With(slog.String("source", name)).
				Wrap(err)
		}

		if slices.ContainsFunc(srcs, func(s source) bool {
			return os.SameFile(s.info, src.info)
		}) {
			continue
		}

		srcs = append(srcs, src)
	}

	if hasStdin {
		srcs = append(srcs, source{})
	}

	return srcs, nil
}

// locate finds name in the working directory or one of the search
// directories and returns its absolute, symlink-free path.
func locate(name string, search []string) (source, error) {
	candidates := []string{name}

	if !filepath.IsAbs(name) {
		for _, dir := range search {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}

	var firstErr error

	for _, path := range candidates {
		src, err := stat(path)
		if err == nil {
			return src, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return source{}, firstErr
}

func stat(path string) (source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return source{}, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return source{}, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return source{}, err
	}

	if info.IsDir() {
		return source{}, &os.PathError{Op: "open", Path: resolved, Err: os.ErrInvalid}
	}

	return source{path: resolved, info: info}, nil
}

// loadSources resolves the global sources followed by names.
func loadSources(ctx context.Context, names []string) ([]source, error) {
	return resolveSources(
		slices.Concat(sourcesFrom(ctx), names),
		searchPathFrom(ctx),
	)
}

// parseSources parses every source concurrently. The result holds one
// program per source, in order. Parsing stops at the first failure.
func parseSources(ctx context.Context, srcs []source) ([]*lang.Program, error) {
	opts := slices.Concat(
		[]lang.Option{lang.WithLogger(log.Default())},
		parseOptionsFrom(ctx),
	)

	progs := make([]*lang.Program, len(srcs))

	g, gctx := errgroup.WithContext(ctx)

	for i, src := range srcs {
		g.Go(func() error {
			prog, err := src.parse(gctx, opts...)
			progs[i] = prog

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return progs, nil
}

// loadProgram parses the global sources and names and merges the results.
func loadProgram(ctx context.Context, names []string) (*lang.Program, error) {
	srcs, err := loadSources(ctx, names)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "load program", slog.Int("sources", len(srcs)))

	progs, err := parseSources(ctx, srcs)
	if err != nil {
		return nil, err
	}

	return lang.Merge(progs...), nil
}
