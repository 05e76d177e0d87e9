package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parse results keyed by a hash of the source text and
// the options that affect the resulting tree.
var globalCache sync.Map

// entry is a single cached parse result. The first caller to load an entry
// performs the parse; concurrent callers for the same key wait on once.
type entry struct {
	once sync.Once
	prog *Program
	err  error
}

// cacheKey combines the source hash with the depth bound, the only option
// that can change a parse result.
func cacheKey(source string, cfg config) uint64 {
	return xxh3.HashStringSeed(source, uint64(cfg.maxDepth))
}

// ParseReader reads all of r and parses it as a program.
// Results are shared through the same cache as [ParseString].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	// Wrap reader with async read-ahead so reading overlaps with hashing.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseString(ctx, string(data), cfg)
}

// ParseString parses source as a program like [Parse], but accepts options
// and caches the result process-wide. Programs returned from the cache are
// shared between callers and must be treated as immutable.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Program, error) {
	return parseString(ctx, source, makeConfig(opts...))
}

func parseString(ctx context.Context, source string, cfg config) (*Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.noCache {
		cfg.logger.TraceContext(ctx, "cache bypass",
			slog.Int("max_depth", cfg.maxDepth))

		prog, err := parseProgram(source, cfg)
		cfg.logger.TraceContext(ctx, "parse complete", logValue(prog, err)...)

		return prog, err
	}

	key := cacheKey(source, cfg)

	value, hit := globalCache.LoadOrStore(key, new(entry))
	ent := value.(*entry)

	cfg.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(key, 16)),
		slog.Bool("cache_hit", hit),
	)

	ent.once.Do(func() {
		ent.prog, ent.err = parseProgram(source, cfg)
		cfg.logger.TraceContext(ctx, "parse complete", logValue(ent.prog, ent.err)...)
	})

	return ent.prog, ent.err
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
