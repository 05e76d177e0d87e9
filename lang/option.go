package lang

import (
	"github.com/ardnew/lamb/log"
)

// DefaultMaxDepth is the default bound on expression nesting. Deeper input
// fails with [ErrMaxDepthExceeded] instead of exhausting the goroutine stack.
// Pass [WithMaxDepth](0) to remove the bound.
const DefaultMaxDepth = 10000

// config holds parser configuration.
type config struct {
	logger   log.Logger // structured logger (does not affect cache key)
	maxDepth int
	noCache  bool
}

// Option configures parsing behavior.
type Option func(*config)

// WithMaxDepth bounds the nesting depth of expressions. Input nested deeper
// than depth fails with [ErrMaxDepthExceeded]. Zero disables the bound.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = max(depth, 0)
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCache controls whether [ParseString] and [ParseReader] consult the
// process-wide parse cache. Caching is enabled by default.
func WithCache(enable bool) Option {
	return func(c *config) {
		c.noCache = !enable
	}
}

func makeConfig(opts ...Option) config {
	c := config{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
