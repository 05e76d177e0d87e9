package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/lamb/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("parsed", slog.String("file", "main.lamb"), slog.Int("functions", 3))
	logger.Debug("not shown at the default level")

	// Output:
	// level=INFO msg=parsed file=main.lamb functions=3
}

func Example_trace() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.TraceContext(context.Background(), "cache lookup", slog.Bool("cache_hit", true))

	// Output:
	// {"level":"TRACE","msg":"cache lookup","cache_hit":true}
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false)).
		With(slog.String("command", "check"))

	logger.Warn("no input files")

	// Output:
	// level=WARN msg="no input files" command=check
}
