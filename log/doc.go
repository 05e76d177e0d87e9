// Package log provides a simplified structured logging interface based on
// [log/slog], with an additional [LevelTrace] below debug.
//
// Loggers are immutable values configured with functional options when
// they are created:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("parsed", slog.Int("functions", 3))
//
// Every level has a context-aware variant. The context-unaware variants use
// [DefaultContextProvider].
//
// With pretty output enabled (the default), records are styled with
// lipgloss for terminals and fall back to plain text otherwise. Text output
// is a single line of key=value pairs; JSON output is an indented object.
//
// The package-level functions log through a default logger that writes to
// standard error and is reconfigured with [Config].
package log
