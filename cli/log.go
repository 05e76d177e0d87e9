package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lamb/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, so that errors reported while kong parses the
// remaining flags already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"text"    enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp format."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies the complete logger configuration once all flags, including
// those without a TextUnmarshaler, have been parsed.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// logFlag describes how scan applies one logger flag.
type logFlag struct {
	boolean bool
	apply   func(f *logConfig, value string)
}

func setBool(dst *bool, opt func(bool) log.Option, negate bool) func(*logConfig, string) {
	return func(_ *logConfig, value string) {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return
		}

		*dst = v != negate
		log.Config(opt(*dst))
	}
}

func (f *logConfig) flags() map[string]logFlag {
	return map[string]logFlag{
		"--log-level": {apply: func(f *logConfig, v string) {
			_ = f.Level.UnmarshalText([]byte(v))
		}},
		"--log-format": {apply: func(f *logConfig, v string) {
			_ = f.Format.UnmarshalText([]byte(v))
		}},
		"--log-pretty":    {boolean: true, apply: setBool(&f.Pretty, log.WithPretty, false)},
		"--no-log-pretty": {boolean: true, apply: setBool(&f.Pretty, log.WithPretty, true)},
		"--log-caller":    {boolean: true, apply: setBool(&f.Caller, log.WithCaller, false)},
		"--no-log-caller": {boolean: true, apply: setBool(&f.Caller, log.WithCaller, true)},
	}
}

// scan performs an early pass over command-line arguments and applies the
// logger flags it finds before kong begins parsing. Boolean flags take a
// value only when it is attached with "="; other flags also accept the next
// argument.
func (f *logConfig) scan(args []string) {
	flags := f.flags()

	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		flag, ok := flags[name]
		if !ok {
			continue
		}

		switch {
		case assigned:
		case flag.boolean:
			value = "true"
		case i+1 < len(args) && !strings.HasPrefix(args[i+1], "-"):
			i++
			value = args[i]
		default:
			continue
		}

		flag.apply(f, value)
	}
}
