package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lamb/cli/cmd"
	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/log"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in lamb. Each parameterless definition whose body is an
// identifier or an integer sets the flag it names:
//
//	fn log::level() { debug }
//	fn log_pretty() { false }
//	fn max_depth() { 64 }
//
// sets --log-level=debug --log-pretty=false --max-depth=64. See
// [cmd.ConfigValues] for the mapping. A file that does not parse is
// reported and otherwise ignored. Command-line flags override config file
// values.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		prog, err := lang.ParseReader(ctx, r, lang.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		return config(cmd.ConfigValues(prog)), nil
	}
}

// config implements [kong.Resolver] for lamb configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Keys are normalized to hyphens, but flag names may contain
	// underscores.
	if value, ok := r[strings.ReplaceAll(flag.Name, "_", "-")]; ok {
		return value, nil
	}

	return nil, nil
}
