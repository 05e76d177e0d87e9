// Package cli contains the command line interface for lamb.
//
// # Usage
//
//	lamb [flags] [check] [file ...]
//	lamb fmt [native|json|yaml|ast|sexpr] [file ...]
//	lamb list [--where EXPR] [--long|--json] [file ...]
//	lamb deps NAME [file ...]
//	lamb repl [file ...]
//	lamb init [--force]
//
// Every command reads the files named by --source followed by its own
// arguments, or standard input when neither names anything. Relative names
// are looked up in the working directory, then in each --path directory,
// then in each directory of $LAMB_PATH.
//
// Expressions nested deeper than --max-depth levels (10000 by default) are
// rejected with a parse error. A bound of 0 disables the check.
//
// # Configuration
//
// Flag defaults are read from $XDG_CONFIG_HOME/lamb/config, a lamb source
// file in which each parameterless definition sets one flag:
//
//	fn log::level() { debug }
//	fn no_cache() { true }
//
// A JSON file at the same path with a ".json" suffix is also read. The
// init command writes the current flag values as a configuration file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o lamb .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/lamb/pprof)
package cli
