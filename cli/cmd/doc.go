// Package cmd implements the lamb subcommands.
//
// Every command reads lamb source from the files named on its command line,
// the global --source files, or standard input when neither names anything.
// Relative names not found in the working directory are looked up in the
// search path (see [WithSearchPath]). Sources are parsed concurrently and
// merged in the order given.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
