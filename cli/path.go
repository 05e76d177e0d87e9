package cli

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/lamb/pkg"
)

// pathEnv returns the environment variable holding the source search path.
func pathEnv() string { return pkg.EnvVar("PATH") }

// searchPath returns the directories searched for relative source names:
// the dirs given on the command line followed by those in the environment
// variable named by [pathEnv]. Empty entries are dropped.
func searchPath(dirs []string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(pathEnv())),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(func(dir string) bool { return dir != "" }),
	).String()

	return slices.DeleteFunc(filepath.SplitList(joined), func(dir string) bool {
		return dir == ""
	})
}
