package pkg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "lamb" {
		t.Errorf("Name = %q, want %q", Name, "lamb")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("Version = %q, want %q", Version, want)
	}

	if Version == "" {
		t.Error("Version is empty")
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew"
	}) {
		t.Errorf("Author = %v, want an entry for ardnew", Author)
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/lamb", "lamb"},
		{"lamb.exe", "lamb"},
		{"/tmp/__debug_bin3512", Name},
		{"/home/u/.lamb.sh", "lamb"},
		{"/home/u/.hidden", Name},
		{"...", Name},
		{"/opt/lambc", "lambc"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := prefixOf(tt.path); got != tt.want {
				t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	if got := filepath.Base(ConfigDir()); got != Prefix() {
		t.Errorf("ConfigDir() = %q, want base %q", ConfigDir(), Prefix())
	}

	if got := filepath.Base(CacheDir()); got != Prefix() {
		t.Errorf("CacheDir() = %q, want base %q", CacheDir(), Prefix())
	}

	if got, want := ConfigPath("config"), filepath.Join(ConfigDir(), "config"); got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}

	if got, want := CachePath(), CacheDir(); got != want {
		t.Errorf("CachePath() = %q, want %q", got, want)
	}

	if got := EnvVar("path"); got != strings.ToUpper(Prefix())+"_PATH" {
		t.Errorf("EnvVar(path) = %q", got)
	}
}
