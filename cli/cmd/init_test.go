package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/kr/pretty"

	"github.com/ardnew/lamb/lang"
)

type initTestCLI struct {
	Verbose bool   `help:"Enable verbose output."`
	Output  string `help:"Output name."`
	Count   int    `help:"Number of items."`
	Label   string `help:"Free text."`
	Secret  string `help:"Hidden flag." hidden:""`
	Pprof   string `help:"Profile mode."`
}

func parseTestCLI(t *testing.T, vars kong.Vars, args ...string) *kong.Context {
	t.Helper()

	var cli initTestCLI

	parser, err := kong.New(&cli, vars)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return ktx
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrWriteConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ktx := parseTestCLI(t, kong.Vars{ConfigIdentifier: confPath}, "--count=3")
			ctx := WithContext(context.Background(), ktx)

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrFileExists) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			if !strings.HasPrefix(string(content), configHeader) {
				t.Errorf("missing header:\n%s", content)
			}

			prog, err := lang.Parse(string(content))
			if err != nil {
				t.Fatalf("generated config does not parse: %v\n%s", err, content)
			}

			if got := ConfigValues(prog)["count"]; got != "3" {
				t.Errorf("count = %v, want 3", got)
			}
		})
	}
}

func TestBuildConfig_RoundTrip(t *testing.T) {
	ktx := parseTestCLI(t, nil,
		"--verbose", "--output=stdout", "--count=5",
		"--label=two words", "--secret=x", "--pprof=cpu")

	var buf bytes.Buffer
	if err := writeConfig(&buf, buildConfig(ktx)); err != nil {
		t.Fatal(err)
	}

	prog, err := lang.Parse(buf.String())
	if err != nil {
		t.Fatalf("generated config does not parse: %v\n%s", err, buf.String())
	}

	want := map[string]any{
		"verbose": true,
		"output":  "stdout",
		"count":   "5",
	}
	if diff := pretty.Diff(ConfigValues(prog), want); len(diff) > 0 {
		t.Errorf("values differ: %v\n%s", diff, buf.String())
	}

	if strings.Contains(buf.String(), "\n\n\n") || strings.Count(buf.String(), "\n\nfn") > 1 {
		t.Errorf("definitions separated by blank lines:\n%s", buf.String())
	}
}

func TestConfigValues(t *testing.T) {
	prog, err := lang.Parse(`
		fn log::level() { debug }
		fn log_format() { json }
		fn no_cache() { true }
		fn max_depth() { 0064 }
		fn ignored(x) { x }
		fn also_ignored() { 1 + 2 }
		fn pretty() { false }
		fn pretty() { true }
	`)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"log-level":  "debug",
		"log-format": "json",
		"no-cache":   true,
		"max-depth":  "0064",
		"pretty":     true,
	}
	if diff := pretty.Diff(ConfigValues(prog), want); len(diff) > 0 {
		t.Errorf("values differ: %v", diff)
	}
}

func TestConfigIdent(t *testing.T) {
	tests := []struct {
		flag, group string
		want        string
	}{
		{"log-level", "log", "log::level"},
		{"log-time-layout", "log", "log::time_layout"},
		{"max-depth", "", "max_depth"},
		{"log", "log", "log"},
		{"verbose", "log", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			id := configIdent(tt.flag, tt.group)
			if got := id.String(); got != tt.want {
				t.Errorf("configIdent(%q, %q) = %q, want %q", tt.flag, tt.group, got, tt.want)
			}

			if got := flagName(id); got != tt.flag {
				t.Errorf("flagName(%s) = %q, want %q", id, got, tt.flag)
			}
		})
	}
}

func TestConfigExpr(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   string
		wantOK bool
	}{
		{"true", true, "true", true},
		{"false", false, "false", true},
		{"int", 42, "42", true},
		{"uint", uint8(7), "7", true},
		{"negative", -1, "", false},
		{"ident", "debug", "debug", true},
		{"namespaced", "m::x", "m::x", true},
		{"text", "two words", "", false},
		{"empty", "", "", false},
		{"keyword", "lambda", "", false},
		{"nil", nil, "", false},
		{"slice", []string{"a"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := configExpr(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("configExpr(%v) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}

			if ok && e.String() != tt.want {
				t.Errorf("configExpr(%v) = %s, want %s", tt.value, e, tt.want)
			}
		})
	}
}
