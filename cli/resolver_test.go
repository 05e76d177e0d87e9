package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lamb/lang"
)

type resolverTestCLI struct {
	Log struct {
		Level  string `default:"info"`
		Pretty bool   `default:"true" negatable:""`
	} `embed:"" prefix:"log-"`

	MaxDepth int    `default:"0"`
	Name     string `default:"none"`
}

func parseWithConfig(t *testing.T, src string, args ...string) resolverTestCLI {
	t.Helper()

	lang.ClearCache()

	resolver, err := resolve(context.Background())(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	var cli resolverTestCLI

	parser, err := kong.New(&cli, kong.Resolvers(resolver))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatal(err)
	}

	return cli
}

func TestResolve(t *testing.T) {
	cli := parseWithConfig(t, `
		// comment
		fn log::level() { debug }
		fn log_pretty() { false }
		fn max_depth() { 64 }
		fn name() { m::x }
		fn helper(a) { a }
	`)

	if cli.Log.Level != "debug" {
		t.Errorf("level = %q, want debug", cli.Log.Level)
	}

	if cli.Log.Pretty {
		t.Error("pretty = true, want false")
	}

	if cli.MaxDepth != 64 {
		t.Errorf("max depth = %d, want 64", cli.MaxDepth)
	}

	if cli.Name != "m::x" {
		t.Errorf("name = %q, want m::x", cli.Name)
	}
}

func TestResolve_FlagsOverride(t *testing.T) {
	cli := parseWithConfig(t, "fn log_level() { debug }", "--log-level=warn")

	if cli.Log.Level != "warn" {
		t.Errorf("level = %q, want warn", cli.Log.Level)
	}
}

func TestResolve_InvalidConfig(t *testing.T) {
	cli := parseWithConfig(t, "fn log_level() { debug")

	if cli.Log.Level != "info" {
		t.Errorf("level = %q, want default info", cli.Log.Level)
	}
}

func TestResolve_LastDefinitionWins(t *testing.T) {
	cli := parseWithConfig(t, "fn name() { first } fn name() { second }")

	if cli.Name != "second" {
		t.Errorf("name = %q, want second", cli.Name)
	}
}
