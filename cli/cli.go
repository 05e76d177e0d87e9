package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lamb/cli/cmd"
	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// CLI is the top-level command-line interface for lamb.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source   []string `help:"Source file(s) read by every command, or '-' for stdin." name:"source" short:"s"`
	Path     []string `help:"Directories searched for relative source names (also ${pathEnv})." placeholder:"DIR" sep:"none"`
	MaxDepth int      `default:"${maxDepth}" help:"Maximum expression nesting depth (0 for unbounded)."`
	NoCache  bool     `help:"Do not share parse results between identical sources."`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Check cmd.Check `cmd:"" default:"withargs" help:"Check that sources parse"`
	Fmt   cmd.Fmt   `cmd:""                    help:"Format sources"`
	List  cmd.List  `cmd:""                    help:"List function definitions"`
	Deps  cmd.Deps  `cmd:""                    help:"List the functions a function depends on"`
	Init  cmd.Init  `cmd:""                    help:"Initialize configuration file"`
	Repl  cmd.Repl  `cmd:""                    help:"Start an interactive session"`
}

// Run executes the lamb CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(baseConfig)

	vars := cli.vars(configFilePath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that errors raised while parsing the
	// remaining flags are already logged the requested way.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSources(ctx, cli.Source)
	ctx = cmd.WithSearchPath(ctx, searchPath(cli.Path))
	ctx = cmd.WithParseOptions(ctx, cli.parseOptions()...)

	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// vars returns the interpolation variables referenced by the struct tags.
func (c *CLI) vars(configFilePath string) kong.Vars {
	return kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"pathEnv":            "$" + pathEnv(),
		"version":            pkg.Version,
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
	}.
		CloneWith(c.Log.vars()).
		CloneWith(c.Pprof.vars())
}

// parseOptions returns the parser options selected by the global flags.
func (c *CLI) parseOptions() []lang.Option {
	return []lang.Option{
		lang.WithCache(!c.NoCache),
		lang.WithMaxDepth(c.MaxDepth),
	}
}
