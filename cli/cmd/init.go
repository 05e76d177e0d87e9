package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/log"
	"github.com/ardnew/lamb/profile"
)

// configHeader is written before the generated definitions.
const configHeader = "// lamb configuration: each definition sets the flag of the same name.\n\n"

// Init generates a configuration file from the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	prog := buildConfig(ktx)

	if err := writeConfig(file, prog); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.Int("definitions", len(prog.Functions)),
	)

	return nil
}

// buildConfig constructs the configuration program from the application
// flags. Flags whose values cannot be written as an identifier or integer
// are left out.
func buildConfig(ktx *kong.Context) *lang.Program {
	prog := &lang.Program{Functions: []*lang.FunctionDef{}}

	ignore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || hasAnyPrefix(flag.Name, ignore) {
			continue
		}

		body, ok := configExpr(ktx.FlagValue(flag))
		if !ok {
			log.Trace("config skip", slog.String("flag", flag.Name))

			continue
		}

		group := ""
		if flag.Group != nil {
			group = flag.Group.Key
		}

		prog.Functions = append(prog.Functions, &lang.FunctionDef{
			Name:   configIdent(flag.Name, group),
			Params: []*lang.Ident{},
			Body:   body,
		})
	}

	return prog
}

func writeConfig(w io.Writer, prog *lang.Program) error {
	if _, err := io.WriteString(w, configHeader); err != nil {
		return err
	}

	cfg := lang.DefaultFormatConfig()
	cfg.BlankLineBetween = false

	return prog.Format(w, cfg)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
