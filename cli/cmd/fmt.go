package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/log"
)

// Fmt parses input and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native lamb syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented syntax tree."`
	Sexpr  Sexpr  `cmd:""                    help:"Format as S-expressions."`
}

// Native formats input as native lamb syntax.
type Native struct {
	Indent  int  `default:"2" help:"Spaces per indent level."                   short:"i"`
	Tabs    bool `            help:"Indent with tabs."                           short:"t"`
	Compact bool `            help:"Omit spaces around binary operators."`
	Dense   bool `            help:"Omit blank lines between definitions."`
	Write   bool `            help:"Write each result back to its source file." short:"w"`

	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:""`
}

func (f *Native) config() lang.FormatConfig {
	return lang.FormatConfig{
		UseTabs:          f.Tabs,
		IndentSize:       f.Indent,
		SpaceOperators:   !f.Compact,
		BlankLineBetween: !f.Dense,
	}
}

// Run executes the native format command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if f.Write {
		return f.rewrite(ctx)
	}

	prog, err := loadProgram(ctx, f.Files)
	if err != nil {
		return err
	}

	if err := prog.Format(outputFrom(ctx), f.config()); err != nil {
		return ErrFormat.With(slog.String("format", "native")).Wrap(err)
	}

	return nil
}

// rewrite formats every source file in place. Files whose formatted text is
// unchanged are not written.
func (f *Native) rewrite(ctx context.Context) error {
	srcs, err := loadSources(ctx, f.Files)
	if err != nil {
		return err
	}

	progs, err := parseSources(ctx, srcs)
	if err != nil {
		return err
	}

	for i, src := range srcs {
		var buf bytes.Buffer

		if err := progs[i].Format(&buf, f.config()); err != nil {
			return ErrFormat.With(slog.String("source", src.String())).Wrap(err)
		}

		if src.path == "" {
			if _, err := buf.WriteTo(outputFrom(ctx)); err != nil {
				return ErrFormat.With(slog.String("source", src.String())).Wrap(err)
			}

			continue
		}

		old, err := os.ReadFile(src.path)
		if err == nil && bytes.Equal(old, buf.Bytes()) {
			continue
		}

		if err := os.WriteFile(src.path, buf.Bytes(), src.info.Mode().Perm()); err != nil {
			return ErrFormat.With(slog.String("source", src.String())).Wrap(err)
		}

		log.DebugContext(ctx, "rewrote source", slog.String("source", src.String()))
	}

	return nil
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output." short:"i"`

	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	return render(ctx, "json", j.Files, func(w io.Writer, prog *lang.Program) error {
		return prog.FormatJSON(ctx, w, j.Indent)
	})
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)." short:"i"`

	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	return render(ctx, "yaml", y.Files, func(w io.Writer, prog *lang.Program) error {
		return prog.FormatYAML(ctx, w, y.Indent)
	})
}

// AST formats input as an indented syntax tree.
type AST struct {
	Indent int `default:"0" help:"Starting indent level of the tree." short:"i"`

	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	return render(ctx, "ast", a.Files, func(w io.Writer, prog *lang.Program) error {
		return prog.PrintIndent(w, a.Indent)
	})
}

// Sexpr formats each definition as a single S-expression line.
type Sexpr struct {
	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:""`
}

// Run executes the sexpr command.
func (s *Sexpr) Run(ctx context.Context) (err error) {
	return render(ctx, "sexpr", s.Files, func(w io.Writer, prog *lang.Program) error {
		for fd := range prog.All() {
			if _, err := io.WriteString(w, fd.String()+"\n"); err != nil {
				return err
			}
		}

		return nil
	})
}

// render loads the program named by files and writes it with emit.
func render(
	ctx context.Context,
	format string,
	files []string,
	emit func(io.Writer, *lang.Program) error,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := loadProgram(ctx, files)
	if err != nil {
		return err
	}

	if err := emit(outputFrom(ctx), prog); err != nil {
		return ErrFormat.With(slog.String("format", format)).Wrap(err)
	}

	return nil
}
