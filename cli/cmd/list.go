package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/log"
)

// List prints the function definitions of the input.
type List struct {
	Where string `help:"Select definitions matching an expr-lang predicate over name, namespace, params, arity, calls, lambdas, depth and line." placeholder:"EXPR" short:"w"`
	Long  bool   `help:"Include definition metadata."                                                                                                             short:"l"`
	JSON  bool   `help:"Print one JSON object per definition."                                                                                                    short:"j"`

	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:""`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := loadProgram(ctx, l.Files)
	if err != nil {
		return err
	}

	selected, err := lang.Select(prog, l.Where)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "list",
		slog.String("where", l.Where),
		slog.Int("total", len(prog.Functions)),
		slog.Int("selected", len(selected)),
	)

	w := outputFrom(ctx)
	enc := json.NewEncoder(w)

	for _, fd := range selected {
		info := lang.Describe(fd)

		switch {
		case l.JSON:
			if err := enc.Encode(info); err != nil {
				return ErrFormat.With(slog.String("format", "json")).Wrap(err)
			}

		case l.Long:
			fmt.Fprintf(w, "%s\tline=%d arity=%d depth=%d lambdas=%d calls=[%s]\n",
				signature(info), info.Line, info.Arity, info.Depth, info.Lambdas,
				strings.Join(info.Calls, " "))

		default:
			fmt.Fprintln(w, signature(info))
		}
	}

	return nil
}

// signature renders name(a, b).
func signature(info lang.FunctionInfo) string {
	return info.Name + "(" + strings.Join(info.Params, ", ") + ")"
}
