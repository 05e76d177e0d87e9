package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/lamb/lang"
	"github.com/ardnew/lamb/log"
)

// commandPrefix starts a session command such as :help.
const commandPrefix = ":"

// command is a session command and its one-letter alias.
type command struct {
	name, alias, args, help string
}

var commands = []command{
	{"help", "h", "", "Print this help"},
	{"list", "l", "", "List defined functions"},
	{"show", "s", "NAME", "Print the definition of NAME"},
	{"deps", "d", "NAME", "List the functions NAME depends on"},
	{"tree", "t", "NAME", "Print the syntax tree of NAME"},
	{"edit", "e", "", "Edit all definitions in $EDITOR"},
	{"clear", "c", "", "Clear the screen"},
	{"quit", "q", "", "Exit the session"},
}

// commandNames returns every command name with its prefix.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = commandPrefix + c.name
	}

	return names
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if name == c.name || name == c.alias {
			return c, true
		}
	}

	return command{}, false
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("Commands:\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-12s %s\n",
			strings.TrimSpace(commandPrefix+c.name+" "+c.args), c.help)
	}

	b.WriteString(`
Usage:
  Enter "fn name(params) { body }" to define or replace a function
  Enter any other expression to print its syntax tree as an S-expression
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`)

	return b.String()
}

// reply is the outcome of one line of input.
type reply struct {
	out   string
	err   error
	quit  bool
	clear bool
	edit  bool
}

// session holds the definitions entered so far.
type session struct {
	prog   *lang.Program
	opts   []lang.Option
	logger log.Logger
}

func newSession(prog *lang.Program, logger log.Logger, opts ...lang.Option) *session {
	if prog == nil {
		prog = &lang.Program{Functions: []*lang.FunctionDef{}}
	}

	return &session{prog: prog, opts: opts, logger: logger}
}

// exec runs one line of input.
func (s *session) exec(ctx context.Context, input string) reply {
	input = strings.TrimSpace(input)

	switch {
	case input == "":
		return reply{}

	case strings.HasPrefix(input, commandPrefix):
		return s.command(strings.Fields(strings.TrimPrefix(input, commandPrefix)))

	case isDefinition(input):
		return s.define(ctx, input)

	default:
		return s.expr(input)
	}
}

// isDefinition reports whether input begins with the fn keyword.
func isDefinition(input string) bool {
	toks, err := lang.Tokenize(input)

	return err == nil && len(toks) > 0 && toks[0].Kind == lang.KindFn
}

func (s *session) define(ctx context.Context, input string) reply {
	prog, err := lang.ParseString(ctx, input, s.opts...)
	if err != nil {
		return reply{err: err}
	}

	lines := make([]string, 0, len(prog.Functions))

	for fd := range prog.All() {
		s.prog = s.prog.Define(fd)
		lines = append(lines, "defined "+signatureOf(fd))
	}

	s.logger.TraceContext(ctx, "repl define",
		slog.Int("defined", len(prog.Functions)),
		slog.Int("total", len(s.prog.Functions)),
	)

	return reply{out: strings.Join(lines, "\n")}
}

func (s *session) expr(input string) reply {
	e, err := lang.ParseExpr(input, s.opts...)
	if err != nil {
		return reply{err: err}
	}

	return reply{out: e.String()}
}

func (s *session) command(fields []string) reply {
	if len(fields) == 0 {
		return reply{err: ErrUnknownCommand}
	}

	cmd, ok := lookupCommand(fields[0])
	if !ok {
		return reply{err: fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])}
	}

	args := fields[1:]

	if cmd.args != "" && len(args) == 0 {
		return reply{err: fmt.Errorf("%w: %s%s %s",
			ErrMissingArgument, commandPrefix, cmd.name, cmd.args)}
	}

	switch cmd.name {
	case "help":
		return reply{out: helpMessage()}

	case "list":
		return reply{out: s.list()}

	case "show":
		return s.show(args[0])

	case "deps":
		return s.deps(args[0])

	case "tree":
		return s.tree(args[0])

	case "edit":
		return reply{edit: true}

	case "clear":
		return reply{clear: true}

	default: // quit
		return reply{quit: true}
	}
}

func (s *session) list() string {
	if len(s.prog.Functions) == 0 {
		return "(no definitions)"
	}

	lines := make([]string, 0, len(s.prog.Functions))

	for fd := range s.prog.All() {
		lines = append(lines, "  "+signatureOf(fd)+" "+
			hintStyle.Render(preview(fd.Body)))
	}

	return strings.Join(lines, "\n")
}

func (s *session) lookup(name string) (*lang.FunctionDef, error) {
	fd, ok := s.prog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefined, name)
	}

	return fd, nil
}

func (s *session) show(name string) reply {
	fd, err := s.lookup(name)
	if err != nil {
		return reply{err: err}
	}

	var buf bytes.Buffer

	one := &lang.Program{Functions: []*lang.FunctionDef{fd}}
	if err := one.Format(&buf, lang.DefaultFormatConfig()); err != nil {
		return reply{err: err}
	}

	return reply{out: strings.TrimSuffix(buf.String(), "\n")}
}

func (s *session) deps(name string) reply {
	deps, err := s.prog.Dependencies(name)
	if err != nil {
		return reply{err: fmt.Errorf("%w: %s", ErrUndefined, name)}
	}

	if len(deps) == 0 {
		return reply{out: "(none)"}
	}

	return reply{out: strings.Join(deps, "\n")}
}

func (s *session) tree(name string) reply {
	fd, err := s.lookup(name)
	if err != nil {
		return reply{err: err}
	}

	var buf bytes.Buffer

	one := &lang.Program{Functions: []*lang.FunctionDef{fd}}
	if err := one.Print(&buf); err != nil {
		return reply{err: err}
	}

	return reply{out: strings.TrimSuffix(buf.String(), "\n")}
}

// signatureOf renders name(a, b).
func signatureOf(fd *lang.FunctionDef) string {
	return fd.Name.String() + "(" + strings.Join(fd.ParamNames(), ", ") + ")"
}

// preview renders a body in native syntax, shortened to fit one line.
func preview(e lang.Expr) string {
	const limit = 40

	src := lang.FormatExpr(e, lang.DefaultFormatConfig())
	if len(src) > limit {
		return src[:limit-3] + "..."
	}

	return src
}
