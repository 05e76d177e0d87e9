package repl

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ardnew/lamb/lang"
)

// fakeEditor installs a shell script as $VISUAL that replaces the edited
// file with content.
func fakeEditor(t *testing.T, content string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "edited.lamb")
	script := filepath.Join(dir, "editor.sh")

	if err := os.WriteFile(src, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	body := "#!/bin/sh\ncp '" + src + "' \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0o700); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VISUAL", script)
}

func newEditCommand(t *testing.T, stdin string, opts ...lang.Option) (*editCommand, *bytes.Buffer) {
	t.Helper()

	prog, err := lang.Parse("fn f() { 1 }")
	if err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer

	c := &editCommand{
		prog:    prog,
		opts:    opts,
		ctxFunc: context.Background,
	}
	c.SetStdin(strings.NewReader(stdin))
	c.SetStdout(&bytes.Buffer{})
	c.SetStderr(&stderr)

	return c, &stderr
}

func TestEditCommand_Run(t *testing.T) {
	fakeEditor(t, "fn g(x) { x * 2 }\n")

	c, _ := newEditCommand(t, "")
	if err := c.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if c.newProg == nil {
		t.Fatal("no program after edit")
	}

	if got, want := c.newProg.String(), "(fn g (x) (* x 2))"; got != want {
		t.Errorf("program = %s, want %s", got, want)
	}
}

func TestEditCommand_MaxDepth(t *testing.T) {
	fakeEditor(t, "fn g() { (((1))) }\n")

	c, stderr := newEditCommand(t, "n\n", lang.WithMaxDepth(2))

	if err := c.Run(); !errors.Is(err, ErrEditDeclined) {
		t.Fatalf("Run error = %v, want ErrEditDeclined", err)
	}

	if !strings.Contains(stderr.String(), lang.ErrMaxDepthExceeded.Error()) {
		t.Errorf("stderr = %q, want the nesting error", stderr.String())
	}

	if c.newProg != nil {
		t.Error("program replaced after a rejected edit")
	}
}
