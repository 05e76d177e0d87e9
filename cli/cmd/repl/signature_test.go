package repl

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no call", "greeting", "", 0, false},
		{"first arg", "add(", "add", 0, true},
		{"with first arg", "add(1", "add", 0, true},
		{"second arg", "add(1, ", "add", 1, true},
		{"closed inner call", "add(f(1), ", "add", 1, true},
		{"open inner call", "add(f(", "f", 0, true},
		{"namespaced", "m::g(1, 2", "m::g", 1, true},
		{"closed call", "add(1)", "", 0, false},
		{"grouping only", "(1 + 2", "", 0, false},
		{"inside lambda", "lambda x { g(x", "g", 0, true},
		{"lambda body comma", "f(lambda x { g(x, y) }, ", "f", 1, true},
		// Later argument lists of a curried call continue the count.
		{"curried", "f(1)(", "f", 1, true},
		{"curried empty first", "f()(x", "f", 0, true},
		{"curried two lists", "f(1, 2)(3, ", "f", 3, true},
		{"command", ":show(", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, len(tt.input))
			want := functionCall{name: tt.wantName, argIndex: tt.wantIndex, inCall: tt.wantInCall}

			if got != want {
				t.Errorf("detectFunctionCall(%q) = %+v, want %+v", tt.input, got, want)
			}
		})
	}
}

func TestDetectFunctionCall_Cursor(t *testing.T) {
	input := "add(1, 2) + sub("

	if got := detectFunctionCall(input, 6); got.name != "add" || got.argIndex != 1 {
		t.Errorf("at 6: %+v", got)
	}

	if got := detectFunctionCall(input, len(input)); got.name != "sub" {
		t.Errorf("at end: %+v", got)
	}
}

func TestGetSignature(t *testing.T) {
	s := newTestSession(t, "fn add(a, b) { a + b } fn m::id(m::x) { m::x }")

	sig, params := getSignature(s.prog, "add")
	if sig != "add(a, b)" {
		t.Errorf("signature = %q", sig)
	}

	if diff := pretty.Diff(params, []string{"a", "b"}); len(diff) > 0 {
		t.Errorf("params differ: %v", diff)
	}

	if sig, _ := getSignature(s.prog, "m::id"); sig != "m::id(m::x)" {
		t.Errorf("namespaced signature = %q", sig)
	}

	if sig, params := getSignature(s.prog, "nope"); sig != "" || params != nil {
		t.Errorf("undefined = %q, %v", sig, params)
	}
}

func TestRenderSignatureHint(t *testing.T) {
	got := renderSignatureHint("add(a, b)", []string{"a", "b"}, 1)

	for _, want := range []string{"add", "(", "a", ", ", "b", ")"} {
		if !strings.Contains(got, want) {
			t.Errorf("hint %q missing %q", got, want)
		}
	}

	if got := renderSignatureHint("bare", nil, 0); !strings.Contains(got, "bare") {
		t.Errorf("hint without parens = %q", got)
	}
}
