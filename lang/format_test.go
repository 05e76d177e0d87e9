package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func formatString(t *testing.T, prog *Program, cfg FormatConfig) string {
	t.Helper()

	var buf bytes.Buffer
	if err := prog.Format(&buf, cfg); err != nil {
		t.Fatalf("Format error: %v", err)
	}

	return buf.String()
}

func TestFormat_Layout(t *testing.T) {
	prog := mustParse(t, "fn f(a,b){a+b*c} fn g(){lambda x y{x}}")

	tests := []struct {
		name string
		cfg  FormatConfig
		want string
	}{
		{
			name: "default",
			cfg:  DefaultFormatConfig(),
			want: "fn f(a, b) {\n  a + b * c\n}\n\nfn g() {\n  lambda x y { x }\n}\n",
		},
		{
			name: "tabs without spacing",
			cfg:  FormatConfig{UseTabs: true},
			want: "fn f(a, b) {\n\ta+b*c\n}\nfn g() {\n\tlambda x y { x }\n}\n",
		},
		{
			name: "wide indent",
			cfg:  FormatConfig{IndentSize: 4, SpaceOperators: true},
			want: "fn f(a, b) {\n    a + b * c\n}\nfn g() {\n    lambda x y { x }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatString(t, prog, tt.cfg); got != tt.want {
				t.Errorf("Format() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestFormatExpr_Parentheses(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 + (2 * 3)", "1 + 2 * 3"},
		{"(1 - 2) - 3", "1 - 2 - 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"1 - (2 + 3)", "1 - (2 + 3)"},
		{"8 / (4 * 2)", "8 / (4 * 2)"},
		{"(8 / 4) * 2", "8 / 4 * 2"},
		{"a * (b + c) * d", "a * (b + c) * d"},
		{"f((1 + 2) * 3, g(x)(y))", "f((1 + 2) * 3, g(x)(y))"},
		{"lambda { (a + b) }", "lambda { a + b }"},
		{"m::f()", "m::f()"},
	}

	for _, tt := range tests {
		e, err := ParseExpr(tt.input)
		if err != nil {
			t.Fatalf("ParseExpr(%q) error: %v", tt.input, err)
		}

		if got := FormatExpr(e, DefaultFormatConfig()); got != tt.want {
			t.Errorf("FormatExpr(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	sources := []string{
		"fn f() { 1 - (2 - (3 - 4)) }",
		"fn f(a, b) { (a + b) * (a - b) / 2 }",
		"fn m::f(x) { lambda y z { m::g(x)(y, z) * ((1)) } }",
		"fn a() { 1 } fn b() { a() + a()() } fn c() { lambda { lambda { 0 } } }",
		"/* comments are dropped */ fn f() { 007 } // tail",
	}

	configs := []FormatConfig{
		DefaultFormatConfig(),
		{UseTabs: true},
	}

	for _, src := range sources {
		want := mustParse(t, src).String()

		for _, cfg := range configs {
			out := formatString(t, mustParse(t, src), cfg)

			got, err := Parse(out)
			if err != nil {
				t.Fatalf("re-parse of %q failed: %v", out, err)
			}

			if got.String() != want {
				t.Errorf("round trip of %q:\n got %s\nwant %s", src, got, want)
			}
		}
	}
}

func TestFormatJSON(t *testing.T) {
	prog := mustParse(t, "fn m::f(x) { g(x, 1)(99999999999999999999) }")

	var buf bytes.Buffer
	if err := prog.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("FormatJSON error: %v", err)
	}

	var doc struct {
		Functions []struct {
			Kind   string   `json:"kind"`
			Name   string   `json:"name"`
			Params []string `json:"params"`
			Line   int      `json:"line"`
			Body   struct {
				Kind   string `json:"kind"`
				Callee string `json:"callee"`
				Args   [][]struct {
					Kind  string `json:"kind"`
					Name  string `json:"name"`
					Value any    `json:"value"`
				} `json:"args"`
			} `json:"body"`
		} `json:"functions"`
	}

	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON %s: %v", buf.String(), err)
	}

	if len(doc.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(doc.Functions))
	}

	fn := doc.Functions[0]
	if fn.Kind != "fn" || fn.Name != "m::f" || fn.Line != 1 {
		t.Errorf("function = %+v", fn)
	}

	if fn.Body.Kind != "call" || fn.Body.Callee != "g" || len(fn.Body.Args) != 2 {
		t.Fatalf("body = %+v", fn.Body)
	}

	if v, ok := fn.Body.Args[0][1].Value.(float64); !ok || v != 1 {
		t.Errorf("small integer = %#v, want number 1", fn.Body.Args[0][1].Value)
	}

	if v, ok := fn.Body.Args[1][0].Value.(string); !ok || v != "99999999999999999999" {
		t.Errorf("large integer = %#v, want decimal string", fn.Body.Args[1][0].Value)
	}
}

func TestFormatJSON_IntegerText(t *testing.T) {
	prog := mustParse(t, "fn f() { 007 + 7 }")

	var buf bytes.Buffer
	if err := prog.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("FormatJSON error: %v", err)
	}

	var doc struct {
		Functions []struct {
			Body struct {
				Left  map[string]any `json:"left"`
				Right map[string]any `json:"right"`
			} `json:"body"`
		} `json:"functions"`
	}

	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON %s: %v", buf.String(), err)
	}

	left, right := doc.Functions[0].Body.Left, doc.Functions[0].Body.Right

	if left["value"] != float64(7) || left["text"] != "007" {
		t.Errorf("padded literal = %v, want value 7 and text 007", left)
	}

	if _, ok := right["text"]; ok || right["value"] != float64(7) {
		t.Errorf("plain literal = %v, want value 7 without text", right)
	}
}

func TestFormatYAML(t *testing.T) {
	prog := mustParse(t, "fn f(a) { a * 02 }")

	var buf bytes.Buffer
	if err := prog.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("FormatYAML error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"functions:", "name: f", "kind: binary", "op:", "text:", "02"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}

func TestPrint(t *testing.T) {
	prog := mustParse(t, "fn f(a) { g(a)() + lambda x { 1 } }")

	var buf bytes.Buffer
	if err := prog.Print(&buf); err != nil {
		t.Fatalf("Print error: %v", err)
	}

	want := strings.Join([]string{
		"Function: f",
		"  Parameters: a",
		"  Body",
		"    Binary: +",
		"      Call: g",
		"        Arguments",
		"          Identifier: a",
		"        Arguments: (empty)",
		"      Lambda: (x)",
		"        Integer: 1",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}
