package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestDependencies(t *testing.T) {
	prog := mustParse(t, querySource+`
fn loop() { loop() + ping() }
fn ping() { pong() }
fn pong() { ping() + undefined(1) }
fn ref() { square }
`)

	tests := []struct {
		name string
		want []string
	}{
		{"math::add", nil},
		{"square", []string{"math::mul"}},
		{"sum3", []string{"math::add"}},
		{"main", []string{"math::add", "sum3", "math::mul", "square", "adder"}},
		{"loop", []string{"pong", "ping"}},
		{"ping", []string{"pong"}},
		{"ref", nil},
	}

	for _, tt := range tests {
		got, err := prog.Dependencies(tt.name)
		if err != nil {
			t.Fatalf("Dependencies(%q) error: %v", tt.name, err)
		}

		if !slices.Equal(got, tt.want) {
			t.Errorf("Dependencies(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDependencies_NotFound(t *testing.T) {
	prog := mustParse(t, querySource)

	if _, err := prog.Dependencies("missing"); !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("error = %v, want ErrFunctionNotFound", err)
	}
}

func TestProgram_Define(t *testing.T) {
	prog := mustParse(t, "fn a() { 1 } fn b() { 2 } fn a() { 3 }")

	next := prog.Define(NewFunctionDef("a", []string{"x"}, id("x")))

	if got := next.String(); got != "(fn a (x) x)\n(fn b () 2)" {
		t.Errorf("Define replace = %s", got)
	}

	if len(prog.Functions) != 3 {
		t.Error("Define modified the receiver")
	}

	next = next.Define(NewFunctionDef("c", nil, num(4)))
	if got := next.Names(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Define append names = %v", got)
	}
}

func TestMerge(t *testing.T) {
	a := mustParse(t, "fn a() { 1 }")
	b := mustParse(t, "fn b() { 2 } fn c() { 3 }")

	got := Merge(a, nil, b).Names()
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Merge names = %v", got)
	}
}

func TestInspect_Order(t *testing.T) {
	prog := mustParse(t, "fn f(p) { g(1, p)(2) * lambda x { 3 } }")

	var visited []string

	Inspect(prog, func(n Node) bool {
		if n == nil {
			return true
		}

		switch n := n.(type) {
		case *Program:
			visited = append(visited, "program")
		case *FunctionDef:
			visited = append(visited, "fn")
		case *BinaryExpr:
			visited = append(visited, n.Op.String())
		case *CallExpr:
			visited = append(visited, "call")
		case *LambdaExpr:
			visited = append(visited, "lambda")

			return false
		default:
			visited = append(visited, n.String())
		}

		return true
	})

	want := []string{"program", "fn", "f", "p", "*", "call", "g", "1", "p", "2", "lambda"}
	if !slices.Equal(visited, want) {
		t.Errorf("visit order = %v, want %v", visited, want)
	}
}
