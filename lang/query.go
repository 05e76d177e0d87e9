package lang

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FunctionInfo is the syntactic metadata of a definition exposed to
// [Select] predicates.
type FunctionInfo struct {
	Name      string   `expr:"name"      json:"name"`
	Namespace string   `expr:"namespace" json:"namespace,omitempty"`
	Params    []string `expr:"params"    json:"params"`
	Arity     int      `expr:"arity"     json:"arity"`
	Calls     []string `expr:"calls"     json:"calls"`
	Lambdas   int      `expr:"lambdas"   json:"lambdas"`
	Depth     int      `expr:"depth"     json:"depth"`
	Line      int      `expr:"line"      json:"line"`
}

// Describe returns the metadata of fd.
func Describe(fd *FunctionDef) FunctionInfo {
	lambdas := 0

	Inspect(fd.Body, func(n Node) bool {
		if _, ok := n.(*LambdaExpr); ok {
			lambdas++
		}

		return true
	})

	calls := fd.Calls()
	if calls == nil {
		calls = []string{}
	}

	return FunctionInfo{
		Name:      fd.Name.String(),
		Namespace: fd.Name.Namespace,
		Params:    fd.ParamNames(),
		Arity:     len(fd.Params),
		Calls:     calls,
		Lambdas:   lambdas,
		Depth:     depth(fd.Body),
		Line:      fd.Pos.Line,
	}
}

// Predicate is a compiled boolean filter over [FunctionInfo].
type Predicate struct {
	source  string
	program *vm.Program
}

// CompilePredicate compiles a boolean expr-lang expression, such as
// `arity > 1 && "add" in calls`, whose variables are the fields of
// [FunctionInfo]. An empty source matches every definition.
func CompilePredicate(source string) (*Predicate, error) {
	if source == "" {
		return &Predicate{}, nil
	}

	program, err := expr.Compile(source, expr.Env(FunctionInfo{}), expr.AsBool())
	if err != nil {
		return nil, ErrInvalidPredicate.Wrap(err).
			With(slog.String("predicate", source))
	}

	return &Predicate{source: source, program: program}, nil
}

// Match reports whether fd satisfies the predicate.
func (p *Predicate) Match(fd *FunctionDef) (bool, error) {
	if p.program == nil {
		return true, nil
	}

	out, err := expr.Run(p.program, Describe(fd))
	if err != nil {
		return false, ErrInvalidPredicate.Wrap(err).With(
			slog.String("predicate", p.source),
			slog.String("function", fd.Name.String()),
		)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Select returns the definitions of prog that satisfy predicate, in source
// order. This inspects syntax only; no function is evaluated.
func Select(prog *Program, predicate string) ([]*FunctionDef, error) {
	pred, err := CompilePredicate(predicate)
	if err != nil {
		return nil, err
	}

	var out []*FunctionDef

	for fd := range prog.All() {
		ok, err := pred.Match(fd)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, fd)
		}
	}

	return out, nil
}
