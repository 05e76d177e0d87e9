package lang

import (
	"log/slog"
)

// Calls returns the distinct callee names of every call in fd's body, in
// order of first appearance.
func (fd *FunctionDef) Calls() []string {
	var (
		names []string
		seen  = make(map[string]bool)
	)

	Inspect(fd.Body, func(n Node) bool {
		if call, ok := n.(*CallExpr); ok {
			name := call.Callee.String()
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}

		return true
	})

	return names
}

// Dependencies returns the names of the top-level functions that the
// function name calls, directly or transitively, ordered so that every
// function appears after the functions it depends on. Callees that are
// not defined in p are ignored, as is name itself.
//
// Only call sites are considered: a bare identifier that names a function
// is not a dependency. The analysis is purely syntactic and does not
// account for lambda parameters shadowing function names.
func (p *Program) Dependencies(name string) ([]string, error) {
	if _, ok := p.Lookup(name); !ok {
		return nil, ErrFunctionNotFound.With(slog.String("name", name))
	}

	var (
		order   []string
		visited = map[string]bool{name: true}
		visit   func(string)
	)

	visit = func(fn string) {
		fd, ok := p.Lookup(fn)
		if !ok {
			return
		}

		for _, callee := range fd.Calls() {
			if visited[callee] {
				continue
			}

			if _, ok := p.Lookup(callee); !ok {
				continue
			}

			visited[callee] = true
			visit(callee)
			order = append(order, callee)
		}
	}

	visit(name)

	return order, nil
}
