package lang

// Visitor is invoked by [Walk] for each node. If Visit returns a non-nil
// visitor w, Walk visits each child of node with w, then calls w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node in depth-first order, visiting
// children in source order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, fd := range n.Functions {
			Walk(v, fd)
		}

	case *FunctionDef:
		Walk(v, n.Name)

		for _, p := range n.Params {
			Walk(v, p)
		}

		Walk(v, n.Body)

	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *CallExpr:
		Walk(v, n.Callee)

		for _, args := range n.Args {
			for _, arg := range args {
				Walk(v, arg)
			}
		}

	case *LambdaExpr:
		for _, p := range n.Params {
			Walk(v, p)
		}

		Walk(v, n.Body)

	case *Ident, *IntegerLiteral:
		// leaves
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}

	return nil
}

// Inspect traverses the tree rooted at node, calling f for each node and
// then f(nil) after a node's children. Children are skipped when f returns
// false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// depth returns the nesting depth of the expression tree rooted at e.
// Leaves have depth 1.
func depth(e Expr) int {
	switch n := e.(type) {
	case *BinaryExpr:
		return 1 + max(depth(n.Left), depth(n.Right))

	case *CallExpr:
		d := 0

		for _, args := range n.Args {
			for _, arg := range args {
				d = max(d, depth(arg))
			}
		}

		return 1 + d

	case *LambdaExpr:
		return 1 + depth(n.Body)

	default:
		return 1
	}
}
