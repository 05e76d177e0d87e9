package lang

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts the program to native Go maps and slices suitable for
// generic encoders. Every node becomes a map with a "kind" key.
func (p *Program) ToMap() map[string]any {
	fns := make([]any, len(p.Functions))
	for i, fd := range p.Functions {
		fns[i] = fd.ToMap()
	}

	return map[string]any{"functions": fns}
}

// ToMap converts the definition to native Go maps and slices.
func (fd *FunctionDef) ToMap() map[string]any {
	return map[string]any{
		"kind":   "fn",
		"name":   fd.Name.String(),
		"params": identsToNative(fd.Params),
		"body":   ToNative(fd.Body),
		"line":   fd.Pos.Line,
	}
}

// ToNative converts an expression to native Go values. Identifiers and
// integers become maps like every other node; integer values are int64 when
// they fit and decimal strings otherwise.
func ToNative(e Expr) any {
	switch n := e.(type) {
	case *Ident:
		m := map[string]any{"kind": "ident", "name": n.Name}
		if n.IsQualified() {
			m["namespace"] = n.Namespace
		}

		return m

	case *IntegerLiteral:
		m := map[string]any{"kind": "int", "value": n.Text}
		if n.Value != nil && n.Value.IsInt64() {
			m["value"] = n.Value.Int64()
		}

		// Leading zeros are only recoverable from the text.
		if n.Value == nil || n.Value.String() != n.Text {
			m["text"] = n.Text
		}

		return m

	case *BinaryExpr:
		return map[string]any{
			"kind":  "binary",
			"op":    n.Op.String(),
			"left":  ToNative(n.Left),
			"right": ToNative(n.Right),
		}

	case *CallExpr:
		lists := make([]any, len(n.Args))
		for i, args := range n.Args {
			list := make([]any, len(args))
			for j, arg := range args {
				list[j] = ToNative(arg)
			}

			lists[i] = list
		}

		return map[string]any{
			"kind":   "call",
			"callee": n.Callee.String(),
			"args":   lists,
		}

	case *LambdaExpr:
		return map[string]any{
			"kind":   "lambda",
			"params": identsToNative(n.Params),
			"body":   ToNative(n.Body),
		}

	default:
		return nil
	}
}

func identsToNative(ids []*Ident) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}
