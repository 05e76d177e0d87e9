package lang

import (
	"iter"
	"math/big"
	"strings"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// Position returns the location of the node's first token.
	Position() Position

	// String returns the node as a compact S-expression.
	String() string
}

// Expr is the sum type of expression nodes: *BinaryExpr, *CallExpr,
// *LambdaExpr, *Ident, and *IntegerLiteral.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed compilation unit.
type Program struct {
	Functions []*FunctionDef
}

// FunctionDef is a top-level definition: fn Name(Params) { Body }.
// Parameter names are not required to be unique.
type FunctionDef struct {
	Name   *Ident
	Params []*Ident
	Body   Expr
	Pos    Position // position of the fn keyword
}

// Ident is a plain identifier, or a namespaced one when Namespace is set.
type Ident struct {
	Namespace string
	Name      string
	Pos       Position
}

// IntegerLiteral is an unsigned decimal literal of unbounded precision.
// Text preserves the literal as written, including leading zeros.
type IntegerLiteral struct {
	Text  string
	Value *big.Int
	Pos   Position
}

// BinaryExpr is Left Op Right.
type BinaryExpr struct {
	Left  Expr
	Op    Operator
	Right Expr
	OpPos Position
}

// CallExpr applies Callee to one or more adjacent argument lists, in source
// order: f(1)(2, 3) has Args [[1], [2, 3]].
type CallExpr struct {
	Callee *Ident
	Args   [][]Expr
}

// LambdaExpr is an anonymous function: lambda Params { Body }.
type LambdaExpr struct {
	Params []*Ident
	Body   Expr
	Pos    Position // position of the lambda keyword
}

func (*BinaryExpr) exprNode()     {}
func (*CallExpr) exprNode()       {}
func (*LambdaExpr) exprNode()     {}
func (*Ident) exprNode()          {}
func (*IntegerLiteral) exprNode() {}

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /
)

// String returns the operator symbol.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// IsAdditive reports whether op is + or -.
func (op Operator) IsAdditive() bool { return op == OpAdd || op == OpSub }

// IsMultiplicative reports whether op is * or /.
func (op Operator) IsMultiplicative() bool { return op == OpMul || op == OpDiv }

// precedence returns the binding tier of op; higher binds tighter.
func (op Operator) precedence() int {
	if op.IsMultiplicative() {
		return precMul
	}

	return precAdd
}

const (
	precAdd = iota + 1
	precMul
	precPrimary
)

func operatorOf(k Kind) (Operator, bool) {
	switch k {
	case KindPlus:
		return OpAdd, true
	case KindMinus:
		return OpSub, true
	case KindStar:
		return OpMul, true
	case KindSlash:
		return OpDiv, true
	default:
		return 0, false
	}
}

// NewIdent constructs an identifier from its source form, splitting a
// namespaced name at the first "::".
func NewIdent(name string) *Ident {
	if ns, base, ok := strings.Cut(name, scopeSeparator); ok {
		return &Ident{Namespace: ns, Name: base}
	}

	return &Ident{Name: name}
}

// NewInteger constructs an integer literal from a non-negative value.
func NewInteger(v int64) *IntegerLiteral {
	n := big.NewInt(v)

	return &IntegerLiteral{Text: n.String(), Value: n}
}

// NewFunctionDef constructs a definition named name with the given
// parameter names and body.
func NewFunctionDef(name string, params []string, body Expr) *FunctionDef {
	ids := make([]*Ident, len(params))
	for i, p := range params {
		ids[i] = NewIdent(p)
	}

	return &FunctionDef{Name: NewIdent(name), Params: ids, Body: body}
}

// IsQualified reports whether the identifier has a namespace segment.
func (id *Ident) IsQualified() bool { return id.Namespace != "" }

// Position implements Node.
func (id *Ident) Position() Position { return id.Pos }

// String returns the identifier as written in source.
func (id *Ident) String() string {
	if !id.IsQualified() {
		return id.Name
	}

	return id.Namespace + scopeSeparator + id.Name
}

// Position implements Node.
func (lit *IntegerLiteral) Position() Position { return lit.Pos }

// String returns the literal as written in source.
func (lit *IntegerLiteral) String() string { return lit.Text }

// Position implements Node.
func (b *BinaryExpr) Position() Position { return b.Left.Position() }

func (b *BinaryExpr) String() string {
	return "(" + b.Op.String() + " " + b.Left.String() + " " + b.Right.String() + ")"
}

// Position implements Node.
func (c *CallExpr) Position() Position { return c.Callee.Pos }

func (c *CallExpr) String() string {
	var sb strings.Builder

	sb.WriteString("(call ")
	sb.WriteString(c.Callee.String())

	for _, args := range c.Args {
		sb.WriteString(" ")
		sb.WriteString(exprList(args))
	}

	sb.WriteString(")")

	return sb.String()
}

// Arity returns the total number of arguments across all argument lists.
func (c *CallExpr) Arity() int {
	n := 0
	for _, args := range c.Args {
		n += len(args)
	}

	return n
}

// Position implements Node.
func (l *LambdaExpr) Position() Position { return l.Pos }

func (l *LambdaExpr) String() string {
	return "(lambda " + identList(l.Params) + " " + l.Body.String() + ")"
}

// Position implements Node.
func (fd *FunctionDef) Position() Position { return fd.Pos }

func (fd *FunctionDef) String() string {
	return "(fn " + fd.Name.String() + " " + identList(fd.Params) + " " +
		fd.Body.String() + ")"
}

// ParamNames returns the parameter names as written in source.
func (fd *FunctionDef) ParamNames() []string {
	names := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		names[i] = p.String()
	}

	return names
}

// Position implements Node. An empty program is positioned at 1:1.
func (p *Program) Position() Position {
	if len(p.Functions) == 0 {
		return Position{Line: 1, Column: 1}
	}

	return p.Functions[0].Pos
}

// String returns each definition on its own line.
func (p *Program) String() string {
	defs := make([]string, len(p.Functions))
	for i, fd := range p.Functions {
		defs[i] = fd.String()
	}

	return strings.Join(defs, "\n")
}

// All returns an iterator over the program's function definitions.
func (p *Program) All() iter.Seq[*FunctionDef] {
	return func(yield func(*FunctionDef) bool) {
		for _, fd := range p.Functions {
			if !yield(fd) {
				return
			}
		}
	}
}

// Names returns the name of every definition in source order.
func (p *Program) Names() []string {
	names := make([]string, 0, len(p.Functions))
	for fd := range p.All() {
		names = append(names, fd.Name.String())
	}

	return names
}

// Lookup returns the first definition with the given name.
func (p *Program) Lookup(name string) (*FunctionDef, bool) {
	for fd := range p.All() {
		if fd.Name.String() == name {
			return fd, true
		}
	}

	return nil, false
}

// Define returns a new program in which fd replaces every definition with
// the same name, or is appended when there is none. The receiver is not
// modified.
func (p *Program) Define(fd *FunctionDef) *Program {
	out := &Program{Functions: make([]*FunctionDef, 0, len(p.Functions)+1)}
	replaced := false

	for _, have := range p.Functions {
		if have.Name.String() != fd.Name.String() {
			out.Functions = append(out.Functions, have)

			continue
		}

		if !replaced {
			out.Functions = append(out.Functions, fd)
			replaced = true
		}
	}

	if !replaced {
		out.Functions = append(out.Functions, fd)
	}

	return out
}

// Merge returns a program holding the definitions of all given programs in
// order. Nil programs are skipped.
func Merge(progs ...*Program) *Program {
	out := new(Program)

	for _, p := range progs {
		if p != nil {
			out.Functions = append(out.Functions, p.Functions...)
		}
	}

	return out
}

func identList(ids []*Ident) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}

	return "(" + strings.Join(parts, " ") + ")"
}

func exprList(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}

	return "(" + strings.Join(parts, " ") + ")"
}
