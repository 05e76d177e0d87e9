package lang

import (
	"io"
	"strings"
)

// Print writes an indented tree dump of the program to the writer.
func (p *Program) Print(w io.Writer) error {
	return p.PrintIndent(w, 0)
}

// PrintIndent writes an indented tree dump of the program to the writer,
// starting at the given indentation level.
func (p *Program) PrintIndent(w io.Writer, indent int) error {
	pr := &printer{w: w}

	for _, fd := range p.Functions {
		pr.function(fd, indent)
	}

	return pr.err
}

// printer writes tree dump lines, retaining the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (pr *printer) put(indent int, item ...string) {
	if pr.err != nil {
		return
	}

	line := strings.Repeat("  ", indent) + strings.Join(item, ": ") + "\n"
	_, pr.err = io.WriteString(pr.w, line)
}

func (pr *printer) function(fd *FunctionDef, indent int) {
	pr.put(indent, "Function", fd.Name.String())

	if len(fd.Params) > 0 {
		pr.put(indent+1, "Parameters", strings.Join(fd.ParamNames(), ", "))
	}

	pr.put(indent+1, "Body")
	pr.expr(fd.Body, indent+2)
}

func (pr *printer) expr(e Expr, indent int) {
	switch n := e.(type) {
	case *Ident:
		pr.put(indent, "Identifier", n.String())

	case *IntegerLiteral:
		pr.put(indent, "Integer", n.Text)

	case *BinaryExpr:
		pr.put(indent, "Binary", n.Op.String())
		pr.expr(n.Left, indent+1)
		pr.expr(n.Right, indent+1)

	case *CallExpr:
		pr.put(indent, "Call", n.Callee.String())

		for _, args := range n.Args {
			if len(args) == 0 {
				pr.put(indent+1, "Arguments", "(empty)")

				continue
			}

			pr.put(indent+1, "Arguments")

			for _, arg := range args {
				pr.expr(arg, indent+2)
			}
		}

	case *LambdaExpr:
		pr.put(indent, "Lambda", identList(n.Params))
		pr.expr(n.Body, indent+1)
	}
}
