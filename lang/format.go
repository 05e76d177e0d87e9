package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatConfig controls the native source layout produced by
// [Program.Format].
type FormatConfig struct {
	UseTabs          bool // indent bodies with a tab instead of spaces
	IndentSize       int  // spaces per indent level when UseTabs is false
	SpaceOperators   bool // surround binary operators with spaces
	BlankLineBetween bool // separate definitions with an empty line
}

// DefaultFormatConfig returns the layout used by the fmt command.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		IndentSize:       2,
		SpaceOperators:   true,
		BlankLineBetween: true,
	}
}

func (c FormatConfig) indent() string {
	if c.UseTabs {
		return "\t"
	}

	return strings.Repeat(" ", max(c.IndentSize, 0))
}

// Format writes the program in native syntax. Comments are not preserved.
// Parentheses are emitted only where grouping differs from the default
// precedence and associativity, so parsing the output yields the same tree.
func (p *Program) Format(w io.Writer, cfg FormatConfig) error {
	for i, fd := range p.Functions {
		if i > 0 && cfg.BlankLineBetween {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, formatFunctionDef(fd, cfg)); err != nil {
			return err
		}
	}

	return nil
}

func formatFunctionDef(fd *FunctionDef, cfg FormatConfig) string {
	var sb strings.Builder

	sb.WriteString(keywordFn + " " + fd.Name.String() + "(")
	sb.WriteString(strings.Join(fd.ParamNames(), ", "))
	sb.WriteString(") {\n")
	sb.WriteString(cfg.indent() + FormatExpr(fd.Body, cfg) + "\n")
	sb.WriteString("}\n")

	return sb.String()
}

// FormatExpr returns e in native syntax on a single line.
func FormatExpr(e Expr, cfg FormatConfig) string {
	var sb strings.Builder

	writeExpr(&sb, e, cfg)

	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr, cfg FormatConfig) {
	switch n := e.(type) {
	case *BinaryExpr:
		prec := n.Op.precedence()

		writeOperand(sb, n.Left, precedenceOf(n.Left) < prec, cfg)

		if cfg.SpaceOperators {
			sb.WriteString(" " + n.Op.String() + " ")
		} else {
			sb.WriteString(n.Op.String())
		}

		writeOperand(sb, n.Right, precedenceOf(n.Right) <= prec, cfg)

	case *CallExpr:
		sb.WriteString(n.Callee.String())

		for _, args := range n.Args {
			sb.WriteString("(")

			for i, arg := range args {
				if i > 0 {
					sb.WriteString(", ")
				}

				writeExpr(sb, arg, cfg)
			}

			sb.WriteString(")")
		}

	case *LambdaExpr:
		sb.WriteString(keywordLambda + " ")

		for _, p := range n.Params {
			sb.WriteString(p.String() + " ")
		}

		sb.WriteString("{ ")
		writeExpr(sb, n.Body, cfg)
		sb.WriteString(" }")

	default:
		sb.WriteString(e.String())
	}
}

func writeOperand(sb *strings.Builder, e Expr, group bool, cfg FormatConfig) {
	if group {
		sb.WriteString("(")
	}

	writeExpr(sb, e, cfg)

	if group {
		sb.WriteString(")")
	}
}

// precedenceOf returns the binding tier of e. Everything except a binary
// expression is a primary and never needs grouping.
func precedenceOf(e Expr) int {
	if b, ok := e.(*BinaryExpr); ok {
		return b.Op.precedence()
	}

	return precPrimary
}

// FormatJSON writes the program as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}
