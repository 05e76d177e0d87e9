package lang

import (
	"errors"
	"log/slog"
	"math/big"
)

// Parse parses a complete program. It is a pure function of its input:
// parsing the same text always yields a structurally identical tree, and
// any error aborts the whole parse. On failure the error is a *ParseError.
func Parse(source string, opts ...Option) (*Program, error) {
	return parseProgram(source, makeConfig(opts...))
}

// ParseExpr parses source as a single expression.
func ParseExpr(source string, opts ...Option) (Expr, error) {
	p := newParser(source, makeConfig(opts...))

	expr, err := p.run(func() (Node, error) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if p.tok.Kind != KindEOF {
			return nil, p.unexpected(
				`"+"`, `"-"`, `"*"`, `"/"`, KindEOF.String(),
			)
		}

		return e, nil
	})
	if err != nil {
		return nil, err
	}

	return expr.(Expr), nil
}

func parseProgram(source string, cfg config) (*Program, error) {
	p := newParser(source, cfg)

	prog, err := p.run(func() (Node, error) { return p.parseProgram() })
	if err != nil {
		return nil, err
	}

	return prog.(*Program), nil
}

// parser holds the parser state. The current token is the only lookahead.
// delims records the opening delimiters not yet closed, innermost last.
type parser struct {
	lex      *lexer
	source   string
	tok      Token
	delims   []Kind
	depth    int
	maxDepth int
}

func newParser(source string, cfg config) *parser {
	return &parser{
		lex:      newLexer(source),
		source:   source,
		maxDepth: cfg.maxDepth,
	}
}

// run primes the first token, invokes rule, and attaches the source text to
// any parse error.
func (p *parser) run(rule func() (Node, error)) (Node, error) {
	n, err := func() (Node, error) {
		if err := p.next(); err != nil {
			return nil, err
		}

		return rule()
	}()

	if pe := (*ParseError)(nil); errors.As(err, &pe) {
		pe.Source = p.source

		return nil, pe
	}

	return n, err
}

// next advances to the next token.
func (p *parser) next() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

// fail builds an error of the given kind at the current token. At end of
// input the kind is replaced: an unclosed delimiter is reported as
// unmatched, otherwise as ErrUnexpectedEndOfInput.
func (p *parser) fail(kind *Error, expected ...string) *ParseError {
	if p.tok.Kind == KindEOF {
		kind = ErrUnexpectedEndOfInput

		if n := len(p.delims); n > 0 {
			kind = unmatched(p.delims[n-1])
		}
	}

	pe := newParseError(kind, p.tok.Pos).expect(expected...)
	if p.tok.Kind != KindEOF {
		pe.found(p.tok.describe())
	}

	return pe
}

func (p *parser) unexpected(expected ...string) *ParseError {
	return p.fail(ErrUnexpectedToken, expected...)
}

func unmatched(open Kind) *Error {
	if open == KindLBrace {
		return ErrUnmatchedBrace
	}

	return ErrUnmatchedParen
}

func closer(open Kind) Kind {
	if open == KindLBrace {
		return KindRBrace
	}

	return KindRParen
}

// open consumes the opening delimiter k.
func (p *parser) open(k Kind) error {
	if p.tok.Kind != k {
		return p.unexpected(k.String())
	}

	p.delims = append(p.delims, k)

	return p.next()
}

// close consumes the delimiter matching the innermost open one.
func (p *parser) close() error {
	open := p.delims[len(p.delims)-1]

	if k := closer(open); p.tok.Kind != k {
		return p.fail(unmatched(open), k.String())
	}

	p.delims = p.delims[:len(p.delims)-1]

	return p.next()
}

func (p *parser) isIdent() bool {
	return p.tok.Kind == KindIdent || p.tok.Kind == KindQualIdent
}

// Program → FunctionDef* EOF.
func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{Functions: []*FunctionDef{}}

	for p.tok.Kind != KindEOF {
		if p.tok.Kind != KindFn {
			return nil, p.unexpected(KindFn.String(), KindEOF.String())
		}

		fd, err := p.parseFunctionDef()
		if err != nil {
			return nil, err
		}

		prog.Functions = append(prog.Functions, fd)
	}

	return prog, nil
}

// FunctionDef → "fn" Ident "(" [Ident ("," Ident)*] ")" "{" Expr "}".
func (p *parser) parseFunctionDef() (*FunctionDef, error) {
	fd := &FunctionDef{Pos: p.tok.Pos}

	if err := p.next(); err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	fd.Name = name

	if err := p.open(KindLParen); err != nil {
		return nil, err
	}

	fd.Params, err = p.parseParamList()
	if err != nil {
		return nil, err
	}

	if err := p.open(KindLBrace); err != nil {
		return nil, err
	}

	fd.Body, err = p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.close(); err != nil {
		return nil, err
	}

	return fd, nil
}

// parseParamList parses the parameters after "(" through the closing ")".
// A trailing comma is rejected.
func (p *parser) parseParamList() ([]*Ident, error) {
	params := []*Ident{}

	if p.tok.Kind == KindRParen {
		return params, p.close()
	}

	for {
		if !p.isIdent() {
			if len(params) == 0 {
				return nil, p.unexpected(KindIdent.String(), KindRParen.String())
			}

			return nil, p.unexpected(KindIdent.String())
		}

		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		params = append(params, id)

		switch p.tok.Kind {
		case KindComma:
			if err := p.next(); err != nil {
				return nil, err
			}

		case KindRParen:
			return params, p.close()

		default:
			return nil, p.fail(ErrUnmatchedParen,
				KindComma.String(), KindRParen.String())
		}
	}
}

// parseIdent consumes an identifier of either form.
func (p *parser) parseIdent() (*Ident, error) {
	if !p.isIdent() {
		return nil, p.unexpected(KindIdent.String())
	}

	id := NewIdent(p.tok.Text)
	id.Pos = p.tok.Pos

	return id, p.next()
}

// Expr → AddExpr.
func (p *parser) parseExpr() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return nil, newParseError(ErrMaxDepthExceeded, p.tok.Pos).
			found(p.tok.describe())
	}

	return p.parseAddExpr()
}

// AddExpr → MulExpr (("+" | "-") MulExpr)*.
func (p *parser) parseAddExpr() (Expr, error) {
	left, err := p.parseMulExpr()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := operatorOf(p.tok.Kind)
		if !ok || !op.IsAdditive() {
			return left, nil
		}

		opPos := p.tok.Pos

		if err := p.next(); err != nil {
			return nil, err
		}

		right, err := p.parseMulExpr()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Left: left, Op: op, Right: right, OpPos: opPos}
	}
}

// MulExpr → Primary (("*" | "/") Primary)*.
func (p *parser) parseMulExpr() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := operatorOf(p.tok.Kind)
		if !ok || !op.IsMultiplicative() {
			return left, nil
		}

		opPos := p.tok.Pos

		if err := p.next(); err != nil {
			return nil, err
		}

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Left: left, Op: op, Right: right, OpPos: opPos}
	}
}

// primaryExpected lists what may begin a primary expression.
var primaryExpected = []string{
	KindLambda.String(),
	KindIdent.String(),
	KindInt.String(),
	KindLParen.String(),
}

// Primary → Lambda | Call | Ident | Integer | "(" Expr ")".
//
// The alternatives are tried in that order. A call and a bare identifier
// share their first token, so the identifier is consumed once and the
// following token decides between them.
func (p *parser) parsePrimary() (Expr, error) {
	switch p.tok.Kind {
	case KindLambda:
		return p.parseLambda()

	case KindIdent, KindQualIdent:
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		if p.tok.Kind == KindLParen {
			return p.parseCall(id)
		}

		return id, nil

	case KindInt:
		lit := &IntegerLiteral{Text: p.tok.Text, Pos: p.tok.Pos}
		lit.Value, _ = new(big.Int).SetString(lit.Text, 10)

		return lit, p.next()

	case KindLParen:
		if err := p.open(KindLParen); err != nil {
			return nil, err
		}

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return inner, p.close()

	default:
		return nil, p.unexpected(primaryExpected...)
	}
}

// Lambda → "lambda" Ident* "{" Expr "}".
//
// Parameters have no delimiters; identifiers are consumed until "{".
func (p *parser) parseLambda() (Expr, error) {
	lam := &LambdaExpr{Pos: p.tok.Pos, Params: []*Ident{}}

	if err := p.next(); err != nil {
		return nil, err
	}

	for p.isIdent() {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		lam.Params = append(lam.Params, id)
	}

	if p.tok.Kind != KindLBrace {
		return nil, p.fail(ErrUnmatchedBrace,
			KindIdent.String(), KindLBrace.String())
	}

	if err := p.open(KindLBrace); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	lam.Body = body

	return lam, p.close()
}

// Call → Ident ("(" [Expr ("," Expr)*] ")")+.
//
// Every adjacent argument list is collected into the same CallExpr.
func (p *parser) parseCall(callee *Ident) (Expr, error) {
	call := &CallExpr{Callee: callee}

	for p.tok.Kind == KindLParen {
		if err := p.open(KindLParen); err != nil {
			return nil, err
		}

		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}

		call.Args = append(call.Args, args)
	}

	return call, nil
}

// parseArgList parses the arguments after "(" through the closing ")".
func (p *parser) parseArgList() ([]Expr, error) {
	args := []Expr{}

	if p.tok.Kind == KindRParen {
		return args, p.close()
	}

	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		switch p.tok.Kind {
		case KindComma:
			if err := p.next(); err != nil {
				return nil, err
			}

		case KindRParen:
			return args, p.close()

		default:
			return nil, p.fail(ErrUnmatchedParen,
				KindComma.String(), KindRParen.String())
		}
	}
}

// logValue summarizes a parse result for trace logging.
func logValue(prog *Program, err error) []slog.Attr {
	if err != nil {
		return []slog.Attr{slog.Any("error", err)}
	}

	return []slog.Attr{slog.Int("function_count", len(prog.Functions))}
}
