package lang

import (
	"strconv"
)

// Kind classifies a lexical token.
type Kind int

const (
	// KindEOF marks the end of input.
	KindEOF Kind = iota

	// KindIllegal is any rune that does not begin a token.
	KindIllegal

	// KindIdent is a plain identifier such as foo or _x1.
	KindIdent

	// KindQualIdent is a namespaced identifier such as math::add.
	KindQualIdent

	// KindInt is a run of decimal digits.
	KindInt

	KindFn     // fn
	KindLambda // lambda

	KindPlus  // +
	KindMinus // -
	KindStar  // *
	KindSlash // /

	KindLParen // (
	KindRParen // )
	KindLBrace // {
	KindRBrace // }
	KindComma  // ,
	KindScope  // ::
)

// String returns the name used for the kind in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindIllegal:
		return "illegal character"
	case KindIdent, KindQualIdent:
		return "identifier"
	case KindInt:
		return "integer"
	case KindFn:
		return strconv.Quote(keywordFn)
	case KindLambda:
		return strconv.Quote(keywordLambda)
	case KindPlus:
		return `"+"`
	case KindMinus:
		return `"-"`
	case KindStar:
		return `"*"`
	case KindSlash:
		return `"/"`
	case KindLParen:
		return `"("`
	case KindRParen:
		return `")"`
	case KindLBrace:
		return `"{"`
	case KindRBrace:
		return `"}"`
	case KindComma:
		return `","`
	case KindScope:
		return `"::"`
	default:
		return "unknown"
	}
}

const (
	keywordFn     = "fn"
	keywordLambda = "lambda"

	scopeSeparator = "::"
)

// Keywords returns the reserved words of the language.
func Keywords() []string {
	return []string{keywordFn, keywordLambda}
}

var punctuation = map[byte]Kind{
	'+': KindPlus,
	'-': KindMinus,
	'*': KindStar,
	'/': KindSlash,
	'(': KindLParen,
	')': KindRParen,
	'{': KindLBrace,
	'}': KindRBrace,
	',': KindComma,
}

// Position identifies a location in source text.
// Offset is a byte offset; Line and Column are 1-based, and Column counts
// runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns the position formatted as line:column.
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position refers to a location in source.
func (p Position) IsValid() bool { return p.Line > 0 }

// Token is a single classified lexeme.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// describe returns the token as it should appear in a diagnostic.
func (t Token) describe() string {
	switch t.Kind {
	case KindEOF:
		return t.Kind.String()
	default:
		return strconv.Quote(t.Text)
	}
}
