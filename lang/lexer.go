package lang

import (
	"strings"
	"unicode/utf8"
)

// lexer scans tokens on demand from source text. Whitespace and comments
// are skipped before every token.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// Tokenize scans the whole source and returns its tokens, ending with a
// KindEOF token.
func Tokenize(src string) ([]Token, error) {
	l := newLexer(src)

	var toks []Token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == KindEOF {
			return toks, nil
		}
	}
}

func (l *lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) advanceN(n int) {
	for range n {
		l.advance()
	}
}

// next returns the next token. The only lexical failure is an unterminated
// block comment.
func (l *lexer) next() (Token, error) {
	err := l.skip()
	if err != nil {
		return Token{}, err
	}

	start := l.position()

	if l.eof() {
		return Token{Kind: KindEOF, Pos: start}, nil
	}

	ch := l.src[l.pos]

	switch {
	case isIdentStart(ch):
		return l.scanIdent(start), nil

	case isDigit(ch):
		for !l.eof() && isDigit(l.src[l.pos]) {
			l.advance()
		}

		return l.token(KindInt, start), nil

	case strings.HasPrefix(l.src[l.pos:], scopeSeparator):
		l.advanceN(len(scopeSeparator))

		return l.token(KindScope, start), nil
	}

	if kind, ok := punctuation[ch]; ok {
		l.advance()

		return l.token(kind, start), nil
	}

	l.advance()

	return l.token(KindIllegal, start), nil
}

func (l *lexer) token(kind Kind, start Position) Token {
	return Token{Kind: kind, Text: l.src[start.Offset:l.pos], Pos: start}
}

// scanIdent scans a plain identifier and, when it is immediately followed by
// "::" and another identifier, extends it to the namespaced form.
func (l *lexer) scanIdent(start Position) Token {
	l.scanPlain()

	rest := l.src[l.pos:]
	if strings.HasPrefix(rest, scopeSeparator) &&
		len(rest) > len(scopeSeparator) &&
		isIdentStart(rest[len(scopeSeparator)]) {
		l.advanceN(len(scopeSeparator))
		l.scanPlain()

		return l.token(KindQualIdent, start)
	}

	tok := l.token(KindIdent, start)

	switch tok.Text {
	case keywordFn:
		tok.Kind = KindFn
	case keywordLambda:
		tok.Kind = KindLambda
	}

	return tok
}

func (l *lexer) scanPlain() {
	l.advance()

	for !l.eof() && isIdentContinue(l.src[l.pos]) {
		l.advance()
	}
}

// skip consumes whitespace, line comments, and block comments.
func (l *lexer) skip() error {
	for !l.eof() {
		switch rest := l.src[l.pos:]; {
		case isSpace(rest[0]):
			l.advance()

		case strings.HasPrefix(rest, "//"):
			for !l.eof() && l.src[l.pos] != '\n' {
				l.advance()
			}

		case strings.HasPrefix(rest, "/*"):
			start := l.position()

			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return newParseError(ErrUnterminatedComment, start).
					found("/*").
					expect(`"*/"`)
			}

			l.advanceN(utf8.RuneCountInString(rest[:end+4]))

		default:
			return nil
		}
	}

	return nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
