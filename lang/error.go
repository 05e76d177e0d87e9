package lang

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrUnterminatedComment  = NewError("unterminated comment")
	ErrUnexpectedToken      = NewError("unexpected token")
	ErrUnmatchedBrace       = NewError("unmatched brace")
	ErrUnmatchedParen       = NewError("unmatched parenthesis")
	ErrUnexpectedEndOfInput = NewError("unexpected end of input")
	ErrMaxDepthExceeded     = NewError("maximum nesting depth exceeded")
	ErrReadInput            = NewError("failed to read input")
	ErrInvalidPredicate     = NewError("invalid predicate")
	ErrFunctionNotFound     = NewError("function not found")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from. Errors
// created with [Error.With] or [Error.Wrap] keep matching their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" || t.err != nil || len(t.attrs) > 0 {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: slices.Concat(e.attrs, attrs),
	}
}

// ParseError describes the first failure encountered while parsing.
// It unwraps to one of the kind sentinels, so callers can test it with
// errors.Is(err, ErrUnmatchedBrace) and friends.
type ParseError struct {
	Kind     *Error   // one of the Err* sentinels
	Pos      Position // where the failure was detected
	Found    string   // the offending token, quoted, or "end of input"
	Expected []string // token kinds that would have been accepted
	Source   string   // the original source input, if known
}

func newParseError(kind *Error, pos Position) *ParseError {
	return &ParseError{Kind: kind, Pos: pos}
}

func (e *ParseError) found(s string) *ParseError {
	e.Found = s

	return e
}

func (e *ParseError) expect(kinds ...string) *ParseError {
	e.Expected = append(e.Expected, kinds...)

	return e
}

// Unwrap returns the kind sentinel.
func (e *ParseError) Unwrap() error { return e.Kind }

// Error implements the error interface. When the source is attached, the
// offending line is included with a caret under the failing column.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString(e.Pos.String())
	buf.WriteString(": ")
	buf.WriteString(e.Kind.Error())

	if e.Found != "" {
		buf.WriteString(" ")
		buf.WriteString(e.Found)
	}

	if len(e.Expected) > 0 {
		buf.WriteString(" (expected ")
		buf.WriteString(strings.Join(e.Expected, ", "))
		buf.WriteString(")")
	}

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteString("\n")
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Snippet returns the source line containing the error followed by a caret
// marker, or "" when no source is attached.
func (e *ParseError) Snippet() string {
	if e.Source == "" || e.Pos.Line < 1 {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(lines) {
		return ""
	}

	var buf strings.Builder

	line := strings.TrimSuffix(lines[e.Pos.Line-1], "\r")
	num := strconv.Itoa(e.Pos.Line)

	buf.WriteString("  " + num + " | " + line + "\n")

	// 2 leading spaces + " | " (3 chars)
	buf.WriteString(strings.Repeat(" ", len(num)+5))

	// Tabs before the column are echoed to keep the caret aligned.
	col := 1
	for _, r := range line {
		if col >= e.Pos.Column {
			break
		}

		if r == '\t' {
			buf.WriteByte('\t')
		} else {
			buf.WriteByte(' ')
		}

		col++
	}

	if col < e.Pos.Column {
		buf.WriteString(strings.Repeat(" ", e.Pos.Column-col))
	}

	buf.WriteString("^")

	return buf.String()
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Kind.Error()),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
		slog.Int("offset", e.Pos.Offset),
	}

	if e.Found != "" {
		attrs = append(attrs, slog.String("found", e.Found))
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.String("expected", strings.Join(e.Expected, ", ")))
	}

	return slog.GroupValue(attrs...)
}
