package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/lamb/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the call whose argument list holds the cursor.
type functionCall struct {
	name     string // callee name, possibly namespaced
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside an argument list
}

// isNameRune reports whether r may appear in a callee name.
func isNameRune(r rune) bool {
	return r == '_' || r == ':' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// detectFunctionCall finds the innermost unclosed argument list before the
// cursor and reports its callee and the index of the argument being typed.
// In a curried call such as f(1)(2, the later lists count on from the
// earlier ones, so the hint follows the flattened parameter list.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open := -1
	depth := 0

	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}

		if open >= 0 {
			break
		}
	}

	if open < 0 {
		return functionCall{}
	}

	// Walk back over completed argument lists of a curried call.
	nameEnd := open
	prior := 0

	for nameEnd > 0 && input[nameEnd-1] == ')' {
		start, commas := matchingOpen(input, nameEnd-1)
		if start < 0 {
			return functionCall{}
		}

		if strings.TrimSpace(input[start+1:nameEnd-1]) != "" {
			prior += commas + 1
		}

		nameEnd = start
	}

	nameStart := nameEnd
	for nameStart > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:nameStart])
		if !isNameRune(r) {
			break
		}

		nameStart -= size
	}

	name := input[nameStart:nameEnd]
	if name == "" || strings.HasPrefix(name, ":") {
		return functionCall{}
	}

	argIndex := prior
	depth = 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// matchingOpen returns the index of the '(' matching the ')' at close and
// the number of top-level commas between them, or -1 if unmatched.
func matchingOpen(input string, close int) (open, commas int) {
	depth := 0

	for i := close; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i, commas
			}
		case ',':
			if depth == 1 {
				commas++
			}
		}
	}

	return -1, 0
}

// getSignature returns the signature of a defined function and its
// parameter names, or "" if name is not defined.
func getSignature(prog *lang.Program, name string) (signature string, params []string) {
	fd, ok := prog.Lookup(name)
	if !ok {
		return "", nil
	}

	return signatureOf(fd), fd.ParamNames()
}

// renderSignatureHint renders a signature with the current parameter
// highlighted. Arguments past the last parameter highlight nothing.
func renderSignatureHint(signature string, params []string, currentArgIdx int) string {
	openParen := strings.Index(signature, "(")
	if openParen == -1 {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(signature[:openParen]))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == currentArgIdx {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
