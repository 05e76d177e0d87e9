// Package lang implements the front end of lamb, a small expression
// language of top-level functions, integer arithmetic, lambdas, and curried
// application. It turns source text into a typed syntax tree; it does not
// evaluate anything.
//
// # Grammar
//
// Informal EBNF:
//
//	Program     → FunctionDef* EOF
//	FunctionDef → 'fn' Ident '(' (Ident (',' Ident)*)? ')' '{' Expr '}'
//	Expr        → MulExpr (('+' | '-') MulExpr)*
//	MulExpr     → Primary (('*' | '/') Primary)*
//	Primary     → Lambda | Call | Ident | Integer | '(' Expr ')'
//	Lambda      → 'lambda' Ident* '{' Expr '}'
//	Call        → Ident ('(' (Expr (',' Expr)*)? ')')+
//	Ident       → Plain | Plain '::' Plain
//	Plain       → [A-Za-z_][A-Za-z0-9_]*
//	Integer     → [0-9]+
//
// Whitespace, line comments (// ...), and block comments (/* ... */, not
// nested) may appear between any two tokens. The words fn and lambda are
// reserved.
//
// # Example
//
//	// helpers
//	fn math::square(x) { x * x }
//
//	fn adder(a) { lambda b { a + b } }
//
//	fn main() {
//	  adder(1)(math::square(2 + 3) / 5)
//	}
//
// # Trees
//
// [Parse] returns a [*Program] whose definitions hold [Expr] values built
// from [*BinaryExpr], [*CallExpr], [*LambdaExpr], [*Ident], and
// [*IntegerLiteral]. Grouping parentheses shape the tree but leave no node
// behind. Binary operators associate to the left, and * and / bind tighter
// than + and -. Adjacent argument lists are flattened into one call:
// f(1)(2, 3) is a single [*CallExpr] with two argument lists.
//
// Every node prints as a compact S-expression through its String method.
// [Program.Format] renders native source, and [Program.FormatJSON] and
// [Program.FormatYAML] render generic encodings.
//
// # Errors
//
// A parse either succeeds completely or fails with a [*ParseError]
// describing the first failure: its position, the token found, and the
// tokens that would have been accepted. The error unwraps to one of the
// kind sentinels:
//
//   - [ErrUnterminatedComment]
//   - [ErrUnexpectedToken]
//   - [ErrUnmatchedBrace]
//   - [ErrUnmatchedParen]
//   - [ErrUnexpectedEndOfInput]
//
// # Caching
//
// [ParseString] and [ParseReader] share a process-wide cache keyed by the
// source hash, so repeated parses of the same text return the same tree.
// Trees obtained from the cache are shared and must not be modified;
// [Program.Define] and [Merge] build new programs instead.
package lang
