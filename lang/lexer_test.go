package lang

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
		texts []string
	}{
		{
			name:  "empty",
			input: "",
			want:  []Kind{KindEOF},
			texts: []string{""},
		},
		{
			name:  "function header",
			input: "fn f(a, b) {",
			want: []Kind{
				KindFn, KindIdent, KindLParen, KindIdent, KindComma,
				KindIdent, KindRParen, KindLBrace, KindEOF,
			},
			texts: []string{"fn", "f", "(", "a", ",", "b", ")", "{", ""},
		},
		{
			name:  "namespaced identifier is one token",
			input: "a::b",
			want:  []Kind{KindQualIdent, KindEOF},
			texts: []string{"a::b", ""},
		},
		{
			name:  "second separator is left over",
			input: "a::b::c",
			want:  []Kind{KindQualIdent, KindScope, KindIdent, KindEOF},
			texts: []string{"a::b", "::", "c", ""},
		},
		{
			name:  "separator requires adjacency",
			input: "a ::b",
			want:  []Kind{KindIdent, KindScope, KindIdent, KindEOF},
			texts: []string{"a", "::", "b", ""},
		},
		{
			name:  "keyword prefix is an identifier",
			input: "fnx lambda_ lambda",
			want:  []Kind{KindIdent, KindIdent, KindLambda, KindEOF},
			texts: []string{"fnx", "lambda_", "lambda", ""},
		},
		{
			name:  "keyword as namespace segment",
			input: "fn::x",
			want:  []Kind{KindQualIdent, KindEOF},
			texts: []string{"fn::x", ""},
		},
		{
			name:  "integer keeps leading zeros",
			input: "007 12ab",
			want:  []Kind{KindInt, KindInt, KindIdent, KindEOF},
			texts: []string{"007", "12", "ab", ""},
		},
		{
			name:  "operators",
			input: "a+b-c*d/e",
			want: []Kind{
				KindIdent, KindPlus, KindIdent, KindMinus, KindIdent,
				KindStar, KindIdent, KindSlash, KindIdent, KindEOF,
			},
			texts: []string{"a", "+", "b", "-", "c", "*", "d", "/", "e", ""},
		},
		{
			name:  "comments are skipped",
			input: "a // line\n/* block\n */ b /**/",
			want:  []Kind{KindIdent, KindIdent, KindEOF},
			texts: []string{"a", "b", ""},
		},
		{
			name:  "illegal rune",
			input: "é@",
			want:  []Kind{KindIllegal, KindIllegal, KindEOF},
			texts: []string{"é", "@", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}

			if len(toks) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %d tokens, want %d: %v",
					tt.input, len(toks), len(tt.want), toks)
			}

			for i, tok := range toks {
				if tok.Kind != tt.want[i] {
					t.Errorf("token %d kind = %v, want %v", i, tok.Kind, tt.want[i])
				}

				if tok.Text != tt.texts[i] {
					t.Errorf("token %d text = %q, want %q", i, tok.Text, tt.texts[i])
				}
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	toks, err := Tokenize("x /* a\nb */ yé\n  z")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	want := []Position{
		{Offset: 0, Line: 1, Column: 1},  // x
		{Offset: 12, Line: 2, Column: 6}, // yé
		{Offset: 18, Line: 3, Column: 3}, // z
		{Offset: 19, Line: 3, Column: 4}, // EOF
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}

	for i, tok := range toks {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%q) at %+v, want %+v", i, tok.Text, tok.Pos, want[i])
		}
	}
}

func TestTokenize_UnterminatedComment(t *testing.T) {
	tests := []struct {
		input string
		want  Position
	}{
		{input: "/* never closed", want: Position{Offset: 0, Line: 1, Column: 1}},
		{input: "a\n  /* x *", want: Position{Offset: 4, Line: 2, Column: 3}},
		{input: "/*/", want: Position{Offset: 0, Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		_, err := Tokenize(tt.input)
		if !errors.Is(err, ErrUnterminatedComment) {
			t.Fatalf("Tokenize(%q) error = %v, want ErrUnterminatedComment", tt.input, err)
		}

		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Tokenize(%q) error is %T, want *ParseError", tt.input, err)
		}

		if pe.Pos != tt.want {
			t.Errorf("Tokenize(%q) error at %+v, want %+v", tt.input, pe.Pos, tt.want)
		}
	}
}
