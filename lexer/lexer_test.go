package lexer

import (
	"testing"

	"github.com/jsona-lang/jsona-go/token"
)

func TestNextPunctuation(t *testing.T) {
	input := "{}[]():,@="
	want := []token.Kind{
		token.LeftBrace, token.RightBrace,
		token.LeftBracket, token.RightBracket,
		token.LeftParen, token.RightParen,
		token.Colon, token.Comma, token.At, token.Equals,
	}

	l := New(input)
	for i, k := range want {
		tok := l.Next()
		if tok.Kind != k {
			t.Errorf("token %d: got %s, want %s", i, tok.Kind, k)
		}
	}
	if tok := l.Next(); tok.Kind != token.EOF {
		t.Errorf("expected EOF, got %s", tok.Kind)
	}
}

func TestNextKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		bool_ bool
	}{
		{"true", token.Boolean, true},
		{"false", token.Boolean, false},
		{"null", token.Null, false},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Kind != tt.kind {
			t.Errorf("%q: got kind %s, want %s", tt.input, tok.Kind, tt.kind)
		}
		if tt.kind == token.Boolean && tok.Bool != tt.bool_ {
			t.Errorf("%q: got bool %t, want %t", tt.input, tok.Bool, tt.bool_)
		}
	}
}

func TestNextIdentifiers(t *testing.T) {
	input := "foo bar-baz _leading camelCase"
	want := []string{"foo", "bar-baz", "_leading", "camelCase"}
	l := New(input)
	for i, w := range want {
		tok := l.Next()
		if tok.Kind != token.Identifier || tok.Str != w {
			t.Errorf("token %d: got %s(%q), want Identifier(%q)", i, tok.Kind, tok.Str, w)
		}
	}
}

func TestNextNumbers(t *testing.T) {
	tests := []struct {
		input     string
		kind      token.Kind
		wantInt   int64
		wantFloat float64
	}{
		{"0", token.Integer, 0, 0},
		{"42", token.Integer, 42, 0},
		{"-17", token.Integer, -17, 0},
		{"+5", token.Integer, 5, 0},
		{"0x1F", token.Integer, 31, 0},
		{"-0xFF", token.Integer, -255, 0},
		{"3.14", token.Float, 0, 3.14},
		{".5", token.Float, 0, 0.5},
		{"1e10", token.Float, 0, 1e10},
		{"1.5e-3", token.Float, 0, 1.5e-3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok := l.Next()
			if tok.Kind != tt.kind {
				t.Fatalf("got kind %s, want %s", tok.Kind, tt.kind)
			}
			switch tt.kind {
			case token.Integer:
				if tok.Int != tt.wantInt {
					t.Errorf("got Int %d, want %d", tok.Int, tt.wantInt)
				}
			case token.Float:
				if tok.Float != tt.wantFloat {
					t.Errorf("got Float %g, want %g", tok.Float, tt.wantFloat)
				}
			}
		})
	}
}

func TestNextStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`'single'`, "single"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"tab\there"`, "tab\there"},
		{`"quote\"inside"`, `quote"inside`},
		{`"A"`, "A"},
		{`"literal😀emoji"`, "literal😀emoji"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok := l.Next()
			if tok.Kind != token.String {
				t.Fatalf("got kind %s, want String", tok.Kind)
			}
			if tok.Str != tt.want {
				t.Errorf("got %q, want %q", tok.Str, tt.want)
			}
		})
	}
}

func TestNextStringUnicodeEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"\"\\u0041\"", "A"},
		{"\"\\uD83D\\uDE00\"", "\U0001F600"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok := l.Next()
			if tok.Kind != token.String {
				t.Fatalf("got kind %s, want String", tok.Kind)
			}
			if tok.Str != tt.want {
				t.Errorf("got %q, want %q", tok.Str, tt.want)
			}
		})
	}
}

func TestNextCommentsAndWhitespace(t *testing.T) {
	input := "// line comment\n/* block\ncomment */ 42"
	l := New(input)
	tok := l.Next()
	if tok.Kind != token.Integer || tok.Int != 42 {
		t.Fatalf("got %s, want Integer(42)", tok)
	}
}

func TestNextErrors(t *testing.T) {
	tests := []string{
		`"unterminated`,
		"/* unterminated block",
		`"bad\xescape"`,
		"0xZZ",
		"#",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			l := New(input)
			tok := l.Next()
			if tok.Kind != token.Error {
				t.Errorf("input %q: got kind %s, want Error", input, tok.Kind)
			}
		})
	}
}

func TestTokenizeTotality(t *testing.T) {
	// Lex totality: every input produces a token stream ending in EOF or
	// Error, never silently truncating.
	inputs := []string{
		"",
		"   \t\n  ",
		`{a: 1, b: [true, false, null]}`,
		"@doc(name = \"x\") { a: 1 }",
		"not valid { { {",
	}
	for _, in := range inputs {
		toks := Tokenize(in)
		if len(toks) == 0 {
			t.Fatalf("Tokenize(%q) returned no tokens", in)
		}
		last := toks[len(toks)-1]
		if last.Kind != token.EOF && last.Kind != token.Error {
			t.Errorf("Tokenize(%q) ended with %s, want EOF or Error", in, last.Kind)
		}
	}
}

func TestPositionsAdvanceMonotonically(t *testing.T) {
	toks := Tokenize("foo\nbar baz")
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1].Pos, toks[i].Pos
		if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
			t.Errorf("token %d position %s is not after token %d position %s", i, cur, i-1, prev)
		}
	}
}
