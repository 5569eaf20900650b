package lexer

import (
	"testing"

	"github.com/cwbudde/goxlang/pkg/token"
)

func TestNextTokenRoundTrip(t *testing.T) {
	input := `var x int = 5;
x = x + 10;
`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.INT_TYPE, "int"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.SEMI, ";"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.INT, "10"},
		{token.SEMI, ";"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "const var print return break continue if else while func import true false int float char bool"

	tests := []token.Type{
		token.CONST, token.VAR, token.PRINT, token.RETURN, token.BREAK, token.CONTINUE,
		token.IF, token.ELSE, token.WHILE, token.FUNC, token.IMPORT,
		token.TRUE, token.FALSE,
		token.INT_TYPE, token.FLOAT_TYPE, token.CHAR_TYPE, token.BOOL_TYPE,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.Next()
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		wantType token.Type
		wantLit  string
	}{
		{"42", token.INT, "42"},
		{"0", token.INT, "0"},
		{"3.14", token.FLOAT, "3.14"},
		{"1e10", token.FLOAT, "1e10"},
		{"1e+10", token.FLOAT, "1e+10"},
		{"1e-10", token.FLOAT, "1e-10"},
		{"2.5e3", token.FLOAT, "2.5e3"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Type != tt.wantType {
			t.Errorf("input %q: expected type %s, got %s", tt.input, tt.wantType, tok.Type)
		}
		if tok.Literal != tt.wantLit {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.wantLit, tok.Literal)
		}
	}
}

// GoxLang admits no leading sign at the number-literal level: unary minus is
// handled by the parser, so "-5" lexes as MINUS followed by INT("5").
func TestNumberLiteralsAreUnsignedOnly(t *testing.T) {
	l := New("-5")
	tok := l.Next()
	if tok.Type != token.MINUS {
		t.Fatalf("expected MINUS, got %s", tok.Type)
	}
	tok = l.Next()
	if tok.Type != token.INT || tok.Literal != "5" {
		t.Fatalf("expected INT(5), got %s(%q)", tok.Type, tok.Literal)
	}
}

// A bare trailing 'e' with no exponent digits is not part of the number: the
// lexer backtracks and leaves the identifier for a separate token.
func TestNumberExponentBacktracksWithoutDigits(t *testing.T) {
	l := New("1e")
	tok := l.Next()
	if tok.Type != token.INT || tok.Literal != "1" {
		t.Fatalf("expected INT(1), got %s(%q)", tok.Type, tok.Literal)
	}
	tok = l.Next()
	if tok.Type != token.IDENT || tok.Literal != "e" {
		t.Fatalf("expected IDENT(e), got %s(%q)", tok.Type, tok.Literal)
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		input   string
		wantLit string
	}{
		{"'A'", "A"},
		{"'\\n'", "\\n"},
		{"'\\x41'", "\\x41"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Type != token.CHAR {
			t.Errorf("input %q: expected CHAR, got %s (errors=%v)", tt.input, tok.Type, l.Errors())
			continue
		}
		if tok.Literal != tt.wantLit {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.wantLit, tok.Literal)
		}
	}
}

func TestCharLiteralErrors(t *testing.T) {
	tests := []string{
		"''",
		"'ab'",
	}

	for _, input := range tests {
		l := New(input)
		l.Next()
		if len(l.Errors()) == 0 {
			t.Errorf("input %q: expected a lexical error, got none", input)
		}
	}
}

// String literals are not part of GoxLang: the lexer rejects them but still
// scans past the closing quote so one bad token doesn't cascade.
func TestStringLiteralsAreRejected(t *testing.T) {
	l := New(`"hello" x`)
	tok := l.Next()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(l.Errors()), l.Errors())
	}
	tok = l.Next()
	if tok.Type != token.IDENT || tok.Literal != "x" {
		t.Fatalf("expected IDENT(x) after the rejected string, got %s(%q)", tok.Type, tok.Literal)
	}
}

func TestUnterminatedStringLiteral(t *testing.T) {
	l := New(`"hello`)
	tok := l.Next()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestLineComments(t *testing.T) {
	l := New("1 // this is ignored\n2")
	tok := l.Next()
	if tok.Literal != "1" {
		t.Fatalf("expected 1, got %q", tok.Literal)
	}
	tok = l.Next()
	if tok.Literal != "2" {
		t.Fatalf("expected 2, got %q", tok.Literal)
	}
}

func TestBlockComments(t *testing.T) {
	l := New("1 /* a block\nspanning lines */ 2")
	tok := l.Next()
	if tok.Literal != "1" {
		t.Fatalf("expected 1, got %q", tok.Literal)
	}
	tok = l.Next()
	if tok.Literal != "2" {
		t.Fatalf("expected 2, got %q", tok.Literal)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	l := New("1 /* never closed")
	l.Next()
	l.Next()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

// Two-character operators fall back to their one-character form when the
// second character doesn't match.
func TestTwoCharOperatorFallback(t *testing.T) {
	tests := []struct {
		input    string
		wantType token.Type
		wantLit  string
	}{
		{"<", token.LT, "<"},
		{"<=", token.LE, "<="},
		{">", token.GT, ">"},
		{">=", token.GE, ">="},
		{"=", token.ASSIGN, "="},
		{"==", token.EQ, "=="},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Type != tt.wantType || tok.Literal != tt.wantLit {
			t.Errorf("input %q: expected %s(%q), got %s(%q)", tt.input, tt.wantType, tt.wantLit, tok.Type, tok.Literal)
		}
	}
}

func TestLogicalOperatorsRequireDoubling(t *testing.T) {
	l := New("&")
	tok := l.Next()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for a lone '&', got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}

	l = New("&&")
	tok = l.Next()
	if tok.Type != token.LAND {
		t.Fatalf("expected LAND, got %s", tok.Type)
	}
}

func TestDerefAndGrowOperators(t *testing.T) {
	l := New("`^")
	tok := l.Next()
	if tok.Type != token.DEREF {
		t.Fatalf("expected DEREF, got %s", tok.Type)
	}
	tok = l.Next()
	if tok.Type != token.GROW {
		t.Fatalf("expected GROW, got %s", tok.Type)
	}
}

func TestTokenizeReturnsEOFAndErrors(t *testing.T) {
	toks, errs := Tokenize("1 $ 2")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("expected trailing EOF token, got %s", toks[len(toks)-1].Type)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("a\nbb")
	tok := l.Next()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	tok = l.Next()
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
}

func TestWithFileOption(t *testing.T) {
	l := New("x", WithFile("script.gox"))
	if l.file != "script.gox" {
		t.Fatalf("expected file to be set, got %q", l.file)
	}
}

func TestWithTracingOption(t *testing.T) {
	var traced []token.Token
	l := New("1 2", WithTracing(func(tok token.Token) {
		traced = append(traced, tok)
	}))
	for {
		tok := l.Next()
		if tok.Type == token.EOF {
			break
		}
	}
	if len(traced) != 3 {
		t.Fatalf("expected 3 traced tokens (INT, INT, EOF), got %d", len(traced))
	}
}

func TestBOMIsStripped(t *testing.T) {
	l := New(string(rune(0xFEFF)) + "x")
	tok := l.Next()
	if tok.Type != token.IDENT || tok.Literal != "x" {
		t.Fatalf("expected IDENT(x), got %s(%q)", tok.Type, tok.Literal)
	}
}
