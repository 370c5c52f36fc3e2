package lexer

import (
	"strings"
	"testing"
)

// helper to tokenize and fail on error
func mustTokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := Tokenize(source, "test.jfor")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return tokens
}

// helper that strips the trailing EOF for easier assertions
func mustTokenizeNoEOF(t *testing.T, source string) []Token {
	t.Helper()
	tokens := mustTokenize(t, source)
	if len(tokens) == 0 {
		t.Fatal("expected at least one token (EOF)")
	}
	if tokens[len(tokens)-1].Type != TokEOF {
		t.Fatal("last token is not EOF")
	}
	return tokens[:len(tokens)-1]
}

// ---------------------------------------------------------------------------
// Test: empty input produces only EOF
// ---------------------------------------------------------------------------
func TestEmptyInput(t *testing.T) {
	tokens := mustTokenize(t, "")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token (EOF), got %d", len(tokens))
	}
	if tokens[0].Type != TokEOF {
		t.Errorf("expected TokEOF, got %v", tokens[0].Type)
	}
}

// ---------------------------------------------------------------------------
// Test: all keywords
// ---------------------------------------------------------------------------
func TestKeywords(t *testing.T) {
	tests := []struct {
		keyword  string
		expected TokenType
	}{
		{"for", TokFor},
		{"to", TokTo},
		{"by", TokBy},
		{"do", TokDo},
		{"in", TokIn},
		{"end", TokEnd},
		{"print", TokPrint},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.keyword)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != tt.expected {
				t.Errorf("expected token type %d, got %d", tt.expected, tokens[0].Type)
			}
			if tokens[0].Value != tt.keyword {
				t.Errorf("expected value %q, got %q", tt.keyword, tokens[0].Value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: operators and punctuation
// ---------------------------------------------------------------------------
func TestOperators(t *testing.T) {
	tests := []struct {
		source   string
		expected TokenType
	}{
		{"(", TokLParen},
		{")", TokRParen},
		{"[", TokLBracket},
		{"]", TokRBracket},
		{",", TokComma},
		{";", TokSemicolon},
		{"=", TokEquals},
		{"==", TokEqEq},
		{"!=", TokBangEq},
		{">", TokGt},
		{"<", TokLt},
		{">=", TokGtEq},
		{"<=", TokLtEq},
		{"+", TokPlus},
		{"-", TokMinus},
		{"*", TokStar},
		{"/", TokSlash},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.source)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != tt.expected {
				t.Errorf("expected token type %d, got %d", tt.expected, tokens[0].Type)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: number literals
// ---------------------------------------------------------------------------
func TestNumbers(t *testing.T) {
	tests := []string{"0", "42", "3.14", "100.5"}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, src)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != TokNumberLit {
				t.Errorf("expected TokNumberLit, got %d", tokens[0].Type)
			}
			if tokens[0].Value != src {
				t.Errorf("expected value %q, got %q", src, tokens[0].Value)
			}
		})
	}
}

func TestNumberMissingFractionDigits(t *testing.T) {
	_, err := Tokenize("1.", "test.jfor")
	if err == nil {
		t.Fatal("expected lex error for '1.'")
	}
}

// ---------------------------------------------------------------------------
// Test: string literals have no escape sequences
// ---------------------------------------------------------------------------
func TestStrings(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, `"hello world"`)
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	if tokens[0].Type != TokStringLit {
		t.Fatalf("expected TokStringLit, got %d", tokens[0].Type)
	}
	if tokens[0].Value != "hello world" {
		t.Errorf("expected value %q, got %q", "hello world", tokens[0].Value)
	}
}

func TestStringBackslashIsLiteral(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, `"a\nb"`)
	if tokens[0].Value != `a\nb` {
		t.Errorf("backslash should be an ordinary character, got %q", tokens[0].Value)
	}
}

func TestUnterminatedString(t *testing.T) {
	for _, src := range []string{`"oops`, "\"oops\nmore\""} {
		_, err := Tokenize(src, "test.jfor")
		if err == nil {
			t.Fatalf("expected lex error for %q", src)
		}
		if !strings.Contains(err.Error(), "unterminated") {
			t.Errorf("expected unterminated string error, got: %v", err)
		}
	}
}

// ---------------------------------------------------------------------------
// Test: comments are skipped to end of line
// ---------------------------------------------------------------------------
func TestComments(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "x = 1 # trailing comment\n# full line\ny = 2")
	want := []TokenType{TokIdent, TokEquals, TokNumberLit, TokIdent, TokEquals, TokNumberLit}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d: expected type %d, got %d", i, typ, tokens[i].Type)
		}
	}
}

// ---------------------------------------------------------------------------
// Test: spans track line and column
// ---------------------------------------------------------------------------
func TestSpans(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "x = 1\ny = 2")
	if tokens[0].Span.StartLine != 1 || tokens[0].Span.StartCol != 1 {
		t.Errorf("first token span: got %d:%d, want 1:1", tokens[0].Span.StartLine, tokens[0].Span.StartCol)
	}
	if tokens[3].Span.StartLine != 2 || tokens[3].Span.StartCol != 1 {
		t.Errorf("fourth token span: got %d:%d, want 2:1", tokens[3].Span.StartLine, tokens[3].Span.StartCol)
	}
	if tokens[0].Span.File != "test.jfor" {
		t.Errorf("expected file test.jfor, got %q", tokens[0].Span.File)
	}
}

// ---------------------------------------------------------------------------
// Test: unexpected characters
// ---------------------------------------------------------------------------
func TestUnexpectedCharacter(t *testing.T) {
	for _, src := range []string{"@", "!", "x & y"} {
		_, err := Tokenize(src, "test.jfor")
		if err == nil {
			t.Fatalf("expected lex error for %q", src)
		}
	}
}

// ---------------------------------------------------------------------------
// Test: complete loop header
// ---------------------------------------------------------------------------
func TestLoopHeader(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "for i = 1 to 5 by 2 do")
	want := []TokenType{TokFor, TokIdent, TokEquals, TokNumberLit, TokTo, TokNumberLit, TokBy, TokNumberLit, TokDo}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d: expected type %d, got %d", i, typ, tokens[i].Type)
		}
	}
}
