package parser

import (
	"bytes"
	"testing"

	"github.com/dhamidi/pl0/source"
)

func scanAll(t *testing.T, input string) ([]Token, *source.Diagnostics) {
	t.Helper()
	buf := source.NewBuffer("test.pl0", []byte(input))
	var out bytes.Buffer
	errors := source.NewDiagnostics(&out, buf)
	lexer := NewLexer(buf, errors)

	var tokens []Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, errors
		}
		if len(tokens) > 1000 {
			t.Fatal("lexer did not reach end of input")
		}
	}
}

func kinds(tokens []Token) []TokenKind {
	result := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		result[i] = tok.Kind
	}
	return result
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{
			name:  "assignment",
			input: "x := 42;",
			want:  []TokenKind{TokenIdent, TokenAssign, TokenNumber, TokenSemicolon, TokenEOF},
		},
		{
			name:  "keywords and identifiers",
			input: "begin while whilst end",
			want:  []TokenKind{TokenBegin, TokenWhile, TokenIdent, TokenEnd, TokenEOF},
		},
		{
			name:  "relational operators",
			input: "= != < <= > >=",
			want:  []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF},
		},
		{
			name:  "subrange brackets",
			input: "[1..9]",
			want:  []TokenKind{TokenLBracket, TokenNumber, TokenRange, TokenNumber, TokenRBracket, TokenEOF},
		},
		{
			name:  "branch separator",
			input: "od [] do",
			want:  []TokenKind{TokenOd, TokenSeparator, TokenDo, TokenEOF},
		},
		{
			name:  "colon alone",
			input: "x : int",
			want:  []TokenKind{TokenIdent, TokenColon, TokenIdent, TokenEOF},
		},
		{
			name:  "logical operators",
			input: "&& || !",
			want:  []TokenKind{TokenAnd, TokenOr, TokenNot, TokenEOF},
		},
		{
			name:  "line comment",
			input: "a // rest of line\nb",
			want:  []TokenKind{TokenIdent, TokenIdent, TokenEOF},
		},
		{
			name:  "block comment",
			input: "a /* begin end\nwhile */ b",
			want:  []TokenKind{TokenIdent, TokenIdent, TokenEOF},
		},
		{
			name:  "empty input",
			input: "",
			want:  []TokenKind{TokenEOF},
		},
		{
			name:  "blank input",
			input: " \t\r\n ",
			want:  []TokenKind{TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errors := scanAll(t, tt.input)
			got := kinds(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
			if errors.HadErrors() {
				t.Errorf("unexpected errors: %d", errors.Count())
			}
		})
	}
}

func TestLexerPayloads(t *testing.T) {
	tokens, _ := scanAll(t, "counter := 42")

	if tokens[0].Literal != "counter" {
		t.Errorf("identifier literal = %q, want %q", tokens[0].Literal, "counter")
	}
	if tokens[2].Value != 42 {
		t.Errorf("number value = %d, want 42", tokens[2].Value)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, _ := scanAll(t, "x :=\n  y")

	want := []source.Position{
		{Line: 1, Column: 1, Offset: 0},
		{Line: 1, Column: 3, Offset: 2},
		{Line: 2, Column: 3, Offset: 7},
	}
	for i, pos := range want {
		if tokens[i].Pos != pos {
			t.Errorf("token %d at %+v, want %+v", i, tokens[i].Pos, pos)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKinds []TokenKind
	}{
		{
			name:      "unrecognised character",
			input:     "x ? y",
			wantKinds: []TokenKind{TokenIdent, TokenIllegal, TokenIdent, TokenEOF},
		},
		{
			name:      "lone ampersand",
			input:     "a & b",
			wantKinds: []TokenKind{TokenIdent, TokenIllegal, TokenIdent, TokenEOF},
		},
		{
			name:      "lone dot",
			input:     ". x",
			wantKinds: []TokenKind{TokenIllegal, TokenIdent, TokenEOF},
		},
		{
			name:      "unterminated comment",
			input:     "a /* no end",
			wantKinds: []TokenKind{TokenIdent, TokenEOF},
		},
		{
			name:      "number too large",
			input:     "99999999999",
			wantKinds: []TokenKind{TokenNumber, TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errors := scanAll(t, tt.input)
			got := kinds(tokens)
			if len(got) != len(tt.wantKinds) {
				t.Fatalf("got %v, want %v", got, tt.wantKinds)
			}
			for i := range got {
				if got[i] != tt.wantKinds[i] {
					t.Errorf("token %d = %s, want %s", i, got[i], tt.wantKinds[i])
				}
			}
			if errors.Count() != 1 {
				t.Errorf("Count() = %d, want 1", errors.Count())
			}
		})
	}
}

func TestLexerCappedNumber(t *testing.T) {
	tokens, errors := scanAll(t, "99999999999")

	if tokens[0].Value != 1<<31-1 {
		t.Errorf("oversized number scanned as %d, want %d", tokens[0].Value, 1<<31-1)
	}
	if !errors.HadErrors() {
		t.Error("oversized number should be reported")
	}
}
