package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dhamidi/pl0/source"
)

// Lexer turns a source buffer into tokens. Whitespace and comments are
// consumed silently; lexical errors are reported to the diagnostics
// sink and surface as TokenIllegal, which no start or recovery set ever
// contains, so the parser's skipping discards them.
type Lexer struct {
	input  []byte
	errors *source.Diagnostics
	pos    int
	line   int
	column int
}

func NewLexer(buf *source.Buffer, errors *source.Diagnostics) *Lexer {
	return &Lexer{
		input:  buf.Data(),
		errors: errors,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() source.Position {
	return source.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) skipBlanks() {
	for {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekN(1) == '/':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekN(1) == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.Position()
	l.advanceN(2)
	for {
		if l.peek() == 0 {
			l.errors.Error("unterminated comment", start)
			return
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return
		}
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	l.skipBlanks()
	start := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: start}
	}

	ch := l.peek()
	if isLetter(ch) {
		return l.scanIdentOrKeyword(start)
	}
	if isDigit(ch) {
		return l.scanNumber(start)
	}
	return l.scanOperator(start)
}

func (l *Lexer) scanIdentOrKeyword(start source.Position) Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	text := string(l.input[start.Offset:l.pos])
	kind := LookupKeyword(text)
	tok := Token{Kind: kind, Pos: start}
	if kind == TokenIdent {
		tok.Literal = text
	}
	return tok
}

func (l *Lexer) scanNumber(start source.Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	text := string(l.input[start.Offset:l.pos])
	value, err := strconv.Atoi(text)
	if err != nil || value > math.MaxInt32 {
		l.errors.Error("number too large: "+text, start)
		value = math.MaxInt32
	}
	return Token{Kind: TokenNumber, Pos: start, Literal: text, Value: value}
}

func (l *Lexer) scanOperator(start source.Position) Token {
	kind := TokenIllegal
	ch := l.advance()
	switch ch {
	case '+':
		kind = TokenPlus
	case '-':
		kind = TokenMinus
	case '*':
		kind = TokenStar
	case '/':
		kind = TokenSlash
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case '[':
		kind = TokenLBracket
		if l.peek() == ']' {
			l.advance()
			kind = TokenSeparator
		}
	case ']':
		kind = TokenRBracket
	case ';':
		kind = TokenSemicolon
	case ',':
		kind = TokenComma
	case ':':
		kind = TokenColon
		if l.peek() == '=' {
			l.advance()
			kind = TokenAssign
		}
	case '.':
		if l.peek() == '.' {
			l.advance()
			kind = TokenRange
		}
	case '=':
		kind = TokenEQ
	case '!':
		kind = TokenNot
		if l.peek() == '=' {
			l.advance()
			kind = TokenNE
		}
	case '<':
		kind = TokenLT
		if l.peek() == '=' {
			l.advance()
			kind = TokenLE
		}
	case '>':
		kind = TokenGT
		if l.peek() == '=' {
			l.advance()
			kind = TokenGE
		}
	case '&':
		if l.peek() == '&' {
			l.advance()
			kind = TokenAnd
		}
	case '|':
		if l.peek() == '|' {
			l.advance()
			kind = TokenOr
		}
	}
	if kind == TokenIllegal {
		l.errors.Error(fmt.Sprintf("unrecognised character %q", ch), start)
	}
	return Token{Kind: kind, Pos: start}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
