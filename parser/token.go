package parser

import "github.com/dhamidi/pl0/source"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIllegal

	// Literals
	TokenIdent
	TokenNumber

	// Operators and punctuation
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenColon
	TokenAssign
	TokenComma
	TokenRange
	TokenEQ
	TokenNE
	TokenLE
	TokenLT
	TokenGE
	TokenGT
	TokenAnd
	TokenOr
	TokenNot
	TokenSeparator

	// Keywords
	TokenBegin
	TokenCall
	TokenConst
	TokenDo
	TokenElse
	TokenEnd
	TokenExit
	TokenIf
	TokenOd
	TokenProcedure
	TokenRead
	TokenSkip
	TokenThen
	TokenType
	TokenVar
	TokenWhile
	TokenWrite
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:       "end-of-file",
	TokenIllegal:   "illegal",
	TokenIdent:     "identifier",
	TokenNumber:    "number",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenSemicolon: ";",
	TokenColon:     ":",
	TokenAssign:    ":=",
	TokenComma:     ",",
	TokenRange:     "..",
	TokenEQ:        "=",
	TokenNE:        "!=",
	TokenLE:        "<=",
	TokenLT:        "<",
	TokenGE:        ">=",
	TokenGT:        ">",
	TokenAnd:       "&&",
	TokenOr:        "||",
	TokenNot:       "!",
	TokenSeparator: "[]",
	TokenBegin:     "begin",
	TokenCall:      "call",
	TokenConst:     "const",
	TokenDo:        "do",
	TokenElse:      "else",
	TokenEnd:       "end",
	TokenExit:      "exit",
	TokenIf:        "if",
	TokenOd:        "od",
	TokenProcedure: "procedure",
	TokenRead:      "read",
	TokenSkip:      "skip",
	TokenThen:      "then",
	TokenType:      "type",
	TokenVar:       "var",
	TokenWhile:     "while",
	TokenWrite:     "write",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is one lexical unit. Literal holds the identifier text and
// Value the parsed number; both are zero for other kinds.
type Token struct {
	Kind    TokenKind
	Pos     source.Position
	Literal string
	Value   int
}

var keywords = map[string]TokenKind{
	"begin":     TokenBegin,
	"call":      TokenCall,
	"const":     TokenConst,
	"do":        TokenDo,
	"else":      TokenElse,
	"end":       TokenEnd,
	"exit":      TokenExit,
	"if":        TokenIf,
	"od":        TokenOd,
	"procedure": TokenProcedure,
	"read":      TokenRead,
	"skip":      TokenSkip,
	"then":      TokenThen,
	"type":      TokenType,
	"var":       TokenVar,
	"while":     TokenWhile,
	"write":     TokenWrite,
}

// LookupKeyword maps an identifier to its keyword kind, or TokenIdent.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
