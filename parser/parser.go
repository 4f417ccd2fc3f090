package parser

import (
	"io"
	"os"

	"github.com/dhamidi/pl0/source"
	"github.com/dhamidi/pl0/syms"
	"github.com/dhamidi/pl0/tree"
)

type Option func(*Parser)

// WithTrace enables debug narration of the recovery protocol.
func WithTrace() Option {
	return func(p *Parser) {
		p.trace = true
	}
}

// WithMaxErrors overrides how many diagnostics are retained for
// rendering.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

// WithOutput redirects the diagnostic report. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Parser) {
		p.out = w
	}
}

// Result is the outcome of parsing one program: a best-effort tree, the
// symbol table it was checked against, and the accumulated diagnostics.
// Program is nil when the input could not start a program at all.
type Result struct {
	Program *tree.Program
	Table   *syms.Table
	Errors  *source.Diagnostics
}

// Parser builds a parse tree and skeleton symbol table from a token
// stream, one method per grammar rule. Every rule follows the same
// shape: BeginRule with the rule's start set and the caller's recovery
// set, dispatch on the head token, recurse with recovery sets extended
// by whatever follows in the production, and EndRule before returning.
type Parser struct {
	tokens    *TokenStream
	table     *syms.Table
	errors    *source.Diagnostics
	trace     bool
	maxErrors int
	out       io.Writer
}

// ParseProgram parses a whole source buffer. Ordinary syntax errors are
// collected in Result.Errors and do not fail the parse; the returned
// error is non-nil only for a fatal internal error, after the pending
// diagnostics have been rendered. Even then the Result carries the
// diagnostics, with a nil Program.
func ParseProgram(buf *source.Buffer, opts ...Option) (*Result, error) {
	p := &Parser{out: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}
	p.errors = source.NewDiagnostics(p.out, buf)
	if p.maxErrors > 0 {
		p.errors.SetLimit(p.maxErrors)
	}
	p.tokens = NewTokenStream(NewLexer(buf, p.errors), p.errors)
	p.tokens.SetTrace(p.trace)

	program := p.parseProgram(NewTokenSet(TokenEOF))
	if err := p.tokens.Err(); err != nil {
		return &Result{Table: p.table, Errors: p.errors}, err
	}
	return &Result{Program: program, Table: p.table, Errors: p.errors}, nil
}

func (p *Parser) leaveScope() {
	if !p.table.LeaveScope() {
		p.tokens.fatal("scope stack underflow")
	}
}

func (p *Parser) currentScope() int {
	return int(p.table.Current())
}
