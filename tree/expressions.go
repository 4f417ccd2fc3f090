package tree

import "github.com/dhamidi/pl0/source"

// Expr is the closed set of expression nodes. Consumers dispatch with a
// type switch; the unexported marker keeps the set closed to this
// package.
type Expr interface {
	Pos() source.Position
	exprNode()
}

// BadExpr stands in for an expression that could not be parsed.
type BadExpr struct {
	Start source.Position
}

// Identifier is a name occurrence in an expression or on the left side
// of an assignment. Resolution against the symbol table happens after
// parsing.
type Identifier struct {
	Start source.Position
	Name  string
}

// Number is an integer literal.
type Number struct {
	Start source.Position
	Value int
}

// Read represents the value consumed from input by a read statement.
// Read statements desugar to an assignment with a Read on the right.
type Read struct {
	Start source.Position
}

type Unary struct {
	Start   source.Position
	Op      Operator
	Operand Expr
}

type Binary struct {
	Start source.Position
	Op    Operator
	Left  Expr
	Right Expr
}

func (e *BadExpr) Pos() source.Position    { return e.Start }
func (e *Identifier) Pos() source.Position { return e.Start }
func (e *Number) Pos() source.Position     { return e.Start }
func (e *Read) Pos() source.Position       { return e.Start }
func (e *Unary) Pos() source.Position      { return e.Start }
func (e *Binary) Pos() source.Position     { return e.Start }

func (*BadExpr) exprNode()    {}
func (*Identifier) exprNode() {}
func (*Number) exprNode()     {}
func (*Read) exprNode()       {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
