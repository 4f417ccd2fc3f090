package tree

import "github.com/dhamidi/pl0/source"

// ConstExp is the closed set of compile-time constant expressions used
// by constant definitions and subrange bounds. Each node records the
// scope it was parsed in (as a symbol table scope id) so that later
// phases can resolve references.
type ConstExp interface {
	Pos() source.Position
	constNode()
}

// NumberConst is an integer literal constant.
type NumberConst struct {
	Start source.Position
	Scope int
	Value int
}

// ConstRef refers to a previously declared constant by name.
type ConstRef struct {
	Start source.Position
	Scope int
	Name  string
}

// NegateConst negates a constant expression.
type NegateConst struct {
	Start   source.Position
	Scope   int
	Operand ConstExp
}

// BadConst stands in for a constant expression that could not be
// parsed.
type BadConst struct {
	Start source.Position
	Scope int
}

func (c *NumberConst) Pos() source.Position { return c.Start }
func (c *ConstRef) Pos() source.Position    { return c.Start }
func (c *NegateConst) Pos() source.Position { return c.Start }
func (c *BadConst) Pos() source.Position    { return c.Start }

func (*NumberConst) constNode() {}
func (*ConstRef) constNode()    {}
func (*NegateConst) constNode() {}
func (*BadConst) constNode()    {}
