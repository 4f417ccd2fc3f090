package tree

import "github.com/dhamidi/pl0/source"

// Stmt is the closed set of statement nodes.
type Stmt interface {
	Pos() source.Position
	stmtNode()
}

// Program is the root of a parse tree. Locals on the contained Block is
// the id of the outermost user-visible scope in the symbol table
// returned alongside the tree.
type Program struct {
	Start source.Position
	Block *Block
}

// Block is a sequence of declarations followed by a compound statement.
// Only procedure declarations appear in the tree; constants, types and
// variables go straight into the symbol table.
type Block struct {
	Start      source.Position
	Procedures []*ProcedureDecl
	Body       Stmt
	Locals     int // scope id of this block's local scope
}

// ProcedureDecl ties a parsed procedure body to its symbol table entry.
type ProcedureDecl struct {
	Name  string
	Entry int // entry id in the symbol table
	Block *Block
}

// BadStmt stands in for a statement that could not be parsed.
type BadStmt struct {
	Start source.Position
}

// Assignment is a parallel assignment. LValues and Exps always have the
// same length; the parser pads the shorter side with BadExpr nodes when
// the source had mismatched counts.
type Assignment struct {
	Start   source.Position
	LValues []Expr
	Exps    []Expr
}

type Write struct {
	Start source.Position
	Exp   Expr
}

type Call struct {
	Start source.Position
	Name  string
}

type StmtList struct {
	Start      source.Position
	Statements []Stmt
}

type If struct {
	Start source.Position
	Cond  Expr
	Then  Stmt
	Else  Stmt
}

type While struct {
	Start source.Position
	Cond  Expr
	Body  Stmt
}

// Do is a guarded-command loop: branches are tried in order, a branch
// marked Exits leaves the loop after its body runs.
type Do struct {
	Start    source.Position
	Branches []*DoBranch
}

type DoBranch struct {
	Start source.Position
	Cond  Expr
	Body  *StmtList
	Exits bool
}

type Skip struct {
	Start source.Position
}

func (s *Program) Pos() source.Position    { return s.Start }
func (s *Block) Pos() source.Position      { return s.Start }
func (s *BadStmt) Pos() source.Position    { return s.Start }
func (s *Assignment) Pos() source.Position { return s.Start }
func (s *Write) Pos() source.Position      { return s.Start }
func (s *Call) Pos() source.Position       { return s.Start }
func (s *StmtList) Pos() source.Position   { return s.Start }
func (s *If) Pos() source.Position         { return s.Start }
func (s *While) Pos() source.Position      { return s.Start }
func (s *Do) Pos() source.Position         { return s.Start }
func (s *DoBranch) Pos() source.Position   { return s.Start }
func (s *Skip) Pos() source.Position       { return s.Start }

func (*Block) stmtNode()      {}
func (*BadStmt) stmtNode()    {}
func (*Assignment) stmtNode() {}
func (*Write) stmtNode()      {}
func (*Call) stmtNode()       {}
func (*StmtList) stmtNode()   {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*Do) stmtNode()         {}
func (*Skip) stmtNode()       {}

// Exits reports whether any branch of the loop exits it.
func (s *Do) Exits() bool {
	for _, b := range s.Branches {
		if b.Exits {
			return true
		}
	}
	return false
}

func (s *StmtList) Add(stmt Stmt) {
	s.Statements = append(s.Statements, stmt)
}
