package tree

import (
	"strconv"
	"strings"
)

// Dump renders the tree as indented text for debugging and the CLI's
// text output format.
func Dump(p *Program) string {
	if p == nil {
		return "ERROR\n"
	}
	var sb strings.Builder
	writeBlock(&sb, p.Block, 0)
	sb.WriteString("\n")
	return sb.String()
}

func indent(sb *strings.Builder, level int) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("  ", level))
}

func writeBlock(sb *strings.Builder, b *Block, level int) {
	for _, proc := range b.Procedures {
		indent(sb, level+1)
		sb.WriteString("PROCEDURE " + proc.Name + "()")
		writeBlock(sb, proc.Block, level+1)
	}
	indent(sb, level)
	sb.WriteString("BEGIN")
	indent(sb, level+1)
	writeStmt(sb, b.Body, level+1)
	indent(sb, level)
	sb.WriteString("END")
}

func writeStmt(sb *strings.Builder, s Stmt, level int) {
	switch s := s.(type) {
	case *Block:
		writeBlock(sb, s, level)
	case *BadStmt:
		sb.WriteString("ERROR")
	case *Assignment:
		writeExprList(sb, s.LValues)
		sb.WriteString(" := ")
		writeExprList(sb, s.Exps)
	case *Write:
		sb.WriteString("WRITE " + ExprString(s.Exp))
	case *Call:
		sb.WriteString("CALL " + s.Name + "()")
	case *StmtList:
		for i, stmt := range s.Statements {
			if i > 0 {
				sb.WriteString(";")
				indent(sb, level)
			}
			writeStmt(sb, stmt, level)
		}
	case *If:
		sb.WriteString("IF " + ExprString(s.Cond) + " THEN")
		indent(sb, level+1)
		writeStmt(sb, s.Then, level+1)
		indent(sb, level)
		sb.WriteString("ELSE")
		indent(sb, level+1)
		writeStmt(sb, s.Else, level+1)
	case *While:
		sb.WriteString("WHILE " + ExprString(s.Cond) + " DO")
		indent(sb, level+1)
		writeStmt(sb, s.Body, level+1)
	case *Do:
		sb.WriteString("DO ")
		for i, branch := range s.Branches {
			if i > 0 {
				sb.WriteString("[]")
			}
			sb.WriteString(ExprString(branch.Cond) + " THEN ")
			writeStmt(sb, branch.Body, level)
			if branch.Exits {
				sb.WriteString(" EXIT")
			}
			indent(sb, level)
		}
		sb.WriteString("OD")
	case *Skip:
		sb.WriteString("SKIP")
	}
}

func writeExprList(sb *strings.Builder, exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(ExprString(e))
	}
}

// ExprString renders an expression on one line.
func ExprString(e Expr) string {
	switch e := e.(type) {
	case *BadExpr:
		return "ERROR"
	case *Identifier:
		return e.Name
	case *Number:
		return strconv.Itoa(e.Value)
	case *Read:
		return "READ"
	case *Unary:
		return e.Op.String() + ExprString(e.Operand)
	case *Binary:
		return "(" + ExprString(e.Left) + " " + e.Op.String() + " " + ExprString(e.Right) + ")"
	}
	return "?"
}

// ConstString renders a constant expression on one line.
func ConstString(c ConstExp) string {
	switch c := c.(type) {
	case *NumberConst:
		return strconv.Itoa(c.Value)
	case *ConstRef:
		return c.Name
	case *NegateConst:
		return "-" + ConstString(c.Operand)
	case *BadConst:
		return "ERROR"
	}
	return "?"
}
