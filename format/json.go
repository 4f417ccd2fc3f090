package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/pl0/tree"
)

// JSONEncoder writes the tree as indented JSON. Every node carries a
// "kind" discriminator and its source position.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(program *tree.Program) error {
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", "  ")
	return enc.Encode(programJSON(program))
}

func programJSON(p *tree.Program) map[string]any {
	if p == nil {
		return map[string]any{"kind": "Error"}
	}
	return map[string]any{
		"kind":  "Program",
		"pos":   p.Start.String(),
		"block": blockJSON(p.Block),
	}
}

func blockJSON(b *tree.Block) map[string]any {
	procedures := make([]any, 0, len(b.Procedures))
	for _, proc := range b.Procedures {
		procedures = append(procedures, map[string]any{
			"kind":  "Procedure",
			"name":  proc.Name,
			"block": blockJSON(proc.Block),
		})
	}
	return map[string]any{
		"kind":       "Block",
		"pos":        b.Start.String(),
		"scope":      b.Locals,
		"procedures": procedures,
		"body":       stmtJSON(b.Body),
	}
}

func stmtJSON(s tree.Stmt) map[string]any {
	switch s := s.(type) {
	case *tree.Block:
		return blockJSON(s)
	case *tree.BadStmt:
		return map[string]any{"kind": "Error", "pos": s.Start.String()}
	case *tree.Assignment:
		return map[string]any{
			"kind":    "Assignment",
			"pos":     s.Start.String(),
			"lvalues": exprListJSON(s.LValues),
			"exps":    exprListJSON(s.Exps),
		}
	case *tree.Write:
		return map[string]any{"kind": "Write", "pos": s.Start.String(), "exp": exprJSON(s.Exp)}
	case *tree.Call:
		return map[string]any{"kind": "Call", "pos": s.Start.String(), "name": s.Name}
	case *tree.StmtList:
		statements := make([]any, 0, len(s.Statements))
		for _, stmt := range s.Statements {
			statements = append(statements, stmtJSON(stmt))
		}
		return map[string]any{"kind": "StatementList", "pos": s.Start.String(), "statements": statements}
	case *tree.If:
		return map[string]any{
			"kind": "If",
			"pos":  s.Start.String(),
			"cond": exprJSON(s.Cond),
			"then": stmtJSON(s.Then),
			"else": stmtJSON(s.Else),
		}
	case *tree.While:
		return map[string]any{
			"kind": "While",
			"pos":  s.Start.String(),
			"cond": exprJSON(s.Cond),
			"body": stmtJSON(s.Body),
		}
	case *tree.Do:
		branches := make([]any, 0, len(s.Branches))
		for _, b := range s.Branches {
			branches = append(branches, map[string]any{
				"kind": "DoBranch",
				"pos":  b.Start.String(),
				"cond": exprJSON(b.Cond),
				"body": stmtJSON(b.Body),
				"exit": b.Exits,
			})
		}
		return map[string]any{"kind": "Do", "pos": s.Start.String(), "branches": branches}
	case *tree.Skip:
		return map[string]any{"kind": "Skip", "pos": s.Start.String()}
	}
	return map[string]any{"kind": "Unknown"}
}

func exprListJSON(exprs []tree.Expr) []any {
	result := make([]any, 0, len(exprs))
	for _, e := range exprs {
		result = append(result, exprJSON(e))
	}
	return result
}

func exprJSON(e tree.Expr) map[string]any {
	switch e := e.(type) {
	case *tree.BadExpr:
		return map[string]any{"kind": "Error", "pos": e.Start.String()}
	case *tree.Identifier:
		return map[string]any{"kind": "Identifier", "pos": e.Start.String(), "name": e.Name}
	case *tree.Number:
		return map[string]any{"kind": "Number", "pos": e.Start.String(), "value": e.Value}
	case *tree.Read:
		return map[string]any{"kind": "Read", "pos": e.Start.String()}
	case *tree.Unary:
		return map[string]any{
			"kind":    "Unary",
			"pos":     e.Start.String(),
			"op":      e.Op.String(),
			"operand": exprJSON(e.Operand),
		}
	case *tree.Binary:
		return map[string]any{
			"kind":  "Binary",
			"pos":   e.Start.String(),
			"op":    e.Op.String(),
			"left":  exprJSON(e.Left),
			"right": exprJSON(e.Right),
		}
	}
	return map[string]any{"kind": "Unknown"}
}
