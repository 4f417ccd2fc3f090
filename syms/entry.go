package syms

import (
	"github.com/dhamidi/pl0/source"
	"github.com/dhamidi/pl0/tree"
)

// EntryID indexes an entry in a Table's arena. Cross-references between
// scopes and entries use ids rather than pointers.
type EntryID int

const NoEntry EntryID = -1

type EntryKind int

const (
	EntryConstant EntryKind = iota
	EntryType
	EntryVariable
	EntryProcedure
)

var entryKindNames = map[EntryKind]string{
	EntryConstant:  "constant",
	EntryType:      "type",
	EntryVariable:  "variable",
	EntryProcedure: "procedure",
}

func (k EntryKind) String() string {
	if name, ok := entryKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Entry is one declared name. Which payload fields are set depends on
// Kind.
type Entry struct {
	Kind  EntryKind
	Name  string
	Pos   source.Position
	Scope ScopeID       // scope the entry was declared in
	Value tree.ConstExp // EntryConstant: the defining expression
	Type  *Type         // EntryType: alias target; EntryVariable: declared type
	Local ScopeID       // EntryProcedure: local scope, NoScope until the body is parsed
}
