package syms

import (
	"github.com/dhamidi/pl0/source"
	"github.com/dhamidi/pl0/tree"
)

// ScopeID indexes a scope in a Table's arena.
type ScopeID int

const NoScope ScopeID = -1

// Scope maps declared names to entries. Scopes form a tree through
// Parent; the predefined scope is the root and has no parent.
type Scope struct {
	ID      ScopeID
	Parent  ScopeID
	Owner   EntryID // procedure entry this scope belongs to, NoEntry for the predefined scope
	entries map[string]EntryID
	names   []string // declaration order, for deterministic listings
}

// Names returns the declared names in declaration order.
func (s *Scope) Names() []string {
	return s.names
}

// Table owns all scopes and entries of one compilation and tracks the
// current scope. It never reports errors itself: a failed declaration
// returns ok=false and the caller decides what to tell the user.
type Table struct {
	scopes  []*Scope
	entries []*Entry
	current ScopeID
}

// NewTable creates a table whose current scope is the predefined scope
// holding the builtin types and constants.
func NewTable() *Table {
	t := &Table{}
	pre := t.addScope(NoScope, NoEntry)
	t.current = pre
	t.declare(&Entry{Kind: EntryType, Name: "int", Pos: source.NoPosition, Type: IntegerType})
	t.declare(&Entry{Kind: EntryType, Name: "boolean", Pos: source.NoPosition, Type: BooleanType})
	t.declare(&Entry{Kind: EntryConstant, Name: "false", Pos: source.NoPosition,
		Value: &tree.NumberConst{Start: source.NoPosition, Scope: int(pre), Value: 0}})
	t.declare(&Entry{Kind: EntryConstant, Name: "true", Pos: source.NoPosition,
		Value: &tree.NumberConst{Start: source.NoPosition, Scope: int(pre), Value: 1}})
	return t
}

func (t *Table) addScope(parent ScopeID, owner EntryID) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, &Scope{
		ID:      id,
		Parent:  parent,
		Owner:   owner,
		entries: make(map[string]EntryID),
	})
	return id
}

func (t *Table) addEntry(e *Entry) EntryID {
	id := EntryID(len(t.entries))
	t.entries = append(t.entries, e)
	return id
}

// declare inserts the entry into the current scope. Returns NoEntry and
// false when the name is already taken in the current scope; enclosing
// scopes never matter, shadowing is always allowed.
func (t *Table) declare(e *Entry) (EntryID, bool) {
	scope := t.scopes[t.current]
	if _, taken := scope.entries[e.Name]; taken {
		return NoEntry, false
	}
	e.Scope = t.current
	id := t.addEntry(e)
	scope.entries[e.Name] = id
	scope.names = append(scope.names, e.Name)
	return id, true
}

func (t *Table) AddConstant(name string, pos source.Position, value tree.ConstExp) (EntryID, bool) {
	return t.declare(&Entry{Kind: EntryConstant, Name: name, Pos: pos, Value: value})
}

func (t *Table) AddType(name string, pos source.Position, typ *Type) (EntryID, bool) {
	return t.declare(&Entry{Kind: EntryType, Name: name, Pos: pos, Type: typ})
}

func (t *Table) AddVariable(name string, pos source.Position, typ *Type) (EntryID, bool) {
	return t.declare(&Entry{Kind: EntryVariable, Name: name, Pos: pos, Type: typ})
}

func (t *Table) AddProcedure(name string, pos source.Position) (EntryID, bool) {
	return t.declare(&Entry{Kind: EntryProcedure, Name: name, Pos: pos, Local: NoScope})
}

// AddDanglingProcedure allocates a procedure entry outside any scope.
// The parser uses it when a procedure has no usable name or its name is
// already taken, so the rest of the body can still be parsed against a
// real entry.
func (t *Table) AddDanglingProcedure(name string, pos source.Position) EntryID {
	return t.addEntry(&Entry{Kind: EntryProcedure, Name: name, Pos: pos, Scope: t.current, Local: NoScope})
}

// NewScope pushes a fresh scope owned by the given procedure entry and
// makes it current.
func (t *Table) NewScope(owner EntryID) ScopeID {
	id := t.addScope(t.current, owner)
	t.current = id
	return id
}

// LeaveScope pops back to the parent scope. Returns false on underflow,
// which indicates a bug in the parser, never a user error.
func (t *Table) LeaveScope() bool {
	parent := t.scopes[t.current].Parent
	if parent == NoScope {
		return false
	}
	t.current = parent
	return true
}

func (t *Table) Current() ScopeID {
	return t.current
}

func (t *Table) Scope(id ScopeID) *Scope {
	if id == NoScope {
		return nil
	}
	return t.scopes[id]
}

func (t *Table) Entry(id EntryID) *Entry {
	if id == NoEntry {
		return nil
	}
	return t.entries[id]
}

// SetLocal attaches a procedure's local scope to its entry once the
// body has been parsed.
func (t *Table) SetLocal(proc EntryID, scope ScopeID) {
	t.entries[proc].Local = scope
}

// Lookup resolves a name starting at the current scope and walking
// outward to the predefined scope.
func (t *Table) Lookup(name string) (EntryID, bool) {
	return t.LookupFrom(t.current, name)
}

// LookupFrom resolves a name starting at the given scope.
func (t *Table) LookupFrom(scope ScopeID, name string) (EntryID, bool) {
	for id := scope; id != NoScope; id = t.scopes[id].Parent {
		if entry, ok := t.scopes[id].entries[name]; ok {
			return entry, true
		}
	}
	return NoEntry, false
}
