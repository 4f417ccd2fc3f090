package syms

import (
	"testing"

	"github.com/dhamidi/pl0/source"
	"github.com/dhamidi/pl0/tree"
)

func pos(line, column int) source.Position {
	return source.Position{Line: line, Column: column, Offset: (line-1)*80 + column}
}

func TestTablePredefinedScope(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name string
		kind EntryKind
	}{
		{name: "int", kind: EntryType},
		{name: "boolean", kind: EntryType},
		{name: "false", kind: EntryConstant},
		{name: "true", kind: EntryConstant},
	}
	for _, tt := range tests {
		id, ok := table.Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) not found", tt.name)
			continue
		}
		if got := table.Entry(id).Kind; got != tt.kind {
			t.Errorf("%s.Kind = %s, want %s", tt.name, got, tt.kind)
		}
	}
}

func TestTableDeclare(t *testing.T) {
	table := NewTable()
	main, _ := table.AddProcedure("<main>", source.NoPosition)
	table.NewScope(main)

	id, ok := table.AddVariable("x", pos(1, 5), ReferenceType(IntegerType))
	if !ok {
		t.Fatal("AddVariable failed")
	}

	entry := table.Entry(id)
	if entry.Name != "x" || entry.Kind != EntryVariable {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Scope != table.Current() {
		t.Errorf("entry.Scope = %d, want current scope %d", entry.Scope, table.Current())
	}
}

func TestTableDuplicate(t *testing.T) {
	table := NewTable()
	main, _ := table.AddProcedure("<main>", source.NoPosition)
	table.NewScope(main)

	if _, ok := table.AddVariable("x", pos(1, 5), ReferenceType(IntegerType)); !ok {
		t.Fatal("first declaration failed")
	}
	if id, ok := table.AddVariable("x", pos(2, 5), ReferenceType(IntegerType)); ok || id != NoEntry {
		t.Errorf("duplicate declaration: id=%d ok=%v, want NoEntry false", id, ok)
	}
	if names := table.Scope(table.Current()).Names(); len(names) != 1 {
		t.Errorf("scope names = %v, want single entry", names)
	}
}

func TestTableShadowing(t *testing.T) {
	table := NewTable()
	main, _ := table.AddProcedure("<main>", source.NoPosition)
	outer := table.NewScope(main)
	outerX, _ := table.AddVariable("x", pos(1, 5), ReferenceType(IntegerType))

	proc, _ := table.AddProcedure("p", pos(2, 1))
	table.NewScope(proc)
	innerX, ok := table.AddVariable("x", pos(3, 5), ReferenceType(BooleanType))
	if !ok {
		t.Fatal("shadowing declaration failed")
	}

	if id, _ := table.Lookup("x"); id != innerX {
		t.Errorf("Lookup(x) = %d in inner scope, want %d", id, innerX)
	}

	if !table.LeaveScope() {
		t.Fatal("LeaveScope failed")
	}
	if table.Current() != outer {
		t.Errorf("Current() = %d, want %d", table.Current(), outer)
	}
	if id, _ := table.Lookup("x"); id != outerX {
		t.Errorf("Lookup(x) = %d in outer scope, want %d", id, outerX)
	}
}

func TestTableLookupWalksOutward(t *testing.T) {
	table := NewTable()
	main, _ := table.AddProcedure("<main>", source.NoPosition)
	table.NewScope(main)
	constID, _ := table.AddConstant("limit", pos(1, 7),
		&tree.NumberConst{Start: pos(1, 15), Scope: int(table.Current()), Value: 10})

	proc, _ := table.AddProcedure("p", pos(2, 1))
	table.NewScope(proc)

	if id, ok := table.Lookup("limit"); !ok || id != constID {
		t.Errorf("Lookup(limit) = %d %v, want %d true", id, ok, constID)
	}
	if _, ok := table.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
	if id, ok := table.Lookup("int"); !ok || table.Entry(id).Kind != EntryType {
		t.Error("predefined names should be visible from nested scopes")
	}
}

func TestTableLeaveScopeUnderflow(t *testing.T) {
	table := NewTable()
	if table.LeaveScope() {
		t.Error("LeaveScope() = true at the predefined scope, want false")
	}
}

func TestTableDanglingProcedure(t *testing.T) {
	table := NewTable()
	main, _ := table.AddProcedure("<main>", source.NoPosition)
	table.NewScope(main)

	table.AddProcedure("p", pos(1, 1))
	dangling := table.AddDanglingProcedure("p", pos(2, 1))

	if table.Entry(dangling) == nil {
		t.Fatal("dangling entry not allocated")
	}
	// The dangling entry must not replace the declared one.
	id, _ := table.Lookup("p")
	if id == dangling {
		t.Error("dangling entry is reachable by lookup")
	}
}

func TestTableSetLocal(t *testing.T) {
	table := NewTable()
	main, _ := table.AddProcedure("<main>", source.NoPosition)
	scope := table.NewScope(main)
	table.SetLocal(main, scope)

	if got := table.Entry(main).Local; got != scope {
		t.Errorf("Local = %d, want %d", got, scope)
	}
	if got := table.Scope(scope).Owner; got != main {
		t.Errorf("Owner = %d, want %d", got, main)
	}
}
