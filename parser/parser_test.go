package parser

import (
	"io"
	"testing"

	"github.com/dhamidi/pl0/source"
	"github.com/dhamidi/pl0/syms"
	"github.com/dhamidi/pl0/tree"
)

func parse(t *testing.T, src string) *Result {
	t.Helper()
	buf := source.NewBuffer("test.pl0", []byte(src))
	result, err := ParseProgram(buf, WithOutput(io.Discard))
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	return result
}

func lookup(t *testing.T, result *Result, scope int, name string) *syms.Entry {
	t.Helper()
	id, ok := result.Table.LookupFrom(syms.ScopeID(scope), name)
	if !ok {
		t.Fatalf("lookup %q: not found", name)
	}
	return result.Table.Entry(id)
}

func TestParseValidProgram(t *testing.T) {
	result := parse(t, `
const a = 5;
var x: int;
begin
  x := a + 1
end`)

	if result.Errors.HadErrors() {
		t.Fatalf("valid program produced %d errors", result.Errors.Count())
	}
	if result.Program == nil {
		t.Fatal("Program is nil")
	}

	scope := result.Program.Block.Locals
	a := lookup(t, result, scope, "a")
	if a.Kind != syms.EntryConstant {
		t.Errorf("a.Kind = %s, want constant", a.Kind)
	}
	if num, ok := a.Value.(*tree.NumberConst); !ok || num.Value != 5 {
		t.Errorf("a.Value = %v, want 5", a.Value)
	}

	x := lookup(t, result, scope, "x")
	if x.Kind != syms.EntryVariable {
		t.Errorf("x.Kind = %s, want variable", x.Kind)
	}
	if x.Type == nil || x.Type.Kind != syms.TypeReference {
		t.Errorf("x.Type = %v, want a reference type", x.Type)
	}

	body, ok := result.Program.Block.Body.(*tree.StmtList)
	if !ok {
		t.Fatalf("Body is %T, want *tree.StmtList", result.Program.Block.Body)
	}
	assign, ok := body.Statements[0].(*tree.Assignment)
	if !ok {
		t.Fatalf("statement is %T, want *tree.Assignment", body.Statements[0])
	}
	if len(assign.LValues) != 1 || len(assign.Exps) != 1 {
		t.Errorf("assignment has %d targets and %d values, want 1 and 1",
			len(assign.LValues), len(assign.Exps))
	}
	if sum, ok := assign.Exps[0].(*tree.Binary); !ok || sum.Op != tree.OpAdd {
		t.Errorf("value is %v, want binary +", assign.Exps[0])
	}
}

func TestParsePredefinedNames(t *testing.T) {
	result := parse(t, `begin skip end`)

	scope := result.Program.Block.Locals
	for _, name := range []string{"int", "boolean"} {
		if e := lookup(t, result, scope, name); e.Kind != syms.EntryType {
			t.Errorf("%s.Kind = %s, want type", name, e.Kind)
		}
	}
	for name, want := range map[string]int{"false": 0, "true": 1} {
		e := lookup(t, result, scope, name)
		if e.Kind != syms.EntryConstant {
			t.Errorf("%s.Kind = %s, want constant", name, e.Kind)
			continue
		}
		if num, ok := e.Value.(*tree.NumberConst); !ok || num.Value != want {
			t.Errorf("%s = %v, want %d", name, e.Value, want)
		}
	}
}

func TestParseMissingExpression(t *testing.T) {
	result := parse(t, `
var x: int;
begin
  x :=
end`)

	if got := result.Errors.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	// The diagnostic points at the token found where the expression
	// should have started.
	diag := result.Errors.All()[0]
	if diag.Pos.Line != 5 || diag.Pos.Column != 1 {
		t.Errorf("diagnostic at %s, want 5:1", diag.Pos)
	}

	body := result.Program.Block.Body.(*tree.StmtList)
	assign := body.Statements[0].(*tree.Assignment)
	if len(assign.LValues) != len(assign.Exps) {
		t.Fatalf("assignment has %d targets and %d values, want equal",
			len(assign.LValues), len(assign.Exps))
	}
	if _, ok := assign.Exps[0].(*tree.BadExpr); !ok {
		t.Errorf("missing value is %T, want *tree.BadExpr", assign.Exps[0])
	}
}

func TestParseDuplicateDeclaration(t *testing.T) {
	result := parse(t, `
var x: int;
    x: int;
begin
  x := 0
end`)

	if got := result.Errors.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	want := "Variable identifier x already declared in this scope"
	if got := result.Errors.All()[0].Message; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	scope := result.Table.Scope(syms.ScopeID(result.Program.Block.Locals))
	if names := scope.Names(); len(names) != 1 || names[0] != "x" {
		t.Errorf("scope names = %v, want [x]", names)
	}
}

func TestParseDuplicateConstAndType(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "constant",
			src:  "const a = 1;\n      a = 2;\nbegin skip end",
			want: "Constant identifier a already declared in this scope",
		},
		{
			name: "type",
			src:  "type t = [1..9];\n     t = [0..1];\nbegin skip end",
			want: "Type identifier t already declared in this scope",
		},
		{
			name: "procedure",
			src:  "procedure p() = begin skip end;\nprocedure p() = begin skip end;\nbegin skip end",
			want: "Procedure identifier p already declared in this scope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parse(t, tt.src)
			if got := result.Errors.Count(); got != 1 {
				t.Fatalf("Count() = %d, want 1", got)
			}
			if got := result.Errors.All()[0].Message; got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseParallelAssignment(t *testing.T) {
	result := parse(t, `
var x: int;
    y: int;
begin
  x, y := 1, 2
end`)

	if result.Errors.HadErrors() {
		t.Fatalf("produced %d errors", result.Errors.Count())
	}
	body := result.Program.Block.Body.(*tree.StmtList)
	assign := body.Statements[0].(*tree.Assignment)
	if len(assign.LValues) != 2 || len(assign.Exps) != 2 {
		t.Errorf("assignment has %d targets and %d values, want 2 and 2",
			len(assign.LValues), len(assign.Exps))
	}
}

func TestParseAssignmentArityMismatch(t *testing.T) {
	result := parse(t, `
var x: int;
    y: int;
begin
  x, y := 1
end`)

	if got := result.Errors.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	want := "number of variables doesn't match number of expressions in assignment"
	if got := result.Errors.All()[0].Message; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	body := result.Program.Block.Body.(*tree.StmtList)
	assign := body.Statements[0].(*tree.Assignment)
	if len(assign.LValues) != 2 || len(assign.Exps) != 2 {
		t.Fatalf("assignment has %d targets and %d values, want padded to 2 and 2",
			len(assign.LValues), len(assign.Exps))
	}
	if _, ok := assign.Exps[1].(*tree.BadExpr); !ok {
		t.Errorf("padding is %T, want *tree.BadExpr", assign.Exps[1])
	}
}

func TestParseEqualsForAssign(t *testing.T) {
	result := parse(t, `
var x: int;
begin
  x = 1
end`)

	if got := result.Errors.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	want := "expecting :="
	if got := result.Errors.All()[0].Message; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	body := result.Program.Block.Body.(*tree.StmtList)
	assign := body.Statements[0].(*tree.Assignment)
	if num, ok := assign.Exps[0].(*tree.Number); !ok || num.Value != 1 {
		t.Errorf("value is %v, want 1", assign.Exps[0])
	}
}

func TestParseReadDesugarsToAssignment(t *testing.T) {
	result := parse(t, `
var x: int;
begin
  read x
end`)

	if result.Errors.HadErrors() {
		t.Fatalf("produced %d errors", result.Errors.Count())
	}
	body := result.Program.Block.Body.(*tree.StmtList)
	assign, ok := body.Statements[0].(*tree.Assignment)
	if !ok {
		t.Fatalf("statement is %T, want *tree.Assignment", body.Statements[0])
	}
	if _, ok := assign.Exps[0].(*tree.Read); !ok {
		t.Errorf("value is %T, want *tree.Read", assign.Exps[0])
	}
}

func TestParseControlFlow(t *testing.T) {
	result := parse(t, `
var x: int;
begin
  while x < 10 do
    if x = 0 then
      x := 1
    else
      x := x * 2;
  write x
end`)

	if result.Errors.HadErrors() {
		t.Fatalf("produced %d errors", result.Errors.Count())
	}
	body := result.Program.Block.Body.(*tree.StmtList)
	if len(body.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(body.Statements))
	}

	loop, ok := body.Statements[0].(*tree.While)
	if !ok {
		t.Fatalf("statement is %T, want *tree.While", body.Statements[0])
	}
	if cond, ok := loop.Cond.(*tree.Binary); !ok || cond.Op != tree.OpLess {
		t.Errorf("loop condition is %v, want binary <", loop.Cond)
	}
	if _, ok := loop.Body.(*tree.If); !ok {
		t.Errorf("loop body is %T, want *tree.If", loop.Body)
	}
	if _, ok := body.Statements[1].(*tree.Write); !ok {
		t.Errorf("statement is %T, want *tree.Write", body.Statements[1])
	}
}

func TestParseDoStatement(t *testing.T) {
	result := parse(t, `
var x: int;
begin
  do x < 10 then x := x + 1
  [] x >= 10 then skip exit
  od
end`)

	if result.Errors.HadErrors() {
		t.Fatalf("produced %d errors", result.Errors.Count())
	}
	body := result.Program.Block.Body.(*tree.StmtList)
	loop, ok := body.Statements[0].(*tree.Do)
	if !ok {
		t.Fatalf("statement is %T, want *tree.Do", body.Statements[0])
	}
	if len(loop.Branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(loop.Branches))
	}
	if loop.Branches[0].Exits {
		t.Error("first branch should not exit")
	}
	if !loop.Branches[1].Exits {
		t.Error("second branch should exit")
	}
	if !loop.Exits() {
		t.Error("Exits() = false, want true")
	}
}

func TestParseProcedure(t *testing.T) {
	result := parse(t, `
procedure double() =
  var y: int;
  begin
    y := y * 2
  end;
begin
  call double()
end`)

	if result.Errors.HadErrors() {
		t.Fatalf("produced %d errors", result.Errors.Count())
	}
	block := result.Program.Block
	if len(block.Procedures) != 1 {
		t.Fatalf("got %d procedures, want 1", len(block.Procedures))
	}
	proc := block.Procedures[0]
	if proc.Name != "double" {
		t.Errorf("procedure name = %q, want %q", proc.Name, "double")
	}

	entry := result.Table.Entry(syms.EntryID(proc.Entry))
	if entry.Kind != syms.EntryProcedure {
		t.Errorf("entry kind = %s, want procedure", entry.Kind)
	}
	if entry.Local == syms.NoScope {
		t.Error("procedure entry has no local scope")
	}
	if entry.Local != syms.ScopeID(proc.Block.Locals) {
		t.Errorf("entry local scope %d does not match block scope %d",
			entry.Local, proc.Block.Locals)
	}

	// y lives in the procedure scope, not the outer one.
	if _, ok := result.Table.LookupFrom(syms.ScopeID(block.Locals), "y"); ok {
		t.Error("y leaked into the outer scope")
	}
	if _, ok := result.Table.LookupFrom(entry.Local, "y"); !ok {
		t.Error("y not found in the procedure scope")
	}

	body := block.Body.(*tree.StmtList)
	call, ok := body.Statements[0].(*tree.Call)
	if !ok {
		t.Fatalf("statement is %T, want *tree.Call", body.Statements[0])
	}
	if call.Name != "double" {
		t.Errorf("call name = %q, want %q", call.Name, "double")
	}
}

func TestParseCallWithoutName(t *testing.T) {
	result := parse(t, `begin call () end`)

	if !result.Errors.HadErrors() {
		t.Fatal("expected errors")
	}
	body := result.Program.Block.Body.(*tree.StmtList)
	call, ok := body.Statements[0].(*tree.Call)
	if !ok {
		t.Fatalf("statement is %T, want *tree.Call", body.Statements[0])
	}
	if call.Name != "<noid>" {
		t.Errorf("call name = %q, want %q", call.Name, "<noid>")
	}
}

func TestParseEmptyInput(t *testing.T) {
	buf := source.NewBuffer("test.pl0", nil)
	result, err := ParseProgram(buf, WithOutput(io.Discard))
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	if result.Program != nil {
		t.Error("Program should be nil for empty input")
	}
	if !result.Errors.HadErrors() {
		t.Error("empty input should be reported")
	}
}

func TestParseErrorLimit(t *testing.T) {
	src := `begin x = 1; x = 1; x = 1; x = 1 end`
	buf := source.NewBuffer("test.pl0", []byte(src))
	result, err := ParseProgram(buf, WithOutput(io.Discard), WithMaxErrors(2))
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	if got := result.Errors.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if got := len(result.Errors.All()); got != 2 {
		t.Errorf("len(All()) = %d, want 2", got)
	}
}

func TestParseRecoversPerStatement(t *testing.T) {
	// The damaged first statement must not swallow the second one.
	result := parse(t, `
var x: int;
begin
  x := * 3;
  x := 7
end`)

	if !result.Errors.HadErrors() {
		t.Fatal("expected errors")
	}
	body := result.Program.Block.Body.(*tree.StmtList)
	if len(body.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(body.Statements))
	}
	assign, ok := body.Statements[1].(*tree.Assignment)
	if !ok {
		t.Fatalf("statement is %T, want *tree.Assignment", body.Statements[1])
	}
	if num, ok := assign.Exps[0].(*tree.Number); !ok || num.Value != 7 {
		t.Errorf("second assignment value is %v, want 7", assign.Exps[0])
	}
}

func TestParseSubrangeConstants(t *testing.T) {
	result := parse(t, `
const lo = -1;
type small = [lo..9];
begin skip end`)

	if result.Errors.HadErrors() {
		t.Fatalf("produced %d errors", result.Errors.Count())
	}
	small := lookup(t, result, result.Program.Block.Locals, "small")
	if small.Type == nil || small.Type.Kind != syms.TypeSubrange {
		t.Fatalf("small.Type = %v, want subrange", small.Type)
	}
	if _, ok := small.Type.Lower.(*tree.ConstRef); !ok {
		t.Errorf("lower bound is %T, want *tree.ConstRef", small.Type.Lower)
	}
	if _, ok := small.Type.Upper.(*tree.NumberConst); !ok {
		t.Errorf("upper bound is %T, want *tree.NumberConst", small.Type.Upper)
	}

	lo := lookup(t, result, result.Program.Block.Locals, "lo")
	if _, ok := lo.Value.(*tree.NegateConst); !ok {
		t.Errorf("lo.Value is %T, want *tree.NegateConst", lo.Value)
	}
}
