package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/pl0/source"
	"github.com/dhamidi/pl0/tree"
)

func sampleProgram() *tree.Program {
	pos := source.Position{Line: 1, Column: 1, Offset: 0}
	body := &tree.StmtList{Start: pos}
	body.Add(&tree.Assignment{
		Start:   pos,
		LValues: []tree.Expr{&tree.Identifier{Start: pos, Name: "x"}},
		Exps: []tree.Expr{&tree.Binary{
			Start: pos,
			Op:    tree.OpAdd,
			Left:  &tree.Identifier{Start: pos, Name: "x"},
			Right: &tree.Number{Start: pos, Value: 1},
		}},
	})
	body.Add(&tree.Write{Start: pos, Exp: &tree.Identifier{Start: pos, Name: "x"}})

	return &tree.Program{
		Start: pos,
		Block: &tree.Block{Start: pos, Body: body, Locals: 1},
	}
}

func TestTextEncoder(t *testing.T) {
	var out bytes.Buffer
	if err := NewTextEncoder(&out).Encode(sampleProgram()); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	for _, want := range []string{"BEGIN", "x := (x + 1)", "WRITE x", "END"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestJSONEncoder(t *testing.T) {
	var out bytes.Buffer
	if err := NewJSONEncoder(&out).Encode(sampleProgram()); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc["kind"] != "Program" {
		t.Errorf(`kind = %v, want "Program"`, doc["kind"])
	}
	block, ok := doc["block"].(map[string]any)
	if !ok {
		t.Fatalf("block = %T, want object", doc["block"])
	}
	body, ok := block["body"].(map[string]any)
	if !ok {
		t.Fatalf("body = %T, want object", block["body"])
	}
	statements, ok := body["statements"].([]any)
	if !ok || len(statements) != 2 {
		t.Fatalf("statements = %v, want 2 entries", body["statements"])
	}
	assign := statements[0].(map[string]any)
	if assign["kind"] != "Assignment" {
		t.Errorf(`statement kind = %v, want "Assignment"`, assign["kind"])
	}
	if assign["pos"] != "1:1" {
		t.Errorf(`pos = %v, want "1:1"`, assign["pos"])
	}
}

func TestJSONEncoderNilProgram(t *testing.T) {
	var out bytes.Buffer
	if err := NewJSONEncoder(&out).Encode(nil); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(out.String(), `"kind": "Error"`) {
		t.Errorf("output = %s, want an error node", out.String())
	}
}
