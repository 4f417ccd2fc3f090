package parser

import "testing"

func TestTokenSetContains(t *testing.T) {
	s := NewTokenSet(TokenIdent, TokenNumber)

	if !s.Contains(TokenIdent) || !s.Contains(TokenNumber) {
		t.Error("set should contain its members")
	}
	if s.Contains(TokenBegin) {
		t.Error("set should not contain non-members")
	}
	if NewTokenSet().Contains(TokenEOF) {
		t.Error("empty set should contain nothing")
	}
}

func TestTokenSetUnionDoesNotMutate(t *testing.T) {
	base := NewTokenSet(TokenIdent)
	extended := base.Union(TokenNumber)

	if base.Contains(TokenNumber) {
		t.Error("Union must not mutate its receiver")
	}
	if !extended.Contains(TokenIdent) || !extended.Contains(TokenNumber) {
		t.Error("Union result missing members")
	}
}

func TestTokenSetUnionSet(t *testing.T) {
	a := NewTokenSet(TokenIdent, TokenNumber)
	b := NewTokenSet(TokenNumber, TokenBegin)

	u := a.UnionSet(b)
	for _, kind := range []TokenKind{TokenIdent, TokenNumber, TokenBegin} {
		if !u.Contains(kind) {
			t.Errorf("union missing %s", kind)
		}
	}
	if u != b.UnionSet(a) {
		t.Error("union should be commutative")
	}
	if u != u.UnionSet(a) {
		t.Error("union should be idempotent")
	}
}

func TestTokenSetString(t *testing.T) {
	s := NewTokenSet(TokenAssign, TokenIdent)
	if got := s.String(); got != "{identifier :=}" {
		t.Errorf("String() = %q", got)
	}
}
