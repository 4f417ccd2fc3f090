package syms

import (
	"github.com/dhamidi/pl0/source"
	"github.com/dhamidi/pl0/tree"
)

type TypeKind int

const (
	TypeError TypeKind = iota
	TypeBasic
	TypeNamed
	TypeSubrange
	TypeReference
)

// Type describes a declared or referenced type. Named references are
// not resolved during parsing; they carry the scope to resolve in so a
// later phase can chase them.
type Type struct {
	Kind  TypeKind
	Name  string          // TypeBasic, TypeNamed
	Pos   source.Position // TypeNamed: where the name occurred
	Scope ScopeID         // TypeNamed: scope to resolve the name in
	Lower tree.ConstExp   // TypeSubrange
	Upper tree.ConstExp   // TypeSubrange
	Elem  *Type           // TypeReference
}

var (
	ErrorType   = &Type{Kind: TypeError}
	IntegerType = &Type{Kind: TypeBasic, Name: "int"}
	BooleanType = &Type{Kind: TypeBasic, Name: "boolean"}
)

// NamedType is a deferred reference to a type declared elsewhere.
func NamedType(name string, scope ScopeID, pos source.Position) *Type {
	return &Type{Kind: TypeNamed, Name: name, Scope: scope, Pos: pos}
}

// SubrangeType is an integer range with constant bounds.
func SubrangeType(lower, upper tree.ConstExp) *Type {
	return &Type{Kind: TypeSubrange, Lower: lower, Upper: upper}
}

// ReferenceType wraps the declared type of a variable; assignable
// locations always have reference type.
func ReferenceType(elem *Type) *Type {
	return &Type{Kind: TypeReference, Elem: elem}
}

func (t *Type) String() string {
	switch t.Kind {
	case TypeBasic, TypeNamed:
		return t.Name
	case TypeSubrange:
		return "[" + tree.ConstString(t.Lower) + ".." + tree.ConstString(t.Upper) + "]"
	case TypeReference:
		return "ref(" + t.Elem.String() + ")"
	}
	return "error"
}
