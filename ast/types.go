package ast

import (
	"strings"

	"github.com/xs-lang/xscheck/lexer"
)

// TypeKind discriminates XS's closed set of types.
type TypeKind int

const (
	TInt TypeKind = iota
	TFloat
	TBool
	TStr
	TVec
	TVoid

	// Not real XS value types, but tracked by the environment.
	TLabel
	TRule
	TFn
	TClass
)

// FnParam is one (name, type) entry of a function type's signature. The
// signature's final entry is always named "return" and carries the
// declared return type, so arity checks can subtract one for the
// trailing return entry.
type FnParam struct {
	Name string
	Type Type
}

// Type is XS's type. Fn types carry an ordered signature so structural
// equality (used for mutable-function-redefinition checks) is a plain
// sequence comparison.
type Type struct {
	Kind      TypeKind
	IsMutable bool // only meaningful when Kind == TFn
	Signature []FnParam
}

func Simple(kind TypeKind) Type { return Type{Kind: kind} }

var (
	Int   = Simple(TInt)
	Float = Simple(TFloat)
	Bool  = Simple(TBool)
	Str   = Simple(TStr)
	Vec   = Simple(TVec)
	Void  = Simple(TVoid)
	Label = Simple(TLabel)
	Rule  = Simple(TRule)
	Class = Simple(TClass)
)

// FromToken converts a primitive-type token into its Type. Panics on any
// other token; callers only ever invoke it on tokens the parser has
// already restricted to the primitive-type set.
func FromToken(tt lexer.TokenType) Type {
	switch tt {
	case lexer.Int:
		return Int
	case lexer.Bool:
		return Bool
	case lexer.Float:
		return Float
	case lexer.String:
		return Str
	case lexer.Vector:
		return Vec
	case lexer.Void:
		return Void
	default:
		panic("non-type token cannot be converted to a type")
	}
}

func (t Type) String() string {
	switch t.Kind {
	case TInt:
		return "int"
	case TFloat:
		return "float"
	case TBool:
		return "bool"
	case TStr:
		return "string"
	case TVec:
		return "vector"
	case TVoid:
		return "void"
	case TLabel:
		return "label"
	case TRule:
		return "rule"
	case TClass:
		return "class"
	case TFn:
		names := make([]string, 0, len(t.Signature))
		for _, p := range t.Signature {
			names = append(names, p.Type.String())
		}
		prefix := ""
		if t.IsMutable {
			prefix = "mut "
		}
		return prefix + strings.Join(names, " -> ")
	}
	return "?"
}

// Equal performs a structural comparison: deep equality of the
// signature sequence for Fn types, kind equality otherwise.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind != TFn {
		return true
	}
	if t.IsMutable != other.IsMutable || len(t.Signature) != len(other.Signature) {
		return false
	}
	for i := range t.Signature {
		if t.Signature[i].Name != other.Signature[i].Name || !t.Signature[i].Type.Equal(other.Signature[i].Type) {
			return false
		}
	}
	return true
}

// ReturnType extracts the trailing "return" entry of an Fn type's
// signature.
func (t Type) ReturnType() Type {
	if t.Kind != TFn || len(t.Signature) == 0 {
		return Void
	}
	return t.Signature[len(t.Signature)-1].Type
}

// Params returns the signature with the trailing return entry removed.
func (t Type) Params() []FnParam {
	if t.Kind != TFn || len(t.Signature) == 0 {
		return nil
	}
	return t.Signature[:len(t.Signature)-1]
}
