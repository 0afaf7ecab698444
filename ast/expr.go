package ast

import (
	"fmt"
	"strings"

	"github.com/xs-lang/xscheck/span"
)

// Expr is the closed set of expression forms. Binary operators share a
// single BinExpr carrying a BinOp discriminant rather than one type per
// operator, so an exhaustive switch over Op covers all of them.
type Expr interface {
	isExpr()
	// Key returns a canonical string encoding the expression's full
	// structure, used to compare switch-case expressions by structural
	// equality.
	Key() string
}

type BinOp int

const (
	OpStar BinOp = iota
	OpFSlash
	OpPCent // unreachable from the parser: '%' always lexes as FSlash; kept for table completeness
	OpPlus
	OpMinus
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

func (op BinOp) String() string {
	switch op {
	case OpStar:
		return "*"
	case OpFSlash:
		return "/"
	case OpPCent:
		return "%"
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	}
	return "?"
}

type LiteralExpr struct{ Value Literal }
type IdentExpr struct{ Name string }
type ParenExpr struct{ Inner span.Spanned[Expr] }
type VecExpr struct{ X, Y, Z span.Spanned[Expr] }
type FnCallExpr struct {
	Name span.Spanned[string]
	Args []span.Spanned[Expr]
}
type NegExpr struct{ Inner span.Spanned[Expr] }
type NotExpr struct{ Inner span.Spanned[Expr] }
type BinExpr struct {
	Op          BinOp
	Left, Right span.Spanned[Expr]
}

func (LiteralExpr) isExpr() {}
func (IdentExpr) isExpr()   {}
func (ParenExpr) isExpr()   {}
func (VecExpr) isExpr()     {}
func (FnCallExpr) isExpr()  {}
func (NegExpr) isExpr()     {}
func (NotExpr) isExpr()     {}
func (BinExpr) isExpr()     {}

func (e LiteralExpr) Key() string { return "L" + e.Value.Key() }
func (e IdentExpr) Key() string   { return "I" + e.Name }
func (e ParenExpr) Key() string   { return "(" + e.Inner.Node.Key() + ")" }
func (e VecExpr) Key() string {
	return fmt.Sprintf("V(%s,%s,%s)", e.X.Node.Key(), e.Y.Node.Key(), e.Z.Node.Key())
}
func (e FnCallExpr) Key() string {
	args := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, a.Node.Key())
	}
	return fmt.Sprintf("C%s(%s)", e.Name.Node, strings.Join(args, ","))
}
func (e NegExpr) Key() string { return "-" + e.Inner.Node.Key() }
func (e NotExpr) Key() string { return "!" + e.Inner.Node.Key() }
func (e BinExpr) Key() string {
	return fmt.Sprintf("B%s(%s,%s)", e.Op, e.Left.Node.Key(), e.Right.Node.Key())
}

// ExprText renders a literal-shaped expression as source text, used for
// hover/init rendering of const declarations. Returns false for
// expressions with no literal rendering (calls, parens, comparisons, ...).
func ExprText(e Expr) (string, bool) {
	switch v := e.(type) {
	case LiteralExpr:
		return v.Value.String(), true
	case IdentExpr:
		return v.Name, true
	case VecExpr:
		x, _ := ExprText(v.X.Node)
		y, _ := ExprText(v.Y.Node)
		z, _ := ExprText(v.Z.Node)
		return fmt.Sprintf("vector(%s, %s, %s)", orUnknown(x), orUnknown(y), orUnknown(z)), true
	case NegExpr:
		inner, _ := ExprText(v.Inner.Node)
		return "-" + orUnknown(inner), true
	}
	return "", false
}

func orUnknown(s string) string {
	if s == "" {
		return "???"
	}
	return s
}
