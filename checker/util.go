package checker

import (
	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/span"
	"github.com/xs-lang/xscheck/xsenv"
)

// CheckIntLit flags an int literal whose magnitude exceeds the engine's
// 9-digit range.
func CheckIntLit(val int64, sp span.Span) []diag.Diagnostic {
	if val < -999999999 || val > 999999999 {
		return []diag.Diagnostic{diag.NewSyntax(sp, "{0} literals cannot have more than 9 digits", "int")}
	}
	return nil
}

func isNumKind(k ast.TypeKind) bool { return k == ast.TInt || k == ast.TFloat }

// checkNumLit validates an expression in a numeric-literal-only
// position: a vector component, or the operand of a unary negation.
// isNeg distinguishes "we're already inside a Neg" (so a nested Neg is
// illegal) from the first call; isVec restricts literals to float
// literals (plain or negated) and additionally allows a float const
// identifier reference.
func (c *Checker) checkNumLit(path string, e span.Spanned[ast.Expr], env *xsenv.TypeEnv, isNeg, isVec bool) []diag.Diagnostic {
	vecErr := []diag.Diagnostic{diag.NewSyntax(e.Span, "only {0} constants or literals are allowed in vector initialization; use {1} instead", "float", "xsVectorSet")}
	switch v := e.Node.(type) {
	case ast.NegExpr:
		if !isNeg {
			if lit, ok := v.Inner.Node.(ast.LiteralExpr); ok && isVec && lit.Value.Kind != ast.LitFloat {
				return vecErr
			}
			return c.checkNumLit(path, v.Inner, env, true, false)
		}
		return []diag.Diagnostic{diag.NewSyntax(e.Span, "unary negative ({0}) is only allowed before {1} literals", "-", "int | float")}
	case ast.LiteralExpr:
		if isVec && v.Value.Kind != ast.LitFloat {
			return vecErr
		}
		switch v.Value.Kind {
		case ast.LitInt:
			return CheckIntLit(v.Value.IntVal, e.Span)
		case ast.LitFloat:
			return nil
		case ast.LitBool:
			return []diag.Diagnostic{diag.NewTypeMismatch(e.Span, "int | float", "bool")}
		case ast.LitStr:
			return []diag.Diagnostic{diag.NewTypeMismatch(e.Span, "int | float", "string")}
		}
		return nil
	default:
		if isVec {
			if id, ok := e.Node.(ast.IdentExpr); ok {
				info, found := env.Lookup(id.Name)
				if !found {
					return []diag.Diagnostic{diag.NewUndefinedName(e.Span, id.Name)}
				}
				if info.Type.Kind == ast.TFloat && info.Modifiers.IsConst {
					return nil
				}
			}
			return vecErr
		}
		return []diag.Diagnostic{diag.NewSyntax(e.Span, "unary negative ({0}) is only allowed before {1} literals", "-", "int | float")}
	}
}

// ArithOp checks a +, -, *, /, or % expression and returns its result
// type, following the arithmetic operator table of SPEC_FULL.md §4.4
// table-for-table (the first-operand-drives-the-result-type quirk
// included).
func (c *Checker) ArithOp(path string, sp span.Span, e1, e2 span.Spanned[ast.Expr], env *xsenv.TypeEnv, opName string) *ast.Type {
	t1 := c.CheckExpr(path, e1, env)
	t2 := c.CheckExpr(path, e2, env)
	if t1 == nil || t2 == nil {
		return nil
	}
	switch {
	case t1.Kind == ast.TInt && t2.Kind == ast.TInt:
		r := ast.Int
		return &r
	case t1.Kind == ast.TInt && t2.Kind == ast.TFloat:
		env.EmitAt(path, diag.NewWarning(diag.FirstOprArith, sp, "int"))
		r := ast.Int
		return &r
	case t1.Kind == ast.TFloat && (t2.Kind == ast.TInt || t2.Kind == ast.TFloat):
		r := ast.Float
		return &r
	case opName == "add" && (t1.Kind == ast.TStr || t2.Kind == ast.TStr):
		r := ast.Str
		return &r
	case opName == "add" && t1.Kind == ast.TVec && t2.Kind == ast.TVec:
		r := ast.Vec
		return &r
	case opName == "subtract" && t1.Kind == ast.TVec && t2.Kind == ast.TVec:
		r := ast.Vec
		return &r
	case opName == "multiply" && ((t1.Kind == ast.TVec && isNumKind(t2.Kind)) || (isNumKind(t1.Kind) && t2.Kind == ast.TVec)):
		r := ast.Vec
		return &r
	case opName == "divide" && t1.Kind == ast.TVec && isNumKind(t2.Kind):
		r := ast.Vec
		return &r
	default:
		env.EmitAt(path, diag.NewOpMismatch(sp, opName, t1.String(), t2.String()))
		return nil
	}
}

// RelnOp checks a <, >, <=, >=, ==, or != expression.
func (c *Checker) RelnOp(path string, sp span.Span, e1, e2 span.Spanned[ast.Expr], env *xsenv.TypeEnv, opName string) *ast.Type {
	t1 := c.CheckExpr(path, e1, env)
	t2 := c.CheckExpr(path, e2, env)
	if t1 == nil || t2 == nil {
		return nil
	}
	switch {
	case isNumKind(t1.Kind) && isNumKind(t2.Kind):
		r := ast.Bool
		return &r
	case t1.Kind == ast.TStr && t2.Kind == ast.TStr:
		r := ast.Bool
		return &r
	case (t1.Kind == ast.TVec && t2.Kind == ast.TVec) || (t1.Kind == ast.TBool && t2.Kind == ast.TBool):
		if opName != "eq" && opName != "ne" {
			env.EmitAt(path, diag.NewWarning(diag.CmpSilentCrash, sp, t1.String(), t2.String()))
		}
		r := ast.Bool
		return &r
	default:
		env.EmitAt(path, diag.NewOpMismatch(sp, "compare", t1.String(), t2.String()))
		return nil
	}
}

// LogicalOp checks a && or || expression.
func (c *Checker) LogicalOp(path string, sp span.Span, e1, e2 span.Spanned[ast.Expr], env *xsenv.TypeEnv, opName string) *ast.Type {
	t1 := c.CheckExpr(path, e1, env)
	t2 := c.CheckExpr(path, e2, env)
	if t1 == nil || t2 == nil {
		return nil
	}
	if t1.Kind == ast.TBool && t2.Kind == ast.TBool {
		r := ast.Bool
		return &r
	}
	env.EmitAt(path, diag.NewOpMismatch(sp, opName, t1.String(), t2.String()))
	return nil
}

// TypeCmp checks actual against expected, returning zero or more
// diagnostics. isFnCall and isCaseExpr select the two context-dependent
// quirks: a bool passed where an int is expected only warns inside a
// switch case's expression, and a bare int/bool isn't promoted to float
// across a function call boundary.
func TypeCmp(expected, actual ast.Type, actualSpan span.Span, isFnCall, isCaseExpr bool) []diag.Diagnostic {
	if expected.Equal(actual) {
		return nil
	}
	switch {
	case expected.Kind == ast.TInt && actual.Kind == ast.TBool:
		if isCaseExpr {
			return []diag.Diagnostic{diag.NewWarning(diag.BoolCaseSilentCrash, actualSpan, "expression")}
		}
		return nil
	case expected.Kind == ast.TInt && actual.Kind == ast.TFloat:
		return []diag.Diagnostic{diag.NewWarning(diag.NumDownCast, actualSpan, "this value")}
	case expected.Kind == ast.TFloat && (actual.Kind == ast.TInt || actual.Kind == ast.TBool):
		if isFnCall {
			return []diag.Diagnostic{diag.NewWarning(diag.NoNumPromo, actualSpan, "this argument")}
		}
		return nil
	default:
		return []diag.Diagnostic{diag.NewTypeMismatch(actualSpan, expected.String(), actual.String())}
	}
}

// ChkRuleOpt records opt_type's first span and reports a duplicate set
// (on both the original and the new span) on every subsequent one.
func ChkRuleOpt(path, optType string, optSpan span.Span, optSpans map[string]span.Span, env *xsenv.TypeEnv) bool {
	if og, ok := optSpans[optType]; ok {
		env.EmitAt(path, diag.NewSyntax(og, "cannot set {0} twice", optType))
		env.EmitAt(path, diag.NewSyntax(optSpan, "cannot set {0} twice", optType))
		return false
	}
	optSpans[optType] = optSpan
	return true
}
