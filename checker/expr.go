// Package checker implements XS's static type checker: expression and
// statement walkers, plus the include-graph, cycle-detecting
// orchestration in check.go.
package checker

import (
	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/span"
	"github.com/xs-lang/xscheck/xsenv"
)

// CheckExpr type-checks e, returning its type or nil once a diagnostic
// has already been raised for it (so callers never need to re-report).
func (c *Checker) CheckExpr(path string, e span.Spanned[ast.Expr], env *xsenv.TypeEnv) *ast.Type {
	switch v := e.Node.(type) {
	case ast.LiteralExpr:
		return c.checkLiteral(path, v, e.Span, env)

	case ast.IdentExpr:
		info, ok := env.Lookup(v.Name)
		if !ok {
			d := diag.NewUndefinedName(e.Span, v.Name)
			d = diag.WithDidYouMean(d, diag.Suggest(v.Name, env.Names()))
			env.EmitAt(path, d)
			return nil
		}
		t := info.Type
		return &t

	case ast.ParenExpr:
		return c.CheckExpr(path, v.Inner, env)

	case ast.VecExpr:
		for _, comp := range [...]span.Spanned[ast.Expr]{v.X, v.Y, v.Z} {
			for _, d := range c.checkNumLit(path, comp, env, false, true) {
				env.EmitAt(path, d)
			}
		}
		t := ast.Vec
		return &t

	case ast.FnCallExpr:
		return c.checkFnCall(path, v, e.Span, env)

	case ast.NegExpr:
		for _, d := range c.checkNumLit(path, v.Inner, env, true, false) {
			env.EmitAt(path, d)
		}
		if v.Inner.Span.Start-e.Span.Start > 1 {
			env.EmitAt(path, diag.NewSyntax(e.Span, "spaces are not allowed between unary negative ({0}) and {1} literals", "-", "int | float"))
		}
		return c.CheckExpr(path, v.Inner, env)

	case ast.NotExpr:
		env.EmitAt(path, diag.NewSyntax(e.Span, "unary not ({0}) is not allowed in XS", "!"))
		t := ast.Bool
		return &t

	case ast.BinExpr:
		return c.checkBinExpr(path, v, e.Span, env)
	}
	return nil
}

func (c *Checker) checkLiteral(path string, v ast.LiteralExpr, sp span.Span, env *xsenv.TypeEnv) *ast.Type {
	switch v.Value.Kind {
	case ast.LitInt:
		for _, d := range CheckIntLit(v.Value.IntVal, sp) {
			env.EmitAt(path, d)
		}
		t := ast.Int
		return &t
	case ast.LitFloat:
		t := ast.Float
		return &t
	case ast.LitBool:
		t := ast.Bool
		return &t
	case ast.LitStr:
		t := ast.Str
		return &t
	}
	return nil
}

func (c *Checker) checkBinExpr(path string, b ast.BinExpr, sp span.Span, env *xsenv.TypeEnv) *ast.Type {
	switch b.Op {
	case ast.OpStar:
		return c.ArithOp(path, sp, b.Left, b.Right, env, "multiply")
	case ast.OpFSlash:
		return c.ArithOp(path, sp, b.Left, b.Right, env, "divide")
	case ast.OpPCent:
		return c.ArithOp(path, sp, b.Left, b.Right, env, "reduce modulo")
	case ast.OpPlus:
		return c.ArithOp(path, sp, b.Left, b.Right, env, "add")
	case ast.OpMinus:
		return c.ArithOp(path, sp, b.Left, b.Right, env, "subtract")
	case ast.OpLt:
		return c.RelnOp(path, sp, b.Left, b.Right, env, "lt")
	case ast.OpGt:
		return c.RelnOp(path, sp, b.Left, b.Right, env, "gt")
	case ast.OpLe:
		return c.RelnOp(path, sp, b.Left, b.Right, env, "le")
	case ast.OpGe:
		return c.RelnOp(path, sp, b.Left, b.Right, env, "ge")
	case ast.OpEq:
		return c.RelnOp(path, sp, b.Left, b.Right, env, "eq")
	case ast.OpNe:
		return c.RelnOp(path, sp, b.Left, b.Right, env, "ne")
	case ast.OpAnd:
		return c.LogicalOp(path, sp, b.Left, b.Right, env, "and")
	case ast.OpOr:
		return c.LogicalOp(path, sp, b.Left, b.Right, env, "or")
	}
	return nil
}

// checkFnCall resolves a call's callee, type-checks each argument
// against the matching parameter, and flags any argument beyond the
// declared arity. Arguments are still walked (for their own undefined-
// name/etc diagnostics) even when the callee itself is missing or not
// callable.
func (c *Checker) checkFnCall(path string, call ast.FnCallExpr, sp span.Span, env *xsenv.TypeEnv) *ast.Type {
	info, ok := env.Lookup(call.Name.Node)
	if !ok {
		d := diag.NewUndefinedName(call.Name.Span, call.Name.Node)
		d = diag.WithDidYouMean(d, diag.Suggest(call.Name.Node, env.Names()))
		env.EmitAt(path, d)
		for _, arg := range call.Args {
			c.CheckExpr(path, arg, env)
		}
		return nil
	}
	if info.Type.Kind != ast.TFn {
		env.EmitAt(path, diag.NewNotCallable(call.Name.Span, info.Type.String()))
		for _, arg := range call.Args {
			c.CheckExpr(path, arg, env)
		}
		return nil
	}

	params := info.Type.Params()
	n := len(params)
	if len(call.Args) < n {
		n = len(call.Args)
	}
	for i := 0; i < n; i++ {
		argType := c.CheckExpr(path, call.Args[i], env)
		if argType == nil {
			continue
		}
		for _, d := range TypeCmp(params[i].Type, *argType, call.Args[i].Span, true, false) {
			env.EmitAt(path, d)
		}
	}
	if len(call.Args) > len(params) {
		for _, extra := range call.Args[len(params):] {
			env.EmitAt(path, diag.NewExtraArg(extra.Span, call.Name.Node))
		}
	}

	ret := info.Type.ReturnType()
	return &ret
}
