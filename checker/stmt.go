package checker

import (
	"fmt"

	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/doccomment"
	"github.com/xs-lang/xscheck/lexer"
	"github.com/xs-lang/xscheck/span"
	"github.com/xs-lang/xscheck/xsenv"
)

// stmtCtx threads the three pieces of control-flow context a statement
// needs to validate itself: whether it sits at file scope, and whether
// a break/continue reaching it would land inside a loop or switch case.
type stmtCtx struct {
	isTopLevel    bool
	isBreakable   bool
	isContinuable bool
}

// CheckStmt type-checks one statement, first advancing the file's
// comment cursor past every comment token that precedes it and
// classifying the nearest one as this statement's doc comment (or, for
// an `xsc-ignore:` directive, installing it as the environment's
// current ignore scope for just this statement).
func (c *Checker) CheckStmt(path string, s span.Spanned[ast.Stmt], env *xsenv.TypeEnv, comments []lexer.Token, commentPos *int, cx stmtCtx) {
	doc, release := c.absorbDoc(path, s.Span, env, comments, commentPos)

	if inc, ok := s.Node.(ast.IncludeStmt); ok {
		// The ignore scope attached to an include is dropped before
		// recursing into the included file, so it never leaks into
		// that file's own checking.
		if release != nil {
			release()
		}
		c.checkInclude(path, inc, s.Span, env, cx)
		return
	}
	if release != nil {
		defer release()
	}

	switch n := s.Node.(type) {
	case ast.VarDefStmt:
		c.checkVarDef(path, n, s.Span, env, cx, doc)
	case ast.VarAssignStmt:
		c.checkVarAssign(path, n, s.Span, env)
	case ast.RuleDefStmt:
		c.checkRuleDef(path, n, s.Span, env, cx, doc, comments, commentPos)
	case ast.FnDefStmt:
		c.checkFnDef(path, n, s.Span, env, cx, doc, comments, commentPos)
	case ast.ReturnStmt:
		c.checkReturn(path, n, s.Span, env)
	case ast.IfElseStmt:
		c.checkIfElse(path, n, s.Span, env, cx, comments, commentPos)
	case ast.WhileStmt:
		c.checkWhile(path, n, s.Span, env, cx, comments, commentPos)
	case ast.ForStmt:
		c.checkFor(path, n, s.Span, env, cx, doc, comments, commentPos)
	case ast.SwitchStmt:
		c.checkSwitch(path, n, s.Span, env, cx, comments, commentPos)
	case ast.PostDPlusStmt:
		c.checkPostfix(path, n.Name, s.Span, env, cx.isTopLevel, "++")
	case ast.PostDMinusStmt:
		c.checkPostfix(path, n.Name, s.Span, env, cx.isTopLevel, "--")
	case ast.BreakStmt:
		if !cx.isBreakable {
			// message substitutes "return" rather than "break" here; a
			// long-standing quirk, preserved as-is.
			env.EmitAt(path, diag.NewSyntax(s.Span, "a {0} statement is only allowed inside loops or switch cases", "return"))
		}
	case ast.ContinueStmt:
		if !cx.isContinuable {
			env.EmitAt(path, diag.NewSyntax(s.Span, "a {0} statement is only allowed inside loops", "continue"))
		}
	case ast.LabelDefStmt:
		c.checkLabelDef(path, n, s.Span, env, cx, doc)
	case ast.GotoStmt:
		c.checkGoto(path, n, s.Span, env, cx)
	case ast.DiscardedStmt:
		c.checkDiscarded(path, n, s.Span, env, cx)
	case ast.DebugStmt:
		c.checkDebug(path, n, s.Span, env, cx)
	case ast.BreakpointStmt:
		if cx.isTopLevel {
			env.EmitAt(path, diag.NewSyntax(s.Span, "a {0} statement is only allowed inside a local scope", "breakpoint"))
		}
		env.EmitAt(path, diag.NewWarning(diag.BreakPt, s.Span))
	case ast.ClassStmt:
		c.checkClass(path, n, s.Span, env, cx, doc)
	}
}

// absorbDoc advances commentPos past every comment token fully ending
// at or before sp.Start, treating the nearest one as this statement's
// doc comment. Only a Desc or FnDesc comment is returned for attachment
// to a declaration; an Ignore directive is instead installed as a
// scoped release the caller must run after this statement.
func (c *Checker) absorbDoc(path string, sp span.Span, env *xsenv.TypeEnv, comments []lexer.Token, commentPos *int) (*doccomment.Doc, func()) {
	var last *lexer.Token
	for *commentPos < len(comments) && comments[*commentPos].Span.End <= sp.Start {
		t := comments[*commentPos]
		last = &t
		*commentPos++
	}
	if last == nil {
		return nil, nil
	}
	d, diags := doccomment.Parse(last.Text, last.Span)
	for _, dg := range diags {
		env.EmitAt(path, dg)
	}
	if d.Kind == doccomment.Ignore {
		return nil, env.TempIgnore(d.IgnoreCodes)
	}
	if d.Kind == doccomment.None {
		return nil, nil
	}
	return &d, nil
}

func checkBody(c *Checker, path string, body ast.Body, env *xsenv.TypeEnv, comments []lexer.Token, commentPos *int, cx stmtCtx) {
	for i := range body {
		c.CheckStmt(path, body[i], env, comments, commentPos, cx)
	}
}

func (c *Checker) checkVarDef(path string, n ast.VarDefStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, doc *doccomment.Doc) {
	info := xsenv.IdInfo{
		Name:      n.Name.Node,
		Type:      n.Type,
		Span:      n.Name.Span,
		Doc:       doc,
		Modifiers: xsenv.Modifiers{IsExtern: n.IsExtern, IsConst: n.IsConst, IsStatic: n.IsStatic},
	}
	if existing, ok := env.Lookup(n.Name.Node); ok {
		env.EmitAt(path, diag.NewRedefinedName(n.Name.Span, n.Name.Node, existing.Span))
	} else {
		env.Declare(info)
	}

	if !cx.isTopLevel && n.IsExtern {
		env.EmitAt(path, diag.NewSyntax(n.Name.Span, "local variables cannot be declared as {0}", "extern"))
	}

	if n.Value == nil {
		if n.IsConst {
			env.EmitAt(path, diag.NewSyntax(n.Name.Span, "variable declared as {0} must be initialized with a value", "const"))
		}
		return
	}
	value := *n.Value

	if cx.isTopLevel || n.IsConst || n.IsStatic {
		genErr := false
		switch ve := value.Node.(type) {
		case ast.LiteralExpr:
			if ve.Value.Kind == ast.LitStr && cx.isTopLevel {
				env.EmitAt(path, diag.NewWarning(diag.TopStrInit, value.Span, n.Name.Node))
			}
		case ast.NegExpr, ast.VecExpr:
		case ast.IdentExpr:
			if refInfo, ok := env.Lookup(ve.Name); ok && !refInfo.Modifiers.IsConst {
				genErr = true
			}
		default:
			genErr = true
		}

		if genErr {
			env.EmitAt(path, diag.NewSyntax(value.Span, "top-level, {0}, or {1} variable initializers must be literals or consts", "const", "static"))
		} else if n.IsConst {
			env.SetInit(n.Name.Node, value.Node)
		}
	}

	if n.IsStatic {
		switch ve := value.Node.(type) {
		case ast.LiteralExpr, ast.NegExpr, ast.VecExpr:
		case ast.IdentExpr:
			if refInfo, ok := env.Lookup(ve.Name); ok && !refInfo.Modifiers.IsConst {
				env.EmitAt(path, diag.NewSyntax(value.Span, "{0} variable initializers must be literals or consts", "static"))
			}
		default:
			env.EmitAt(path, diag.NewSyntax(value.Span, "{0} variable initializers must be literals or consts", "static"))
		}
	}

	initType := c.CheckExpr(path, value, env)
	if initType == nil {
		return
	}
	for _, d := range TypeCmp(n.Type, *initType, value.Span, false, false) {
		env.EmitAt(path, d)
	}
}

func (c *Checker) checkVarAssign(path string, n ast.VarAssignStmt, sp span.Span, env *xsenv.TypeEnv) {
	if !env.InLocalScope() {
		env.EmitAt(path, diag.NewSyntax(sp, "assignments are only allowed in a local scope"))
	}
	info, ok := env.Lookup(n.Name.Node)
	if !ok {
		d := diag.NewUndefinedName(n.Name.Span, n.Name.Node)
		d = diag.WithDidYouMean(d, diag.Suggest(n.Name.Node, env.Names()))
		env.EmitAt(path, d)
		return
	}
	if info.Modifiers.IsConst {
		env.EmitAt(path, diag.NewSyntax(sp, "cannot re-assign a value to a {0} variable", "const"))
	}
	initType := c.CheckExpr(path, n.Value, env)
	if initType == nil {
		return
	}
	for _, d := range TypeCmp(info.Type, *initType, n.Value.Span, false, false) {
		env.EmitAt(path, d)
	}
}

func ruleOptKeyFor(opt ast.RuleOpt) (string, bool) {
	switch opt.Kind {
	case ast.RuleActive, ast.RuleInactive:
		return "activity", true
	case ast.RuleRunImmediately:
		return "run immediately", true
	case ast.RulePriority:
		return "priority", true
	case ast.RuleGroup:
		return "group", true
	}
	return "", false
}

func (c *Checker) checkRuleDef(path string, n ast.RuleDefStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, doc *doccomment.Doc, comments []lexer.Token, commentPos *int) {
	if !cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(n.Name.Span, "a rule definition is only allowed at the top level"))
	}

	optSpans := make(map[string]span.Span, len(n.RuleOpts))
	opts := make([]ast.RuleOpt, 0, len(n.RuleOpts))
	for _, opt := range n.RuleOpts {
		opts = append(opts, opt.Node)
		switch opt.Node.Kind {
		case ast.RuleHighFrequency:
			ChkRuleOpt(path, "min interval", opt.Span, optSpans, env)
			ChkRuleOpt(path, "max interval", opt.Span, optSpans, env)
		case ast.RuleMinInterval:
			ChkRuleOpt(path, "min interval", opt.Span, optSpans, env)
		case ast.RuleMaxInterval:
			ChkRuleOpt(path, "max interval", opt.Span, optSpans, env)
		default:
			key, ok := ruleOptKeyFor(opt.Node)
			if !ok {
				continue
			}
			if key == "group" {
				if ChkRuleOpt(path, key, opt.Span, optSpans, env) {
					env.Groups[opt.Node.GroupVal.Node] = true
				}
				continue
			}
			ChkRuleOpt(path, key, opt.Span, optSpans, env)
		}
	}

	if existing, ok := env.Lookup(n.Name.Node); ok {
		env.EmitAt(path, diag.NewRedefinedName(n.Name.Span, n.Name.Node, existing.Span))
	} else {
		env.DeclareGlobal(xsenv.IdInfo{Name: n.Name.Node, Type: ast.Rule, Span: n.Name.Span, Doc: doc, IsRule: true, RuleOpts: opts})
	}

	retType := ast.Void
	release := env.WithFnEnv(&retType)
	env.PushScope()
	checkBody(c, path, n.Body.Node, env, comments, commentPos, stmtCtx{isTopLevel: false, isBreakable: cx.isBreakable, isContinuable: cx.isContinuable})
	env.PopScope()
	release()
}

func (c *Checker) checkFnDef(path string, n ast.FnDefStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, doc *doccomment.Doc, comments []lexer.Token, commentPos *int) {
	if !cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(n.Name.Span, "a function definition is only allowed at the top level"))
	}

	retType := n.ReturnType
	release := env.WithFnEnv(&retType)
	env.PushScope()

	if len(n.Params) > 12 {
		env.EmitAt(path, diag.NewSyntax(n.Name.Span, "XS functions cannot have more than 12 parameters"))
	}

	for _, param := range n.Params {
		if existing, ok := env.Lookup(param.Name.Node); ok {
			env.EmitAt(path, diag.NewRedefinedName(param.Name.Span, param.Name.Node, existing.Span))
		}
		env.DeclareLocalForce(xsenv.IdInfo{Name: param.Name.Node, Type: param.Type, Span: param.Name.Span})

		genErr := false
		switch pv := param.Default.Node.(type) {
		case ast.LiteralExpr, ast.NegExpr, ast.VecExpr:
		case ast.IdentExpr:
			if refInfo, ok := env.Lookup(pv.Name); ok && !refInfo.Modifiers.IsConst {
				genErr = true
			}
		default:
			genErr = true
		}
		if genErr {
			env.EmitAt(path, diag.NewSyntax(param.Default.Span, "parameter defaults must be literals or consts"))
		}

		defaultType := c.CheckExpr(path, param.Default, env)
		if defaultType == nil {
			continue
		}
		for _, d := range TypeCmp(param.Type, *defaultType, param.Default.Span, false, false) {
			env.EmitAt(path, d)
		}
	}

	newSignature := make([]ast.FnParam, 0, len(n.Params)+1)
	for _, param := range n.Params {
		newSignature = append(newSignature, ast.FnParam{Name: param.Name.Node, Type: param.Type})
	}
	newSignature = append(newSignature, ast.FnParam{Name: "return", Type: n.ReturnType})
	newType := ast.Type{Kind: ast.TFn, IsMutable: n.IsMutable, Signature: newSignature}

	switch existing, ok := env.Lookup(n.Name.Node); {
	case ok && existing.Type.Kind == ast.TFn:
		switch {
		case !existing.Type.IsMutable:
			env.EmitAt(path, diag.NewRedefinedNameWithNote(n.Name.Span, n.Name.Node, existing.Span, "only mutable functions may be overridden"))
		case !existing.Type.Equal(newType):
			env.EmitAt(path, diag.NewRedefinedNameWithNote(n.Name.Span, n.Name.Node, existing.Span, "type signatures of mutable functions must be the same"))
		default:
			env.Redefine(xsenv.IdInfo{Name: n.Name.Node, Type: newType, Span: n.Name.Span, Doc: doc})
		}
	case ok:
		env.EmitAt(path, diag.NewRedefinedName(n.Name.Span, n.Name.Node, existing.Span))
	default:
		env.DeclareGlobal(xsenv.IdInfo{Name: n.Name.Node, Type: newType, Span: n.Name.Span, Doc: doc})
	}

	checkBody(c, path, n.Body.Node, env, comments, commentPos, stmtCtx{isTopLevel: false, isBreakable: cx.isBreakable, isContinuable: cx.isContinuable})
	env.PopScope()
	release()
}

func (c *Checker) checkReturn(path string, n ast.ReturnStmt, sp span.Span, env *xsenv.TypeEnv) {
	retType := env.CurrentFnEnv()
	if retType == nil {
		env.EmitAt(path, diag.NewSyntax(sp, "a {0} statement is only allowed inside functions or rules", "return"))
		return
	}
	if n.Value == nil {
		if retType.Kind != ast.TVoid {
			d := diag.NewTypeMismatch(sp, retType.String(), "void")
			d.Help = fmt.Sprintf("this function's return type was declared as '%s'", retType.String())
			env.EmitAt(path, d)
		}
		return
	}
	if retType.Kind == ast.TVoid {
		env.EmitAt(path, diag.NewSyntax(sp, "this function's return type was declared as {0}", "void"))
		return
	}
	if _, ok := n.Value.Node.(ast.ParenExpr); !ok {
		env.EmitAt(path, diag.NewSyntax(n.Value.Span, "a {0} statement's expression must be enclosed in parentheses", "return"))
	}
	returnType := c.CheckExpr(path, *n.Value, env)
	if returnType == nil {
		return
	}
	for _, d := range TypeCmp(*retType, *returnType, n.Value.Span, false, false) {
		env.EmitAt(path, d)
	}
}

// checkBoolCond type-checks a condition that must be an exact bool
// (if/while/for), a plain mismatch rather than the more permissive
// TypeCmp table used for switch clauses.
func (c *Checker) checkBoolCond(path string, e span.Spanned[ast.Expr], env *xsenv.TypeEnv) {
	t := c.CheckExpr(path, e, env)
	if t != nil && t.Kind != ast.TBool {
		env.EmitAt(path, diag.NewTypeMismatch(e.Span, "bool", t.String()))
	}
}

func (c *Checker) checkIfElse(path string, n ast.IfElseStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, comments []lexer.Token, commentPos *int) {
	if cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "an {0} statement is only allowed in a local scope", "if"))
	}
	c.checkBoolCond(path, n.Cond, env)

	inner := stmtCtx{isTopLevel: false, isBreakable: cx.isBreakable, isContinuable: cx.isContinuable}
	checkBody(c, path, n.Consequent.Node, env, comments, commentPos, inner)
	if n.Alternate != nil {
		checkBody(c, path, n.Alternate.Node, env, comments, commentPos, inner)
	}
}

func (c *Checker) checkWhile(path string, n ast.WhileStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, comments []lexer.Token, commentPos *int) {
	if cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a {0} statement is only allowed in a local scope", "while"))
	}
	c.checkBoolCond(path, n.Cond, env)
	checkBody(c, path, n.Body.Node, env, comments, commentPos, stmtCtx{isTopLevel: false, isBreakable: true, isContinuable: true})
}

func (c *Checker) checkFor(path string, n ast.ForStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, doc *doccomment.Doc, comments []lexer.Token, commentPos *int) {
	if cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a {0} statement is only allowed in a local scope", "for"))
	}

	va, ok := n.Var.Node.(ast.VarAssignStmt)
	if !ok {
		return
	}

	// Redefinitions are deliberately allowed for for-loop variables.
	if valueType := c.CheckExpr(path, va.Value, env); valueType != nil {
		for _, d := range TypeCmp(ast.Int, *valueType, va.Value.Span, false, false) {
			env.EmitAt(path, d)
		}
	}
	env.SetLocal(xsenv.IdInfo{Name: va.Name.Node, Type: ast.Int, Span: va.Name.Span, Doc: doc})

	c.checkBoolCond(path, n.Cond, env)
	checkBody(c, path, n.Body.Node, env, comments, commentPos, stmtCtx{isTopLevel: false, isBreakable: true, isContinuable: true})
}

func caseExprText(e ast.Expr) string {
	if s, ok := ast.ExprText(e); ok {
		return s
	}
	return "this case"
}

func (c *Checker) checkSwitch(path string, n ast.SwitchStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, comments []lexer.Token, commentPos *int) {
	if cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a {0} statement is only allowed in a local scope", "switch"))
	}
	if clauseType := c.CheckExpr(path, n.Clause, env); clauseType != nil {
		for _, d := range TypeCmp(ast.Int, *clauseType, n.Clause.Span, false, false) {
			env.EmitAt(path, d)
		}
	}

	var defaultSpan *span.Span
	caseSpans := make(map[string]span.Span, len(n.Cases))
	inner := stmtCtx{isTopLevel: false, isBreakable: true, isContinuable: cx.isContinuable}

	for _, cs := range n.Cases {
		checkBody(c, path, cs.Body.Node, env, comments, commentPos, inner)

		if cs.Expr == nil {
			if defaultSpan == nil {
				s := cs.Body.Span
				defaultSpan = &s
				continue
			}
			env.EmitAt(path, diag.NewWarning(diag.DupCase, *defaultSpan, "default"))
			env.EmitAt(path, diag.NewWarning(diag.DupCase, cs.Body.Span, "default"))
			continue
		}

		caseExpr := *cs.Expr
		if caseType := c.CheckExpr(path, caseExpr, env); caseType != nil {
			for _, d := range TypeCmp(ast.Int, *caseType, caseExpr.Span, false, true) {
				env.EmitAt(path, d)
			}
		}
		key := caseExpr.Node.Key()
		if og, ok := caseSpans[key]; ok {
			text := caseExprText(caseExpr.Node)
			env.EmitAt(path, diag.NewWarning(diag.DupCase, og, text))
			env.EmitAt(path, diag.NewWarning(diag.DupCase, caseExpr.Span, text))
		} else {
			caseSpans[key] = caseExpr.Span
		}
	}
}

func (c *Checker) checkPostfix(path string, id span.Spanned[string], sp span.Span, env *xsenv.TypeEnv, isTopLevel bool, op string) {
	label := "increment"
	if op == "--" {
		label = "decrement"
	}
	if isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a postfix "+label+" ({0}) statement is only allowed in a local scope", op))
	}
	info, ok := env.Lookup(id.Node)
	if !ok {
		env.EmitAt(path, diag.NewUndefinedName(id.Span, id.Node))
		return
	}
	if isNumKind(info.Type.Kind) {
		return
	}
	env.EmitAt(path, diag.NewSyntax(sp, "a postfix "+label+" ({0}) statement is only allowed on {1} values", op, "int | float"))
}

func (c *Checker) checkLabelDef(path string, n ast.LabelDefStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, doc *doccomment.Doc) {
	if cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a {0} definition is only allowed inside a local scope", "label"))
	}
	if existing, ok := env.Lookup(n.Name.Node); ok {
		env.EmitAt(path, diag.NewRedefinedName(n.Name.Span, n.Name.Node, existing.Span))
		return
	}
	env.Declare(xsenv.IdInfo{Name: n.Name.Node, Type: ast.Label, Span: n.Name.Span, Doc: doc})
}

func (c *Checker) checkGoto(path string, n ast.GotoStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx) {
	if cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a {0} statement is only allowed inside functions or rules", "goto"))
	}
	info, ok := env.Lookup(n.Name.Node)
	if !ok {
		env.EmitAt(path, diag.NewUndefinedName(n.Name.Span, n.Name.Node))
		return
	}
	for _, d := range TypeCmp(ast.Label, info.Type, n.Name.Span, false, false) {
		env.EmitAt(path, d)
	}
}

func (c *Checker) checkDiscarded(path string, n ast.DiscardedStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx) {
	if cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a discarded expression is only allowed in a local scope"))
	}
	call, ok := n.Expr.Node.(ast.FnCallExpr)
	if !ok {
		env.EmitAt(path, diag.NewSyntax(n.Expr.Span, "only function calls can be discarded"))
		return
	}
	retType := c.CheckExpr(path, n.Expr, env)
	if retType == nil || retType.Kind == ast.TVoid {
		return
	}
	env.EmitAt(path, diag.NewWarning(diag.DiscardedFn, n.Expr.Span, call.Name.Node))
}

func (c *Checker) checkDebug(path string, n ast.DebugStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx) {
	if cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a {0} statement is only allowed inside functions or rules", "dbg"))
	}
	info, ok := env.Lookup(n.Name.Node)
	if !ok {
		env.EmitAt(path, diag.NewUndefinedName(n.Name.Span, n.Name.Node))
		return
	}
	switch info.Type.Kind {
	case ast.TFn, ast.TRule, ast.TClass, ast.TLabel:
		env.EmitAt(path, diag.NewSyntax(n.Name.Span, "a {0} statement can only be given {1} values", "dbg", "int | float | bool | string | vector"))
	}
}

func (c *Checker) checkClass(path string, n ast.ClassStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx, doc *doccomment.Doc) {
	if !cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "a {0} definition is only allowed at the top level", "class"))
	}
	if existing, ok := env.Lookup(n.Name.Node); ok {
		env.EmitAt(path, diag.NewRedefinedName(n.Name.Span, n.Name.Node, existing.Span))
	} else {
		env.Declare(xsenv.IdInfo{Name: n.Name.Node, Type: ast.Class, Span: n.Name.Span, Doc: doc})
	}

	memberSpans := make(map[string]span.Span, len(n.MemberVars))
	for _, mv := range n.MemberVars {
		member, ok := mv.Node.(ast.VarDefStmt)
		if !ok {
			continue
		}
		if member.IsExtern {
			env.EmitAt(path, diag.NewSyntax(member.Name.Span, "member variables cannot be declared as {0}", "extern"))
		}
		if member.IsConst {
			env.EmitAt(path, diag.NewSyntax(member.Name.Span, "member variables cannot be declared as {0}", "const"))
		}
		if member.IsStatic {
			env.EmitAt(path, diag.NewSyntax(member.Name.Span, "member variables cannot be declared as {0}", "static"))
		}

		if og, ok := memberSpans[member.Name.Node]; ok {
			env.EmitAt(path, diag.NewRedefinedName(member.Name.Span, member.Name.Node, og))
		} else {
			memberSpans[member.Name.Node] = member.Name.Span
		}

		if member.Value == nil {
			continue
		}
		initType := c.CheckExpr(path, *member.Value, env)
		if initType == nil {
			continue
		}
		for _, d := range TypeCmp(member.Type, *initType, member.Value.Span, false, false) {
			env.EmitAt(path, d)
		}
	}

	env.EmitAt(path, diag.NewWarning(diag.UnusableClasses, sp))
}
