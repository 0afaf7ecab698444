// Package parser turns a lexer token stream into a spanned ast.Body plus
// a separately collected list of comment tokens, in lexical order.
package parser

import (
	"fmt"
	"strconv"

	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/lexer"
	"github.com/xs-lang/xscheck/span"
)

// Error is a parse-time failure: an unexpected token, or a grammar
// production that could not complete. Line/column presentation is
// derived later from Span by the diag package, not stored here.
type Error struct {
	Span span.Span
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Parser walks a filtered (comment-free) token stream with up to two
// tokens of lookahead, dispatching each top-level or nested statement via a fixed,
// ordered set of alternatives.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse partitions tokens into syntactic tokens and comments, then
// parses the syntactic stream into a Body. On the first parse error,
// parsing stops and that error is returned; no partial-file recovery is
// attempted.
func Parse(tokens []lexer.Token) (ast.Body, []lexer.Token, error) {
	var syn []lexer.Token
	var comments []lexer.Token
	for _, t := range tokens {
		if t.IsComment() {
			comments = append(comments, t)
		} else {
			syn = append(syn, t)
		}
	}
	p := &Parser{toks: syn}

	var body ast.Body
	for !p.atEnd() {
		stmt, err := p.statement()
		if err != nil {
			return body, comments, err
		}
		body = append(body, stmt)
	}
	return body, comments, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekType(offset int) lexer.TokenType {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return lexer.EOF
	}
	return p.toks[idx].Type
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.cur().Type == lexer.EOF
}

// prevEnd is the end offset of the most recently consumed token, used to
// close off a statement's span once its trailing token is consumed.
func (p *Parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.cur().Type != tt {
		return lexer.Token{}, &Error{
			Span: p.cur().Span,
			Msg:  fmt.Sprintf("expected %s, got %s", tt, p.cur().Symbol()),
		}
	}
	return p.advance(), nil
}

func isPrimitiveType(tt lexer.TokenType) bool {
	switch tt {
	case lexer.Int, lexer.Bool, lexer.Float, lexer.String, lexer.Vector:
		return true
	}
	return false
}

// looksLikeFnDef disambiguates a leading primitive-type token between
// var-def and fn-def by peeking past the identifier: a following '(' means
// a parameter list (fn-def), anything else is a var-def's initializer or
// terminator.
func (p *Parser) looksLikeFnDef() bool {
	return p.peekType(1) == lexer.Identifier && p.peekType(2) == lexer.LParen
}

// statement dispatches to one of the fixed, ordered statement
// alternatives. Context legality (e.g. that `include` only belongs at
// top level) is not enforced here — the grammar accepts any statement
// form anywhere; the checker enforces context as a semantic Syntax
// diagnostic.
func (p *Parser) statement() (span.Spanned[ast.Stmt], error) {
	switch p.cur().Type {
	case lexer.Include:
		return p.parseInclude()
	case lexer.If:
		return p.parseIfElse()
	case lexer.While:
		return p.parseWhile()
	case lexer.For:
		return p.parseFor()
	case lexer.Switch:
		return p.parseSwitch()
	case lexer.Break, lexer.Continue, lexer.Breakpoint:
		return p.parseBreakContinueBreakpoint()
	case lexer.Return:
		return p.parseReturn()
	case lexer.Rule:
		return p.parseRuleDef()
	case lexer.Label, lexer.Goto, lexer.Dbg:
		return p.parseLabelGotoDbg()
	case lexer.Class:
		return p.parseClassDef()
	case lexer.Extern, lexer.Const, lexer.Static:
		return p.parseVarDef()
	case lexer.Mutable, lexer.Void:
		return p.parseFnDef()
	case lexer.Int, lexer.Bool, lexer.Float, lexer.String, lexer.Vector:
		if p.looksLikeFnDef() {
			return p.parseFnDef()
		}
		return p.parseVarDef()
	case lexer.Identifier:
		switch p.peekType(1) {
		case lexer.Eq:
			return p.parseVarAssign()
		case lexer.DPlus, lexer.DMinus:
			return p.parsePostfix()
		default:
			return p.parseDiscardedExpr()
		}
	default:
		return p.parseDiscardedExpr()
	}
}

func (p *Parser) body() (span.Spanned[ast.Body], error) {
	if p.cur().Type == lexer.LBrace {
		startTok := p.advance()
		var stmts ast.Body
		for p.cur().Type != lexer.RBrace {
			if p.atEnd() {
				return span.Spanned[ast.Body]{}, &Error{Span: p.cur().Span, Msg: "unterminated block, expected }"}
			}
			stmt, err := p.statement()
			if err != nil {
				return span.Spanned[ast.Body]{}, err
			}
			stmts = append(stmts, stmt)
		}
		endTok := p.advance()
		return span.With[ast.Body](stmts, span.Span{Start: startTok.Span.Start, End: endTok.Span.End}), nil
	}
	stmt, err := p.statement()
	if err != nil {
		return span.Spanned[ast.Body]{}, err
	}
	return span.With[ast.Body](ast.Body{stmt}, stmt.Span), nil
}

func (p *Parser) parseInclude() (span.Spanned[ast.Stmt], error) {
	startTok := p.advance() // include
	strTok, err := p.expect(lexer.StrLit)
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: startTok.Span.Start, End: p.prevEnd()}
	node := ast.IncludeStmt{Path: span.With(strTok.Text, strTok.Span)}
	return span.With[ast.Stmt](node, sp), nil
}

func (p *Parser) parseVarDef() (span.Spanned[ast.Stmt], error) {
	start := p.cur().Span.Start
	var isExtern, isConst, isStatic bool
loop:
	for {
		switch p.cur().Type {
		case lexer.Extern:
			isExtern = true
			p.advance()
		case lexer.Const:
			isConst = true
			p.advance()
		case lexer.Static:
			isStatic = true
			p.advance()
		default:
			break loop
		}
	}
	typeTok := p.cur()
	if !isPrimitiveType(typeTok.Type) {
		return span.Spanned[ast.Stmt]{}, &Error{Span: typeTok.Span, Msg: fmt.Sprintf("expected a type, got %s", typeTok.Symbol())}
	}
	p.advance()
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var value *span.Spanned[ast.Expr]
	if p.cur().Type == lexer.Eq {
		p.advance()
		v, err := p.expression()
		if err != nil {
			return span.Spanned[ast.Stmt]{}, err
		}
		value = &v
	}
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: start, End: p.prevEnd()}
	node := ast.VarDefStmt{
		IsExtern: isExtern, IsConst: isConst, IsStatic: isStatic,
		Type: ast.FromToken(typeTok.Type), Name: span.With(nameTok.Text, nameTok.Span), Value: value,
	}
	return span.With[ast.Stmt](node, sp), nil
}

func (p *Parser) parseVarAssign() (span.Spanned[ast.Stmt], error) {
	nameTok := p.advance() // identifier
	if _, err := p.expect(lexer.Eq); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	value, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: nameTok.Span.Start, End: p.prevEnd()}
	node := ast.VarAssignStmt{Name: span.With(nameTok.Text, nameTok.Span), Value: value}
	return span.With[ast.Stmt](node, sp), nil
}

func (p *Parser) parseIfElse() (span.Spanned[ast.Stmt], error) {
	startTok := p.advance() // if
	if _, err := p.expect(lexer.LParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	cond, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	consequent, err := p.body()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var alternate *span.Spanned[ast.Body]
	if p.cur().Type == lexer.Else {
		p.advance()
		alt, err := p.body()
		if err != nil {
			return span.Spanned[ast.Stmt]{}, err
		}
		alternate = &alt
	}
	sp := span.Span{Start: startTok.Span.Start, End: p.prevEnd()}
	node := ast.IfElseStmt{Cond: cond, Consequent: consequent, Alternate: alternate}
	return span.With[ast.Stmt](node, sp), nil
}

func (p *Parser) parseWhile() (span.Spanned[ast.Stmt], error) {
	startTok := p.advance() // while
	if _, err := p.expect(lexer.LParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	cond, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	body, err := p.body()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: startTok.Span.Start, End: p.prevEnd()}
	node := ast.WhileStmt{Cond: cond, Body: body}
	return span.With[ast.Stmt](node, sp), nil
}

// parseFor implements the XS-specific shape `for (name = init; OP rhs)
// body`, synthesizing the normalized condition `name OP rhs` from the
// assignment's own identifier. The fallback identifier name
// "ForUnreachable" at span (0,0) guards an invariant that can never
// actually fire, since parseVarAssign always yields a VarAssignStmt; it
// is kept as an internal-error marker rather than dropped, in case that
// invariant is ever violated by a future change.
func (p *Parser) parseFor() (span.Spanned[ast.Stmt], error) {
	startTok := p.advance() // for
	if _, err := p.expect(lexer.LParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if p.cur().Type != lexer.Identifier {
		return span.Spanned[ast.Stmt]{}, &Error{Span: p.cur().Span, Msg: "expected an identifier in for-loop initializer"}
	}
	varStmt, err := p.parseVarAssign()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	opTok := p.cur()
	var op ast.BinOp
	switch opTok.Type {
	case lexer.Le:
		op = ast.OpLe
	case lexer.Lt:
		op = ast.OpLt
	case lexer.Ge:
		op = ast.OpGe
	case lexer.Gt:
		op = ast.OpGt
	default:
		return span.Spanned[ast.Stmt]{}, &Error{Span: opTok.Span, Msg: "expected one of <, <=, >, >= in for-loop condition"}
	}
	p.advance()
	rhs, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	bodyNode, err := p.body()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}

	name, nameSpan := "ForUnreachable", span.Zero
	if va, ok := varStmt.Node.(ast.VarAssignStmt); ok {
		name, nameSpan = va.Name.Node, va.Name.Span
	}
	lhs := span.With[ast.Expr](ast.IdentExpr{Name: name}, nameSpan)
	cond := span.With[ast.Expr](ast.BinExpr{Op: op, Left: lhs, Right: rhs}, span.Span{Start: nameSpan.Start, End: rhs.Span.End})

	sp := span.Span{Start: startTok.Span.Start, End: p.prevEnd()}
	node := ast.ForStmt{Var: varStmt, Cond: cond, Body: bodyNode}
	return span.With[ast.Stmt](node, sp), nil
}

func (p *Parser) parseSwitch() (span.Spanned[ast.Stmt], error) {
	startTok := p.advance() // switch
	if _, err := p.expect(lexer.LParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	clause, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var cases []ast.SwitchCase
	for p.cur().Type != lexer.RBrace {
		if p.atEnd() {
			return span.Spanned[ast.Stmt]{}, &Error{Span: p.cur().Span, Msg: "unterminated switch body, expected }"}
		}
		switch p.cur().Type {
		case lexer.Case:
			p.advance()
			e, err := p.expression()
			if err != nil {
				return span.Spanned[ast.Stmt]{}, err
			}
			if _, err := p.expect(lexer.Colon); err != nil {
				return span.Spanned[ast.Stmt]{}, err
			}
			b, err := p.body()
			if err != nil {
				return span.Spanned[ast.Stmt]{}, err
			}
			cases = append(cases, ast.SwitchCase{Expr: &e, Body: b})
		case lexer.Default:
			p.advance()
			if _, err := p.expect(lexer.Colon); err != nil {
				return span.Spanned[ast.Stmt]{}, err
			}
			b, err := p.body()
			if err != nil {
				return span.Spanned[ast.Stmt]{}, err
			}
			cases = append(cases, ast.SwitchCase{Expr: nil, Body: b})
		default:
			return span.Spanned[ast.Stmt]{}, &Error{Span: p.cur().Span, Msg: fmt.Sprintf("expected case or default, got %s", p.cur().Symbol())}
		}
	}
	p.advance() // }
	sp := span.Span{Start: startTok.Span.Start, End: p.prevEnd()}
	node := ast.SwitchStmt{Clause: clause, Cases: cases}
	return span.With[ast.Stmt](node, sp), nil
}

func (p *Parser) parseBreakContinueBreakpoint() (span.Spanned[ast.Stmt], error) {
	tok := p.advance()
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var node ast.Stmt
	switch tok.Type {
	case lexer.Break:
		node = ast.BreakStmt{}
	case lexer.Continue:
		node = ast.ContinueStmt{}
	default:
		node = ast.BreakpointStmt{}
	}
	return span.With(node, span.Span{Start: tok.Span.Start, End: p.prevEnd()}), nil
}

func (p *Parser) parseReturn() (span.Spanned[ast.Stmt], error) {
	tok := p.advance() // return
	var value *span.Spanned[ast.Expr]
	if p.cur().Type != lexer.SColon {
		v, err := p.expression()
		if err != nil {
			return span.Spanned[ast.Stmt]{}, err
		}
		value = &v
	}
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: tok.Span.Start, End: p.prevEnd()}
	return span.With[ast.Stmt](ast.ReturnStmt{Value: value}, sp), nil
}

func (p *Parser) parseRuleDef() (span.Spanned[ast.Stmt], error) {
	startTok := p.advance() // rule
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var opts []span.Spanned[ast.RuleOpt]
	for {
		opt, sp, ok, err := p.tryRuleOpt()
		if err != nil {
			return span.Spanned[ast.Stmt]{}, err
		}
		if !ok {
			break
		}
		opts = append(opts, span.With(opt, sp))
	}
	bodyNode, err := p.body()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: startTok.Span.Start, End: p.prevEnd()}
	node := ast.RuleDefStmt{Name: span.With(nameTok.Text, nameTok.Span), RuleOpts: opts, Body: bodyNode}
	return span.With[ast.Stmt](node, sp), nil
}

func (p *Parser) tryRuleOpt() (ast.RuleOpt, span.Span, bool, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.Active, lexer.Inactive, lexer.RunImmediately, lexer.HighFrequency:
		p.advance()
		var kind ast.RuleOptKind
		switch tok.Type {
		case lexer.Active:
			kind = ast.RuleActive
		case lexer.RunImmediately:
			kind = ast.RuleRunImmediately
		case lexer.HighFrequency:
			kind = ast.RuleHighFrequency
		default:
			kind = ast.RuleInactive
		}
		return ast.RuleOpt{Kind: kind}, tok.Span, true, nil

	case lexer.MinInterval, lexer.MaxInterval, lexer.Priority:
		p.advance()
		valTok, err := p.expect(lexer.IntLit)
		if err != nil {
			return ast.RuleOpt{}, span.Span{}, true, err
		}
		v, _ := strconv.ParseInt(valTok.Text, 10, 64)
		var kind ast.RuleOptKind
		switch tok.Type {
		case lexer.MinInterval:
			kind = ast.RuleMinInterval
		case lexer.MaxInterval:
			kind = ast.RuleMaxInterval
		default:
			kind = ast.RulePriority
		}
		sp := span.Span{Start: tok.Span.Start, End: valTok.Span.End}
		return ast.RuleOpt{Kind: kind, IntVal: span.With(v, valTok.Span)}, sp, true, nil

	case lexer.Group:
		p.advance()
		if p.cur().Type != lexer.StrLit && p.cur().Type != lexer.Identifier {
			return ast.RuleOpt{}, span.Span{}, true, &Error{Span: p.cur().Span, Msg: "expected a string or identifier after group"}
		}
		valTok := p.advance()
		sp := span.Span{Start: tok.Span.Start, End: valTok.Span.End}
		return ast.RuleOpt{Kind: ast.RuleGroup, GroupVal: span.With(valTok.Text, valTok.Span)}, sp, true, nil
	}
	return ast.RuleOpt{}, span.Span{}, false, nil
}

func (p *Parser) parsePostfix() (span.Spanned[ast.Stmt], error) {
	nameTok := p.advance() // identifier
	opTok := p.advance()   // ++ or --
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var node ast.Stmt
	if opTok.Type == lexer.DMinus {
		node = ast.PostDMinusStmt{Name: span.With(nameTok.Text, nameTok.Span)}
	} else {
		node = ast.PostDPlusStmt{Name: span.With(nameTok.Text, nameTok.Span)}
	}
	sp := span.Span{Start: nameTok.Span.Start, End: p.prevEnd()}
	return span.With(node, sp), nil
}

func (p *Parser) parseLabelGotoDbg() (span.Spanned[ast.Stmt], error) {
	tok := p.advance()
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var node ast.Stmt
	switch tok.Type {
	case lexer.Label:
		node = ast.LabelDefStmt{Name: span.With(nameTok.Text, nameTok.Span)}
	case lexer.Goto:
		node = ast.GotoStmt{Name: span.With(nameTok.Text, nameTok.Span)}
	default:
		node = ast.DebugStmt{Name: span.With(nameTok.Text, nameTok.Span)}
	}
	sp := span.Span{Start: tok.Span.Start, End: p.prevEnd()}
	return span.With(node, sp), nil
}

func (p *Parser) parseDiscardedExpr() (span.Spanned[ast.Stmt], error) {
	start := p.cur().Span.Start
	e, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: start, End: p.prevEnd()}
	return span.With[ast.Stmt](ast.DiscardedStmt{Expr: e}, sp), nil
}

func (p *Parser) parseFnDef() (span.Spanned[ast.Stmt], error) {
	start := p.cur().Span.Start
	isMutable := false
	if p.cur().Type == lexer.Mutable {
		isMutable = true
		p.advance()
	}
	retTok := p.cur()
	if !isPrimitiveType(retTok.Type) && retTok.Type != lexer.Void {
		return span.Spanned[ast.Stmt]{}, &Error{Span: retTok.Span, Msg: fmt.Sprintf("expected a return type, got %s", retTok.Symbol())}
	}
	p.advance()
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var params []ast.Param
	for p.cur().Type != lexer.RParen {
		param, err := p.parseParam()
		if err != nil {
			return span.Spanned[ast.Stmt]{}, err
		}
		params = append(params, param)
		if p.cur().Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	bodyNode, err := p.body()
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: start, End: p.prevEnd()}
	node := ast.FnDefStmt{
		IsMutable: isMutable, ReturnType: ast.FromToken(retTok.Type),
		Name: span.With(nameTok.Text, nameTok.Span), Params: params, Body: bodyNode,
	}
	return span.With[ast.Stmt](node, sp), nil
}

// parseParam parses a single function parameter. XS requires every
// parameter to carry a default value; there is no optional-default
// grammar to fall back to.
func (p *Parser) parseParam() (ast.Param, error) {
	typeTok := p.cur()
	if !isPrimitiveType(typeTok.Type) {
		return ast.Param{}, &Error{Span: typeTok.Span, Msg: fmt.Sprintf("expected a parameter type, got %s", typeTok.Symbol())}
	}
	p.advance()
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.expect(lexer.Eq); err != nil {
		return ast.Param{}, err
	}
	def, err := p.expression()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Type: ast.FromToken(typeTok.Type), Name: span.With(nameTok.Text, nameTok.Span), Default: def}, nil
}

func (p *Parser) parseClassDef() (span.Spanned[ast.Stmt], error) {
	start := p.cur().Span.Start
	p.advance() // class
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	var members []span.Spanned[ast.Stmt]
	for p.cur().Type != lexer.RBrace {
		if p.atEnd() {
			return span.Spanned[ast.Stmt]{}, &Error{Span: p.cur().Span, Msg: "unterminated class body, expected }"}
		}
		m, err := p.parseVarDef()
		if err != nil {
			return span.Spanned[ast.Stmt]{}, err
		}
		members = append(members, m)
	}
	p.advance() // }
	if _, err := p.expect(lexer.SColon); err != nil {
		return span.Spanned[ast.Stmt]{}, err
	}
	sp := span.Span{Start: start, End: p.prevEnd()}
	node := ast.ClassStmt{Name: span.With(nameTok.Text, nameTok.Span), MemberVars: members}
	return span.With[ast.Stmt](node, sp), nil
}
