package parser

import (
	"fmt"
	"strconv"

	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/lexer"
	"github.com/xs-lang/xscheck/span"
)

// expression implements the 9-level precedence ladder: unary binds
// tighter than every binary tier, and the binary tiers climb
// || -> && -> ==/!= -> relational -> +/- -> * /.
func (p *Parser) expression() (span.Spanned[ast.Expr], error) {
	return p.exprOr()
}

func (p *Parser) exprOr() (span.Spanned[ast.Expr], error) {
	left, err := p.exprAnd()
	if err != nil {
		return left, err
	}
	for p.cur().Type == lexer.DPipe {
		p.advance()
		right, err := p.exprAnd()
		if err != nil {
			return right, err
		}
		left = span.With[ast.Expr](ast.BinExpr{Op: ast.OpOr, Left: left, Right: right}, span.Union(left.Span, right.Span))
	}
	return left, nil
}

func (p *Parser) exprAnd() (span.Spanned[ast.Expr], error) {
	left, err := p.exprEq()
	if err != nil {
		return left, err
	}
	for p.cur().Type == lexer.DAmp {
		p.advance()
		right, err := p.exprEq()
		if err != nil {
			return right, err
		}
		left = span.With[ast.Expr](ast.BinExpr{Op: ast.OpAnd, Left: left, Right: right}, span.Union(left.Span, right.Span))
	}
	return left, nil
}

func (p *Parser) exprEq() (span.Spanned[ast.Expr], error) {
	left, err := p.exprRel()
	if err != nil {
		return left, err
	}
	for {
		var op ast.BinOp
		switch p.cur().Type {
		case lexer.Deq:
			op = ast.OpEq
		case lexer.Neq:
			op = ast.OpNe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.exprRel()
		if err != nil {
			return right, err
		}
		left = span.With[ast.Expr](ast.BinExpr{Op: op, Left: left, Right: right}, span.Union(left.Span, right.Span))
	}
}

func (p *Parser) exprRel() (span.Spanned[ast.Expr], error) {
	left, err := p.exprAdd()
	if err != nil {
		return left, err
	}
	for {
		var op ast.BinOp
		switch p.cur().Type {
		case lexer.Lt:
			op = ast.OpLt
		case lexer.Gt:
			op = ast.OpGt
		case lexer.Le:
			op = ast.OpLe
		case lexer.Ge:
			op = ast.OpGe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.exprAdd()
		if err != nil {
			return right, err
		}
		left = span.With[ast.Expr](ast.BinExpr{Op: op, Left: left, Right: right}, span.Union(left.Span, right.Span))
	}
}

func (p *Parser) exprAdd() (span.Spanned[ast.Expr], error) {
	left, err := p.exprMul()
	if err != nil {
		return left, err
	}
	for {
		var op ast.BinOp
		switch p.cur().Type {
		case lexer.Plus:
			op = ast.OpPlus
		case lexer.Minus:
			op = ast.OpMinus
		default:
			return left, nil
		}
		p.advance()
		right, err := p.exprMul()
		if err != nil {
			return right, err
		}
		left = span.With[ast.Expr](ast.BinExpr{Op: op, Left: left, Right: right}, span.Union(left.Span, right.Span))
	}
}

// exprMul folds '*' and '/'. '%' never appears here: it lexes as FSlash
// (see lexer.lexOperator), which is why ast.OpPCent is unreachable from
// this parser.
func (p *Parser) exprMul() (span.Spanned[ast.Expr], error) {
	left, err := p.unary()
	if err != nil {
		return left, err
	}
	for {
		var op ast.BinOp
		switch p.cur().Type {
		case lexer.Star:
			op = ast.OpStar
		case lexer.FSlash:
			op = ast.OpFSlash
		default:
			return left, nil
		}
		p.advance()
		right, err := p.unary()
		if err != nil {
			return right, err
		}
		left = span.With[ast.Expr](ast.BinExpr{Op: op, Left: left, Right: right}, span.Union(left.Span, right.Span))
	}
}

// unary accepts an optional leading '-' or '!' regardless of surrounding
// whitespace; whether a bare "- 1" is legal as a negative literal is a
// type-check-time concern (span adjacency), not a parse-time grammar
// restriction.
func (p *Parser) unary() (span.Spanned[ast.Expr], error) {
	if p.cur().Type == lexer.Minus || p.cur().Type == lexer.Excl {
		opTok := p.advance()
		operand, err := p.atom()
		if err != nil {
			return operand, err
		}
		sp := span.Span{Start: opTok.Span.Start, End: operand.Span.End}
		if opTok.Type == lexer.Minus {
			return span.With[ast.Expr](ast.NegExpr{Inner: operand}, sp), nil
		}
		return span.With[ast.Expr](ast.NotExpr{Inner: operand}, sp), nil
	}
	return p.atom()
}

// atom parses the innermost expression forms, tried in the fixed order
// vec-literal, fn-call, paren-expr, literal, identifier. A leading
// identifier is only treated as a call when immediately followed by '(';
// otherwise it falls through to a bare identifier reference.
func (p *Parser) atom() (span.Spanned[ast.Expr], error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.Vector:
		return p.vecLiteral()
	case lexer.Identifier:
		if p.peekType(1) == lexer.LParen {
			return p.fnCall()
		}
		p.advance()
		return span.With[ast.Expr](ast.IdentExpr{Name: tok.Text}, tok.Span), nil
	case lexer.LParen:
		return p.parenExpr()
	case lexer.IntLit:
		p.advance()
		v, _ := strconv.ParseInt(tok.Text, 10, 64)
		return span.With[ast.Expr](ast.LiteralExpr{Value: ast.IntLiteral(v)}, tok.Span), nil
	case lexer.FloatLit:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Text, 64)
		return span.With[ast.Expr](ast.LiteralExpr{Value: ast.FloatLiteral(v)}, tok.Span), nil
	case lexer.BoolLit:
		p.advance()
		return span.With[ast.Expr](ast.LiteralExpr{Value: ast.BoolLiteral(tok.Text == "true")}, tok.Span), nil
	case lexer.StrLit:
		p.advance()
		return span.With[ast.Expr](ast.LiteralExpr{Value: ast.StrLiteral(tok.Text)}, tok.Span), nil
	default:
		return span.Spanned[ast.Expr]{}, &Error{Span: tok.Span, Msg: fmt.Sprintf("expected an expression, got %s", tok.Symbol())}
	}
}

func (p *Parser) vecLiteral() (span.Spanned[ast.Expr], error) {
	startTok := p.advance() // vector
	if _, err := p.expect(lexer.LParen); err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	x, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	if _, err := p.expect(lexer.Comma); err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	y, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	if _, err := p.expect(lexer.Comma); err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	z, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	sp := span.Span{Start: startTok.Span.Start, End: p.prevEnd()}
	return span.With[ast.Expr](ast.VecExpr{X: x, Y: y, Z: z}, sp), nil
}

// fnCall parses a call's argument list, allowing a trailing comma before
// the closing paren.
func (p *Parser) fnCall() (span.Spanned[ast.Expr], error) {
	nameTok := p.advance() // identifier
	if _, err := p.expect(lexer.LParen); err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	var args []span.Spanned[ast.Expr]
	for p.cur().Type != lexer.RParen {
		arg, err := p.expression()
		if err != nil {
			return span.Spanned[ast.Expr]{}, err
		}
		args = append(args, arg)
		if p.cur().Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	sp := span.Span{Start: nameTok.Span.Start, End: p.prevEnd()}
	return span.With[ast.Expr](ast.FnCallExpr{Name: span.With(nameTok.Text, nameTok.Span), Args: args}, sp), nil
}

func (p *Parser) parenExpr() (span.Spanned[ast.Expr], error) {
	startTok := p.advance() // (
	inner, err := p.expression()
	if err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return span.Spanned[ast.Expr]{}, err
	}
	sp := span.Span{Start: startTok.Span.Start, End: p.prevEnd()}
	return span.With[ast.Expr](ast.ParenExpr{Inner: inner}, sp), nil
}
