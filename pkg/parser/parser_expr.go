package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels:
//
//	PrecedenceNone       = 0
//	PrecedenceOr         = 1
//	PrecedenceAnd        = 2
//	PrecedenceNot        = 3
//	PrecedenceComparison = 4  (=, !=, <, >, <=, >=, IS, IN, BETWEEN, LIKE, ILIKE, RLIKE)
//	PrecedenceAddition   = 5  (+, -, ||)
//	PrecedenceMultiply   = 6  (*, /, %)
//	PrecedenceUnary      = 7  (-, +)
//	PrecedencePostfix    = 8  (::)

// Operator precedence levels.
const (
	PrecedenceNone = iota
	PrecedenceOr
	PrecedenceAnd
	PrecedenceNot
	PrecedenceComparison
	PrecedenceAddition
	PrecedenceMultiply
	PrecedenceUnary
	PrecedencePostfix
)

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseExpressionWithPrecedence(PrecedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) ast.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for !p.failed() {
		prec := p.infixPrecedence()
		if prec < minPrecedence || prec == PrecedenceNone {
			break
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() ast.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		if p.check(token.EXISTS) {
			return p.parseExistsExpr(true)
		}
		expr := p.parseExpressionWithPrecedence(PrecedenceNot)
		return &ast.Unary{Op: token.NOT, Expr: expr}

	case token.MINUS, token.PLUS:
		op := p.token.Type
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(PrecedenceUnary)
		return &ast.Unary{Op: op, Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of the current token as an infix
// operator, or PrecedenceNone.
func (p *Parser) infixPrecedence() int {
	switch p.token.Type {
	case token.OR:
		return PrecedenceOr
	case token.AND:
		return PrecedenceAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE,
		token.IS, token.IN, token.BETWEEN, token.LIKE, token.ILIKE, token.RLIKE:
		return PrecedenceComparison
	case token.NOT:
		// NOT IN, NOT LIKE, NOT BETWEEN
		switch p.peek.Type {
		case token.IN, token.BETWEEN, token.LIKE, token.ILIKE, token.RLIKE:
			return PrecedenceComparison
		}
		return PrecedenceNone
	case token.PLUS, token.MINUS, token.DPIPE:
		return PrecedenceAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return PrecedenceMultiply
	case token.DCOLON:
		return PrecedencePostfix
	}
	return PrecedenceNone
}

// parseInfixExpr parses an infix expression given the left operand and current precedence.
func (p *Parser) parseInfixExpr(left ast.Expr, prec int) ast.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		return p.parseNegatableInfix(left, true)

	case token.IN, token.BETWEEN, token.LIKE, token.ILIKE, token.RLIKE:
		return p.parseNegatableInfix(left, false)

	case token.IS:
		return p.parseIsExpr(left)

	case token.DCOLON:
		p.nextToken()
		return &ast.Cast{Expr: left, Type: p.parseTypeName()}
	}

	// Standard binary operators, left-associative
	op := p.token.Type
	p.nextToken()
	right := p.parseExpressionWithPrecedence(prec + 1)
	if right == nil && !p.failed() {
		p.addError(fmt.Sprintf(ErrUnexpectedExpression, describe(p.token)))
	}
	return &ast.Binary{Op: op, Left: left, Right: right}
}

// parseNegatableInfix parses IN, BETWEEN and the LIKE family, after any NOT.
func (p *Parser) parseNegatableInfix(left ast.Expr, not bool) ast.Expr {
	switch p.token.Type {
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, not)
	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, not)
	case token.LIKE, token.ILIKE, token.RLIKE:
		op := p.token.Type
		p.nextToken()
		return &ast.Like{Op: op, Expr: left, Not: not, Pattern: p.parseExpressionWithPrecedence(PrecedenceComparison + 1)}
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "IN, BETWEEN or LIKE"))
	return nil
}

// parseInExpr parses the list or subquery of an IN predicate.
func (p *Parser) parseInExpr(left ast.Expr, not bool) ast.Expr {
	in := &ast.In{Expr: left, Not: not}
	if !p.expect(token.LPAREN) {
		return nil
	}

	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Query = &ast.Subquery{Query: p.parseQuery()}
	} else {
		in.Values = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return in
}

// parseBetweenExpr parses `low AND high`. The bounds bind tighter than AND.
func (p *Parser) parseBetweenExpr(left ast.Expr, not bool) ast.Expr {
	low := p.parseExpressionWithPrecedence(PrecedenceComparison + 1)
	p.expect(token.AND)
	high := p.parseExpressionWithPrecedence(PrecedenceComparison + 1)
	return &ast.Between{Expr: left, Not: not, Low: low, High: high}
}

// parseIsExpr parses IS [NOT] NULL|TRUE|FALSE.
func (p *Parser) parseIsExpr(left ast.Expr) ast.Expr {
	p.expect(token.IS)
	is := &ast.Is{Expr: left, Not: p.match(token.NOT)}

	switch p.token.Type {
	case token.NULL:
		is.Value = &ast.Literal{Kind: ast.LiteralNull, Value: "NULL"}
	case token.TRUE:
		is.Value = &ast.Literal{Kind: ast.LiteralBool, Value: "TRUE"}
	case token.FALSE:
		is.Value = &ast.Literal{Kind: ast.LiteralBool, Value: "FALSE"}
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "NULL, TRUE or FALSE"))
		return nil
	}
	p.nextToken()
	return is
}

// parseExistsExpr parses EXISTS (subquery); NOT has been consumed by the caller.
func (p *Parser) parseExistsExpr(not bool) ast.Expr {
	p.expect(token.EXISTS)
	if !p.expect(token.LPAREN) {
		return nil
	}
	q := p.parseQuery()
	p.expect(token.RPAREN)
	return &ast.Exists{Not: not, Query: &ast.Subquery{Query: q}}
}
