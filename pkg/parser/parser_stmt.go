package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// Statement parsing: WITH, set operations and the SELECT core.
//
// Grammar:
//
//	with_clause   → WITH [RECURSIVE] cte {"," cte}
//	cte           → identifier [ "(" ident_list ")" ] AS "(" statement ")"
//	select_list   → select_item {"," select_item}
//	set_expr      → select_term {(UNION | INTERSECT | EXCEPT | MINUS) [ALL | DISTINCT] select_term} modifiers
//	modifiers     → [ORDER BY order_list] [LIMIT expr] [OFFSET expr [ROW | ROWS]]
//	select_item   → "*" | table "." "*" | expr [[AS] alias]
//	order_item    → expr [ASC|DESC] [NULLS (FIRST|LAST)]

// parseStatement parses a complete statement and requires end of input.
func (p *Parser) parseStatement() ast.Statement {
	stmt := p.parseQuery()
	if p.failed() {
		return nil
	}
	p.match(token.SEMICOLON)
	if !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrTrailingInput, describe(p.token)))
		return nil
	}
	return stmt
}

// parseQuery parses [WITH ...] set_expr.
func (p *Parser) parseQuery() ast.Statement {
	var with *ast.With
	if p.check(token.WITH) {
		with = p.parseWith()
	}

	stmt := p.parseSetExpr()
	if stmt == nil || with == nil {
		return stmt
	}

	switch s := stmt.(type) {
	case *ast.Select:
		if s.With != nil {
			// "WITH a AS (...) (WITH b AS (...) SELECT ...)": keep both.
			with.CTEs = append(with.CTEs, s.With.CTEs...)
		}
		s.With = with
	case *ast.Union:
		s.With = with
	}
	return stmt
}

// parseWith parses a WITH clause.
func (p *Parser) parseWith() *ast.With {
	p.expect(token.WITH)
	with := &ast.With{Recursive: p.match(token.RECURSIVE)}

	for {
		cte := &ast.CTE{Name: p.identifier()}
		if p.match(token.LPAREN) {
			for !p.failed() {
				cte.Columns = append(cte.Columns, p.identifier())
				if !p.match(token.COMMA) {
					break
				}
			}
			p.expect(token.RPAREN)
		}
		p.expect(token.AS)
		p.expect(token.LPAREN)
		cte.Query = p.parseQuery()
		p.expect(token.RPAREN)
		with.CTEs = append(with.CTEs, cte)

		if p.failed() || !p.match(token.COMMA) {
			break
		}
	}
	return with
}

// parseSetExpr parses a chain of set operations, left-associative, and the
// modifiers that follow it. After a set operation they apply to the whole
// chain, not to its last branch.
func (p *Parser) parseSetExpr() ast.Statement {
	left := p.parseSelectTerm()
	for !p.failed() {
		var op ast.SetOp
		switch {
		case p.check(token.UNION):
			op = ast.SetOpUnion
		case p.check(token.INTERSECT):
			op = ast.SetOpIntersect
		case p.check(token.EXCEPT), isSoftKeyword(p.token, "MINUS"):
			op = ast.SetOpExcept
		default:
			p.parseModifiers(left)
			return left
		}
		p.nextToken()

		all := p.match(token.ALL)
		if !all {
			p.match(token.DISTINCT)
		}
		right := p.parseSelectTerm()
		left = &ast.Union{Op: op, All: all, Left: left, Right: right}
	}
	return left
}

// parseSelectTerm parses a SELECT core or a parenthesised query.
func (p *Parser) parseSelectTerm() ast.Statement {
	if p.match(token.LPAREN) {
		q := p.parseQuery()
		p.expect(token.RPAREN)
		return q
	}
	if !p.check(token.SELECT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "SELECT"))
		return nil
	}
	return p.parseSelectCore()
}

// parseSelectCore parses SELECT ... up to the end of its clauses.
func (p *Parser) parseSelectCore() *ast.Select {
	p.expect(token.SELECT)
	sel := &ast.Select{}

	if p.match(token.DISTINCT) {
		sel.Distinct = true
	} else {
		p.match(token.ALL)
	}

	if p.match(token.TOP) {
		sel.Limit = p.parseTop()
	}

	sel.Expressions = p.parseSelectList()

	if p.match(token.FROM) {
		p.parseFromClause(sel)
	}

	if p.match(token.WHERE) {
		sel.Where = p.parseExpression()
	}

	if p.check(token.GROUP) {
		p.nextToken()
		p.expect(token.BY)
		sel.GroupBy = p.parseExpressionList()
	}

	if p.match(token.HAVING) {
		sel.Having = p.parseExpression()
	}

	if p.match(token.QUALIFY) {
		sel.Qualify = p.parseExpression()
	}

	return sel
}

// parseModifiers parses ORDER BY, LIMIT and OFFSET into stmt.
func (p *Parser) parseModifiers(stmt ast.Statement) {
	var (
		orderBy       []*ast.Ordered
		limit, offset ast.Expr
	)
	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		orderBy = p.parseOrderByList()
	}
	if p.match(token.LIMIT) {
		limit = p.parseExpression()
	}
	if p.match(token.OFFSET) {
		offset = p.parseExpression()
		if !p.matchSoft("ROWS") {
			p.matchSoft("ROW")
		}
	}

	switch s := stmt.(type) {
	case *ast.Select:
		if orderBy != nil {
			s.OrderBy = orderBy
		}
		if limit != nil {
			s.Limit = limit
		}
		if offset != nil {
			s.Offset = offset
		}
	case *ast.Union:
		s.OrderBy, s.Limit, s.Offset = orderBy, limit, offset
	}
}

// parseTop parses the operand of T-SQL TOP: a number or a parenthesised expression.
func (p *Parser) parseTop() ast.Expr {
	if p.match(token.LPAREN) {
		e := p.parseExpression()
		p.expect(token.RPAREN)
		return e
	}
	if !p.check(token.NUMBER) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "number"))
		return nil
	}
	lit := &ast.Literal{Kind: ast.LiteralNumber, Value: p.token.Literal}
	p.nextToken()
	return lit
}

// parseSelectList parses the projection list.
func (p *Parser) parseSelectList() []ast.Expr {
	var items []ast.Expr
	for !p.failed() {
		if item := p.parseSelectItem(); item != nil {
			items = append(items, item)
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

// parseSelectItem parses one projection with its optional alias.
func (p *Parser) parseSelectItem() ast.Expr {
	if p.match(token.STAR) {
		return &ast.Star{}
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if _, ok := expr.(*ast.Star); ok {
		return expr
	}

	if alias := p.parseOptionalAlias(); alias != nil {
		return &ast.Alias{Expr: expr, Name: alias}
	}
	return expr
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []ast.Expr {
	var exprs []ast.Expr
	for !p.failed() {
		if e := p.parseExpression(); e != nil {
			exprs = append(exprs, e)
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	return exprs
}

// parseOrderByList parses ORDER BY items.
func (p *Parser) parseOrderByList() []*ast.Ordered {
	var items []*ast.Ordered
	for !p.failed() {
		item := &ast.Ordered{Expr: p.parseExpression()}

		if p.match(token.DESC) {
			item.Desc = true
		} else {
			p.match(token.ASC)
		}

		if p.matchSoft("NULLS") {
			switch {
			case p.matchSoft("FIRST"):
				first := true
				item.NullsFirst = &first
			case p.matchSoft("LAST"):
				first := false
				item.NullsFirst = &first
			default:
				p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "FIRST or LAST"))
			}
		}

		items = append(items, item)
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}
