package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// FROM clause parsing: table references, subqueries and joins.
//
// Grammar:
//
//	from_clause   → table_source {("," table_source) | join}
//	table_source  → table_name [[AS] alias] | "(" statement ")" [[AS] alias]
//	table_name    → identifier ["." identifier ["." identifier]]
//	join          → [NATURAL] [join_type] JOIN table_source [ON expr | USING "(" ident_list ")"]
//	join_type     → INNER | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS

// parseFromClause parses the FROM sources and trailing joins into sel.
func (p *Parser) parseFromClause(sel *ast.Select) {
	from := &ast.From{}
	if src := p.parseTableSource(); src != nil {
		from.Sources = append(from.Sources, src)
	}

	for !p.failed() {
		switch {
		case p.match(token.COMMA):
			if src := p.parseTableSource(); src != nil {
				from.Sources = append(from.Sources, src)
			}
		case p.isJoinStart():
			if j := p.parseJoin(); j != nil {
				sel.Joins = append(sel.Joins, j)
			}
		default:
			sel.From = from
			return
		}
	}
	sel.From = from
}

// parseTableSource parses a table reference or a derived table.
func (p *Parser) parseTableSource() ast.Expr {
	if p.check(token.LPAREN) {
		if !p.checkPeek(token.SELECT) && !p.checkPeek(token.WITH) && !p.checkPeek(token.LPAREN) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.peek), "subquery"))
			return nil
		}
		p.nextToken()
		q := p.parseQuery()
		p.expect(token.RPAREN)
		return &ast.Subquery{Query: q, Alias: p.parseOptionalAlias()}
	}

	return p.parseTableName()
}

// parseTableName parses a possibly qualified table name and its alias.
// A reserved word is accepted as the name here (e.g. FROM order): nothing
// else can start a table source.
func (p *Parser) parseTableName() *ast.Table {
	if p.check(token.SELECT) || p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "table name"))
		return nil
	}

	parts := []*ast.Identifier{p.identifier()}
	for len(parts) < 3 && p.check(token.DOT) && !p.failed() {
		p.nextToken()
		parts = append(parts, p.identifier())
	}
	if p.failed() {
		return nil
	}

	tbl := &ast.Table{Name: parts[len(parts)-1]}
	switch len(parts) {
	case 3:
		tbl.Catalog, tbl.Schema = parts[0], parts[1]
	case 2:
		tbl.Schema = parts[0]
	}
	tbl.Alias = p.parseOptionalAlias()
	return tbl
}

// parseJoin parses one JOIN clause.
func (p *Parser) parseJoin() *ast.Join {
	j := &ast.Join{Natural: p.match(token.NATURAL)}

	switch p.token.Type {
	case token.INNER, token.CROSS:
		j.Kind = p.token.Type.String()
		p.nextToken()
	case token.LEFT, token.RIGHT, token.FULL:
		j.Kind = p.token.Type.String()
		p.nextToken()
		p.match(token.OUTER)
	}

	if !p.expect(token.JOIN) {
		return nil
	}
	j.Target = p.parseTableSource()

	switch {
	case p.match(token.ON):
		j.On = p.parseExpression()
	case p.match(token.USING):
		p.expect(token.LPAREN)
		for !p.failed() {
			j.Using = append(j.Using, p.identifier())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	return j
}
