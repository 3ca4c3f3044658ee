package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls.
//
// Grammar:
//
//	primary       → literal | column_ref | star_ref | func_call | paren_expr | subquery
//	              | case_expr | cast_expr | exists_expr | interval
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL
//	column_ref    → [[schema "."] table "."] column
//	star_ref      → table "." "*"
//	func_call     → name "(" [DISTINCT] [expr_list | "*"] ")" [FILTER "(" WHERE expr ")"] [OVER window_spec]
//	window_spec   → identifier | "(" [PARTITION BY expr_list] [ORDER BY order_list] [frame] ")"

// niladicFunctions are called without parentheses.
var niladicFunctions = map[string]bool{
	"CURRENT_DATE":      true,
	"CURRENT_TIME":      true,
	"CURRENT_TIMESTAMP": true,
	"CURRENT_USER":      true,
	"LOCALTIME":         true,
	"LOCALTIMESTAMP":    true,
	"SESSION_USER":      true,
	"SYSDATE":           true,
}

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() ast.Expr {
	switch p.token.Type {
	case token.NUMBER:
		lit := &ast.Literal{Kind: ast.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &ast.Literal{Kind: ast.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE:
		p.nextToken()
		return &ast.Literal{Kind: ast.LiteralBool, Value: "TRUE"}

	case token.FALSE:
		p.nextToken()
		return &ast.Literal{Kind: ast.LiteralBool, Value: "FALSE"}

	case token.NULL:
		p.nextToken()
		return &ast.Literal{Kind: ast.LiteralNull, Value: "NULL"}

	case token.STAR:
		p.nextToken()
		return &ast.Star{}

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		return p.parseCastExpr()

	case token.EXISTS:
		return p.parseExistsExpr(false)

	case token.LPAREN:
		return p.parseParenExpr()

	case token.IDENT:
		if isSoftKeyword(p.token, "INTERVAL") && p.checkPeek(token.STRING) {
			return p.parseInterval()
		}
		return p.parseNameExpr()
	}

	// Reserved words used as names: `order.id`, or functions spelled like
	// keywords such as LEFT(s, 2).
	if token.IsKeyword(p.token.Type) && (p.checkPeek(token.DOT) || p.checkPeek(token.LPAREN)) {
		return p.parseNameExpr()
	}

	p.addError(fmt.Sprintf(ErrUnexpectedExpression, describe(p.token)))
	return nil
}

// parseParenExpr parses a parenthesised expression or a scalar subquery.
func (p *Parser) parseParenExpr() ast.Expr {
	p.expect(token.LPAREN)
	if p.check(token.SELECT) || p.check(token.WITH) {
		q := p.parseQuery()
		p.expect(token.RPAREN)
		return &ast.Subquery{Query: q}
	}
	e := p.parseExpression()
	p.expect(token.RPAREN)
	return &ast.Paren{Expr: e}
}

// parseNameExpr parses a column reference, t.* or a function call.
func (p *Parser) parseNameExpr() ast.Expr {
	first := p.token
	if p.checkPeek(token.LPAREN) && !first.Quoted {
		p.nextToken()
		return p.parseFuncCall(strings.ToUpper(first.Literal))
	}

	parts := []*ast.Identifier{p.identifier()}
	for p.check(token.DOT) && !p.failed() {
		p.nextToken()
		if p.match(token.STAR) {
			return &ast.Star{Table: parts[len(parts)-1]}
		}
		parts = append(parts, p.identifier())
	}
	if p.failed() {
		return nil
	}

	if len(parts) == 1 && !first.Quoted {
		if name := strings.ToUpper(first.Literal); niladicFunctions[name] {
			return &ast.Func{Name: name, Niladic: true}
		}
	}

	col := &ast.Column{Name: parts[len(parts)-1]}
	if len(parts) > 1 {
		col.Table = parts[len(parts)-2]
	}
	return col
}

// parseFuncCall parses the argument list after the function name and any
// trailing FILTER and OVER clauses. The current token is "(".
func (p *Parser) parseFuncCall(name string) ast.Expr {
	p.expect(token.LPAREN)
	fn := &ast.Func{Name: name}

	switch {
	case p.check(token.RPAREN):
	case p.check(token.STAR) && p.checkPeek(token.RPAREN):
		p.nextToken()
		fn.Star = true
	case name == "EXTRACT":
		p.parseExtractArgs(fn)
	default:
		fn.Distinct = p.match(token.DISTINCT)
		fn.Arguments = p.parseExpressionList()
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	var expr ast.Expr = fn
	if isSoftKeyword(p.token, "FILTER") && p.checkPeek(token.LPAREN) {
		p.nextToken()
		p.expect(token.LPAREN)
		p.expect(token.WHERE)
		expr = &ast.Filter{Func: expr, Where: p.parseExpression()}
		p.expect(token.RPAREN)
	}
	if p.match(token.OVER) {
		expr = p.parseWindow(expr)
	}
	return expr
}

// parseExtractArgs parses `part FROM expr`. The date part is a keyword
// literal, not a column.
func (p *Parser) parseExtractArgs(fn *ast.Func) {
	var part string
	switch {
	case p.check(token.IDENT), p.check(token.STRING):
		part = p.token.Literal
		p.nextToken()
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "date part"))
		return
	}
	p.expect(token.FROM)
	fn.Arguments = []ast.Expr{
		&ast.Literal{Kind: ast.LiteralKeyword, Value: strings.ToUpper(part)},
		p.parseExpression(),
	}
}

// parseWindow parses the window specification after OVER.
func (p *Parser) parseWindow(fn ast.Expr) ast.Expr {
	w := &ast.Window{Func: fn}
	if p.check(token.IDENT) {
		w.Name = p.identifier()
		return w
	}

	if !p.expect(token.LPAREN) {
		return nil
	}
	if p.check(token.PARTITION) {
		p.nextToken()
		p.expect(token.BY)
		w.PartitionBy = p.parseExpressionList()
	}
	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		w.OrderBy = p.parseOrderByList()
	}
	if isSoftKeyword(p.token, "ROWS") || isSoftKeyword(p.token, "RANGE") || isSoftKeyword(p.token, "GROUPS") {
		w.Frame = p.parseFrame()
	}
	p.expect(token.RPAREN)
	return w
}

// parseFrame collects the window frame verbatim up to the closing paren.
// Frame bounds never reference columns.
func (p *Parser) parseFrame() string {
	var words []string
	for !p.check(token.RPAREN) && !p.check(token.EOF) && !p.failed() {
		words = append(words, strings.ToUpper(p.token.Literal))
		p.nextToken()
	}
	return strings.Join(words, " ")
}

// parseCaseExpr parses CASE [operand] WHEN ... THEN ... [ELSE ...] END.
func (p *Parser) parseCaseExpr() ast.Expr {
	p.expect(token.CASE)
	c := &ast.Case{}
	if !p.check(token.WHEN) {
		c.Operand = p.parseExpression()
	}

	for p.match(token.WHEN) && !p.failed() {
		w := &ast.When{Cond: p.parseExpression()}
		p.expect(token.THEN)
		w.Result = p.parseExpression()
		c.Whens = append(c.Whens, w)
	}
	if len(c.Whens) == 0 {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "WHEN"))
		return nil
	}

	if p.match(token.ELSE) {
		c.Else = p.parseExpression()
	}
	p.expect(token.END)
	return c
}

// parseCastExpr parses CAST(expr AS type).
func (p *Parser) parseCastExpr() ast.Expr {
	p.expect(token.CAST)
	p.expect(token.LPAREN)
	expr := p.parseExpression()
	p.expect(token.AS)
	typ := p.parseTypeName()
	p.expect(token.RPAREN)
	return &ast.Cast{Expr: expr, Type: typ}
}

// parseTypeName parses a type such as INT, VARCHAR(10), NUMERIC(10, 2) or
// DOUBLE PRECISION, returned as upper-cased text.
func (p *Parser) parseTypeName() string {
	if !p.check(token.IDENT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "type name"))
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(p.token.Literal))
	p.nextToken()

	for p.check(token.IDENT) && !p.isReservedAfterExpr(p.token) && isTypeWord(p.token.Literal) {
		sb.WriteString(" ")
		sb.WriteString(strings.ToUpper(p.token.Literal))
		p.nextToken()
	}

	if p.match(token.LPAREN) {
		sb.WriteString("(")
		for i := 0; !p.check(token.RPAREN) && !p.check(token.EOF); i++ {
			if i > 0 {
				p.expect(token.COMMA)
				sb.WriteString(", ")
			}
			sb.WriteString(p.token.Literal)
			p.nextToken()
		}
		p.expect(token.RPAREN)
		sb.WriteString(")")
	}
	return sb.String()
}

// isTypeWord lists the words that continue a multi-word type name.
func isTypeWord(word string) bool {
	switch strings.ToUpper(word) {
	case "PRECISION", "VARYING", "ZONE", "TIME", "WITHOUT", "LOCAL":
		return true
	}
	return false
}

// parseInterval parses INTERVAL 'n' [unit].
func (p *Parser) parseInterval() ast.Expr {
	p.nextToken() // INTERVAL
	value := "'" + strings.ReplaceAll(p.token.Literal, "'", "''") + "'"
	p.nextToken()
	if p.check(token.IDENT) && isIntervalUnit(p.token.Literal) {
		value += " " + strings.ToUpper(p.token.Literal)
		p.nextToken()
	}
	return &ast.Literal{Kind: ast.LiteralInterval, Value: value}
}

func isIntervalUnit(word string) bool {
	switch strings.TrimSuffix(strings.ToUpper(word), "S") {
	case "YEAR", "QUARTER", "MONTH", "WEEK", "DAY", "HOUR", "MINUTE", "SECOND", "MILLISECOND", "MICROSECOND":
		return true
	}
	return false
}
