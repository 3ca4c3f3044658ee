// Package parser parses SQL queries into the pkg/ast syntax tree.
//
// # Usage
//
//	stmt, err := parser.Parse("SELECT a, b FROM t", snowflake.Snowflake)
//	if err != nil {
//	    // handle error
//	}
//
// Or look the dialect up by name:
//
//	stmt, err := parser.ParseDialect(sql, "postgres")
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for SQL queries:
//
//	statement     → [WITH cte_list] set_expr [";"]
//	set_expr      → select_term {(UNION|INTERSECT|EXCEPT) [ALL|DISTINCT] select_term}
//	select_term   → select_core | "(" statement ")"
//	select_core   → SELECT [DISTINCT|ALL] [TOP n] select_list [FROM from_clause]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	                [QUALIFY expr] [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// UnknownDialectError is returned by ParseDialect for unregistered names.
type UnknownDialectError struct {
	Name string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (registered: %s)", e.Name, strings.Join(dialect.List(), ", "))
}

// Parser parses SQL into an AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a single query statement with the given dialect.
func Parse(sql string, d *dialect.Dialect) (ast.Statement, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	p := NewParser(sql, d)
	stmt := p.parseStatement()
	if errs := p.lexer.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmt, nil
}

// ParseDialect parses sql with a dialect looked up in the registry.
func ParseDialect(sql, dialectName string) (ast.Statement, error) {
	d, ok := dialect.Get(dialectName)
	if !ok {
		return nil, &UnknownDialectError{Name: dialectName}
	}
	return Parse(sql, d)
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), t))
	return false
}

// addError adds a parse error. Only the first error is reported, later ones
// are usually knock-on effects.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0 || len(p.lexer.errors) > 0
}

// describe renders a token for error messages.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.NUMBER:
		return fmt.Sprintf("%q", tok.Literal)
	case token.STRING:
		return fmt.Sprintf("'%s'", tok.Literal)
	}
	return tok.Type.String()
}

// ---------- Keyword Helpers ----------

// isSoftKeyword reports whether tok is the unquoted non-reserved word kw.
// Non-reserved words (FILTER, ROWS, NULLS, INTERVAL, ...) lex as IDENT so
// they stay usable as names; the parser matches them by text.
func isSoftKeyword(tok token.Token, kw string) bool {
	return tok.Type == token.IDENT && !tok.Quoted && strings.EqualFold(tok.Literal, kw)
}

// matchSoft consumes the current token if it is the soft keyword kw.
func (p *Parser) matchSoft(kw string) bool {
	if isSoftKeyword(p.token, kw) {
		p.nextToken()
		return true
	}
	return false
}

// isJoinStart returns true if the current token begins a JOIN clause.
func (p *Parser) isJoinStart() bool {
	switch p.token.Type {
	case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL,
		token.CROSS, token.NATURAL:
		return true
	}
	return false
}

// identifier converts the current token into an identifier and advances.
// Keywords are accepted as names; callers decide where that is legal.
func (p *Parser) identifier() *ast.Identifier {
	tok := p.token
	if tok.Type != token.IDENT && !token.IsKeyword(tok.Type) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(tok), "identifier"))
		return nil
	}
	p.nextToken()
	return &ast.Identifier{Name: tok.Literal, Quoted: tok.Quoted}
}

// parseOptionalAlias parses `[AS] alias`. Without AS only a plain
// identifier is taken, so a following clause keyword is left alone.
func (p *Parser) parseOptionalAlias() *ast.Identifier {
	if p.match(token.AS) {
		return p.identifier()
	}
	if p.check(token.IDENT) && !p.isReservedAfterExpr(p.token) {
		return p.identifier()
	}
	return nil
}

// isReservedAfterExpr lists soft keywords that may follow an expression or
// a table and therefore can't be a bare alias.
func (p *Parser) isReservedAfterExpr(tok token.Token) bool {
	for _, kw := range []string{"FILTER", "WINDOW", "FETCH", "LATERAL", "PIVOT", "UNPIVOT", "SAMPLE", "TABLESAMPLE", "MINUS"} {
		if isSoftKeyword(tok, kw) {
			return true
		}
	}
	return false
}
