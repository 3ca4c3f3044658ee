// Package format renders a pkg/ast tree back to SQL text.
//
// Output is a single line with upper-case keywords and single spaces.
// Quoted identifiers are re-quoted with the dialect's quote characters, so
// identifiers rewritten during binding print with their corrected casing.
package format

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
)

// Statement renders a statement.
func Statement(stmt ast.Statement, d *dialect.Dialect) string {
	p := newPrinter(d)
	p.printStatement(stmt)
	return p.String()
}

// Expr renders a single expression.
func Expr(e ast.Expr, d *dialect.Dialect) string {
	p := newPrinter(d)
	p.printExpr(e)
	return p.String()
}
