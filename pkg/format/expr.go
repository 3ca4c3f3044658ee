package format

import (
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

func (p *Printer) printExpr(e ast.Expr) {
	switch n := e.(type) {
	case nil:
	case *ast.Select, *ast.Union:
		p.printStatement(n.(ast.Statement))
	case *ast.Column:
		if n.Table != nil {
			p.ident(n.Table)
			p.write(".")
		}
		p.ident(n.Name)
	case *ast.Star:
		if n.Table != nil {
			p.ident(n.Table)
			p.write(".")
		}
		p.write("*")
	case *ast.Alias:
		p.printExpr(n.Expr)
		p.alias(n.Name)
	case *ast.Literal:
		p.printLiteral(n)
	case *ast.Binary:
		p.printExpr(n.Left)
		p.space()
		p.write(binaryOp(n.Op))
		p.space()
		p.printExpr(n.Right)
	case *ast.Unary:
		if n.Op == token.NOT {
			p.kw(token.NOT)
			p.space()
		} else {
			p.write(n.Op.String())
		}
		p.printExpr(n.Expr)
	case *ast.Paren:
		p.write("(")
		p.printExpr(n.Expr)
		p.write(")")
	case *ast.Subquery:
		p.write("(")
		p.printStatement(n.Query)
		p.write(")")
		p.alias(n.Alias)
	case *ast.Table:
		p.printTableSource(n)
	case *ast.Func:
		p.printFunc(n)
	case *ast.Filter:
		p.printExpr(n.Func)
		p.write(" FILTER (")
		p.kw(token.WHERE)
		p.space()
		p.printExpr(n.Where)
		p.write(")")
	case *ast.Window:
		p.printWindow(n)
	case *ast.In:
		p.printExpr(n.Expr)
		p.space()
		p.not(n.Not)
		p.kw(token.IN)
		p.write(" (")
		if n.Query != nil {
			p.printStatement(n.Query.Query)
		} else {
			list(p, n.Values, p.printExpr)
		}
		p.write(")")
	case *ast.Between:
		p.printExpr(n.Expr)
		p.space()
		p.not(n.Not)
		p.kw(token.BETWEEN)
		p.space()
		p.printExpr(n.Low)
		p.space()
		p.kw(token.AND)
		p.space()
		p.printExpr(n.High)
	case *ast.Is:
		p.printExpr(n.Expr)
		p.space()
		p.kw(token.IS)
		p.space()
		p.not(n.Not)
		p.printLiteral(n.Value)
	case *ast.Like:
		p.printExpr(n.Expr)
		p.space()
		p.not(n.Not)
		p.write(n.Op.String())
		p.space()
		p.printExpr(n.Pattern)
	case *ast.Case:
		p.printCase(n)
	case *ast.Cast:
		p.kw(token.CAST)
		p.write("(")
		p.printExpr(n.Expr)
		p.space()
		p.kw(token.AS)
		p.space()
		p.write(n.Type)
		p.write(")")
	case *ast.Exists:
		p.not(n.Not)
		p.kw(token.EXISTS)
		p.write(" (")
		if n.Query != nil {
			p.printStatement(n.Query.Query)
		}
		p.write(")")
	}
}

// not prints "NOT " when set.
func (p *Printer) not(set bool) {
	if set {
		p.kw(token.NOT)
		p.space()
	}
}

func binaryOp(op token.TokenType) string {
	if op == token.NE {
		return "<>"
	}
	return op.String()
}

func (p *Printer) printLiteral(l *ast.Literal) {
	if l == nil {
		return
	}
	switch l.Kind {
	case ast.LiteralString:
		p.write("'" + strings.ReplaceAll(l.Value, "'", "''") + "'")
	case ast.LiteralInterval:
		p.write("INTERVAL " + l.Value)
	default:
		p.write(l.Value)
	}
}

func (p *Printer) printFunc(f *ast.Func) {
	p.write(f.Name)
	if f.Niladic {
		return
	}
	p.write("(")
	switch {
	case f.Star:
		p.write("*")
	case f.Name == "EXTRACT" && len(f.Arguments) == 2:
		p.printExpr(f.Arguments[0])
		p.space()
		p.kw(token.FROM)
		p.space()
		p.printExpr(f.Arguments[1])
	default:
		if f.Distinct {
			p.kw(token.DISTINCT)
			p.space()
		}
		list(p, f.Arguments, p.printExpr)
	}
	p.write(")")
}

func (p *Printer) printWindow(w *ast.Window) {
	p.printExpr(w.Func)
	p.space()
	p.kw(token.OVER)
	p.space()
	if w.Name != nil {
		p.ident(w.Name)
		return
	}

	var parts []string
	if len(w.PartitionBy) > 0 {
		sub := newPrinter(p.dialect)
		sub.kw(token.PARTITION, token.BY)
		sub.space()
		list(sub, w.PartitionBy, sub.printExpr)
		parts = append(parts, sub.String())
	}
	if len(w.OrderBy) > 0 {
		sub := newPrinter(p.dialect)
		sub.kw(token.ORDER, token.BY)
		sub.space()
		list(sub, w.OrderBy, sub.printOrdered)
		parts = append(parts, sub.String())
	}
	if w.Frame != "" {
		parts = append(parts, w.Frame)
	}
	p.write("(" + strings.Join(parts, " ") + ")")
}

func (p *Printer) printCase(c *ast.Case) {
	p.kw(token.CASE)
	if c.Operand != nil {
		p.space()
		p.printExpr(c.Operand)
	}
	for _, w := range c.Whens {
		p.space()
		p.kw(token.WHEN)
		p.space()
		p.printExpr(w.Cond)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.printExpr(w.Result)
	}
	if c.Else != nil {
		p.space()
		p.kw(token.ELSE)
		p.space()
		p.printExpr(c.Else)
	}
	p.space()
	p.kw(token.END)
}
