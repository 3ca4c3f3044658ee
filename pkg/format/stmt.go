package format

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

func (p *Printer) printStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Select:
		p.printSelect(s)
	case *ast.Union:
		p.printUnion(s)
	}
}

func (p *Printer) printWith(w *ast.With) {
	if w == nil || len(w.CTEs) == 0 {
		return
	}
	p.kw(token.WITH)
	if w.Recursive {
		p.space()
		p.kw(token.RECURSIVE)
	}
	p.space()
	list(p, w.CTEs, func(c *ast.CTE) {
		p.ident(c.Name)
		if len(c.Columns) > 0 {
			p.write(" (")
			list(p, c.Columns, p.ident)
			p.write(")")
		}
		p.space()
		p.kw(token.AS)
		p.write(" (")
		p.printStatement(c.Query)
		p.write(")")
	})
	p.space()
}

func (p *Printer) printUnion(u *ast.Union) {
	p.printWith(u.With)
	p.printSetOperand(u.Left, false)
	p.space()
	p.write(string(u.Op))
	if u.All {
		p.space()
		p.kw(token.ALL)
	}
	p.space()
	p.printSetOperand(u.Right, true)
	p.printModifiers(u.OrderBy, u.Limit, u.Offset)
}

// printSetOperand parenthesises operands that carry their own WITH or
// modifiers, and set operations on the right.
func (p *Printer) printSetOperand(s ast.Statement, right bool) {
	switch s := s.(type) {
	case *ast.Select:
		if s.With == nil && !hasModifiers(s.OrderBy, s.Limit, s.Offset) {
			p.printSelect(s)
			return
		}
	case *ast.Union:
		if s.With == nil && !right && !hasModifiers(s.OrderBy, s.Limit, s.Offset) {
			p.printUnion(s)
			return
		}
	}
	p.write("(")
	p.printStatement(s)
	p.write(")")
}

func hasModifiers(orderBy []*ast.Ordered, limit, offset ast.Expr) bool {
	return len(orderBy) > 0 || limit != nil || offset != nil
}

func (p *Printer) printSelect(s *ast.Select) {
	p.printWith(s.With)
	p.kw(token.SELECT)
	if s.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}

	useTop := s.Limit != nil && p.dialect.SupportsTop
	if useTop {
		p.space()
		p.kw(token.TOP)
		p.space()
		p.printExpr(s.Limit)
	}

	p.space()
	list(p, s.Expressions, p.printExpr)

	if s.From != nil && len(s.From.Sources) > 0 {
		p.space()
		p.kw(token.FROM)
		p.space()
		list(p, s.From.Sources, p.printTableSource)
	}
	for _, j := range s.Joins {
		p.space()
		p.printJoin(j)
	}

	if s.Where != nil {
		p.space()
		p.kw(token.WHERE)
		p.space()
		p.printExpr(s.Where)
	}
	if len(s.GroupBy) > 0 {
		p.space()
		p.kw(token.GROUP, token.BY)
		p.space()
		list(p, s.GroupBy, p.printExpr)
	}
	if s.Having != nil {
		p.space()
		p.kw(token.HAVING)
		p.space()
		p.printExpr(s.Having)
	}
	if s.Qualify != nil {
		p.space()
		p.kw(token.QUALIFY)
		p.space()
		p.printExpr(s.Qualify)
	}
	limit := s.Limit
	if useTop {
		limit = nil
	}
	p.printModifiers(s.OrderBy, limit, s.Offset)
}

func (p *Printer) printModifiers(orderBy []*ast.Ordered, limit, offset ast.Expr) {
	if len(orderBy) > 0 {
		p.space()
		p.kw(token.ORDER, token.BY)
		p.space()
		list(p, orderBy, p.printOrdered)
	}
	if limit != nil {
		p.space()
		p.kw(token.LIMIT)
		p.space()
		p.printExpr(limit)
	}
	if offset != nil {
		p.space()
		p.kw(token.OFFSET)
		p.space()
		p.printExpr(offset)
	}
}

func (p *Printer) printTableSource(e ast.Expr) {
	switch t := e.(type) {
	case *ast.Table:
		if t.Catalog != nil {
			p.ident(t.Catalog)
			p.write(".")
		}
		if t.Schema != nil {
			p.ident(t.Schema)
			p.write(".")
		}
		p.ident(t.Name)
		p.alias(t.Alias)
	case *ast.Subquery:
		p.write("(")
		p.printStatement(t.Query)
		p.write(")")
		p.alias(t.Alias)
	default:
		p.printExpr(e)
	}
}

func (p *Printer) printJoin(j *ast.Join) {
	if j.Natural {
		p.kw(token.NATURAL)
		p.space()
	}
	if j.Kind != "" {
		p.write(j.Kind)
		p.space()
	}
	p.kw(token.JOIN)
	p.space()
	p.printTableSource(j.Target)

	if j.On != nil {
		p.space()
		p.kw(token.ON)
		p.space()
		p.printExpr(j.On)
	}
	if len(j.Using) > 0 {
		p.space()
		p.kw(token.USING)
		p.write(" (")
		list(p, j.Using, p.ident)
		p.write(")")
	}
}

func (p *Printer) printOrdered(o *ast.Ordered) {
	p.printExpr(o.Expr)
	if o.Desc {
		p.space()
		p.kw(token.DESC)
	}
	if o.NullsFirst != nil {
		if *o.NullsFirst {
			p.write(" NULLS FIRST")
		} else {
			p.write(" NULLS LAST")
		}
	}
}
