package binder

import (
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// build binds e under st and appends the resulting node to into.
//
// Nodes are appended only once resolved, so a column sees the siblings to
// its left and never itself. Joins are the exception, see buildJoin.
func build(st BindState, e ast.Node, into *slot) error {
	st = st.withNode(e)

	switch e := e.(type) {
	case *ast.Select:
		return buildSelect(st, e, into)
	case *ast.Union:
		return buildUnion(st, e, into)
	case *ast.Subquery:
		return buildSubquery(st, e, into)
	case *ast.Join:
		return buildJoin(st, e, into)
	case *ast.Table:
		return buildTable(st, e, into)

	case *ast.Column:
		n, err := newColumnNode(st, e)
		if err != nil {
			return err
		}
		return finish(n, into)

	case *ast.Star:
		return finish(&starNode{baseNode: newBase(st), expr: e}, into)

	case *ast.Alias:
		if e.Name == nil || e.Expr == nil {
			return buildErrorf("malformed alias")
		}
		n := &aliasNode{baseNode: newBase(st), expr: e}
		if err := build(st, e.Expr, n.slot("this")); err != nil {
			return err
		}
		return finish(n, into)

	case *ast.Func:
		return buildFunc(st, e, into)

	case *ast.Binary:
		if e.Op == token.EQ {
			if operand, value, ok := operandEqualsString(e); ok {
				n := &eqNode{baseNode: newBase(st), value: value}
				if err := build(st, operand, n.slot("this")); err != nil {
					return err
				}
				return finish(n, into)
			}
		}
		return buildGeneric(st, &genericNode{baseNode: newBase(st)}, e, into)

	case *ast.In:
		return buildIn(st, e, into)

	case *ast.Filter:
		if !st.Dialect.SupportsFilter {
			return &FilterNotSupportedError{Dialect: st.Dialect.Name}
		}
		return buildGeneric(st, &filterNode{baseNode: newBase(st)}, e, into)

	case *ast.Window:
		return buildGeneric(st, &windowNode{baseNode: newBase(st)}, e, into)

	case *ast.With, *ast.CTE, *ast.From:
		return buildErrorf("%T outside of a query", e)

	default:
		return buildGeneric(st, &genericNode{baseNode: newBase(st)}, e, into)
	}
}

// finish resolves n, seals it and appends it to into.
func finish(n node, into *slot) error {
	if err := n.resolve(); err != nil {
		return err
	}
	n.base().sealed = true
	into.add(n)
	return nil
}

// buildGeneric builds every argument slot of e into n, in order.
func buildGeneric(st BindState, n node, e ast.Node, into *slot) error {
	for _, arg := range e.Args() {
		s := n.base().slot(arg.Key)
		for _, child := range arg.Nodes {
			if err := build(st, child, s); err != nil {
				return err
			}
		}
	}
	return finish(n, into)
}

// buildSelect builds a SELECT block in clause order: WITH, FROM, JOINs,
// projections, then the remaining clauses.
func buildSelect(st BindState, sel *ast.Select, into *slot) error {
	n := &selectNode{baseNode: newBase(st)}

	if sel.With != nil {
		var err error
		if st, err = buildWith(st, sel.With, &n.baseNode); err != nil {
			return err
		}
	}
	st = st.withScope(n)
	n.state = st

	if sel.From != nil {
		s := n.slot("from")
		for _, src := range sel.From.Sources {
			if err := build(st, src, s); err != nil {
				return err
			}
		}
	}
	if len(sel.Joins) > 0 {
		s := n.slot("joins")
		for _, j := range sel.Joins {
			if err := buildJoin(st.withNode(j), j, s); err != nil {
				return err
			}
		}
	}
	if err := buildExprs(st, n.slot("expressions"), sel.Expressions...); err != nil {
		return err
	}

	if err := buildClauses(st, &n.baseNode, []clause{
		{"where", nodes(sel.Where)},
		{"group", exprNodes(sel.GroupBy)},
		{"having", nodes(sel.Having)},
		{"qualify", nodes(sel.Qualify)},
		{"order", orderedNodes(sel.OrderBy)},
		{"limit", nodes(sel.Limit)},
		{"offset", nodes(sel.Offset)},
	}); err != nil {
		return err
	}
	return finish(n, into)
}

type clause struct {
	key   string
	exprs []ast.Node
}

// buildClauses builds each non-empty clause into its own slot of owner.
func buildClauses(st BindState, owner *baseNode, clauses []clause) error {
	for _, c := range clauses {
		if len(c.exprs) == 0 {
			continue
		}
		s := owner.slot(c.key)
		for _, e := range c.exprs {
			if err := build(st, e, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildWith binds each CTE body once, in order, and returns a state in
// which the CTE names resolve. Later CTEs see earlier ones.
func buildWith(st BindState, w *ast.With, owner *baseNode) (BindState, error) {
	s := owner.slot("with")
	for _, c := range w.CTEs {
		if c.Name == nil || c.Query == nil {
			return st, buildErrorf("malformed CTE")
		}
		cn := &cteNode{baseNode: newBase(st), expr: c}
		if err := build(st.withNode(c), c.Query, cn.slot("this")); err != nil {
			return st, err
		}
		if err := finish(cn, s); err != nil {
			return st, err
		}
		st = st.withCTE(c.Name.Name, cn)
	}
	return st, nil
}

func buildUnion(st BindState, u *ast.Union, into *slot) error {
	if u.Left == nil || u.Right == nil {
		return buildErrorf("%s without two branches", u.Op)
	}
	n := &unionNode{baseNode: newBase(st)}
	if u.With != nil {
		var err error
		if st, err = buildWith(st, u.With, &n.baseNode); err != nil {
			return err
		}
	}
	if err := build(st, u.Left, n.slot("this")); err != nil {
		return err
	}
	if err := build(st, u.Right, n.slot("expression")); err != nil {
		return err
	}
	if err := buildClauses(st.withScope(n), &n.baseNode, []clause{
		{"order", orderedNodes(u.OrderBy)},
		{"limit", nodes(u.Limit)},
		{"offset", nodes(u.Offset)},
	}); err != nil {
		return err
	}
	return finish(n, into)
}

func buildSubquery(st BindState, sq *ast.Subquery, into *slot) error {
	if sq.Query == nil {
		return buildErrorf("subquery without a body")
	}
	n := &subqueryNode{baseNode: newBase(st), expr: sq}
	if err := build(st, sq.Query, n.slot("this")); err != nil {
		return err
	}
	return finish(n, into)
}

// buildTable binds a FROM reference. An unqualified name matching a CTE in
// scope refers to the CTE, even when the schema has a table of that name.
func buildTable(st BindState, t *ast.Table, into *slot) error {
	if t.Schema == nil && t.Catalog == nil && t.Name != nil {
		if c, ok := st.lookupCTE(t.Name.Name); ok {
			return finish(&cteRefNode{baseNode: newBase(st), expr: t, cte: c}, into)
		}
	}
	n, err := newTableNode(st, t)
	if err != nil {
		return err
	}
	return finish(n, into)
}

func buildFunc(st BindState, f *ast.Func, into *slot) error {
	if f.Star {
		if strings.EqualFold(f.Name, "COUNT") {
			return finish(&countStarNode{baseNode: newBase(st)}, into)
		}
		return finish(&genericNode{baseNode: newBase(st)}, into)
	}

	args := f.Arguments
	// DATEADD(month, 1, x): the leading bare name is a date part.
	if len(args) > 0 && st.Dialect.IsDatePartFunction(f.Name) {
		if c, ok := args[0].(*ast.Column); ok && c.Table == nil {
			args = args[1:]
		}
	}
	n := &genericNode{baseNode: newBase(st)}
	if err := buildExprs(st, n.slot("expressions"), args...); err != nil {
		return err
	}
	return finish(n, into)
}

func buildIn(st BindState, in *ast.In, into *slot) error {
	if in.Expr == nil {
		return buildErrorf("IN without an operand")
	}
	n := &inNode{baseNode: newBase(st)}
	if err := build(st, in.Expr, n.slot("this")); err != nil {
		return err
	}
	for _, v := range in.Values {
		if lit, ok := v.(*ast.Literal); ok && lit.IsString() {
			n.values = append(n.values, lit.Value)
			continue
		}
		if err := build(st, v, n.slot("expressions")); err != nil {
			return err
		}
	}
	if in.Query != nil {
		if err := build(st, in.Query, n.slot("query")); err != nil {
			return err
		}
	}
	return finish(n, into)
}

// operandEqualsString matches `expr = 'x'` and `'x' = expr` where expr is
// anything but a literal.
func operandEqualsString(b *ast.Binary) (ast.Expr, string, bool) {
	if lit, ok := b.Right.(*ast.Literal); ok && lit.IsString() && isOperand(b.Left) {
		return b.Left, lit.Value, true
	}
	if lit, ok := b.Left.(*ast.Literal); ok && lit.IsString() && isOperand(b.Right) {
		return b.Right, lit.Value, true
	}
	return nil, "", false
}

func isOperand(e ast.Expr) bool {
	if e == nil {
		return false
	}
	_, lit := e.(*ast.Literal)
	return !lit
}

func buildExprs(st BindState, s *slot, exprs ...ast.Expr) error {
	for _, e := range exprs {
		if err := build(st, e, s); err != nil {
			return err
		}
	}
	return nil
}

func nodes(e ast.Expr) []ast.Node {
	if e == nil {
		return nil
	}
	return []ast.Node{e}
}

func exprNodes(es []ast.Expr) []ast.Node {
	out := make([]ast.Node, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

func orderedNodes(items []*ast.Ordered) []ast.Node {
	out := make([]ast.Node, len(items))
	for i, o := range items {
		out[i] = o
	}
	return out
}
