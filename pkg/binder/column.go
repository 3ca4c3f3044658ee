package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
)

// columnNode is a column reference. It binds against the inner columns of
// the enclosing select: everything built so far in that select's FROM,
// JOINs, projections and clauses.
type columnNode struct {
	baseNode
	expr *ast.Column
	key  ColumnKey
}

func newColumnNode(st BindState, c *ast.Column) (*columnNode, error) {
	if c.Name == nil || c.Name.Name == "" {
		return nil, buildErrorf("column reference without a name")
	}
	n := &columnNode{
		baseNode: newBase(st),
		expr:     c,
		key:      makeColumnKey(c.Table.Text(), c.Name.Name),
	}
	if err := markTouched(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *columnNode) columns() (*ColumnsMap, error) {
	if n.columnsCache != nil {
		return n.columnsCache, nil
	}
	sel := n.state.sel
	if sel == nil {
		return nil, buildErrorf("column %s outside of a select", n.key)
	}
	inner, err := sel.innerColumns()
	if err != nil {
		return nil, err
	}
	refs, ok := inner.Get(n.key)
	if !ok {
		visible := inner.keyStrings()
		n.state.Logger.Debug("column not found", "column", n.key.String(), "visible", visible)
		return nil, &ColumnNotFoundError{Qualifier: n.key.Qualifier, Name: n.key.Name, Visible: visible}
	}
	out := newColumnsMap()
	out.set(n.key, refs)
	n.columnsCache = out
	return out, nil
}

func (n *columnNode) resolve() error {
	cols, err := n.columns()
	if err != nil {
		return err
	}
	d := n.state.Dialect
	if refs, _ := cols.Get(n.key); len(refs) > 0 {
		correctIdentifier(n.expr.Name, refs[0].Name, d)
	}
	if q := n.expr.Table; q != nil {
		if desc, ok := n.state.Schema.LookupTable(q.Name); ok {
			correctIdentifier(q, desc.Name, d)
		}
	}
	return nil
}
