package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
)

// starNode is `*` or `t.*`: the enclosing select's inner columns carrying
// the same qualifier, unqualified ones for a bare star.
type starNode struct {
	baseNode
	expr *ast.Star
}

func (n *starNode) columns() (*ColumnsMap, error) {
	if n.columnsCache != nil {
		return n.columnsCache, nil
	}
	return newColumnsMap(), nil
}

func (n *starNode) resolve() error {
	sel := n.state.sel
	if sel == nil {
		return buildErrorf("* outside of a select")
	}
	inner, err := sel.innerColumns()
	if err != nil {
		return err
	}
	qualifier := makeColumnKey(n.expr.Table.Text(), "").Qualifier
	out := newColumnsMap()
	inner.each(func(k ColumnKey, refs []ColumnRef) {
		if k.Qualifier == qualifier {
			out.set(k, refs)
		}
	})
	if qualifier != "" && out.Len() == 0 {
		return &ColumnNotFoundError{Qualifier: qualifier, Name: "*", Visible: inner.keyStrings()}
	}
	n.columnsCache = out
	return markTouched(n)
}

// countStarKey is the synthetic binding COUNT(*) projects.
var countStarKey = ColumnKey{Name: "{count}"}

// countStarNode is COUNT(*). It touches nothing.
type countStarNode struct {
	baseNode
}

func (n *countStarNode) columns() (*ColumnsMap, error) {
	if n.columnsCache == nil {
		n.columnsCache = newColumnsMap()
		n.columnsCache.set(countStarKey, nil)
	}
	return n.columnsCache, nil
}
