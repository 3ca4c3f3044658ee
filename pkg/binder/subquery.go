package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
)

// subqueryNode is a parenthesised query, in FROM or in an expression.
// Only an aliased subquery exposes tables.
type subqueryNode struct {
	baseNode
	expr *ast.Subquery
}

func (n *subqueryNode) alias() string {
	return n.expr.Alias.Text()
}

func (n *subqueryNode) body() (projector, error) {
	body := n.children("this")
	if len(body) == 0 {
		return nil, buildErrorf("subquery without a body")
	}
	p, ok := body[0].(projector)
	if !ok {
		return nil, buildErrorf("subquery body is not a query")
	}
	return p, nil
}

func (n *subqueryNode) tables() (*TablesMap, error) {
	if n.tablesCache != nil {
		return n.tablesCache, nil
	}
	out := newTablesMap()
	if alias := n.alias(); alias != "" {
		inner, err := mergeTables(n.children("this"))
		if err != nil {
			return nil, err
		}
		out.add(alias, inner.allRefs()...)
	}
	n.tablesCache = out
	return out, nil
}

func (n *subqueryNode) columns() (*ColumnsMap, error) {
	if n.columnsCache != nil {
		return n.columnsCache, nil
	}
	body, err := n.body()
	if err != nil {
		return nil, err
	}
	filtered, err := body.filteredColumns()
	if err != nil {
		return nil, err
	}
	n.columnsCache = requalify(filtered, n.alias())
	return n.columnsCache, nil
}

// requalify exposes a projection from outside its query: every column
// unqualified, and again under alias when one is given.
func requalify(filtered *ColumnsMap, alias string) *ColumnsMap {
	out := newColumnsMap()
	filtered.each(func(k ColumnKey, refs []ColumnRef) {
		out.set(ColumnKey{Name: k.Name}, refs)
	})
	if alias != "" {
		filtered.each(func(k ColumnKey, refs []ColumnRef) {
			out.set(makeColumnKey(alias, k.Name), refs)
		})
	}
	return out
}
