package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
)

// cteNode is one bound WITH entry. Its body is bound once, where it is
// declared; it exposes nothing to the query it belongs to. References to
// it in FROM become cteRefNodes.
type cteNode struct {
	baseNode
	expr        *ast.CTE
	outputCache *ColumnsMap
}

func (n *cteNode) body() projector {
	// The builder only creates a cteNode after its body bound successfully.
	return n.children("this")[0].(projector)
}

func (n *cteNode) tables() (*TablesMap, error) { return newTablesMap(), nil }

func (n *cteNode) columns() (*ColumnsMap, error) { return newColumnsMap(), nil }

func (n *cteNode) resolve() error {
	_, err := n.output()
	return err
}

// output is what a reference to the CTE projects: the body's columns, or
// with a column list, each projection under its listed name.
func (n *cteNode) output() (*ColumnsMap, error) {
	if n.outputCache != nil {
		return n.outputCache, nil
	}
	names := n.expr.Columns
	if len(names) == 0 {
		out, err := n.body().filteredColumns()
		if err != nil {
			return nil, err
		}
		n.outputCache = out
		return out, nil
	}

	projections := n.body().projections()
	if len(names) != len(projections) {
		return nil, buildErrorf("CTE %s lists %d columns but its query has %d",
			n.expr.Name.Name, len(names), len(projections))
	}
	out := newColumnsMap()
	for i, p := range projections {
		if _, ok := p.(*starNode); ok {
			return nil, buildErrorf("CTE %s: a column list cannot rename *", n.expr.Name.Name)
		}
		cols, err := p.columns()
		if err != nil {
			return nil, err
		}
		out.set(makeColumnKey("", names[i].Name), distinctRefs(cols.allRefs()))
	}
	n.outputCache = out
	return out, nil
}

// distinctRefs drops repeated refs, keeping the first of each.
func distinctRefs(refs []ColumnRef) []ColumnRef {
	seen := make(map[ColumnRef]struct{}, len(refs))
	out := refs[:0:0]
	for _, r := range refs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
