package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/schema"
	"github.com/leapstack-labs/sqlbind/pkg/touch"
)

// tableNode is a physical table in FROM or JOIN.
type tableNode struct {
	baseNode
	expr *ast.Table
	desc *schema.TableDescriptor // nil when the schema has no such table
}

func newTableNode(st BindState, t *ast.Table) (*tableNode, error) {
	if t.Name == nil || t.Name.Name == "" {
		return nil, buildErrorf("table reference without a name")
	}
	n := &tableNode{baseNode: newBase(st), expr: t}
	name := t.Name.Name
	if desc, ok := st.Schema.LookupTable(name); ok {
		n.desc = desc
		name = desc.Name
	}
	st.RecordTouch(touch.TableKey(name))
	return n, nil
}

// exposed is the name the rest of the query refers to this table by.
func (n *tableNode) exposed() string {
	if n.expr.Alias != nil {
		return n.expr.Alias.Name
	}
	return n.expr.Name.Name
}

func (n *tableNode) notFound() error {
	n.state.Logger.Debug("table not found", "table", n.expr.Name.Name)
	return &TableNotFoundError{Name: n.expr.Name.Name}
}

func (n *tableNode) tables() (*TablesMap, error) {
	if n.tablesCache != nil {
		return n.tablesCache, nil
	}
	if n.desc == nil {
		return nil, n.notFound()
	}
	out := newTablesMap()
	out.add(n.exposed(), TableRef{Name: n.desc.Name})
	n.tablesCache = out
	return out, nil
}

func (n *tableNode) columns() (*ColumnsMap, error) {
	if n.columnsCache != nil {
		return n.columnsCache, nil
	}
	if n.desc == nil {
		return nil, n.notFound()
	}
	out := newColumnsMap()
	qualifier := n.exposed()
	tbl := TableRef{Name: n.desc.Name}
	for _, col := range n.desc.Columns() {
		refs := []ColumnRef{{Name: col.Name, Table: tbl}}
		out.set(makeColumnKey("", col.Name), refs)
		out.set(makeColumnKey(qualifier, col.Name), refs)
	}
	n.columnsCache = out
	return out, nil
}

func (n *tableNode) resolve() error {
	if _, err := n.columns(); err != nil {
		return err
	}
	correctIdentifier(n.expr.Name, n.desc.Name, n.state.Dialect)
	return nil
}

// cteRefNode is a FROM reference to a CTE. It binds like an aliased
// subquery under the reference's alias or the CTE name.
type cteRefNode struct {
	baseNode
	expr *ast.Table
	cte  *cteNode
}

func (n *cteRefNode) exposed() string {
	if n.expr.Alias != nil {
		return n.expr.Alias.Name
	}
	return n.expr.Name.Name
}

func (n *cteRefNode) tables() (*TablesMap, error) {
	if n.tablesCache != nil {
		return n.tablesCache, nil
	}
	body, err := n.cte.body().tables()
	if err != nil {
		return nil, err
	}
	out := newTablesMap()
	out.add(n.exposed(), body.allRefs()...)
	n.tablesCache = out
	return out, nil
}

func (n *cteRefNode) columns() (*ColumnsMap, error) {
	if n.columnsCache != nil {
		return n.columnsCache, nil
	}
	output, err := n.cte.output()
	if err != nil {
		return nil, err
	}
	n.columnsCache = requalify(output, n.exposed())
	return n.columnsCache, nil
}
