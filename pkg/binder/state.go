package binder

import (
	"log/slog"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	"github.com/leapstack-labs/sqlbind/pkg/schema"
	"github.com/leapstack-labs/sqlbind/pkg/touch"
)

// BindState is the context threaded through the node tree while it is
// built. It is passed by value; Derive returns a modified copy and never
// changes the receiver, so a child scope cannot leak into its siblings.
type BindState struct {
	Schema  *schema.Snapshot
	Dialect *dialect.Dialect
	Node    ast.Node // syntax node currently being built
	Touches *touch.Tracker
	Logger  *slog.Logger

	sel  scope               // innermost enclosing query block, nil at the top
	ctes map[string]*cteNode // folded CTE name -> bound body
}

// Derive returns a copy of s with fn applied to it.
func (s BindState) Derive(fn func(*BindState)) BindState {
	fn(&s)
	return s
}

// RecordTouch increments the count for k.
func (s BindState) RecordTouch(k touch.Key) {
	s.Touches.Record(k)
}

func (s BindState) withScope(sel scope) BindState {
	return s.Derive(func(st *BindState) { st.sel = sel })
}

func (s BindState) withNode(n ast.Node) BindState {
	return s.Derive(func(st *BindState) { st.Node = n })
}

// withCTE returns a state in which name resolves to c. The map is copied
// so earlier states keep their view.
func (s BindState) withCTE(name string, c *cteNode) BindState {
	ctes := make(map[string]*cteNode, len(s.ctes)+1)
	for k, v := range s.ctes {
		ctes[k] = v
	}
	ctes[schema.Fold(name)] = c
	return s.Derive(func(st *BindState) { st.ctes = ctes })
}

func (s BindState) lookupCTE(name string) (*cteNode, bool) {
	c, ok := s.ctes[schema.Fold(name)]
	return c, ok
}
