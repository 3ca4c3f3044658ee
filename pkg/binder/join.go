package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
)

// joinNode is one JOIN clause. It is attached to its select before the
// target is built, so the ON condition binds against the target as well
// as everything to its left.
type joinNode struct {
	baseNode
	expr *ast.Join
}

func buildJoin(st BindState, j *ast.Join, into *slot) error {
	switch {
	case j.Natural:
		return buildErrorf("NATURAL JOIN is not supported")
	case len(j.Using) > 0:
		return buildErrorf("JOIN ... USING is not supported")
	case j.Target == nil:
		return buildErrorf("JOIN without a target")
	case j.On == nil && j.Kind != "CROSS":
		return buildErrorf("%s JOIN without ON", joinKind(j))
	}

	n := &joinNode{baseNode: newBase(st), expr: j}
	into.add(n)
	if err := build(st, j.Target, n.slot("this")); err != nil {
		return err
	}
	if j.On != nil {
		if err := build(st, j.On, n.slot("on")); err != nil {
			return err
		}
	}
	if err := n.resolve(); err != nil {
		return err
	}
	n.sealed = true
	return nil
}

func joinKind(j *ast.Join) string {
	if j.Kind == "" {
		return "INNER"
	}
	return j.Kind
}
