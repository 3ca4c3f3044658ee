package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	"github.com/leapstack-labs/sqlbind/pkg/schema"
)

// correctIdentifier rewrites id in place to the canonical schema spelling
// and marks it quoted when it is a reserved word in d, so the printed query
// still parses and matches the catalog. It reports whether id changed.
func correctIdentifier(id *ast.Identifier, canonical string, d *dialect.Dialect) bool {
	if id == nil || d == nil || canonical == "" {
		return false
	}
	// Only respell: a reference resolved through an alias keeps its name.
	if !d.IsReservedWord(id.Name) || schema.Fold(id.Name) != schema.Fold(canonical) {
		return false
	}
	id.Name = canonical
	id.Quoted = true
	return true
}
