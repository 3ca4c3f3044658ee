// Package binder resolves the tables and columns a parsed query references
// against a schema snapshot, and counts every reference.
//
// Binding builds a tree of nodes mirroring the syntax tree. Each SELECT is
// built in clause order (WITH, FROM, JOINs, projections, then WHERE, GROUP
// BY, HAVING, QUALIFY, ORDER BY, LIMIT, OFFSET) and a column binds against
// what its select has built before it. Every binding records a touch:
//
//	counts, err := binder.Inspect(stmt, snap, "snowflake")
//	if errors.Is(err, binder.ErrColumnNotFound) {
//	    // the query references a column the schema does not have
//	}
//
// Counts are occurrence counts. A column referenced through an alias is
// counted once for the column and once more for every alias over it.
//
// Binding rewrites reserved-word table and column names in the syntax tree
// to their quoted schema spelling; see Inspector.ResolveAndFix.
package binder
