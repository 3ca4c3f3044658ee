package binder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/dialect"
)

// Sentinels for errors.Is. Every binder error also matches ErrInspect.
var (
	ErrInspect            = errors.New("sql inspection failed")
	ErrTableNotFound      = fmt.Errorf("%w: table not found", ErrInspect)
	ErrColumnNotFound     = fmt.Errorf("%w: column not found", ErrInspect)
	ErrFilterNotSupported = fmt.Errorf("%w: FILTER not supported", ErrInspect)
	ErrSQLParse           = fmt.Errorf("%w: unsupported sql shape", ErrInspect)
	ErrUnknownDialect     = fmt.Errorf("%w: unknown dialect", ErrInspect)
)

// TableNotFoundError is returned when a FROM reference names neither a
// schema table nor a CTE in scope.
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Name)
}

func (e *TableNotFoundError) Unwrap() error { return ErrTableNotFound }

// ColumnNotFoundError is returned when a column reference has no visible
// binding in its enclosing select.
type ColumnNotFoundError struct {
	Qualifier string // empty when unqualified
	Name      string
	Visible   []string // keys visible at the point of lookup
}

func (e *ColumnNotFoundError) Error() string {
	name := e.Name
	if e.Qualifier != "" {
		name = e.Qualifier + "." + e.Name
	}
	if len(e.Visible) == 0 {
		return fmt.Sprintf("column %q not found", name)
	}
	return fmt.Sprintf("column %q not found (visible: %s)", name, strings.Join(e.Visible, ", "))
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrColumnNotFound }

// FilterNotSupportedError is returned for `agg(...) FILTER (WHERE ...)` in
// a dialect that has no FILTER clause.
type FilterNotSupportedError struct {
	Dialect string
}

func (e *FilterNotSupportedError) Error() string {
	return fmt.Sprintf("FILTER clause is not supported in %s dialect", e.Dialect)
}

func (e *FilterNotSupportedError) Unwrap() error { return ErrFilterNotSupported }

// BuildError is returned when the syntax tree has a shape the binder does
// not understand.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string {
	return "bind: " + e.Message
}

func (e *BuildError) Unwrap() error { return ErrSQLParse }

func buildErrorf(format string, args ...any) *BuildError {
	return &BuildError{Message: fmt.Sprintf(format, args...)}
}

// UnknownDialectError is returned for a dialect name that is not
// registered.
type UnknownDialectError struct {
	Name string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (registered: %s)", e.Name, strings.Join(dialect.List(), ", "))
}

func (e *UnknownDialectError) Unwrap() error { return ErrUnknownDialect }
