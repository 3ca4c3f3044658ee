package binder

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	_ "github.com/leapstack-labs/sqlbind/pkg/dialects/all" // register built-in dialects
	"github.com/leapstack-labs/sqlbind/pkg/format"
	"github.com/leapstack-labs/sqlbind/pkg/parser"
	"github.com/leapstack-labs/sqlbind/pkg/schema"
	"github.com/leapstack-labs/sqlbind/pkg/touch"
)

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger for debug output. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(i *Inspector) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithConcurrency bounds the number of candidates InspectAll binds at
// once. Values below 1 mean 1.
func WithConcurrency(n int) Option {
	return func(i *Inspector) {
		i.concurrency = max(n, 1)
	}
}

// Inspector binds queries against one schema snapshot in one dialect.
// It holds no per-query state and is safe for concurrent use, provided
// concurrent calls do not share a syntax tree: binding rewrites reserved
// word identifiers in place.
type Inspector struct {
	schema      *schema.Snapshot
	dialect     *dialect.Dialect
	logger      *slog.Logger
	concurrency int
}

// New returns an Inspector for the named dialect.
func New(snap *schema.Snapshot, dialectName string, opts ...Option) (*Inspector, error) {
	d, ok := dialect.Get(dialectName)
	if !ok {
		return nil, &UnknownDialectError{Name: dialectName}
	}
	i := &Inspector{
		schema:      snap,
		dialect:     d,
		logger:      slog.New(slog.DiscardHandler),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Dialect returns the dialect queries are bound in.
func (i *Inspector) Dialect() *dialect.Dialect {
	return i.dialect
}

// Inspect binds stmt and returns what it touches. The first resolution
// error is returned and no counts.
func (i *Inspector) Inspect(stmt ast.Node) (touch.Counts, error) {
	if stmt == nil {
		return nil, buildErrorf("nothing to inspect")
	}
	st := BindState{
		Schema:  i.schema,
		Dialect: i.dialect,
		Touches: touch.NewTracker(),
		Logger:  i.logger,
	}
	i.logger.Debug("binding statement", "kind", fmt.Sprintf("%T", stmt), "dialect", i.dialect.Name)

	root := &slot{key: "root"}
	if err := build(st, stmt, root); err != nil {
		i.logger.Debug("binding failed", "error", err)
		return nil, err
	}
	counts := st.Touches.Counts()
	i.logger.Debug("binding done", "touches", len(counts))
	return counts, nil
}

// InspectSQL parses sql in the inspector's dialect and binds it. Parse
// failures match ErrSQLParse and wrap the parser's error.
func (i *Inspector) InspectSQL(sql string) (touch.Counts, error) {
	stmt, err := i.parse(sql)
	if err != nil {
		return nil, err
	}
	return i.Inspect(stmt)
}

// ResolveAndFix parses and binds sql, then prints it back with reserved
// word table and column names rewritten to their quoted schema spelling:
// `SELECT order.id FROM order` becomes `SELECT "ORDER".id FROM "ORDER"`
// in Snowflake when the schema has a table ORDER.
func (i *Inspector) ResolveAndFix(sql string) (string, error) {
	stmt, err := i.parse(sql)
	if err != nil {
		return "", err
	}
	if _, err := i.Inspect(stmt); err != nil {
		return "", err
	}
	return format.Statement(stmt, i.dialect), nil
}

func (i *Inspector) parse(sql string) (ast.Statement, error) {
	stmt, err := parser.Parse(sql, i.dialect)
	if err != nil {
		i.logger.Debug("parse failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSQLParse, err)
	}
	return stmt, nil
}

// Result is the outcome of binding one candidate in InspectAll.
type Result struct {
	SQL    string
	Counts touch.Counts
	Err    error
}

// OK reports whether the candidate bound without error.
func (r Result) OK() bool { return r.Err == nil }

// InspectAll binds every candidate concurrently and returns one Result per
// candidate, in input order. Each candidate is parsed in its own goroutine
// so no syntax tree is shared. Binding failures are reported per Result;
// the returned error is only set when ctx is done first.
func (i *Inspector) InspectAll(ctx context.Context, sqls []string) ([]Result, error) {
	results := make([]Result, len(sqls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for idx, sql := range sqls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts, err := i.InspectSQL(sql)
			results[idx] = Result{SQL: sql, Counts: counts, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Inspect binds stmt against snap in the named dialect.
func Inspect(stmt ast.Node, snap *schema.Snapshot, dialectName string, opts ...Option) (touch.Counts, error) {
	i, err := New(snap, dialectName, opts...)
	if err != nil {
		return nil, err
	}
	return i.Inspect(stmt)
}

// ResolveAndFix is Inspector.ResolveAndFix for a one-off query.
func ResolveAndFix(sql string, snap *schema.Snapshot, dialectName string, opts ...Option) (string, error) {
	i, err := New(snap, dialectName, opts...)
	if err != nil {
		return "", err
	}
	return i.ResolveAndFix(sql)
}
