// Package testutil provides helpers shared by package tests: a logger
// routed through testing.TB and schema fixtures.
package testutil

import (
	"log/slog"
	"sort"
	"testing"

	"github.com/leapstack-labs/sqlbind/pkg/schema"
)

// NewTestLogger returns a debug-level logger that writes to t.Log().
// Binding traces only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return NewTestLoggerLevel(t, slog.LevelDebug)
}

// NewTestLoggerLevel is NewTestLogger with a minimum level.
func NewTestLoggerLevel(t testing.TB, level slog.Leveler) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: level,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Snapshot builds a schema from table name -> columns, declaring tables in
// name order so the fixture is deterministic. It fails the test on a
// schema error.
func Snapshot(t testing.TB, tables map[string][]string) *schema.Snapshot {
	t.Helper()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]schema.TableSpec, len(names))
	for i, name := range names {
		specs[i] = schema.TableSpec{Name: name, Columns: tables[name]}
	}
	snap, err := schema.Build(specs)
	if err != nil {
		t.Fatalf("building schema fixture: %v", err)
	}
	return snap
}
