// Package config loads sqlbind settings from defaults, an optional YAML
// file, SQLBIND_* environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/sqlbind/pkg/binder"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	_ "github.com/leapstack-labs/sqlbind/pkg/dialects/all" // register built-in dialects
	"github.com/leapstack-labs/sqlbind/pkg/schema"
)

// Config holds the settings an Inspector is built from.
type Config struct {
	Dialect     string `koanf:"dialect"`
	SchemaFile  string `koanf:"schema_file"`
	Debug       bool   `koanf:"debug"`
	Concurrency int    `koanf:"concurrency"` // 0 means one per CPU
}

// Validate checks that the dialect is registered and the concurrency is
// not negative.
func (c *Config) Validate() error {
	if c.Dialect == "" {
		return dialect.ErrDialectRequired
	}
	if _, ok := dialect.Get(c.Dialect); !ok {
		return &binder.UnknownDialectError{Name: c.Dialect}
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// Logger returns a debug-level text logger writing to w when Debug is set,
// and a discarding logger otherwise.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if !c.Debug || w == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// InspectorOptions converts the settings into binder options.
func (c *Config) InspectorOptions(logger *slog.Logger) []binder.Option {
	opts := []binder.Option{binder.WithLogger(logger)}
	if c.Concurrency > 0 {
		opts = append(opts, binder.WithConcurrency(c.Concurrency))
	}
	return opts
}

// LoadSchema reads the snapshot from SchemaFile.
func (c *Config) LoadSchema() (*schema.Snapshot, error) {
	if c.SchemaFile == "" {
		return nil, fmt.Errorf("schema_file is not set")
	}
	return schema.LoadFile(c.SchemaFile)
}

// NewInspector loads the schema and builds an Inspector from c. Debug
// output goes to logOut.
func (c *Config) NewInspector(logOut io.Writer) (*binder.Inspector, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	snap, err := c.LoadSchema()
	if err != nil {
		return nil, err
	}
	return binder.New(snap, c.Dialect, c.InspectorOptions(c.Logger(logOut))...)
}
