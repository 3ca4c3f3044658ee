// Package postgres provides the PostgreSQL dialect definition.
package postgres

import "github.com/leapstack-labs/sqlbind/pkg/dialect"

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect. ILIKE is wired from Config.
var Postgres = dialect.New(Config).Build()
