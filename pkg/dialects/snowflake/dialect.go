// Package snowflake provides the Snowflake SQL dialect definition.
package snowflake

import "github.com/leapstack-labs/sqlbind/pkg/dialect"

func init() {
	dialect.Register(Snowflake)
}

// Snowflake is the Snowflake SQL dialect.
// Builder reads Config flags and wires:
// - QUALIFY clause (SupportsQualify)
// - ILIKE operator (SupportsIlike)
// - RLIKE / REGEXP operators (SupportsRlike)
var Snowflake = dialect.New(Config).Build()
