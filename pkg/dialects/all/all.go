// Package all registers every built-in dialect.
package all

import (
	_ "github.com/leapstack-labs/sqlbind/pkg/dialects/ansi"      // register ansi
	_ "github.com/leapstack-labs/sqlbind/pkg/dialects/postgres"  // register postgres
	_ "github.com/leapstack-labs/sqlbind/pkg/dialects/snowflake" // register snowflake
	_ "github.com/leapstack-labs/sqlbind/pkg/dialects/tsql"      // register tsql
)
