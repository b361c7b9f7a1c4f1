// Package all registers every built-in dialect. Import it for side effects:
//
//	import _ "github.com/leapstack-labs/fieldql/pkg/dialects/all"
package all

import (
	_ "github.com/leapstack-labs/fieldql/pkg/dialects/duckdb"   // Register DuckDB dialect
	_ "github.com/leapstack-labs/fieldql/pkg/dialects/mssql"    // Register SQL Server dialect
	_ "github.com/leapstack-labs/fieldql/pkg/dialects/mysql"    // Register MySQL dialect
	_ "github.com/leapstack-labs/fieldql/pkg/dialects/postgres" // Register PostgreSQL dialect
	_ "github.com/leapstack-labs/fieldql/pkg/dialects/sqlite"   // Register SQLite dialect
)
