package cli

import (
	// Database adapters available to the query command.
	_ "github.com/leapstack-labs/fieldql/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/fieldql/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/fieldql/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/fieldql/pkg/adapters/sqlite"

	_ "github.com/leapstack-labs/fieldql/pkg/dialects/all"
)
