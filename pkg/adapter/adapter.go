// Package adapter defines the database contract used to execute compiled
// selections and to read column types for schema introspection.
//
// Concrete adapters live in pkg/adapters/ subdirectories and register
// themselves from init:
//
//	import _ "github.com/leapstack-labs/fieldql/pkg/adapters/sqlite"
package adapter

import (
	"context"
	"errors"

	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

// Errors returned by adapters.
var (
	ErrNotConnected  = errors.New("database connection not established")
	ErrTableNotFound = errors.New("table not found")
	ErrAccessDenied  = errors.New("access denied")
)

// Adapter is a connection to one database.
type Adapter interface {
	// Connect opens and pings the database described by cfg.
	Connect(ctx context.Context, cfg core.AdapterConfig) error

	// Close releases the connection.
	Close() error

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, query string, args ...any) error

	// Query runs a statement that returns rows. The caller closes them.
	Query(ctx context.Context, query string, args ...any) (*core.Rows, error)

	// Columns lists the columns of table in ordinal order.
	Columns(ctx context.Context, table string) ([]core.Column, error)

	// Dialect returns the SQL dialect compiled statements must target.
	Dialect() *dialect.Dialect
}
