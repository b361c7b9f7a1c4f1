// Package duckdb provides a DuckDB database adapter.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/fieldql/pkg/adapter"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
	duckdialect "github.com/leapstack-labs/fieldql/pkg/dialects/duckdb"
)

// Adapter implements adapter.Adapter for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// Dialect returns the DuckDB dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return duckdialect.DuckDB
}

// Connect establishes a connection to DuckDB.
// An empty path or ":memory:" opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	path := cfg.Path
	if path == ":memory:" {
		path = ""
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.Logger.Debug("connected to duckdb", slog.String("path", cfg.Path))
	a.DB = db
	a.Cfg = cfg
	return nil
}

// Columns reads column metadata from DuckDB's information_schema.
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	schema := a.Cfg.Schema
	if schema == "" {
		schema = duckdialect.DuckDB.DefaultSchema
	}
	return a.InformationSchemaColumns(ctx, table, schema, a.Dialect())
}

var _ adapter.Adapter = (*Adapter)(nil)
