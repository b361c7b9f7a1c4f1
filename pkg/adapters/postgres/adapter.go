// Package postgres provides a PostgreSQL database adapter.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/fieldql/pkg/adapter"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
	pgdialect "github.com/leapstack-labs/fieldql/pkg/dialects/postgres"
)

// Adapter implements adapter.Adapter for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the PostgreSQL dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return pgdialect.Postgres
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	connCfg, err := pgx.ParseConfig(buildPostgresDSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to parse postgres config: %w", err)
	}

	a.Logger.Debug("connecting to postgres",
		slog.String("host", connCfg.Host),
		slog.String("database", connCfg.Database))

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Columns reads column metadata from information_schema. Unqualified tables
// resolve against the target schema, then "public".
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	schema := a.Cfg.Schema
	if schema == "" {
		schema = pgdialect.Postgres.DefaultSchema
	}
	return a.InformationSchemaColumns(ctx, table, schema, a.Dialect())
}

// buildPostgresDSN constructs a key=value connection string:
// host=localhost port=5432 dbname=blog sslmode=disable user=...
func buildPostgresDSN(cfg core.AdapterConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, cfg.Database, sslmode)
	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return dsn
}

var _ adapter.Adapter = (*Adapter)(nil)
