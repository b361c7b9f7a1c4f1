// Package sqlite provides a SQLite database adapter built on the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/leapstack-labs/fieldql/pkg/adapter"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
	litedialect "github.com/leapstack-labs/fieldql/pkg/dialects/sqlite"
)

// Adapter implements adapter.Adapter for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// Dialect returns the SQLite dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return litedialect.SQLite
}

// Connect opens the database file at cfg.Path. An empty path or ":memory:"
// opens a private in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.Logger.Debug("connected to sqlite", slog.String("path", path))
	a.DB = db
	a.Cfg = cfg
	return nil
}

// Columns reads column metadata with pragma_table_info.
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	rows, err := a.DB.QueryContext(ctx,
		`SELECT cid, name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var (
			col         core.Column
			notNull, pk int
		)
		if err := rows.Scan(&col.Position, &col.Name, &col.Type, &notNull, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Position++
		col.Nullable = notNull == 0
		col.PrimaryKey = pk > 0
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", adapter.ErrTableNotFound, table)
	}
	return columns, nil
}

var _ adapter.Adapter = (*Adapter)(nil)
