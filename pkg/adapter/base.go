package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

// BaseSQLAdapter implements the database/sql parts of Adapter. Concrete
// adapters embed it and supply Connect, Columns and Dialect.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB == nil {
		return nil
	}
	b.logger().Debug("closing database connection", slog.String("type", b.Cfg.Type))
	return b.DB.Close()
}

// Exec executes a statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, query string, args ...any) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	if _, err := b.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, query string, args ...any) (*core.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	b.logger().Debug("executing query", slog.String("sql", query), slog.Int("args", len(args)))
	//nolint:rowserrcheck // rows.Err() is checked by the caller after iteration
	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// IsConnected reports whether Connect has succeeded.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// ParseQualifiedName splits "schema.table". defaultSchema is used when
// table is unqualified.
func ParseQualifiedName(table, defaultSchema string) (schema, name string) {
	if s, n, ok := strings.Cut(table, "."); ok {
		return s, n
	}
	return defaultSchema, table
}

// InformationSchemaColumns reads column metadata from
// information_schema.columns, the way postgres, duckdb and mysql expose it,
// and marks primary-key columns.
func (b *BaseSQLAdapter) InformationSchemaColumns(ctx context.Context, table, defaultSchema string, d *dialect.Dialect) ([]core.Column, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	schema, name := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // placeholders come from dialect.FormatPlaceholder
	query := fmt.Sprintf(`
		SELECT column_name, data_type, is_nullable, ordinal_position
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, d.FormatPlaceholder(1), d.FormatPlaceholder(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var (
			col      core.Column
			nullable string
		)
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = strings.EqualFold(nullable, "YES")
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, schema, name)
	}

	keys, err := b.primaryKeys(ctx, schema, name, d)
	if err != nil {
		return nil, err
	}
	for i := range columns {
		columns[i].PrimaryKey = keys[columns[i].Name]
	}
	return columns, nil
}

func (b *BaseSQLAdapter) primaryKeys(ctx context.Context, schema, name string, d *dialect.Dialect) (map[string]bool, error) {
	//nolint:gosec // placeholders come from dialect.FormatPlaceholder
	query := fmt.Sprintf(`
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
			AND tc.table_name = kcu.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = %s AND tc.table_name = %s
	`, d.FormatPlaceholder(1), d.FormatPlaceholder(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query primary keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := make(map[string]bool)
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, fmt.Errorf("failed to scan primary key: %w", err)
		}
		keys[col] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating primary keys: %w", err)
	}
	return keys, nil
}
