// Package mysql provides a MySQL (and TiDB) database adapter.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/leapstack-labs/fieldql/pkg/adapter"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
	mydialect "github.com/leapstack-labs/fieldql/pkg/dialects/mysql"
)

// Server error codes mapped to adapter errors.
// See https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errDBAccessDenied     = 1044
	errTableAccessDenied  = 1142
	errColumnAccessDenied = 1143
	errNoSuchTable        = 1146
)

// Adapter implements adapter.Adapter for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// Dialect returns the MySQL dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return mydialect.MySQL
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	dsn := buildMySQLConfig(cfg).FormatDSN()
	a.Logger.Debug("connecting to mysql", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", normalizeError(err))
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Query executes a statement that returns rows, mapping permission and
// missing-table server errors to adapter errors.
func (a *Adapter) Query(ctx context.Context, query string, args ...any) (*core.Rows, error) {
	rows, err := a.BaseSQLAdapter.Query(ctx, query, args...)
	return rows, normalizeError(err)
}

// Columns reads column metadata from information_schema. In MySQL the schema
// is the database.
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	return a.InformationSchemaColumns(ctx, table, a.Cfg.Database, a.Dialect())
}

func buildMySQLConfig(cfg core.AdapterConfig) *mysql.Config {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	c := mysql.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	c.DBName = cfg.Database
	c.ParseTime = true
	if tls, ok := cfg.Options["tls"]; ok {
		c.TLSConfig = tls
	}
	return c
}

func normalizeError(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}
	switch mysqlErr.Number {
	case errDBAccessDenied, errTableAccessDenied, errColumnAccessDenied:
		return fmt.Errorf("%w: %s", adapter.ErrAccessDenied, mysqlErr.Message)
	case errNoSuchTable:
		return fmt.Errorf("%w: %s", adapter.ErrTableNotFound, mysqlErr.Message)
	}
	return err
}

var _ adapter.Adapter = (*Adapter)(nil)
