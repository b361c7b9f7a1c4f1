package core

import "strings"

// DialectKind identifies a supported SQL dialect. It is chosen once per
// connection and selects the function compiler variant.
type DialectKind string

// Supported dialects.
const (
	DialectMySQL    DialectKind = "mysql"
	DialectPostgres DialectKind = "postgres"
	DialectSQLite   DialectKind = "sqlite"
	DialectDuckDB   DialectKind = "duckdb"
	DialectMSSQL    DialectKind = "mssql"
)

// DialectKinds lists all supported dialects.
var DialectKinds = []DialectKind{
	DialectMySQL, DialectPostgres, DialectSQLite, DialectDuckDB, DialectMSSQL,
}

// ParseDialectKind converts a name (case-insensitive, with common aliases)
// into a DialectKind.
func ParseDialectKind(name string) (DialectKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "mariadb":
		return DialectMySQL, true
	case "postgres", "postgresql", "pg":
		return DialectPostgres, true
	case "sqlite", "sqlite3":
		return DialectSQLite, true
	case "duckdb":
		return DialectDuckDB, true
	case "mssql", "sqlserver":
		return DialectMSSQL, true
	default:
		return "", false
	}
}

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no compiler functions.
//
// The runtime behavior (function compilation) lives in pkg/dialect.Dialect,
// which embeds this config.
type DialectConfig struct {
	// Name is the dialect identifier
	Name DialectKind

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name ("main" for DuckDB, "public" for Postgres)
	DefaultSchema string

	// Placeholder defines how query parameters are formatted
	Placeholder PlaceholderStyle
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (SQL Server, DuckDB).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderAtP uses @p1, @p2, etc. for parameters (SQL Server).
	PlaceholderAtP
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
