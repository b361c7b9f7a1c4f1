// Package duckdb provides the DuckDB dialect definition and function compiler.
// This package is pure Go with no database driver dependencies.
package duckdb

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

// Config is the DuckDB dialect configuration.
var Config = &core.DialectConfig{
	Name:          core.DialectDuckDB,
	DefaultSchema: "main",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
}

var dateParts = map[core.FieldFunction]string{
	core.FuncYear:    "year",
	core.FuncMonth:   "month",
	core.FuncWeek:    "week",
	core.FuncDay:     "day",
	core.FuncWeekday: "dayofweek",
	core.FuncHour:    "hour",
	core.FuncMinute:  "minute",
	core.FuncSecond:  "second",
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(Config).
	DateParts(dateParts).
	Capabilities(dialect.CapJSONCount, dialect.CapJSON).
	Build()
