// Package postgres provides the PostgreSQL dialect definition and function
// compiler. This package is pure Go with no database driver dependencies.
package postgres

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

// Config is the PostgreSQL dialect configuration.
var Config = &core.DialectConfig{
	Name:          core.DialectPostgres,
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderDollar,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase, // Postgres normalizes unquoted to lowercase
	},
}

// dateParts are EXTRACT field names.
var dateParts = map[core.FieldFunction]string{
	core.FuncYear:    "YEAR",
	core.FuncMonth:   "MONTH",
	core.FuncWeek:    "WEEK",
	core.FuncDay:     "DAY",
	core.FuncWeekday: "DOW",
	core.FuncHour:    "HOUR",
	core.FuncMinute:  "MINUTE",
	core.FuncSecond:  "SECOND",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.New(Config).
	DateParts(dateParts).
	Capabilities(dialect.CapJSONCount, dialect.CapJSON).
	Build()
