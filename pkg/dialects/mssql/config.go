// Package mssql provides the SQL Server dialect definition and function
// compiler. This package is pure Go with no database driver dependencies.
package mssql

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

// Config is the SQL Server dialect configuration.
var Config = &core.DialectConfig{
	Name:          core.DialectMSSQL,
	DefaultSchema: "dbo",
	Placeholder:   core.PlaceholderAtP,
	Identifiers: core.IdentifierConfig{
		Quote:         "[",
		QuoteEnd:      "]",
		Escape:        "]]",
		Normalization: core.NormCaseInsensitive,
	},
}

// dateParts are DATEPART datepart arguments.
var dateParts = map[core.FieldFunction]string{
	core.FuncYear:    "year",
	core.FuncMonth:   "month",
	core.FuncWeek:    "week",
	core.FuncDay:     "day",
	core.FuncWeekday: "weekday",
	core.FuncHour:    "hour",
	core.FuncMinute:  "minute",
	core.FuncSecond:  "second",
}

// MSSQL is the SQL Server dialect. It has no json-count capability: JSON
// arrays can only be counted with OPENJSON, which needs a subquery.
var MSSQL = dialect.New(Config).
	DateParts(dateParts).
	Capabilities(dialect.CapJSON).
	Build()
