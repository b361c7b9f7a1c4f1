// Package mysql provides the MySQL dialect definition and function compiler.
// This package is pure Go with no database driver dependencies.
package mysql

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

// Config is the MySQL dialect configuration.
var Config = &core.DialectConfig{
	Name:        core.DialectMySQL,
	Placeholder: core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive,
	},
}

// dateParts are MySQL's single-argument date functions.
var dateParts = map[core.FieldFunction]string{
	core.FuncYear:    "YEAR",
	core.FuncMonth:   "MONTH",
	core.FuncWeek:    "WEEK",
	core.FuncDay:     "DAYOFMONTH",
	core.FuncWeekday: "DAYOFWEEK",
	core.FuncHour:    "HOUR",
	core.FuncMinute:  "MINUTE",
	core.FuncSecond:  "SECOND",
}

// MySQL is the MySQL dialect. MariaDB is served by the same definition.
var MySQL = dialect.New(Config).
	DateParts(dateParts).
	Capabilities(dialect.CapJSONCount, dialect.CapJSON).
	Build()
