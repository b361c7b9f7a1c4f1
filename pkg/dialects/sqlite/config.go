// Package sqlite provides the SQLite dialect definition and function compiler.
// This package is pure Go with no database driver dependencies.
package sqlite

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

// Config is the SQLite dialect configuration.
var Config = &core.DialectConfig{
	Name:          core.DialectSQLite,
	DefaultSchema: "main",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
}

// dateParts are strftime format codes.
var dateParts = map[core.FieldFunction]string{
	core.FuncYear:    "%Y",
	core.FuncMonth:   "%m",
	core.FuncWeek:    "%W",
	core.FuncDay:     "%d",
	core.FuncWeekday: "%w",
	core.FuncHour:    "%H",
	core.FuncMinute:  "%M",
	core.FuncSecond:  "%S",
}

// SQLite is the SQLite dialect.
var SQLite = dialect.New(Config).
	DateParts(dateParts).
	Capabilities(dialect.CapJSONCount, dialect.CapJSON).
	Build()
