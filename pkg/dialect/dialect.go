// Package dialect provides SQL dialect configuration and the function
// compiler contract.
//
// A Dialect is static data: identifier quoting, placeholder style, the
// capabilities it supports and its native keyword for each date-part
// function. Compilation lives behind the FunctionCompiler interface, which
// every dialect in pkg/dialects/* implements and registers from init().
package dialect

import (
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// Capability names a group of field functions a dialect can compile.
type Capability string

// Capabilities a dialect may provide.
const (
	CapDatePart  Capability = "date-part"  // year() ... second()
	CapJSONCount Capability = "json-count" // count() over a json column
	CapJSON      Capability = "json"       // json(field$path)
)

// AllCapabilities lists every capability.
var AllCapabilities = []Capability{CapDatePart, CapJSONCount, CapJSON}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        core.DialectKind
	Identifiers core.IdentifierConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("main" for DuckDB, "public" for Postgres)
	Placeholder   core.PlaceholderStyle // How to format query parameters

	capabilities map[Capability]struct{}
	dateParts    map[core.FieldFunction]string // function -> native keyword
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	return &core.DialectConfig{
		Name:          d.Name,
		Identifiers:   d.Identifiers,
		DefaultSchema: d.DefaultSchema,
		Placeholder:   d.Placeholder,
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return string(d.Name)
}

// Supports reports whether the dialect provides capability c.
func (d *Dialect) Supports(c Capability) bool {
	_, ok := d.capabilities[c]
	return ok
}

// Capabilities returns the supported capabilities (sorted).
func (d *Dialect) Capabilities() []Capability {
	caps := make([]Capability, 0, len(d.capabilities))
	for c := range d.capabilities {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}

// DatePart returns the dialect's native keyword for a date-part function.
func (d *Dialect) DatePart(fn core.FieldFunction) (string, bool) {
	kw, ok := d.dateParts[fn]
	return kw, ok
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1" for PlaceholderDollar and
// "@p1" for PlaceholderAtP.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderAtP:
		return "@p" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteColumn quotes a table-qualified column reference.
func (d *Dialect) QuoteColumn(table, column string) string {
	return d.QuoteIdentifier(table) + "." + d.QuoteIdentifier(column)
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with ANSI identifier quoting.
func NewDialect(name core.DialectKind) *Builder {
	return New(&core.DialectConfig{
		Name: name,
		Identifiers: core.IdentifierConfig{
			Quote:         `"`,
			QuoteEnd:      `"`,
			Escape:        `""`,
			Normalization: core.NormLowercase,
		},
	})
}

// New creates a dialect builder from a DialectConfig.
func New(cfg *core.DialectConfig) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name:          cfg.Name,
			Identifiers:   cfg.Identifiers,
			DefaultSchema: cfg.DefaultSchema,
			Placeholder:   cfg.Placeholder,
			capabilities:  make(map[Capability]struct{}),
			dateParts:     make(map[core.FieldFunction]string),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// Capabilities marks capabilities as supported.
func (b *Builder) Capabilities(caps ...Capability) *Builder {
	for _, c := range caps {
		b.dialect.capabilities[c] = struct{}{}
	}
	return b
}

// DateParts registers the native keyword for each date-part function and
// marks CapDatePart as supported.
func (b *Builder) DateParts(parts map[core.FieldFunction]string) *Builder {
	for fn, kw := range parts {
		b.dialect.dateParts[fn] = kw
	}
	return b.Capabilities(CapDatePart)
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
