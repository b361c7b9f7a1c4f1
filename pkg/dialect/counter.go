package dialect

import (
	"fmt"

	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
	"github.com/leapstack-labs/fieldql/pkg/schema"
)

// RelationalCounter compiles count() over a one-to-many alias field.
type RelationalCounter interface {
	CountRelated(d *Dialect, req Request) (Fragment, error)
}

// SubqueryCounter counts related rows with a correlated subquery:
//
//	(SELECT COUNT(*) FROM "comments" WHERE "comments"."article" = "articles"."id")
type SubqueryCounter struct {
	Schema schema.Lookup
}

// CountRelated implements RelationalCounter.
func (c SubqueryCounter) CountRelated(d *Dialect, req Request) (Fragment, error) {
	if c.Schema == nil {
		return Fragment{}, &fieldfn.TypeResolutionError{Table: req.Table, Column: req.Column, Type: core.TypeAlias}
	}
	rel, ok := c.Schema.Relation(req.Collection(), req.Column)
	if !ok || rel.Cardinality != core.OneToMany {
		return Fragment{}, &fieldfn.TypeResolutionError{Table: req.Table, Column: req.Column, Type: core.TypeAlias}
	}

	related := d.QuoteIdentifier(rel.RelatedCollection)
	sql := fmt.Sprintf("(SELECT COUNT(*) FROM %s WHERE %s.%s = %s)",
		related,
		related, d.QuoteIdentifier(rel.RelatedKey),
		d.QuoteColumn(req.Table, rel.ParentKey))
	return Fragment{SQL: sql}, nil
}

// CounterFunc adapts a function to RelationalCounter.
type CounterFunc func(d *Dialect, req Request) (Fragment, error)

// CountRelated implements RelationalCounter.
func (f CounterFunc) CountRelated(d *Dialect, req Request) (Fragment, error) {
	return f(d, req)
}
