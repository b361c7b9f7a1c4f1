// Package selection turns a query tree into SQL: compiled function-field
// columns, a single-table SELECT for the root collection, and the typed
// shape of the response.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/ast"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

// ErrNoColumns is returned by Select when the root has no plain or function
// fields to project.
var ErrNoColumns = errors.New("no columns to select")

// Column is one compiled function field. SQL uses "?" placeholders.
type Column struct {
	Key       string
	SQL       string
	Args      []any
	Temporary bool
}

// Columns compiles every function-field node in nodes against table. Other
// node kinds are skipped. Order follows nodes.
func Columns(nodes []ast.Child, table string, compiler dialect.FunctionCompiler) ([]Column, error) {
	var out []Column
	for _, n := range nodes {
		fn, ok := n.(*ast.FunctionField)
		if !ok {
			continue
		}
		frag, err := dialect.CompileDescriptor(compiler, table, fn.RelatedCollection(), fn.Descriptor())
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", fn.FieldKey(), err)
		}
		out = append(out, Column{
			Key:       fn.FieldKey(),
			SQL:       frag.SQL,
			Args:      frag.Args,
			Temporary: fn.Temporary(),
		})
	}
	return out, nil
}

// Statement is an executable query. SQL already uses the dialect's
// placeholder style.
type Statement struct {
	SQL  string
	Args []any
	// Keys lists the result columns in order.
	Keys []string
	// Temporary holds keys selected only for filtering; callers drop them
	// from the response.
	Temporary []string
}

// Select assembles a SELECT over the root collection projecting its plain
// and function fields:
//
//	SELECT "articles"."id", CAST(strftime('%Y', "articles"."created_at") AS INTEGER) AS "created_at_year" FROM "articles"
//
// Relational children are not joined.
func Select(root *ast.Root, compiler dialect.FunctionCompiler) (Statement, error) {
	d := compiler.Dialect()
	table := root.Name()
	children := root.Children()

	compiled, err := Columns(children, table, compiler)
	if err != nil {
		return Statement{}, err
	}
	byKey := make(map[string]Column, len(compiled))
	for _, c := range compiled {
		byKey[c.Key] = c
	}

	var (
		stmt  Statement
		exprs []string
	)
	for _, n := range children {
		switch t := n.(type) {
		case *ast.Field:
			expr := d.QuoteColumn(table, t.Name())
			if t.FieldKey() != t.Name() {
				expr += " AS " + d.QuoteIdentifier(t.FieldKey())
			}
			exprs = append(exprs, expr)
			stmt.Keys = append(stmt.Keys, t.FieldKey())
		case *ast.FunctionField:
			c := byKey[t.FieldKey()]
			exprs = append(exprs, c.SQL+" AS "+d.QuoteIdentifier(c.Key))
			stmt.Args = append(stmt.Args, c.Args...)
			stmt.Keys = append(stmt.Keys, c.Key)
			if c.Temporary {
				stmt.Temporary = append(stmt.Temporary, c.Key)
			}
		}
	}
	if len(exprs) == 0 {
		return Statement{}, fmt.Errorf("%w: %s", ErrNoColumns, table)
	}

	query := "SELECT " + strings.Join(exprs, ", ") + " FROM " + d.QuoteIdentifier(table)
	stmt.SQL = d.Rebind(query)
	return stmt, nil
}
