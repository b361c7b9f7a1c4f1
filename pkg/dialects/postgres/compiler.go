package postgres

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

func init() {
	dialect.Register(Postgres, func(env dialect.Env) dialect.FunctionCompiler {
		return NewCompiler(env)
	})
}

// Compiler compiles field functions for PostgreSQL.
//
// JSON columns may be declared json or jsonb, so both JSON expressions cast
// to jsonb first.
type Compiler struct {
	env dialect.Env
}

// NewCompiler creates a PostgreSQL function compiler.
func NewCompiler(env dialect.Env) *Compiler {
	return &Compiler{env: env}
}

// Dialect returns the PostgreSQL dialect.
func (c *Compiler) Dialect() *dialect.Dialect {
	return Postgres
}

// Compile implements dialect.FunctionCompiler.
func (c *Compiler) Compile(req dialect.Request) (dialect.Fragment, error) {
	return dialect.Compile(c, c.env, req)
}

// DatePart renders EXTRACT(FIELD FROM col).
func (c *Compiler) DatePart(fn core.FieldFunction, column string) (string, bool) {
	field, ok := Postgres.DatePart(fn)
	if !ok {
		return "", false
	}
	return "EXTRACT(" + field + " FROM " + column + ")", true
}

// JSONLength renders jsonb_array_length(col::jsonb).
func (c *Compiler) JSONLength(column string) (string, bool) {
	return "jsonb_array_length(" + column + "::jsonb)", true
}

// JSONExtract renders jsonb_path_query_first(col::jsonb, ?::jsonpath).
func (c *Compiler) JSONExtract(column string) (string, bool) {
	return "jsonb_path_query_first(" + column + "::jsonb, ?::jsonpath)", true
}
