package mssql

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

func init() {
	dialect.Register(MSSQL, func(env dialect.Env) dialect.FunctionCompiler {
		return NewCompiler(env)
	})
}

// Compiler compiles field functions for SQL Server.
type Compiler struct {
	env dialect.Env
}

// NewCompiler creates a SQL Server function compiler.
func NewCompiler(env dialect.Env) *Compiler {
	return &Compiler{env: env}
}

// Dialect returns the SQL Server dialect.
func (c *Compiler) Dialect() *dialect.Dialect {
	return MSSQL
}

// Compile implements dialect.FunctionCompiler.
func (c *Compiler) Compile(req dialect.Request) (dialect.Fragment, error) {
	return dialect.Compile(c, c.env, req)
}

// DatePart renders DATEPART(part, col).
func (c *Compiler) DatePart(fn core.FieldFunction, column string) (string, bool) {
	part, ok := MSSQL.DatePart(fn)
	if !ok {
		return "", false
	}
	return "DATEPART(" + part + ", " + column + ")", true
}

// JSONLength is not available.
func (c *Compiler) JSONLength(string) (string, bool) {
	return "", false
}

// JSONExtract renders COALESCE(JSON_QUERY(col, ?), JSON_VALUE(col, ?)).
// JSON_QUERY covers objects and arrays, JSON_VALUE covers scalars; each
// returns NULL for the other kind in lax mode.
func (c *Compiler) JSONExtract(column string) (string, bool) {
	return "COALESCE(JSON_QUERY(" + column + ", ?), JSON_VALUE(" + column + ", ?))", true
}
