package duckdb

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB, func(env dialect.Env) dialect.FunctionCompiler {
		return NewCompiler(env)
	})
}

// Compiler compiles field functions for DuckDB.
type Compiler struct {
	env dialect.Env
}

// NewCompiler creates a DuckDB function compiler.
func NewCompiler(env dialect.Env) *Compiler {
	return &Compiler{env: env}
}

// Dialect returns the DuckDB dialect.
func (c *Compiler) Dialect() *dialect.Dialect {
	return DuckDB
}

// Compile implements dialect.FunctionCompiler.
func (c *Compiler) Compile(req dialect.Request) (dialect.Fragment, error) {
	return dialect.Compile(c, c.env, req)
}

// DatePart renders year(col), dayofweek(col), ...
func (c *Compiler) DatePart(fn core.FieldFunction, column string) (string, bool) {
	fnName, ok := DuckDB.DatePart(fn)
	if !ok {
		return "", false
	}
	return fnName + "(" + column + ")", true
}

// JSONLength renders json_array_length(col).
func (c *Compiler) JSONLength(column string) (string, bool) {
	return "json_array_length(" + column + ")", true
}

// JSONExtract renders json_extract(col, ?).
func (c *Compiler) JSONExtract(column string) (string, bool) {
	return "json_extract(" + column + ", ?)", true
}
