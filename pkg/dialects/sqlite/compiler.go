package sqlite

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

func init() {
	dialect.Register(SQLite, func(env dialect.Env) dialect.FunctionCompiler {
		return NewCompiler(env)
	})
}

// Compiler compiles field functions for SQLite.
type Compiler struct {
	env dialect.Env
}

// NewCompiler creates a SQLite function compiler.
func NewCompiler(env dialect.Env) *Compiler {
	return &Compiler{env: env}
}

// Dialect returns the SQLite dialect.
func (c *Compiler) Dialect() *dialect.Dialect {
	return SQLite
}

// Compile implements dialect.FunctionCompiler.
func (c *Compiler) Compile(req dialect.Request) (dialect.Fragment, error) {
	return dialect.Compile(c, c.env, req)
}

// DatePart renders CAST(strftime('%Y', col) AS INTEGER). strftime returns
// text, the cast keeps the result an integer like the other dialects.
func (c *Compiler) DatePart(fn core.FieldFunction, column string) (string, bool) {
	format, ok := SQLite.DatePart(fn)
	if !ok {
		return "", false
	}
	return "CAST(strftime('" + format + "', " + column + ") AS INTEGER)", true
}

// JSONLength renders json_array_length(col).
func (c *Compiler) JSONLength(column string) (string, bool) {
	return "json_array_length(" + column + ")", true
}

// JSONExtract renders json_extract(col, ?).
func (c *Compiler) JSONExtract(column string) (string, bool) {
	return "json_extract(" + column + ", ?)", true
}
