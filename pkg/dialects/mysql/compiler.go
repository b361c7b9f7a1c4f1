package mysql

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

func init() {
	dialect.Register(MySQL, func(env dialect.Env) dialect.FunctionCompiler {
		return NewCompiler(env)
	})
}

// Compiler compiles field functions for MySQL.
type Compiler struct {
	env dialect.Env
}

// NewCompiler creates a MySQL function compiler.
func NewCompiler(env dialect.Env) *Compiler {
	return &Compiler{env: env}
}

// Dialect returns the MySQL dialect.
func (c *Compiler) Dialect() *dialect.Dialect {
	return MySQL
}

// Compile implements dialect.FunctionCompiler.
func (c *Compiler) Compile(req dialect.Request) (dialect.Fragment, error) {
	return dialect.Compile(c, c.env, req)
}

// DatePart renders YEAR(col), DAYOFWEEK(col), ...
func (c *Compiler) DatePart(fn core.FieldFunction, column string) (string, bool) {
	fnName, ok := MySQL.DatePart(fn)
	if !ok {
		return "", false
	}
	return fnName + "(" + column + ")", true
}

// JSONLength renders JSON_LENGTH(col).
func (c *Compiler) JSONLength(column string) (string, bool) {
	return "JSON_LENGTH(" + column + ")", true
}

// JSONExtract renders JSON_EXTRACT(col, ?).
func (c *Compiler) JSONExtract(column string) (string, bool) {
	return "JSON_EXTRACT(" + column + ", ?)", true
}
