package dialect

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
	"github.com/leapstack-labs/fieldql/pkg/schema"
)

// ErrInvalidRequest is returned for a Request without a table or column.
var ErrInvalidRequest = errors.New("invalid compile request")

// FunctionCompiler compiles one field function into a parameterized SQL
// fragment. Implementations are stateless apart from their Env and are safe
// for concurrent use.
type FunctionCompiler interface {
	Dialect() *Dialect
	Compile(req Request) (Fragment, error)
}

// Request is a single function application to compile.
type Request struct {
	Table    string
	Column   string
	Function core.FieldFunction
	Options  Options
}

// Options carries the per-call context a function may need.
type Options struct {
	JSONPath string // text after $, see fieldfn.Descriptor
	HasPath  bool
	// OriginalCollection is the collection the schema is consulted with when
	// Table is a query alias.
	OriginalCollection string
	Query              core.Query
}

// Collection returns the collection name used for schema lookups.
func (r Request) Collection() string {
	if r.Options.OriginalCollection != "" {
		return r.Options.OriginalCollection
	}
	return r.Table
}

// Fragment is compiled SQL. Placeholders are always "?"; see Rebind.
type Fragment struct {
	SQL  string
	Args []any
}

// Env holds the read-only collaborators a compiler consults.
type Env struct {
	Schema  schema.Lookup
	Counter RelationalCounter // nil selects SubqueryCounter over Schema
	Logger  *slog.Logger
}

func (e Env) counter() RelationalCounter {
	if e.Counter != nil {
		return e.Counter
	}
	return SubqueryCounter{Schema: e.Schema}
}

// Renderer is the dialect-specific half of a FunctionCompiler: it renders
// native SQL around an already quoted column reference. ok is false when
// the dialect has no such expression.
type Renderer interface {
	Dialect() *Dialect
	DatePart(fn core.FieldFunction, column string) (sql string, ok bool)
	JSONLength(column string) (sql string, ok bool)
	// JSONExtract renders an extraction; every "?" in it receives the path.
	JSONExtract(column string) (sql string, ok bool)
}

// Compile validates req, resolves count() against the schema and renders
// the fragment with r. Dialect packages call it from their Compile method.
func Compile(r Renderer, env Env, req Request) (Fragment, error) {
	d := r.Dialect()
	if req.Table == "" || req.Column == "" {
		return Fragment{}, fmt.Errorf("%w: table and column are required", ErrInvalidRequest)
	}

	var (
		frag Fragment
		err  error
	)
	switch {
	case req.Function.IsDatePart():
		frag, err = compileDatePart(r, req)
	case req.Function == core.FuncCount:
		frag, err = compileCount(r, env, req)
	case req.Function == core.FuncJSON:
		frag, err = compileJSON(r, env, req)
	default:
		return Fragment{}, &fieldfn.UnsupportedFunctionError{Name: string(req.Function)}
	}
	if err != nil {
		return Fragment{}, err
	}

	logger(env).Debug("compiled field function",
		slog.String("dialect", string(d.Name)),
		slog.String("table", req.Table),
		slog.String("column", req.Column),
		slog.String("function", string(req.Function)),
		slog.String("sql", frag.SQL))
	return frag, nil
}

func compileDatePart(r Renderer, req Request) (Fragment, error) {
	d := r.Dialect()
	if !d.Supports(CapDatePart) {
		return Fragment{}, unsupported(d, CapDatePart)
	}
	sql, ok := r.DatePart(req.Function, d.QuoteColumn(req.Table, req.Column))
	if !ok {
		return Fragment{}, unsupported(d, CapDatePart)
	}
	return Fragment{SQL: sql}, nil
}

func compileCount(r Renderer, env Env, req Request) (Fragment, error) {
	d := r.Dialect()
	var (
		typ core.Type
		ok  bool
	)
	if env.Schema != nil {
		typ, ok = env.Schema.FieldType(req.Collection(), req.Column)
	}
	if !ok {
		return Fragment{}, &fieldfn.TypeResolutionError{Table: req.Table, Column: req.Column}
	}

	switch typ {
	case core.TypeJSON:
		if !d.Supports(CapJSONCount) {
			return Fragment{}, unsupported(d, CapJSONCount)
		}
		sql, ok := r.JSONLength(d.QuoteColumn(req.Table, req.Column))
		if !ok {
			return Fragment{}, unsupported(d, CapJSONCount)
		}
		return Fragment{SQL: sql}, nil
	case core.TypeAlias:
		return env.counter().CountRelated(d, req)
	default:
		return Fragment{}, &fieldfn.TypeResolutionError{Table: req.Table, Column: req.Column, Type: typ, Function: core.FuncJSON}
	}
}

func compileJSON(r Renderer, env Env, req Request) (Fragment, error) {
	d := r.Dialect()
	if !req.Options.HasPath {
		return Fragment{}, &fieldfn.MissingJSONPathError{Token: "json(" + req.Column + ")"}
	}
	if !d.Supports(CapJSON) {
		return Fragment{}, unsupported(d, CapJSON)
	}
	var typ core.Type
	if env.Schema != nil {
		typ, _ = env.Schema.FieldType(req.Collection(), req.Column)
	}
	if typ != core.TypeJSON {
		return Fragment{}, &fieldfn.TypeResolutionError{Table: req.Table, Column: req.Column, Type: typ}
	}
	sql, ok := r.JSONExtract(d.QuoteColumn(req.Table, req.Column))
	if !ok {
		return Fragment{}, unsupported(d, CapJSON)
	}
	path := "$" + req.Options.JSONPath
	args := make([]any, countPlaceholders(sql))
	for i := range args {
		args[i] = path
	}
	return Fragment{SQL: sql, Args: args}, nil
}

func unsupported(d *Dialect, c Capability) error {
	return &fieldfn.UnsupportedDialectCapabilityError{Dialect: d.Name, Capability: string(c)}
}

func logger(env Env) *slog.Logger {
	if env.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return env.Logger
}

// CompileDescriptor is a convenience wrapper building a Request from a parsed
// function descriptor.
func CompileDescriptor(c FunctionCompiler, table, originalCollection string, d fieldfn.Descriptor) (Fragment, error) {
	return c.Compile(Request{
		Table:    table,
		Column:   d.Field,
		Function: d.Function,
		Options: Options{
			JSONPath:           d.JSONPath,
			HasPath:            d.HasPath,
			OriginalCollection: originalCollection,
		},
	})
}
