package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/fieldql/internal/cli/output"
	"github.com/leapstack-labs/fieldql/pkg/ast"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
	"github.com/leapstack-labs/fieldql/pkg/schema"
	"github.com/leapstack-labs/fieldql/pkg/selection"
)

// compiledStatement is the compile output for one dialect.
type compiledStatement struct {
	Dialect   string   `json:"dialect"`
	SQL       string   `json:"sql,omitempty"`
	Args      []any    `json:"args,omitempty"`
	Keys      []string `json:"keys,omitempty"`
	Temporary []string `json:"temporary,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	var (
		qf  queryFlags
		all bool
	)

	cmd := &cobra.Command{
		Use:   "compile <collection> [field]...",
		Short: "Compile a field selection into a SELECT statement",
		Long: `Plan a field selection against the schema and compile it into a
parameterized SELECT for the configured dialect.

Fields come from positional arguments and from the fields of --query.
Function fields are compiled into native SQL and exposed under their
canonical alias. Relational fields are planned but not joined.

With --all the statement is compiled for every dialect. Dialects that
cannot compile a function report an error instead of a statement.`,
		Example: `  fieldql compile articles id 'year(created_at)' 'json(data$.meta.rating)'
  fieldql compile articles --query '{"fields":"id,count(comments)"}' --dialect postgres
  fieldql compile articles 'count(tags)' --all --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.parse(args[1:])
			if err != nil {
				return err
			}
			return runCompile(cmd, args[0], q, all)
		},
	}

	qf.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "compile for every registered dialect")
	return cmd
}

func runCompile(cmd *cobra.Command, collection string, q core.Query, all bool) error {
	cmdCtx := NewCommandContext(cmd)

	var kinds []core.DialectKind
	if all {
		for _, name := range dialect.List() {
			kinds = append(kinds, core.DialectKind(name))
		}
	} else {
		d, err := dialect.Resolve(cmdCtx.Cfg.DialectName())
		if err != nil {
			return err
		}
		kinds = []core.DialectKind{d.Name}
	}

	root, snap, err := cmdCtx.buildTree(collection, q)
	if err != nil {
		return err
	}

	results := make([]compiledStatement, len(kinds))
	var g errgroup.Group
	for i, kind := range kinds {
		g.Go(func() error {
			stmt, err := compileFor(kind, root, snap, cmdCtx)
			if err != nil {
				if !all {
					return err
				}
				results[i] = compiledStatement{Dialect: string(kind), Error: err.Error()}
				return nil
			}
			results[i] = compiledStatement{
				Dialect:   string(kind),
				SQL:       stmt.SQL,
				Args:      stmt.Args,
				Keys:      stmt.Keys,
				Temporary: stmt.Temporary,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return renderCompiled(cmdCtx.Renderer, collection, results)
}

func compileFor(kind core.DialectKind, root *ast.Root, lookup schema.Lookup, cmdCtx *CommandContext) (selection.Statement, error) {
	compiler, err := dialect.NewCompiler(kind, dialect.Env{Schema: lookup, Logger: cmdCtx.Logger})
	if err != nil {
		return selection.Statement{}, err
	}
	return selection.Select(root, compiler)
}

func renderCompiled(r *output.Renderer, collection string, results []compiledStatement) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(results)
	case output.ModeMarkdown:
		r.Header(1, "Compiled SQL: "+collection)
		for _, s := range results {
			r.Println("")
			r.Header(2, s.Dialect)
			r.Println("")
			if s.Error != "" {
				r.Println(output.FormatKeyValue("error", s.Error))
				continue
			}
			r.Println(output.FormatCodeBlock("sql", s.SQL))
			r.Println("")
			if len(s.Args) > 0 {
				r.Println(output.FormatKeyValue("args", formatArgs(s.Args)))
			}
			r.Println(output.FormatKeyValue("keys", strings.Join(s.Keys, ", ")))
			if len(s.Temporary) > 0 {
				r.Println(output.FormatKeyValue("temporary", strings.Join(s.Temporary, ", ")))
			}
		}
	default:
		for i, s := range results {
			if len(results) > 1 {
				if i > 0 {
					r.Println("")
				}
				r.Header(2, s.Dialect)
			}
			if s.Error != "" {
				r.Println(r.Styles().Error.Render("error: " + s.Error))
				continue
			}
			r.Println(s.SQL)
			if len(s.Args) > 0 {
				r.Println(r.Muted("-- args: " + formatArgs(s.Args)))
			}
		}
	}
	return nil
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return strings.Join(parts, ", ")
}
