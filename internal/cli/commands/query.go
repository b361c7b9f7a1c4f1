package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldql/internal/cli/output"
	"github.com/leapstack-labs/fieldql/pkg/adapter"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
	"github.com/leapstack-labs/fieldql/pkg/schema"
	"github.com/leapstack-labs/fieldql/pkg/selection"
)

// ErrNoTarget is returned by query when no database target is configured.
var ErrNoTarget = errors.New("no target configured: add a target section to fieldql.yaml")

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		qf         queryFlags
		introspect bool
	)

	cmd := &cobra.Command{
		Use:   "query <collection> [field]...",
		Short: "Execute a field selection against the configured target",
		Long: `Plan, compile and execute a field selection against the target
database and print the rows.

The SQL dialect follows the target's adapter. Temporary fields added for
filters are dropped from the result. With --introspect, column types are
read from the database and merged into the schema before planning.`,
		Example: `  fieldql query articles id title 'year(created_at)'
  fieldql query articles 'json(data$.meta.rating)' --introspect --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.parse(args[1:])
			if err != nil {
				return err
			}
			return runQuery(cmd, args[0], q, introspect)
		},
	}

	qf.register(cmd)
	cmd.Flags().BoolVar(&introspect, "introspect", false, "merge database column types into the schema")
	return cmd
}

func runQuery(cmd *cobra.Command, collection string, q core.Query, introspect bool) error {
	cmdCtx := NewCommandContext(cmd)
	if cmdCtx.Cfg.Target == nil {
		return ErrNoTarget
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	snap, err := cmdCtx.LoadSchema()
	if err != nil {
		return err
	}

	db, err := adapter.NewAdapter(*cmdCtx.Cfg.Target, cmdCtx.Logger)
	if err != nil {
		return err
	}
	if err := db.Connect(ctx, *cmdCtx.Cfg.Target); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cmdCtx.Cfg.Target.Type, err)
	}
	defer func() { _ = db.Close() }()

	if introspect {
		snap, err = mergeIntrospected(ctx, db, snap, collection)
		if err != nil {
			return err
		}
	}

	p, err := cmdCtx.Planner(snap)
	if err != nil {
		return err
	}
	root, err := p.Build(collection, q)
	if err != nil {
		return err
	}

	compiler, err := dialect.NewCompiler(db.Dialect().Name, dialect.Env{Schema: snap, Logger: cmdCtx.Logger})
	if err != nil {
		return err
	}
	stmt, err := selection.Select(root, compiler)
	if err != nil {
		return err
	}

	cmdCtx.Logger.Debug("executing query",
		slog.String("sql", stmt.SQL),
		slog.Int("args", len(stmt.Args)))

	rows, err := db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return err
	}
	res, err := adapter.Collect(rows)
	if err != nil {
		return err
	}
	res.Drop(stmt.Temporary...)

	return renderResult(cmdCtx.Renderer, res)
}

func mergeIntrospected(ctx context.Context, db adapter.Adapter, snap *schema.Snapshot, collection string) (*schema.Snapshot, error) {
	cols, err := adapter.Introspect(ctx, db, collection)
	if err != nil {
		return nil, err
	}
	return snap.Merge(cols...)
}

func renderResult(r *output.Renderer, res *adapter.Result) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(res.Maps())
	}

	if len(res.Rows) == 0 {
		r.Println("(0 rows)")
		return nil
	}
	rows := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = output.FormatValue(v)
		}
		rows[i] = cells
	}
	r.Table(res.Columns, rows)
	r.Printf("(%d rows)\n", len(res.Rows))
	return nil
}
