package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldql/internal/cli/output"
	"github.com/leapstack-labs/fieldql/internal/config"
	"github.com/leapstack-labs/fieldql/pkg/ast"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
	"github.com/leapstack-labs/fieldql/pkg/planner"
	"github.com/leapstack-labs/fieldql/pkg/schema"
)

type configKey struct{}

type loggerKey struct{}

// WithConfig stores the loaded configuration and logger in ctx.
func WithConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the command's context.
// Commands run without the root command get default configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	var cfg *config.Config
	if ctx := cmd.Context(); ctx != nil {
		cfg, _ = ctx.Value(configKey{}).(*config.Config)
	}
	if cfg == nil {
		cfg = &config.Config{
			SchemaPath:     config.DefaultSchemaPath,
			AliasSanitizer: config.DefaultAliasSanitizer,
			Output:         config.DefaultOutput,
		}
	}

	var logger *slog.Logger
	if ctx := cmd.Context(); ctx != nil {
		logger, _ = ctx.Value(loggerKey{}).(*slog.Logger)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// Synthesizer returns the alias synthesizer selected by alias_sanitizer.
func (c *CommandContext) Synthesizer() (fieldfn.Synthesizer, error) {
	mode, err := fieldfn.ParseSanitizeMode(c.Cfg.AliasSanitizer)
	if err != nil {
		return fieldfn.Synthesizer{}, err
	}
	return fieldfn.Synthesizer{Mode: mode}, nil
}

// LoadSchema reads the configured schema file.
func (c *CommandContext) LoadSchema() (*schema.Snapshot, error) {
	if _, err := os.Stat(c.Cfg.SchemaPath); err != nil {
		return nil, fmt.Errorf("schema file not found: %s (set schema in %s or pass --schema)", c.Cfg.SchemaPath, config.FileName)
	}
	return schema.Load(c.Cfg.SchemaPath)
}

// Planner creates a planner over lookup configured from c.
func (c *CommandContext) Planner(lookup schema.Lookup) (*planner.Planner, error) {
	synth, err := c.Synthesizer()
	if err != nil {
		return nil, err
	}
	return planner.New(lookup,
		planner.WithLogger(c.Logger),
		planner.WithSynthesizer(synth),
		planner.WithMaxDepth(c.Cfg.MaxDepth),
		planner.WithObserver(func(e planner.Event) {
			c.Logger.Debug("resolved function field",
				slog.String("path", e.Path),
				slog.String("token", e.Resolution.Token),
				slog.String("key", e.FieldKey),
				slog.Bool("temporary", e.Temporary))
		}),
	), nil
}

// queryFlags are shared by commands that build a query tree.
type queryFlags struct {
	query string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", `query parameters as JSON, e.g. '{"fields":"id,year(created_at)","alias":{"t":"title"}}'`)
}

// parse decodes --query and appends positional field tokens.
func (f *queryFlags) parse(fields []string) (core.Query, error) {
	var q core.Query
	if f.query != "" {
		var raw map[string]any
		if err := json.Unmarshal([]byte(f.query), &raw); err != nil {
			return core.Query{}, fmt.Errorf("invalid --query JSON: %w", err)
		}
		decoded, err := planner.DecodeQuery(raw)
		if err != nil {
			return core.Query{}, err
		}
		q = decoded
	}
	q.Fields = append(q.Fields, fields...)
	return q, nil
}

// buildTree loads the schema and plans q against collection.
func (c *CommandContext) buildTree(collection string, q core.Query) (*ast.Root, *schema.Snapshot, error) {
	snap, err := c.LoadSchema()
	if err != nil {
		return nil, nil, err
	}
	p, err := c.Planner(snap)
	if err != nil {
		return nil, nil, err
	}
	root, err := p.Build(collection, q)
	if err != nil {
		return nil, nil, err
	}
	return root, snap, nil
}
