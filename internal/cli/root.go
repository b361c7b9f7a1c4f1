// Package cli provides the command-line interface for fieldql.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldql/internal/cli/commands"
	"github.com/leapstack-labs/fieldql/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "fieldql",
		Short: "fieldql - field functions and query plans for SQL collections",
		Long: `fieldql resolves field selections such as year(created_at),
count(comments) or json(data$.meta.rating) against a collection schema,
builds the query tree and compiles function fields into native SQL for
MySQL, PostgreSQL, SQLite, DuckDB and SQL Server.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := newLogger(cmd, cfg)
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", slog.String("path", cfg.ConfigFile))
			}
			logger.Debug("command started", slog.String("command", cmd.CommandPath()))

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./fieldql.yaml, searched upward)")
	flags.String("dialect", "", "SQL dialect (mysql|postgres|sqlite|duckdb|mssql)")
	flags.String("schema", "", "path to the YAML schema file")
	flags.String("alias-sanitizer", "", "JSON path alias sanitizer (strict|legacy)")
	flags.Int("max-depth", 0, "maximum relation nesting depth (0 for unlimited)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringP("output", "o", "", "output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputModes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("alias-sanitizer", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"strict", "legacy"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewCompileCommand())
	rootCmd.AddCommand(commands.NewPlanCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())

	return rootCmd
}

// newLogger builds the stderr logger. Every invocation gets a request id so
// log lines from concurrent runs can be told apart.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("request_id", uuid.NewString()))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
