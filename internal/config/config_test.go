package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldql/pkg/adapter"
	"github.com/leapstack-labs/fieldql/pkg/core"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dialect", "", "")
	fs.String("schema", "", "")
	fs.String("output", "", "")
	fs.String("alias-sanitizer", "", "")
	fs.Bool("verbose", false, "")
	fs.Int("max-depth", 0, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultSchemaPath, cfg.SchemaPath)
	assert.Equal(t, DefaultAliasSanitizer, cfg.AliasSanitizer)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.ConfigFile)
	assert.Nil(t, cfg.Target)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
dialect: postgres
schema: models/blog.yaml
alias_sanitizer: legacy
max_depth: 3
target:
  type: sqlite
  path: blog.db
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, filepath.Join(dir, "models", "blog.yaml"), cfg.SchemaPath)
	assert.Equal(t, "legacy", cfg.AliasSanitizer)
	assert.Equal(t, 3, cfg.MaxDepth)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "sqlite", cfg.Target.Type)
	assert.Equal(t, filepath.Join(dir, "blog.db"), cfg.Target.Path)
}

func TestLoad_DiscoversFileUpward(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dialect: duckdb\n")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", cfg.Dialect)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.ConfigFile)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "dialect: postgres\noutput: text\n")

	t.Setenv("FIELDQL_DIALECT", "mysql")
	t.Setenv("FIELDQL_ALIAS_SANITIZER", "legacy")
	t.Setenv("FIELDQL_TARGET_TYPE", "duckdb")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--dialect", "sqlite", "--verbose"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dialect, "flag beats env")
	assert.Equal(t, "legacy", cfg.AliasSanitizer, "env beats default")
	assert.Equal(t, "text", cfg.Output, "file beats default")
	assert.True(t, cfg.Verbose)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "duckdb", cfg.Target.Type)
}

func TestLoad_SchemaFlagNotRebased(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "schema: blog.yaml\n")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--schema", "other.yaml"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", cfg.SchemaPath)
}

func TestLoad_BadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "dialect: [unterminated\n")
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestConfig_DialectName(t *testing.T) {
	assert.Equal(t, "postgres", (&Config{Dialect: "postgres", Target: &core.AdapterConfig{Type: "sqlite"}}).DialectName())
	assert.Equal(t, "sqlite", (&Config{Target: &core.AdapterConfig{Type: "sqlite"}}).DialectName())
	assert.Empty(t, (&Config{}).DialectName())
}

func TestConfig_Validate(t *testing.T) {
	adapter.Register("config_test_db", func(_ *slog.Logger) adapter.Adapter { return nil })

	valid := func() *Config {
		return &Config{Output: OutputAuto, AliasSanitizer: "strict"}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "registered target", mutate: func(c *Config) { c.Target = &core.AdapterConfig{Type: "config_test_db"} }},
		{name: "bad output", mutate: func(c *Config) { c.Output = "yaml" }, errMsg: `output "yaml"`},
		{name: "bad sanitizer", mutate: func(c *Config) { c.AliasSanitizer = "loose" }, errMsg: "alias_sanitizer"},
		{name: "bad dialect", mutate: func(c *Config) { c.Dialect = "oracle" }, errMsg: `unknown dialect "oracle"`},
		{name: "negative depth", mutate: func(c *Config) { c.MaxDepth = -1 }, errMsg: "max_depth"},
		{name: "target without type", mutate: func(c *Config) { c.Target = &core.AdapterConfig{} }, errMsg: "target type is required"},
		{name: "unknown target", mutate: func(c *Config) { c.Target = &core.AdapterConfig{Type: "oracle"} }, errMsg: "unknown adapter type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
