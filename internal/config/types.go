// Package config loads the fieldql CLI configuration.
//
// Values are layered with koanf, lowest to highest precedence: built-in
// defaults, fieldql.yaml, FIELDQL_* environment variables and explicitly
// set command-line flags.
package config

import "github.com/leapstack-labs/fieldql/pkg/core"

// Config holds all CLI configuration options.
type Config struct {
	// Dialect selects the SQL dialect. Empty falls back to Target.Type.
	Dialect string `koanf:"dialect"`
	// SchemaPath points at the YAML schema file, resolved against the
	// directory of the config file.
	SchemaPath     string `koanf:"schema"`
	AliasSanitizer string `koanf:"alias_sanitizer"` // strict or legacy
	Output         string `koanf:"output"`
	Verbose        bool   `koanf:"verbose"`
	MaxDepth       int    `koanf:"max_depth"`

	// Target is the database the query command executes against.
	Target *core.AdapterConfig `koanf:"target"`

	// ConfigFile is the file that was loaded, empty when none was found.
	ConfigFile string `koanf:"-"`
}

// DialectName returns the configured dialect, falling back to the target's
// adapter type.
func (c *Config) DialectName() string {
	if c.Dialect != "" {
		return c.Dialect
	}
	if c.Target != nil {
		return c.Target.Type
	}
	return ""
}
