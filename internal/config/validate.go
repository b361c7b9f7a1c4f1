package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/adapter"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
)

// Validate checks the configuration. Adapter types are checked against the
// adapter registry, so adapter packages must be imported first.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(OutputModes, c.Output) {
		errs = append(errs, fmt.Errorf("output %q must be one of %s", c.Output, strings.Join(OutputModes, ", ")))
	}
	if _, err := fieldfn.ParseSanitizeMode(c.AliasSanitizer); err != nil {
		errs = append(errs, fmt.Errorf("alias_sanitizer: %w", err))
	}
	if c.Dialect != "" {
		if _, ok := core.ParseDialectKind(c.Dialect); !ok {
			errs = append(errs, fmt.Errorf("unknown dialect %q", c.Dialect))
		}
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative"))
	}
	if c.Target != nil {
		if err := validateTarget(c.Target); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateTarget(t *core.AdapterConfig) error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{Type: t.Type, Available: adapter.ListAdapters()}
	}
	return nil
}
