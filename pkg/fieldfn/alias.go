package fieldfn

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// SanitizeMode selects how JSON paths are folded into aliases.
type SanitizeMode int

const (
	// SanitizeStrict drops every character outside [A-Za-z0-9._[\]] before
	// folding. This is the documented alias contract.
	SanitizeStrict SanitizeMode = iota
	// SanitizeLegacy reproduces the historical expression, which only drops a
	// disallowed character when it is directly followed by "]". Aliases it
	// produces can collide more often; keep it for installations that persisted
	// those names.
	SanitizeLegacy
)

// String returns the mode name used in configuration.
func (m SanitizeMode) String() string {
	switch m {
	case SanitizeLegacy:
		return "legacy"
	default:
		return "strict"
	}
}

// ParseSanitizeMode parses a configuration value ("strict" or "legacy").
// The empty string selects SanitizeStrict.
func ParseSanitizeMode(s string) (SanitizeMode, error) {
	switch strings.ToLower(s) {
	case "", "strict":
		return SanitizeStrict, nil
	case "legacy":
		return SanitizeLegacy, nil
	default:
		return SanitizeStrict, fmt.Errorf("unknown alias sanitizer %q (expected strict or legacy)", s)
	}
}

var (
	strictDisallowed = regexp.MustCompile(`[^A-Za-z0-9._\[\]]`)
	legacyDisallowed = regexp.MustCompile(`(?i)[^a-z0-9\\.\[]\]`)
	nonAlnumRun      = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// Synthesizer derives canonical output aliases. The zero value uses
// SanitizeStrict.
type Synthesizer struct {
	Mode SanitizeMode
}

// ColumnName returns the canonical alias for d:
//
//	year(created_at)  -> created_at_year
//	json(data$.a.b)   -> json_data_a_b
func (s Synthesizer) ColumnName(d Descriptor) string {
	if d.Function != core.FuncJSON {
		return d.Field + "_" + string(d.Function)
	}
	return string(d.Function) + "_" + d.Field + s.sanitize(d.JSONPath)
}

func (s Synthesizer) sanitize(path string) string {
	if s.Mode == SanitizeLegacy {
		path = legacyDisallowed.ReplaceAllString(path, "")
	} else {
		path = strictDisallowed.ReplaceAllString(path, "")
	}
	path = nonAlnumRun.ReplaceAllString(path, "_")
	return strings.TrimSuffix(path, "_")
}

// ColumnName returns the canonical alias for d using SanitizeStrict.
func ColumnName(d Descriptor) string {
	return Synthesizer{}.ColumnName(d)
}

// ApplyToColumnName returns the alias a function token is exposed under, or
// the token itself when it is a plain field.
//
//	ApplyToColumnName("year(date_created)") // "date_created_year"
func ApplyToColumnName(token string) (string, error) {
	d, ok, err := Parse(token)
	if err != nil {
		return "", err
	}
	if !ok {
		return token, nil
	}
	return ColumnName(d), nil
}
