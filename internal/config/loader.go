package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// a config file.
const maxUpwardSearchLevels = 10

// Load reads configuration from defaults, the config file, environment
// variables and flags. cfgFile may be empty, in which case fieldql.yaml is
// searched for upward from the working directory. flags may be nil; only
// flags the user changed are applied.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path := cfgFile
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = findConfigFileUpward(cwd)
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment: FIELDQL_ALIAS_SANITIZER -> alias_sanitizer,
	// FIELDQL_TARGET_TYPE -> target.type
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ConfigFile = path
	if path != "" && !(flags != nil && flags.Changed("schema")) {
		cfg.SchemaPath = resolvePathRelativeTo(cfg.SchemaPath, filepath.Dir(path))
	}
	if cfg.Target != nil && cfg.Target.Path != "" && path != "" && cfg.Target.Path != ":memory:" {
		cfg.Target.Path = resolvePathRelativeTo(cfg.Target.Path, filepath.Dir(path))
	}
	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "target_"); ok {
		return "target." + rest
	}
	return key
}

// findConfigFileUpward searches startDir and its parents for fieldql.yaml
// or fieldql.yml. Returns "" when none is found.
func findConfigFileUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range []string{FileName, FileNameAlt} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves path against baseDir unless it is empty or
// absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
