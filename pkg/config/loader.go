package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Default configuration values.
const (
	DefaultDialect     = "ansi"
	DefaultConcurrency = 0

	// EnvPrefix prefixes environment overrides: SQLBIND_SCHEMA_FILE -> schema_file.
	EnvPrefix = "SQLBIND_"
)

// ConfigFileNames are looked up, in order, by FindConfigFile.
var ConfigFileNames = []string{"sqlbind.yaml", "sqlbind.yml"}

// RegisterFlags adds the overridable settings to fs. Flag names are the
// config keys in kebab case.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("dialect", DefaultDialect, "SQL dialect queries are bound in")
	fs.String("schema-file", "", "YAML file with the schema tables")
	fs.Bool("debug", false, "log binding decisions")
	fs.Int("concurrency", DefaultConcurrency, "queries bound at once by batch inspection (0: one per CPU)")
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), SQLBIND_* environment variables and the flags in fs that
// were explicitly set (fs may be nil). A relative schema_file from the
// file is resolved against the file's directory.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"dialect":     DefaultDialect,
		"schema_file": "",
		"debug":       false,
		"concurrency": DefaultConcurrency,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		if sf := k.String("schema_file"); sf != "" {
			resolved := resolvePathRelativeTo(expandEnvVars(sf), filepath.Dir(path))
			if err := k.Set("schema_file", resolved); err != nil {
				return nil, err
			}
		}
	}

	// 3. Environment: SQLBIND_SCHEMA_FILE -> schema_file
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if fs != nil {
		if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Dialect = strings.ToLower(cfg.Dialect)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfigFile returns the first of ConfigFileNames present in dir, or
// "" when there is none.
func FindConfigFile(dir string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// resolvePathRelativeTo resolves p against base unless p is absolute.
func resolvePathRelativeTo(p, base string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns, leaving unset variables as is.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}
