package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/pkg/binder"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	"github.com/leapstack-labs/sqlbind/pkg/touch"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{Dialect: DefaultDialect, Concurrency: DefaultConcurrency}, cfg)
}

func TestLoad_File(t *testing.T) {
	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)
	t.Setenv("WAREHOUSE_DIR", dir)

	cfg, err := Load("testdata/sqlbind.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.Dialect)
	assert.Equal(t, filepath.Join(dir, "warehouse.yaml"), cfg.SchemaFile)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestLoad_RelativeSchemaFile(t *testing.T) {
	cfg, err := Load("testdata/relative.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, filepath.Join("testdata", "warehouse.yaml"), cfg.SchemaFile)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("SQLBIND_DIALECT", "tsql")
	t.Setenv("SQLBIND_CONCURRENCY", "8")

	t.Run("env overrides file", func(t *testing.T) {
		cfg, err := Load("testdata/relative.yaml", nil)
		require.NoError(t, err)
		assert.Equal(t, "tsql", cfg.Dialect)
		assert.Equal(t, 8, cfg.Concurrency)
	})

	t.Run("set flags override env", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		RegisterFlags(fs)
		require.NoError(t, fs.Parse([]string{"--dialect", "snowflake", "--debug"}))

		cfg, err := Load("testdata/relative.yaml", fs)
		require.NoError(t, err)
		assert.Equal(t, "snowflake", cfg.Dialect)
		assert.True(t, cfg.Debug)
		assert.Equal(t, 8, cfg.Concurrency, "unset flag must not reset the env value")
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown dialect", func(t *testing.T) {
		_, err := Load("testdata/bad_dialect.yaml", nil)
		require.Error(t, err)
		var de *binder.UnknownDialectError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "oracle", de.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("testdata/nope.yaml", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.yaml")
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{name: "valid", cfg: Config{Dialect: "postgres"}},
		{name: "empty dialect", cfg: Config{}, errSubstr: dialect.ErrDialectRequired.Error()},
		{name: "unknown dialect", cfg: Config{Dialect: "oracle"}, errSubstr: "unknown dialect"},
		{name: "negative concurrency", cfg: Config{Dialect: "ansi", Concurrency: -1}, errSubstr: "concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_NewInspector(t *testing.T) {
	cfg := &Config{
		Dialect:    "postgres",
		SchemaFile: filepath.Join("testdata", "warehouse.yaml"),
		Debug:      true,
	}
	var logs bytes.Buffer
	i, err := cfg.NewInspector(&logs)
	require.NoError(t, err)

	counts, err := i.InspectSQL("SELECT e.kind FROM events e JOIN users u ON e.user_id = u.id WHERE u.email = 'a@b.c'")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[touch.ValueKey("users", "email", "a@b.c")])
	assert.Contains(t, logs.String(), "binding done")
}

func TestLoad_NewInspectorFromFile(t *testing.T) {
	cfg, err := Load("testdata/relative.yaml", nil)
	require.NoError(t, err)

	i, err := cfg.NewInspector(nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", i.Dialect().Name)

	counts, err := i.InspectSQL("SELECT id FROM users WHERE LOWER(email) = 'a@b.c'")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[touch.TableKey("users")])
	assert.Equal(t, 1, counts[touch.ValueKey("users", "email", "a@b.c")])
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	(&Config{}).Logger(&buf).Debug("quiet")
	assert.Empty(t, buf.String())

	(&Config{Debug: true}).Logger(&buf).Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestConfig_LoadSchemaUnset(t *testing.T) {
	_, err := (&Config{Dialect: "ansi"}).LoadSchema()
	assert.Error(t, err)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SQLBIND_X_TEST", "value")
	assert.Equal(t, "a/value/b", expandEnvVars("a/${SQLBIND_X_TEST}/b"))
	assert.Equal(t, "${SQLBIND_UNSET_TEST}", expandEnvVars("${SQLBIND_UNSET_TEST}"))
}
