package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	tag, err := cfg.Language()
	require.NoError(t, err)
	assert.Equal(t, language.Und, tag)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty delimiter", func(c *Config) { c.CSV.Delimiter = "" }},
		{"line break delimiter", func(c *Config) { c.CSV.Delimiter = "\n" }},
		{"negative precision", func(c *Config) { c.Print.FloatPrecision = -1 }},
		{"bad locale", func(c *Config) { c.Locale = "not a locale!" }},
		{"bad compression", func(c *Config) { c.Persist.Compression = "rar" }},
		{"unknown kind", func(c *Config) { c.Persist.Kind = "ftp" }},
		{"s3 without bucket", func(c *Config) { c.Persist.Kind = PersistS3 }},
		{"gcs without bucket", func(c *Config) { c.Persist.Kind = PersistGCS }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig), "got %v", err)
		})
	}
}

func TestLanguage(t *testing.T) {
	cfg := Default()
	cfg.Locale = "sv"
	tag, err := cfg.Language()
	require.NoError(t, err)
	assert.Equal(t, language.Swedish, tag)
}

func TestLoadYAMLWithEnv(t *testing.T) {
	t.Setenv("TABULAR_TEST_BUCKET", "my-bucket")

	path := filepath.Join(t.TempDir(), "tabular.yaml")
	content := `
csv:
  delimiter: ";"
  decimal: ","
locale: de
persist:
  kind: s3
  bucket: ${TABULAR_TEST_BUCKET}
  prefix: exports/
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, ",", cfg.CSV.Decimal)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, PersistS3, cfg.Persist.Kind)
	assert.Equal(t, "my-bucket", cfg.Persist.Bucket)
	assert.Equal(t, "exports/", cfg.Persist.Prefix)

	// untouched sections keep their defaults
	assert.Equal(t, 2, cfg.Print.FloatPrecision)
	assert.Equal(t, "none", cfg.Persist.Compression)
	require.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabular.toml")
	content := `
locale = "sv"

[print]
float_precision = 4

[persist]
kind = "stdout"
compression = "lz4"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sv", cfg.Locale)
	assert.Equal(t, 4, cfg.Print.FloatPrecision)
	assert.Equal(t, PersistStdout, cfg.Persist.Kind)
	assert.Equal(t, "lz4", cfg.Persist.Compression)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabular.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"csv": {"delimiter": "|"}, "tracing": {"enabled": true}}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "|", cfg.CSV.Delimiter)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "tabular", cfg.Tracing.ServiceName)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("csv: [unterminated"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
	path2, ok := errors.Detail(err, "path")
	assert.True(t, ok)
	assert.Equal(t, path, path2)
}

func TestSaveAndLoad(t *testing.T) {
	cfg := Default()
	cfg.CSV.Delimiter = "\t"
	cfg.Persist.Async = true
	cfg.Logging.OutputPaths = []string{"stderr"}

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("TABULAR_A", "alpha")
	t.Setenv("TABULAR_B", "beta")

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"${TABULAR_A}", "alpha"},
		{"x-${TABULAR_A}-${TABULAR_B}-y", "x-alpha-beta-y"},
		{"${TABULAR_UNSET_VARIABLE}!", "!"},
		{"open ${TABULAR_A", "open ${TABULAR_A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, substituteEnvVars(tt.in), tt.in)
	}
}
