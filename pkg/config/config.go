package config

import (
	"golang.org/x/text/language"

	"github.com/ajitpratap0/tabular/pkg/compression"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/frame"
	"github.com/ajitpratap0/tabular/pkg/logger"
)

// Persist kinds.
const (
	PersistFile   = "file"
	PersistStdout = "stdout"
	PersistS3     = "s3"
	PersistGCS    = "gcs"
)

// Config is the top level configuration.
type Config struct {
	// CSV is the dialect used for reading and writing CSV text
	CSV frame.CSVOptions `yaml:"csv" json:"csv" toml:"csv"`

	Print PrintConfig `yaml:"print" json:"print" toml:"print"`

	// Locale is a BCP 47 tag used to collate text when sorting
	Locale string `yaml:"locale" json:"locale" toml:"locale"`

	// Logging configures the zap logger. The CLI picks console encoding on
	// a terminal and json otherwise when Encoding is empty.
	Logging logger.Config `yaml:"logging" json:"logging" toml:"logging"`

	Persist PersistConfig `yaml:"persist" json:"persist" toml:"persist"`

	Metrics MetricsConfig `yaml:"metrics" json:"metrics" toml:"metrics"`

	Tracing TracingConfig `yaml:"tracing" json:"tracing" toml:"tracing"`
}

// PrintConfig controls the text rendering of tables.
type PrintConfig struct {
	// FloatPrecision is the number of decimals for non-integer numbers
	FloatPrecision int `yaml:"float_precision" json:"float_precision" toml:"float_precision"`
}

// PersistConfig selects and configures the storage backend.
type PersistConfig struct {
	// Kind is one of file, stdout, s3, gcs
	Kind string `yaml:"kind" json:"kind" toml:"kind"`
	// Dir is the target directory for the file backend
	Dir string `yaml:"dir" json:"dir" toml:"dir"`
	// Bucket is the S3 or GCS bucket
	Bucket string `yaml:"bucket" json:"bucket" toml:"bucket"`
	// Prefix is prepended to object keys
	Prefix string `yaml:"prefix" json:"prefix" toml:"prefix"`
	// Region is the AWS region, empty for the SDK default chain
	Region string `yaml:"region" json:"region" toml:"region"`
	// CredentialsFile is a GCP service account file, empty for ADC
	CredentialsFile string `yaml:"credentials_file" json:"credentials_file" toml:"credentials_file"`
	// Compression is one of none, gzip, snappy, s2, lz4, zstd
	Compression string `yaml:"compression" json:"compression" toml:"compression"`
	// Async makes persistence fire-and-forget
	Async bool `yaml:"async" json:"async" toml:"async"`
}

// MetricsConfig toggles prometheus collection output.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`
}

// TracingConfig toggles OpenTelemetry tracing.
type TracingConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`
	// ServiceName is reported as the service.name resource attribute
	ServiceName string `yaml:"service_name" json:"service_name" toml:"service_name"`
}

// Default returns a configuration that writes comma separated files to the
// working directory.
func Default() *Config {
	return &Config{
		CSV: frame.CSVOptions{
			Delimiter: frame.DefaultDelimiter,
			Decimal:   frame.DefaultDecimal,
		},
		Print: PrintConfig{
			FloatPrecision: frame.DefaultFloatPrecision,
		},
		Locale: language.Und.String(),
		Logging: logger.Config{
			Level: "warn",
		},
		Persist: PersistConfig{
			Kind:        PersistFile,
			Dir:         ".",
			Compression: string(compression.None),
		},
		Tracing: TracingConfig{
			ServiceName: "tabular",
		},
	}
}

// Validate checks the configuration and returns a config error describing
// the first problem found.
func (c *Config) Validate() error {
	if c.CSV.Delimiter == "" {
		return errors.New(errors.ErrorTypeConfig, "csv.delimiter is required")
	}
	if c.CSV.Delimiter == "\r" || c.CSV.Delimiter == "\n" || c.CSV.Delimiter == frame.LineBreak {
		return errors.New(errors.ErrorTypeConfig, "csv.delimiter cannot be a line break").
			WithDetail("delimiter", c.CSV.Delimiter)
	}
	if c.Print.FloatPrecision < 0 {
		return errors.New(errors.ErrorTypeConfig, "print.float_precision cannot be negative")
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	if _, err := compression.Parse(c.Persist.Compression); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid persist.compression")
	}

	switch c.Persist.Kind {
	case PersistFile, PersistStdout:
	case PersistS3, PersistGCS:
		if c.Persist.Bucket == "" {
			return errors.Newf(errors.ErrorTypeConfig, "persist.bucket is required for %s", c.Persist.Kind)
		}
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown persist.kind %q", c.Persist.Kind)
	}
	return nil
}

// Language parses Locale. An empty locale is the root locale.
func (c *Config) Language() (language.Tag, error) {
	if c.Locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, errors.Wrap(err, errors.ErrorTypeConfig, "invalid locale").
			WithDetail("locale", c.Locale)
	}
	return tag, nil
}
