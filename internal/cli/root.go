// Package cli implements the tabular command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ajitpratap0/tabular/pkg/config"
	"github.com/ajitpratap0/tabular/pkg/logger"
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/observability"
	"github.com/ajitpratap0/tabular/pkg/persist"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries what every command needs once flags, environment and the
// config file are resolved.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	cfg  *config.Config
	log  *zap.Logger
	sink *persist.Sink
}

// setting maps a viper key to its flag and to the field it overrides.
type setting struct {
	key   string
	flag  string
	apply func(v *viper.Viper, cfg *config.Config)
}

var settings = []setting{
	{"csv.delimiter", "delimiter", func(v *viper.Viper, c *config.Config) { c.CSV.Delimiter = v.GetString("csv.delimiter") }},
	{"csv.decimal", "decimal", func(v *viper.Viper, c *config.Config) { c.CSV.Decimal = v.GetString("csv.decimal") }},
	{"print.float_precision", "precision", func(v *viper.Viper, c *config.Config) { c.Print.FloatPrecision = v.GetInt("print.float_precision") }},
	{"locale", "locale", func(v *viper.Viper, c *config.Config) { c.Locale = v.GetString("locale") }},
	{"logging.level", "log-level", func(v *viper.Viper, c *config.Config) { c.Logging.Level = v.GetString("logging.level") }},
	{"logging.encoding", "log-encoding", func(v *viper.Viper, c *config.Config) { c.Logging.Encoding = v.GetString("logging.encoding") }},
	{"persist.kind", "persist", func(v *viper.Viper, c *config.Config) { c.Persist.Kind = v.GetString("persist.kind") }},
	{"persist.dir", "dir", func(v *viper.Viper, c *config.Config) { c.Persist.Dir = v.GetString("persist.dir") }},
	{"persist.bucket", "bucket", func(v *viper.Viper, c *config.Config) { c.Persist.Bucket = v.GetString("persist.bucket") }},
	{"persist.prefix", "prefix", func(v *viper.Viper, c *config.Config) { c.Persist.Prefix = v.GetString("persist.prefix") }},
	{"persist.region", "region", func(v *viper.Viper, c *config.Config) { c.Persist.Region = v.GetString("persist.region") }},
	{"persist.credentials_file", "credentials-file", func(v *viper.Viper, c *config.Config) {
		c.Persist.CredentialsFile = v.GetString("persist.credentials_file")
	}},
	{"persist.compression", "compression", func(v *viper.Viper, c *config.Config) { c.Persist.Compression = v.GetString("persist.compression") }},
	{"persist.async", "async", func(v *viper.Viper, c *config.Config) { c.Persist.Async = v.GetBool("persist.async") }},
	{"metrics.enabled", "metrics", func(v *viper.Viper, c *config.Config) { c.Metrics.Enabled = v.GetBool("metrics.enabled") }},
	{"tracing.enabled", "tracing", func(v *viper.Viper, c *config.Config) { c.Tracing.Enabled = v.GetBool("tracing.enabled") }},
}

// NewRootCommand builds the tabular command tree writing results to out
// and diagnostics to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "tabular",
		Short: "Inspect, filter, sort and convert CSV tables",
		Long: `tabular loads a CSV, JSON or Arrow table and filters, sorts, prints or converts it.

Settings come from flags, TABULAR_* environment variables and an optional
tabular.yaml config file, in that order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd.Context()) },
	}
	root.SetOut(out)
	root.SetErr(errOut)

	f := root.PersistentFlags()
	f.String("config", "", "Path to a YAML, TOML or JSON config file")
	f.String("delimiter", "", "CSV field delimiter (default \",\")")
	f.String("decimal", "", "Decimal mark used in CSV numbers (default \".\")")
	f.Int("precision", 0, "Decimals shown for non-integer numbers (default 2)")
	f.String("locale", "", "BCP 47 locale used to sort text")
	f.String("log-level", "", "Log level (debug, info, warn, error)")
	f.String("log-encoding", "", "Log encoding (console, json)")
	f.String("persist", "", "Output backend (file, stdout, s3, gcs)")
	f.String("dir", "", "Output directory for the file backend")
	f.String("bucket", "", "Bucket for the s3 and gcs backends")
	f.String("prefix", "", "Object key prefix for the s3 and gcs backends")
	f.String("region", "", "AWS region")
	f.String("credentials-file", "", "GCP service account file")
	f.String("compression", "", "Compress output (none, gzip, snappy, s2, lz4, zstd)")
	f.Bool("async", false, "Write output in the background")
	f.Bool("metrics", false, "Print collected metrics on exit")
	f.Bool("tracing", false, "Export trace spans to stderr")

	_ = a.v.BindPFlag("config", f.Lookup("config"))
	for _, s := range settings {
		_ = a.v.BindPFlag(s.key, f.Lookup(s.flag))
	}
	a.v.SetEnvPrefix("TABULAR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.printCommand(),
		a.whereCommand(),
		a.sortCommand(),
		a.uniqueCommand(),
		a.convertCommand(),
		a.infoCommand(),
		versionCommand(),
	)
	return root
}

// resolveConfig loads the config file, if any, and applies environment
// and flag overrides on top.
func (a *app) resolveConfig() (*config.Config, error) {
	cfg := config.Default()

	path := a.v.GetString("config")
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	for _, s := range settings {
		if a.v.IsSet(s.key) {
			s.apply(a.v, cfg)
		}
	}
	return cfg, cfg.Validate()
}

// findConfigFile looks for a tabular config file in the working directory.
func findConfigFile() string {
	for _, name := range []string{"tabular.yaml", "tabular.yml", "tabular.toml", "tabular.json"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := a.resolveConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.Logging
	if logCfg.Encoding == "" {
		logCfg.Encoding = "json"
		if term.IsTerminal(int(os.Stderr.Fd())) {
			logCfg.Encoding = "console"
		}
	}
	if err := logger.Init(logCfg); err != nil {
		return err
	}
	a.log = logger.Get()

	if cfg.Tracing.Enabled {
		if err := observability.Init(ctx, observability.TracingConfig{
			ServiceName:    cfg.Tracing.ServiceName,
			ServiceVersion: Version,
			SamplingRate:   1,
			Writer:         a.errOut,
		}); err != nil {
			return err
		}
	}

	a.sink, err = persist.New(ctx, cfg.Persist, a.out, a.log)
	if err != nil {
		// commands do not run, so teardown will not either
		if serr := observability.Shutdown(ctx); serr != nil {
			a.log.Warn("shutdown after failed setup", zap.Error(serr))
		}
		return err
	}
	return nil
}

// run wraps a command so that pending output is flushed and tracing is
// shut down even when the command fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if terr := a.teardown(cmd.Context()); err == nil {
				err = terr
			}
		}()
		return fn(cmd, args)
	}
}

func (a *app) teardown(ctx context.Context) error {
	var err error
	if a.sink != nil {
		err = a.sink.Close()
		a.sink = nil
	}
	if a.cfg != nil && a.cfg.Metrics.Enabled {
		a.printMetrics()
	}
	if serr := observability.Shutdown(ctx); serr != nil && err == nil {
		err = serr
	}
	return err
}

func (a *app) printMetrics() {
	samples, err := metrics.Snapshot()
	if err != nil {
		a.log.Warn("failed to gather metrics", zap.Error(err))
		return
	}
	for _, s := range samples {
		fmt.Fprintf(a.errOut, "%s%s %g\n", s.Name, formatLabels(s.Labels), s.Value)
	}
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, labels[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}
