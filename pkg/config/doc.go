// Package config holds the configuration of the tabular tool.
//
// # Sections
//
//   - CSV: delimiter and decimal mark used when reading and writing CSV
//   - Print: float precision of the text rendering
//   - Locale: collation locale for sorting text columns
//   - Logging: zap logger settings, see package logger
//   - Persist: storage backend (file, stdout, s3, gcs), compression and
//     whether writes are fire-and-forget
//   - Metrics and Tracing: prometheus and OpenTelemetry switches
//
// # Loading
//
//	cfg, err := config.Load("tabular.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// YAML, TOML and JSON files are accepted. ${VAR_NAME} references are
// substituted from the environment before parsing:
//
//	# tabular.yaml
//	csv:
//	  delimiter: ";"
//	  decimal: ","
//	persist:
//	  kind: s3
//	  bucket: ${TABULAR_BUCKET}
//	  compression: zstd
package config
