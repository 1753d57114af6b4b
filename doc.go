// Package tabular is a small in-memory table library and command line tool
// for CSV data.
//
// A table is a list of column names and rows of cells. Each cell holds a
// number or a string; NaN marks a missing value. Tables load from CSV, JSON
// and Apache Arrow, and support column access, equality filtering, stable
// sorting and a fixed-width text rendering.
//
// # Packages
//
//   - pkg/frame: the table, CSV and JSON codecs, Where, SortBy and Print
//   - pkg/columnar: Arrow schema inference and IPC files
//   - pkg/persist: storage backends (local file, stdout, S3, GCS) with
//     compression, background writes and instrumentation
//   - pkg/compression: gzip, snappy, s2, lz4 and zstd streams
//   - pkg/config: YAML, TOML or JSON configuration
//   - pkg/logger, pkg/errors, pkg/metrics, pkg/observability: zap logging,
//     structured errors, prometheus counters and OpenTelemetry tracing
//   - cmd/tabular: the command line
//
// # Quick Start
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/ajitpratap0/tabular/pkg/frame"
//	    "github.com/ajitpratap0/tabular/pkg/persist"
//	)
//
//	func main() {
//	    t, err := frame.FromCSV("day,rain\r\n0,20\r\n1,4.5\r\n", frame.CSVOptions{})
//	    if err != nil {
//	        // rows of the wrong width; t is still usable
//	    }
//
//	    dry, _ := t.Where(map[string]frame.Cell{"rain": frame.Number(4.5)})
//	    fmt.Print(dry)
//
//	    _ = t.SortBy("rain", true)
//	    _ = t.WriteCSV(context.Background(), persist.NewFile("out"), "rain.csv", frame.CSVOptions{Delimiter: ";"})
//	}
//
// # Command Line
//
//	go build -o bin/tabular ./cmd/tabular
//	./bin/tabular print weather.csv
//	./bin/tabular where weather.csv --eq temperature=12
//	./bin/tabular sort weather.csv --by rain --desc --out sorted.csv
//	./bin/tabular convert weather.csv --to arrow --persist s3 --bucket reports --compression zstd
package tabular
