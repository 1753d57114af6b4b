package cli

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/frame"
	"github.com/ajitpratap0/tabular/pkg/logger"
)

// show prints t, or writes it as CSV through the configured backend when
// out is set.
func (a *app) show(ctx context.Context, t *frame.Table, out string) error {
	if out == "" {
		_, err := fmt.Fprint(a.out, t.Print(a.cfg.Print.FloatPrecision))
		return err
	}
	return t.WriteCSV(ctx, a.sink, out, a.cfg.CSV)
}

// fatal reports whether a diagnostic should fail the command. Missing
// columns do; shape and data diagnostics are only logged.
func fatal(err error) bool {
	return errors.IsType(err, errors.ErrorTypeNotFound)
}

func (a *app) printCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print <file>",
		Short: "Print a table",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.show(cmd.Context(), t, out)
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write CSV to this name instead of printing")
	return cmd
}

func (a *app) whereCommand() *cobra.Command {
	var (
		eq  []string
		out string
	)
	cmd := &cobra.Command{
		Use:   "where <file>",
		Short: "Keep rows whose columns equal the given values",
		Long: `Keep rows whose columns loosely equal the given values, so --eq rain=0
matches both 0 and "0". For CSV input values are coerced like CSV cells
("3rd" reads as 3). For JSON and Arrow input only whole numbers become
numbers and anything else is compared as text.

Example:
  tabular where weather.csv --eq temperature=12 --eq rain=0`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			format, _ := inputFormat(args[0])
			conditions, err := parseConditions(eq, a.cfg.CSV.Decimal, format)
			if err != nil {
				return err
			}
			t, err := a.loadTable(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), logger.OperationKey, "where")
			ctx = context.WithValue(ctx, logger.SourceKey, args[0])
			filtered, err := t.Where(conditions)
			if err != nil && fatal(err) {
				return err
			}
			logger.WithContext(ctx).Debug("filtered", zap.Int("rows", filtered.Length()))
			return a.show(ctx, filtered, out)
		}),
	}
	cmd.Flags().StringArrayVar(&eq, "eq", nil, "Condition column=value, repeatable")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write CSV to this name instead of printing")
	return cmd
}

// parseConditions turns column=value pairs into where conditions. The
// first '=' separates the column from the value. Values are coerced the
// way cells of the input format were: CSV cells keep their numeric prefix,
// JSON and Arrow cells are numbers only when they were written as numbers.
func parseConditions(pairs []string, decimal, format string) (map[string]frame.Cell, error) {
	coerce := frame.CoerceExact
	if format == formatCSV {
		coerce = frame.Coerce
	}
	conditions := make(map[string]frame.Cell, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrorTypeValidation, "condition %q is not column=value", p)
		}
		conditions[name] = coerce(value, decimal)
	}
	return conditions, nil
}

func (a *app) sortCommand() *cobra.Command {
	var (
		by   string
		desc bool
		out  string
	)
	cmd := &cobra.Command{
		Use:   "sort <file>",
		Short: "Sort rows by a column",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := t.SortBy(by, desc); err != nil && fatal(err) {
				return err
			}
			return a.show(cmd.Context(), t, out)
		}),
	}
	cmd.Flags().StringVar(&by, "by", "", "Column to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort in descending order")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write CSV to this name instead of printing")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

func (a *app) uniqueCommand() *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "unique <file>",
		Short: "List the distinct values of a column in order of appearance",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			values, err := t.UniqueValues(column)
			if err != nil {
				return err
			}
			for _, v := range values {
				if _, err := fmt.Fprintln(a.out, v); err != nil {
					return err
				}
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&column, "column", "", "Column name")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func (a *app) convertCommand() *cobra.Command {
	var to, out string
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a table to csv, json or arrow",
		Long: `Convert a table and write it through the configured backend.

Example:
  tabular convert weather.csv --to arrow --persist s3 --bucket reports --compression zstd`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(to)
			if !slices.Contains([]string{formatCSV, formatJSON, formatArrow}, format) {
				return errors.Newf(errors.ErrorTypeValidation, "unknown output format %q", to)
			}
			t, err := a.loadTable(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			content, err := a.encode(t, format)
			if err != nil {
				return err
			}
			name := out
			if name == "" {
				name = outputName(args[0], format)
			}
			if err := a.sink.Persist(cmd.Context(), frame.SuggestedFilename(name), content); err != nil {
				return errors.Wrap(err, errors.ErrorTypeFile, "failed to persist output").
					WithDetail("name", name)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&to, "to", formatCSV, "Output format (csv, json, arrow)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output name (default: input name with the new extension)")
	return cmd
}

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the shape and column names of a table",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			columns, rows := t.Size()
			fmt.Fprintf(a.out, "rows:    %d\n", t.Length())
			fmt.Fprintf(a.out, "size:    %d columns x %d rows\n", columns, rows)
			fmt.Fprintf(a.out, "columns: %s\n", strings.Join(t.Names(), ", "))
			return nil
		}),
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Show version information",
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tabular v%s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
