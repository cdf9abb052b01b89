package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vegasq/csvcat/internal/dataset"
	"github.com/vegasq/csvcat/internal/logger"
	"github.com/vegasq/csvcat/internal/output"
	"github.com/vegasq/csvcat/internal/query"
	"github.com/vegasq/csvcat/internal/reader"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	where     string
	aggregate string
	format    string
	limit     int
	delimiter string
	maxWidth  int
	schema    bool
	verbose   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet("csvcat", flag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.StringVar(&opts.where, "where", "", "Filter condition (e.g., \"price>100\", \"brand=apple\", \"rating<4.5\")")
	flags.StringVar(&opts.aggregate, "aggregate", "", "Aggregation (e.g., \"price=avg\", \"rating=min\", \"price=max\")")
	flags.StringVar(&opts.format, "f", "table", "Output format: "+strings.Join(output.Formats, ", "))
	flags.IntVar(&opts.limit, "limit", 0, "Show at most this many filtered rows (0 = unlimited)")
	flags.StringVar(&opts.delimiter, "delimiter", ",", "CSV field delimiter")
	flags.IntVar(&opts.maxWidth, "max-width", 0, "Truncate table cells to this many columns (0 = off)")
	flags.BoolVar(&opts.schema, "schema", false, "List the columns with their inferred types instead of querying")
	flags.BoolVar(&opts.verbose, "v", false, "Log debug diagnostics to stderr")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: csvcat [options] <file.csv>\n\n")
		fmt.Fprintf(stderr, "Filter or aggregate a CSV file and print the result as a table.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  csvcat --where \"price>500\" phones.csv\n")
		fmt.Fprintf(stderr, "  csvcat --where \"brand=xiaomi\" -f csv phones.csv\n")
		fmt.Fprintf(stderr, "  csvcat --aggregate \"rating=avg\" phones.csv.gz\n")
		fmt.Fprintf(stderr, "  csvcat -schema phones.parquet\n")
	}
	return flags
}

// parseArgs parses flags placed before or after the file argument.
func parseArgs(flags *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			return nil, err
		}
		rest := flags.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	flags := newFlagSet(&opts, stderr)

	positional, err := parseArgs(flags, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	usageError := func(format string, a ...interface{}) int {
		fmt.Fprintf(stderr, "Error: "+format+"\n\n", a...)
		flags.Usage()
		return exitUsage
	}

	// Validate flag values
	if opts.limit < 0 {
		return usageError("-limit must be non-negative, got %d", opts.limit)
	}
	if opts.maxWidth < 0 {
		return usageError("-max-width must be non-negative, got %d", opts.maxWidth)
	}
	if utf8.RuneCountInString(opts.delimiter) != 1 {
		return usageError("-delimiter must be a single character, got %q", opts.delimiter)
	}

	// Validate flag combinations
	if opts.where != "" && opts.aggregate != "" {
		return usageError("cannot use both --where and --aggregate")
	}
	if opts.schema && (opts.where != "" || opts.aggregate != "") {
		return usageError("-schema cannot be combined with --where or --aggregate")
	}
	if opts.where == "" && opts.aggregate == "" && !opts.schema {
		return usageError("must specify either --where or --aggregate (or -schema)")
	}

	switch len(positional) {
	case 0:
		return usageError("missing CSV file argument")
	case 1:
	default:
		return usageError("expected one file argument, got %d", len(positional))
	}
	filename := positional[0]

	var buf bytes.Buffer
	formatter, err := output.New(opts.format, &buf)
	if err != nil {
		return usageError("%v", err)
	}
	if tf, ok := formatter.(*output.TableFormatter); ok {
		tf.MaxWidth = opts.maxWidth
	}
	tableMode := isTableFormat(opts.format)

	logConfig := logger.LoadConfig()
	logConfig.Writer = stderr
	if opts.verbose {
		logConfig.Level = slog.LevelDebug
	}
	log := logger.NewLogger(logConfig)

	// Parse the expression before touching the file
	var (
		cond *query.Condition
		spec *query.AggregateSpec
	)
	if opts.where != "" {
		cond, err = query.ParseCondition(opts.where)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			fmt.Fprintf(stderr, "Condition format: column>value, column<value, column=value\n")
			return exitError
		}
	} else if opts.aggregate != "" {
		spec, err = query.ParseAggregate(opts.aggregate)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			fmt.Fprintf(stderr, "Aggregate format: column=avg, column=min, column=max\n")
			return exitError
		}
	}

	delim, _ := utf8.DecodeRuneInString(opts.delimiter)
	ds, err := reader.ReadFile(filename, reader.Options{Delimiter: delim})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "Please check the file path and try again.\n")
		}
		return exitError
	}
	log.Debug("loaded dataset", "path", filename, "rows", ds.Len(), "columns", len(ds.Headers))

	switch {
	case opts.schema:
		err = renderSchema(&buf, formatter, tableMode, ds)
	case cond != nil:
		warnMissingColumn(log, ds, cond.Column)
		err = renderFilter(&buf, formatter, tableMode, ds, cond, opts.limit)
	default:
		warnMissingColumn(log, ds, spec.Column)
		var result *query.Result
		result, err = query.Aggregate(ds, spec)
		if err == nil {
			if result.Skipped > 0 {
				log.Debug("skipped non-numeric cells", "column", result.Column, "skipped", result.Skipped, "used", result.Count)
			}
			err = renderAggregate(&buf, formatter, tableMode, result)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if _, err := buf.WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return exitError
	}
	return exitOK
}

func isTableFormat(name string) bool {
	name = strings.ToLower(name)
	return name == "" || name == "table"
}

func warnMissingColumn(log *slog.Logger, ds *dataset.Dataset, column string) {
	if ds.HasColumn(column) {
		return
	}
	log.Warn("column not found in file header", "column", column, "available", strings.Join(ds.Headers, ", "))
}

// renderFilter writes the filtered rows. Table mode adds the summary lines.
func renderFilter(w io.Writer, formatter output.Formatter, tableMode bool, ds *dataset.Dataset, cond *query.Condition, limit int) error {
	filtered := query.ApplyFilter(ds, cond)
	found := filtered.Len()

	if limit > 0 && found > limit {
		filtered = filtered.Derive(filtered.Rows[:limit])
	}

	if tableMode {
		fmt.Fprintf(w, "Filtered results for: %s\n", cond)
		fmt.Fprintf(w, "Found %d records:\n", found)
		if filtered.Len() < found {
			fmt.Fprintf(w, "Showing first %d.\n", filtered.Len())
		}
		fmt.Fprintln(w)
	}

	return formatter.Format(output.FromDataset(filtered))
}

// renderSchema writes one line per column of the loaded file.
func renderSchema(w io.Writer, formatter output.Formatter, tableMode bool, ds *dataset.Dataset) error {
	infos := reader.Describe(ds)

	if tableMode {
		fmt.Fprintf(w, "Found %d columns, %d rows:\n\n", len(infos), ds.Len())
	}

	table := &output.Table{Headers: []string{"name", "type", "values", "numeric", "distinct"}}
	for _, info := range infos {
		table.Rows = append(table.Rows, []string{
			info.Name,
			info.Type,
			strconv.Itoa(info.Values),
			strconv.Itoa(info.Numeric),
			strconv.Itoa(info.Distinct),
		})
	}
	return formatter.Format(table)
}

// renderAggregate writes the aggregation result. Table mode shows a
// Metric/Value grid, the other formats a single record.
func renderAggregate(w io.Writer, formatter output.Formatter, tableMode bool, result *query.Result) error {
	if tableMode {
		fmt.Fprintf(w, "Aggregation results:\n\n")
		return formatter.Format(&output.Table{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Operation", result.Operation.Label()},
				{"Column", result.Column},
				{"Value", result.FormattedValue()},
			},
		})
	}

	return formatter.Format(&output.Table{
		Headers: []string{"operation", "column", "value", "count"},
		Rows: [][]string{
			{result.Operation.String(), result.Column, result.FormattedValue(), strconv.Itoa(result.Count)},
		},
	})
}
