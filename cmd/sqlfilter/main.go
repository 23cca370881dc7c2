package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/sqlexpr/expr"
	"github.com/vegasq/sqlexpr/output"
	"github.com/vegasq/sqlexpr/reader"
)

var (
	queryFlag   = flag.String("q", "", "Filter predicate (e.g., \"age > 30 AND name LIKE 'A%'\")")
	formatFlag  = flag.String("f", "jsonl", "Output format: jsonl, csv, table")
	varsFlag    = flag.String("vars", "", "YAML file of variable bindings; evaluates the predicate once")
	dumpFlag    = flag.Bool("dump", false, "Print the parsed expression tree and exit")
	limitFlag   = flag.Int("limit", 0, "Limit number of output rows (0 = unlimited)")
	columnsFlag = flag.Bool("columns", false, "Show column names and types instead of data")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.parquet>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Filter parquet rows with SQL-style boolean predicates.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -q \"age > 30\" data.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q \"status IN ('open', 'pending')\" -f table 'data/*.parquet'\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q \"age >= 21 AND email IS NOT NULL\" -vars bindings.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q \"a = 1 OR b = 2 AND c = 3\" -dump\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -columns data.parquet\n", os.Args[0])
	}

	flag.Parse()

	if *limitFlag < 0 {
		fatal("Error: -limit must be non-negative, got %d", *limitFlag)
	}

	if *columnsFlag {
		if flag.NArg() < 1 {
			fmt.Fprintf(os.Stderr, "Error: missing parquet file argument\n\n")
			flag.Usage()
			os.Exit(1)
		}
		showColumns(flag.Arg(0), *formatFlag)
		return
	}

	if *queryFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: -q is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	root, err := expr.Parse(*queryFlag)
	if err != nil {
		fatal("Error: %v", err)
	}

	if *dumpFlag {
		expr.Dump(os.Stdout, root)
		return
	}

	if *varsFlag != "" {
		evaluateOnce(*queryFlag, *varsFlag)
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing parquet file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}

	filterFile(*queryFlag, flag.Arg(0), *formatFlag, *limitFlag)
}

// filterFile reads pattern (a path or glob), keeps the rows for which the
// predicate holds, and prints them in the requested format.
func filterFile(predicate, pattern, format string, limit int) {
	rows, err := reader.ReadGlob(pattern)
	if err != nil {
		if os.IsNotExist(err) {
			fatal("Error: file '%s' not found", pattern)
		}
		fatal("Error: %v", err)
	}

	var kept []map[string]interface{}
	for _, row := range rows {
		ok, err := expr.Evaluate(predicate, expr.BindingsFromRow(row))
		if err != nil {
			fatal("Error evaluating predicate: %v", err)
		}
		if ok {
			kept = append(kept, row)
			if limit > 0 && len(kept) >= limit {
				break
			}
		}
	}

	writeRows(kept, format)
}

// evaluateOnce loads a YAML map of bindings and evaluates the predicate
// against it, printing true or false.
func evaluateOnce(predicate, varsPath string) {
	raw, err := os.ReadFile(varsPath)
	if err != nil {
		fatal("Error reading bindings file: %v", err)
	}

	bindings := make(map[string]interface{})
	if err := yaml.Unmarshal(raw, &bindings); err != nil {
		fatal("Error parsing bindings file: %v", err)
	}

	result, err := expr.Evaluate(predicate, expr.BindingsFromRow(bindings))
	if err != nil {
		fatal("Error evaluating predicate: %v", err)
	}

	fmt.Println(result)
	if !result {
		os.Exit(1)
	}
}

// showColumns prints the leaf columns of the parquet file at path.
func showColumns(path, format string) {
	cols, err := reader.Columns(path)
	if err != nil {
		if os.IsNotExist(err) {
			fatal("Error: file '%s' not found", path)
		}
		fatal("Error: %v", err)
	}

	rows := make([]map[string]interface{}, len(cols))
	for i, col := range cols {
		rows[i] = map[string]interface{}{
			"name":     col.Name,
			"type":     col.Type,
			"optional": col.Optional,
		}
	}
	writeRows(rows, format)
}

func writeRows(rows []map[string]interface{}, format string) {
	formatter, err := output.New(format, os.Stdout)
	if err != nil {
		fatal("Error: %v\nSupported formats: jsonl, csv, table", err)
	}
	if err := formatter.Format(rows); err != nil {
		fatal("Error formatting output: %v", err)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
