package output

import (
	"fmt"
	"io"
	"sort"
)

// Formatter renders filtered rows to a destination writer.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []map[string]interface{}) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter registered under name: "jsonl", "csv" or
// "table".
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "jsonl", "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}

// columnNames returns the sorted union of column names across rows, so
// heterogeneous rows (for example, glob reads mixing schemas) still
// produce one stable header.
func columnNames(rows []map[string]interface{}) []string {
	set := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			set[col] = true
		}
	}
	columns := make([]string, 0, len(set))
	for col := range set {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

// formatValue renders a cell value for the textual formats. nil renders
// as the empty string.
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
