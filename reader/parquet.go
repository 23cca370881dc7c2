package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/parquet-go"
)

// MaxGlobFiles caps how many files one glob pattern may expand to.
const MaxGlobFiles = 1000

// Reader reads a parquet file and returns rows as maps, the shape the
// expression evaluator takes its bindings from.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens path and validates it as a parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{file: file, pqFile: pqFile}, nil
}

// ReadAll reads every row into memory. Each row is a map keyed by column
// name. Not suitable for files larger than available memory.
func (r *Reader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	for {
		row := make(map[string]interface{})
		err := pr.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the underlying file handle. Safe to call more than once.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Column describes one leaf column of a parquet schema, as seen by
// filter expressions: the name used to bind it and its value type.
type Column struct {
	Name     string
	Type     string
	Optional bool
}

// Columns lists the leaf columns of the parquet file at path. Nested
// fields use dot-notation names.
func Columns(path string) ([]Column, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var cols []Column
	for _, field := range r.Schema().Fields() {
		cols = append(cols, leafColumns(field, "")...)
	}
	return cols, nil
}

func leafColumns(field parquet.Field, prefix string) []Column {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}

	children := field.Fields()
	if len(children) > 0 {
		var cols []Column
		for _, child := range children {
			cols = append(cols, leafColumns(child, name)...)
		}
		return cols
	}

	return []Column{{
		Name:     name,
		Type:     columnType(field),
		Optional: field.Optional(),
	}}
}

func columnType(field parquet.Field) string {
	t := field.Type()
	if t == nil {
		return "group"
	}
	switch t.Kind() {
	case parquet.Boolean:
		return "boolean"
	case parquet.Int32, parquet.Int64, parquet.Int96:
		return "integer"
	case parquet.Float, parquet.Double:
		return "float"
	default:
		return "string"
	}
}

// ReadGlob reads all rows from every parquet file matching pattern. A
// pattern without wildcards reads one file unchanged; with wildcards,
// each row gains a "_file" column naming its source file.
func ReadGlob(pattern string) ([]map[string]interface{}, error) {
	if !strings.ContainsAny(pattern, "*?[]{}") {
		r, err := NewReader(pattern)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return r.ReadAll()
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > MaxGlobFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), MaxGlobFiles)
	}

	var allRows []map[string]interface{}
	for _, path := range matches {
		r, err := NewReader(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		rows, readErr := r.ReadAll()
		closeErr := r.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", path, readErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
		}

		for i := range rows {
			rows[i]["_file"] = path
		}
		allRows = append(allRows, rows...)
	}

	return allRows, nil
}
