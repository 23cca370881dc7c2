package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes rows as JSON Lines, one object per line.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON Lines formatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer.
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format encodes each row as one JSON object per line. HTML escaping is
// off so predicate-relevant characters (<, >, &) round-trip literally.
func (j *JSONFormatter) Format(rows []map[string]interface{}) error {
	encoder := json.NewEncoder(j.writer)
	encoder.SetEscapeHTML(false)
	for _, row := range rows {
		if err := encoder.Encode(jsonRow(row)); err != nil {
			return err
		}
	}
	return nil
}

// jsonRow normalizes values the encoder would obscure: []byte columns
// would encode as base64, so render them as text the way the CSV and
// table formats do. Rows without such columns pass through unchanged.
func jsonRow(row map[string]interface{}) map[string]interface{} {
	var out map[string]interface{}
	for col, v := range row {
		raw, ok := v.([]byte)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]interface{}, len(row))
			for c, val := range row {
				out[c] = val
			}
		}
		out[col] = formatValue(raw)
	}
	if out == nil {
		return row
	}
	return out
}
