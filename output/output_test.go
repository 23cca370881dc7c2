package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": int64(1), "name": "Alice", "score": 7.5},
		{"id": int64(2), "name": "Bob", "score": 3.0},
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	for _, name := range []string{"jsonl", "json", "csv", "table"} {
		f, err := New(name, &buf)
		require.NoError(t, err, name)
		require.NotNil(t, f, name)
	}

	_, err := New("xml", &buf)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)
	require.NoError(t, f.Format(sampleRows()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"name":"Alice"`)
	assert.Contains(t, lines[1], `"name":"Bob"`)
}

func TestJSONFormatter_RawValues(t *testing.T) {
	rows := []map[string]interface{}{
		{"raw": []byte("bytes"), "cmp": "a<b"},
	}

	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)
	require.NoError(t, f.Format(rows))

	out := buf.String()
	// []byte renders as text, not base64.
	assert.Contains(t, out, `"raw":"bytes"`)
	// HTML escaping is off: '<' stays literal.
	assert.Contains(t, out, `"cmp":"a<b"`)
	assert.NotContains(t, out, `\u003c`)
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)
	require.NoError(t, f.Format(sampleRows()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,score", lines[0])
	assert.Equal(t, "1,Alice,7.5", lines[1])
}

func TestCSVFormatter_HeterogeneousRows(t *testing.T) {
	rows := []map[string]interface{}{
		{"a": int64(1)},
		{"b": "x"},
	}

	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)
	require.NoError(t, f.Format(rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "a,b", lines[0])
	assert.Equal(t, "1,", lines[1])
	assert.Equal(t, ",x", lines[2])
}

func TestCSVFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)
	require.NoError(t, f.Format(nil))
	assert.Empty(t, buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)
	require.NoError(t, f.Format(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{int64(42), "42"},
		{uint32(7), "7"},
		{2.5, "2.5"},
		{true, "true"},
		{[]byte("raw"), "raw"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.in))
	}
}
