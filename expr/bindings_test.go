package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingsFromRow(t *testing.T) {
	row := map[string]interface{}{
		"id":      int64(7),
		"count":   int32(3),
		"small":   int8(1),
		"uns":     uint16(9),
		"ratio":   float32(0.5),
		"balance": 1250.75,
		"name":    "alice",
		"raw":     []byte("bytes"),
		"active":  true,
		"email":   nil,
	}

	bindings := BindingsFromRow(row)

	assert.Equal(t, Int(7), bindings["id"])
	assert.Equal(t, Int(3), bindings["count"])
	assert.Equal(t, Int(1), bindings["small"])
	assert.Equal(t, Int(9), bindings["uns"])
	assert.Equal(t, Float(0.5), bindings["ratio"])
	assert.Equal(t, Float(1250.75), bindings["balance"])
	assert.Equal(t, Str("alice"), bindings["name"])
	assert.Equal(t, Str("bytes"), bindings["raw"])
	assert.Equal(t, Bool(true), bindings["active"])
	assert.Equal(t, Null(), bindings["email"])
}

func TestBindingsFromRow_UnknownTypeStringifies(t *testing.T) {
	type odd struct{ A int }
	bindings := BindingsFromRow(map[string]interface{}{"x": odd{A: 1}})
	require.Equal(t, KindString, bindings["x"].Kind)
}

func TestBindingsFromRow_EndToEnd(t *testing.T) {
	row := map[string]interface{}{
		"age":   int64(34),
		"name":  "Alice",
		"email": nil,
	}
	got, err := Evaluate("age > 30 AND name LIKE 'A%' AND email IS NULL", BindingsFromRow(row))
	require.NoError(t, err)
	assert.True(t, got)
}
