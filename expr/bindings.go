package expr

import "fmt"

// BindingsFromRow converts a generic row, as produced by the parquet
// reader, into evaluation bindings. Numeric Go types map onto the two
// numeric value kinds, nil maps to NULL, and anything unrecognized is
// rendered with fmt.Sprint so filtering still has something to compare.
func BindingsFromRow(row map[string]interface{}) map[string]Value {
	bindings := make(map[string]Value, len(row))
	for name, raw := range row {
		bindings[name] = valueOf(raw)
	}
	return bindings
}

func valueOf(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Int(int64(v))
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint64:
		return Int(int64(v))
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case string:
		return Str(v)
	case []byte:
		return Str(string(v))
	default:
		return Str(fmt.Sprint(v))
	}
}
