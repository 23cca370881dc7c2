package expr

// ValueKind tags the runtime value types.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindFloat
	KindString
	KindBoolean
	KindNull
)

// Value is a caller-supplied binding value. It mirrors the literal types
// of the language but is kept as a distinct type so the public interface
// does not leak the AST's literal representation.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// Int builds an integer binding value.
func Int(n int64) Value { return Value{Kind: KindInteger, Int: n} }

// Float builds a float binding value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Str builds a string binding value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool builds a boolean binding value.
func Bool(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Null builds the NULL binding value.
func Null() Value { return Value{Kind: KindNull} }

// TypeName returns the value type name used in error messages.
func (v Value) TypeName() string {
	return kindName(v.Kind)
}

func kindName(k ValueKind) string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	default:
		return "NULL"
	}
}

// subValue is the evaluator's unified runtime representation. Both AST
// literals and caller bindings normalize into it so arithmetic and
// comparison logic operate over a single value shape.
type subValue struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    bool
}

func subFromValue(v Value) subValue {
	return subValue{kind: v.Kind, i: v.Int, f: v.Float, s: v.Str, b: v.Bool}
}

func subFromLiteral(l Literal) subValue {
	switch l.Kind {
	case LiteralInteger:
		return subValue{kind: KindInteger, i: l.Int}
	case LiteralFloat:
		return subValue{kind: KindFloat, f: l.Float}
	case LiteralString:
		return subValue{kind: KindString, s: l.Str}
	case LiteralBoolean:
		return subValue{kind: KindBoolean, b: l.Bool}
	default:
		return subValue{kind: KindNull}
	}
}

func (v subValue) isNull() bool {
	return v.kind == KindNull
}

func (v subValue) isNumeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

func (v subValue) typeName() string {
	return kindName(v.kind)
}

// asFloat coerces a numeric subValue to float64. Only meaningful when
// isNumeric holds.
func (v subValue) asFloat() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}
