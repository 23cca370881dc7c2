package expr

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Evaluate parses input and evaluates the resulting tree against the
// given variable bindings. Parse failures surface as *ParseError; all
// evaluation failures use the typed error taxonomy in errors.go, so
// callers can distinguish kinds with errors.As. Evaluation is fail-fast:
// the first error anywhere in the tree aborts the call.
func Evaluate(input string, bindings map[string]Value) (bool, error) {
	root, err := Parse(input)
	if err != nil {
		return false, err
	}
	e := &evaluator{input: input, bindings: bindings}
	return e.evalBoolean(root)
}

// evaluator walks one parsed tree. It keeps the original input only so
// division-by-zero errors can name the full expression.
type evaluator struct {
	input    string
	bindings map[string]Value
}

func (e *evaluator) evalBoolean(expr BooleanExpr) (bool, error) {
	switch n := expr.(type) {
	case *BoolLiteral:
		return n.Value, nil

	case *BoolVariable:
		v, ok := e.bindings[n.Name]
		if !ok {
			return false, &UnboundVariableError{Name: n.Name}
		}
		if v.Kind != KindBoolean {
			return false, &TypeError{
				Operation: "boolean variable",
				Expected:  "boolean",
				Actual:    v.TypeName(),
				Context:   fmt.Sprintf("variable '%s'", n.Name),
			}
		}
		return v.Bool, nil

	case *AndExpr:
		left, err := e.evalBoolean(n.Left)
		if err != nil {
			return false, err
		}
		// Short-circuit: a false left side hides any error on the right.
		if !left {
			return false, nil
		}
		return e.evalBoolean(n.Right)

	case *OrExpr:
		left, err := e.evalBoolean(n.Left)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return e.evalBoolean(n.Right)

	case *NotExpr:
		v, err := e.evalBoolean(n.Expr)
		if err != nil {
			return false, err
		}
		return !v, nil

	case RelationalExpr:
		return e.evalRelational(n)

	default:
		return false, fmt.Errorf("unsupported boolean expression %T", expr)
	}
}

func (e *evaluator) evalRelational(expr RelationalExpr) (bool, error) {
	switch n := expr.(type) {
	case *EqualityExpr:
		return e.evalEquality(n)
	case *ComparisonExpr:
		return e.evalComparison(n)
	case *LikeExpr:
		return e.evalLike(n)
	case *BetweenExpr:
		return e.evalBetween(n)
	case *InExpr:
		return e.evalIn(n)
	case *IsNullExpr:
		return e.evalIsNull(n)
	default:
		return false, fmt.Errorf("unsupported relational expression %T", expr)
	}
}

func (e *evaluator) evalEquality(n *EqualityExpr) (bool, error) {
	left, err := e.evalValue(n.Left)
	if err != nil {
		return false, err
	}
	right, err := e.evalValue(n.Right)
	if err != nil {
		return false, err
	}

	if left.isNull() || right.isNull() {
		return false, &NullOperationError{
			Operation: n.Op.String(),
			Context:   "cannot compare NULL values (use IS NULL instead)",
		}
	}

	var equal bool
	switch {
	case left.kind == KindInteger && right.kind == KindInteger:
		equal = left.i == right.i
	case left.isNumeric() && right.isNumeric():
		equal = left.asFloat() == right.asFloat()
	case left.kind == KindString && right.kind == KindString:
		equal = left.s == right.s
	case left.kind == KindBoolean && right.kind == KindBoolean:
		equal = left.b == right.b
	default:
		return false, &TypeError{
			Operation: n.Op.String(),
			Expected:  "matching types",
			Actual:    fmt.Sprintf("%s vs %s", left.typeName(), right.typeName()),
			Context:   "equality comparison",
		}
	}

	if n.Op == OpNotEqual {
		return !equal, nil
	}
	return equal, nil
}

func (e *evaluator) evalComparison(n *ComparisonExpr) (bool, error) {
	left, err := e.evalValue(n.Left)
	if err != nil {
		return false, err
	}
	right, err := e.evalValue(n.Right)
	if err != nil {
		return false, err
	}

	if left.isNull() || right.isNull() {
		return false, &NullOperationError{
			Operation: n.Op.String(),
			Context:   "cannot compare NULL values",
		}
	}

	switch {
	case left.kind == KindInteger && right.kind == KindInteger:
		return compareInts(left.i, right.i, n.Op), nil
	case left.isNumeric() && right.isNumeric():
		return compareFloats(left.asFloat(), right.asFloat(), n.Op), nil
	case left.kind == KindString && right.kind == KindString:
		return compareStrings(left.s, right.s, n.Op), nil
	case left.kind == KindBoolean || right.kind == KindBoolean:
		// Booleans have no ordering, not even against each other.
		return false, &TypeError{
			Operation: n.Op.String(),
			Expected:  "numeric or string",
			Actual:    "boolean",
			Context:   "comparison operand",
		}
	default:
		return false, &TypeError{
			Operation: n.Op.String(),
			Expected:  "matching types",
			Actual:    fmt.Sprintf("%s vs %s", left.typeName(), right.typeName()),
			Context:   "comparison",
		}
	}
}

func compareInts(a, b int64, op ComparisonOp) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	default:
		return a <= b
	}
}

func compareFloats(a, b float64, op ComparisonOp) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	default:
		return a <= b
	}
}

func compareStrings(a, b string, op ComparisonOp) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	default:
		return a <= b
	}
}

func (e *evaluator) evalLike(n *LikeExpr) (bool, error) {
	val, err := e.evalValue(n.Expr)
	if err != nil {
		return false, err
	}

	if val.isNull() {
		return false, &NullOperationError{
			Operation: "LIKE",
			Context:   "cannot apply LIKE to NULL",
		}
	}
	if val.kind != KindString {
		return false, &TypeError{
			Operation: "LIKE",
			Expected:  "string",
			Actual:    val.typeName(),
			Context:   "left operand",
		}
	}

	re, err := compileLikePattern(n.Pattern, n.Escape)
	if err != nil {
		return false, err
	}
	matched := re.MatchString(val.s)
	if n.Negated {
		return !matched, nil
	}
	return matched, nil
}

// compileLikePattern translates a SQL LIKE pattern into an anchored
// regexp: % matches any sequence, _ exactly one character, an escape
// character (first rune of the ESCAPE clause) literalizes the following
// pattern character, and everything else matches literally.
func compileLikePattern(pattern string, escape *string) (*regexp.Regexp, error) {
	var escapeChar rune
	hasEscape := false
	if escape != nil {
		for _, r := range *escape {
			escapeChar = r
			hasEscape = true
			break
		}
	}

	var b strings.Builder
	b.WriteByte('^')
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case hasEscape && ch == escapeChar:
			if i+1 < len(runes) {
				i++
				b.WriteString(regexp.QuoteMeta(string(runes[i])))
			}
		case ch == '%':
			b.WriteString(".*")
		case ch == '_':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, &InvalidLiteralError{
			Literal: pattern,
			Type:    "LIKE pattern",
			Err:     err,
		}
	}
	return re, nil
}

func (e *evaluator) evalBetween(n *BetweenExpr) (bool, error) {
	val, err := e.evalValue(n.Expr)
	if err != nil {
		return false, err
	}
	low, err := e.evalValue(n.Lower)
	if err != nil {
		return false, err
	}
	high, err := e.evalValue(n.Upper)
	if err != nil {
		return false, err
	}

	if val.isNull() || low.isNull() || high.isNull() {
		return false, &NullOperationError{
			Operation: "BETWEEN",
			Context:   "cannot use NULL in BETWEEN",
		}
	}

	var inRange bool
	switch {
	case val.kind == KindInteger && low.kind == KindInteger && high.kind == KindInteger:
		inRange = val.i >= low.i && val.i <= high.i
	case val.kind == KindFloat && low.kind == KindFloat && high.kind == KindFloat:
		inRange = val.f >= low.f && val.f <= high.f
	case val.kind == KindString && low.kind == KindString && high.kind == KindString:
		inRange = val.s >= low.s && val.s <= high.s
	default:
		// The runtime value may arrive as a different concrete numeric
		// type than the statically checked bounds; fall back to float
		// coercion across all three.
		v, err := toNumeric(val)
		if err != nil {
			return false, err
		}
		lo, err := toNumeric(low)
		if err != nil {
			return false, err
		}
		hi, err := toNumeric(high)
		if err != nil {
			return false, err
		}
		inRange = v >= lo && v <= hi
	}

	if n.Negated {
		return !inRange, nil
	}
	return inRange, nil
}

func (e *evaluator) evalIn(n *InExpr) (bool, error) {
	val, err := e.evalValue(n.Expr)
	if err != nil {
		return false, err
	}

	if val.isNull() {
		return false, &NullOperationError{
			Operation: "IN",
			Context:   "cannot use NULL in IN",
		}
	}

	// The parser guarantees the list itself is homogeneous; only the
	// tested value needs a compatibility check, against the first
	// element. Int/float mixing stays permitted here even though the
	// parser forbids it within the list.
	if len(n.Values) > 0 {
		first := subFromLiteral(n.Values[0])
		if !inCompatible(val, first) {
			return false, &TypeError{
				Operation: "IN",
				Expected:  first.typeName(),
				Actual:    val.typeName(),
				Context:   "left operand type doesn't match list element types",
			}
		}
	}

	found := false
	for _, lit := range n.Values {
		item := subFromLiteral(lit)
		var match bool
		switch {
		case val.kind == KindInteger && item.kind == KindInteger:
			match = val.i == item.i
		case val.isNumeric() && item.isNumeric():
			match = val.asFloat() == item.asFloat()
		case val.kind == KindString && item.kind == KindString:
			match = val.s == item.s
		case val.kind == KindBoolean && item.kind == KindBoolean:
			match = val.b == item.b
		}
		if match {
			found = true
			break
		}
	}

	if n.Negated {
		return !found, nil
	}
	return found, nil
}

// inCompatible reports whether the tested value's type may be compared
// against an IN-list element type: exact match, or any numeric mix.
func inCompatible(left, right subValue) bool {
	if left.kind == right.kind {
		return true
	}
	return left.isNumeric() && right.isNumeric()
}

func (e *evaluator) evalIsNull(n *IsNullExpr) (bool, error) {
	val, err := e.evalValue(n.Expr)
	if err != nil {
		return false, err
	}
	isNull := val.isNull()
	if n.Negated {
		return !isNull, nil
	}
	return isNull, nil
}

func (e *evaluator) evalValue(expr ValueExpr) (subValue, error) {
	switch n := expr.(type) {
	case *LiteralExpr:
		return subFromLiteral(n.Value), nil

	case *VariableExpr:
		v, ok := e.bindings[n.Name]
		if !ok {
			return subValue{}, &UnboundVariableError{Name: n.Name}
		}
		return subFromValue(v), nil

	case *ArithmeticExpr:
		return e.evalArithmetic(n)

	case *UnaryExpr:
		val, err := e.evalValue(n.Expr)
		if err != nil {
			return subValue{}, err
		}
		if val.isNull() {
			return subValue{}, &NullOperationError{
				Operation: n.Op.Name(),
				Context:   fmt.Sprintf("cannot apply %s to NULL", n.Op.Name()),
			}
		}
		if !val.isNumeric() {
			return subValue{}, &TypeError{
				Operation: n.Op.Name(),
				Expected:  "numeric",
				Actual:    val.typeName(),
				Context:   "operand",
			}
		}
		if n.Op == OpUnaryMinus {
			if val.kind == KindInteger {
				return subValue{kind: KindInteger, i: -val.i}, nil
			}
			return subValue{kind: KindFloat, f: -val.f}, nil
		}
		return val, nil

	default:
		return subValue{}, fmt.Errorf("unsupported value expression %T", expr)
	}
}

func (e *evaluator) evalArithmetic(n *ArithmeticExpr) (subValue, error) {
	left, err := e.evalValue(n.Left)
	if err != nil {
		return subValue{}, err
	}
	right, err := e.evalValue(n.Right)
	if err != nil {
		return subValue{}, err
	}

	if left.isNull() || right.isNull() {
		return subValue{}, &NullOperationError{
			Operation: n.Op.Name(),
			Context:   fmt.Sprintf("cannot apply %s to NULL values", n.Op.Name()),
		}
	}

	switch n.Op {
	case OpDivide:
		return e.evalDivide(left, right)
	case OpModulo:
		return e.evalModulo(left, right)
	}

	if !left.isNumeric() || !right.isNumeric() {
		return subValue{}, &TypeError{
			Operation: n.Op.Name(),
			Expected:  "numeric types",
			Actual:    fmt.Sprintf("%s and %s", left.typeName(), right.typeName()),
			Context:   "arithmetic operation",
		}
	}

	// Integer arithmetic stays integer, wrapping on overflow. Any float
	// operand coerces the result to float.
	if left.kind == KindInteger && right.kind == KindInteger {
		var r int64
		switch n.Op {
		case OpAdd:
			r = left.i + right.i
		case OpSubtract:
			r = left.i - right.i
		default:
			r = left.i * right.i
		}
		return subValue{kind: KindInteger, i: r}, nil
	}

	a, b := left.asFloat(), right.asFloat()
	var r float64
	switch n.Op {
	case OpAdd:
		r = a + b
	case OpSubtract:
		r = a - b
	default:
		r = a * b
	}
	return subValue{kind: KindFloat, f: r}, nil
}

// evalDivide always coerces both operands to float; integer division
// yields a float quotient, never a truncated integer.
func (e *evaluator) evalDivide(left, right subValue) (subValue, error) {
	if !left.isNumeric() {
		return subValue{}, &TypeError{
			Operation: "division",
			Expected:  "numeric",
			Actual:    left.typeName(),
			Context:   "left operand",
		}
	}
	if !right.isNumeric() {
		return subValue{}, &TypeError{
			Operation: "division",
			Expected:  "numeric",
			Actual:    right.typeName(),
			Context:   "right operand",
		}
	}

	divisor := right.asFloat()
	if divisor == 0 {
		return subValue{}, &DivisionByZeroError{Expression: e.input}
	}
	return subValue{kind: KindFloat, f: left.asFloat() / divisor}, nil
}

// evalModulo computes the remainder, following division's coercion
// pattern: int%int stays integer, any float operand produces a float
// remainder via math.Mod.
func (e *evaluator) evalModulo(left, right subValue) (subValue, error) {
	if !left.isNumeric() || !right.isNumeric() {
		return subValue{}, &TypeError{
			Operation: "modulo",
			Expected:  "numeric types",
			Actual:    fmt.Sprintf("%s and %s", left.typeName(), right.typeName()),
			Context:   "arithmetic operation",
		}
	}

	if left.kind == KindInteger && right.kind == KindInteger {
		if right.i == 0 {
			return subValue{}, &DivisionByZeroError{Expression: e.input}
		}
		return subValue{kind: KindInteger, i: left.i % right.i}, nil
	}

	if right.asFloat() == 0 {
		return subValue{}, &DivisionByZeroError{Expression: e.input}
	}
	return subValue{kind: KindFloat, f: math.Mod(left.asFloat(), right.asFloat())}, nil
}

// toNumeric coerces a numeric subValue to float64 or reports a type
// error.
func toNumeric(v subValue) (float64, error) {
	if !v.isNumeric() {
		return 0, &TypeError{
			Operation: "numeric comparison",
			Expected:  "numeric",
			Actual:    v.typeName(),
			Context:   "operand",
		}
	}
	return v.asFloat(), nil
}
