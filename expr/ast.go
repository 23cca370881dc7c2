package expr

// The AST enforces type safety at the grammar level: all top-level
// expressions are boolean, while arithmetic/value expressions can only
// appear as operands to relational operators. Nodes are immutable trees
// built once per Parse call and never shared.

// BooleanExpr is the root node type. Every valid program is exactly one
// BooleanExpr.
type BooleanExpr interface {
	booleanExpr()
}

// OrExpr is a logical OR (lowest precedence).
type OrExpr struct {
	Left  BooleanExpr
	Right BooleanExpr
}

// AndExpr is a logical AND.
type AndExpr struct {
	Left  BooleanExpr
	Right BooleanExpr
}

// NotExpr negates a boolean operand.
type NotExpr struct {
	Expr BooleanExpr
}

// BoolLiteral is a TRUE or FALSE literal.
type BoolLiteral struct {
	Value bool
}

// BoolVariable references a variable expected to hold a boolean binding
// (checked at evaluation time).
type BoolVariable struct {
	Name string
}

func (*OrExpr) booleanExpr()       {}
func (*AndExpr) booleanExpr()      {}
func (*NotExpr) booleanExpr()      {}
func (*BoolLiteral) booleanExpr()  {}
func (*BoolVariable) booleanExpr() {}

// RelationalExpr bridges the boolean and value worlds: it compares value
// operands and produces a boolean result. Every relational node is also a
// BooleanExpr.
type RelationalExpr interface {
	BooleanExpr
	relationalExpr()
}

// EqualityOp selects = or <>.
type EqualityOp int

const (
	OpEqual EqualityOp = iota
	OpNotEqual
)

func (op EqualityOp) String() string {
	if op == OpEqual {
		return "="
	}
	return "<>"
}

// ComparisonOp selects an ordering comparison.
type ComparisonOp int

const (
	OpGreater ComparisonOp = iota
	OpGreaterEqual
	OpLess
	OpLessEqual
)

func (op ComparisonOp) String() string {
	switch op {
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpLess:
		return "<"
	default:
		return "<="
	}
}

// EqualityExpr is an = or <> comparison.
type EqualityExpr struct {
	Left  ValueExpr
	Op    EqualityOp
	Right ValueExpr
}

// ComparisonExpr is an ordering comparison (>, >=, <, <=).
type ComparisonExpr struct {
	Left  ValueExpr
	Op    ComparisonOp
	Right ValueExpr
}

// LikeExpr is [NOT] LIKE pattern matching with an optional ESCAPE clause.
type LikeExpr struct {
	Expr    ValueExpr
	Pattern string
	Escape  *string
	Negated bool
}

// BetweenExpr is a [NOT] BETWEEN inclusive range check. The parser
// guarantees both bounds reduce to compatible, ordered literals.
type BetweenExpr struct {
	Expr    ValueExpr
	Lower   ValueExpr
	Upper   ValueExpr
	Negated bool
}

// InExpr is a [NOT] IN list membership check. The parser guarantees the
// list is non-empty and homogeneous in exact literal type.
type InExpr struct {
	Expr    ValueExpr
	Values  []Literal
	Negated bool
}

// IsNullExpr is IS NULL / IS NOT NULL.
type IsNullExpr struct {
	Expr    ValueExpr
	Negated bool
}

func (*EqualityExpr) booleanExpr()   {}
func (*ComparisonExpr) booleanExpr() {}
func (*LikeExpr) booleanExpr()       {}
func (*BetweenExpr) booleanExpr()    {}
func (*InExpr) booleanExpr()         {}
func (*IsNullExpr) booleanExpr()     {}

func (*EqualityExpr) relationalExpr()   {}
func (*ComparisonExpr) relationalExpr() {}
func (*LikeExpr) relationalExpr()       {}
func (*BetweenExpr) relationalExpr()    {}
func (*InExpr) relationalExpr()         {}
func (*IsNullExpr) relationalExpr()     {}

// ValueExpr is a scalar-valued expression. It can never appear at the
// boolean top level except as an operand inside a RelationalExpr.
type ValueExpr interface {
	valueExpr()
}

// ArithOp selects a binary arithmetic operation.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "%"
	}
}

// Name returns the operation name used in error messages.
func (op ArithOp) Name() string {
	switch op {
	case OpAdd:
		return "addition"
	case OpSubtract:
		return "subtraction"
	case OpMultiply:
		return "multiplication"
	case OpDivide:
		return "division"
	default:
		return "modulo"
	}
}

// UnaryOp selects unary plus or minus.
type UnaryOp int

const (
	OpUnaryPlus UnaryOp = iota
	OpUnaryMinus
)

func (op UnaryOp) String() string {
	if op == OpUnaryPlus {
		return "+"
	}
	return "-"
}

// Name returns the operation name used in error messages.
func (op UnaryOp) Name() string {
	if op == OpUnaryPlus {
		return "unary plus"
	}
	return "unary minus"
}

// ArithmeticExpr is a binary arithmetic operation over two value operands.
type ArithmeticExpr struct {
	Op    ArithOp
	Left  ValueExpr
	Right ValueExpr
}

// UnaryExpr is unary plus or minus over a value operand.
type UnaryExpr struct {
	Op   UnaryOp
	Expr ValueExpr
}

// LiteralExpr wraps a literal constant.
type LiteralExpr struct {
	Value Literal
}

// VariableExpr references a variable used in value position; any binding
// type is acceptable there.
type VariableExpr struct {
	Name string
}

func (*ArithmeticExpr) valueExpr() {}
func (*UnaryExpr) valueExpr()      {}
func (*LiteralExpr) valueExpr()    {}
func (*VariableExpr) valueExpr()   {}

// LiteralKind tags the closed set of literal value types.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBoolean
	LiteralNull
)

// Literal is a constant value appearing directly in source text. Kind
// selects which payload field is meaningful.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// IntegerLiteral builds an integer literal.
func IntegerLiteral(n int64) Literal { return Literal{Kind: LiteralInteger, Int: n} }

// FloatLiteral builds a float literal.
func FloatLiteral(f float64) Literal { return Literal{Kind: LiteralFloat, Float: f} }

// StringLiteral builds a string literal.
func StringLiteral(s string) Literal { return Literal{Kind: LiteralString, Str: s} }

// BooleanLiteral builds a boolean literal.
func BooleanLiteral(b bool) Literal { return Literal{Kind: LiteralBoolean, Bool: b} }

// NullLiteral builds the NULL literal.
func NullLiteral() Literal { return Literal{Kind: LiteralNull} }

// TypeName returns the literal type name used in error messages.
func (l Literal) TypeName() string {
	switch l.Kind {
	case LiteralInteger:
		return "integer"
	case LiteralFloat:
		return "float"
	case LiteralString:
		return "string"
	case LiteralBoolean:
		return "boolean"
	default:
		return "NULL"
	}
}

// IsNumeric reports whether the literal is an integer or float.
func (l Literal) IsNumeric() bool {
	return l.Kind == LiteralInteger || l.Kind == LiteralFloat
}
