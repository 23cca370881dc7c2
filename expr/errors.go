package expr

import "fmt"

// ParseError covers lexical failures, grammar violations, and static
// semantic violations (BETWEEN/IN type checks). The message carries the
// position and the complete original input so callers can display it
// without extra plumbing.
type ParseError struct {
	Message string
	Pos     int
	Input   string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error: %s near position %d in:\n  %s", e.Message, e.Pos, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnboundVariableError reports a variable reference with no binding.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable '%s' - not found in bindings", e.Name)
}

// TypeError reports an operand of the wrong type for an operation.
type TypeError struct {
	Operation string
	Expected  string
	Actual    string
	Context   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s: expected %s, got %s (context: %s)",
		e.Operation, e.Expected, e.Actual, e.Context)
}

// NullOperationError reports a NULL operand in an operation other than
// IS NULL / IS NOT NULL.
type NullOperationError struct {
	Operation string
	Context   string
}

func (e *NullOperationError) Error() string {
	return fmt.Sprintf("NULL value in %s operation (context: %s). NULL is only allowed in IS NULL/IS NOT NULL",
		e.Operation, e.Context)
}

// DivisionByZeroError reports a zero divisor. Expression is the full
// original input text, not just the offending subexpression.
type DivisionByZeroError struct {
	Expression string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero in expression: %s", e.Expression)
}

// InvalidLiteralError reports a literal that failed re-validation during
// evaluation, such as a LIKE pattern that does not compile.
type InvalidLiteralError struct {
	Literal string
	Type    string
	Err     error
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("invalid %s literal '%s': %v", e.Type, e.Literal, e.Err)
}

func (e *InvalidLiteralError) Unwrap() error {
	return e.Err
}
