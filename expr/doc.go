// Package expr implements a small SQL-style boolean expression language
// for filtering rows: comparisons, arithmetic, LIKE, BETWEEN, IN and
// IS NULL over caller-supplied variable bindings.
//
// Parse compiles an expression string into an immutable tree; Evaluate
// does Parse plus a tree walk against a binding map in one call:
//
//	ok, err := expr.Evaluate("age >= 21 AND name LIKE 'A%'", map[string]expr.Value{
//		"age":  expr.Int(34),
//		"name": expr.Str("Alice"),
//	})
//
// Type mismatches, unbound variables, NULL misuse and division by zero
// surface as distinct error types that callers can pick apart with
// errors.As.
package expr
