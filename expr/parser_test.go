package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"comparison", "age > 30"},
		{"equality", "name = 'alice'"},
		{"not equal", "status <> 'closed'"},
		{"bang not equal", "status != 'closed'"},
		{"boolean variable", "active"},
		{"boolean literal", "TRUE"},
		{"and", "age > 30 AND active"},
		{"or", "age > 30 OR premium"},
		{"not", "NOT active"},
		{"double not", "NOT NOT active"},
		{"parenthesized boolean", "(age > 30 AND active) OR premium"},
		{"parenthesized value", "(x + y) > 10"},
		{"nested value parens", "((x + y) * 2) > 10"},
		{"arithmetic", "price * quantity >= 100"},
		{"unary minus", "-x < 0"},
		{"unary plus", "+x > 0"},
		{"like", "name LIKE 'A%'"},
		{"not like", "name NOT LIKE '%test%'"},
		{"like with escape", "code LIKE '50!%' ESCAPE '!'"},
		{"between", "age BETWEEN 18 AND 65"},
		{"not between", "age NOT BETWEEN 0 AND 17"},
		{"in", "status IN ('open', 'pending')"},
		{"not in", "status NOT IN ('closed')"},
		{"is null", "email IS NULL"},
		{"is not null", "email IS NOT NULL"},
		{"case insensitive keywords", "age > 30 and active or premium"},
		{"comparison against variable", "x > y"},
		{"modulo", "n % 2 = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse(tt.input)
			require.NoError(t, err)
			require.NotNil(t, root)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare integer", "42"},
		{"bare arithmetic", "1 + 2"},
		{"bare string", "'hello'"},
		{"trailing tokens", "a = 1 b = 2"},
		{"missing operand", "a ="},
		{"missing right paren", "(a = 1"},
		{"empty input", ""},
		{"lone operator", ">"},
		{"not without relational", "a NOT 5"},
		{"in without parens", "a IN 1, 2"},
		{"like non-string pattern", "a LIKE 5"},
		{"escape non-string", "a LIKE 'x%' ESCAPE 5"},
		{"is without null", "a IS 5"},
		{"between missing and", "a BETWEEN 1 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestParse_OperatorPrecedence(t *testing.T) {
	// AND binds tighter than OR: a = 1 OR b = 2 AND c = 3
	// parses as a = 1 OR (b = 2 AND c = 3).
	root, err := Parse("a = 1 OR b = 2 AND c = 3")
	require.NoError(t, err)

	or, ok := root.(*OrExpr)
	require.True(t, ok, "root is %T, want *OrExpr", root)
	assert.IsType(t, &EqualityExpr{}, or.Left)
	assert.IsType(t, &AndExpr{}, or.Right)
}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	// a + b * c = 7 must parse the value side as a + (b * c).
	root, err := Parse("a + b * c = 7")
	require.NoError(t, err)

	eq, ok := root.(*EqualityExpr)
	require.True(t, ok, "root is %T, want *EqualityExpr", root)
	add, ok := eq.Left.(*ArithmeticExpr)
	require.True(t, ok, "left is %T, want *ArithmeticExpr", eq.Left)
	assert.Equal(t, OpAdd, add.Op)
	mul, ok := add.Right.(*ArithmeticExpr)
	require.True(t, ok, "add right is %T, want *ArithmeticExpr", add.Right)
	assert.Equal(t, OpMultiply, mul.Op)
}

func TestParse_ParenDisambiguation(t *testing.T) {
	// Boolean grouping.
	root, err := Parse("(x > 5 AND y < 10)")
	require.NoError(t, err)
	assert.IsType(t, &AndExpr{}, root)

	// Same leading '(' but a value grouping.
	root, err = Parse("(x + y) > 10")
	require.NoError(t, err)
	cmp, ok := root.(*ComparisonExpr)
	require.True(t, ok, "root is %T, want *ComparisonExpr", root)
	assert.IsType(t, &ArithmeticExpr{}, cmp.Left)

	// A parenthesized boolean variable stays boolean.
	root, err = Parse("(active)")
	require.NoError(t, err)
	assert.IsType(t, &BoolVariable{}, root)
}

func TestParse_IdentifierDisambiguation(t *testing.T) {
	// Lone identifier in boolean position is a boolean variable.
	root, err := Parse("active AND verified")
	require.NoError(t, err)
	and := root.(*AndExpr)
	assert.IsType(t, &BoolVariable{}, and.Left)

	// Identifier followed by an arithmetic operator is a value.
	root, err = Parse("x + 1 > 2")
	require.NoError(t, err)
	assert.IsType(t, &ComparisonExpr{}, root)
}

func TestParse_LikeEscape(t *testing.T) {
	root, err := Parse("code NOT LIKE '50!%' ESCAPE '!'")
	require.NoError(t, err)

	like, ok := root.(*LikeExpr)
	require.True(t, ok, "root is %T, want *LikeExpr", root)
	assert.True(t, like.Negated)
	assert.Equal(t, "50!%", like.Pattern)
	require.NotNil(t, like.Escape)
	assert.Equal(t, "!", *like.Escape)
}

func TestParse_IsNull(t *testing.T) {
	root, err := Parse("email IS NOT NULL")
	require.NoError(t, err)

	isNull, ok := root.(*IsNullExpr)
	require.True(t, ok, "root is %T, want *IsNullExpr", root)
	assert.True(t, isNull.Negated)
}

func TestParse_ErrorMessageShape(t *testing.T) {
	_, err := Parse("a = 1 b")
	require.Error(t, err)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "parse error: "), "message %q lacks prefix", msg)
	assert.Contains(t, msg, "near position")
	assert.Contains(t, msg, "a = 1 b")
}

func TestParse_InputLimits(t *testing.T) {
	long := strings.Repeat("x", MaxInputLength+1)
	_, err := Parse(long)
	assert.ErrorIs(t, err, ErrInputTooLong)

	// MaxTokens+ tokens: chain of ORs.
	var b strings.Builder
	b.WriteString("a")
	for i := 0; i < MaxTokens; i++ {
		b.WriteString(" OR a")
	}
	_, err = Parse(b.String())
	assert.ErrorIs(t, err, ErrTooManyTokens)
}
