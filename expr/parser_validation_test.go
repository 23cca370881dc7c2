package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BetweenValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "integer bounds in order",
			input: "age BETWEEN 18 AND 65",
		},
		{
			name:  "equal bounds",
			input: "age BETWEEN 21 AND 21",
		},
		{
			name:  "negative lower bound",
			input: "delta BETWEEN -10 AND 10",
		},
		{
			name:  "unary plus bound",
			input: "delta BETWEEN +1 AND 10",
		},
		{
			name:  "mixed numeric bounds",
			input: "score BETWEEN 1 AND 2.5",
		},
		{
			name:  "string bounds in order",
			input: "name BETWEEN 'a' AND 'm'",
		},
		{
			name:    "integer bounds reversed",
			input:   "age BETWEEN 100 AND 50",
			wantErr: "lower bound",
		},
		{
			name:    "float bounds reversed",
			input:   "score BETWEEN 2.5 AND 1.5",
			wantErr: "lower bound",
		},
		{
			name:    "string bounds reversed",
			input:   "name BETWEEN 'z' AND 'a'",
			wantErr: "lower bound",
		},
		{
			name:    "numeric and string bounds",
			input:   "x BETWEEN 1 AND 'z'",
			wantErr: "both numeric or both string",
		},
		{
			name:    "null lower bound",
			input:   "x BETWEEN NULL AND 10",
			wantErr: "NULL is not allowed as lower bound",
		},
		{
			name:    "null upper bound",
			input:   "x BETWEEN 1 AND NULL",
			wantErr: "NULL is not allowed as upper bound",
		},
		{
			name:    "boolean lower bound",
			input:   "x BETWEEN TRUE AND 10",
			wantErr: "boolean literals are not allowed",
		},
		{
			name:    "variable bound",
			input:   "x BETWEEN low AND 10",
			wantErr: "variables are not allowed",
		},
		{
			name:    "arithmetic bound",
			input:   "x BETWEEN 1 + 2 AND 10",
			wantErr: "complex expressions are not allowed",
		},
		{
			name:    "not between reversed",
			input:   "x NOT BETWEEN 10 AND 1",
			wantErr: "NOT BETWEEN lower bound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_InListValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "integer list",
			input: "n IN (1, 2, 3)",
		},
		{
			name:  "string list",
			input: "status IN ('open', 'pending', 'review')",
		},
		{
			name:  "float list",
			input: "rate IN (0.5, 1.5)",
		},
		{
			name:  "negative integers",
			input: "delta IN (-1, -2, -3)",
		},
		{
			name:  "single element",
			input: "n IN (7)",
		},
		{
			name:    "mixed int and float",
			input:   "n IN (1, 2.5, 3)",
			wantErr: "must all be the same type",
		},
		{
			name:    "mixed string and int",
			input:   "n IN ('a', 1)",
			wantErr: "must all be the same type",
		},
		{
			name:    "null element",
			input:   "n IN (1, NULL)",
			wantErr: "NULL is not allowed in IN list",
		},
		{
			name:    "boolean element",
			input:   "n IN (TRUE)",
			wantErr: "boolean literals are not allowed in IN list",
		},
		{
			name:    "variable element",
			input:   "n IN (x)",
			wantErr: "expected literal value",
		},
		{
			name:    "negated string",
			input:   "n IN (-'a')",
			wantErr: "cannot apply unary minus to string literal",
		},
		{
			name:    "empty list",
			input:   "n IN ()",
			wantErr: "expected literal value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_InListValues(t *testing.T) {
	root, err := Parse("n NOT IN (-1, 2, 3)")
	require.NoError(t, err)

	in, ok := root.(*InExpr)
	require.True(t, ok, "root is %T, want *InExpr", root)
	assert.True(t, in.Negated)

	want := []int64{-1, 2, 3}
	require.Len(t, in.Values, len(want))
	for i, w := range want {
		assert.Equal(t, LiteralInteger, in.Values[i].Kind, "value %d", i)
		assert.Equal(t, w, in.Values[i].Int, "value %d", i)
	}
}
