package expr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/arxbench/internal/expr"
)

func TestEval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"(1+2)", 3},
		{"(1 + 2) * 3", 9},
		{"1 + 2 * 3", 7},
		{"(10 / 4)", 2.5},
		{"((2))", 2},
		{"(-3 * -(2 + 1))", 9},
		{"(1.5 + .5)", 2},
		{"(8 - 2 - 1)", 5},
		{"(12 / 3 / 2)", 2},
		{"(1 / 3)", 1.0 / 3},
		{"(9223372036854775807 * 2)", 2 * 9223372036854775807.0},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := expr.Eval(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "(", "(1 +", "(1 2)", "(a)", "(1))", "(1..2)"} {
		_, err := expr.Eval(in)
		require.ErrorIs(t, err, expr.ErrSyntax, "input %q", in)
	}

	_, err := expr.Eval("(1 / (2 - 2))")
	require.ErrorIs(t, err, expr.ErrDivisionByZero)
}

func TestEvalRestrictsGrammar(t *testing.T) {
	t.Parallel()

	tests := []string{
		"(2 ** 3)",
		"(1 == 1)",
		"(+1)",
		"(1 % 2)",
		"(0x10)",
		"(1e3)",
		"(1_000)",
		`("a" + "b")`,
		"(len(1))",
		"(div(1, 0))",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, err := expr.Eval(in)
			require.ErrorIs(t, err, expr.ErrSyntax)
		})
	}
}

func TestEvalSyntaxErrorIsSingleLine(t *testing.T) {
	t.Parallel()

	_, err := expr.Eval("(1 2)")
	require.ErrorIs(t, err, expr.ErrSyntax)
	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), "at offset")
}

func TestEvalDepthLimit(t *testing.T) {
	t.Parallel()

	deep := strings.Repeat("(", 1000) + "1" + strings.Repeat(")", 1000)

	_, err := expr.Eval(deep)
	require.ErrorIs(t, err, expr.ErrSyntax)
}

func TestLooksParenthesized(t *testing.T) {
	t.Parallel()

	assert.True(t, expr.LooksParenthesized("(1+2)"))
	assert.True(t, expr.LooksParenthesized("  (x)  "))
	assert.True(t, expr.LooksParenthesized("()"))
	assert.False(t, expr.LooksParenthesized("hello"))
	assert.False(t, expr.LooksParenthesized("(1+2"))
	assert.False(t, expr.LooksParenthesized("1+2)"))
	assert.False(t, expr.LooksParenthesized("("))
}
