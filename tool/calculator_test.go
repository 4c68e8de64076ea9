package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Calculate(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		expression string
		want       float64
	}{
		{"2 + 3", 5},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"2 ** 10", 1024},
		{"2 ** 3 ** 2", 512}, // right-associative
		{"-2 ** 2", -4},      // exponent binds tighter than unary minus
		{"2 ** -1", 0.5},
		{"7 % 3", 1},
		{"-7 % 3", 2}, // remainder takes the sign of the divisor
		{"7 % -3", -2},
		{"1.5e3 + 0.5", 1500.5},
		{"2.5E-1 * 4", 1},
		{".5 + .5", 1},
		{"  8   /  2 ", 4},
		{"-(3 + 4)", -7},
		{"+5 - -5", 10},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			result := calc.Calculate(tt.expression)

			require.True(t, result.Success, "error: %s", result.Error)
			assert.InDelta(t, tt.want, result.Result, 1e-9)
			assert.Equal(t, tt.expression, result.Expression)
			assert.Equal(t, "calculator", result.Tool)
			assert.Empty(t, result.Error)
		})
	}
}

func TestCalculator_Failures(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name        string
		expression  string
		errContains string
	}{
		{"division by zero", "5 / 0", "division by zero"},
		{"modulo by zero", "5 % 0", "modulo by zero"},
		{"doubled operator", "2 * * 3", "unexpected"},
		{"trailing operator", "2 +", "unexpected end of expression"},
		{"unbalanced parens", "(2 + 3", "missing closing parenthesis"},
		{"function call", "sin(30)", "only arithmetic is allowed"},
		{"empty expression", "", "unexpected end of expression"},
		{"stray characters", "2 $ 3", "unexpected character"},
		{"dangling close paren", "2 + 3)", "unexpected"},
		{"bare dot", ".", "invalid number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.Calculate(tt.expression)

			require.False(t, result.Success)
			assert.Contains(t, result.Error, tt.errContains)
			assert.Equal(t, tt.expression, result.Expression)
			assert.Equal(t, "calculator", result.Tool)
		})
	}
}

func TestCalculator_Call(t *testing.T) {
	calc := NewCalculator()

	raw, err := calc.Call(map[string]any{"expression": "5 * 6"})

	require.NoError(t, err)
	result, ok := raw.(CalcResult)
	require.True(t, ok)
	assert.True(t, result.Success)
	assert.Equal(t, 30.0, result.Result)
	assert.Equal(t, "calculator", result.Tool)
}

func TestCalculator_CallMissingExpression(t *testing.T) {
	calc := NewCalculator()

	raw, err := calc.Call(map[string]any{})

	// Faults are reported in the result, never as an error.
	require.NoError(t, err)
	result := raw.(CalcResult)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestCalculator_Metadata(t *testing.T) {
	calc := NewCalculator()

	assert.Equal(t, "calculator", calc.Name())
	assert.NotEmpty(t, calc.Description())

	schema := calc.Parameters()
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "expression")
}
