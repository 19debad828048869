package parse

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcalc/symbolic"
)

func TestParseBasicForms(t *testing.T) {
	p := Default()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sum of squares", "x**2 + y**2", "x**2 + y**2"},
		{"caret power", "x^2 + y^2", "x**2 + y**2"},
		{"explicit z form", "z = x**2 - y**2", "x**2 - y**2"},
		{"explicit y form", "y = sin(x)", "sin(x)"},
		{"explicit f form", "f = exp(x)", "exp(x)"},
		{"implicit equation", "x**2 + y**2 = 1", "x**2 + y**2 - 1"},
		{"whitespace", "  x + 1  ", "x + 1"},
		{"unary minus", "-x**2", "-x**2"},
		{"quotient", "1/x", "1/x"},
		{"decimal coefficient", "0.5*x", "x/2"},
		{"pi", "2*pi*x", "2*pi*x"},
		{"natural log alias", "ln(x)", "log(x)"},
		{"arc alias", "arcsin(x) + arctan(y)", "asin(x) + atan(y)"},
		{"sqrt", "sqrt(x**2 + 1)", "sqrt(x**2 + 1)"},
		{"abs", "abs(x)", "abs(x)"},
		{"unicode operators", "x × y ÷ 2", "x*y/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParseImplicitMultiplication(t *testing.T) {
	p := Default()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digit letter", "2x", "2*x"},
		{"chained letters", "2xy", "2*x*y"},
		{"letter digit", "x2", "2*x"},
		{"paren paren", "(x+1)(x-1)", "(x + 1)*(x - 1)"},
		{"digit paren", "2(x+1)", "2*x + 2"},
		{"letter before function", "xsin(x)", "x*sin(x)"},
		{"paren before letter", "(x+1)y", "y*(x + 1)"},
		{"coefficient on function", "3sin(x)", "3*sin(x)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParseNormalizationIdempotent(t *testing.T) {
	p := Default()

	// Already-explicit input parses to the same expression.
	implicit, err := p.Parse("2xy")
	require.NoError(t, err)
	explicit, err := p.Parse("2*x*y")
	require.NoError(t, err)
	assert.True(t, implicit.Equal(explicit))
}

func TestParseErrors(t *testing.T) {
	p := Default()
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"double equals", "x = y = z"},
		{"unbalanced open", "(x + 1"},
		{"unbalanced close", "x + 1)"},
		{"dangling operator", "x +"},
		{"function without parens", "sin x"},
		{"unknown character", "x # y"},
		{"lone dot", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.input)
			require.Error(t, err)
			var perr *Error
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParsePowerAssociativity(t *testing.T) {
	p := Default()

	// Right associative, and unary exponents bind.
	expr, err := p.Parse("x**-2")
	require.NoError(t, err)
	assert.Equal(t, "1/x**2", expr.String())

	a, err := p.Parse("2**3**2")
	require.NoError(t, err)
	assert.True(t, a.Equal(symbolic.Int(512)))
}

func TestValidate(t *testing.T) {
	p := Default()

	expr, err := p.Parse("x**2 + y**2")
	require.NoError(t, err)
	v := p.Validate(expr)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Warnings)

	// Reciprocal warning plus an undefined probe point at the origin.
	expr, err = p.Parse("1/x")
	require.NoError(t, err)
	v = p.Validate(expr)
	assert.True(t, v.Valid)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "division by variables")
	assert.Contains(t, v.Warnings[1], "undefined at point (0, 0)")

	// Free symbols outside the configured set.
	expr, err = p.Parse("a + x")
	require.NoError(t, err)
	v = p.Validate(expr)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "Unexpected symbols found: a")
}

func TestDomainInfo(t *testing.T) {
	p := Default()

	expr, err := p.Parse("log(x) + sqrt(y) + 1/(x-1)")
	require.NoError(t, err)
	info := p.DomainInfo(expr)
	assert.Equal(t, []string{"x", "y"}, info.Variables)
	require.Len(t, info.Restrictions, 3)
	assert.Contains(t, info.Restrictions[0], "Logarithmic")
	assert.Contains(t, info.Restrictions[1], "Square root")
	assert.Contains(t, info.Restrictions[2], "denominators: x - 1")
	assert.Equal(t, [2]float64{-10, 10}, info.SuggestedRange)

	info = p.DomainInfo(symbolic.Sum(symbolic.Power(symbolic.V("x"), symbolic.Int(2))))
	assert.Empty(t, info.Restrictions)

	// A cube root is fractional but not a square root.
	expr, err = p.Parse("x**(1/3)")
	require.NoError(t, err)
	assert.Empty(t, p.DomainInfo(expr).Restrictions)
}

func TestNumericFunc(t *testing.T) {
	p := Default()

	expr, err := p.Parse("x**2 + y**2")
	require.NoError(t, err)

	// Default ordering is lexicographic over free variables.
	f, err := NumericFunc(expr, nil)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, f(3, 4), 1e-12)

	g, err := NumericFunc(expr, []string{"y", "x"})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, g(4, 3), 1e-12)
}

func TestParseScientificNotation(t *testing.T) {
	p := Default()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer exponent", "1e5", "100000"},
		{"decimal mantissa", "2.5e3", "2500"},
		{"negative exponent", "1e-2", "1/100"},
		{"explicit plus", "3E+2", "300"},
		{"in a product", "1e5*x", "100000*x"},
		{"bare e is the constant", "2e", "2*e"},
		{"e with sign but no digits", "2e+x", "2*e + x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParseUnicodeVariable(t *testing.T) {
	p := Default()
	expr, err := p.Parse("θ + x")
	require.NoError(t, err)
	assert.Equal(t, "x + θ", expr.String())

	vars := symbolic.Vars(expr)
	require.Len(t, vars, 2)
	for _, v := range vars {
		assert.True(t, utf8.ValidString(v), "variable %q is not valid UTF-8", v)
	}

	v := p.Validate(expr)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "θ")
}
