package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	x := V("x")
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"power rule", Power(x, Int(2)), "2*x"},
		{"cube", Power(x, Int(3)), "3*x**2"},
		{"constant", Int(7), "0"},
		{"other variable", Power(V("y"), Int(2)), "0"},
		{"sine", Sin(x), "cos(x)"},
		{"cosine", Cos(x), "-sin(x)"},
		{"log", Log(x), "1/x"},
		{"exp chain", Exp(Prod(Int(2), x)), "2*exp(2*x)"},
		{"product rule", Prod(x, Sin(x)), "sin(x) + x*cos(x)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.expr, "x").String())
		})
	}
}

func TestDiffN(t *testing.T) {
	x := V("x")
	assert.Equal(t, "6*x", DiffN(Power(x, Int(3)), "x", 2).String())
	assert.Equal(t, "6", DiffN(Power(x, Int(3)), "x", 3).String())
	assert.Equal(t, "0", DiffN(Power(x, Int(3)), "x", 4).String())
}

func TestGradientAndHessian(t *testing.T) {
	x, y := V("x"), V("y")
	f := Sum(Power(x, Int(2)), Power(y, Int(2)))

	grad := Gradient(f, []string{"x", "y"})
	require.Len(t, grad, 2)
	assert.Equal(t, "2*x", grad[0].String())
	assert.Equal(t, "2*y", grad[1].String())

	hess := Hessian(f, []string{"x", "y"})
	require.Len(t, hess, 2)
	assert.True(t, hess[0][0].Equal(Int(2)))
	assert.True(t, hess[0][1].Equal(Int(0)))
	assert.True(t, hess[1][0].Equal(Int(0)))
	assert.True(t, hess[1][1].Equal(Int(2)))

	// Saddle: mixed partial of x*y.
	mixed := Hessian(Prod(x, y), []string{"x", "y"})
	assert.True(t, mixed[0][1].Equal(Int(1)))
}

func TestIsPolynomial(t *testing.T) {
	x, y := V("x"), V("y")

	assert.True(t, IsPolynomial(Sum(Power(x, Int(2)), Prod(Int(3), x, y))))
	assert.True(t, IsPolynomial(Int(4)))
	assert.False(t, IsPolynomial(Sin(x)))
	assert.False(t, IsPolynomial(Div(Int(1), x)))
	assert.False(t, IsPolynomial(Sqrt(x)))

	// Functions of constants are still constant.
	assert.True(t, IsPolynomial(Sum(x, Sin(Int(1)))))
}

func TestDegree(t *testing.T) {
	x := V("x")
	assert.Equal(t, 3, Degree(Sum(Power(x, Int(3)), x), "x"))
	assert.Equal(t, 2, Degree(Prod(x, x), "x"))
	assert.Equal(t, 0, Degree(Int(5), "x"))
	assert.Equal(t, 1, Degree(Prod(Int(4), x, V("y")), "x"))
}

func TestPolyCoeffs(t *testing.T) {
	x := V("x")

	coeffs, ok := PolyCoeffs(Sum(Power(x, Int(2)), Int(-4)), "x")
	require.True(t, ok)
	assert.InDelta(t, 1.0, coeffs[2], 1e-12)
	assert.InDelta(t, -4.0, coeffs[0], 1e-12)

	coeffs, ok = PolyCoeffs(Sum(Prod(Int(3), x), Int(1)), "x")
	require.True(t, ok)
	assert.InDelta(t, 3.0, coeffs[1], 1e-12)
	assert.InDelta(t, 1.0, coeffs[0], 1e-12)

	_, ok = PolyCoeffs(Sin(x), "x")
	assert.False(t, ok)
	_, ok = PolyCoeffs(Div(Int(1), x), "x")
	assert.False(t, ok)
}
