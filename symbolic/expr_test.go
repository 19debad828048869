package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringForms(t *testing.T) {
	x, y := V("x"), V("y")
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"sum of squares", Sum(Power(x, Int(2)), Power(y, Int(2))), "x**2 + y**2"},
		{"difference of squares", Sum(Power(x, Int(2)), Neg(Power(y, Int(2)))), "x**2 - y**2"},
		{"reciprocal", Div(Int(1), x), "1/x"},
		{"half coefficient", Div(x, Int(2)), "x/2"},
		{"sqrt", Sqrt(x), "sqrt(x)"},
		{"product", Prod(Int(2), x, y), "2*x*y"},
		{"negation", Neg(x), "-x"},
		{"constant term last", Sum(x, Int(-3)), "x - 3"},
		{"leading negative", Sum(Neg(x), y), "-x + y"},
		{"power of product", Power(Prod(Int(2), x), Int(2)), "4*x**2"},
		{"nested function", Sin(Prod(Int(2), x)), "sin(2*x)"},
		{"quotient of powers", Div(Power(x, Int(2)), Power(y, Int(3))), "x**2/y**3"},
		{"pi", Prod(Int(2), Pi), "2*pi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestSimplify(t *testing.T) {
	x := V("x")

	assert.Equal(t, "2*x", Sum(x, x).String())
	assert.True(t, Sum(x, Neg(x)).Equal(Int(0)))
	assert.Equal(t, "x**2", Prod(x, x).String())
	assert.Equal(t, "x**6", Power(Power(x, Int(2)), Int(3)).String())
	assert.True(t, Power(Int(2), Int(10)).Equal(Int(1024)))
	assert.True(t, Prod(Int(0), x).Equal(Int(0)))
	assert.True(t, Power(x, Int(0)).Equal(Int(1)))

	// Inverse function pairs collapse exactly.
	assert.True(t, Exp(Log(x)).Equal(x))
	assert.True(t, Log(Exp(x)).Equal(x))
	assert.True(t, Log(E).Equal(Int(1)))
	assert.True(t, Log(Int(1)).Equal(Int(0)))
}

func TestFunctionParity(t *testing.T) {
	x := V("x")

	// Odd functions pull the sign out, even functions drop it, so symmetry
	// checks can compare trees structurally.
	assert.True(t, Sin(Neg(x)).Equal(Neg(Sin(x))))
	assert.True(t, Tan(Neg(x)).Equal(Neg(Tan(x))))
	assert.True(t, Cos(Neg(x)).Equal(Cos(x)))
	assert.True(t, Abs(Neg(x)).Equal(Abs(x)))

	// The whole-expression check the symmetry classifier relies on.
	f := Prod(x, Sin(x))
	g := f.Sub("x", Neg(x)).Simplify()
	assert.True(t, f.Equal(g), "x*sin(x) is even")
}

func TestCanonicalOrdering(t *testing.T) {
	x, y := V("x"), V("y")
	a := Sum(Power(x, Int(2)), Power(y, Int(2)))
	b := Sum(Power(y, Int(2)), Power(x, Int(2)))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.String(), b.String())
}

func TestSubAndEval(t *testing.T) {
	x, y := V("x"), V("y")
	f := Sum(Power(x, Int(2)), Power(y, Int(2)))

	v, ok := EvalAt(f, map[string]float64{"x": 1, "y": 2})
	require.True(t, ok)
	assert.InDelta(t, 5.0, v, 1e-12)

	// Substituting one variable leaves the other free.
	g := f.Sub("y", Int(0)).Simplify()
	assert.Equal(t, "x**2", g.String())
	_, ok = g.Eval()
	assert.False(t, ok)

	// Division by zero is reported, not panicked over.
	_, ok = EvalAt(Div(Int(1), x), map[string]float64{"x": 0})
	assert.False(t, ok)
}

func TestTraversalHelpers(t *testing.T) {
	x, y := V("x"), V("y")

	assert.Equal(t, []string{"x", "y"}, Vars(Sum(y, Sin(x))))
	assert.True(t, HasVar(Sin(x), "x"))
	assert.False(t, HasVar(Sin(x), "y"))

	assert.True(t, HasFn(Sum(x, Log(y)), "log"))
	assert.False(t, HasFn(Sum(x, Log(y)), "sin"))
	assert.True(t, HasSqrt(Sqrt(x)))
	assert.True(t, HasSqrt(Power(x, Rat(5, 2))))
	assert.False(t, HasSqrt(Power(x, Int(2))))
	// Cube roots are fractional but not square roots.
	assert.False(t, HasSqrt(Power(x, Rat(1, 3))))
	assert.False(t, HasSqrt(Power(x, Rat(2, 3))))
	assert.True(t, HasReciprocal(Div(Int(1), x), "x"))
	assert.False(t, HasReciprocal(Power(x, Int(2)), "x"))
}
