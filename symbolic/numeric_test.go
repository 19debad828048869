package symbolic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	x, y := V("x"), V("y")

	f, err := Compile(Sum(Power(x, Int(2)), Power(y, Int(2))), []string{"x", "y"})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, f(3, 4), 1e-12)
	assert.InDelta(t, 0.0, f(0, 0), 1e-12)

	g, err := Compile(Sin(x), []string{"x"})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, g(math.Pi), 1e-12)
}

func TestCompileMissingVariable(t *testing.T) {
	_, err := Compile(V("x"), []string{"y"})
	assert.Error(t, err)
}

func TestCompileComplexProjection(t *testing.T) {
	x := V("x")

	// sqrt of a negative argument is purely imaginary; the real part is zero
	// rather than a hole in the plot.
	f, err := Compile(Sqrt(x), []string{"x"})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, f(4), 1e-12)
	assert.InDelta(t, 0.0, f(-4), 1e-9)

	g, err := Compile(Log(x), []string{"x"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, g(math.E), 1e-12)
	// log(-1) = i*pi: real part zero.
	assert.InDelta(t, 0.0, g(-1), 1e-9)
}

func TestCompileSingularities(t *testing.T) {
	x := V("x")

	f, err := Compile(Div(Int(1), x), []string{"x"})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f(0)))
	assert.InDelta(t, 0.5, f(2), 1e-12)

	// Negative base with an integer exponent stays real.
	g, err := Compile(Power(x, Int(3)), []string{"x"})
	require.NoError(t, err)
	assert.InDelta(t, -8.0, g(-2), 1e-12)
}

func TestCompileArgumentCount(t *testing.T) {
	f, err := Compile(V("x"), []string{"x"})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f()))
}
