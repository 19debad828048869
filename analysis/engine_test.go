package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcalc/parse"
	"graphcalc/symbolic"
)

func mustParse(t *testing.T, input string) symbolic.Expr {
	t.Helper()
	expr, err := parse.Default().Parse(input)
	require.NoError(t, err)
	return expr
}

func TestDerivatives(t *testing.T) {
	e := New(nil)
	derivs := e.Derivatives(mustParse(t, "x**2 + y**2"))

	assert.Equal(t, "2*x", derivs["fx"].String())
	assert.Equal(t, "2*y", derivs["fy"].String())
	assert.Equal(t, "2", derivs["fxx"].String())
	assert.Equal(t, "2", derivs["fyy"].String())
	assert.Equal(t, "0", derivs["fxy"].String())
	assert.Equal(t, "4", derivs["discriminant"].String())
	assert.Equal(t, "sqrt(4*x**2 + 4*y**2)", derivs["gradient_magnitude"].String())
}

func TestDerivativesSingleVariable(t *testing.T) {
	e := New(nil)
	derivs := e.Derivatives(mustParse(t, "sin(x)"))

	assert.Equal(t, "cos(x)", derivs["fx"].String())
	_, ok := derivs["fy"]
	assert.False(t, ok)
	_, ok = derivs["discriminant"]
	assert.False(t, ok)
	_, ok = derivs["gradient_magnitude"]
	assert.False(t, ok)
}

func TestCriticalPointsTwoVariables(t *testing.T) {
	e := New(nil)
	points := e.CriticalPoints(mustParse(t, "x**2 + y**2"), -10, 10, -10, 10)

	require.Len(t, points, 1)
	assert.InDelta(t, 0.0, points[0].X, 1e-9)
	assert.InDelta(t, 0.0, points[0].Y, 1e-9)
	assert.InDelta(t, 0.0, points[0].Z, 1e-9)
}

func TestCriticalPointsSingleVariable(t *testing.T) {
	e := New(nil)
	points := e.CriticalPoints(mustParse(t, "x**3 - 3*x"), -10, 10, -10, 10)

	require.Len(t, points, 2)
	assert.InDelta(t, -1.0, points[0].X, 1e-6)
	assert.InDelta(t, 0.0, points[0].Y, 1e-9)
	assert.InDelta(t, 2.0, points[0].Z, 1e-6)
	assert.InDelta(t, 1.0, points[1].X, 1e-6)
	assert.InDelta(t, -2.0, points[1].Z, 1e-6)
}

func TestCriticalPointsDomainFilter(t *testing.T) {
	e := New(nil)

	// The only critical point of (x-5)**2 + y**2 sits at x = 5, outside the
	// search rectangle.
	points := e.CriticalPoints(mustParse(t, "(x-5)**2 + y**2"), -10, 4, -10, 10)
	assert.Empty(t, points)
}

func TestCriticalPointsNoVariables(t *testing.T) {
	e := New(nil)
	assert.Empty(t, e.CriticalPoints(symbolic.Int(7), -10, 10, -10, 10))
}

func TestExtremaMinimum(t *testing.T) {
	e := New(nil)
	ext := e.Extrema(mustParse(t, "x**2 + y**2"), -10, 10, -10, 10)

	require.Len(t, ext.LocalMinima, 1)
	assert.Empty(t, ext.LocalMaxima)
	assert.Empty(t, ext.SaddlePoints)
	require.NotNil(t, ext.GlobalMinimum)
	assert.InDelta(t, 0.0, ext.GlobalMinimum.Z, 1e-9)
}

func TestExtremaSaddle(t *testing.T) {
	e := New(nil)
	ext := e.Extrema(mustParse(t, "x**2 - y**2"), -10, 10, -10, 10)

	require.Len(t, ext.SaddlePoints, 1)
	assert.Empty(t, ext.LocalMinima)
	assert.Empty(t, ext.LocalMaxima)
	assert.InDelta(t, 0.0, ext.SaddlePoints[0].X, 1e-9)
	assert.InDelta(t, 0.0, ext.SaddlePoints[0].Y, 1e-9)
}

func TestExtremaMaximum(t *testing.T) {
	e := New(nil)
	ext := e.Extrema(mustParse(t, "-(x**2 + y**2)"), -10, 10, -10, 10)

	require.Len(t, ext.LocalMaxima, 1)
	require.NotNil(t, ext.GlobalMaximum)
	assert.InDelta(t, 0.0, ext.GlobalMaximum.Z, 1e-9)
}

func TestExtremaEmpty(t *testing.T) {
	e := New(nil)

	// A plane has no critical points.
	ext := e.Extrema(mustParse(t, "x + y"), -10, 10, -10, 10)
	assert.Empty(t, ext.LocalMinima)
	assert.Nil(t, ext.GlobalMinimum)
}

func TestLimitsReciprocal(t *testing.T) {
	e := New(nil)
	entries := e.Limits(mustParse(t, "1/x"))

	require.Len(t, entries, 2)
	assert.Equal(t, LimitEntry{"x_to_inf", "0"}, entries[0])
	assert.Equal(t, LimitEntry{"x_to_neg_inf", "0"}, entries[1])
}

func TestLimitsOrigin(t *testing.T) {
	e := New(nil)

	entries := e.Limits(mustParse(t, "x**2 + y**2"))
	byLabel := map[string]string{}
	for _, entry := range entries {
		byLabel[entry.Label] = entry.Value
	}
	assert.Equal(t, "oo", byLabel["x_to_inf"])
	assert.Equal(t, "oo", byLabel["y_to_neg_inf"])
	assert.Equal(t, "0", byLabel["origin_via_x_axis"])
	assert.Equal(t, "0", byLabel["origin_limit"])

	// Path-dependent limit at the origin.
	entries = e.Limits(mustParse(t, "(x**2 - y**2)/(x**2 + y**2)"))
	byLabel = map[string]string{}
	for _, entry := range entries {
		byLabel[entry.Label] = entry.Value
	}
	assert.Equal(t, "1", byLabel["origin_via_x_axis"])
	assert.Equal(t, "-1", byLabel["origin_via_y_axis"])
	assert.Equal(t, "Does not exist", byLabel["origin_limit"])
}

func TestProperties(t *testing.T) {
	e := New(nil)

	p := e.Properties(mustParse(t, "x**2 + y**2"))
	assert.Equal(t, "Polynomial", p.Type)
	assert.Equal(t, []string{"x", "y"}, p.Variables)
	assert.Equal(t, 2, p.Dimension)
	assert.Equal(t, "Even function", p.Symmetry)
	assert.Equal(t, "Not obviously periodic", p.Periodic)
	assert.Equal(t, "Continuous everywhere", p.Continuous)

	p = e.Properties(mustParse(t, "x**3 + x"))
	assert.Equal(t, "Polynomial", p.Type)
	assert.True(t, p.HasDegree)
	assert.Equal(t, 3, p.Degree)
	assert.Equal(t, "Odd function", p.Symmetry)

	p = e.Properties(mustParse(t, "sin(x)"))
	assert.Equal(t, "Trigonometric", p.Type)
	assert.Equal(t, "Odd function", p.Symmetry)
	assert.Equal(t, "Likely periodic (contains trig functions)", p.Periodic)

	p = e.Properties(mustParse(t, "exp(x) + y"))
	assert.Equal(t, "Exponential", p.Type)

	p = e.Properties(mustParse(t, "log(x)"))
	assert.Equal(t, "Logarithmic", p.Type)

	p = e.Properties(mustParse(t, "1/x"))
	assert.Equal(t, "General", p.Type)
	assert.Equal(t, "May have discontinuities", p.Continuous)
}

func TestSurfaceProperties(t *testing.T) {
	e := New(nil)
	sp := e.SurfaceProperties(mustParse(t, "x**2 + y**2"))

	assert.Equal(t, "(-2*x, -2*y, 1)", sp.NormalVector)
	assert.Equal(t, "sqrt(1 + (2*x)**2 + (2*y)**2)", sp.AreaElement)
	assert.Equal(t, "2", sp.MeanCurvature)
	assert.Equal(t, "4", sp.GaussianCurvature)
	assert.Equal(t, "Curves where x**2 + y**2 = constant", sp.LevelCurves)
}
