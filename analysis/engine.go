// Package analysis computes calculus properties of parsed expressions:
// derivative sets, critical points with second-derivative-test
// classification, limits, symmetry and type properties, and a deterministic
// text report. Every operation is a pure function of the expression and an
// optional domain; a failure inside one operation degrades that operation's
// result and never aborts its siblings.
package analysis

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"graphcalc/symbolic"
)

// Default search domain for critical points, matching the suggested plot
// range.
const (
	DefaultMin = -10.0
	DefaultMax = 10.0
)

// maxCriticalPoints caps the reported critical points.
const maxCriticalPoints = 10

// Point is a critical point with the function value at it.
type Point struct {
	X, Y, Z float64
}

// Engine runs the analysis operations. It holds no per-expression state;
// the logger records skipped solutions and degraded stages.
type Engine struct {
	logger *log.Logger
}

// New returns an Engine logging to the given logger. A nil logger discards.
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{logger: logger}
}

// DerivativeOrder is the display order of derivative labels.
var DerivativeOrder = []string{
	"fx", "fy", "fxx", "fyy", "fxy", "discriminant", "gradient_magnitude",
}

// Derivatives computes the partial derivatives whose preconditions hold:
// first partials per present variable, second partials plus the
// second-derivative-test discriminant when both variables are present, and
// the gradient magnitude when both first partials exist.
func (e *Engine) Derivatives(expr symbolic.Expr) map[string]symbolic.Expr {
	out := map[string]symbolic.Expr{}
	hasX := symbolic.HasVar(expr, "x")
	hasY := symbolic.HasVar(expr, "y")

	if hasX {
		out["fx"] = symbolic.Diff(expr, "x")
	}
	if hasY {
		out["fy"] = symbolic.Diff(expr, "y")
	}
	if hasX && hasY {
		fxx := symbolic.DiffN(expr, "x", 2)
		fyy := symbolic.DiffN(expr, "y", 2)
		fxy := symbolic.Diff(symbolic.Diff(expr, "x"), "y")
		out["fxx"] = fxx
		out["fyy"] = fyy
		out["fxy"] = fxy
		out["discriminant"] = symbolic.Sum(
			symbolic.Prod(fxx, fyy),
			symbolic.Neg(symbolic.Power(fxy, symbolic.Int(2))),
		)
	}
	if fx, ok := out["fx"]; ok {
		if fy, ok := out["fy"]; ok {
			out["gradient_magnitude"] = symbolic.Sqrt(symbolic.Sum(
				symbolic.Power(fx, symbolic.Int(2)),
				symbolic.Power(fy, symbolic.Int(2)),
			))
		}
	}
	return out
}

// CriticalPoints finds points where all first partials vanish, restricted to
// the given rectangle and capped at ten. Solutions with a non-finite
// coordinate or function value are skipped without aborting the search.
func (e *Engine) CriticalPoints(expr symbolic.Expr, xMin, xMax, yMin, yMax float64) []Point {
	hasX := symbolic.HasVar(expr, "x")
	hasY := symbolic.HasVar(expr, "y")

	var points []Point
	switch {
	case hasX && hasY:
		fx := symbolic.Diff(expr, "x")
		fy := symbolic.Diff(expr, "y")
		for _, sol := range symbolic.SolveSystem(fx, fy, "x", "y", xMin, xMax, yMin, yMax) {
			z, ok := symbolic.EvalAt(expr, map[string]float64{"x": sol[0], "y": sol[1]})
			if !ok || !finite(sol[0], sol[1], z) {
				e.logger.Debug("skipping critical point with non-finite value",
					"x", sol[0], "y", sol[1])
				continue
			}
			points = append(points, Point{X: sol[0], Y: sol[1], Z: z})
		}
	case hasX:
		fx := symbolic.Diff(expr, "x")
		for _, root := range symbolic.Solve(fx, "x", xMin, xMax) {
			z, ok := symbolic.EvalAt(expr, map[string]float64{"x": root})
			if !ok || !finite(root, z) {
				e.logger.Debug("skipping critical point with non-finite value", "x", root)
				continue
			}
			points = append(points, Point{X: root, Y: 0, Z: z})
		}
	}

	if len(points) > maxCriticalPoints {
		points = points[:maxCriticalPoints]
	}
	return points
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Extrema classifies critical points within a domain.
type Extrema struct {
	LocalMaxima   []Point
	LocalMinima   []Point
	SaddlePoints  []Point
	GlobalMaximum *Point
	GlobalMinimum *Point
}

// globalTolerance is the absolute tolerance for matching the extreme value.
const globalTolerance = 1e-10

// Extrema finds critical points in the rectangle and classifies each by the
// second-derivative test: D > 0 with fxx > 0 is a local minimum, D > 0
// otherwise a local maximum, D < 0 a saddle. D = 0 is inconclusive and the
// point lands in no bucket. The global extremum is the first critical point
// in evaluation order whose value is within tolerance of the extreme value.
func (e *Engine) Extrema(expr symbolic.Expr, xMin, xMax, yMin, yMax float64) Extrema {
	var ext Extrema
	points := e.CriticalPoints(expr, xMin, xMax, yMin, yMax)
	if len(points) == 0 {
		return ext
	}

	derivs := e.Derivatives(expr)
	if disc, ok := derivs["discriminant"]; ok {
		fxx := derivs["fxx"]
		for _, pt := range points {
			at := map[string]float64{"x": pt.X, "y": pt.Y}
			d, dok := symbolic.EvalAt(disc, at)
			fxxVal, fok := symbolic.EvalAt(fxx, at)
			if !dok || !fok {
				e.logger.Debug("second-derivative test not evaluable", "x", pt.X, "y", pt.Y)
				continue
			}
			switch {
			case d > 0 && fxxVal > 0:
				ext.LocalMinima = append(ext.LocalMinima, pt)
			case d > 0:
				ext.LocalMaxima = append(ext.LocalMaxima, pt)
			case d < 0:
				ext.SaddlePoints = append(ext.SaddlePoints, pt)
			}
			// d == 0 is inconclusive.
		}
	}

	maxZ, minZ := points[0].Z, points[0].Z
	for _, pt := range points[1:] {
		maxZ = math.Max(maxZ, pt.Z)
		minZ = math.Min(minZ, pt.Z)
	}
	for i := range points {
		if ext.GlobalMaximum == nil && math.Abs(points[i].Z-maxZ) < globalTolerance {
			ext.GlobalMaximum = &points[i]
		}
		if ext.GlobalMinimum == nil && math.Abs(points[i].Z-minZ) < globalTolerance {
			ext.GlobalMinimum = &points[i]
		}
	}
	return ext
}
