package analysis

import (
	"fmt"

	"graphcalc/symbolic"
)

// Properties summarizes general traits of a function.
type Properties struct {
	Variables []string
	Dimension int
	Type      string
	// Degree is set only for single-variable polynomials.
	Degree int
	// HasDegree reports whether Degree is meaningful.
	HasDegree  bool
	Symmetry   string
	Periodic   string
	Continuous string
}

// Properties classifies the function type (priority order: polynomial,
// trigonometric, exponential, logarithmic, general), tests even/odd symmetry
// on the first free variable, and makes coarse periodicity and continuity
// guesses.
func (e *Engine) Properties(expr symbolic.Expr) Properties {
	vars := symbolic.Vars(expr)
	p := Properties{
		Variables: vars,
		Dimension: len(vars),
	}

	switch {
	case symbolic.IsPolynomial(expr):
		p.Type = "Polynomial"
		if len(vars) == 1 {
			p.Degree = symbolic.Degree(expr, vars[0])
			p.HasDegree = true
		}
	case symbolic.HasFn(expr, "sin", "cos", "tan"):
		p.Type = "Trigonometric"
	case symbolic.HasFn(expr, "exp"):
		p.Type = "Exponential"
	case symbolic.HasFn(expr, "log"):
		p.Type = "Logarithmic"
	default:
		p.Type = "General"
	}

	if len(vars) >= 1 {
		name := vars[0]
		mirrored := expr.Sub(name, symbolic.Neg(symbolic.V(name))).Simplify()
		switch {
		case mirrored.Equal(expr.Simplify()):
			p.Symmetry = "Even function"
		case mirrored.Equal(symbolic.Neg(expr).Simplify()):
			p.Symmetry = "Odd function"
		default:
			p.Symmetry = "Neither even nor odd"
		}
	}

	if symbolic.HasFn(expr, "sin", "cos") {
		p.Periodic = "Likely periodic (contains trig functions)"
	} else {
		p.Periodic = "Not obviously periodic"
	}

	if symbolic.HasReciprocal(expr, "x") || symbolic.HasReciprocal(expr, "y") {
		p.Continuous = "May have discontinuities"
	} else {
		p.Continuous = "Continuous everywhere"
	}
	return p
}

// SurfaceProperties carries descriptive formulas for a surface z = f(x,y).
type SurfaceProperties struct {
	NormalVector      string
	AreaElement       string
	MeanCurvature     string
	GaussianCurvature string
	LevelCurves       string
}

// SurfaceProperties derives normal-vector and area-element formulas from the
// first partials, and mean and Gaussian curvature from the second partials.
// All values are descriptive strings.
func (e *Engine) SurfaceProperties(expr symbolic.Expr) SurfaceProperties {
	var sp SurfaceProperties
	derivs := e.Derivatives(expr)

	if fx, ok := derivs["fx"]; ok {
		if fy, ok := derivs["fy"]; ok {
			sp.NormalVector = fmt.Sprintf("(-%s, -%s, 1)", fx, fy)
			sp.AreaElement = fmt.Sprintf("sqrt(1 + (%s)**2 + (%s)**2)", fx, fy)
		}
	}
	if fxx, ok := derivs["fxx"]; ok {
		fyy := derivs["fyy"]
		sp.MeanCurvature = symbolic.Div(symbolic.Sum(fxx, fyy), symbolic.Int(2)).String()
		sp.GaussianCurvature = derivs["discriminant"].String()
	}
	sp.LevelCurves = fmt.Sprintf("Curves where %s = constant", expr)
	return sp
}
