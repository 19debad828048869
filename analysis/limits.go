package analysis

import (
	"math"

	"graphcalc/symbolic"
)

// LimitEntry is one labeled limit in display order.
type LimitEntry struct {
	Label string
	Value string
}

// cannotDetermine is the degraded value for a limit that no method settled.
const cannotDetermine = "Cannot determine"

// Limits evaluates the limits toward infinity for each present variable and,
// for two-variable expressions, the limit at the origin along each axis. If
// the two axis limits agree the combined origin limit is recorded; if they
// disagree it does not exist. A failure in one limit degrades only that
// entry.
func (e *Engine) Limits(expr symbolic.Expr) []LimitEntry {
	var entries []LimitEntry
	hasX := symbolic.HasVar(expr, "x")
	hasY := symbolic.HasVar(expr, "y")

	if hasX {
		entries = append(entries,
			LimitEntry{"x_to_inf", e.limitOneVar(expr, "x", "y", math.Inf(1))},
			LimitEntry{"x_to_neg_inf", e.limitOneVar(expr, "x", "y", math.Inf(-1))},
		)
	}
	if hasY {
		entries = append(entries,
			LimitEntry{"y_to_inf", e.limitOneVar(expr, "y", "x", math.Inf(1))},
			LimitEntry{"y_to_neg_inf", e.limitOneVar(expr, "y", "x", math.Inf(-1))},
		)
	}
	if hasX && hasY {
		alongX := symbolic.Limit(expr.Sub("y", symbolic.Int(0)).Simplify(), "x", 0)
		alongY := symbolic.Limit(expr.Sub("x", symbolic.Int(0)).Simplify(), "y", 0)
		entries = append(entries,
			LimitEntry{"origin_via_x_axis", alongX.String()},
			LimitEntry{"origin_via_y_axis", alongY.String()},
			LimitEntry{"origin_limit", originLimit(alongX, alongY)},
		)
	}
	return entries
}

// limitOneVar pins the other variable at zero so the limit is univariate,
// matching an approach along the variable's axis.
func (e *Engine) limitOneVar(expr symbolic.Expr, name, other string, point float64) string {
	reduced := expr
	if symbolic.HasVar(expr, other) {
		reduced = expr.Sub(other, symbolic.Int(0)).Simplify()
	}
	lv := symbolic.Limit(reduced, name, point)
	if lv.Kind == symbolic.LimitUnknown {
		e.logger.Debug("limit not determined", "variable", name)
	}
	return lv.String()
}

func originLimit(a, b symbolic.LimitValue) string {
	if a.Kind == symbolic.LimitUnknown || b.Kind == symbolic.LimitUnknown {
		return cannotDetermine
	}
	if a.Kind != b.Kind {
		return "Does not exist"
	}
	if a.Kind == symbolic.LimitFinite && math.Abs(a.F-b.F) > globalTolerance*(1+math.Abs(a.F)) {
		return "Does not exist"
	}
	return a.String()
}
