package analysis

import (
	"fmt"
	"strings"

	"graphcalc/symbolic"
)

// reportRuler underlines the report title.
var reportRuler = strings.Repeat("=", 50)

// Report renders the full analysis as text. Section order and formatting are
// fixed, so identical input yields byte-identical output across runs.
func (e *Engine) Report(expr symbolic.Expr) string {
	var lines []string
	lines = append(lines, "COMPREHENSIVE FUNCTION ANALYSIS REPORT")
	lines = append(lines, reportRuler)

	lines = append(lines, fmt.Sprintf("\nFunction: f(x,y) = %s", expr))

	props := e.Properties(expr)
	lines = append(lines, fmt.Sprintf("\nFunction Type: %s", props.Type))
	lines = append(lines, fmt.Sprintf("Variables: %s", strings.Join(props.Variables, ", ")))
	lines = append(lines, fmt.Sprintf("Dimension: %d", props.Dimension))

	derivs := e.Derivatives(expr)
	if fx, ok := derivs["fx"]; ok {
		lines = append(lines, fmt.Sprintf("\n∂f/∂x = %s", fx))
	}
	if fy, ok := derivs["fy"]; ok {
		lines = append(lines, fmt.Sprintf("∂f/∂y = %s", fy))
	}

	points := e.CriticalPoints(expr, DefaultMin, DefaultMax, DefaultMin, DefaultMax)
	if len(points) > 0 {
		lines = append(lines, fmt.Sprintf("\nCritical Points: %d found", len(points)))
		for i, pt := range points {
			if i == 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("  Point %d: (%.4f, %.4f, %.4f)", i+1, pt.X, pt.Y, pt.Z))
		}
	} else {
		lines = append(lines, "\nNo critical points found in the analyzed domain.")
	}

	limits := e.Limits(expr)
	if len(limits) > 0 {
		lines = append(lines, "\nLimit Analysis:")
		for _, entry := range limits {
			lines = append(lines, fmt.Sprintf("  %s: %s", entry.Label, entry.Value))
		}
	}

	if props.Symmetry != "" {
		lines = append(lines, fmt.Sprintf("\nSymmetry: %s", props.Symmetry))
	}
	lines = append(lines, fmt.Sprintf("Continuity: %s", props.Continuous))

	return strings.Join(lines, "\n")
}
