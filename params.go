package main

import (
	"fmt"
	"math"
	"strings"

	"graphcalc/parse"
	"graphcalc/symbolic"
)

// boundParser evaluates domain-bound entries with the same grammar as the
// equation field, so "pi/2", "2pi" and "-3*pi/4" all work.
var boundParser = parse.Default()

// parseBoundExpr evaluates a constant expression entered as a plot bound.
// Anything with a free variable, or that does not evaluate to a finite
// number, is rejected.
func parseBoundExpr(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	expr, err := boundParser.Parse(s)
	if err != nil {
		return 0, false
	}
	if len(symbolic.Vars(expr)) > 0 {
		return 0, false
	}
	v, ok := symbolic.EvalAt(expr, nil)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// piFractions are the bound values shown with a pi spelling instead of %g,
// matched with absolute tolerance 1e-10.
var piFractions = []struct {
	val  float64
	text string
}{
	{math.Pi / 8, "pi/8"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 2, "pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
	{3 * math.Pi / 4, "3*pi/4"},
	{math.Pi, "pi"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi, "2*pi"},
}

// formatBound renders a bound value for the domain editor and the window
// footer, preferring the pi spellings the editor accepts back.
func formatBound(val float64) string {
	for _, pf := range piFractions {
		if math.Abs(val-pf.val) < 1e-10 {
			return pf.text
		}
		if math.Abs(val+pf.val) < 1e-10 {
			return "-" + pf.text
		}
	}
	return fmt.Sprintf("%g", val)
}
