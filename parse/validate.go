package parse

import (
	"fmt"
	"strings"

	"graphcalc/symbolic"
)

// Validation is the outcome of sanity-checking a parsed expression.
type Validation struct {
	Valid    bool
	Warnings []string
	Errors   []string
}

// probePoints are fixed evaluation spots used to catch expressions that are
// undefined over much of the plane before plotting starts.
var probePoints = [][2]float64{{0, 0}, {1, 1}, {-1, -1}, {0.5, 0.5}}

// Validate flags free symbols outside the configured variable set, literal
// division-by-variable subterms, and probe points where the expression fails
// to evaluate. Warnings never make the result invalid on their own.
func (p *Parser) Validate(expr symbolic.Expr) Validation {
	v := Validation{Valid: true}

	var unexpected []string
	free := symbolic.Vars(expr)
	for _, name := range free {
		if !p.variables[name] {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) > 0 {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("Unexpected symbols found: %s", strings.Join(unexpected, ", ")))
	}

	if symbolic.HasReciprocal(expr, "x") || symbolic.HasReciprocal(expr, "y") {
		v.Warnings = append(v.Warnings,
			"Expression contains division by variables - check for singularities")
	}

	for _, pt := range probePoints {
		values := map[string]float64{}
		switch {
		case len(free) >= 2:
			values["x"] = pt[0]
			values["y"] = pt[1]
		case len(free) == 1:
			values[free[0]] = pt[0]
		default:
			continue
		}
		if _, ok := symbolic.EvalAt(expr, values); !ok {
			v.Warnings = append(v.Warnings,
				fmt.Sprintf("Expression may be undefined at point (%g, %g)", pt[0], pt[1]))
		}
	}
	return v
}

// DomainInfo carries textual domain advisories. Restrictions describe where
// an expression is undefined; they are hints for the user, not a computed
// admissible domain.
type DomainInfo struct {
	Variables      []string
	Restrictions   []string
	SuggestedRange [2]float64
}

// DomainInfo reports advisory domain restrictions: log arguments must be
// positive, sqrt arguments non-negative, denominators nonzero.
func (p *Parser) DomainInfo(expr symbolic.Expr) DomainInfo {
	info := DomainInfo{
		Variables:      symbolic.Vars(expr),
		SuggestedRange: [2]float64{-10, 10},
	}

	if symbolic.HasFn(expr, "log") {
		info.Restrictions = append(info.Restrictions,
			"Logarithmic functions require positive arguments")
	}
	if symbolic.HasSqrt(expr) {
		info.Restrictions = append(info.Restrictions,
			"Square root functions require non-negative arguments")
	}
	if dens := denominators(expr); len(dens) > 0 {
		info.Restrictions = append(info.Restrictions,
			fmt.Sprintf("Avoid zeros in denominators: %s", strings.Join(dens, ", ")))
	}
	return info
}

// denominators collects the bases of negative-exponent powers, rendered as
// strings, deduplicated in first-seen order.
func denominators(expr symbolic.Expr) []string {
	seen := map[string]bool{}
	var out []string
	symbolic.Walk(expr, func(n symbolic.Expr) bool {
		p, ok := n.(*symbolic.Pow)
		if !ok {
			return true
		}
		if en, ok := p.Exponent().(*symbolic.Num); ok && en.IsNegative() {
			s := p.Base().String()
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
		return true
	})
	return out
}
