package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// LimitKind classifies the outcome of a limit computation.
type LimitKind int

const (
	LimitFinite LimitKind = iota
	LimitPosInf
	LimitNegInf
	// LimitNone means the one-sided limits disagree.
	LimitNone
	// LimitUnknown means no method here could settle it.
	LimitUnknown
)

// LimitValue is the result of Limit.
type LimitValue struct {
	Kind LimitKind
	F    float64
}

func finiteLimit(f float64) LimitValue { return LimitValue{Kind: LimitFinite, F: f} }

func infLimit(sign float64) LimitValue {
	if sign < 0 {
		return LimitValue{Kind: LimitNegInf}
	}
	return LimitValue{Kind: LimitPosInf}
}

func (l LimitValue) String() string {
	switch l.Kind {
	case LimitPosInf:
		return "oo"
	case LimitNegInf:
		return "-oo"
	case LimitNone:
		return "Does not exist"
	case LimitUnknown:
		return "Cannot determine"
	}
	if l.F == math.Trunc(l.F) && math.Abs(l.F) < 1e15 {
		return fmt.Sprintf("%d", int64(l.F))
	}
	return fmt.Sprintf("%g", l.F)
}

// Limit computes the limit of e as the named variable approaches point, which
// may be +/-Inf. Other variables in e must already be substituted away.
//
// Rational expressions at infinity are settled exactly by degree comparison;
// other shapes fall back to substitution, L'Hopital on quotient forms, and
// finally a two-sided numeric probe.
func Limit(e Expr, name string, point float64) LimitValue {
	e = e.Simplify()
	if !HasVar(e, name) {
		if v, ok := e.Eval(); ok && !math.IsNaN(v) {
			return finiteLimit(v)
		}
		return LimitValue{Kind: LimitUnknown}
	}
	if math.IsInf(point, 0) {
		return limitAtInfinity(e, name, point)
	}
	return limitAtPoint(e, name, point)
}

func limitAtInfinity(e Expr, name string, point float64) LimitValue {
	num, den := splitQuotient(e)
	nc, nok := PolyCoeffs(num, name)
	dc, dok := PolyCoeffs(den, name)
	if nok && dok && polyPure(num, name) && polyPure(den, name) {
		return rationalLimitAtInf(nc, dc, point)
	}
	return probeAtInfinity(e, name, point)
}

// polyPure reports whether e involves no variable other than name, so that
// its PolyCoeffs describe it completely.
func polyPure(e Expr, name string) bool {
	for _, v := range Vars(e) {
		if v != name {
			return false
		}
	}
	return true
}

func rationalLimitAtInf(num, den map[int]float64, point float64) LimitValue {
	nd, nl := leadingTerm(num)
	dd, dl := leadingTerm(den)
	if nl == 0 {
		return finiteLimit(0)
	}
	if dl == 0 {
		return LimitValue{Kind: LimitUnknown}
	}
	switch {
	case nd < dd:
		return finiteLimit(0)
	case nd == dd:
		return finiteLimit(nl / dl)
	default:
		sign := nl / dl
		if math.IsInf(point, -1) && (nd-dd)%2 == 1 {
			sign = -sign
		}
		return infLimit(sign)
	}
}

func leadingTerm(coeffs map[int]float64) (int, float64) {
	deg, lead := 0, 0.0
	for d, c := range coeffs {
		if c != 0 && d >= deg {
			deg, lead = d, c
		}
	}
	if len(coeffs) == 0 {
		return 0, 0
	}
	if lead == 0 {
		lead = coeffs[0]
	}
	return deg, lead
}

// splitQuotient separates e into numerator and denominator by pulling
// negative-exponent power factors out of a product. Non-quotient shapes come
// back as e over 1.
func splitQuotient(e Expr) (Expr, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		if b, n, neg := negPow(e); neg {
			return Int(1), Power(b, n).Simplify()
		}
		return e, Int(1)
	}
	var nums, dens []Expr
	for _, f := range m.factors {
		if b, n, neg := negPow(f); neg {
			dens = append(dens, Power(b, n))
			continue
		}
		if r, ok := f.(*Num); ok && r.val.Denom().Cmp(big.NewInt(1)) != 0 {
			nums = append(nums, Rat(r.val.Num().Int64(), 1))
			dens = append(dens, Rat(r.val.Denom().Int64(), 1))
			continue
		}
		nums = append(nums, f)
	}
	if len(dens) == 0 {
		return e, Int(1)
	}
	return Prod(nums...).Simplify(), Prod(dens...).Simplify()
}

// negPow reports whether e is base**(negative exponent) and returns the base
// with the exponent negated.
func negPow(e Expr) (Expr, Expr, bool) {
	p, ok := e.(*Pow)
	if !ok {
		return nil, nil, false
	}
	if n, ok := p.exp.(*Num); ok && n.val.Sign() < 0 {
		return p.base, Neg(p.exp).Simplify(), true
	}
	return nil, nil, false
}

func limitAtPoint(e Expr, name string, point float64) LimitValue {
	// Direct substitution settles the continuous case.
	if v, ok := EvalAt(e, map[string]float64{name: point}); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return finiteLimit(v)
	}
	if lv, ok := lhopital(e, name, point, 0); ok {
		return lv
	}
	return probeAtPoint(e, name, point)
}

// lhopital resolves 0/0 and inf/inf quotient forms by differentiating
// numerator and denominator, up to a small depth.
func lhopital(e Expr, name string, point float64, depth int) (LimitValue, bool) {
	if depth > 4 {
		return LimitValue{}, false
	}
	num, den := splitQuotient(e.Simplify())
	if d, ok := den.(*Num); ok && d.val.Cmp(big.NewRat(1, 1)) == 0 {
		return LimitValue{}, false
	}
	at := map[string]float64{name: point}
	nv, nok := EvalAt(num, at)
	dv, dok := EvalAt(den, at)
	if !nok || !dok {
		return LimitValue{}, false
	}
	if math.Abs(nv) >= 1e-12 || math.Abs(dv) >= 1e-12 {
		// Only the 0/0 indeterminate form is handled here.
		return LimitValue{}, false
	}
	dn := Diff(num, name)
	dd := Diff(den, name)
	next := Div(dn, dd).Simplify()
	if v, ok := EvalAt(next, at); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return finiteLimit(v), true
	}
	return lhopital(next, name, point, depth+1)
}

func probeAtInfinity(e Expr, name string, point float64) LimitValue {
	f, err := Compile(e, []string{name})
	if err != nil {
		return LimitValue{Kind: LimitUnknown}
	}
	sign := 1.0
	if math.IsInf(point, -1) {
		sign = -1
	}
	var vals []float64
	hitNaN := false
	for _, mag := range []float64{1e2, 1e3, 1e4, 1e5, 1e6, 1e7} {
		v := f(sign * mag)
		if math.IsNaN(v) {
			hitNaN = true
			break
		}
		vals = append(vals, v)
	}
	n := len(vals)
	if hitNaN {
		// Overflow partway out: consistent huge growth before the NaN means
		// divergence; anything else stays unsettled.
		if n > 0 {
			last := vals[n-1]
			if math.Abs(last) > 1e12 {
				return infLimit(last)
			}
			if n >= 2 && math.Abs(last) > 1e6 &&
				math.Abs(last) > math.Abs(vals[n-2]) && (last > 0) == (vals[n-2] > 0) {
				return infLimit(last)
			}
		}
		return LimitValue{Kind: LimitUnknown}
	}
	if n < 3 {
		return LimitValue{Kind: LimitUnknown}
	}
	return classifySequence(vals)
}

func probeAtPoint(e Expr, name string, point float64) LimitValue {
	f, err := Compile(e, []string{name})
	if err != nil {
		return LimitValue{Kind: LimitUnknown}
	}
	side := func(dir float64) LimitValue {
		var vals []float64
		for _, h := range []float64{1e-2, 1e-3, 1e-4, 1e-5, 1e-6, 1e-7, 1e-8, 1e-9, 1e-10} {
			v := f(point + dir*h)
			if math.IsNaN(v) {
				return LimitValue{Kind: LimitUnknown}
			}
			vals = append(vals, v)
		}
		return classifySequence(vals)
	}
	left := side(-1)
	right := side(1)
	if left.Kind == LimitUnknown || right.Kind == LimitUnknown {
		return LimitValue{Kind: LimitUnknown}
	}
	if left.Kind != right.Kind {
		return LimitValue{Kind: LimitNone}
	}
	if left.Kind == LimitFinite {
		if math.Abs(left.F-right.F) > 1e-6*(1+math.Abs(left.F)) {
			return LimitValue{Kind: LimitNone}
		}
		return finiteLimit(snapNear(0.5 * (left.F + right.F)))
	}
	return left
}

// classifySequence decides what a tail of sample values is doing: settling on
// a number, blowing up with a consistent sign, or neither.
func classifySequence(vals []float64) LimitValue {
	n := len(vals)
	last, prev := vals[n-1], vals[n-2]
	if math.Abs(last) > 1e12 && math.Abs(last) > 2*math.Abs(prev) {
		return infLimit(last)
	}
	if math.Abs(last) > 1e8 {
		// Growing without the doubling signature; still call the sign if the
		// tail is monotone in magnitude.
		if math.Abs(last) > math.Abs(prev) && math.Abs(prev) > math.Abs(vals[n-3]) {
			if (last > 0) == (prev > 0) {
				return infLimit(last)
			}
		}
		return LimitValue{Kind: LimitUnknown}
	}
	if math.Abs(last-prev) < 1e-6*(1+math.Abs(last)) {
		return finiteLimit(snapNear(last))
	}
	// Monotone with non-shrinking increments: slow divergence (log-like).
	d1 := last - prev
	d2 := prev - vals[n-3]
	if (d1 > 0) == (d2 > 0) && math.Abs(d1) >= 0.9*math.Abs(d2) && math.Abs(d1) > 1e-3 {
		return infLimit(d1)
	}
	return LimitValue{Kind: LimitUnknown}
}

// snapNear rounds values that sit within numeric noise of a small integer or
// half-integer, so probed limits print cleanly.
func snapNear(v float64) float64 {
	for _, scale := range []float64{1, 2} {
		r := math.Round(v*scale) / scale
		if math.Abs(v-r) < 1e-6 {
			return r
		}
	}
	return v
}
