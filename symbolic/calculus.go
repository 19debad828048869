package symbolic

// Diff differentiates e with respect to the named variable and simplifies.
func Diff(e Expr, name string) Expr { return e.Diff(name).Simplify() }

// DiffN differentiates n times.
func DiffN(e Expr, name string, n int) Expr {
	out := e
	for i := 0; i < n; i++ {
		out = Diff(out, name)
	}
	return out
}

// Gradient returns the partial derivatives of e in the given variable order.
func Gradient(e Expr, names []string) []Expr {
	out := make([]Expr, len(names))
	for i, name := range names {
		out[i] = Diff(e, name)
	}
	return out
}

// Hessian returns the matrix of second partials in the given variable order.
func Hessian(e Expr, names []string) [][]Expr {
	n := len(names)
	out := make([][]Expr, n)
	for i := range names {
		out[i] = make([]Expr, n)
		for j := range names {
			out[i][j] = Diff(Diff(e, names[i]), names[j])
		}
	}
	return out
}

// IsPolynomial reports whether e is a polynomial in its free variables:
// closed under + and *, with only non-negative integer powers of variables
// and no function applications of them.
func IsPolynomial(e Expr) bool {
	switch v := e.(type) {
	case *Num, *Const:
		return true
	case *Var:
		return true
	case *Add:
		for _, t := range v.terms {
			if !IsPolynomial(t) {
				return false
			}
		}
		return true
	case *Mul:
		for _, f := range v.factors {
			if !IsPolynomial(f) {
				return false
			}
		}
		return true
	case *Pow:
		en, ok := v.exp.(*Num)
		if !ok || !en.IsInteger() || en.IsNegative() {
			// A non-integer or negative power of a constant base is still
			// constant; of a variable it breaks polynomiality.
			return len(Vars(v.base)) == 0
		}
		return IsPolynomial(v.base)
	case *Fn:
		return len(Vars(v.arg)) == 0
	}
	return false
}

// Degree returns the degree of e as a polynomial in the named variable.
// Non-polynomial subterms count as degree zero, matching a best-effort guess.
func Degree(e Expr, name string) int {
	switch v := e.(type) {
	case *Var:
		if v.name == name {
			return 1
		}
	case *Add:
		maxDeg := 0
		for _, t := range v.terms {
			if d := Degree(t, name); d > maxDeg {
				maxDeg = d
			}
		}
		return maxDeg
	case *Mul:
		total := 0
		for _, f := range v.factors {
			total += Degree(f, name)
		}
		return total
	case *Pow:
		if base, ok := v.base.(*Var); ok && base.name == name {
			if en, ok2 := v.exp.(*Num); ok2 && en.IsInteger() && !en.IsNegative() {
				return int(en.val.Num().Int64())
			}
		}
	}
	return 0
}

// PolyCoeffs extracts real polynomial coefficients of e in the named
// variable: coeffs[k] multiplies name**k. ok is false when e is not a
// polynomial in the variable or a coefficient is not numerically evaluable.
func PolyCoeffs(e Expr, name string) (coeffs map[int]float64, ok bool) {
	coeffs = map[int]float64{}
	if !collectPolyCoeffs(e.Simplify(), name, coeffs) {
		return nil, false
	}
	return coeffs, true
}

func collectPolyCoeffs(e Expr, name string, out map[int]float64) bool {
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			if !collectPolyCoeffs(t, name, out) {
				return false
			}
		}
		return true
	default:
		deg, coeff, ok := monomial(e, name)
		if !ok {
			return false
		}
		out[deg] += coeff
		return true
	}
}

// monomial views e as coeff * name**deg.
func monomial(e Expr, name string) (deg int, coeff float64, ok bool) {
	switch v := e.(type) {
	case *Var:
		if v.name == name {
			return 1, 1, true
		}
	case *Pow:
		if base, isVar := v.base.(*Var); isVar && base.name == name {
			if en, isNum := v.exp.(*Num); isNum && en.IsInteger() && !en.IsNegative() {
				return int(en.val.Num().Int64()), 1, true
			}
			return 0, 0, false
		}
	case *Mul:
		deg = 0
		coeff = 1
		for _, f := range v.factors {
			d, c, fok := monomial(f, name)
			if !fok {
				return 0, 0, false
			}
			deg += d
			coeff *= c
		}
		return deg, coeff, true
	}
	if HasVar(e, name) {
		return 0, 0, false
	}
	v, evalOK := e.Eval()
	if !evalOK {
		return 0, 0, false
	}
	return 0, v, true
}
