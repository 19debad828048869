// Package symbolic is a small deterministic symbolic-math backend: immutable
// expression trees over a fixed operator and function vocabulary, with exact
// rational simplification, differentiation, root solving, limits, and
// compilation to numeric closures. It is the one swappable capability the
// rest of the program orchestrates; nothing outside this package manipulates
// expression structure directly.
package symbolic

import (
	"math"
	"math/big"
	"sort"
	"strings"
)

// Expr is an immutable symbolic expression. All operations return new trees;
// no node is ever mutated after construction.
type Expr interface {
	// Simplify returns a canonical, deterministically ordered form.
	Simplify() Expr
	// String renders the expression in canonical ASCII notation (** for powers).
	String() string
	// Sub substitutes value for every occurrence of the named variable.
	Sub(name string, value Expr) Expr
	// Diff differentiates with respect to the named variable.
	Diff(name string) Expr
	// Eval evaluates to a real float64. ok is false when the expression still
	// contains free variables or the value is not a finite real.
	Eval() (float64, bool)
	// Equal reports structural equality.
	Equal(other Expr) bool
}

// ============================================================
// Num — exact rational constant
// ============================================================

type Num struct{ val *big.Rat }

func Int(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func Rat(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func Float(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return Int(0) }

func (n *Num) Eval() (float64, bool) {
	f, _ := n.val.Float64()
	return f, !math.IsInf(f, 0)
}

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool   { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }
func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// ============================================================
// Var — free variable
// ============================================================

type Var struct{ name string }

func V(name string) *Var { return &Var{name: name} }

func (v *Var) Simplify() Expr { return v }
func (v *Var) String() string { return v.name }
func (v *Var) Name() string   { return v.name }

func (v *Var) Sub(name string, value Expr) Expr {
	if v.name == name {
		return value
	}
	return v
}

func (v *Var) Diff(name string) Expr {
	if v.name == name {
		return Int(1)
	}
	return Int(0)
}

func (v *Var) Eval() (float64, bool) { return 0, false }

func (v *Var) Equal(other Expr) bool {
	o, ok := other.(*Var)
	return ok && v.name == o.name
}

// ============================================================
// Const — named mathematical constant (pi, e)
// ============================================================

type Const struct {
	name string
	val  float64
}

var (
	Pi = &Const{name: "pi", val: math.Pi}
	E  = &Const{name: "e", val: math.E}
)

// ConstByName returns the named constant, or nil when unknown.
func ConstByName(name string) *Const {
	switch name {
	case "pi":
		return Pi
	case "e":
		return E
	}
	return nil
}

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Diff(string) Expr      { return Int(0) }
func (c *Const) Eval() (float64, bool) { return c.val, true }

func (c *Const) Equal(other Expr) bool {
	o, ok := other.(*Const)
	return ok && c.name == o.name
}

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

// Sum builds a simplified sum of the given terms.
func Sum(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Neg builds -e.
func Neg(e Expr) Expr { return Prod(Int(-1), e) }

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// Collect like terms: strip each term's rational coefficient, group by
	// the remaining template, and sum coefficients exactly.
	acc := Int(0)
	coeffs := map[string]*Num{}
	templates := map[string]Expr{}
	var order []string
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			acc = numAdd(acc, n)
			continue
		}
		coeff, rest := splitCoeff(t)
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			coeffs[key] = Int(0)
			templates[key] = rest
			order = append(order, key)
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}

	sort.Strings(order)
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		c := coeffs[key]
		switch {
		case c.IsZero():
		case c.IsOne():
			result = append(result, templates[key])
		default:
			result = append(result, rebuildProduct(c, templates[key]))
		}
	}
	if !acc.IsZero() {
		result = append(result, acc)
	}

	switch len(result) {
	case 0:
		return Int(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// splitCoeff separates the leading rational coefficient from a term.
func splitCoeff(e Expr) (*Num, Expr) {
	if n, ok := e.(*Num); ok {
		return n, Int(1)
	}
	m, ok := e.(*Mul)
	if !ok {
		return Int(1), e
	}
	coeff := Int(1)
	rest := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		if n, isNum := f.(*Num); isNum {
			coeff = numMul(coeff, n)
		} else {
			rest = append(rest, f)
		}
	}
	switch len(rest) {
	case 0:
		return coeff, Int(1)
	case 1:
		return coeff, rest[0]
	}
	return coeff, &Mul{factors: rest}
}

// rebuildProduct reattaches a coefficient to a stripped template without
// re-running the full product simplifier.
func rebuildProduct(c *Num, template Expr) Expr {
	if m, ok := template.(*Mul); ok {
		return &Mul{factors: append([]Expr{c}, m.factors...)}
	}
	return &Mul{factors: []Expr{c, template}}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		neg, abs := signSplit(t)
		if i == 0 {
			if neg {
				sb.WriteString("-")
			}
		} else if neg {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
		}
		sb.WriteString(abs)
	}
	return sb.String()
}

// signSplit renders a term as a sign flag plus its unsigned text.
func signSplit(e Expr) (neg bool, abs string) {
	switch v := e.(type) {
	case *Num:
		if v.IsNegative() {
			return true, numNeg(v).String()
		}
	case *Mul:
		coeff, rest := splitCoeff(v)
		if coeff.IsNegative() {
			pos := numNeg(coeff)
			if pos.IsOne() {
				return true, rest.String()
			}
			return true, rebuildProduct(pos, rest).String()
		}
	}
	return false, e.String()
}

func (a *Add) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(name, value)
	}
	return Sum(out...)
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return Sum(out...)
}

func (a *Add) Eval() (float64, bool) {
	total := 0.0
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, !math.IsNaN(total) && !math.IsInf(total, 0)
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

// Prod builds a simplified product of the given factors.
func Prod(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Div builds a/b as a * b**-1.
func Div(a, b Expr) Expr { return Prod(a, Power(b, Int(-1))) }

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	// Fold rationals and merge repeated bases by summing exponents.
	coeff := Int(1)
	exps := map[string]Expr{}
	bases := map[string]Expr{}
	var order []string
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		base, exp := asPower(f)
		key := base.String()
		if _, seen := exps[key]; !seen {
			exps[key] = exp
			bases[key] = base
			order = append(order, key)
			continue
		}
		exps[key] = Sum(exps[key], exp)
	}
	if coeff.IsZero() {
		// 0 times an undefined constant factor (0**-1, log(0)) is
		// indeterminate, not zero; leave it for Eval to reject.
		for _, f := range flat {
			if _, isNum := f.(*Num); isNum {
				continue
			}
			if len(Vars(f)) == 0 {
				if _, ok := f.Eval(); !ok {
					return &Mul{factors: flat}
				}
			}
		}
		return Int(0)
	}

	sort.Slice(order, func(i, j int) bool {
		ri, rj := mulRank(bases[order[i]]), mulRank(bases[order[j]])
		if ri != rj {
			return ri < rj
		}
		return order[i] < order[j]
	})
	rest := make([]Expr, 0, len(order))
	for _, key := range order {
		f := Power(bases[key], exps[key])
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		rest = append(rest, f)
	}

	if len(rest) == 0 {
		return coeff
	}
	// A numeric coefficient distributes over a lone sum, so -(a + b) and
	// (a + b)/2 normalize termwise.
	if len(rest) == 1 && !coeff.IsOne() {
		if a, ok := rest[0].(*Add); ok {
			terms := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				terms[i] = Prod(coeff, t)
			}
			return Sum(terms...)
		}
	}
	if coeff.IsOne() && len(rest) == 1 {
		return rest[0]
	}
	if coeff.IsOne() {
		return &Mul{factors: rest}
	}
	return &Mul{factors: append([]Expr{coeff}, rest...)}
}

// mulRank orders product factors: constants, then variables, then compound
// subexpressions, then function applications.
func mulRank(base Expr) int {
	switch base.(type) {
	case *Const:
		return 0
	case *Var:
		return 1
	case *Fn:
		return 3
	}
	return 2
}

// asPower views any expression as base**exp.
func asPower(e Expr) (base, exp Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, Int(1)
}

func (m *Mul) String() string {
	var numParts, denParts []string
	coeff, _ := splitCoeff(m)

	sign := ""
	c := coeff
	if c.IsNegative() {
		sign = "-"
		c = numNeg(c)
	}
	if !c.val.IsInt() {
		if c.val.Num().Cmp(big.NewInt(1)) != 0 {
			numParts = append(numParts, c.val.Num().String())
		}
		denParts = append(denParts, c.val.Denom().String())
	} else if !c.IsOne() {
		numParts = append(numParts, c.String())
	}

	for _, f := range m.factors {
		if _, isNum := f.(*Num); isNum {
			continue
		}
		if p, ok := f.(*Pow); ok {
			if en, isNum := p.exp.(*Num); isNum && en.IsNegative() {
				denParts = append(denParts, powAbsString(p.base, numNeg(en)))
				continue
			}
		}
		numParts = append(numParts, mulOperandString(f))
	}

	num := "1"
	if len(numParts) > 0 {
		num = strings.Join(numParts, "*")
	}
	if len(denParts) == 0 {
		return sign + num
	}
	den := strings.Join(denParts, "*")
	if len(denParts) > 1 {
		den = "(" + den + ")"
	}
	return sign + num + "/" + den
}

func mulOperandString(e Expr) string {
	if _, isAdd := e.(*Add); isAdd {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// powAbsString renders base**exp for a positive rational exponent, collapsing
// an exponent of one to just the base. Used for denominator forms.
func powAbsString(base Expr, exp *Num) string {
	if exp.IsOne() {
		switch base.(type) {
		case *Add, *Mul:
			return "(" + base.String() + ")"
		}
		if n, ok := base.(*Num); ok && (n.IsNegative() || !n.IsInteger()) {
			return "(" + base.String() + ")"
		}
		return base.String()
	}
	return (&Pow{base: base, exp: exp}).String()
}

func (m *Mul) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(name, value)
	}
	return Prod(out...)
}

// Diff applies the generalized product rule.
func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, len(m.factors))
	for i := range m.factors {
		parts := make([]Expr, 0, len(m.factors))
		parts = append(parts, m.factors[i].Diff(name))
		for j, f := range m.factors {
			if j != i {
				parts = append(parts, f)
			}
		}
		terms[i] = Prod(parts...)
	}
	return Sum(terms...)
}

func (m *Mul) Eval() (float64, bool) {
	total := 1.0
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return 0, false
		}
		total *= v
	}
	return total, !math.IsNaN(total) && !math.IsInf(total, 0)
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Pow — base**exponent
// ============================================================

type Pow struct{ base, exp Expr }

// Power builds a simplified base**exp.
func Power(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// Sqrt builds the principal square root as a half power.
func Sqrt(e Expr) Expr { return Power(e, Rat(1, 2)) }

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return Int(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			// 0**0 and 0**negative stay unevaluated.
			if en, ok2 := exp.(*Num); ok2 && (en.IsZero() || en.IsNegative()) {
				return &Pow{base: base, exp: exp}
			}
			return Int(0)
		}
		if bn.IsOne() {
			return Int(1)
		}
		// Fold small integer powers of rationals exactly.
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			e := en.val.Num().Int64()
			if e >= -16 && e <= 16 {
				result := Int(1)
				for i := int64(0); i < absInt64(e); i++ {
					result = numMul(result, bn)
				}
				if e < 0 {
					result = numRecip(result)
				}
				return result
			}
		}
	}
	// (b**m)**n -> b**(m*n) for integer n.
	if inner, ok := base.(*Pow); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			return Power(inner.base, Prod(inner.exp, en))
		}
	}
	// (a*b)**n -> a**n * b**n for integer n.
	if mb, ok := base.(*Mul); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			parts := make([]Expr, len(mb.factors))
			for i, f := range mb.factors {
				parts[i] = Power(f, en)
			}
			return Prod(parts...)
		}
	}
	return &Pow{base: base, exp: exp}
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func (p *Pow) String() string {
	if en, ok := p.exp.(*Num); ok {
		if en.Equal(Rat(1, 2)) {
			return "sqrt(" + p.base.String() + ")"
		}
		if en.IsNegative() {
			return "1/" + powAbsString(p.base, numNeg(en))
		}
	}
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	default:
		if n, ok := p.base.(*Num); ok && (n.IsNegative() || !n.IsInteger()) {
			baseStr = "(" + baseStr + ")"
		}
	}
	expStr := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul, *Pow:
		expStr = "(" + expStr + ")"
	default:
		if n, ok := p.exp.(*Num); ok && (n.IsNegative() || !n.IsInteger()) {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "**" + expStr
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return Power(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Pow) Diff(name string) Expr {
	db := p.base.Diff(name)
	de := p.exp.Diff(name)
	if _, expIsConst := p.exp.(*Num); expIsConst {
		// d/dx b**n = n * b**(n-1) * b'
		return Prod(p.exp, Power(p.base, Sum(p.exp, Int(-1))), db)
	}
	if _, baseIsConst := p.base.(*Num); baseIsConst {
		// d/dx c**u = c**u * log(c) * u'
		return Prod(Power(p.base, p.exp), Log(p.base), de)
	}
	// General case: b**e * (e' * log(b) + e * b' / b)
	return Prod(
		Power(p.base, p.exp),
		Sum(Prod(de, Log(p.base)), Prod(p.exp, db, Power(p.base, Int(-1)))),
	)
}

func (p *Pow) Eval() (float64, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return 0, false
	}
	v := math.Pow(b, e)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

// ============================================================
// Fn — named function application
// ============================================================

type Fn struct {
	name string
	arg  Expr
}

// Apply builds a simplified application of a named function. The name must be
// one of the fixed vocabulary; callers outside this package go through the
// parser, which enforces that.
func Apply(name string, arg Expr) Expr { return (&Fn{name: name, arg: arg}).Simplify() }

func Sin(e Expr) Expr  { return Apply("sin", e) }
func Cos(e Expr) Expr  { return Apply("cos", e) }
func Tan(e Expr) Expr  { return Apply("tan", e) }
func Exp(e Expr) Expr  { return Apply("exp", e) }
func Log(e Expr) Expr  { return Apply("log", e) }
func Abs(e Expr) Expr  { return Apply("abs", e) }
func Asin(e Expr) Expr { return Apply("asin", e) }
func Acos(e Expr) Expr { return Apply("acos", e) }
func Atan(e Expr) Expr { return Apply("atan", e) }
func Sinh(e Expr) Expr { return Apply("sinh", e) }
func Cosh(e Expr) Expr { return Apply("cosh", e) }
func Tanh(e Expr) Expr { return Apply("tanh", e) }

// FnNames is the recognized function vocabulary. sqrt is handled structurally
// as a half power and therefore does not appear here.
var FnNames = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"exp": true, "log": true, "abs": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
}

func (f *Fn) FnName() string { return f.name }
func (f *Fn) Arg() Expr      { return f.arg }

func (f *Fn) Simplify() Expr {
	arg := f.arg.Simplify()

	// Parity normalization: pull a negative sign out of odd functions and
	// drop it inside even ones, so f(-x) compares structurally against f(x).
	if coeff, rest := splitCoeff(arg); coeff.IsNegative() {
		pos := Prod(numNeg(coeff), rest)
		switch f.name {
		case "sin", "tan", "asin", "atan", "sinh", "tanh":
			return Neg(Apply(f.name, pos))
		case "cos", "cosh", "abs":
			return Apply(f.name, pos)
		}
	}

	// Exact rewrites only; inexact evaluation is deferred to Eval/Compile.
	switch f.name {
	case "sin", "tan", "sinh", "tanh", "asin", "atan":
		if n, ok := arg.(*Num); ok && n.IsZero() {
			return Int(0)
		}
	case "cos", "cosh":
		if n, ok := arg.(*Num); ok && n.IsZero() {
			return Int(1)
		}
	case "exp":
		if n, ok := arg.(*Num); ok && n.IsZero() {
			return Int(1)
		}
		if inner, ok := arg.(*Fn); ok && inner.name == "log" {
			return inner.arg
		}
	case "log":
		if n, ok := arg.(*Num); ok && n.IsOne() {
			return Int(0)
		}
		if c, ok := arg.(*Const); ok && c == E {
			return Int(1)
		}
		if inner, ok := arg.(*Fn); ok && inner.name == "exp" {
			return inner.arg
		}
	case "abs":
		if n, ok := arg.(*Num); ok {
			if n.IsNegative() {
				return numNeg(n)
			}
			return n
		}
	}
	return &Fn{name: f.name, arg: arg}
}

func (f *Fn) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Fn) Sub(name string, value Expr) Expr {
	return Apply(f.name, f.arg.Sub(name, value))
}

func (f *Fn) Diff(name string) Expr {
	du := f.arg.Diff(name)
	var outer Expr
	switch f.name {
	case "sin":
		outer = Cos(f.arg)
	case "cos":
		outer = Neg(Sin(f.arg))
	case "tan":
		outer = Sum(Int(1), Power(Tan(f.arg), Int(2)))
	case "exp":
		outer = Exp(f.arg)
	case "log":
		outer = Power(f.arg, Int(-1))
	case "abs":
		// d/dx |u| = u/|u| * u'; undefined at zero, which Eval reports.
		outer = Prod(f.arg, Power(Abs(f.arg), Int(-1)))
	case "asin":
		outer = Power(Sum(Int(1), Neg(Power(f.arg, Int(2)))), Rat(-1, 2))
	case "acos":
		outer = Neg(Power(Sum(Int(1), Neg(Power(f.arg, Int(2)))), Rat(-1, 2)))
	case "atan":
		outer = Power(Sum(Int(1), Power(f.arg, Int(2))), Int(-1))
	case "sinh":
		outer = Cosh(f.arg)
	case "cosh":
		outer = Sinh(f.arg)
	case "tanh":
		outer = Sum(Int(1), Neg(Power(Tanh(f.arg), Int(2))))
	default:
		panic("symbolic: unknown function " + f.name)
	}
	return Prod(outer, du)
}

func (f *Fn) Eval() (float64, bool) {
	u, ok := f.arg.Eval()
	if !ok {
		return 0, false
	}
	var v float64
	switch f.name {
	case "sin":
		v = math.Sin(u)
	case "cos":
		v = math.Cos(u)
	case "tan":
		v = math.Tan(u)
	case "exp":
		v = math.Exp(u)
	case "log":
		v = math.Log(u)
	case "abs":
		v = math.Abs(u)
	case "asin":
		v = math.Asin(u)
	case "acos":
		v = math.Acos(u)
	case "atan":
		v = math.Atan(u)
	case "sinh":
		v = math.Sinh(u)
	case "cosh":
		v = math.Cosh(u)
	case "tanh":
		v = math.Tanh(u)
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (f *Fn) Equal(other Expr) bool {
	o, ok := other.(*Fn)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

// ============================================================
// Traversal helpers
// ============================================================

// Vars returns the free variable names of e, sorted lexicographically.
func Vars(e Expr) []string {
	set := map[string]struct{}{}
	collectVars(e, set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectVars(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Var:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectVars(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectVars(f, out)
		}
	case *Pow:
		collectVars(v.base, out)
		collectVars(v.exp, out)
	case *Fn:
		collectVars(v.arg, out)
	}
}

// HasVar reports whether the named variable occurs free in e.
func HasVar(e Expr, name string) bool {
	for _, v := range Vars(e) {
		if v == name {
			return true
		}
	}
	return false
}

// Walk visits every node of e in depth-first order. The visit function
// returning false prunes the subtree.
func Walk(e Expr, visit func(Expr) bool) {
	if !visit(e) {
		return
	}
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			Walk(t, visit)
		}
	case *Mul:
		for _, f := range v.factors {
			Walk(f, visit)
		}
	case *Pow:
		Walk(v.base, visit)
		Walk(v.exp, visit)
	case *Fn:
		Walk(v.arg, visit)
	}
}

// HasFn reports whether any of the named functions appear in e.
func HasFn(e Expr, names ...string) bool {
	found := false
	Walk(e, func(n Expr) bool {
		if f, ok := n.(*Fn); ok {
			for _, name := range names {
				if f.name == name {
					found = true
					return false
				}
			}
		}
		return !found
	})
	return found
}

// HasSqrt reports whether e contains a square-root subterm: a power whose
// exponent has denominator 2 in lowest terms. Other fractional exponents,
// cube roots for instance, do not count.
func HasSqrt(e Expr) bool {
	two := big.NewInt(2)
	found := false
	Walk(e, func(n Expr) bool {
		if p, ok := n.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 && en.val.Denom().Cmp(two) == 0 {
				found = true
				return false
			}
		}
		return !found
	})
	return found
}

// HasReciprocal reports whether e contains a literal negative power of the
// named variable (a 1/x-style subterm).
func HasReciprocal(e Expr, name string) bool {
	found := false
	Walk(e, func(n Expr) bool {
		if p, ok := n.(*Pow); ok {
			if v, ok2 := p.base.(*Var); ok2 && v.name == name {
				if en, ok3 := p.exp.(*Num); ok3 && en.IsNegative() {
					found = true
					return false
				}
			}
		}
		return !found
	})
	return found
}

// SubAll substitutes several variables at once and simplifies the result.
func SubAll(e Expr, bindings map[string]Expr) Expr {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	out := e
	for _, name := range names {
		out = out.Sub(name, bindings[name])
	}
	return out.Simplify()
}

// EvalAt evaluates e with the given variable values.
func EvalAt(e Expr, values map[string]float64) (float64, bool) {
	bindings := make(map[string]Expr, len(values))
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		bindings[name] = Float(v)
	}
	return SubAll(e, bindings).Eval()
}
