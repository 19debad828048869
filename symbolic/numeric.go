package symbolic

import (
	"fmt"
	"math"
	"math/cmplx"
)

// EvalFunc is a compiled numeric form of an expression. Arguments follow the
// variable order given to Compile. Values that are complex off the real axis
// are projected to their real part; evaluation failures yield NaN.
type EvalFunc func(args ...float64) float64

// Compile translates e into a numeric closure over the given variable order.
// Evaluation runs in complex arithmetic so expressions like sqrt(x) below
// zero produce a value whose real part is taken, rather than aborting.
// Variables of e missing from vars make Compile fail.
func Compile(e Expr, vars []string) (EvalFunc, error) {
	index := make(map[string]int, len(vars))
	for i, name := range vars {
		index[name] = i
	}
	for _, name := range Vars(e) {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("symbolic: free variable %q not in argument list", name)
		}
	}
	node, err := compileNode(e.Simplify(), index)
	if err != nil {
		return nil, err
	}
	n := len(vars)
	return func(args ...float64) float64 {
		if len(args) != n {
			return math.NaN()
		}
		env := make([]complex128, n)
		for i, a := range args {
			env[i] = complex(a, 0)
		}
		z := node(env)
		re := real(z)
		if math.IsInf(re, 0) || math.IsNaN(re) {
			return math.NaN()
		}
		return re
	}, nil
}

type cnode func(env []complex128) complex128

func compileNode(e Expr, index map[string]int) (cnode, error) {
	switch v := e.(type) {
	case *Num:
		c := complex(v.Float64(), 0)
		return func([]complex128) complex128 { return c }, nil
	case *Const:
		c := complex(v.val, 0)
		return func([]complex128) complex128 { return c }, nil
	case *Var:
		i := index[v.name]
		return func(env []complex128) complex128 { return env[i] }, nil
	case *Add:
		parts, err := compileAll(v.terms, index)
		if err != nil {
			return nil, err
		}
		return func(env []complex128) complex128 {
			var total complex128
			for _, p := range parts {
				total += p(env)
			}
			return total
		}, nil
	case *Mul:
		parts, err := compileAll(v.factors, index)
		if err != nil {
			return nil, err
		}
		return func(env []complex128) complex128 {
			total := complex(1, 0)
			for _, p := range parts {
				total *= p(env)
			}
			return total
		}, nil
	case *Pow:
		base, err := compileNode(v.base, index)
		if err != nil {
			return nil, err
		}
		exp, err := compileNode(v.exp, index)
		if err != nil {
			return nil, err
		}
		return func(env []complex128) complex128 {
			b := base(env)
			e := exp(env)
			// Real integral powers stay on the real axis even for b < 0.
			if imag(b) == 0 && imag(e) == 0 {
				ef := real(e)
				if ef == math.Trunc(ef) {
					return complex(math.Pow(real(b), ef), 0)
				}
			}
			if b == 0 {
				if real(e) > 0 {
					return 0
				}
				return complex(math.NaN(), 0)
			}
			return cmplx.Pow(b, e)
		}, nil
	case *Fn:
		arg, err := compileNode(v.arg, index)
		if err != nil {
			return nil, err
		}
		op, ok := cfuncs[v.name]
		if !ok {
			return nil, fmt.Errorf("symbolic: cannot compile function %q", v.name)
		}
		return func(env []complex128) complex128 { return op(arg(env)) }, nil
	}
	return nil, fmt.Errorf("symbolic: cannot compile %T", e)
}

func compileAll(exprs []Expr, index map[string]int) ([]cnode, error) {
	out := make([]cnode, len(exprs))
	for i, e := range exprs {
		node, err := compileNode(e, index)
		if err != nil {
			return nil, err
		}
		out[i] = node
	}
	return out, nil
}

var cfuncs = map[string]func(complex128) complex128{
	"sin":  cmplx.Sin,
	"cos":  cmplx.Cos,
	"tan":  cmplx.Tan,
	"exp":  cmplx.Exp,
	"log":  cmplx.Log,
	"abs":  func(z complex128) complex128 { return complex(cmplx.Abs(z), 0) },
	"asin": cmplx.Asin,
	"acos": cmplx.Acos,
	"atan": cmplx.Atan,
	"sinh": cmplx.Sinh,
	"cosh": cmplx.Cosh,
	"tanh": cmplx.Tanh,
}
