package symbolic

import (
	"math"
	"sort"
)

const (
	rootTol  = 1e-9  // residual considered a root
	dedupTol = 1e-6  // spacing below which two roots are the same
	newtTol  = 1e-12 // Newton step convergence
)

// Solve returns the real roots of e = 0 in the named variable, restricted to
// [lo, hi], sorted ascending and deduplicated. Polynomials of degree <= 3 are
// solved in closed form; everything else falls back to a Newton sweep over
// the interval, so transcendental equations report only the roots the sweep
// reaches.
func Solve(e Expr, name string, lo, hi float64) []float64 {
	e = e.Simplify()
	if coeffs, ok := PolyCoeffs(e, name); ok {
		if roots, solved := solvePoly(coeffs); solved {
			return filterRoots(roots, lo, hi)
		}
	}
	return newtonSweep(e, name, lo, hi)
}

func solvePoly(coeffs map[int]float64) ([]float64, bool) {
	deg := 0
	for d, c := range coeffs {
		if c != 0 && d > deg {
			deg = d
		}
	}
	a := func(d int) float64 { return coeffs[d] }
	switch deg {
	case 0:
		// Constant: either no roots or the zero expression, which has no
		// isolated roots to report.
		return nil, true
	case 1:
		return []float64{-a(0) / a(1)}, true
	case 2:
		return solveQuadratic(a(2), a(1), a(0)), true
	case 3:
		return solveCubic(a(3), a(2), a(1), a(0)), true
	}
	return nil, false
}

func solveQuadratic(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil // complex pair; callers only want real roots
	}
	if disc == 0 {
		return []float64{-b / (2 * a)}
	}
	s := math.Sqrt(disc)
	return []float64{(-b - s) / (2 * a), (-b + s) / (2 * a)}
}

// solveCubic returns the real roots of ax^3+bx^2+cx+d via the trigonometric
// and Cardano forms on the depressed cubic.
func solveCubic(a, b, c, d float64) []float64 {
	if a == 0 {
		return solveQuadratic(b, c, d)
	}
	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)
	offset := b / (3 * a)
	disc := -(4*p*p*p + 27*q*q)

	switch {
	case disc > 0:
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		roots := make([]float64, 3)
		for k := 0; k < 3; k++ {
			roots[k] = m*math.Cos(theta-2*math.Pi*float64(k)/3) - offset
		}
		return roots
	case disc == 0:
		if q == 0 {
			return []float64{-offset}
		}
		return []float64{3*q/p - offset, -3*q/(2*p) - offset}
	default:
		u := math.Cbrt(-q/2 + math.Sqrt(q*q/4+p*p*p/27))
		v := 0.0
		if u != 0 {
			v = -p / (3 * u)
		}
		return []float64{u + v - offset}
	}
}

// newtonSweep runs Newton's method from evenly spaced seeds across [lo, hi].
func newtonSweep(e Expr, name string, lo, hi float64) []float64 {
	f, err := Compile(e, []string{name})
	if err != nil {
		return nil
	}
	df, err := Compile(Diff(e, name), []string{name})
	if err != nil {
		return nil
	}

	const seeds = 201
	var roots []float64
	for i := 0; i < seeds; i++ {
		x := lo + (hi-lo)*float64(i)/float64(seeds-1)
		for iter := 0; iter < 60; iter++ {
			fx := f(x)
			if math.IsNaN(fx) {
				break
			}
			if math.Abs(fx) < rootTol {
				roots = append(roots, x)
				break
			}
			dfx := df(x)
			if math.IsNaN(dfx) || dfx == 0 {
				break
			}
			step := fx / dfx
			x -= step
			if math.Abs(step) < newtTol {
				if math.Abs(f(x)) < rootTol {
					roots = append(roots, x)
				}
				break
			}
		}
	}
	return filterRoots(roots, lo, hi)
}

func filterRoots(roots []float64, lo, hi float64) []float64 {
	sort.Float64s(roots)
	slack := dedupTol * (1 + math.Abs(hi-lo))
	out := roots[:0]
	for _, r := range roots {
		if math.IsNaN(r) || r < lo-slack || r > hi+slack {
			continue
		}
		if r > -dedupTol && r < dedupTol {
			r = 0 // snap near-zero Newton artifacts
		}
		if len(out) > 0 && math.Abs(r-out[len(out)-1]) < slack {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SolveSystem returns real simultaneous roots of {fx = 0, fy = 0} inside the
// rectangle [xLo,xHi]x[yLo,yHi], sorted by (x, y) and capped by the caller.
// Separable systems (fx free of yName, fy free of xName) reduce to two
// independent one-variable solves; coupled systems use damped 2D Newton
// iteration from a deterministic seed grid.
func SolveSystem(fx, fy Expr, xName, yName string, xLo, xHi, yLo, yHi float64) [][2]float64 {
	if !HasVar(fx, yName) && !HasVar(fy, xName) {
		xs := Solve(fx, xName, xLo, xHi)
		ys := Solve(fy, yName, yLo, yHi)
		var out [][2]float64
		for _, x := range xs {
			for _, y := range ys {
				out = append(out, [2]float64{x, y})
			}
		}
		return out
	}
	return newtonSweep2D(fx, fy, xName, yName, xLo, xHi, yLo, yHi)
}

func newtonSweep2D(fx, fy Expr, xName, yName string, xLo, xHi, yLo, yHi float64) [][2]float64 {
	vars := []string{xName, yName}
	f1, err1 := Compile(fx, vars)
	f2, err2 := Compile(fy, vars)
	j11, err3 := Compile(Diff(fx, xName), vars)
	j12, err4 := Compile(Diff(fx, yName), vars)
	j21, err5 := Compile(Diff(fy, xName), vars)
	j22, err6 := Compile(Diff(fy, yName), vars)
	for _, err := range []error{err1, err2, err3, err4, err5, err6} {
		if err != nil {
			return nil
		}
	}

	const grid = 9
	var found [][2]float64
	for i := 0; i < grid; i++ {
		for k := 0; k < grid; k++ {
			x := xLo + (xHi-xLo)*float64(i)/float64(grid-1)
			y := yLo + (yHi-yLo)*float64(k)/float64(grid-1)
			if px, py, ok := newton2D(f1, f2, j11, j12, j21, j22, x, y); ok {
				found = append(found, [2]float64{px, py})
			}
		}
	}

	sort.Slice(found, func(i, k int) bool {
		if found[i][0] != found[k][0] {
			return found[i][0] < found[k][0]
		}
		return found[i][1] < found[k][1]
	})

	slackX := dedupTol * (1 + math.Abs(xHi-xLo))
	slackY := dedupTol * (1 + math.Abs(yHi-yLo))
	var out [][2]float64
	for _, p := range found {
		if p[0] < xLo-slackX || p[0] > xHi+slackX || p[1] < yLo-slackY || p[1] > yHi+slackY {
			continue
		}
		if math.Abs(p[0]) < dedupTol {
			p[0] = 0
		}
		if math.Abs(p[1]) < dedupTol {
			p[1] = 0
		}
		dup := false
		for _, q := range out {
			if math.Abs(p[0]-q[0]) < slackX && math.Abs(p[1]-q[1]) < slackY {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

func newton2D(f1, f2, j11, j12, j21, j22 EvalFunc, x, y float64) (float64, float64, bool) {
	for iter := 0; iter < 60; iter++ {
		v1 := f1(x, y)
		v2 := f2(x, y)
		if math.IsNaN(v1) || math.IsNaN(v2) {
			return 0, 0, false
		}
		if math.Abs(v1) < rootTol && math.Abs(v2) < rootTol {
			return x, y, true
		}
		a, b := j11(x, y), j12(x, y)
		c, d := j21(x, y), j22(x, y)
		det := a*d - b*c
		if math.IsNaN(det) || math.Abs(det) < 1e-14 {
			return 0, 0, false
		}
		dx := (d*v1 - b*v2) / det
		dy := (a*v2 - c*v1) / det
		x -= dx
		y -= dy
		if math.Abs(dx) < newtTol && math.Abs(dy) < newtTol {
			if math.Abs(f1(x, y)) < rootTol && math.Abs(f2(x, y)) < rootTol {
				return x, y, true
			}
			return 0, 0, false
		}
	}
	return 0, 0, false
}
