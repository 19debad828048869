// Package plot samples compiled expressions over a rectangular domain and
// renders the samples as terminal graphics: a braille-dot curve for one
// variable, a shaded height map or contour bands for two.
package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"graphcalc/symbolic"
)

const (
	// MinResolution and MaxResolution bound the per-axis sample count.
	MinResolution = 20
	MaxResolution = 200
	// DefaultResolution is used when the caller passes zero.
	DefaultResolution = 80
)

// Domain is the rectangular plotting region. YMin/YMax bound the second
// input variable for surfaces and the output axis for curves.
type Domain struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultDomain matches the analysis search window.
func DefaultDomain() Domain {
	return Domain{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
}

// Validate reports the first malformed bound.
func (d Domain) Validate() error {
	for _, b := range []float64{d.XMin, d.XMax, d.YMin, d.YMax} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("domain bounds must be finite, got %g", b)
		}
	}
	if d.XMin >= d.XMax {
		return fmt.Errorf("x range is empty: [%g, %g]", d.XMin, d.XMax)
	}
	if d.YMin >= d.YMax {
		return fmt.Errorf("y range is empty: [%g, %g]", d.YMin, d.YMax)
	}
	return nil
}

// ClampResolution maps any requested sample count into the supported range.
func ClampResolution(n int) int {
	switch {
	case n <= 0:
		return DefaultResolution
	case n < MinResolution:
		return MinResolution
	case n > MaxResolution:
		return MaxResolution
	}
	return n
}

// Curve holds samples of a single-variable function. Points where the
// function is undefined carry NaN in Ys and are skipped by the renderer.
type Curve struct {
	Xs, Ys []float64

	// YMin and YMax span the finite samples. When no sample is finite
	// they default to [-1, 1] so rendering still has a frame.
	YMin, YMax float64
}

// SampleCurve evaluates f at evenly spaced points across the x range.
func SampleCurve(f symbolic.EvalFunc, d Domain, resolution int) Curve {
	n := ClampResolution(resolution)
	xs := make([]float64, n)
	floats.Span(xs, d.XMin, d.XMax)

	ys := make([]float64, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, x := range xs {
		y := f(x)
		if math.IsInf(y, 0) {
			y = math.NaN()
		}
		ys[i] = y
		if !math.IsNaN(y) {
			lo = math.Min(lo, y)
			hi = math.Max(hi, y)
		}
	}
	if lo > hi {
		lo, hi = -1, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return Curve{Xs: xs, Ys: ys, YMin: lo, YMax: hi}
}

// Surface holds a grid of samples of a two-variable function.
// Zs is indexed [row][col] where row follows Ys and col follows Xs.
type Surface struct {
	Xs, Ys []float64
	Zs     [][]float64

	ZMin, ZMax float64
}

// SampleSurface evaluates f over an n-by-n grid spanning the domain.
func SampleSurface(f symbolic.EvalFunc, d Domain, resolution int) Surface {
	n := ClampResolution(resolution)
	xs := make([]float64, n)
	ys := make([]float64, n)
	floats.Span(xs, d.XMin, d.XMax)
	floats.Span(ys, d.YMin, d.YMax)

	zs := make([][]float64, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	for j, y := range ys {
		row := make([]float64, n)
		for i, x := range xs {
			z := f(x, y)
			if math.IsInf(z, 0) {
				z = math.NaN()
			}
			row[i] = z
			if !math.IsNaN(z) {
				lo = math.Min(lo, z)
				hi = math.Max(hi, z)
			}
		}
		zs[j] = row
	}
	if lo > hi {
		lo, hi = -1, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return Surface{Xs: xs, Ys: ys, Zs: zs, ZMin: lo, ZMax: hi}
}
