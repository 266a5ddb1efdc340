package vadpcm

import (
	"math"

	"github.com/depp/vadpcm/internal/fixedpoint"
)

// solve computes the second-order predictor coefficients that minimize the
// mean squared prediction error implied by corr, by solving the 2x2 normal
// equations
//
//	[corr[2] corr[4]] [c0]   [corr[1]]
//	[corr[4] corr[5]] [c1] = [corr[3]]
//
// via Gaussian elimination with partial pivoting on the diagonal. The
// relative epsilon is max(diagonal)/4096; a degenerate pivot yields zero
// coefficients, and a degenerate second pivot degrades to a first-order
// predictor using only the surviving variable.
func solve(corr [6]float64) (coeff [2]float64) {
	const relEpsilon = 1.0 / 4096.0

	max := corr[0]
	if corr[2] > max {
		max = corr[2]
	}
	if corr[5] > max {
		max = corr[5]
	}
	epsilon := max * relEpsilon

	a, b, c := corr[2], corr[4], corr[5]
	x, y := corr[1], corr[3]

	pivot := 0
	if c > a {
		a, c = c, a
		x, y = y, x
		pivot = 1
	}

	if a <= epsilon {
		return coeff
	}

	a1 := 1 / a
	b1 := b * a1
	x1 := x * a1

	c2 := c - b1*b
	y2 := y - x1*b

	if math.Abs(c2) <= epsilon {
		coeff[pivot] = x1
		return coeff
	}

	y3 := y2 / c2
	x4 := x1 - y3*b1
	coeff[pivot] = x4
	coeff[1-pivot] = y3
	return coeff
}

// eval returns the summed squared prediction error of coeff over the
// samples the autocorrelation corr was accumulated from, without requiring that coeff was produced by
// solve(corr).
func eval(corr corr6, coeff [2]float32) float32 {
	c0, c1 := coeff[0], coeff[1]
	return corr[0] + corr[2]*c0*c0 + corr[5]*c1*c1 +
		2*(corr[4]*c0*c1-corr[1]*c0-corr[3]*c1)
}

// evalSolved is a cheaper equivalent of eval for the case where coeff is
// the exact solution of solve(corr): the cross terms cancel algebraically,
// leaving only the residual variance.
func evalSolved(corr [6]float64, coeff [2]float64) float64 {
	return corr[0] - corr[1]*coeff[0] - corr[3]*coeff[1]
}

// stabilize projects coeff onto the region of the (c0, c1) plane for which
// the AR(2) recursion y[n] = c0*y[n-1] + c1*y[n-2] is stable (both
// characteristic roots inside the unit circle), returning the projected
// coefficients and whether a change was made.
func stabilize(coeff [2]float64) (out [2]float64, changed bool) {
	c0, c1 := coeff[0], coeff[1]
	if c1 < -1 {
		c1 = -1
		c0 = clamp(c0, -1, 1)
		return [2]float64{c0, c1}, true
	}
	if c0 > 0 {
		if c0+c1 > 1 {
			d := clamp(c1-c0, -3, 1)
			return [2]float64{0.5 - 0.5*d, 0.5 + 0.5*d}, true
		}
		return coeff, false
	}
	if c1-c0 > 1 {
		d := clamp(c1+c0, -3, 1)
		return [2]float64{-(0.5 - 0.5*d), 0.5 + 0.5*d}, true
	}
	return coeff, false
}

func clamp(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	default:
		return x
	}
}

// makeVectors synthesizes the two Q11 predictor vectors for coeff by
// simulating the AR(2) recursion forward from an impulse in each history
// tap: v0 responds to a unit impulse two samples back, v1 to a unit
// impulse one sample back.
func makeVectors(coeff [2]float64) (v0, v1 Vector) {
	const scale = float64(1 << 11)
	vectors := [2]*Vector{&v0, &v1}
	for i, vec := range vectors {
		x1, x2 := 0.0, 0.0
		if i == 0 {
			x2 = scale
		} else {
			x1 = scale
		}
		for j := 0; j < VectorSampleCount; j++ {
			x := coeff[0]*x1 + coeff[1]*x2
			vec[j] = fixedpoint.Saturate16(fixedpoint.RoundNearestEven(x))
			x2 = x1
			x1 = x
		}
	}
	return v0, v1
}
