package vadpcm

import (
	"math"
	"math/rand"
	"testing"
)

func TestSolveZero(t *testing.T) {
	coeff := solve([6]float64{})
	if coeff != ([2]float64{}) {
		t.Errorf("solve(zero) = %v, want zero", coeff)
	}
}

func TestSolveIdentity(t *testing.T) {
	// corr[2], corr[5] = 1 (identity submatrix), corr[1]=0.5, corr[3]=0.25:
	// solving [1 0; 0 1] * coeff = [0.5; 0.25] gives coeff = [0.5, 0.25].
	corr := [6]float64{1, 0.5, 1, 0.25, 0, 1}
	coeff := solve(corr)
	if math.Abs(coeff[0]-0.5) > 1e-9 || math.Abs(coeff[1]-0.25) > 1e-9 {
		t.Errorf("solve(identity) = %v, want [0.5 0.25]", coeff)
	}
}

func TestSolveDegenerate(t *testing.T) {
	// A fully zero submatrix must not divide by zero, and must yield zero
	// coefficients.
	corr := [6]float64{1, 1, 0, 1, 0, 0}
	coeff := solve(corr)
	if coeff != ([2]float64{}) {
		t.Errorf("solve(degenerate) = %v, want zero", coeff)
	}
}

func TestSolveMinimizesEval(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 64; trial++ {
		// Build a corr matrix that is guaranteed positive semi-definite by
		// constructing it as a sum of outer products of random (x0,x1,x2)
		// triples, the same way autocorrelate would for real samples.
		var corr [6]float64
		for i := 0; i < 16; i++ {
			x0, x1, x2 := rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
			corr[0] += x0 * x0
			corr[1] += x1 * x0
			corr[2] += x1 * x1
			corr[3] += x2 * x0
			corr[4] += x2 * x1
			corr[5] += x2 * x2
		}
		coeff := solve(corr)
		base := evalSolved(corr, coeff)

		fcorr := corr6{float32(corr[0]), float32(corr[1]), float32(corr[2]), float32(corr[3]), float32(corr[4]), float32(corr[5])}
		fcoeff := [2]float32{float32(coeff[0]), float32(coeff[1])}
		if got := eval(fcorr, fcoeff); math.Abs(float64(got)-base) > 1e-2*(1+math.Abs(base)) {
			t.Fatalf("trial %d: eval(solve(corr)) = %v, evalSolved = %v", trial, got, base)
		}

		// Any small perturbation of the solved coefficients must not
		// decrease the error: solve finds a local (here, global, since the
		// problem is quadratic and convex) minimum.
		for _, d := range [][2]float64{{0.01, 0}, {-0.01, 0}, {0, 0.01}, {0, -0.01}} {
			perturbed := [2]float32{float32(coeff[0] + d[0]), float32(coeff[1] + d[1])}
			if eval(fcorr, perturbed) < eval(fcorr, fcoeff)-1e-3 {
				t.Fatalf("trial %d: perturbation %v decreased error", trial, d)
			}
		}
	}
}

func TestStabilizeLeavesStableCoeffsUnchanged(t *testing.T) {
	coeff := [2]float64{0.3, -0.2}
	out, changed := stabilize(coeff)
	if changed {
		t.Errorf("stabilize(%v) changed a stable pair to %v", coeff, out)
	}
	if out != coeff {
		t.Errorf("stabilize(%v) = %v, want unchanged", coeff, out)
	}
}

func TestStabilizeProjectsUnstableCoeffs(t *testing.T) {
	tests := [][2]float64{
		{0.9, 0.9},
		{-0.9, 0.9},
		{0, -2},
		{2, -3},
	}
	for _, coeff := range tests {
		out, changed := stabilize(coeff)
		if !changed {
			t.Errorf("stabilize(%v) reported unchanged", coeff)
		}
		if out[1] < -1-1e-9 {
			t.Errorf("stabilize(%v) = %v, c1 < -1", coeff, out)
		}
		if out[0]+out[1] > 1+1e-9 {
			t.Errorf("stabilize(%v) = %v violates c0+c1<=1", coeff, out)
		}
		if out[1]-out[0] > 1+1e-9 {
			t.Errorf("stabilize(%v) = %v violates c1-c0<=1", coeff, out)
		}
	}
}

func TestMakeVectorsImpulseResponse(t *testing.T) {
	// coeff = [1, 0] models a pure integrator: the impulse response to the
	// one-sample-back history tap should be constant at full scale.
	v0, v1 := makeVectors([2]float64{1, 0})
	for i, got := range v1 {
		if got != 2048 {
			t.Errorf("v1[%d] = %d, want 2048", i, got)
		}
	}
	for i, got := range v0 {
		if got != 0 {
			t.Errorf("v0[%d] = %d, want 0 (coeff[1] is 0)", i, got)
		}
	}
}

func TestMakeVectorsSaturates(t *testing.T) {
	// A strongly unstable filter must saturate into int16 range rather
	// than overflow: with coeff = [0, 4] the two-samples-back impulse
	// response is 8192, 0, 32768, 0, 131072, 0, 524288, 0, and every value above 32767 must clip to 32767.
	v0, _ := makeVectors([2]float64{0, 4})
	want := Vector{8192, 0, 32767, 0, 32767, 0, 32767, 0}
	for i, got := range v0 {
		if got != want[i] {
			t.Errorf("v0[%d] = %d, want %d", i, got, want[i])
		}
	}
}
