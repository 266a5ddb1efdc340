package vadpcm

// refinementIterations is the number of reassign/refine rounds run by
// AssignPredictors, matching kVADPCMIterations in the reference codec.
const refinementIterations = 20

// bestErrorPerFrame returns, for every frame, the irreducible prediction
// error floor: the error of the single-frame-optimal predictor solved from
// that frame's own autocorrelation.
func bestErrorPerFrame(corr []corr6) []float32 {
	best := make([]float32, len(corr))
	for i, c := range corr {
		var c64 [6]float64
		for j, v := range c {
			c64[j] = float64(v)
		}
		coeff := solve(c64)
		fcoeff := [2]float32{float32(coeff[0]), float32(coeff[1])}
		best[i] = eval(c, fcoeff)
	}
	return best
}

// meanCorrs averages the autocorrelation matrix of every frame assigned to
// each of the first predictorCount predictors. Frames whose assignment is
// out of range are ignored, matching vadpcm_meancorrs.
func meanCorrs(corr []corr6, predictors []uint8, predictorCount int) (means [][6]float64, counts []int) {
	means = make([][6]float64, predictorCount)
	counts = make([]int, predictorCount)
	for frame, c := range corr {
		p := int(predictors[frame])
		if p >= predictorCount {
			continue
		}
		counts[p]++
		for j, v := range c {
			means[p][j] += float64(v)
		}
	}
	for p, n := range counts {
		if n > 0 {
			a := 1.0 / float64(n)
			for j := range means[p] {
				means[p][j] *= a
			}
		}
	}
	return means, counts
}

// refinePredictors solves one predictor coefficient set per active cluster
// (applying stabilize, per the predictor-assignment algorithm), reassigns
// every frame to its best-fitting active cluster, and records each frame's
// resulting error. It returns the index of the first cluster left with no
// frames assigned, or activeCount if every cluster is non-empty.
func refinePredictors(corr []corr6, predictors []uint8, errOut []float32, activeCount int) int {
	means, counts := meanCorrs(corr, predictors, activeCount)

	coeffs := make([][2]float32, 0, activeCount)
	for i := 0; i < activeCount; i++ {
		if counts[i] == 0 {
			continue
		}
		c, _ := stabilize(solve(means[i]))
		coeffs = append(coeffs, [2]float32{float32(c[0]), float32(c[1])})
	}

	frameCounts := make([]int, len(coeffs))
	for frame, c := range corr {
		bestPredictor := 0
		bestErr := eval(c, coeffs[0])
		for i := 1; i < len(coeffs); i++ {
			e := eval(c, coeffs[i])
			if e < bestErr {
				bestPredictor = i
				bestErr = e
			}
		}
		predictors[frame] = uint8(bestPredictor)
		errOut[frame] = bestErr
		frameCounts[bestPredictor]++
	}
	for i, n := range frameCounts {
		if n == 0 {
			return i
		}
	}
	return len(coeffs)
}

// worstFrame returns the index of the frame whose error exceeds its
// irreducible floor by the largest margin.
func worstFrame(best, errs []float32) int {
	worst := 0
	worstImprovement := errs[0] - best[0]
	for frame := 1; frame < len(errs); frame++ {
		improvement := errs[frame] - best[frame]
		if improvement > worstImprovement {
			worstImprovement = improvement
			worst = frame
		}
	}
	return worst
}

// AssignPredictors clusters frame-level autocorrelation vectors into
// predictorCount predictors, iteratively reassigning the worst-fit frame to
// a fresh cluster and re-solving, for refinementIterations rounds.
func AssignPredictors(corr [][6]float32, predictorCount int) (predictors []uint8, bestError []float32, err error) {
	if predictorCount < 1 || predictorCount > MaxPredictorCount {
		return nil, nil, newError(kindLargePredictorCount, "%d", predictorCount)
	}
	predictors = make([]uint8, len(corr))
	if predictorCount <= 1 || len(corr) == 0 {
		return predictors, bestErrorPerFrame(corr), nil
	}

	best := bestErrorPerFrame(corr)
	errs := make([]float32, len(corr))
	unassigned := predictorCount
	activeCount := 1
	for iter := 0; iter < refinementIterations; iter++ {
		if unassigned < predictorCount {
			worst := worstFrame(best, errs)
			predictors[worst] = uint8(unassigned)
			if unassigned >= activeCount {
				activeCount = unassigned + 1
			}
		}
		unassigned = refinePredictors(corr, predictors, errs, activeCount)
	}
	return predictors, best, nil
}

// MakeCodebook synthesizes the final codebook from the per-frame
// autocorrelation and a settled frame-to-predictor assignment. Unlike
// refinePredictors, this does not stabilize the solved coefficients: the
// codebook reflects the exact least-squares fit for each cluster, with an
// all-zero predictor for clusters that ended up with no frames assigned.
func MakeCodebook(corr [][6]float32, predictors []uint8, predictorCount int) Codebook {
	means, counts := meanCorrs(corr, predictors, predictorCount)
	vectors := make([]Vector, Order*predictorCount)
	for i := 0; i < predictorCount; i++ {
		if counts[i] == 0 {
			continue
		}
		coeff := solve(means[i])
		v0, v1 := makeVectors(coeff)
		vectors[Order*i] = v0
		vectors[Order*i+1] = v1
	}
	return Codebook{Order: Order, Predictors: vectors}
}
