package vadpcm

import "github.com/depp/vadpcm/internal/fixedpoint"

// getShift returns the smallest shift in 0..MaxShift that brings the
// observed residual range [min, max] within the 4-bit signed range
// [-8, 7], matching vadpcm_getshift.
func getShift(min, max int32) int {
	shift := 0
	for shift < MaxShift && (min < -8 || max > 7) {
		min >>= 1
		max >>= 1
		shift++
	}
	return shift
}

// encodeOneFrame quantizes one 16-sample frame against the given
// predictor, trying the three shift values nearest the value implied by
// the frame's true residual range and keeping whichever produces the
// lowest squared error. It returns the packed frame and the squared error
// of the winning trial, and advances state in place.
func encodeOneFrame(pcm []int16, predictor int, codebook Codebook, state *EncoderState) (frame [FrameByteSize]byte, errSq float64) {
	v0, v1 := codebook.vectors(predictor)
	s0, s1 := state.Prev[0], state.Prev[1]

	// Estimate the shift from the true (unquantized) residual range. The
	// second half-frame's history here is a heuristic: the actual samples
	// at positions 6 and 7, standing in for what the decoder will have
	// produced by the time it reaches the second half.
	histS0 := [2]int16{s0, pcm[6]}
	histS1 := [2]int16{s1, pcm[7]}
	var min, max int32
	for vec := 0; vec < 2; vec++ {
		var acc [VectorSampleCount]int32
		for i := 0; i < VectorSampleCount; i++ {
			acc[i] = int32(pcm[vec*VectorSampleCount+i])<<11 -
				int32(histS0[vec])*int32(v0[i]) - int32(histS1[vec])*int32(v1[i])
		}
		for i := 0; i < VectorSampleCount; i++ {
			s := acc[i] >> 11
			if s < min {
				min = s
			}
			if s > max {
				max = s
			}
			for j := 0; j < VectorSampleCount-1-i; j++ {
				acc[i+1+j] -= s * int32(v1[j])
			}
		}
	}
	shift := getShift(min, max)

	minShift := shift - 1
	if minShift < 0 {
		minShift = 0
	}
	maxShift := shift + 1
	if maxShift > MaxShift {
		maxShift = MaxShift
	}

	initRNG := state.RNG
	var rng uint32
	var bestPrev [2]int16
	first := true
	for trialShift := minShift; trialShift <= maxShift; trialShift++ {
		rng = initRNG
		var quantized [FrameSampleCount]int32
		ts0, ts1 := s0, s1
		errAcc := 0.0
		for vec := 0; vec < 2; vec++ {
			var acc [VectorSampleCount]int32
			for i := 0; i < VectorSampleCount; i++ {
				acc[i] = int32(ts0)*int32(v0[i]) + int32(ts1)*int32(v1[i])
			}
			for i := 0; i < VectorSampleCount; i++ {
				idx := vec*VectorSampleCount + i
				s := int32(pcm[idx])
				a := acc[i] >> 11
				bias := int32(rng>>16) >> uint(16-trialShift)
				rng = rngNext(rng)
				r := (s - a + bias) >> uint(trialShift)
				if r > 7 {
					r = 7
				} else if r < -8 {
					r = -8
				}
				quantized[idx] = r
				sout := r << uint(trialShift)
				for j := 0; j < VectorSampleCount-1-i; j++ {
					acc[i+1+j] += sout * int32(v1[j])
				}
				sout += a
				ts0 = ts1
				ts1 = fixedpoint.Saturate16(int64(sout))
				serr := float64(s) - float64(sout)
				errAcc += serr * serr
			}
		}
		if first || errAcc < errSq {
			frame[0] = byte(trialShift<<4) | byte(predictor)
			for i := 0; i < FrameSampleCount/2; i++ {
				frame[1+i] = fixedpoint.PackNibble(int8(quantized[2*i]), int8(quantized[2*i+1]))
			}
			bestPrev = [2]int16{ts0, ts1}
			errSq = errAcc
			first = false
		}
	}
	state.Prev = bestPrev
	state.RNG = rng
	return frame, errSq
}

// EncodeData quantizes pcm (an exact multiple of FrameSampleCount samples)
// against a predetermined frame-to-predictor assignment, advancing state in
// place exactly as Decode advances a DecoderState: calling EncodeData
// repeatedly on contiguous sub-slices of pcm with the same state produces
// byte-identical output to a single call over the whole buffer.
func EncodeData(pcm []int16, predictors []uint8, codebook Codebook, state *EncoderState) ([]byte, Stats) {
	frameCount := len(pcm) / FrameSampleCount
	out := make([]byte, frameCount*FrameByteSize)
	var stats Stats
	for frame := 0; frame < frameCount; frame++ {
		fpcm := pcm[frame*FrameSampleCount : (frame+1)*FrameSampleCount]
		fb, errSq := encodeOneFrame(fpcm, int(predictors[frame]), codebook, state)
		copy(out[frame*FrameByteSize:], fb[:])
		stats.ErrorSumSquare += errSq
		for _, s := range fpcm {
			stats.SignalSumSquare += float64(s) * float64(s)
		}
		stats.SampleCount += FrameSampleCount
	}
	return out, stats
}

// Encode runs the full pipeline: autocorrelation, predictor assignment,
// codebook synthesis, and frame encoding, over pcm (an exact multiple of
// FrameSampleCount samples). It starts from a fresh EncoderState.
func Encode(params Params, pcm []int16) (Codebook, []byte, Stats, error) {
	if params.PredictorCount < 1 || params.PredictorCount > MaxPredictorCount {
		return Codebook{}, nil, Stats{}, newError(kindInvalidParams, "predictor count %d", params.PredictorCount)
	}
	if len(pcm)%FrameSampleCount != 0 {
		return Codebook{}, nil, Stats{}, newError(kindInvalidData, "pcm length %d is not a multiple of %d", len(pcm), FrameSampleCount)
	}

	corr := autocorrelate(pcm)
	predictors, _, err := AssignPredictors(corr, params.PredictorCount)
	if err != nil {
		return Codebook{}, nil, Stats{}, err
	}
	codebook := MakeCodebook(corr, predictors, params.PredictorCount)

	var state EncoderState
	data, stats := EncodeData(pcm, predictors, codebook, &state)
	return codebook, data, stats, nil
}
