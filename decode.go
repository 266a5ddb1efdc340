package vadpcm

import "github.com/depp/vadpcm/internal/fixedpoint"

// Decode reads a contiguous stream of 9-byte VADPCM frames and writes the
// decoded PCM into out, which must have room for FrameSampleCount samples
// per frame. state is advanced in place, so callers can decode a stream
// incrementally, one or more frames at a time, and get results identical to
// decoding it all at once.
func Decode(codebook Codebook, predictorCount int, order int, state *DecoderState, frames []byte, out []int16) error {
	if order != Order {
		return newError(kindLargeOrder, "%d", order)
	}
	if predictorCount < 1 || predictorCount > MaxPredictorCount {
		return newError(kindLargePredictorCount, "%d", predictorCount)
	}
	if len(frames)%FrameByteSize != 0 {
		return newError(kindInvalidData, "truncated frame stream (%d bytes)", len(frames))
	}
	frameCount := len(frames) / FrameByteSize
	if len(out) < frameCount*FrameSampleCount {
		return newError(kindInvalidData, "output buffer too small")
	}

	for frame := 0; frame < frameCount; frame++ {
		header := frames[frame*FrameByteSize]
		if shift := int(header >> 4); shift > MaxShift {
			return newError(kindInvalidData, "shift %d out of range", shift)
		}
		if predictor := int(header & 0xf); predictor >= predictorCount {
			return newError(kindInvalidData, "predictor %d out of range", predictor)
		}
	}

	s0, s1 := state.Prev[0], state.Prev[1]
	for frame := 0; frame < frameCount; frame++ {
		fb := frames[frame*FrameByteSize:]
		header := fb[0]
		shift := int(header >> 4)
		predictor := int(header & 0xf)

		var residuals [FrameSampleCount]int32
		for i := 0; i < FrameSampleCount/2; i++ {
			b := fb[1+i]
			residuals[2*i] = int32(fixedpoint.UnpackNibble(b, true))
			residuals[2*i+1] = int32(fixedpoint.UnpackNibble(b, false))
		}

		v0, v1 := codebook.vectors(predictor)
		samples := out[frame*FrameSampleCount : (frame+1)*FrameSampleCount]
		for h := 0; h < 2; h++ {
			var acc [VectorSampleCount]int32
			for i := 0; i < VectorSampleCount; i++ {
				acc[i] = int32(s0)*int32(v0[i]) + int32(s1)*int32(v1[i])
			}
			half := samples[h*VectorSampleCount : (h+1)*VectorSampleCount]
			for i := 0; i < VectorSampleCount; i++ {
				a := acc[i] >> 11
				r := residuals[h*VectorSampleCount+i] << uint(shift)
				for j := 0; j < VectorSampleCount-1-i; j++ {
					acc[i+1+j] += r * int32(v1[j])
				}
				half[i] = fixedpoint.Saturate16(int64(a) + int64(r))
			}
			s0, s1 = half[VectorSampleCount-2], half[VectorSampleCount-1]
		}
	}
	state.Prev[0], state.Prev[1] = s0, s1
	return nil
}
