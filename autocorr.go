package vadpcm

// corr6 is the upper-triangular part of the 3x3 autocorrelation matrix for
// one frame, flattened as:
//
//	[0 1 3]
//	[_ 2 4]
//	[_ _ 5]
//
// with x0 = s[n], x1 = s[n-1], x2 = s[n-2].
type corr6 = [6]float32

// autocorrelate computes the per-frame autocorrelation matrix for pcm,
// which must hold an exact multiple of FrameSampleCount samples. Samples
// are scaled by 1/32768 before accumulation, matching codec/autocorr.c, so
// that the resulting matrix entries stay well within float32 range
// regardless of predictor count or frame count.
func autocorrelate(pcm []int16) []corr6 {
	frameCount := len(pcm) / FrameSampleCount
	corr := make([]corr6, frameCount)
	const scale = float32(1.0 / 32768.0)
	for frame := 0; frame < frameCount; frame++ {
		var m corr6
		x0, x1, x2 := float32(0), float32(0), float32(0)
		base := frame * FrameSampleCount
		for i := 0; i < FrameSampleCount; i++ {
			x2 = x1
			x1 = x0
			x0 = float32(pcm[base+i]) * scale
			m[0] += x0 * x0
			m[1] += x1 * x0
			m[2] += x1 * x1
			m[3] += x2 * x0
			m[4] += x2 * x1
			m[5] += x2 * x2
		}
		corr[frame] = m
	}
	return corr
}
