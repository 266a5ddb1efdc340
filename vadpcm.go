// Package vadpcm implements the VADPCM codec: a lossy, fixed-rate 16-bit
// mono PCM compressor that packs 16 samples into 9 bytes using a pair of
// adaptive second-order linear predictors (a "codebook") and 4-bit
// residuals.
//
// The frame and codebook wire formats follow Dietrich Epp's reference VADPCM
// codec; see https://github.com/depp/vadpcm for the original C
// implementation and format documentation. The predictor search stabilizes
// its coefficients during refinement, so encoder output is not guaranteed to
// match the reference encoder byte for byte.
package vadpcm

const (
	// FrameSampleCount is the number of PCM samples packed into one frame.
	FrameSampleCount = 16

	// FrameByteSize is the number of bytes one encoded frame occupies: one
	// header byte followed by 8 bytes of packed 4-bit residuals.
	FrameByteSize = 9

	// Order is the predictor order. VADPCM only supports second-order
	// (two-tap) linear prediction.
	Order = 2

	// VectorSampleCount is the number of entries in one predictor vector.
	VectorSampleCount = 8

	// MaxPredictorCount is the largest number of predictors a codebook may
	// hold.
	MaxPredictorCount = 16

	// MaxShift is the largest shift value a frame header can encode.
	MaxShift = 12
)

// Vector is one half of a predictor: the Q11 fixed-point response of the
// AR(2) filter to a unit impulse in one of its two history taps, simulated
// VectorSampleCount samples into the future.
type Vector [VectorSampleCount]int16

// Codebook holds the predictor vectors used by a VADPCM stream. Predictor i
// occupies Predictors[Order*i : Order*i+Order], with Predictors[Order*i]
// responding to the two-samples-back history tap and Predictors[Order*i+1]
// responding to the one-sample-back tap.
type Codebook struct {
	// Order is the predictor order stored in the codebook. VADPCM only
	// defines Order == 2; containers carrying any other value are rejected.
	Order int
	// Predictors holds Order vectors per predictor.
	Predictors []Vector
}

// PredictorCount returns the number of predictors in the codebook.
func (cb Codebook) PredictorCount() int {
	if cb.Order == 0 {
		return 0
	}
	return len(cb.Predictors) / cb.Order
}

// vectors returns the two predictor vectors used by the given predictor.
func (cb Codebook) vectors(predictor int) (v0, v1 Vector) {
	base := cb.Order * predictor
	return cb.Predictors[base], cb.Predictors[base+1]
}

// EncoderState is the carry-state threaded between successive calls to
// EncodeData: the last two output samples of the previous frame, and the
// dither generator's running state.
type EncoderState struct {
	Prev [2]int16
	RNG  uint32
}

// DecoderState is the carry-state threaded between successive calls to
// Decode: the last two decoded samples of the previous frame.
type DecoderState struct {
	Prev [2]int16
}

// Params configures a top-level Encode call.
type Params struct {
	// PredictorCount is the number of predictors to search over, 1..16.
	PredictorCount int
}

// Stats accumulates the squared signal and squared error observed while
// encoding, letting callers report signal-to-noise ratio after the fact.
type Stats struct {
	SignalSumSquare float64
	ErrorSumSquare  float64
	SampleCount     int64
}

// Add folds other into s.
func (s *Stats) Add(other Stats) {
	s.SignalSumSquare += other.SignalSumSquare
	s.ErrorSumSquare += other.ErrorSumSquare
	s.SampleCount += other.SampleCount
}
