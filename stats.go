package vadpcm

import "math"

// SNR returns the signal-to-noise ratio of the encoded audio, in decibels.
// It returns +Inf if no error was observed (e.g. silence), and NaN if no
// samples were accumulated.
func (s Stats) SNR() float64 {
	if s.SampleCount == 0 {
		return math.NaN()
	}
	if s.ErrorSumSquare == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(s.SignalSumSquare/s.ErrorSumSquare)
}
