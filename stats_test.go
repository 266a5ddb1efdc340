package vadpcm

import (
	"math"
	"testing"
)

func TestStatsSNR(t *testing.T) {
	s := Stats{SignalSumSquare: 100, ErrorSumSquare: 1, SampleCount: 16}
	if got := s.SNR(); math.Abs(got-20) > 1e-9 {
		t.Errorf("SNR() = %v, want 20", got)
	}
}

func TestStatsSNRNoError(t *testing.T) {
	s := Stats{SignalSumSquare: 100, SampleCount: 16}
	if got := s.SNR(); !math.IsInf(got, 1) {
		t.Errorf("SNR() = %v, want +Inf", got)
	}
}

func TestStatsSNRNoSamples(t *testing.T) {
	if got := (Stats{}).SNR(); !math.IsNaN(got) {
		t.Errorf("SNR() = %v, want NaN", got)
	}
}
