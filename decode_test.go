package vadpcm

import (
	"math"
	"testing"
)

func TestDecodeSilence(t *testing.T) {
	cb := Codebook{
		Order: 2,
		Predictors: []Vector{
			{},
			{2048, 0, 0, 0, 0, 0, 0, 0},
		},
	}
	frame := make([]byte, FrameByteSize)
	var state DecoderState
	out := make([]int16, FrameSampleCount)
	if err := Decode(cb, 1, 2, &state, frame, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, s := range out {
		if s != 0 {
			t.Errorf("out[%d] = %d, want 0", i, s)
		}
	}
	if state.Prev != ([2]int16{}) {
		t.Errorf("state.Prev = %v, want zero", state.Prev)
	}
}

func TestDecodeRejectsBadPredictor(t *testing.T) {
	cb := Codebook{Order: 2, Predictors: make([]Vector, 2)}
	frame := []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0} // predictor index 1, but predictorCount=1
	var state DecoderState
	out := make([]int16, FrameSampleCount)
	err := Decode(cb, 1, 2, &state, frame, out)
	if err == nil {
		t.Fatal("Decode: expected error for out-of-range predictor")
	}
	var verr *Error
	if e, ok := err.(*Error); ok {
		verr = e
	}
	if verr == nil || verr.Kind != kindInvalidData {
		t.Errorf("Decode error = %v, want kindInvalidData", err)
	}
}

func TestDecodeRejectsBadOrder(t *testing.T) {
	cb := Codebook{Order: 2, Predictors: make([]Vector, 2)}
	var state DecoderState
	out := make([]int16, FrameSampleCount)
	err := Decode(cb, 1, 3, &state, make([]byte, FrameByteSize), out)
	if err == nil {
		t.Fatal("Decode: expected error for order != 2")
	}
}

func TestDecodeRejectsTooManyPredictors(t *testing.T) {
	cb := Codebook{Order: 2, Predictors: make([]Vector, 2)}
	var state DecoderState
	out := make([]int16, FrameSampleCount)
	err := Decode(cb, MaxPredictorCount+1, 2, &state, make([]byte, FrameByteSize), out)
	if err == nil {
		t.Fatal("Decode: expected error for predictor count out of range")
	}
}

// TestEncodeDecodeRoundTrip exercises properties P1/P2/P7: the stream an
// encoder produces decodes back through the exact same forward model the
// encoder used to pick its residuals, and the encoder's and decoder's
// carry-state agree frame for frame, whether encoded/decoded in one call
// or incrementally.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	pcm := make([]int16, FrameSampleCount*8)
	for i := range pcm {
		pcm[i] = int16(8000 * math.Sin(float64(i)/3.3))
	}

	cb, data, _, err := Encode(Params{PredictorCount: 2}, pcm)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decState DecoderState
	decoded := make([]int16, len(pcm))
	if err := Decode(cb, 2, 2, &decState, data, decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// Re-encoding the decoded samples with the same codebook and
	// predictor assignment must reproduce the same bytes (P7): decode is
	// exactly the encoder's own forward model.
	predictors := make([]uint8, len(pcm)/FrameSampleCount)
	for i := range predictors {
		predictors[i] = data[i*FrameByteSize] & 0xf
	}
	var encState EncoderState
	redata, _ := EncodeData(decoded, predictors, cb, &encState)
	for i := range data {
		if data[i] != redata[i] {
			t.Fatalf("re-encode mismatch at byte %d: %#x != %#x", i, data[i], redata[i])
		}
	}

	// Incremental encode/decode, frame by frame, must match the bulk
	// result exactly, including carry-state (P2).
	var incEnc EncoderState
	var incDec DecoderState
	frameCount := len(pcm) / FrameSampleCount
	for f := 0; f < frameCount; f++ {
		fpcm := pcm[f*FrameSampleCount : (f+1)*FrameSampleCount]
		fb, _ := encodeOneFrame(fpcm, int(predictors[f]), cb, &incEnc)
		want := data[f*FrameByteSize : (f+1)*FrameByteSize]
		for i, b := range fb {
			if b != want[i] {
				t.Fatalf("frame %d incremental encode mismatch at byte %d", f, i)
			}
		}
		fout := make([]int16, FrameSampleCount)
		if err := Decode(cb, 2, 2, &incDec, fb[:], fout); err != nil {
			t.Fatalf("frame %d incremental decode: %v", f, err)
		}
		if incEnc.Prev != incDec.Prev {
			t.Fatalf("frame %d: encoder state %v != decoder state %v", f, incEnc.Prev, incDec.Prev)
		}
	}
}
