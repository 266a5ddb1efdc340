package fixedpoint

import "testing"

func TestSaturate16(t *testing.T) {
	tests := []struct {
		in   int64
		want int16
	}{
		{0, 0},
		{32767, 32767},
		{32768, 32767},
		{1 << 30, 32767},
		{-32768, -32768},
		{-32769, -32768},
		{-(1 << 30), -32768},
	}
	for _, tt := range tests {
		if got := Saturate16(tt.in); got != tt.want {
			t.Errorf("Saturate16(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUnpackNibble(t *testing.T) {
	tests := []struct {
		b     byte
		high  bool
		want  int8
	}{
		{0x70, true, 7},
		{0x07, false, 7},
		{0x80, true, -8},
		{0x08, false, -8},
		{0xf0, true, -1},
	}
	for _, tt := range tests {
		if got := UnpackNibble(tt.b, tt.high); got != tt.want {
			t.Errorf("UnpackNibble(%#x, %v) = %d, want %d", tt.b, tt.high, got, tt.want)
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for hi := int8(-8); hi <= 7; hi++ {
		for lo := int8(-8); lo <= 7; lo++ {
			b := PackNibble(hi, lo)
			if got := UnpackNibble(b, true); got != hi {
				t.Errorf("PackNibble(%d,%d) high = %d, want %d", hi, lo, got, hi)
			}
			if got := UnpackNibble(b, false); got != lo {
				t.Errorf("PackNibble(%d,%d) low = %d, want %d", hi, lo, got, lo)
			}
		}
	}
}

func TestExtendedRoundTrip(t *testing.T) {
	rates := []float64{44100, 8000, 22050, 48000, 96000}
	for _, rate := range rates {
		se, frac := Float64ToExtended(rate)
		got := ExtendedToFloat64(se, frac)
		if got != rate {
			t.Errorf("extended round trip for %v = %v", rate, got)
		}
	}
}

func TestExtendedZero(t *testing.T) {
	se, frac := Float64ToExtended(0)
	if se != 0 || frac != 0 {
		t.Errorf("Float64ToExtended(0) = (%#x, %#x), want zero", se, frac)
	}
	if got := ExtendedToFloat64(0, 0); got != 0 {
		t.Errorf("ExtendedToFloat64(0,0) = %v, want 0", got)
	}
}
