package riff

import (
	"bytes"
	"testing"
)

// seekBuffer is an io.WriteSeeker backed by a growable in-memory slice, for
// exercising WritePCM without a real file.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		b.pos = int(offset)
	case 1:
		b.pos += int(offset)
	case 2:
		b.pos = len(b.data) + int(offset)
	}
	return int64(b.pos), nil
}

func TestPCMRoundTrip(t *testing.T) {
	samples := []int16{0, 100, -100, 32767, -32768, 42}
	var buf seekBuffer
	if err := WritePCM(&buf, samples, 1, 22050); err != nil {
		t.Fatalf("WritePCM: %v", err)
	}
	got, channels, rate, err := ReadPCM(bytes.NewReader(buf.data))
	if err != nil {
		t.Fatalf("ReadPCM: %v", err)
	}
	if channels != 1 {
		t.Errorf("channels = %d, want 1", channels)
	}
	if rate != 22050 {
		t.Errorf("sampleRate = %d, want 22050", rate)
	}
	if len(got) != len(samples) {
		t.Fatalf("len(samples) = %d, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if got[i] != s {
			t.Errorf("sample %d = %d, want %d", i, got[i], s)
		}
	}
}

func TestReadPCMRejectsNonWAV(t *testing.T) {
	if _, _, _, err := ReadPCM(bytes.NewReader([]byte("not a wav file"))); err == nil {
		t.Error("ReadPCM: expected error for non-WAV input")
	}
}
