// Package riff reads and writes the plain 16-bit PCM WAV files this codec's
// command-line tools accept as encoder input and produce as decoder output.
// VADPCM data itself is never stored in a WAV file; riff only ever carries
// raw samples, with the AIFF-C container (package aiff) responsible for
// self-describing VADPCM streams.
package riff

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// pcmAudioFormat is the WAV audioFormat tag for uncompressed linear PCM.
const pcmAudioFormat = 1

// ReadPCM reads a 16-bit PCM WAV file and returns its interleaved samples,
// channel count and sample rate.
func ReadPCM(r io.Reader) (samples []int16, channels int, sampleRate int, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, 0, errors.New("riff.ReadPCM: not a valid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, 0, 0, errors.WithStack(err)
	}
	channels = int(dec.NumChans)
	sampleRate = int(dec.SampleRate)
	bitDepth := int(dec.BitDepth)
	if bitDepth != 16 {
		return nil, 0, 0, errors.Errorf("riff.ReadPCM: unsupported bit depth %d; only 16-bit PCM is supported", bitDepth)
	}

	const samplesPerRead = 4096
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, samplesPerRead),
		SourceBitDepth: bitDepth,
	}
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, 0, 0, errors.WithStack(err)
		}
		if n == 0 {
			break
		}
		for _, s := range buf.Data[:n] {
			samples = append(samples, int16(s))
		}
		if n < len(buf.Data) {
			break
		}
	}
	return samples, channels, sampleRate, nil
}

// WritePCM writes interleaved 16-bit PCM samples as a WAV file. w must
// support Seek, since the WAV format requires patching chunk sizes once the
// sample count is known.
func WritePCM(w io.WriteSeeker, samples []int16, channels int, sampleRate int) error {
	if channels < 1 {
		return fmt.Errorf("riff.WritePCM: channels must be positive, got %d", channels)
	}
	enc := wav.NewEncoder(w, sampleRate, 16, channels, pcmAudioFormat)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(enc.Close())
}
