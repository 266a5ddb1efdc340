package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/depp/vadpcm/aiff"
	"github.com/depp/vadpcm/riff"
	"github.com/pkg/errors"
)

// readPCM loads PCM samples and a sample rate from a .wav or .aif/.aiff
// file, dispatching on extension.
func readPCM(path string) (samples []int16, channels int, sampleRate float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, errors.WithStack(err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, ch, rate, err := riff.ReadPCM(f)
		if err != nil {
			return nil, 0, 0, errors.WithStack(err)
		}
		return s, ch, float64(rate), nil
	case ".aif", ".aiff", ".aifc":
		s, ch, rate, err := aiff.ReadPCM(f)
		if err != nil {
			return nil, 0, 0, errors.WithStack(err)
		}
		return s, ch, rate, nil
	default:
		return nil, 0, 0, errors.Errorf("unrecognized input file extension %q", filepath.Ext(path))
	}
}

// writePCM writes PCM samples to a .wav or .aif/.aiff file, dispatching on
// extension.
func writePCM(path string, samples []int16, channels int, sampleRate float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return errors.WithStack(riff.WritePCM(f, samples, channels, int(sampleRate)))
	case ".aif", ".aiff", ".aifc":
		return errors.WithStack(aiff.WritePCM(f, samples, channels, sampleRate))
	default:
		return errors.Errorf("unrecognized output file extension %q", filepath.Ext(path))
	}
}
