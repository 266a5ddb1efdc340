package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/depp/vadpcm"
	"github.com/depp/vadpcm/aiff"
	"github.com/pkg/errors"
)

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	predictorCount := fs.Int("predictors", 4, "number of predictors in the codebook")
	quiet := fs.Bool("quiet", false, "suppress the reported SNR")
	paths, err := flagSetArgs(fs, args)
	if err != nil {
		return err
	}
	input, output := paths[0], paths[1]

	samples, channels, sampleRate, err := readPCM(input)
	if err != nil {
		return errors.Wrapf(err, "reading %q", input)
	}
	if channels != 1 {
		return errors.Errorf("%q: only mono input is supported, got %d channels", input, channels)
	}

	originalSampleCount := len(samples)
	if pad := len(samples) % vadpcm.FrameSampleCount; pad != 0 {
		samples = append(samples, make([]int16, vadpcm.FrameSampleCount-pad)...)
	}

	codebook, frames, stats, err := vadpcm.Encode(vadpcm.Params{PredictorCount: *predictorCount}, samples)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", input)
	}

	f, err := os.Create(output)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	if err := aiff.WriteVADPCM(f, frames, originalSampleCount, codebook, channels, sampleRate); err != nil {
		return errors.Wrapf(err, "writing %q", output)
	}

	if !*quiet {
		fmt.Printf("%s: %d samples, %d predictors, SNR %.2f dB\n", output, originalSampleCount, codebook.PredictorCount(), stats.SNR())
	}
	return nil
}
