package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/depp/vadpcm"
	"github.com/depp/vadpcm/aiff"
	"github.com/pkg/errors"
)

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	quiet := fs.Bool("quiet", false, "suppress progress output")
	paths, err := flagSetArgs(fs, args)
	if err != nil {
		return err
	}
	input, output := paths[0], paths[1]

	f, err := os.Open(input)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	file, err := aiff.ReadVADPCM(f)
	if err != nil {
		return errors.Wrapf(err, "reading %q", input)
	}

	samples := make([]int16, file.OriginalSampleCount)
	state := &vadpcm.DecoderState{}
	decoded := make([]int16, len(file.VADPCM)/vadpcm.FrameByteSize*vadpcm.FrameSampleCount)
	if err := vadpcm.Decode(file.Codebook, file.PredictorCount, vadpcm.Order, state, file.VADPCM, decoded); err != nil {
		return errors.Wrapf(err, "decoding %q", input)
	}
	copy(samples, decoded)

	if err := writePCM(output, samples, file.Channels, file.SampleRate); err != nil {
		return errors.Wrapf(err, "writing %q", output)
	}

	if !*quiet {
		fmt.Printf("%s: %d samples\n", output, len(samples))
	}
	return nil
}
