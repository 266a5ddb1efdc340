// vadpcmstats encodes one or more PCM input files and reports the
// resulting VADPCM noise level for each, concurrently.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/depp/vadpcm"
	"github.com/depp/vadpcm/aiff"
	"github.com/depp/vadpcm/riff"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: vadpcmstats [OPTION]... FILE...")
	fmt.Fprintln(os.Stderr, "Encode one or more files and report the noise level for each.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  -predictors N  number of predictors to use (1..16, default 4)")
	fmt.Fprintln(os.Stderr, "  -workers N     number of concurrent workers (default: number of CPUs)")
	fmt.Fprintln(os.Stderr, "  -output FILE   write per-file stats to a CSV file")
}

type fileResult struct {
	path  string
	stats vadpcm.Stats
}

func main() {
	predictorCount := flag.Int("predictors", 4, "number of predictors to use")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent workers")
	outputPath := flag.String("output", "", "write per-file stats to a CSV file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	if err := run(flag.Args(), *predictorCount, *workers, *outputPath); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(paths []string, predictorCount, workers int, outputPath string) error {
	results := make([]fileResult, len(paths))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats, err := collectStats(path, predictorCount)
			if err != nil {
				return errors.Wrapf(err, "encoding %q", path)
			}
			results[i] = fileResult{path: path, stats: stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total vadpcm.Stats
	for _, r := range results {
		fmt.Printf("%s: SNR %.2f dB\n", r.path, r.stats.SNR())
		total.Add(r.stats)
	}
	fmt.Printf("overall: SNR %.2f dB\n", total.SNR())

	if outputPath != "" {
		if err := writeCSV(outputPath, results); err != nil {
			return errors.Wrapf(err, "writing %q", outputPath)
		}
	}
	return nil
}

func collectStats(path string, predictorCount int) (vadpcm.Stats, error) {
	samples, channels, _, err := readPCM(path)
	if err != nil {
		return vadpcm.Stats{}, err
	}
	if channels != 1 {
		return vadpcm.Stats{}, errors.Errorf("only mono input is supported, got %d channels", channels)
	}
	if pad := len(samples) % vadpcm.FrameSampleCount; pad != 0 {
		samples = append(samples, make([]int16, vadpcm.FrameSampleCount-pad)...)
	}
	_, _, stats, err := vadpcm.Encode(vadpcm.Params{PredictorCount: predictorCount}, samples)
	if err != nil {
		return vadpcm.Stats{}, err
	}
	return stats, nil
}

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

func writeCSV(path string, results []fileResult) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	for _, r := range results {
		signal := r.stats.SignalSumSquare
		errSq := r.stats.ErrorSumSquare
		if _, err := fmt.Fprintf(f, "%s,%.5g,%.5g\r\n", r.path, signal, errSq); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
