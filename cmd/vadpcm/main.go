// vadpcm encodes and decodes audio using the VADPCM codec, reading and
// writing WAV (PCM only) and AIFF/AIFF-C (PCM and VADPCM) files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: vadpcm encode|decode [OPTION]... INPUT OUTPUT")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "encode [OPTION]... INPUT OUTPUT")
	fmt.Fprintln(os.Stderr, "  Encode a PCM file (.wav or .aiff) to a VADPCM AIFF-C file.")
	fmt.Fprintln(os.Stderr, "  -predictors N   number of predictors in the codebook (default 4)")
	fmt.Fprintln(os.Stderr, "  -quiet          suppress the reported SNR")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "decode [OPTION]... INPUT OUTPUT")
	fmt.Fprintln(os.Stderr, "  Decode a VADPCM AIFF-C file to a PCM file (.wav or .aiff).")
	fmt.Fprintln(os.Stderr, "  -quiet          suppress progress output")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "encode":
		err = runEncode(args)
	case "decode":
		err = runDecode(args)
	case "-h", "-help", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "vadpcm: unknown command %q\n", command)
		usage()
		os.Exit(2)
	}
	if err != nil {
		if uerr, ok := err.(usageError); ok {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		log.Fatalf("%+v", err)
	}
}

// usageError marks an error as a command-line usage mistake, mapped to
// exit code 2 rather than the generic runtime-error exit code 1.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func flagSetArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, usageError{err.Error()}
	}
	if fs.NArg() != 2 {
		return nil, usageError{fmt.Sprintf("%s: expected INPUT and OUTPUT arguments", fs.Name())}
	}
	return fs.Args(), nil
}
