// Package aiff reads and writes the AIFF and AIFF-C container conventions
// this codec uses to make an encoded stream self-describing: PCM or VADPCM
// sample data, an 80-bit extended-precision sample rate, and — for VADPCM
// files — the predictor codebook, carried in an APPL chunk.
//
// ref: https://mmsp.ece.mcgill.ca/Documents/AudioFormats/AIFF/Docs/AIFF-1.3.pdf
package aiff

import "github.com/depp/vadpcm"

// Codec identifies the sample encoding carried in an AIFF/AIFF-C file's
// SSND chunk.
type Codec int

const (
	// CodecPCM is uncompressed 16-bit signed big-endian PCM.
	CodecPCM Codec = iota
	// CodecVADPCM is VADPCM-encoded audio, requiring an accompanying
	// codebook APPL chunk.
	CodecVADPCM
)

// formType distinguishes classic AIFF from AIFF-C (AIFC), which adds a
// codec FourCC and compression name to the COMM chunk.
type formType [4]byte

var (
	formAIFF = formType{'A', 'I', 'F', 'F'}
	formAIFC = formType{'A', 'I', 'F', 'C'}
)

// chunk IDs used by this package.
var (
	idFORM = [4]byte{'F', 'O', 'R', 'M'}
	idCOMM = [4]byte{'C', 'O', 'M', 'M'}
	idFVER = [4]byte{'F', 'V', 'E', 'R'}
	idAPPL = [4]byte{'A', 'P', 'P', 'L'}
	idSSND = [4]byte{'S', 'S', 'N', 'D'}
)

// codecFourCC identifies VADPCM in an AIFF-C COMM chunk.
var codecFourCC = [4]byte{'V', 'A', 'P', 'C'}

// pcmCompressionName and vadpcmCompressionName are the Pascal-style
// ("length byte + bytes") compression name strings stored after the codec
// FourCC in an AIFF-C COMM chunk.
const (
	pcmCompressionName    = "not compressed"
	vadpcmCompressionName = "VADPCM ~4-1"
)

// aifcVersion1 is the FVER timestamp this package writes, the standard
// AIFF-C version-1 format date. Parse skips FVER chunks without checking
// their contents.
const aifcVersion1 = 0xa2805140

// applSignature is the four-byte application signature this package writes
// ahead of the codebook name in an APPL chunk.
var applSignature = [4]byte{'s', 't', 'o', 'c'}

// codebookApplName is the Pascal-style ("length byte + bytes") application
// name this package stores its VADPCM codebook payload under, inside an
// APPL chunk.
const codebookApplName = "VADPCMCODES"

// File is a parsed AIFF or AIFF-C file: its format metadata plus either raw
// PCM samples or an encoded VADPCM stream and codebook.
type File struct {
	Codec      Codec
	IsAIFC     bool
	Channels   int
	SampleRate float64

	// Samples holds decoded PCM (int16, big-endian on the wire) when
	// Codec == CodecPCM.
	Samples []int16

	// VADPCM holds the encoded frame stream and codebook when
	// Codec == CodecVADPCM. OriginalSampleCount is the sample count before
	// padding to a frame boundary.
	VADPCM              []byte
	Codebook            vadpcm.Codebook
	PredictorCount      int
	OriginalSampleCount int
}
