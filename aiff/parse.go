package aiff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/depp/vadpcm"
	"github.com/depp/vadpcm/internal/bufseekio"
	"github.com/depp/vadpcm/internal/fixedpoint"
	"github.com/icza/bitio"
)

// Parse reads an AIFF or AIFF-C file from r, walking chunks without
// requiring the whole file to be buffered up front; unknown chunks are
// skipped with Seek rather than read.
func Parse(r io.ReadSeeker) (*File, error) {
	br := bufseekio.NewReadSeeker(r)

	var header [12]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("aiff.Parse: reading FORM header: %w", err)
	}
	if !bytes.Equal(header[0:4], idFORM[:]) {
		return nil, fmt.Errorf("aiff.Parse: missing FORM header; got %q", header[0:4])
	}
	contentSize := int64(binary.BigEndian.Uint32(header[4:8]))

	var form formType
	copy(form[:], header[8:12])
	f := &File{}
	switch form {
	case formAIFF:
		f.IsAIFC = false
	case formAIFC:
		f.IsAIFC = true
	default:
		return nil, fmt.Errorf("aiff.Parse: unrecognized form type %q", header[8:12])
	}

	var haveCOMM bool
	var sampleSize int
	var numSampleFrames uint32
	var ssnd []byte

	pos := int64(4) // counted from the form type, matching contentSize's own reference point
	for pos+8 <= contentSize {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(br, chunkHeader[:]); err != nil {
			return nil, fmt.Errorf("aiff.Parse: reading chunk header: %w", err)
		}
		var id [4]byte
		copy(id[:], chunkHeader[0:4])
		size := int64(binary.BigEndian.Uint32(chunkHeader[4:8]))
		pos += 8
		if pos+size > contentSize {
			return nil, fmt.Errorf("aiff.Parse: chunk %q size %d overruns file", id, size)
		}

		padded := size
		if size%2 != 0 {
			padded++
		}

		switch id {
		case idCOMM, idAPPL, idSSND:
			body := make([]byte, size)
			if _, err := io.ReadFull(br, body); err != nil {
				return nil, fmt.Errorf("aiff.Parse: reading chunk %q: %w", id, err)
			}
			if padded > size {
				if _, err := br.Seek(1, io.SeekCurrent); err != nil {
					return nil, fmt.Errorf("aiff.Parse: skipping chunk %q padding: %w", id, err)
				}
			}
			switch id {
			case idCOMM:
				if err := f.parseCOMM(body, &sampleSize, &numSampleFrames); err != nil {
					return nil, err
				}
				haveCOMM = true
			case idAPPL:
				if err := f.parseAPPL(body); err != nil {
					return nil, err
				}
			case idSSND:
				if len(body) < 8 {
					return nil, fmt.Errorf("aiff.Parse: SSND chunk too small")
				}
				ssnd = body[8:]
			}
		default:
			if _, err := br.Seek(padded, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("aiff.Parse: skipping chunk %q: %w", id, err)
			}
		}
		pos += padded
	}
	if !haveCOMM {
		return nil, fmt.Errorf("aiff.Parse: missing COMM chunk")
	}

	if f.Codec == CodecPCM {
		if sampleSize != 16 {
			return nil, fmt.Errorf("aiff.Parse: sample size %d unsupported; only 16-bit PCM is supported", sampleSize)
		}
		samples := make([]int16, numSampleFrames)
		sr := bitio.NewReader(bytes.NewReader(ssnd))
		for i := range samples {
			v, err := sr.ReadBits(16)
			if err != nil {
				return nil, fmt.Errorf("aiff.Parse: reading SSND sample %d: %w", i, err)
			}
			samples[i] = int16(v)
		}
		f.Samples = samples
	} else {
		f.VADPCM = ssnd
		f.OriginalSampleCount = int(numSampleFrames)
	}
	return f, nil
}

func (f *File) parseCOMM(chunk []byte, sampleSize *int, numSampleFrames *uint32) error {
	if len(chunk) < 18 {
		return fmt.Errorf("aiff.Parse: COMM chunk too small (%d bytes)", len(chunk))
	}
	f.Channels = int(binary.BigEndian.Uint16(chunk[0:2]))
	*numSampleFrames = binary.BigEndian.Uint32(chunk[2:6])
	*sampleSize = int(binary.BigEndian.Uint16(chunk[6:8]))
	signExponent := binary.BigEndian.Uint16(chunk[8:10])
	fraction := binary.BigEndian.Uint64(chunk[10:18])
	f.SampleRate = fixedpoint.ExtendedToFloat64(signExponent, fraction)

	if f.IsAIFC {
		if len(chunk) < 23 {
			return fmt.Errorf("aiff.Parse: AIFF-C COMM chunk too small for codec field (%d bytes)", len(chunk))
		}
		var fourCC [4]byte
		copy(fourCC[:], chunk[18:22])
		if fourCC == codecFourCC {
			f.Codec = CodecVADPCM
		} else {
			f.Codec = CodecPCM
		}
	} else {
		f.Codec = CodecPCM
	}
	return nil
}

func (f *File) parseAPPL(chunk []byte) error {
	if len(chunk) < 5 {
		return nil
	}
	var sig [4]byte
	copy(sig[:], chunk[0:4])
	if sig != applSignature {
		return nil
	}
	nameLen := int(chunk[4])
	if len(chunk) < 5+nameLen {
		return fmt.Errorf("aiff.Parse: APPL chunk too small for name")
	}
	name := string(chunk[5 : 5+nameLen])
	if name != codebookApplName {
		return nil
	}
	payload := chunk[5+nameLen:]
	cb, err := vadpcm.ReadCodebook(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("aiff.Parse: reading codebook: %w", err)
	}
	f.Codebook = cb
	f.PredictorCount = cb.PredictorCount()
	return nil
}

// ReadPCM parses r as an AIFF/AIFF-C file and returns its PCM samples,
// channel count and sample rate. It is an error for the file to carry
// VADPCM data.
func ReadPCM(r io.ReadSeeker) (samples []int16, channels int, sampleRate float64, err error) {
	f, err := Parse(r)
	if err != nil {
		return nil, 0, 0, err
	}
	if f.Codec != CodecPCM {
		return nil, 0, 0, fmt.Errorf("aiff.ReadPCM: file is not PCM")
	}
	return f.Samples, f.Channels, f.SampleRate, nil
}

// ReadVADPCM parses r as an AIFF-C/VADPCM file.
func ReadVADPCM(r io.ReadSeeker) (*File, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if f.Codec != CodecVADPCM {
		return nil, fmt.Errorf("aiff.ReadVADPCM: file is not VADPCM")
	}
	return f, nil
}
