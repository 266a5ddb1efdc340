package aiff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/depp/vadpcm"
	"github.com/depp/vadpcm/internal/fixedpoint"
	"github.com/icza/bitio"
)

// Write serializes f as an AIFF (PCM) or AIFF-C (VADPCM) file, writing
// chunks in the order FVER (AIFF-C only), COMM, APPL (VADPCM codebook, if
// present), SSND.
func Write(w io.Writer, f *File) error {
	isAIFC := f.Codec == CodecVADPCM

	var comm, appl, ssnd bytes.Buffer
	if err := writeCOMM(&comm, f, isAIFC); err != nil {
		return fmt.Errorf("aiff.Write: %w", err)
	}
	if f.Codec == CodecVADPCM {
		if err := writeAPPL(&appl, f.Codebook); err != nil {
			return fmt.Errorf("aiff.Write: %w", err)
		}
	}
	if err := writeSSND(&ssnd, f); err != nil {
		return fmt.Errorf("aiff.Write: %w", err)
	}

	contentSize := 4 // form type
	if isAIFC {
		contentSize += chunkSize(len(fverBody))
	}
	contentSize += chunkSize(comm.Len())
	if appl.Len() > 0 {
		contentSize += chunkSize(appl.Len())
	}
	contentSize += chunkSize(ssnd.Len())

	bw := bitio.NewWriter(w)
	if _, err := bw.Write(idFORM[:]); err != nil {
		return fmt.Errorf("aiff.Write: %w", err)
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(contentSize)); err != nil {
		return fmt.Errorf("aiff.Write: %w", err)
	}
	form := formAIFF
	if isAIFC {
		form = formAIFC
	}
	if _, err := bw.Write(form[:]); err != nil {
		return fmt.Errorf("aiff.Write: %w", err)
	}

	if isAIFC {
		if err := writeChunk(bw, idFVER, fverBody[:]); err != nil {
			return err
		}
	}
	if err := writeChunk(bw, idCOMM, comm.Bytes()); err != nil {
		return err
	}
	if appl.Len() > 0 {
		if err := writeChunk(bw, idAPPL, appl.Bytes()); err != nil {
			return err
		}
	}
	if err := writeChunk(bw, idSSND, ssnd.Bytes()); err != nil {
		return err
	}
	return bw.Close()
}

var fverBody = func() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], aifcVersion1)
	return b
}()

func chunkSize(bodyLen int) int {
	size := 8 + bodyLen
	if bodyLen%2 != 0 {
		size++
	}
	return size
}

func writeChunk(w *bitio.Writer, id [4]byte, body []byte) error {
	if _, err := w.Write(id[:]); err != nil {
		return fmt.Errorf("aiff: writing chunk %q: %w", id, err)
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(body))); err != nil {
		return fmt.Errorf("aiff: writing chunk %q: %w", id, err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("aiff: writing chunk %q: %w", id, err)
	}
	if len(body)%2 != 0 {
		if err := w.WriteByte(0); err != nil {
			return fmt.Errorf("aiff: writing chunk %q padding: %w", id, err)
		}
	}
	return nil
}

func writeCOMM(buf *bytes.Buffer, f *File, isAIFC bool) error {
	var numSampleFrames uint32
	sampleSize := uint16(16)
	switch f.Codec {
	case CodecPCM:
		numSampleFrames = uint32(len(f.Samples))
	case CodecVADPCM:
		numSampleFrames = uint32(f.OriginalSampleCount)
	}

	bw := bitio.NewWriter(buf)
	if err := binary.Write(bw, binary.BigEndian, uint16(f.Channels)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, numSampleFrames); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, sampleSize); err != nil {
		return err
	}
	signExponent, fraction := fixedpoint.Float64ToExtended(f.SampleRate)
	if err := binary.Write(bw, binary.BigEndian, signExponent); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, fraction); err != nil {
		return err
	}
	if isAIFC {
		fourCC := [4]byte{'N', 'O', 'N', 'E'}
		name := pcmCompressionName
		if f.Codec == CodecVADPCM {
			fourCC = codecFourCC
			name = vadpcmCompressionName
		}
		if _, err := bw.Write(fourCC[:]); err != nil {
			return err
		}
		if err := bw.WriteByte(byte(len(name))); err != nil {
			return err
		}
		if _, err := bw.Write([]byte(name)); err != nil {
			return err
		}
	}
	return bw.Close()
}

func writeAPPL(buf *bytes.Buffer, cb vadpcm.Codebook) error {
	bw := bitio.NewWriter(buf)
	if _, err := bw.Write(applSignature[:]); err != nil {
		return err
	}
	if err := bw.WriteByte(byte(len(codebookApplName))); err != nil {
		return err
	}
	if _, err := bw.Write([]byte(codebookApplName)); err != nil {
		return err
	}
	if err := bw.Close(); err != nil {
		return err
	}
	return vadpcm.WriteCodebook(buf, cb)
}

func writeSSND(buf *bytes.Buffer, f *File) error {
	bw := bitio.NewWriter(buf)
	if err := binary.Write(bw, binary.BigEndian, uint32(0)); err != nil { // offset
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(0)); err != nil { // blockSize
		return err
	}
	switch f.Codec {
	case CodecPCM:
		for _, s := range f.Samples {
			if err := binary.Write(bw, binary.BigEndian, s); err != nil {
				return err
			}
		}
	case CodecVADPCM:
		if _, err := bw.Write(f.VADPCM); err != nil {
			return err
		}
	}
	return bw.Close()
}

// WritePCM writes a classic AIFF file with raw 16-bit PCM samples.
func WritePCM(w io.Writer, samples []int16, channels int, sampleRate float64) error {
	return Write(w, &File{
		Codec:      CodecPCM,
		Channels:   channels,
		SampleRate: sampleRate,
		Samples:    samples,
	})
}

// WriteVADPCM writes an AIFF-C file carrying VADPCM-encoded audio and its
// predictor codebook.
func WriteVADPCM(w io.Writer, frames []byte, originalSampleCount int, cb vadpcm.Codebook, channels int, sampleRate float64) error {
	return Write(w, &File{
		Codec:               CodecVADPCM,
		IsAIFC:              true,
		Channels:            channels,
		SampleRate:          sampleRate,
		VADPCM:              frames,
		Codebook:            cb,
		PredictorCount:      cb.PredictorCount(),
		OriginalSampleCount: originalSampleCount,
	})
}
