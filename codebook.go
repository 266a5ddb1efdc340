package vadpcm

import (
	"encoding/binary"
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// codebookVersion is the only wire format version this package
// understands, stored as the first field of an encoded codebook.
const codebookVersion = 1

// WriteCodebook writes cb in the big-endian wire format used by the AIFF-C
// APPL codebook chunk: a u16 version, u16 order, u16 predictor count,
// followed by the predictor vectors themselves (order*predictorCount
// vectors of 8 big-endian int16 each).
func WriteCodebook(w io.Writer, cb Codebook) error {
	bw := bitio.NewWriter(w)
	if err := binary.Write(bw, binary.BigEndian, uint16(codebookVersion)); err != nil {
		return errutil.Err(err)
	}
	if err := binary.Write(bw, binary.BigEndian, uint16(cb.Order)); err != nil {
		return errutil.Err(err)
	}
	if err := binary.Write(bw, binary.BigEndian, uint16(cb.PredictorCount())); err != nil {
		return errutil.Err(err)
	}
	for _, v := range cb.Predictors {
		if err := binary.Write(bw, binary.BigEndian, v); err != nil {
			return errutil.Err(err)
		}
	}
	if err := bw.Close(); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// ReadCodebook parses a codebook written by WriteCodebook.
func ReadCodebook(r io.Reader) (Codebook, error) {
	br := bitio.NewReader(r)

	var version, order, predictorCount uint16
	if err := binary.Read(br, binary.BigEndian, &version); err != nil {
		return Codebook{}, errutil.Err(err)
	}
	if version != codebookVersion {
		return Codebook{}, newError(kindUnknownVersion, "%d", version)
	}
	if err := binary.Read(br, binary.BigEndian, &order); err != nil {
		return Codebook{}, errutil.Err(err)
	}
	if order != Order {
		return Codebook{}, newError(kindLargeOrder, "%d", order)
	}
	if err := binary.Read(br, binary.BigEndian, &predictorCount); err != nil {
		return Codebook{}, errutil.Err(err)
	}
	if predictorCount < 1 || predictorCount > MaxPredictorCount {
		return Codebook{}, newError(kindLargePredictorCount, "%d", predictorCount)
	}

	vectors := make([]Vector, int(order)*int(predictorCount))
	for i := range vectors {
		if err := binary.Read(br, binary.BigEndian, &vectors[i]); err != nil {
			return Codebook{}, errutil.Err(err)
		}
	}
	return Codebook{Order: int(order), Predictors: vectors}, nil
}
