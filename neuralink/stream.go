package neuralink

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/sitmo/NeuroMasterBlaster/internal/bitio"
)

// Encode reads little-endian signed 16-bit samples from r until EOF,
// arithmetic-encodes them against a fresh Model, and writes the packed
// bit stream to w: one interval per sample, then the stop symbol, then
// the coder flush, then the bit sink's own padding flush.
func Encode(w io.Writer, r io.Reader) error {
	model := NewModel()
	enc := NewEncoder[*Model](model)
	bw := bitio.NewWriter(w)

	var sampleBuf [2]byte
	for {
		if _, err := io.ReadFull(r, sampleBuf[:]); err != nil {
			if err == io.EOF {
				break
			}
			return errors.Wrap(err, "neuralink: read sample")
		}
		sample := int16(binary.LittleEndian.Uint16(sampleBuf[:]))
		symbol := EncodeSample(sample)

		enc.Encode(symbol, bw)
		model.UpdateState(symbol)
	}

	// The stop symbol is encoded but, matching the reference encoder,
	// never fed back into UpdateState: the stream ends here regardless.
	enc.Encode(StopSymbol, bw)
	enc.Flush(bw)

	if err := bw.Close(); err != nil {
		return errors.Wrap(err, "neuralink: flush bit stream")
	}
	return nil
}

// Decode reads a packed bit stream from r, arithmetic-decodes symbols
// against a fresh Model until the stop symbol is reached, and writes the
// reconstructed little-endian 16-bit samples to w.
func Decode(w io.Writer, r io.Reader) error {
	model := NewModel()
	dec := NewDecoder[*Model](model)
	br := bitio.NewReader(r)

	dec.Init(br)
	var sampleBuf [2]byte
	for {
		symbol := dec.Decode(br)
		model.UpdateState(symbol)

		if symbol == StopSymbol {
			return nil
		}

		sample := DecodeSample(symbol)
		binary.LittleEndian.PutUint16(sampleBuf[:], uint16(sample))
		if _, err := w.Write(sampleBuf[:]); err != nil {
			return errors.Wrap(err, "neuralink: write sample")
		}
	}
}
