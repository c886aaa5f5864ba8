// Package wav handles the opaque 44-byte WAV header this codec passes
// through verbatim, validating only the two fields the codec depends on.
package wav

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// HeaderSize is the fixed size of the WAV header this codec treats as
// opaque bytes.
const HeaderSize = 44

// Header is the raw 44-byte WAV header, kept byte-for-byte.
type Header [HeaderSize]byte

// ReadHeader reads a 44-byte header from r. It does not validate the
// header; call Validate separately, matching the original's two-stage
// check (read fully, then inspect fields).
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return h, errors.Wrap(err, "wav: read header")
	}
	return h, nil
}

// WriteHeader writes h verbatim to w.
func WriteHeader(w io.Writer, h Header) error {
	if _, err := w.Write(h[:]); err != nil {
		return errors.Wrap(err, "wav: write header")
	}
	return nil
}

// Validate asserts the fields this codec cares about: single channel,
// 16 bits per sample. Every other header field is left uninspected.
func (h Header) Validate() error {
	numChannels := binary.LittleEndian.Uint16(h[22:24])
	bitsPerSample := binary.LittleEndian.Uint16(h[34:36])

	if numChannels != 1 {
		return errors.Errorf("wav: unsupported format: numChannels=%d, want 1 (mono)", numChannels)
	}
	if bitsPerSample != 16 {
		return errors.Errorf("wav: unsupported format: bitsPerSample=%d, want 16", bitsPerSample)
	}
	return nil
}
