// Package bitio implements the byte-oriented bit stream the arithmetic
// coder is specified against: MSB-first packing of individual bits into
// bytes, backed by an io.Writer/io.Reader.
package bitio

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Writer packs bits MSB-first into bytes and writes them to an
// underlying io.Writer. The final partial byte is zero-padded on Close.
type Writer struct {
	w   *bufio.Writer
	buf byte
	n   int // number of bits currently held in buf, 0..7
}

// NewWriter wraps w in a bit-level writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// PutBit appends one bit (0 or nonzero, taken as 1) to the stream.
func (w *Writer) PutBit(bit byte) {
	if bit != 0 {
		bit = 1
	}
	w.buf = (w.buf << 1) | bit
	w.n++
	if w.n == 8 {
		w.w.WriteByte(w.buf)
		w.buf, w.n = 0, 0
	}
}

// Close pads any partial byte with zero bits in its low positions,
// flushes it, and flushes the underlying writer. Scoped acquisition of a
// Writer must call Close on every exit path so a partial byte is never
// silently dropped.
func (w *Writer) Close() error {
	if w.n > 0 {
		w.buf <<= uint(8 - w.n)
		if err := w.w.WriteByte(w.buf); err != nil {
			return errors.Wrap(err, "bitio: flush final byte")
		}
		w.buf, w.n = 0, 0
	}
	if err := w.w.Flush(); err != nil {
		return errors.Wrap(err, "bitio: flush writer")
	}
	return nil
}

// Reader reads individual bits MSB-first from an underlying io.Reader.
type Reader struct {
	r   *bufio.Reader
	buf byte
	n   int // number of unread bits remaining in buf, 0..8
}

// NewReader wraps r in a bit-level reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// GetBit reads and returns the next bit. Reading past the end of a
// well-formed stream during decode is a programmer error (§7): the
// caller is expected to know exactly how many bits remain, so GetBit
// panics on exhaustion rather than returning an ok flag.
func (r *Reader) GetBit() byte {
	if r.n == 0 {
		b, err := r.r.ReadByte()
		if err != nil {
			panic(errors.Wrap(err, "bitio: read past end of stream"))
		}
		r.buf = b
		r.n = 8
	}
	r.n--
	return (r.buf >> uint(r.n)) & 1
}
