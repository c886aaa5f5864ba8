package bitio

import (
	"bytes"
	"testing"
)

func TestWriterPacksMSBFirst(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	// 1010_1100 written MSB first.
	for _, bit := range []byte{1, 0, 1, 0, 1, 1, 0, 0} {
		w.PutBit(bit)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got, want := buf.Bytes(), []byte{0xAC}; !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriterPadsFinalByte(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, bit := range []byte{1, 1, 0} {
		w.PutBit(bit)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// 110 padded with zeros in the low bits: 1100_0000.
	if got, want := buf.Bytes(), []byte{0xC0}; !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestReaderMatchesWriter(t *testing.T) {
	bits := []byte{1, 0, 0, 1, 1, 1, 0, 1, 0, 0, 1, 0, 1}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, b := range bits {
		w.PutBit(b)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := NewReader(&buf)
	for i, want := range bits {
		if got := r.GetBit(); got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
}

func TestReaderPastEndPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected GetBit to panic when the stream is exhausted")
		}
	}()
	r := NewReader(bytes.NewReader(nil))
	r.GetBit()
}
