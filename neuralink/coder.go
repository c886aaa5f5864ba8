package neuralink

import "github.com/sitmo/NeuroMasterBlaster/internal/bitio"

// Coder register constants (§3, §4.3-4.4). The code register is 17 bits
// wide; MaxCode, quarter, half and three-quarter marks drive the E1/E2/E3
// renormalization rules.
const (
	MaxCode = 0x1FFFF // 17 ones
	int25   = 0x08000 // one quarter of the code space
	int50   = 0x10000 // one half
	int75   = 0x18000 // three quarters
)

// SymbolModel is the abstraction the arithmetic coder is driven through.
// A single production Model exists (model.go); UniformModel is a trivial
// stand-in used to exercise the coder in isolation. Encoder and Decoder
// are generic over any implementation.
type SymbolModel interface {
	// SymbolInterval returns the [low, high) cumulative frequency
	// interval of a symbol under the current active distribution.
	SymbolInterval(symbol uint16) (low, high uint32)

	// FrequencySymbol returns the unique symbol whose interval contains
	// freq, along with that interval.
	FrequencySymbol(freq uint32) (symbol uint16, low, high uint32)

	// UpdateState folds an observed symbol into the model.
	UpdateState(symbol uint16)

	// MaxFrequency is the total mass of the active distribution's table.
	MaxFrequency() uint32

	// NumSymbols is the size of the alphabet the model codes.
	NumSymbols() int
}

// Encoder is a bit-exact fixed-point arithmetic encoder driven by a
// SymbolModel. Zero value is not usable; use NewEncoder.
type Encoder[M SymbolModel] struct {
	Model M

	low, high    uint32
	pendingBits  uint64
}

// NewEncoder returns an encoder in its initial state (low = 0,
// high = MaxCode, no pending bits) wrapping model.
func NewEncoder[M SymbolModel](model M) *Encoder[M] {
	return &Encoder[M]{Model: model, low: 0, high: MaxCode}
}

// Encode narrows the coder's [low, high] interval to the sub-interval
// owned by symbol under the current model state and writes any bits that
// can now be emitted unambiguously to w.
func (e *Encoder[M]) Encode(symbol uint16, w *bitio.Writer) {
	sl, sh := e.Model.SymbolInterval(symbol)
	e.narrow(sl, sh, e.Model.MaxFrequency())

	for {
		switch {
		case e.high < int50:
			e.writeBit(0, w)
		case e.low >= int50:
			e.writeBit(1, w)
		case e.low >= int25 && e.high < int75:
			e.pendingBits++
			e.low -= int25
			e.high -= int25
		default:
			return
		}
		e.low = (e.low << 1) & MaxCode
		e.high = ((e.high << 1) | 1) & MaxCode
	}
}

// narrow performs the range update common to encode and decode:
// range = high - low + 1; the sub-interval [sl, sh) of [0, total) is
// mapped onto the current [low, high]. The intermediate product needs at
// least 33 bits, hence the uint64 arithmetic.
func (e *Encoder[M]) narrow(sl, sh, total uint32) {
	rng := uint64(e.high) - uint64(e.low) + 1
	e.high = uint32(uint64(e.low) + rng*uint64(sh)/uint64(total) - 1)
	e.low = uint32(uint64(e.low) + rng*uint64(sl)/uint64(total))
}

func (e *Encoder[M]) writeBit(bit byte, w *bitio.Writer) {
	w.PutBit(bit)
	for i := uint64(0); i < e.pendingBits; i++ {
		w.PutBit(bit ^ 1)
	}
	e.pendingBits = 0
}

// Flush emits the final bits needed to disambiguate the coder's current
// interval. This is the last act of the arithmetic layer; the caller is
// responsible for padding/flushing the underlying bit sink.
func (e *Encoder[M]) Flush(w *bitio.Writer) {
	e.pendingBits++
	if e.low < int25 {
		e.writeBit(0, w)
	} else {
		e.writeBit(1, w)
	}
}

// Decoder is the mirror of Encoder: it consumes bits from a bit source
// and, driven by the same SymbolModel sequence, reproduces the symbol
// stream the encoder was given.
type Decoder[M SymbolModel] struct {
	Model M

	low, high, value uint32
}

// NewDecoder returns a decoder in its initial state. Call Init before
// the first Decode.
func NewDecoder[M SymbolModel](model M) *Decoder[M] {
	return &Decoder[M]{Model: model, low: 0, high: MaxCode}
}

// Init reads the first 17 bits of the stream MSB-first into the code
// register.
func (d *Decoder[M]) Init(r *bitio.Reader) {
	d.value = 0
	for i := 0; i < 17; i++ {
		b := r.GetBit()
		d.value = (d.value << 1) | uint32(b)
	}
}

// Decode locates the symbol whose interval contains the current code
// register, narrows the coder state to that interval, renormalizes by
// consuming bits from r, and returns the symbol. The caller must invoke
// the model's UpdateState and detect the stop symbol.
func (d *Decoder[M]) Decode(r *bitio.Reader) uint16 {
	total := d.Model.MaxFrequency()
	rng := uint64(d.high) - uint64(d.low) + 1
	f := uint32(((uint64(d.value)-uint64(d.low)+1)*uint64(total) - 1) / rng)

	symbol, sl, sh := d.Model.FrequencySymbol(f)
	d.narrow(sl, sh, total)

	for {
		switch {
		case d.high < int50:
			// lower half already resolved, nothing to subtract
		case d.low >= int50:
			d.low -= int50
			d.high -= int50
			d.value -= int50
		case d.low >= int25 && d.high < int75:
			d.low -= int25
			d.high -= int25
			d.value -= int25
		default:
			return symbol
		}
		d.low <<= 1
		d.high = (d.high << 1) | 1
		b := r.GetBit()
		d.value = (d.value << 1) | uint32(b)
	}
}

func (d *Decoder[M]) narrow(sl, sh, total uint32) {
	rng := uint64(d.high) - uint64(d.low) + 1
	d.high = uint32(uint64(d.low) + rng*uint64(sh)/uint64(total) - 1)
	d.low = uint32(uint64(d.low) + rng*uint64(sl)/uint64(total))
}
