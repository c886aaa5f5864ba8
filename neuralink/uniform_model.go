package neuralink

// UniformModel is a stateless SymbolModel that assigns every symbol an
// equal share of the frequency space. It exists to exercise the
// arithmetic coder (coder.go) independently of the statistical model, in
// the spirit of FastAC-go's StaticDataModel: a fixed table built once at
// construction and never updated.
type UniformModel struct {
	table []uint32
}

// NewUniformModel builds a flat distribution over n symbols. n must be at
// least 2 and at most MaxFrequency, so every symbol owns a nonempty
// interval.
func NewUniformModel(n int) *UniformModel {
	if n < 2 || n > MaxFrequency {
		panic("neuralink: invalid uniform model alphabet size")
	}
	table := make([]uint32, n+1)
	for i := 0; i <= n; i++ {
		table[i] = uint32(uint64(i) * MaxFrequency / uint64(n))
	}
	table[0] = 0
	table[n] = MaxFrequency
	return &UniformModel{table: table}
}

// NumSymbols implements SymbolModel.
func (u *UniformModel) NumSymbols() int { return len(u.table) - 1 }

// MaxFrequency implements SymbolModel.
func (u *UniformModel) MaxFrequency() uint32 { return MaxFrequency }

// SymbolInterval implements SymbolModel.
func (u *UniformModel) SymbolInterval(symbol uint16) (low, high uint32) {
	return u.table[symbol], u.table[symbol+1]
}

// FrequencySymbol implements SymbolModel.
func (u *UniformModel) FrequencySymbol(freq uint32) (symbol uint16, low, high uint32) {
	lo, hi := 0, len(u.table)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if u.table[mid] > freq {
			hi = mid
		} else {
			lo = mid
		}
	}
	return uint16(lo), u.table[lo], u.table[lo+1]
}

// UpdateState implements SymbolModel; the uniform model never adapts.
func (u *UniformModel) UpdateState(symbol uint16) {}
