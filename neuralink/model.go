package neuralink

import (
	"math"
	"sort"
	"sync"
)

// numDist is the number of precomputed conditional distributions in the
// bank, selected by the running volatility estimate.
const numDist = 4

// Distribution tuning constants, matched to stdLevels. See §4.2.1: these
// parameterize a blended CDF (mostly-Gaussian, plus a small uniform floor
// w and a small step z at the mean) used to build each table.
var (
	stdLevels = [numDist]float64{16, 18, 20, 22}
	cdfScale  = [numDist]float64{5.145, 6.035, 8.547, 20.05}
	cdfW      = [numDist]float64{2.5e-4, 2.5e-4, 2.5e-4, 2.5e-4}
	cdfZ      = [numDist]float64{106.3, 82.84, 62.87, 61.86}
)

// Model tuning constants for the online mean/volatility recurrence
// (§4.2.3). ltv is the long-term variance target; omega is derived from
// it so the GARCH(1,1) recurrence has the stated unconditional variance.
const (
	loc          = 511.0
	ma           = 0.20  // mean smoothing factor
	alpha        = 0.725 // GARCH decay on prior variance
	beta         = 0.175 // GARCH decay on latest squared deviation
	ltv          = 7.5   // long-term variance target
	omega        = ltv * (1 - alpha - beta)
	outlierLevel = 8.4  // outlier gate, in units of stdev
	mrr          = 0.05 // mean-reversion rate used by the symbol shift
)

func normalCDF(x, loc, scale float64) float64 {
	return 0.5 * (1.0 + math.Erf((x-loc)/scale/math.Sqrt2))
}

// blendedCDF is the mixture used to build the conditional cumulative
// frequency tables: mostly a Gaussian around loc, plus a uniform floor w
// and an additional step z placed exactly at loc.
func blendedCDF(x, loc, scale, w, z float64) float64 {
	p := (1.0-w-z)*normalCDF(x, loc, scale) + w
	if x >= loc {
		p += z
	}
	return p
}

// distributionBank is the [NUM_DIST] set of conditional cumulative
// frequency tables (§4.2.1). It depends on nothing but the compile-time
// tuning constants above, so per §5 ("the model's distribution bank is
// immutable after construction... implementations may share it across
// instances as a read-only artifact") every Model shares one instance,
// built once regardless of how many streams are encoded or decoded
// concurrently.
type distributionBank [numDist][NumSymbols + 1]uint32

var (
	bankOnce sync.Once
	bank     *distributionBank
)

func sharedDistributionBank() *distributionBank {
	bankOnce.Do(func() {
		b := &distributionBank{}
		for i := 0; i < numDist; i++ {
			buildTable(&b[i], i)
		}
		bank = b
	})
	return bank
}

func buildTable(t *[NumSymbols + 1]uint32, i int) {
	scale, w, z := cdfScale[i], cdfW[i], cdfZ[i]/float64(NumSymbols)
	maxP := blendedCDF(NumSymbols, loc, scale, w, z)

	for j := 1; j < NumSymbols; j++ {
		p := blendedCDF(float64(j), loc, scale, w, z)
		t[j] = uint32(math.Floor(p/maxP*(MaxFrequency-NumSymbols))) + uint32(j)
	}
	t[0] = 0
	t[NumSymbols] = MaxFrequency
}

// Model is the production probability model: an online estimate of the
// signal's mean and volatility drives which of four precomputed
// distributions is active, and where it is centered.
type Model struct {
	ccft *distributionBank

	activeDist        int
	activeSymbolShift int32

	mean           float64
	stdev          float64
	outlierCounter uint16
}

// NewModel returns a model in its initial state (mean 511.0, stdev 8.0,
// distribution 0, no shift), sharing the package's precomputed
// distribution bank.
func NewModel() *Model {
	return &Model{
		ccft:  sharedDistributionBank(),
		mean:  511.0,
		stdev: 8.0,
	}
}

// NumSymbols implements SymbolModel.
func (m *Model) NumSymbols() int { return NumSymbols }

// MaxFrequency implements SymbolModel.
func (m *Model) MaxFrequency() uint32 { return MaxFrequency }

func (m *Model) locFor(symbol uint16) uint32 {
	return uint32(euclidMod(int64(symbol)+int64(m.activeSymbolShift), NumSymbols))
}

// euclidMod returns a mod n in [0, n), regardless of the sign of a.
func euclidMod(a, n int64) int64 {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// SymbolInterval implements SymbolModel: returns the [low, high)
// cumulative frequency interval currently assigned to symbol.
func (m *Model) SymbolInterval(symbol uint16) (low, high uint32) {
	loc := m.locFor(symbol)
	t := &m.ccft[m.activeDist]
	return t[loc], t[loc+1]
}

// FrequencySymbol implements SymbolModel: given a scaled frequency,
// locates the unique symbol whose interval contains it, via binary
// search on the strictly increasing active table.
func (m *Model) FrequencySymbol(freq uint32) (symbol uint16, low, high uint32) {
	t := &m.ccft[m.activeDist]
	// sort.Search finds the first index i such that t[i] > freq; that is
	// the exclusive upper bound of the symbol's interval.
	i := sort.Search(NumSymbols+1, func(i int) bool { return t[i] > freq })
	loc := uint32(i - 1)

	s := euclidMod(int64(loc)-int64(m.activeSymbolShift), NumSymbols)
	return uint16(s), t[loc], t[loc+1]
}

// UpdateState implements SymbolModel: folds the observed symbol into the
// running mean/volatility estimate and reselects the active distribution
// and symbol shift, unless the symbol is judged an outlier.
func (m *Model) UpdateState(symbol uint16) {
	ds := float64(symbol) - m.mean

	if math.Abs(ds) > outlierLevel*m.stdev {
		m.outlierCounter++
	} else {
		m.outlierCounter = 0
	}
	if m.outlierCounter > 3 {
		m.outlierCounter = 0
	}

	if m.outlierCounter != 0 {
		return
	}

	m.mean = ma*m.mean + (1-ma)*float64(symbol)
	m.stdev = math.Sqrt(omega + alpha*m.stdev*m.stdev + beta*ds*ds)

	m.activeDist = lowerBoundIndex(stdLevels[:], m.stdev)
	if m.activeDist > numDist-1 {
		m.activeDist = numDist - 1
	}

	m.activeSymbolShift = 511 - int32(trunc(m.mean+(float64(symbol)-m.mean)*mrr))
}

// lowerBoundIndex returns the index of the first entry in a sorted slice
// that is >= v, or len(a) if none is.
func lowerBoundIndex(a []float64, v float64) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= v })
}

// trunc truncates toward zero, matching C++'s static_cast<int> semantics
// used by the reference model for the symbol shift.
func trunc(f float64) float64 {
	return math.Trunc(f)
}
