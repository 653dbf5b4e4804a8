package analysis

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBandCount indicates a band count the bin range cannot support.
var ErrInvalidBandCount = errors.New("invalid band count")

// BandMap partitions magnitude bins into logarithmically spaced frequency
// bands. Boundaries are computed once at construction from the FFT geometry,
// never re-derived per frame. A BandMap is immutable and safe to share
// across workers.
type BandMap struct {
	count      int
	fftSize    int
	sampleRate int
	edges      []int // len count+1; band b covers bins [edges[b], edges[b+1])
}

// NewBandMap builds the band boundaries for the given band count and FFT
// geometry. Bin 0 (DC) is excluded; the top band ends at Nyquist.
func NewBandMap(count, fftSize, sampleRate int) (*BandMap, error) {
	maxBin := fftSize / 2
	if count < 2 || count > maxBin {
		return nil, fmt.Errorf("%w: %d bands for %d usable bins", ErrInvalidBandCount, count, maxBin)
	}

	// Logarithmic split: edge b sits at maxBin^(b/count), so low bands get
	// few bins and high bands get many, approximating perceptual spacing.
	edges := make([]int, count+1)
	for b := 0; b <= count; b++ {
		edge := int(math.Pow(float64(maxBin), float64(b)/float64(count)))
		if edge < 1 {
			edge = 1
		}
		if b > 0 && edge <= edges[b-1] {
			edge = edges[b-1] + 1
		}
		if edge > maxBin+1 {
			edge = maxBin + 1
		}
		edges[b] = edge
	}
	edges[count] = maxBin + 1 // top band always reaches Nyquist inclusive

	return &BandMap{
		count:      count,
		fftSize:    fftSize,
		sampleRate: sampleRate,
		edges:      edges,
	}, nil
}

// Count returns the number of bands.
func (m *BandMap) Count() int { return m.count }

// BandFor returns the band index covering the given frequency, clamped to
// the valid range.
func (m *BandMap) BandFor(hz float64) int {
	bin := int(hz * float64(m.fftSize) / float64(m.sampleRate))
	for b := 0; b < m.count; b++ {
		if bin < m.edges[b+1] {
			return b
		}
	}
	return m.count - 1
}

// Energies aggregates a magnitude spectrum into per-band RMS energies,
// writing into dst (allocated when nil). Accumulation order is fixed by bin
// index, so results are bit-stable across runs and thread assignments.
func (m *BandMap) Energies(magnitudes []float64, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, m.count)
	}
	for b := 0; b < m.count; b++ {
		lo, hi := m.edges[b], m.edges[b+1]
		if hi > len(magnitudes) {
			hi = len(magnitudes)
		}
		sum := 0.0
		for i := lo; i < hi; i++ {
			sum += magnitudes[i] * magnitudes[i]
		}
		n := hi - lo
		if n > 0 {
			dst[b] = math.Sqrt(sum / float64(n))
		} else {
			dst[b] = 0
		}
	}
	return dst
}
