// Package analysis performs windowed spectral analysis of mono sample
// windows and aggregates the resulting magnitude spectra into perceptual
// frequency bands.
package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/joefrost01/retro-compositor/pkg/bitint"
)

// ErrInvalidWindowSize indicates an FFT-incompatible window size. Window
// sizes are validated at configuration time, so hitting this mid-pipeline is
// an internal invariant violation.
var ErrInvalidWindowSize = errors.New("window size must be a power of 2")

// WindowFunc defines the type for selecting an FFT window function.
type WindowFunc int

// Enum for available window functions.
const (
	Hann WindowFunc = iota
	Hamming
	Blackman
	BlackmanNuttall
	Nuttall
	Lanczos
)

// Analyzer performs forward real FFTs over fixed-length sample windows and
// produces amplitude-normalized magnitude spectra. It owns pre-allocated
// workspace buffers and is NOT safe for concurrent use: create one Analyzer
// per worker.
type Analyzer struct {
	size   int
	fft    *fourier.FFT
	window []float64
	input  []float64
	coeffs []complex128
	norm   float64 // 2/size keeps magnitudes amplitude-consistent across sizes
}

// NewAnalyzer creates an Analyzer for the given FFT size and window function.
func NewAnalyzer(size int, windowType WindowFunc) (*Analyzer, error) {
	if !bitint.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowSize, size)
	}

	coeffs := make([]float64, size)
	applyWindow(coeffs, windowType)

	return &Analyzer{
		size:   size,
		fft:    fourier.NewFFT(size),
		window: coeffs,
		input:  make([]float64, size),
		coeffs: make([]complex128, size/2+1),
		norm:   2.0 / float64(size),
	}, nil
}

// Size returns the FFT window size in samples.
func (a *Analyzer) Size() int { return a.size }

// BinCount returns the number of spectrum bins (size/2 + 1). Bin 0 is DC,
// the last bin is Nyquist.
func (a *Analyzer) BinCount() int { return a.size/2 + 1 }

// BinFrequency returns the center frequency in Hz of bin i for the given
// sample rate.
func (a *Analyzer) BinFrequency(i, sampleRate int) float64 {
	if i < 0 || i > a.size/2 {
		return 0
	}
	return float64(i) * float64(sampleRate) / float64(a.size)
}

// Magnitudes applies the window function and forward FFT to samples and
// writes the normalized magnitude spectrum into dst (allocated when nil).
// len(samples) must equal the analyzer size; shorter inputs are zero-padded.
// Output is bit-stable for identical input regardless of which worker runs
// the call.
func (a *Analyzer) Magnitudes(samples []float64, dst []float64) []float64 {
	inputLen := len(samples)
	for i := 0; i < a.size; i++ {
		if i < inputLen {
			a.input[i] = samples[i] * a.window[i]
		} else {
			a.input[i] = 0
		}
	}

	a.fft.Coefficients(a.coeffs, a.input)

	if dst == nil {
		dst = make([]float64, len(a.coeffs))
	}
	for i, c := range a.coeffs {
		dst[i] = cmplx.Abs(c) * a.norm
	}
	return dst
}

// ParseWindowFunc converts a string name (case-insensitive) to a WindowFunc,
// returning Hann and an error if the name is unknown.
func ParseWindowFunc(name string) (WindowFunc, error) {
	switch strings.ToLower(name) {
	case "hann", "hanning":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "blackman":
		return Blackman, nil
	case "blackmannuttall":
		return BlackmanNuttall, nil
	case "nuttall":
		return Nuttall, nil
	case "lanczos":
		return Lanczos, nil
	default:
		return Hann, fmt.Errorf("unknown FFT window function name: %q", name)
	}
}

// applyWindow fills coeffs with the coefficients of the selected window
// function. Unknown types fall back to Hann.
func applyWindow(coeffs []float64, windowType WindowFunc) {
	// Window funcs multiply in place, so seed with unity gain first.
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	switch windowType {
	case Hamming:
		window.Hamming(coeffs)
	case Blackman:
		window.Blackman(coeffs)
	case BlackmanNuttall:
		window.BlackmanNuttall(coeffs)
	case Nuttall:
		window.Nuttall(coeffs)
	case Lanczos:
		window.Lanczos(coeffs)
	default:
		window.Hann(coeffs)
	}
}
