// Package segment slices a continuous mono sample stream into fixed-length,
// overlapping analysis windows aligned to the output frame rate.
package segment

import (
	"errors"
	"fmt"
)

// ErrBadGeometry indicates an unusable window size or hop.
var ErrBadGeometry = errors.New("invalid segmenter geometry")

// Window is a fixed-length slice of mono samples. One window maps to exactly
// one output frame. Samples is owned by the consumer once returned.
type Window struct {
	Index   int       // Monotonic window index, equals the output frame index.
	Start   int       // Absolute sample offset of the first sample.
	Samples []float64 // Always windowSize long; zero-padded at end of stream.
}

// Hop returns the sample advance between consecutive windows for the given
// stream rate and output frame rate, rounded to the nearest sample.
func Hop(sampleRate, fps int) int {
	h := (sampleRate + fps/2) / fps
	if h < 1 {
		h = 1
	}
	return h
}

// WindowCount returns the number of windows a stream of totalSamples
// produces: ceil(totalSamples / hop). This matches the expected output frame
// count for the audio duration.
func WindowCount(totalSamples, hop int) int {
	if totalSamples <= 0 {
		return 0
	}
	return (totalSamples + hop - 1) / hop
}

// Segmenter buffers samples across arbitrary decode block boundaries and
// emits windows deterministically: window i always covers samples
// [i*hop, i*hop+windowSize), whatever chunk sizes were pushed.
type Segmenter struct {
	windowSize int
	hop        int

	buf      []float64 // pending samples, buf[0] is absolute index bufStart
	bufStart int
	total    int // total samples pushed
	next     int // next window index to emit
	closed   bool
}

// New creates a Segmenter for the given window size and hop.
func New(windowSize, hop int) (*Segmenter, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("%w: window size %d", ErrBadGeometry, windowSize)
	}
	if hop < 1 {
		return nil, fmt.Errorf("%w: hop %d", ErrBadGeometry, hop)
	}
	return &Segmenter{windowSize: windowSize, hop: hop}, nil
}

// Push appends a decoded sample block to the pending buffer.
func (s *Segmenter) Push(samples []float64) {
	s.buf = append(s.buf, samples...)
	s.total += len(samples)
}

// Close marks end-of-stream. Remaining partial windows become available from
// Next, zero-padded to the full window size.
func (s *Segmenter) Close() {
	s.closed = true
}

// Total returns the number of samples pushed so far.
func (s *Segmenter) Total() int {
	return s.total
}

// Next returns the next window if enough samples are buffered, or a
// zero-padded tail window after Close. The second result is false when no
// window is currently available.
func (s *Segmenter) Next() (Window, bool) {
	start := s.next * s.hop
	if start >= s.total {
		return Window{}, false
	}
	if !s.closed && start+s.windowSize > s.total {
		// Tail not yet complete; more samples may still arrive.
		return Window{}, false
	}

	s.compact(start)

	w := Window{
		Index:   s.next,
		Start:   start,
		Samples: make([]float64, s.windowSize),
	}
	off := start - s.bufStart
	n := copy(w.Samples, s.buf[off:])
	_ = n // shorter-than-window tails stay zero-padded

	s.next++
	return w, true
}

// compact drops buffered samples no window at or after index s.next can
// reference, keeping memory bounded for long inputs.
func (s *Segmenter) compact(start int) {
	if start <= s.bufStart {
		return
	}
	drop := start - s.bufStart
	s.buf = s.buf[:copy(s.buf, s.buf[drop:])]
	s.bufStart = start
}
