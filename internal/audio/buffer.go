package audio

import "io"

// BufferSource is an in-memory Source backed by a sample slice. It backs the
// pipeline tests and any caller that already holds decoded PCM.
type BufferSource struct {
	samples    []float64
	sampleRate int
	channels   int
	pos        int
}

var _ Source = (*BufferSource)(nil)

// NewBufferSource wraps interleaved samples with the given stream parameters.
func NewBufferSource(samples []float64, sampleRate, channels int) *BufferSource {
	return &BufferSource{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func (b *BufferSource) SampleRate() int { return b.sampleRate }
func (b *BufferSource) Channels() int   { return b.channels }
func (b *BufferSource) Close() error    { return nil }

// Rewind resets the read position so the stream can be consumed again.
func (b *BufferSource) Rewind() { b.pos = 0 }

func (b *BufferSource) ReadSamples(dst []float64) (int, error) {
	if b.pos >= len(b.samples) {
		return 0, io.EOF
	}
	n := copy(dst, b.samples[b.pos:])
	b.pos += n
	return n, nil
}
