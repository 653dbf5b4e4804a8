package audio

import (
	"fmt"
	"io"
)

// MixMode selects how a multi-channel stream is reduced to mono.
type MixMode int

const (
	// MixAverage averages all channels per frame.
	MixAverage MixMode = iota
	// MixFirst selects channel 0 and discards the rest.
	MixFirst
)

// ParseMixMode converts a configuration string to a MixMode.
func ParseMixMode(name string) (MixMode, error) {
	switch name {
	case "average":
		return MixAverage, nil
	case "first":
		return MixFirst, nil
	default:
		return MixAverage, fmt.Errorf("unknown mono mix mode: %q", name)
	}
}

// MonoMixer reduces an interleaved Source to a mono sample stream. Mono
// sources pass through untouched.
type MonoMixer struct {
	src  Source
	mode MixMode
	tmp  []float64
}

// NewMonoMixer wraps src with the given channel reduction mode.
func NewMonoMixer(src Source, mode MixMode) *MonoMixer {
	return &MonoMixer{
		src:  src,
		mode: mode,
		tmp:  make([]float64, 4096),
	}
}

// SampleRate of the underlying stream in Hz.
func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }

// ReadMono fills dst with mono samples and returns the number of frames
// written. io.EOF with n == 0 ends the stream.
func (m *MonoMixer) ReadMono(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	samplesNeeded := len(dst) * channels
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float64, samplesNeeded)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	frames := n / channels

	switch m.mode {
	case MixFirst:
		for f := 0; f < frames; f++ {
			dst[f] = m.tmp[f*channels]
		}
	default:
		inv := 1.0 / float64(channels)
		for f := 0; f < frames; f++ {
			sum := 0.0
			base := f * channels
			for c := 0; c < channels; c++ {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}

	return frames, nil
}
