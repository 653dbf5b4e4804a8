// Package audio wraps the external codec decoders behind a single Source
// interface producing interleaved float64 PCM in [-1, 1].
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates the file extension maps to no known codec.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrDecodeFailed indicates a corrupt or unreadable container. Decode
	// errors are deterministic for a given input and are never retried.
	ErrDecodeFailed = errors.New("audio decode failed")
)

// Source is a finite stream of interleaved PCM samples with a fixed sample
// rate and channel count for its lifetime. Sample positions advance
// monotonically; a source is exhausted when ReadSamples returns io.EOF.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo, ...).
	Channels() int
	// ReadSamples fills dst with interleaved samples in [-1, 1] and returns
	// the number of values written. io.EOF with n == 0 ends the stream.
	ReadSamples(dst []float64) (n int, err error)
	// Close releases decoder state and the underlying file.
	Close() error
}

// Open opens the audio file at path and returns a Source for its PCM
// content. The codec is selected by file extension: .wav, .mp3 and .ogg are
// supported. Sample rate and channel count are read from the container, never
// assumed.
func Open(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var open func(*os.File) (Source, error)
	switch ext {
	case ".wav", ".wave":
		open = newWavSource
	case ".mp3":
		open = newMP3Source
	case ".ogg", ".oga":
		open = newVorbisSource
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	src, err := open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	return src, nil
}
