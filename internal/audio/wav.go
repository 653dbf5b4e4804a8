package audio

import (
	"errors"
	"io"
	"os"

	gowav "github.com/go-audio/wav"

	goaudio "github.com/go-audio/audio"
)

type wavSource struct {
	f     *os.File
	dec   *gowav.Decoder
	buf   *goaudio.IntBuffer
	scale float64
}

func newWavSource(f *os.File) (Source, error) {
	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.New("not a valid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, err
	}
	return &wavSource{
		f:   f,
		dec: dec,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: int(dec.NumChans),
				SampleRate:  int(dec.SampleRate),
			},
			Data: make([]int, 4096),
		},
		scale: 1.0 / float64(int(1)<<(dec.BitDepth-1)),
	}, nil
}

func (s *wavSource) SampleRate() int { return int(s.dec.SampleRate) }
func (s *wavSource) Channels() int   { return int(s.dec.NumChans) }
func (s *wavSource) Close() error    { return s.f.Close() }

func (s *wavSource) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		dst[i] = float64(s.buf.Data[i]) * s.scale
	}
	return n, nil
}
