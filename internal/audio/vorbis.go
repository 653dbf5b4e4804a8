package audio

import (
	"os"

	"github.com/jfreymuth/oggvorbis"
)

type vorbisSource struct {
	f   *os.File
	dec *oggvorbis.Reader
	buf []float32
}

func newVorbisSource(f *os.File) (Source, error) {
	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, err
	}
	return &vorbisSource{
		f:   f,
		dec: dec,
		buf: make([]float32, 4096),
	}, nil
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.dec.Channels() }
func (s *vorbisSource) Close() error    { return s.f.Close() }

func (s *vorbisSource) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(s.buf) < len(dst) {
		s.buf = make([]float32, len(dst))
	}
	s.buf = s.buf[:len(dst)]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		return 0, err
	}
	for i := 0; i < n; i++ {
		dst[i] = float64(s.buf[i])
	}
	return n, err
}
