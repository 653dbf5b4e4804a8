package audio

import (
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

type mp3Source struct {
	f   *os.File
	dec *gomp3.Decoder
	buf []byte
}

func newMP3Source(f *os.File) (Source, error) {
	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	return &mp3Source{
		f:   f,
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }

// go-mp3 always emits 16-bit little-endian stereo.
func (s *mp3Source) Channels() int { return 2 }

func (s *mp3Source) Close() error { return s.f.Close() }

func (s *mp3Source) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8)
		dst[i] = float64(v) / 32768.0
	}
	return samples, nil
}
