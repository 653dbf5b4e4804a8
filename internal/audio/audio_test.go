package audio

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	gowav "github.com/go-audio/wav"

	goaudio "github.com/go-audio/audio"
)

// writeTestWav encodes a 16-bit PCM WAV with the given mono samples and
// returns its path.
func writeTestWav(t *testing.T, samples []float64, sampleRate, channels int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp wav: %v", err)
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:   make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s * 32767)
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav encoder: %v", err)
	}
	return path
}

func readAll(t *testing.T, src Source) []float64 {
	t.Helper()
	var out []float64
	buf := make([]float64, 1024)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("read samples: %v", err)
		}
		if n == 0 {
			return out
		}
	}
}

func TestOpen_Wav(t *testing.T) {
	samples := make([]float64, 4410)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	path := writeTestWav(t, samples, 44100, 1)

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", path, err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 {
		t.Errorf("sample rate = %d, expected 44100", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("channels = %d, expected 1", src.Channels())
	}

	got := readAll(t, src)
	if len(got) != len(samples) {
		t.Fatalf("read %d samples, expected %d", len(got), len(samples))
	}
	for i := range got {
		if math.Abs(got[i]-samples[i]) > 1.0/32000 {
			t.Fatalf("sample %d = %f, expected %f (16-bit tolerance)", i, got[i], samples[i])
		}
	}
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	t.Parallel()
	_, err := Open("track.flac")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("definitely not RIFF data"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("expected ErrDecodeFailed, got %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Open(filepath.Join("no", "such", "file.wav"))
	if !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("expected ErrDecodeFailed, got %v", err)
	}
}

func TestMonoMixer_Average(t *testing.T) {
	t.Parallel()
	// Stereo frames: L=0.5 R=-0.5 average to 0, L=0.4 R=0.2 average to 0.3.
	src := NewBufferSource([]float64{0.5, -0.5, 0.4, 0.2}, 44100, 2)
	mixer := NewMonoMixer(src, MixAverage)

	dst := make([]float64, 2)
	n, err := mixer.ReadMono(dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("read %d frames, expected 2", n)
	}
	if math.Abs(dst[0]) > 1e-12 || math.Abs(dst[1]-0.3) > 1e-12 {
		t.Errorf("mixed frames = %v, expected [0 0.3]", dst[:n])
	}
}

func TestMonoMixer_First(t *testing.T) {
	t.Parallel()
	src := NewBufferSource([]float64{0.5, -0.5, 0.4, 0.2}, 44100, 2)
	mixer := NewMonoMixer(src, MixFirst)

	dst := make([]float64, 2)
	n, err := mixer.ReadMono(dst)
	if err != nil || n != 2 {
		t.Fatalf("read = (%d, %v), expected (2, nil)", n, err)
	}
	if dst[0] != 0.5 || dst[1] != 0.4 {
		t.Errorf("first-channel frames = %v, expected [0.5 0.4]", dst[:n])
	}
}

func TestMonoMixer_PassThrough(t *testing.T) {
	t.Parallel()
	src := NewBufferSource([]float64{0.1, 0.2, 0.3}, 8000, 1)
	mixer := NewMonoMixer(src, MixAverage)

	dst := make([]float64, 8)
	n, _ := mixer.ReadMono(dst)
	if n != 3 {
		t.Fatalf("read %d frames, expected 3", n)
	}
	if dst[0] != 0.1 || dst[2] != 0.3 {
		t.Errorf("pass-through frames = %v", dst[:n])
	}
}

func TestParseMixMode(t *testing.T) {
	t.Parallel()
	if m, err := ParseMixMode("average"); err != nil || m != MixAverage {
		t.Errorf("ParseMixMode(average) = (%v, %v)", m, err)
	}
	if m, err := ParseMixMode("first"); err != nil || m != MixFirst {
		t.Errorf("ParseMixMode(first) = (%v, %v)", m, err)
	}
	if _, err := ParseMixMode("stereo"); err == nil {
		t.Error("expected error for unknown mix mode")
	}
}
