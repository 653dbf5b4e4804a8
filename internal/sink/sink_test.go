package sink

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
)

func paletteFrame(w, h int, fill uint8) *image.Paletted {
	pal := color.Palette{color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}}
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal)
	for i := range img.Pix {
		img.Pix[i] = fill % 2
	}
	return img
}

func TestForPath(t *testing.T) {
	t.Parallel()
	if s, err := ForPath("out.gif", 30); err != nil || s == nil {
		t.Errorf("ForPath(out.gif) = (%v, %v)", s, err)
	}
	if _, err := ForPath("out.mp4", 30); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestGIF_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	g := NewGIF(path, 30)

	for i := 0; i < 3; i++ {
		if err := g.WriteFrame(i, paletteFrame(8, 8, uint8(i))); err != nil {
			t.Fatalf("WriteFrame(%d): %v", i, err)
		}
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(decoded.Image) != 3 {
		t.Errorf("decoded %d frames, expected 3", len(decoded.Image))
	}
	if decoded.Delay[0] != 100/30 {
		t.Errorf("frame delay = %d, expected %d", decoded.Delay[0], 100/30)
	}
}

func TestGIF_OutOfOrder(t *testing.T) {
	g := NewGIF(filepath.Join(t.TempDir(), "out.gif"), 30)
	if err := g.WriteFrame(1, paletteFrame(4, 4, 0)); !errors.Is(err, ErrOutOfOrder) {
		t.Errorf("expected ErrOutOfOrder, got %v", err)
	}
}

func TestGIF_DiscardWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	g := NewGIF(path, 30)
	if err := g.WriteFrame(0, paletteFrame(4, 4, 0)); err != nil {
		t.Fatal(err)
	}
	if err := g.Discard(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("discarded GIF left output on disk")
	}
}

func TestPNGSequence_CommitOnClose(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := NewPNGSequence(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := s.WriteFrame(i, paletteFrame(8, 8, uint8(i))); err != nil {
			t.Fatalf("WriteFrame(%d): %v", i, err)
		}
	}

	// Nothing visible at the final path until Close.
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("final directory exists before Close")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading committed dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("committed %d files, expected 2", len(entries))
	}
	if entries[0].Name() != "frame-00000.png" {
		t.Errorf("unexpected frame name %q", entries[0].Name())
	}
}

func TestPNGSequence_DiscardRemovesStage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := NewPNGSequence(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFrame(0, paletteFrame(8, 8, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.Discard(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir + ".partial"); !os.IsNotExist(err) {
		t.Error("stage directory survived Discard")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("final directory created by a discarded run")
	}
}
