package sink

import (
	"fmt"
	"image"
	"image/gif"
	"os"
)

// GIF accumulates paletted frames in memory and encodes a single animated
// GIF on Close. Nothing touches the output path before Close.
type GIF struct {
	path  string
	delay int // per-frame delay in 100ths of a second
	anim  gif.GIF
	next  int
}

var _ Sink = (*GIF)(nil)

// NewGIF creates a GIF sink writing to path with the given frame rate.
func NewGIF(path string, fps int) *GIF {
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	return &GIF{path: path, delay: delay}
}

func (g *GIF) WriteFrame(index int, img *image.Paletted) error {
	if index != g.next {
		return fmt.Errorf("%w: got %d, expected %d", ErrOutOfOrder, index, g.next)
	}
	g.anim.Image = append(g.anim.Image, img)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	g.next++
	return nil
}

func (g *GIF) Close() error {
	f, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	if err := gif.EncodeAll(f, &g.anim); err != nil {
		f.Close()
		os.Remove(g.path)
		return fmt.Errorf("sink: encoding gif: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	return nil
}

func (g *GIF) Discard() error {
	g.anim.Image = nil
	g.anim.Delay = nil
	return nil
}
