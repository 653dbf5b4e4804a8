package sink

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSequence writes numbered PNG files into a staging directory and renames
// it to the final directory on Close.
type PNGSequence struct {
	finalDir string
	stageDir string
	next     int
}

var _ Sink = (*PNGSequence)(nil)

// NewPNGSequence prepares a staging directory next to dir.
func NewPNGSequence(dir string) (*PNGSequence, error) {
	stage := dir + ".partial"
	if err := os.RemoveAll(stage); err != nil {
		return nil, fmt.Errorf("sink: clearing stage dir: %w", err)
	}
	if err := os.MkdirAll(stage, 0755); err != nil {
		return nil, fmt.Errorf("sink: creating stage dir: %w", err)
	}
	return &PNGSequence{finalDir: dir, stageDir: stage}, nil
}

func (s *PNGSequence) WriteFrame(index int, img *image.Paletted) error {
	if index != s.next {
		return fmt.Errorf("%w: got %d, expected %d", ErrOutOfOrder, index, s.next)
	}
	path := filepath.Join(s.stageDir, fmt.Sprintf("frame-%05d.png", index))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("sink: encoding frame %d: %w", index, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	s.next++
	return nil
}

func (s *PNGSequence) Close() error {
	if err := os.RemoveAll(s.finalDir); err != nil {
		return fmt.Errorf("sink: replacing output dir: %w", err)
	}
	if err := os.Rename(s.stageDir, s.finalDir); err != nil {
		return fmt.Errorf("sink: committing output dir: %w", err)
	}
	return nil
}

func (s *PNGSequence) Discard() error {
	return os.RemoveAll(s.stageDir)
}
