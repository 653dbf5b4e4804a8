// Package sink packages finished frames into on-disk artifacts. Sinks are
// transactional: frames accumulate against a pending location and only
// become visible on Close, so a failed run never leaves truncated output.
package sink

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// ErrOutOfOrder indicates a frame arrived out of sequence. The orchestrator
// reorders frames before writing, so this is an internal invariant check.
var ErrOutOfOrder = errors.New("frame written out of order")

// Sink accepts finished frames in strictly increasing index order.
type Sink interface {
	// WriteFrame accepts one frame. Callers must pass indices 0, 1, 2, ...
	WriteFrame(index int, img *image.Paletted) error
	// Close commits the accumulated artifact.
	Close() error
	// Discard abandons any partial output without committing it.
	Discard() error
}

// ForPath selects a sink implementation from the output path: a .gif
// extension selects the animated GIF encoder, anything else is treated as a
// directory receiving a numbered PNG sequence.
func ForPath(path string, fps int) (Sink, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return NewGIF(path, fps), nil
	case "":
		return NewPNGSequence(path)
	default:
		return nil, fmt.Errorf("unsupported output %q: use a .gif file or a directory", path)
	}
}
