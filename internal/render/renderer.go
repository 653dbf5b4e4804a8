// Package render turns a per-frame visual parameter set into a finished
// paletted raster frame with retro styling applied.
package render

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/joefrost01/retro-compositor/internal/style"
)

// Frame is one finished raster frame. It is produced by the renderer, passed
// through the pipeline exactly once and handed to the sink; nothing aliases
// its pixel buffer.
type Frame struct {
	Index int // Monotonic frame sequence index.
	Image *image.Paletted
}

// Renderer is a pure VisualParams → Frame transform. All fields are
// read-only after construction, so a single Renderer may be invoked
// concurrently for different frame indices; every call allocates its own
// working buffers and seeds its own PRNG from the frame index.
type Renderer struct {
	width   int
	height  int
	kind    style.Kind
	palette *style.Palette
	dither  style.DitherMode
}

// New creates a Renderer. Palette size failures surface here, before any
// frame work begins.
func New(width, height int, kind style.Kind, paletteSize int, dither style.DitherMode) (*Renderer, error) {
	palette, err := style.NewPalette(paletteSize)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return &Renderer{
		width:   width,
		height:  height,
		kind:    kind,
		palette: palette,
		dither:  dither,
	}, nil
}

// Render produces the frame for p. Identical params always yield
// byte-identical frames: the only randomness is a PRNG seeded by the frame
// index, never by the clock or by scheduling.
func (r *Renderer) Render(p style.VisualParams) *Frame {
	rng := rand.New(rand.NewSource(int64(p.Frame)))

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.drawBackground(img, p)
	r.drawBands(img, p)

	r.kind.Apply(img, rng, p.EffectStrength)

	return &Frame{
		Index: p.Frame,
		Image: r.palette.ToPaletted(img, r.dither, rng),
	}
}

// drawBackground fills a vertical gradient whose depth follows the global
// intensity, darkest at the top.
func (r *Renderer) drawBackground(img *image.RGBA, p style.VisualParams) {
	for y := 0; y < r.height; y++ {
		depth := float64(y) / float64(r.height)
		v := 10 + 50*p.Intensity*depth
		rr := uint8(v * 0.5)
		gg := uint8(v * 0.3)
		bb := uint8(v)
		base := y * img.Stride
		for x := 0; x < r.width; x++ {
			i := base + x*4
			img.Pix[i] = rr
			img.Pix[i+1] = gg
			img.Pix[i+2] = bb
			img.Pix[i+3] = 0xff
		}
	}
}

// drawBands renders one vertical bar per band rising from the bottom edge,
// colored by palette rotation.
func (r *Renderer) drawBands(img *image.RGBA, p style.VisualParams) {
	n := len(p.Bands)
	if n == 0 {
		return
	}
	barW := r.width / n
	if barW < 1 {
		barW = 1
	}
	gap := barW / 8

	for b, level := range p.Bands {
		barH := int(level * float64(r.height) * 0.85)
		if barH <= 0 {
			continue
		}
		c := r.palette.Color(p.PaletteShift + b*3 + 9) // skip the darkest entries
		x0 := b * barW
		x1 := x0 + barW - gap
		if x1 > r.width {
			x1 = r.width
		}
		for y := r.height - barH; y < r.height; y++ {
			// Bars fade slightly toward their tip.
			fade := 1.0 - 0.3*float64(r.height-y)/float64(barH)
			base := y * img.Stride
			for x := x0; x < x1; x++ {
				i := base + x*4
				img.Pix[i] = uint8(float64(c.R) * fade)
				img.Pix[i+1] = uint8(float64(c.G) * fade)
				img.Pix[i+2] = uint8(float64(c.B) * fade)
			}
		}
	}
}
