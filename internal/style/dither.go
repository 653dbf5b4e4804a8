package style

import (
	"fmt"
	"image"
	"math/rand"
	"strings"
)

// DitherMode selects how quantization error is masked.
type DitherMode int

// Enum of dither modes.
const (
	DitherNone DitherMode = iota
	DitherOrdered
	DitherRandom
)

// ParseDitherMode converts a configuration string to a DitherMode.
func ParseDitherMode(name string) (DitherMode, error) {
	switch strings.ToLower(name) {
	case "none":
		return DitherNone, nil
	case "ordered":
		return DitherOrdered, nil
	case "random":
		return DitherRandom, nil
	default:
		return DitherNone, fmt.Errorf("unknown dither mode %q (available: none, ordered, random)", name)
	}
}

// bayer4 is the 4x4 ordered dither matrix, normalized to [-0.5, 0.5).
var bayer4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

func init() {
	for y := range bayer4 {
		for x := range bayer4[y] {
			bayer4[y][x] = (bayer4[y][x]+0.5)/16.0 - 0.5
		}
	}
}

// ToPaletted quantizes img into a paletted image, optionally perturbing each
// pixel first to mask banding. Ordered dithering uses the Bayer matrix by
// pixel position; random dithering draws from rng, which the renderer seeds
// from the frame index so output stays reproducible.
func (p *Palette) ToPaletted(img *image.RGBA, mode DitherMode, rng *rand.Rand) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(b, p.pal)

	// Dither amplitude tracks palette coarseness.
	amp := 28.0
	if len(p.colors) > 16 {
		amp = 10.0
	}

	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		srcBase := y * img.Stride
		dstBase := y * out.Stride
		for x := 0; x < w; x++ {
			i := srcBase + x*4
			r, g, bl := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])

			switch mode {
			case DitherOrdered:
				offset := bayer4[y&3][x&3] * amp
				r += offset
				g += offset
				bl += offset
			case DitherRandom:
				offset := (rng.Float64() - 0.5) * amp
				r += offset
				g += offset
				bl += offset
			}

			out.Pix[dstBase+x] = p.NearestIndex(clamp8(r), clamp8(g), clamp8(bl))
		}
	}
	return out
}
