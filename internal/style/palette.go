package style

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrUnsupportedPaletteSize indicates a palette size outside the supported
// retro set.
var ErrUnsupportedPaletteSize = errors.New("unsupported palette size")

// vga16 is the classic 16-color text-mode palette.
var vga16 = []color.RGBA{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0x00, 0x00, 0xaa, 0xff}, // blue
	{0x00, 0xaa, 0x00, 0xff}, // green
	{0x00, 0xaa, 0xaa, 0xff}, // cyan
	{0xaa, 0x00, 0x00, 0xff}, // red
	{0xaa, 0x00, 0xaa, 0xff}, // magenta
	{0xaa, 0x55, 0x00, 0xff}, // brown
	{0xaa, 0xaa, 0xaa, 0xff}, // light gray
	{0x55, 0x55, 0x55, 0xff}, // dark gray
	{0x55, 0x55, 0xff, 0xff}, // bright blue
	{0x55, 0xff, 0x55, 0xff}, // bright green
	{0x55, 0xff, 0xff, 0xff}, // bright cyan
	{0xff, 0x55, 0x55, 0xff}, // bright red
	{0xff, 0x55, 0xff, 0xff}, // bright magenta
	{0xff, 0xff, 0x55, 0xff}, // yellow
	{0xff, 0xff, 0xff, 0xff}, // white
}

// Palette is a fixed retro color set with nearest-color quantization by
// squared RGB distance. Palettes are immutable and shared read-only across
// render workers.
type Palette struct {
	colors []color.RGBA
	pal    color.Palette
}

// NewPalette builds the palette for the given size. 16 selects the VGA
// text-mode colors; 256 builds the 16 VGA colors plus a 6x6x6 color cube and
// a 24-step gray ramp.
func NewPalette(size int) (*Palette, error) {
	var colors []color.RGBA
	switch size {
	case 16:
		colors = vga16
	case 256:
		colors = make([]color.RGBA, 0, 256)
		colors = append(colors, vga16...)
		// 6x6x6 cube, 216 entries.
		levels := []uint8{0x00, 0x33, 0x66, 0x99, 0xcc, 0xff}
		for _, r := range levels {
			for _, g := range levels {
				for _, b := range levels {
					colors = append(colors, color.RGBA{r, g, b, 0xff})
				}
			}
		}
		// 24-step gray ramp fills the remainder.
		for i := 0; i < 24; i++ {
			v := uint8(8 + i*10)
			colors = append(colors, color.RGBA{v, v, v, 0xff})
		}
	default:
		return nil, fmt.Errorf("%w: %d (supported: 16, 256)", ErrUnsupportedPaletteSize, size)
	}

	pal := make(color.Palette, len(colors))
	for i, c := range colors {
		pal[i] = c
	}
	return &Palette{colors: colors, pal: pal}, nil
}

// Size returns the number of palette entries.
func (p *Palette) Size() int { return len(p.colors) }

// Color returns palette entry i, wrapping out-of-range indices.
func (p *Palette) Color(i int) color.RGBA {
	return p.colors[((i%len(p.colors))+len(p.colors))%len(p.colors)]
}

// Colors returns the palette as a color.Palette for paletted images.
func (p *Palette) Colors() color.Palette { return p.pal }

// NearestIndex returns the palette index closest to (r, g, b) by squared
// RGB distance. The scan order is fixed, so ties resolve identically on
// every call.
func (p *Palette) NearestIndex(r, g, b uint8) uint8 {
	best := 0
	bestDist := int(^uint(0) >> 1)
	for i, c := range p.colors {
		dr := int(r) - int(c.R)
		dg := int(g) - int(c.G)
		db := int(b) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// QuantizeRGBA snaps every pixel of img to its nearest palette color in
// place. Quantizing an already-quantized image is a no-op.
func (p *Palette) QuantizeRGBA(img *image.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		c := p.colors[p.NearestIndex(img.Pix[i], img.Pix[i+1], img.Pix[i+2])]
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = 0xff
	}
}
