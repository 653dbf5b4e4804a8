package style

import (
	"image"
	"math/rand"
)

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Scanlines attenuates row intensity periodically: even rows darker than odd
// rows, with a pronounced "thick" line every 8th row at high intensity.
func Scanlines(img *image.RGBA, intensity float64) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		var line float64
		if y%2 == 0 {
			line = 1 - intensity*0.4
		} else {
			line = 1 - intensity*0.2
		}
		if y%8 == 0 && intensity > 0.5 {
			line *= 0.7
		}
		row := img.Pix[(y-b.Min.Y)*img.Stride : (y-b.Min.Y)*img.Stride+(b.Dx())*4]
		for x := 0; x < len(row); x += 4 {
			row[x] = clamp8(float64(row[x]) * line)
			row[x+1] = clamp8(float64(row[x+1]) * line)
			row[x+2] = clamp8(float64(row[x+2]) * line)
		}
	}
}

// ColorBleed smears red rightward and blue leftward across each row, the
// chroma smear of a worn composite signal.
func ColorBleed(img *image.RGBA, intensity float64) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 5 {
		return
	}
	blend := intensity * 0.4

	orig := make([]uint8, len(img.Pix))
	copy(orig, img.Pix)

	for y := 0; y < h; y++ {
		base := y * img.Stride
		for x := 2; x < w-2; x++ {
			i := base + x*4
			// Red channel samples from the right, two taps.
			redBleed := (float64(orig[i+4])*0.7 + float64(orig[i+8])*0.3) * blend
			img.Pix[i] = clamp8(float64(orig[i])*(1-blend) + redBleed)
			// Blue channel samples from the left.
			blueBleed := (float64(orig[i-4+2])*0.7 + float64(orig[i-8+2])*0.3) * blend
			img.Pix[i+2] = clamp8(float64(orig[i+2])*(1-blend) + blueBleed)
			// Green picks up a mild aberration from both neighbors.
			greenShift := (float64(orig[i-4+1]) + float64(orig[i+4+1])) * 0.5 * blend * 0.3
			img.Pix[i+1] = clamp8(float64(orig[i+1])*(1-blend*0.3) + greenShift)
		}
	}
}

// TrackingJitter displaces occasional rows horizontally, mimicking tape
// tracking errors. Displacement choices come solely from rng, so a
// frame-seeded generator reproduces the same glitches every run.
func TrackingJitter(img *image.RGBA, rng *rand.Rand, intensity float64) {
	b := img.Bounds()
	h := b.Dy()
	prob := intensity * 0.15

	for y := 0; y < h; y++ {
		if rng.Float64() >= prob {
			continue
		}
		var dx int
		if rng.Float64() < 0.7 {
			dx = rng.Intn(5) - 2 // small wobble
		} else {
			dx = rng.Intn(17) - 8 // occasional hard glitch
		}
		displaceRow(img, y, dx)
		if rng.Float64() < 0.3 && y < h-1 {
			displaceRow(img, y+1, dx/2)
			y++
		}
	}
}

// displaceRow shifts one row by dx pixels, filling the exposed edge with the
// nearest surviving pixel.
func displaceRow(img *image.RGBA, y, dx int) {
	if dx == 0 {
		return
	}
	b := img.Bounds()
	w := b.Dx()
	row := img.Pix[y*img.Stride : y*img.Stride+w*4]
	tmp := make([]uint8, len(row))
	copy(tmp, row)
	for x := 0; x < w; x++ {
		src := x - dx
		if src < 0 {
			src = 0
		} else if src >= w {
			src = w - 1
		}
		copy(row[x*4:x*4+4], tmp[src*4:src*4+4])
	}
}

// Noise adds uniform per-pixel noise scaled by amount (0..1 of full scale).
func Noise(img *image.RGBA, rng *rand.Rand, amount float64) {
	if amount <= 0 {
		return
	}
	scale := amount * 255
	for i := 0; i < len(img.Pix); i += 4 {
		n := (rng.Float64()*2 - 1) * scale
		img.Pix[i] = clamp8(float64(img.Pix[i]) + n)
		img.Pix[i+1] = clamp8(float64(img.Pix[i+1]) + n)
		img.Pix[i+2] = clamp8(float64(img.Pix[i+2]) + n)
	}
}

// Vignette darkens pixels by their squared distance from the frame center.
func Vignette(img *image.RGBA, strength float64) {
	if strength <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cx, cy := float64(w)/2, float64(h)/2
	maxSq := cx*cx + cy*cy

	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		base := y * img.Stride
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			factor := 1 - strength*(dx*dx+dy*dy)/maxSq
			i := base + x*4
			img.Pix[i] = clamp8(float64(img.Pix[i]) * factor)
			img.Pix[i+1] = clamp8(float64(img.Pix[i+1]) * factor)
			img.Pix[i+2] = clamp8(float64(img.Pix[i+2]) * factor)
		}
	}
}

// Sepia blends each pixel toward the classic sepia transform by strength.
func Sepia(img *image.RGBA, strength float64) {
	if strength <= 0 {
		return
	}
	for i := 0; i < len(img.Pix); i += 4 {
		r := float64(img.Pix[i])
		g := float64(img.Pix[i+1])
		b := float64(img.Pix[i+2])
		sr := 0.393*r + 0.769*g + 0.189*b
		sg := 0.349*r + 0.686*g + 0.168*b
		sb := 0.272*r + 0.534*g + 0.131*b
		img.Pix[i] = clamp8(r + (sr-r)*strength)
		img.Pix[i+1] = clamp8(g + (sg-g)*strength)
		img.Pix[i+2] = clamp8(b + (sb-b)*strength)
	}
}

// Contrast scales pixel values around mid-gray; positive amounts increase
// contrast, negative flatten it.
func Contrast(img *image.RGBA, amount float64) {
	if amount == 0 {
		return
	}
	factor := 1 + amount
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = clamp8(128 + (float64(img.Pix[i])-128)*factor)
		img.Pix[i+1] = clamp8(128 + (float64(img.Pix[i+1])-128)*factor)
		img.Pix[i+2] = clamp8(128 + (float64(img.Pix[i+2])-128)*factor)
	}
}

// Saturate pushes each channel away from the pixel's luma; positive amounts
// boost saturation.
func Saturate(img *image.RGBA, amount float64) {
	if amount == 0 {
		return
	}
	factor := 1 + amount
	for i := 0; i < len(img.Pix); i += 4 {
		r := float64(img.Pix[i])
		g := float64(img.Pix[i+1])
		b := float64(img.Pix[i+2])
		luma := 0.299*r + 0.587*g + 0.114*b
		img.Pix[i] = clamp8(luma + (r-luma)*factor)
		img.Pix[i+1] = clamp8(luma + (g-luma)*factor)
		img.Pix[i+2] = clamp8(luma + (b-luma)*factor)
	}
}
