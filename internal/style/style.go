// Package style defines the closed catalog of retro visual styles, the
// palette and dither machinery, and the mapping from band energies to the
// per-frame visual parameter set.
package style

import (
	"fmt"
	"image"
	"math/rand"
	"strings"
)

// Kind identifies one of the built-in retro styles. The catalog is a closed
// set: effects are tagged variants, not open-ended plugins.
type Kind int

// Enum of available styles.
const (
	VHS Kind = iota
	Film
	Vintage
	Boards
)

// String returns the style's configuration name.
func (k Kind) String() string {
	switch k {
	case VHS:
		return "vhs"
	case Film:
		return "film"
	case Vintage:
		return "vintage"
	case Boards:
		return "boards"
	default:
		return "unknown"
	}
}

// Description returns a human-readable summary for CLI listings.
func (k Kind) Description() string {
	switch k {
	case VHS:
		return "Authentic VHS look with scanlines, color bleeding and tracking jitter"
	case Film:
		return "Aged film aesthetic with grain, vignette and faded color"
	case Vintage:
		return "Nostalgic sepia tones with vignetting and soft contrast"
	case Boards:
		return "High contrast, bold colors with a modern retro edge"
	default:
		return ""
	}
}

// Catalog returns all available styles in a stable order.
func Catalog() []Kind {
	return []Kind{VHS, Film, Vintage, Boards}
}

// ParseKind converts a configuration name (case-insensitive) to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "vhs":
		return VHS, nil
	case "film":
		return Film, nil
	case "vintage":
		return Vintage, nil
	case "boards":
		return Boards, nil
	default:
		return VHS, fmt.Errorf("unknown style %q (available: vhs, film, vintage, boards)", name)
	}
}

// Apply runs the style's effect chain over img in place. strength scales all
// effects; rng must be seeded from the frame index so identical frames render
// identically regardless of worker assignment.
func (k Kind) Apply(img *image.RGBA, rng *rand.Rand, strength float64) {
	switch k {
	case VHS:
		Scanlines(img, strength)
		ColorBleed(img, strength)
		TrackingJitter(img, rng, strength)
		Noise(img, rng, 0.08*strength)
	case Film:
		Noise(img, rng, 0.12*strength)
		Sepia(img, 0.25*strength)
		Vignette(img, 0.6*strength)
		Contrast(img, -0.1*strength)
	case Vintage:
		Sepia(img, 0.7*strength)
		Vignette(img, 0.5*strength)
		Contrast(img, -0.2*strength)
	case Boards:
		Contrast(img, 0.4*strength)
		Saturate(img, 0.5*strength)
		Scanlines(img, 0.3*strength)
	}
}
