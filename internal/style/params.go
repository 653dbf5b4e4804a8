package style

// VisualParams is the deterministic per-frame parameter set consumed by the
// renderer. It is computed purely from the current smoothed band energies
// and the previous frame's params; there is no other state.
type VisualParams struct {
	Frame          int       // Output frame index, also the render PRNG seed.
	Bands          []float64 // Per-band level in [0, 1].
	Intensity      float64   // Global brightness drive in [0, 1].
	EffectStrength float64   // Style effect scaling in [0, 1].
	PaletteShift   int       // Palette rotation, advanced on energy bursts.
}

// Mapper converts smoothed band energies into VisualParams. Map is a pure
// function of its arguments, so individual bands are unit-testable in
// isolation.
type Mapper struct {
	styleIntensity float64
	gain           float64
}

// burstThreshold is the intensity jump between consecutive frames that
// advances the palette rotation.
const burstThreshold = 0.25

// NewMapper creates a Mapper with the configured style intensity. The gain
// lifts typical RMS band energies into the visible range.
func NewMapper(styleIntensity float64) *Mapper {
	return &Mapper{
		styleIntensity: styleIntensity,
		gain:           4.0,
	}
}

// Map computes the frame's VisualParams from its smoothed band energies and
// the previous frame's params.
func (m *Mapper) Map(frame int, smoothed []float64, prev VisualParams) VisualParams {
	bands := make([]float64, len(smoothed))
	sum := 0.0
	for i, e := range smoothed {
		v := e * m.gain
		if v > 1 {
			v = 1
		}
		bands[i] = v
		sum += v
	}

	intensity := 0.0
	if len(bands) > 0 {
		intensity = sum / float64(len(bands))
	}

	shift := prev.PaletteShift
	if intensity-prev.Intensity > burstThreshold {
		shift++
	}

	return VisualParams{
		Frame:          frame,
		Bands:          bands,
		Intensity:      intensity,
		EffectStrength: m.styleIntensity * (0.5 + 0.5*intensity),
		PaletteShift:   shift,
	}
}
