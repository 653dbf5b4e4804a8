package analysis

// Smoother applies asymmetric exponential smoothing to consecutive band
// energy frames. Attack > release gives fast rise and slow decay, the
// phosphor-persistence look that keeps band motion from flickering.
//
// The recurrence is inherently sequential across frames: Apply must be
// called exactly once per frame, in frame order, from a single goroutine.
// State is owned per pipeline run and reset at start.
type Smoother struct {
	attack  float64
	release float64
	state   []float64
}

// NewSmoother creates a Smoother for the given band count and coefficients.
func NewSmoother(bands int, attack, release float64) *Smoother {
	return &Smoother{
		attack:  attack,
		release: release,
		state:   make([]float64, bands),
	}
}

// Apply folds one frame of raw band energies into the smoothing state and
// returns a freshly allocated smoothed frame. The smoothed value never
// overshoots a rising input and never undershoots zero on decay.
func (s *Smoother) Apply(energies []float64) []float64 {
	out := make([]float64, len(s.state))
	for i := range s.state {
		e := 0.0
		if i < len(energies) {
			e = energies[i]
		}
		prev := s.state[i]
		var coeff float64
		if e >= prev {
			coeff = s.attack
		} else {
			coeff = s.release
		}
		s.state[i] = coeff*e + (1-coeff)*prev
		out[i] = s.state[i]
	}
	return out
}

// Reset clears the smoothing state for a new run.
func (s *Smoother) Reset() {
	for i := range s.state {
		s.state[i] = 0
	}
}
