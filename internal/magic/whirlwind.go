package magic

import "alchemist/internal/mathutil"

// WhirlwindPhase is one stage of the area-effect animation.
type WhirlwindPhase int

const (
	PhaseRing WhirlwindPhase = iota
	PhaseSpiral
	PhaseFade
)

// Whirlwind is the cosmetic record left behind by an area cast. Damage is
// applied once at cast time; this only drives the renderer.
type Whirlwind struct {
	X, Y       float64
	Radius     float64
	StartedAt  float64
	DurationMs float64
}

func (w *Whirlwind) Expired(now float64) bool {
	return now-w.StartedAt >= w.DurationMs
}

// Progress returns elapsed lifetime in [0, 1].
func (w *Whirlwind) Progress(now float64) float64 {
	if w.DurationMs <= 0 {
		return 1
	}
	return mathutil.Clamp((now-w.StartedAt)/w.DurationMs, 0, 1)
}

// Phase splits the animation into thirds: expanding ring, rotating
// spiral, fade-out.
func (w *Whirlwind) Phase(now float64) WhirlwindPhase {
	p := w.Progress(now)
	switch {
	case p < 1.0/3.0:
		return PhaseRing
	case p < 2.0/3.0:
		return PhaseSpiral
	default:
		return PhaseFade
	}
}
