package combat

import "math"

// Modifier scales damage dealt to an entity. Multiplier is applied first,
// then Reduction as a fraction blocked. DurationMs of 0 means permanent.
type Modifier struct {
	Name       string
	Multiplier float64
	Reduction  float64
	DurationMs float64

	startedAt float64
}

func NewModifier(name string, multiplier, reduction, durationMs float64) *Modifier {
	return &Modifier{
		Name:       name,
		Multiplier: multiplier,
		Reduction:  reduction,
		DurationMs: durationMs,
	}
}

// Expired reports whether the modifier's duration has elapsed. Permanent
// modifiers never expire.
func (m *Modifier) Expired(now float64) bool {
	if m.DurationMs <= 0 {
		return false
	}
	return now-m.startedAt >= m.DurationMs
}

// Apply runs one damage value through the modifier.
func (m *Modifier) Apply(damage float64) float64 {
	damage *= m.Multiplier
	damage *= 1.0 - m.Reduction
	return math.Max(damage, 0)
}
