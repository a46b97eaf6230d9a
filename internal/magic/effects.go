package magic

import "alchemist/internal/combat"

// ActiveEffect is one named timed effect bound to a target.
type ActiveEffect struct {
	Name       string
	Target     combat.Entity
	StartedAt  float64
	DurationMs float64
}

func (e *ActiveEffect) Expired(now float64) bool {
	return now-e.StartedAt >= e.DurationMs
}

// Remaining returns milliseconds left before expiry.
func (e *ActiveEffect) Remaining(now float64) float64 {
	left := e.DurationMs - (now - e.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Tracker holds active effects in a single slot per name: re-activating
// an effect overwrites the previous record, including its target binding.
type Tracker struct {
	effects map[string]*ActiveEffect
}

func NewTracker() *Tracker {
	return &Tracker{effects: make(map[string]*ActiveEffect)}
}

// Activate starts or restarts the named effect on a target.
func (t *Tracker) Activate(name string, target combat.Entity, durationMs, now float64) {
	t.effects[name] = &ActiveEffect{
		Name:       name,
		Target:     target,
		StartedAt:  now,
		DurationMs: durationMs,
	}
}

// Update drops expired effects. Runs at the top of the frame so an effect
// never outlives its duration into same-frame queries.
func (t *Tracker) Update(now float64) {
	for name, e := range t.effects {
		if e.Expired(now) {
			delete(t.effects, name)
		}
	}
}

// Get returns the live record for a name.
func (t *Tracker) Get(name string) (*ActiveEffect, bool) {
	e, ok := t.effects[name]
	return e, ok
}

// IsActiveOn reports whether the named effect is bound to the target.
func (t *Tracker) IsActiveOn(name string, target combat.Entity) bool {
	e, ok := t.effects[name]
	return ok && e.Target == target
}

// IsShielded reports whether the target holds the shield effect. Damage
// call sites check this before invoking the pipeline.
func (t *Tracker) IsShielded(target combat.Entity) bool {
	return t.IsActiveOn(EffectShield, target)
}

// IsInvisible reports whether the target holds the invisibility effect.
func (t *Tracker) IsInvisible(target combat.Entity) bool {
	return t.IsActiveOn(EffectInvisibility, target)
}

// Well-known effect slot names.
const (
	EffectShield       = "shield"
	EffectInvisibility = "invisibility"
)
