package magic

import "fmt"

// EffectKind selects how a resolved effect executes.
type EffectKind int

const (
	KindProjectile EffectKind = iota
	KindHealing
	KindShield
	KindArea
	KindInvisibility
)

func (k EffectKind) String() string {
	switch k {
	case KindProjectile:
		return "projectile"
	case KindHealing:
		return "healing"
	case KindShield:
		return "shield"
	case KindArea:
		return "area"
	case KindInvisibility:
		return "invisibility"
	default:
		return "unknown"
	}
}

// ParseEffectKind maps a config name to an effect kind.
func ParseEffectKind(name string) (EffectKind, error) {
	switch name {
	case "projectile":
		return KindProjectile, nil
	case "healing":
		return KindHealing, nil
	case "shield":
		return KindShield, nil
	case "area":
		return KindArea, nil
	case "invisibility":
		return KindInvisibility, nil
	default:
		return KindProjectile, fmt.Errorf("unknown effect kind %q", name)
	}
}

// EffectDescriptor is one entry in the combination table.
type EffectDescriptor struct {
	ID          string
	Name        string
	Kind        EffectKind
	Elements    [2]Element
	Damage      int
	Healing     int
	DurationMs  float64
	Radius      float64
	CooldownSec float64
}

// Registry maps unordered element pairs to effect descriptors. Both
// orderings of every pair are stored so lookup is a single map access
// either way round.
type Registry struct {
	combos map[[2]Element]*EffectDescriptor
}

func NewRegistry() *Registry {
	return &Registry{combos: make(map[[2]Element]*EffectDescriptor)}
}

// Register binds an element pair to a descriptor under both orderings.
func (r *Registry) Register(d *EffectDescriptor) {
	a, b := d.Elements[0], d.Elements[1]
	r.combos[[2]Element{a, b}] = d
	r.combos[[2]Element{b, a}] = d
}

// Resolve looks up the effect for an element pair in either order.
func (r *Registry) Resolve(a, b Element) (*EffectDescriptor, bool) {
	d, ok := r.combos[[2]Element{a, b}]
	return d, ok
}

// Descriptors returns each registered effect once.
func (r *Registry) Descriptors() []*EffectDescriptor {
	seen := make(map[string]bool)
	var out []*EffectDescriptor
	for _, d := range r.combos {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		out = append(out, d)
	}
	return out
}

// DefaultRegistry returns the built-in combination table. The YAML spell
// file produces the same table and may override it at startup.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&EffectDescriptor{
		ID:          "fireball",
		Name:        "Fireball",
		Kind:        KindProjectile,
		Elements:    [2]Element{ElementFire, ElementFire},
		Damage:      25,
		CooldownSec: 3.0,
	})
	r.Register(&EffectDescriptor{
		ID:          "waterbolt",
		Name:        "Waterbolt",
		Kind:        KindProjectile,
		Elements:    [2]Element{ElementWater, ElementWater},
		Damage:      25,
		CooldownSec: 3.0,
	})
	r.Register(&EffectDescriptor{
		ID:          "shield",
		Name:        "Stone Shield",
		Kind:        KindShield,
		Elements:    [2]Element{ElementStone, ElementStone},
		DurationMs:  2000,
		CooldownSec: 3.0,
	})
	r.Register(&EffectDescriptor{
		ID:          "healing",
		Name:        "Healing Mist",
		Kind:        KindHealing,
		Elements:    [2]Element{ElementFire, ElementWater},
		Healing:     50,
		CooldownSec: 3.0,
	})
	r.Register(&EffectDescriptor{
		ID:          "whirlwind",
		Name:        "Whirlwind",
		Kind:        KindArea,
		Elements:    [2]Element{ElementFire, ElementStone},
		Damage:      10,
		Radius:      128,
		DurationMs:  3000,
		CooldownSec: 3.0,
	})
	r.Register(&EffectDescriptor{
		ID:          "invisibility",
		Name:        "Invisibility",
		Kind:        KindInvisibility,
		Elements:    [2]Element{ElementWater, ElementStone},
		DurationMs:  5000,
		CooldownSec: 3.0,
	})
	return r
}
