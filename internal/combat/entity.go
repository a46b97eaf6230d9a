package combat

// DamageType categorizes where a hit came from. Feedback colors and the
// element-conditioned projectile rules key off it.
type DamageType int

const (
	DamagePhysical DamageType = iota
	DamageMagical
	DamageFire
	DamageWater
	DamageArea
	DamageHealing
)

func (d DamageType) String() string {
	switch d {
	case DamagePhysical:
		return "physical"
	case DamageMagical:
		return "magical"
	case DamageFire:
		return "fire"
	case DamageWater:
		return "water"
	case DamageArea:
		return "area"
	case DamageHealing:
		return "healing"
	default:
		return "unknown"
	}
}

// Entity is the capability contract every combatant satisfies. The damage
// pipeline, projectiles and area effects only ever see this interface.
type Entity interface {
	// TakeDamage applies amount to health and reports whether the entity
	// is still alive afterwards. Negative amounts heal, clamped to max
	// health. Dead entities ignore further damage.
	TakeDamage(amount int, damageType DamageType, source Entity) bool

	// CanAttack reports whether the attack cooldown has elapsed at the
	// given simulation time (milliseconds).
	CanAttack(now float64) bool

	// MarkAttack restarts the attack cooldown.
	MarkAttack(now float64)

	AttackDamage() int
	Health() int
	MaxHealth() int
	IsAlive() bool

	// Kind names the entity type ("player", "demon", "fireworm").
	Kind() string

	Position() (x, y float64)
}
