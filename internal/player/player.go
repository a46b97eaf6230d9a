package player

import (
	"alchemist/internal/combat"
	"alchemist/internal/config"
)

// Player is the caster-controlled combat entity. It satisfies the combat
// entity contract and the mana-spending caster contract.
type Player struct {
	X, Y float64

	health           int
	maxHealth        int
	attackDamage     int
	attackCooldownMs float64
	lastAttackAt     float64

	mana      float64
	maxMana   float64
	manaRegen float64

	moveSpeed   float64
	facingRight bool
}

func New(cfg config.PlayerConfig, x, y float64) *Player {
	return &Player{
		X:                x,
		Y:                y,
		health:           cfg.MaxHealth,
		maxHealth:        cfg.MaxHealth,
		attackDamage:     cfg.AttackDamage,
		attackCooldownMs: cfg.AttackCooldownMs,
		lastAttackAt:     -cfg.AttackCooldownMs,
		mana:             cfg.MaxMana,
		maxMana:          cfg.MaxMana,
		manaRegen:        cfg.ManaRegenPerSec,
		moveSpeed:        cfg.MoveSpeed,
		facingRight:      true,
	}
}

// Update regenerates mana. dt is in seconds.
func (p *Player) Update(dt float64) {
	if !p.IsAlive() {
		return
	}
	p.mana += p.manaRegen * dt
	if p.mana > p.maxMana {
		p.mana = p.maxMana
	}
}

// TakeDamage applies damage, or heals on negative amounts. Health is
// clamped to [0, max]; a dead player ignores further changes.
func (p *Player) TakeDamage(amount int, damageType combat.DamageType, source combat.Entity) bool {
	if !p.IsAlive() {
		return false
	}
	p.health -= amount
	if p.health > p.maxHealth {
		p.health = p.maxHealth
	}
	if p.health < 0 {
		p.health = 0
	}
	return p.health > 0
}

func (p *Player) CanAttack(now float64) bool {
	return now-p.lastAttackAt >= p.attackCooldownMs
}

func (p *Player) MarkAttack(now float64) {
	p.lastAttackAt = now
}

func (p *Player) AttackDamage() int            { return p.attackDamage }
func (p *Player) Health() int                  { return p.health }
func (p *Player) MaxHealth() int               { return p.maxHealth }
func (p *Player) IsAlive() bool                { return p.health > 0 }
func (p *Player) Kind() string                 { return "player" }
func (p *Player) Position() (float64, float64) { return p.X, p.Y }

// SpendMana deducts the cost if the pool covers it.
func (p *Player) SpendMana(amount int) bool {
	if p.mana < float64(amount) {
		return false
	}
	p.mana -= float64(amount)
	return true
}

func (p *Player) Mana() float64    { return p.mana }
func (p *Player) MaxMana() float64 { return p.maxMana }

func (p *Player) FacingRight() bool { return p.facingRight }

// SetFacing updates the horizontal facing used for projectile aim.
func (p *Player) SetFacing(right bool) {
	p.facingRight = right
}

func (p *Player) MoveSpeed() float64 { return p.moveSpeed }
