package magic

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"alchemist/internal/combat"
)

// projectileHitRadius is the contact distance in pixels between a bolt
// and a target center.
const projectileHitRadius = 24.0

// Projectile is one element bolt in flight.
type Projectile struct {
	X, Y    float64
	Damage  int
	Element Element
	Source  combat.Entity

	velX, velY float64
	alive      bool
}

// NewProjectile spawns a bolt at (x, y) flying toward the aim point at
// the given speed in pixels per second. The source is excluded from hits.
func NewProjectile(x, y, aimX, aimY, speed float64, damage int, element Element, source combat.Entity) *Projectile {
	dx := aimX - x
	dy := aimY - y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		dx, dy, dist = 1, 0, 1
	}
	return &Projectile{
		X:       x,
		Y:       y,
		Damage:  damage,
		Element: element,
		Source:  source,
		velX:    dx / dist * speed,
		velY:    dy / dist * speed,
		alive:   true,
	}
}

func (p *Projectile) Alive() bool {
	return p.alive
}

// Velocity returns the bolt's velocity in pixels per second.
func (p *Projectile) Velocity() (float64, float64) {
	return p.velX, p.velY
}

// DamageAgainst applies the element matchup rules. Fire bolts burn
// water-natured targets, water bolts quench fire-natured ones; everything
// else takes the descriptor's flat damage.
func (p *Projectile) DamageAgainst(targetKind string) int {
	kind := strings.ToLower(targetKind)
	switch p.Element {
	case ElementFire:
		if containsAny(kind, "water", "ice") {
			return 50
		}
		return 10
	case ElementWater:
		if containsAny(kind, "fire", "demon", "flame", "lava") {
			return 50
		}
		return 10
	default:
		return p.Damage
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (p *Projectile) damageType() combat.DamageType {
	switch p.Element {
	case ElementFire:
		return combat.DamageFire
	case ElementWater:
		return combat.DamageWater
	default:
		return combat.DamageMagical
	}
}

// Simulator advances bolts, culls them at the world bound and resolves
// first-contact hits through the damage pipeline.
type Simulator struct {
	combat     *combat.System
	effects    *Tracker
	worldBound float64
	logger     *zap.Logger

	projectiles []*Projectile
}

func NewSimulator(combatSys *combat.System, effects *Tracker, worldBound float64, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		combat:     combatSys,
		effects:    effects,
		worldBound: worldBound,
		logger:     logger,
	}
}

func (s *Simulator) Spawn(p *Projectile) {
	s.projectiles = append(s.projectiles, p)
}

func (s *Simulator) Projectiles() []*Projectile {
	return s.projectiles
}

// Update moves every bolt by dt seconds and resolves hits against the
// candidate targets. A bolt is consumed on its first contact even when a
// shield suppresses the damage.
func (s *Simulator) Update(dt, now float64, targets []combat.Entity) {
	for _, p := range s.projectiles {
		if !p.alive {
			continue
		}
		p.X += p.velX * dt
		p.Y += p.velY * dt

		if math.Abs(p.X) > s.worldBound || math.Abs(p.Y) > s.worldBound {
			p.alive = false
			continue
		}

		for _, target := range targets {
			if target == nil || !target.IsAlive() || target == p.Source {
				continue
			}
			tx, ty := target.Position()
			dx := p.X - tx
			dy := p.Y - ty
			if math.Sqrt(dx*dx+dy*dy) >= projectileHitRadius {
				continue
			}

			p.alive = false
			if s.effects != nil && s.effects.IsShielded(target) {
				s.logger.Debug("projectile blocked by shield",
					zap.String("target", target.Kind()),
					zap.String("element", p.Element.String()))
				break
			}
			s.combat.ApplyDamage(p.Source, target, p.DamageAgainst(target.Kind()), p.damageType(), now)
			break
		}
	}

	writeIdx := 0
	for _, p := range s.projectiles {
		if !p.alive {
			continue
		}
		s.projectiles[writeIdx] = p
		writeIdx++
	}
	for i := writeIdx; i < len(s.projectiles); i++ {
		s.projectiles[i] = nil
	}
	s.projectiles = s.projectiles[:writeIdx]
}
