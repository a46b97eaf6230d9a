package magic

import (
	"math"

	"go.uber.org/zap"

	"alchemist/internal/combat"
	"alchemist/internal/config"
)

// Caster is a combat entity that can spend mana on spells.
type Caster interface {
	combat.Entity
	SpendMana(amount int) bool
	FacingRight() bool
}

// SelectStatus reports what an element push did to the selection buffer.
type SelectStatus int

const (
	SelectIgnored SelectStatus = iota // debounced repeat
	SelectPending                     // buffer holds one token
	SelectReady                       // pair resolved to an effect
	SelectInvalid                     // pair matched nothing, buffer cleared
)

// System ties the selection buffer, combination registry, cooldowns,
// active effects and projectile simulator into the casting flow.
type System struct {
	registry  *Registry
	selection *Selection
	cooldowns *CooldownTracker
	effects   *Tracker
	simulator *Simulator
	combat    *combat.System
	logger    *zap.Logger

	manaCost        int
	projectileSpeed float64
	aimReach        float64

	ready      *EffectDescriptor
	whirlwinds []*Whirlwind
}

func NewSystem(registry *Registry, combatSys *combat.System, effects *Tracker, simulator *Simulator, cfg *config.Config, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{
		registry:        registry,
		selection:       NewSelection(cfg.Magic.DebounceMs),
		cooldowns:       NewCooldownTracker(),
		effects:         effects,
		simulator:       simulator,
		combat:          combatSys,
		logger:          logger,
		manaCost:        cfg.Magic.ManaCost,
		projectileSpeed: cfg.Magic.ProjectileSpeed,
		aimReach:        cfg.Magic.ProjectileAimReach,
	}
}

// SelectElement pushes one element token and attempts resolution when the
// buffer reaches two tokens.
func (s *System) SelectElement(e Element, now float64) SelectStatus {
	if !s.selection.Push(e, now) {
		return SelectIgnored
	}
	s.ready = nil

	first, second, full := s.selection.Pair()
	if !full {
		return SelectPending
	}

	d, ok := s.registry.Resolve(first, second)
	if !ok {
		s.logger.Debug("invalid element combination",
			zap.String("first", first.String()),
			zap.String("second", second.String()))
		s.selection.Clear()
		return SelectInvalid
	}
	s.ready = d
	return SelectReady
}

// ClearSelection empties the buffer without casting.
func (s *System) ClearSelection() {
	s.selection.Clear()
	s.ready = nil
}

// Selection exposes the buffered tokens for the HUD.
func (s *System) Selection() []Element {
	return s.selection.Elements()
}

// ReadyEffect returns the resolved effect awaiting a cast.
func (s *System) ReadyEffect() *EffectDescriptor {
	return s.ready
}

// Cooldowns exposes per-spell recharge state for the HUD.
func (s *System) Cooldowns() *CooldownTracker {
	return s.cooldowns
}

func (s *System) Effects() *Tracker {
	return s.effects
}

func (s *System) Projectiles() *Simulator {
	return s.simulator
}

func (s *System) Whirlwinds() []*Whirlwind {
	return s.whirlwinds
}

// Update expires active effects and finished whirlwind animations. Runs
// at the top of the frame, before input and casting.
func (s *System) Update(now float64) {
	s.effects.Update(now)

	writeIdx := 0
	for _, w := range s.whirlwinds {
		if w.Expired(now) {
			continue
		}
		s.whirlwinds[writeIdx] = w
		writeIdx++
	}
	for i := writeIdx; i < len(s.whirlwinds); i++ {
		s.whirlwinds[i] = nil
	}
	s.whirlwinds = s.whirlwinds[:writeIdx]
}

// CastMagic executes the resolved effect for the caster against the
// candidate targets. The selection buffer is cleared after every attempt,
// whether it succeeds, fails the cooldown or fails the mana check.
func (s *System) CastMagic(caster Caster, candidates []combat.Entity, now float64) (*EffectDescriptor, bool) {
	defer s.ClearSelection()

	d := s.ready
	if d == nil {
		return nil, false
	}
	if !s.cooldowns.IsReady(d.ID, now) {
		s.logger.Debug("spell on cooldown",
			zap.String("spell", d.ID),
			zap.Float64("remaining_sec", s.cooldowns.Remaining(d.ID, now)))
		return nil, false
	}
	if !caster.SpendMana(s.manaCost) {
		s.logger.Debug("not enough mana",
			zap.String("spell", d.ID),
			zap.Int("cost", s.manaCost))
		return nil, false
	}
	s.cooldowns.Start(d.ID, d.CooldownSec, now)

	switch d.Kind {
	case KindProjectile:
		s.castProjectile(caster, d)
	case KindHealing:
		s.combat.HealEntity(caster, d.Healing, now)
	case KindShield:
		s.effects.Activate(EffectShield, caster, d.DurationMs, now)
	case KindInvisibility:
		s.effects.Activate(EffectInvisibility, caster, d.DurationMs, now)
	case KindArea:
		s.castArea(caster, d, candidates, now)
	}

	s.logger.Debug("spell cast",
		zap.String("spell", d.ID),
		zap.String("caster", caster.Kind()))
	return d, true
}

// castProjectile aims purely from the caster's facing: the bolt flies
// horizontally toward a point aimReach pixels ahead.
func (s *System) castProjectile(caster Caster, d *EffectDescriptor) {
	x, y := caster.Position()
	aimX := x + s.aimReach
	if !caster.FacingRight() {
		aimX = x - s.aimReach
	}
	s.simulator.Spawn(NewProjectile(x, y, aimX, y, s.projectileSpeed, d.Damage, d.Elements[0], caster))
}

// castArea damages every living, unshielded candidate inside the radius
// once and leaves the whirlwind animation record behind.
func (s *System) castArea(caster Caster, d *EffectDescriptor, candidates []combat.Entity, now float64) {
	cx, cy := caster.Position()
	for _, target := range candidates {
		if target == nil || !target.IsAlive() || target == combat.Entity(caster) {
			continue
		}
		tx, ty := target.Position()
		dx := tx - cx
		dy := ty - cy
		if math.Sqrt(dx*dx+dy*dy) > d.Radius {
			continue
		}
		if s.effects != nil && s.effects.IsShielded(target) {
			s.logger.Debug("area damage blocked by shield",
				zap.String("target", target.Kind()))
			continue
		}
		s.combat.ApplyDamage(caster, target, d.Damage, combat.DamageArea, now)
	}
	s.whirlwinds = append(s.whirlwinds, &Whirlwind{
		X:          cx,
		Y:          cy,
		Radius:     d.Radius,
		StartedAt:  now,
		DurationMs: d.DurationMs,
	})
}
