package enemy

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alchemist/internal/combat"
	"alchemist/internal/config"
	"alchemist/internal/magic"
	"alchemist/internal/pathfind"
)

// State is the behavior state of an enemy.
type State int

const (
	StateIdle State = iota
	StatePursuing
	StateAttacking
	StateDead
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePursuing:
		return "pursuing"
	case StateAttacking:
		return "attacking"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// CollisionChecker answers movement and sight queries for the AI.
type CollisionChecker interface {
	CanMoveTo(width, height, x, y float64) bool
	LineOfSight(x1, y1, x2, y2 float64) bool
}

// EffectQuerier reports target-bound effects the AI reacts to. Shield
// suppression happens here at the call site, before the damage pipeline
// is ever invoked.
type EffectQuerier interface {
	IsInvisible(target combat.Entity) bool
	IsShielded(target combat.Entity) bool
}

// BoltSpawner launches a ranged enemy's projectile.
type BoltSpawner interface {
	SpawnBolt(x, y, aimX, aimY, speed float64, damage int, element magic.Element, source combat.Entity)
}

// Deps are the collaborators injected at construction. World, Finder,
// Effects and Bolts may be nil; the enemy degrades gracefully without
// them (free movement, direct pursuit, no invisibility, no ranged fire).
type Deps struct {
	World   CollisionChecker
	Finder  pathfind.Finder
	Effects EffectQuerier
	Combat  *combat.System
	Bolts   BoltSpawner
	Logger  *zap.Logger
}

// Enemy is one AI-driven combatant.
type Enemy struct {
	ID   string
	X, Y float64

	def    *Definition
	health int

	state          State
	stateEnteredAt float64
	lastAttackAt   float64
	diedAt         float64
	aggro          bool
	facingRight    bool

	path          []pathfind.Point
	pathIdx       int
	blockedFrames int

	world   CollisionChecker
	finder  pathfind.Finder
	effects EffectQuerier
	combat  *combat.System
	bolts   BoltSpawner
	logger  *zap.Logger
	ai      config.EnemyAIConfig
}

func New(def *Definition, x, y float64, deps Deps, ai config.EnemyAIConfig) *Enemy {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enemy{
		ID:           uuid.NewString(),
		X:            x,
		Y:            y,
		def:          def,
		health:       def.MaxHealth,
		lastAttackAt: -def.AttackCooldownMs,
		world:        deps.World,
		finder:       deps.Finder,
		effects:      deps.Effects,
		combat:       deps.Combat,
		bolts:        deps.Bolts,
		logger:       logger,
		ai:           ai,
	}
}

// TakeDamage applies damage, or heals on negative amounts. A hit with a
// known source engages the enemy even outside its detection range.
func (e *Enemy) TakeDamage(amount int, damageType combat.DamageType, source combat.Entity) bool {
	if e.health <= 0 {
		return false
	}
	e.health -= amount
	if e.health > e.def.MaxHealth {
		e.health = e.def.MaxHealth
	}
	if e.health < 0 {
		e.health = 0
	}
	if source != nil && e.health > 0 {
		e.aggro = true
	}
	return e.health > 0
}

func (e *Enemy) CanAttack(now float64) bool {
	return now-e.lastAttackAt >= e.def.AttackCooldownMs
}

func (e *Enemy) MarkAttack(now float64) {
	e.lastAttackAt = now
}

func (e *Enemy) AttackDamage() int            { return e.def.AttackDamage }
func (e *Enemy) Health() int                  { return e.health }
func (e *Enemy) MaxHealth() int               { return e.def.MaxHealth }
func (e *Enemy) IsAlive() bool                { return e.health > 0 }
func (e *Enemy) Kind() string                 { return e.def.Name }
func (e *Enemy) Position() (float64, float64) { return e.X, e.Y }

func (e *Enemy) State() State            { return e.state }
func (e *Enemy) FacingRight() bool       { return e.facingRight }
func (e *Enemy) Definition() *Definition { return e.def }
func (e *Enemy) Path() []pathfind.Point  { return e.path }

// FadeAlpha returns the death-fade opacity: 1 at the moment of death,
// linearly down to 0 when the fade completes. Living enemies are opaque.
func (e *Enemy) FadeAlpha(now float64) float64 {
	if e.state != StateDead {
		return 1
	}
	if e.ai.DeathFadeMs <= 0 {
		return 0
	}
	alpha := 1 - (now-e.diedAt)/e.ai.DeathFadeMs
	if alpha < 0 {
		return 0
	}
	return alpha
}

// ShouldRemove reports whether the death fade has completed.
func (e *Enemy) ShouldRemove(now float64) bool {
	return e.state == StateDead && now-e.diedAt >= e.ai.DeathFadeMs
}

func (e *Enemy) enterState(s State, now float64) {
	if e.state == s {
		return
	}
	e.logger.Debug("enemy state change",
		zap.String("id", e.ID),
		zap.String("kind", e.def.Name),
		zap.String("from", e.state.String()),
		zap.String("to", s.String()))
	e.state = s
	e.stateEnteredAt = now
}

// Update advances the state machine by one frame. dt is in seconds, now
// in simulation milliseconds.
func (e *Enemy) Update(dt, now float64, target combat.Entity, others []*Enemy) {
	if e.state == StateDead {
		return
	}
	if !e.IsAlive() {
		e.diedAt = now
		e.path = nil
		e.enterState(StateDead, now)
		return
	}

	if target == nil || !target.IsAlive() {
		e.aggro = false
		e.path = nil
		e.enterState(StateIdle, now)
		return
	}

	if e.effects != nil && e.effects.IsInvisible(target) {
		e.aggro = false
		e.path = nil
		e.enterState(StateIdle, now)
		return
	}

	tx, ty := target.Position()
	dist := math.Hypot(tx-e.X, ty-e.Y)

	switch e.state {
	case StateIdle:
		if e.aggro || dist <= e.def.DetectionRange {
			e.enterState(StatePursuing, now)
		}
	case StatePursuing:
		e.updatePursuing(dt, now, target, tx, ty, dist, others)
	case StateAttacking:
		e.facingRight = tx >= e.X
		if now-e.stateEnteredAt >= e.def.AttackHoldMs {
			e.enterState(StatePursuing, now)
		}
	}
}

func (e *Enemy) updatePursuing(dt, now float64, target combat.Entity, tx, ty, dist float64, others []*Enemy) {
	// Give up once the target is well past detection range
	if !e.aggro && dist > e.def.DetectionRange*1.2 {
		e.path = nil
		e.enterState(StateIdle, now)
		return
	}

	if dist <= e.def.AttackRange && e.CanAttack(now) {
		switch e.def.Behavior {
		case BehaviorMelee:
			if e.effects != nil && e.effects.IsShielded(target) {
				// Shield absorbs the strike; the cooldown is still spent
				e.MarkAttack(now)
				e.facingRight = tx >= e.X
				e.enterState(StateAttacking, now)
				return
			}
			if e.combat != nil && e.combat.ProcessAttack(e, target, combat.DamagePhysical, now) {
				e.facingRight = tx >= e.X
				e.enterState(StateAttacking, now)
				return
			}
		case BehaviorRanged:
			if e.hasLineOfSight(tx, ty) {
				e.MarkAttack(now)
				if e.bolts != nil {
					e.bolts.SpawnBolt(e.X, e.Y, tx, ty, e.def.ProjectileSpeed, e.def.ProjectileDamage, magic.ElementFire, e)
				}
				e.facingRight = tx >= e.X
				e.enterState(StateAttacking, now)
				return
			}
		}
	}

	e.moveToward(dt, tx, ty, others)
}

func (e *Enemy) hasLineOfSight(tx, ty float64) bool {
	if e.world == nil {
		return true
	}
	return e.world.LineOfSight(e.X, e.Y, tx, ty)
}

func (e *Enemy) moveToward(dt, tx, ty float64, others []*Enemy) {
	// A clear sight line at close range makes the remaining path stale
	if len(e.path) > 0 {
		d := math.Hypot(tx-e.X, ty-e.Y)
		if d < e.ai.PathDiscardDistance && e.hasLineOfSight(tx, ty) {
			e.path = nil
		}
	}

	if len(e.path) > 0 {
		e.followPath(dt, others)
		return
	}

	moved := e.step(dt, tx-e.X, ty-e.Y, others)
	if moved {
		e.blockedFrames = 0
	} else {
		e.blockedFrames++
	}

	if e.finder == nil {
		return
	}
	losLost := !e.hasLineOfSight(tx, ty)
	if e.blockedFrames >= e.ai.BlockedFramesBeforePath || losLost {
		if path := e.finder.FindPath(e.X, e.Y, tx, ty); len(path) > 0 {
			e.path = path
			e.pathIdx = 0
		}
		e.blockedFrames = 0
	}
}

func (e *Enemy) followPath(dt float64, others []*Enemy) {
	wp := e.path[e.pathIdx]
	if math.Hypot(wp.X-e.X, wp.Y-e.Y) <= e.ai.WaypointArrivalRadius {
		e.pathIdx++
		if e.pathIdx >= len(e.path) {
			e.path = nil
			return
		}
		wp = e.path[e.pathIdx]
	}

	if !e.step(dt, wp.X-e.X, wp.Y-e.Y, others) {
		// Path no longer walkable, fall back to direct pursuit
		e.path = nil
		e.blockedFrames++
	}
}

// step moves along the normalized direction with axis-separated sliding:
// when the diagonal is blocked, each axis is tried on its own.
func (e *Enemy) step(dt, dirX, dirY float64, others []*Enemy) bool {
	length := math.Hypot(dirX, dirY)
	if length == 0 {
		return false
	}
	stepX := dirX / length * e.def.Speed * dt
	stepY := dirY / length * e.def.Speed * dt

	if dirX != 0 {
		e.facingRight = dirX > 0
	}

	if e.canStand(e.X+stepX, e.Y+stepY, others) {
		e.X += stepX
		e.Y += stepY
		return true
	}
	if stepX != 0 && e.canStand(e.X+stepX, e.Y, others) {
		e.X += stepX
		return true
	}
	if stepY != 0 && e.canStand(e.X, e.Y+stepY, others) {
		e.Y += stepY
		return true
	}
	return false
}

func (e *Enemy) canStand(x, y float64, others []*Enemy) bool {
	if e.world != nil && !e.world.CanMoveTo(e.def.Width, e.def.Height, x, y) {
		return false
	}
	for _, other := range others {
		if other == e || other.state == StateDead {
			continue
		}
		pad := e.ai.SeparationPadding
		if math.Abs(x-other.X) < (e.def.Width+other.def.Width)/2+pad &&
			math.Abs(y-other.Y) < (e.def.Height+other.def.Height)/2+pad {
			return false
		}
	}
	return true
}
