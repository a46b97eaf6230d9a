package combat

import (
	"math"

	"go.uber.org/zap"
)

// HistoryEntry records one resolved damage or heal application.
type HistoryEntry struct {
	AttackerKind string
	TargetKind   string
	Damage       int
	Type         DamageType
	At           float64
	Fatal        bool
}

// System is the damage pipeline: it owns per-entity modifier chains, the
// bounded damage history, and emits floating feedback for every
// application.
type System struct {
	modifiers map[Entity][]*Modifier
	feedback  *Feedback
	logger    *zap.Logger

	history []HistoryEntry
	head    int
	count   int
}

func NewSystem(historySize int, feedback *Feedback, logger *zap.Logger) *System {
	if historySize <= 0 {
		historySize = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{
		modifiers: make(map[Entity][]*Modifier),
		feedback:  feedback,
		logger:    logger,
		history:   make([]HistoryEntry, historySize),
	}
}

// AddModifier attaches a modifier to an entity. Chains apply in
// registration order.
func (s *System) AddModifier(e Entity, m *Modifier, now float64) {
	if e == nil || m == nil {
		return
	}
	m.startedAt = now
	s.modifiers[e] = append(s.modifiers[e], m)
	s.logger.Debug("modifier added",
		zap.String("entity", e.Kind()),
		zap.String("name", m.Name),
		zap.Float64("multiplier", m.Multiplier),
		zap.Float64("reduction", m.Reduction))
}

// RemoveModifier detaches the named modifier, reporting whether it existed.
func (s *System) RemoveModifier(e Entity, name string) bool {
	mods := s.modifiers[e]
	for i, m := range mods {
		if m.Name == name {
			s.modifiers[e] = append(mods[:i], mods[i+1:]...)
			if len(s.modifiers[e]) == 0 {
				delete(s.modifiers, e)
			}
			return true
		}
	}
	return false
}

// Modifiers returns the entity's active modifier chain.
func (s *System) Modifiers(e Entity) []*Modifier {
	return s.modifiers[e]
}

// Update expires finished modifiers. Runs once per frame before any attack
// resolution, so an expired modifier never touches same-frame damage.
func (s *System) Update(now float64) {
	for e, mods := range s.modifiers {
		writeIdx := 0
		for _, m := range mods {
			if m.Expired(now) {
				s.logger.Debug("modifier expired",
					zap.String("entity", e.Kind()),
					zap.String("name", m.Name))
				continue
			}
			mods[writeIdx] = m
			writeIdx++
		}
		if writeIdx == 0 {
			delete(s.modifiers, e)
			continue
		}
		s.modifiers[e] = mods[:writeIdx]
	}
}

// CalculateDamage runs a base amount through the attacker's modifier
// chain, then the target's, each in registration order.
func (s *System) CalculateDamage(attacker, target Entity, base int) int {
	damage := float64(base)
	for _, m := range s.modifiers[attacker] {
		damage = m.Apply(damage)
	}
	for _, m := range s.modifiers[target] {
		damage = m.Apply(damage)
	}
	return int(math.Max(damage, 0))
}

// ProcessAttack resolves a direct attack from attacker to target. It
// returns false without side effects when either party is missing or dead
// or the attacker's cooldown has not elapsed.
func (s *System) ProcessAttack(attacker, target Entity, damageType DamageType, now float64) bool {
	if attacker == nil || target == nil {
		return false
	}
	if !attacker.IsAlive() || !target.IsAlive() {
		return false
	}
	if !attacker.CanAttack(now) {
		return false
	}
	attacker.MarkAttack(now)
	s.ApplyDamage(attacker, target, attacker.AttackDamage(), damageType, now)
	return true
}

// ApplyDamage pushes a flat amount through the attacker's and target's
// modifier chains, applies it, records history and emits feedback.
// Returns whether the target survived.
func (s *System) ApplyDamage(attacker, target Entity, amount int, damageType DamageType, now float64) bool {
	if target == nil || !target.IsAlive() {
		return false
	}
	damage := s.CalculateDamage(attacker, target, amount)
	survived := target.TakeDamage(damage, damageType, attacker)

	attackerKind := ""
	if attacker != nil {
		attackerKind = attacker.Kind()
	}
	s.record(HistoryEntry{
		AttackerKind: attackerKind,
		TargetKind:   target.Kind(),
		Damage:       damage,
		Type:         damageType,
		At:           now,
		Fatal:        !survived,
	})
	if s.feedback != nil {
		s.feedback.Add(target, damage, damageType, now)
	}
	s.logger.Debug("damage applied",
		zap.String("attacker", attackerKind),
		zap.String("target", target.Kind()),
		zap.Int("damage", damage),
		zap.String("type", damageType.String()),
		zap.Bool("fatal", !survived))
	return survived
}

// HealEntity heals through the negative-damage path and reports the amount
// actually gained after clamping to max health.
func (s *System) HealEntity(target Entity, amount int, now float64) int {
	if target == nil || !target.IsAlive() || amount < 0 {
		return 0
	}
	before := target.Health()
	target.TakeDamage(-amount, DamageHealing, nil)
	applied := target.Health() - before

	s.record(HistoryEntry{
		TargetKind: target.Kind(),
		Damage:     -applied,
		Type:       DamageHealing,
		At:         now,
	})
	if s.feedback != nil {
		s.feedback.Add(target, applied, DamageHealing, now)
	}
	s.logger.Debug("heal applied",
		zap.String("target", target.Kind()),
		zap.Int("requested", amount),
		zap.Int("applied", applied))
	return applied
}

func (s *System) record(entry HistoryEntry) {
	s.history[s.head] = entry
	s.head = (s.head + 1) % len(s.history)
	if s.count < len(s.history) {
		s.count++
	}
}

// History returns up to limit most recent entries, oldest first. A limit
// of 0 or less returns everything retained.
func (s *System) History(limit int) []HistoryEntry {
	if limit <= 0 || limit > s.count {
		limit = s.count
	}
	out := make([]HistoryEntry, 0, limit)
	start := s.head - limit
	if start < 0 {
		start += len(s.history)
	}
	for i := 0; i < limit; i++ {
		out = append(out, s.history[(start+i)%len(s.history)])
	}
	return out
}
