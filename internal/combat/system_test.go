package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntity struct {
	kind         string
	health       int
	maxHealth    int
	attackDamage int
	cooldownMs   float64
	lastAttack   float64
	x, y         float64
}

func newFakeEntity(kind string, health, attackDamage int, cooldownMs float64) *fakeEntity {
	return &fakeEntity{
		kind:         kind,
		health:       health,
		maxHealth:    health,
		attackDamage: attackDamage,
		cooldownMs:   cooldownMs,
		lastAttack:   -1e12,
	}
}

func (f *fakeEntity) TakeDamage(amount int, damageType DamageType, source Entity) bool {
	if f.health <= 0 {
		return false
	}
	f.health -= amount
	if f.health > f.maxHealth {
		f.health = f.maxHealth
	}
	if f.health < 0 {
		f.health = 0
	}
	return f.health > 0
}

func (f *fakeEntity) CanAttack(now float64) bool { return now-f.lastAttack >= f.cooldownMs }
func (f *fakeEntity) MarkAttack(now float64)     { f.lastAttack = now }
func (f *fakeEntity) AttackDamage() int          { return f.attackDamage }
func (f *fakeEntity) Health() int                { return f.health }
func (f *fakeEntity) MaxHealth() int             { return f.maxHealth }
func (f *fakeEntity) IsAlive() bool              { return f.health > 0 }
func (f *fakeEntity) Kind() string               { return f.kind }
func (f *fakeEntity) Position() (float64, float64) {
	return f.x, f.y
}

func newTestSystem() (*System, *Feedback) {
	fb := NewFeedback(2500, 20)
	return NewSystem(256, fb, nil), fb
}

func TestProcessAttackAppliesAttackerDamage(t *testing.T) {
	s, _ := newTestSystem()
	attacker := newFakeEntity("demon", 200, 25, 2000)
	target := newFakeEntity("player", 100, 10, 1000)

	ok := s.ProcessAttack(attacker, target, DamagePhysical, 0)

	require.True(t, ok)
	assert.Equal(t, 75, target.Health())
}

func TestProcessAttackRespectsCooldown(t *testing.T) {
	s, _ := newTestSystem()
	attacker := newFakeEntity("demon", 200, 25, 2000)
	target := newFakeEntity("player", 100, 10, 1000)

	require.True(t, s.ProcessAttack(attacker, target, DamagePhysical, 0))
	assert.False(t, s.ProcessAttack(attacker, target, DamagePhysical, 1999))
	assert.Equal(t, 75, target.Health())
	assert.True(t, s.ProcessAttack(attacker, target, DamagePhysical, 2000))
	assert.Equal(t, 50, target.Health())
}

func TestProcessAttackPreconditions(t *testing.T) {
	s, _ := newTestSystem()
	attacker := newFakeEntity("demon", 200, 25, 0)
	target := newFakeEntity("player", 100, 10, 0)
	dead := newFakeEntity("player", 100, 10, 0)
	dead.health = 0

	assert.False(t, s.ProcessAttack(nil, target, DamagePhysical, 0))
	assert.False(t, s.ProcessAttack(attacker, nil, DamagePhysical, 0))
	assert.False(t, s.ProcessAttack(attacker, dead, DamagePhysical, 0))
	assert.False(t, s.ProcessAttack(dead, target, DamagePhysical, 0))
	assert.Equal(t, 100, target.Health())
	assert.Empty(t, s.History(0))
}

func TestModifierChainAppliesInRegistrationOrder(t *testing.T) {
	s, _ := newTestSystem()
	attacker := newFakeEntity("player", 100, 0, 0)
	target := newFakeEntity("demon", 200, 0, 0)

	s.AddModifier(target, NewModifier("enrage", 1.5, 0, 0), 0)
	s.AddModifier(target, NewModifier("stoneskin", 1.0, 0.5, 0), 0)

	assert.Equal(t, 15, s.CalculateDamage(attacker, target, 20))
}

func TestAttackerModifiersApplyBeforeTargetModifiers(t *testing.T) {
	s, _ := newTestSystem()
	attacker := newFakeEntity("player", 100, 20, 0)
	target := newFakeEntity("demon", 200, 0, 0)

	s.AddModifier(attacker, NewModifier("might", 2.0, 0, 0), 0)
	assert.Equal(t, 40, s.CalculateDamage(attacker, target, 20))

	s.AddModifier(target, NewModifier("stoneskin", 1.0, 0.5, 0), 0)
	assert.Equal(t, 20, s.CalculateDamage(attacker, target, 20))

	require.True(t, s.ProcessAttack(attacker, target, DamagePhysical, 0))
	assert.Equal(t, 180, target.Health())
}

func TestModifierClampsDamageAtZero(t *testing.T) {
	s, _ := newTestSystem()
	target := newFakeEntity("demon", 200, 0, 0)

	s.AddModifier(target, NewModifier("aegis", 1.0, 2.0, 0), 0)

	assert.Equal(t, 0, s.CalculateDamage(nil, target, 40))
}

func TestModifierExpiryRunsBeforeAttacks(t *testing.T) {
	s, _ := newTestSystem()
	target := newFakeEntity("demon", 200, 0, 0)
	s.AddModifier(target, NewModifier("ward", 1.0, 1.0, 1000), 0)

	s.Update(999)
	assert.Equal(t, 0, s.CalculateDamage(nil, target, 30))

	s.Update(1000)
	assert.Equal(t, 30, s.CalculateDamage(nil, target, 30))
	assert.Empty(t, s.Modifiers(target))
}

func TestRemoveModifier(t *testing.T) {
	s, _ := newTestSystem()
	target := newFakeEntity("demon", 200, 0, 0)
	s.AddModifier(target, NewModifier("ward", 1.0, 0.5, 0), 0)

	assert.True(t, s.RemoveModifier(target, "ward"))
	assert.False(t, s.RemoveModifier(target, "ward"))
	assert.Equal(t, 30, s.CalculateDamage(nil, target, 30))
}

func TestHealEntityClampsToMaxHealth(t *testing.T) {
	s, fb := newTestSystem()
	target := newFakeEntity("player", 100, 0, 0)
	target.health = 80

	applied := s.HealEntity(target, 50, 100)

	assert.Equal(t, 20, applied)
	assert.Equal(t, 100, target.Health())

	records := fb.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 20, records[0].Value)
	assert.Equal(t, DamageHealing, records[0].Type)
}

func TestHealEntityAtFullHealthEmitsZeroRecord(t *testing.T) {
	s, fb := newTestSystem()
	target := newFakeEntity("player", 100, 0, 0)

	applied := s.HealEntity(target, 50, 0)

	assert.Equal(t, 0, applied)
	require.Len(t, fb.Records(), 1)
	assert.Equal(t, 0, fb.Records()[0].Value)
}

func TestHealEntityIgnoresDeadTargets(t *testing.T) {
	s, fb := newTestSystem()
	target := newFakeEntity("player", 100, 0, 0)
	target.health = 0

	assert.Equal(t, 0, s.HealEntity(target, 50, 0))
	assert.Empty(t, fb.Records())
}

func TestHistoryIsBounded(t *testing.T) {
	fb := NewFeedback(2500, 20)
	s := NewSystem(4, fb, nil)
	attacker := newFakeEntity("player", 100, 5, 0)
	target := newFakeEntity("demon", 1000, 0, 0)

	for i := 0; i < 6; i++ {
		s.ApplyDamage(attacker, target, 10+i, DamageMagical, float64(i))
	}

	history := s.History(0)
	require.Len(t, history, 4)
	assert.Equal(t, 12, history[0].Damage)
	assert.Equal(t, 15, history[3].Damage)

	last := s.History(2)
	require.Len(t, last, 2)
	assert.Equal(t, 14, last[0].Damage)
	assert.Equal(t, 15, last[1].Damage)
}

func TestHistoryRecordsFatalHits(t *testing.T) {
	s, _ := newTestSystem()
	attacker := newFakeEntity("player", 100, 5, 0)
	target := newFakeEntity("demon", 10, 0, 0)

	s.ApplyDamage(attacker, target, 25, DamageFire, 500)

	history := s.History(1)
	require.Len(t, history, 1)
	assert.True(t, history[0].Fatal)
	assert.Equal(t, "player", history[0].AttackerKind)
	assert.Equal(t, "demon", history[0].TargetKind)
	assert.Equal(t, 500.0, history[0].At)
}

func TestFeedbackExpiry(t *testing.T) {
	fb := NewFeedback(2500, 20)
	target := newFakeEntity("demon", 100, 0, 0)

	fb.Add(target, 25, DamageFire, 0)
	fb.Add(target, 10, DamagePhysical, 1000)

	fb.Update(2499)
	assert.Len(t, fb.Records(), 2)

	fb.Update(2500)
	require.Len(t, fb.Records(), 1)
	assert.Equal(t, 10, fb.Records()[0].Value)

	fb.Update(3500)
	assert.Empty(t, fb.Records())
}

func TestFeedbackAlphaFadesOverSecondHalf(t *testing.T) {
	fb := NewFeedback(2000, 20)
	target := newFakeEntity("demon", 100, 0, 0)
	fb.Add(target, 25, DamageFire, 0)
	r := fb.Records()[0]

	assert.Equal(t, 1.0, r.Alpha(500))
	assert.InDelta(t, 0.5, r.Alpha(1500), 1e-9)
	assert.InDelta(t, 0.0, r.Alpha(2000), 1e-9)
}
