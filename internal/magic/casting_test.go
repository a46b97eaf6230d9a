package magic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemist/internal/combat"
	"alchemist/internal/config"
)

type stubEntity struct {
	kind      string
	health    int
	maxHealth int
	x, y      float64
}

func newStubEntity(kind string, health float64, x, y float64) *stubEntity {
	return &stubEntity{kind: kind, health: int(health), maxHealth: int(health), x: x, y: y}
}

func (e *stubEntity) TakeDamage(amount int, damageType combat.DamageType, source combat.Entity) bool {
	if e.health <= 0 {
		return false
	}
	e.health -= amount
	if e.health > e.maxHealth {
		e.health = e.maxHealth
	}
	if e.health < 0 {
		e.health = 0
	}
	return e.health > 0
}

func (e *stubEntity) CanAttack(now float64) bool   { return true }
func (e *stubEntity) MarkAttack(now float64)       {}
func (e *stubEntity) AttackDamage() int            { return 0 }
func (e *stubEntity) Health() int                  { return e.health }
func (e *stubEntity) MaxHealth() int               { return e.maxHealth }
func (e *stubEntity) IsAlive() bool                { return e.health > 0 }
func (e *stubEntity) Kind() string                 { return e.kind }
func (e *stubEntity) Position() (float64, float64) { return e.x, e.y }

type stubCaster struct {
	stubEntity
	mana        int
	facingRight bool
}

func newStubCaster(mana int) *stubCaster {
	return &stubCaster{
		stubEntity:  *newStubEntity("player", 100, 0, 0),
		mana:        mana,
		facingRight: true,
	}
}

func (c *stubCaster) SpendMana(amount int) bool {
	if c.mana < amount {
		return false
	}
	c.mana -= amount
	return true
}

func (c *stubCaster) FacingRight() bool { return c.facingRight }

type castingFixture struct {
	system   *System
	combat   *combat.System
	feedback *combat.Feedback
	effects  *Tracker
	sim      *Simulator
}

func newCastingFixture() *castingFixture {
	cfg := config.Default()
	fb := combat.NewFeedback(cfg.Feedback.FloatingDurationMs, cfg.Feedback.FloatingRiseSpeed)
	combatSys := combat.NewSystem(cfg.Combat.HistorySize, fb, nil)
	effects := NewTracker()
	sim := NewSimulator(combatSys, effects, cfg.World.WorldBound, nil)
	return &castingFixture{
		system:   NewSystem(DefaultRegistry(), combatSys, effects, sim, cfg, nil),
		combat:   combatSys,
		feedback: fb,
		effects:  effects,
		sim:      sim,
	}
}

func (f *castingFixture) selectPair(a, b Element, now float64) SelectStatus {
	f.system.SelectElement(a, now)
	return f.system.SelectElement(b, now+200)
}

func TestSelectPairResolvesEffect(t *testing.T) {
	f := newCastingFixture()

	status := f.selectPair(ElementFire, ElementFire, 0)

	require.Equal(t, SelectReady, status)
	require.NotNil(t, f.system.ReadyEffect())
	assert.Equal(t, "fireball", f.system.ReadyEffect().ID)
}

func TestSelectUnknownPairClearsBuffer(t *testing.T) {
	cfg := config.Default()
	fb := combat.NewFeedback(cfg.Feedback.FloatingDurationMs, cfg.Feedback.FloatingRiseSpeed)
	combatSys := combat.NewSystem(cfg.Combat.HistorySize, fb, nil)
	effects := NewTracker()
	sim := NewSimulator(combatSys, effects, cfg.World.WorldBound, nil)

	registry := NewRegistry()
	registry.Register(&EffectDescriptor{
		ID:       "fireball",
		Name:     "Fireball",
		Kind:     KindProjectile,
		Elements: [2]Element{ElementFire, ElementFire},
		Damage:   25,
	})
	system := NewSystem(registry, combatSys, effects, sim, cfg, nil)

	system.SelectElement(ElementWater, 0)
	status := system.SelectElement(ElementStone, 200)

	assert.Equal(t, SelectInvalid, status)
	assert.Empty(t, system.Selection())
	assert.Nil(t, system.ReadyEffect())
}

func TestSelectDebouncesRepeatedToken(t *testing.T) {
	f := newCastingFixture()

	assert.Equal(t, SelectPending, f.system.SelectElement(ElementFire, 0))
	assert.Equal(t, SelectIgnored, f.system.SelectElement(ElementFire, 50))
	assert.Equal(t, SelectReady, f.system.SelectElement(ElementFire, 150))
}

func TestThirdTokenRestartsSelection(t *testing.T) {
	f := newCastingFixture()

	f.selectPair(ElementFire, ElementFire, 0)
	status := f.system.SelectElement(ElementStone, 400)

	assert.Equal(t, SelectPending, status)
	require.Len(t, f.system.Selection(), 1)
	assert.Equal(t, ElementStone, f.system.Selection()[0])
}

func TestCastDeductsManaAndStartsCooldown(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(100)
	f.selectPair(ElementFire, ElementFire, 0)

	d, ok := f.system.CastMagic(caster, nil, 300)

	require.True(t, ok)
	assert.Equal(t, "fireball", d.ID)
	assert.Equal(t, 90, caster.mana)
	assert.False(t, f.system.Cooldowns().IsReady("fireball", 300))
	assert.True(t, f.system.Cooldowns().IsReady("fireball", 3300))
	assert.Empty(t, f.system.Selection())
}

func TestCastWithoutManaClearsSelection(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(5)
	f.selectPair(ElementFire, ElementFire, 0)

	d, ok := f.system.CastMagic(caster, nil, 300)

	assert.Nil(t, d)
	assert.False(t, ok)
	assert.Equal(t, 5, caster.mana)
	assert.Empty(t, f.system.Selection())
	assert.Empty(t, f.sim.Projectiles())
	// cooldown untouched by the failed attempt
	assert.True(t, f.system.Cooldowns().IsReady("fireball", 300))
}

func TestCastOnCooldownFailsButClearsSelection(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(100)

	f.selectPair(ElementFire, ElementFire, 0)
	_, ok := f.system.CastMagic(caster, nil, 300)
	require.True(t, ok)

	f.selectPair(ElementFire, ElementFire, 1000)
	d, ok := f.system.CastMagic(caster, nil, 1500)

	assert.Nil(t, d)
	assert.False(t, ok)
	assert.Equal(t, 90, caster.mana)
	assert.Empty(t, f.system.Selection())
}

func TestCastWithoutReadyEffectFails(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(100)

	f.system.SelectElement(ElementFire, 0)
	d, ok := f.system.CastMagic(caster, nil, 100)

	assert.Nil(t, d)
	assert.False(t, ok)
	assert.Empty(t, f.system.Selection())
}

func TestCastFireballAimsFromFacing(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(100)

	f.selectPair(ElementFire, ElementFire, 0)
	_, ok := f.system.CastMagic(caster, nil, 300)
	require.True(t, ok)

	projectiles := f.sim.Projectiles()
	require.Len(t, projectiles, 1)
	vx, vy := projectiles[0].Velocity()
	assert.Positive(t, vx)
	assert.Zero(t, vy)
	assert.Equal(t, ElementFire, projectiles[0].Element)

	caster.facingRight = false
	f.selectPair(ElementWater, ElementWater, 4000)
	_, ok = f.system.CastMagic(caster, nil, 4300)
	require.True(t, ok)

	projectiles = f.sim.Projectiles()
	require.Len(t, projectiles, 2)
	vx, _ = projectiles[1].Velocity()
	assert.Negative(t, vx)
}

func TestCastHealingRestoresCasterHealth(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(100)
	caster.health = 40

	f.selectPair(ElementFire, ElementWater, 0)
	d, ok := f.system.CastMagic(caster, nil, 300)

	require.True(t, ok)
	assert.Equal(t, "healing", d.ID)
	assert.Equal(t, 90, caster.Health())

	records := f.feedback.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 50, records[0].Value)
}

func TestCastShieldSingleSlotOverwrite(t *testing.T) {
	f := newCastingFixture()
	first := newStubCaster(100)
	second := newStubCaster(100)

	f.selectPair(ElementStone, ElementStone, 0)
	_, ok := f.system.CastMagic(first, nil, 300)
	require.True(t, ok)
	assert.True(t, f.effects.IsShielded(first))

	f.selectPair(ElementStone, ElementStone, 4000)
	_, ok = f.system.CastMagic(second, nil, 4300)
	require.True(t, ok)

	assert.False(t, f.effects.IsShielded(first))
	assert.True(t, f.effects.IsShielded(second))
}

func TestCastWhirlwindSkipsShieldedTarget(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(100)

	shielded := newStubEntity("demon", 200, 50, 0)
	plain := newStubEntity("demon", 200, -50, 0)
	f.effects.Activate(EffectShield, shielded, 2000, 0)

	f.selectPair(ElementFire, ElementStone, 0)
	_, ok := f.system.CastMagic(caster, []combat.Entity{shielded, plain}, 300)

	require.True(t, ok)
	assert.Equal(t, 200, shielded.Health())
	assert.Equal(t, 190, plain.Health())
}

func TestCastInvisibilityExpires(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(100)

	f.selectPair(ElementWater, ElementStone, 0)
	_, ok := f.system.CastMagic(caster, nil, 300)
	require.True(t, ok)

	f.system.Update(5299)
	assert.True(t, f.effects.IsInvisible(caster))

	f.system.Update(5300)
	assert.False(t, f.effects.IsInvisible(caster))
}

func TestCastWhirlwindDamagesInsideRadius(t *testing.T) {
	f := newCastingFixture()
	caster := newStubCaster(100)

	near := newStubEntity("demon", 200, 50, 0)
	edge := newStubEntity("demon", 200, 0, 120)
	far := newStubEntity("demon", 200, 200, 0)
	dead := newStubEntity("demon", 200, 10, 10)
	dead.health = 0

	f.selectPair(ElementFire, ElementStone, 0)
	d, ok := f.system.CastMagic(caster, []combat.Entity{near, edge, far, dead}, 300)

	require.True(t, ok)
	assert.Equal(t, "whirlwind", d.ID)
	assert.Equal(t, 190, near.Health())
	assert.Equal(t, 190, edge.Health())
	assert.Equal(t, 200, far.Health())
	assert.Equal(t, 0, dead.Health())

	whirlwinds := f.system.Whirlwinds()
	require.Len(t, whirlwinds, 1)
	assert.Equal(t, 128.0, whirlwinds[0].Radius)
	assert.Equal(t, PhaseRing, whirlwinds[0].Phase(500))
	assert.Equal(t, PhaseSpiral, whirlwinds[0].Phase(1800))
	assert.Equal(t, PhaseFade, whirlwinds[0].Phase(2800))

	f.system.Update(3300)
	assert.Empty(t, f.system.Whirlwinds())
}
