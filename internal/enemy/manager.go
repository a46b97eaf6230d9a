package enemy

import (
	"go.uber.org/zap"

	"alchemist/internal/combat"
)

// Manager owns the live enemy set. Each enemy updates behind its own
// recover boundary, so one faulty actor cannot halt the frame.
type Manager struct {
	enemies []*Enemy
	logger  *zap.Logger
}

func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

func (m *Manager) Add(e *Enemy) {
	m.enemies = append(m.enemies, e)
}

func (m *Manager) Enemies() []*Enemy {
	return m.enemies
}

// Living returns the living enemies as combat entities, for spell target
// candidate lists.
func (m *Manager) Living() []combat.Entity {
	out := make([]combat.Entity, 0, len(m.enemies))
	for _, e := range m.enemies {
		if e.IsAlive() {
			out = append(out, e)
		}
	}
	return out
}

// Update advances every enemy and removes those whose death fade has
// completed.
func (m *Manager) Update(dt, now float64, target combat.Entity) {
	for _, e := range m.enemies {
		m.safeUpdate(e, dt, now, target)
	}

	writeIdx := 0
	for _, e := range m.enemies {
		if e.ShouldRemove(now) {
			m.logger.Debug("enemy removed",
				zap.String("id", e.ID),
				zap.String("kind", e.Kind()))
			continue
		}
		m.enemies[writeIdx] = e
		writeIdx++
	}
	for i := writeIdx; i < len(m.enemies); i++ {
		m.enemies[i] = nil
	}
	m.enemies = m.enemies[:writeIdx]
}

func (m *Manager) safeUpdate(e *Enemy, dt, now float64, target combat.Entity) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("enemy update panicked",
				zap.String("id", e.ID),
				zap.String("kind", e.Kind()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	e.Update(dt, now, target, m.enemies)
}
