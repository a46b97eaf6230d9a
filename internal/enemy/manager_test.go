package enemy

import (
	"testing"

	"alchemist/internal/combat"
)

func TestManagerRemovesFadedEnemies(t *testing.T) {
	manager := NewManager(nil)
	demon := newTestEnemy("demon", 0, 0, Deps{})
	worm := newTestEnemy("fireworm", 500, 0, Deps{})
	manager.Add(demon)
	manager.Add(worm)
	target := NewMockTarget(100, 0)

	demon.TakeDamage(200, combat.DamageFire, nil)
	manager.Update(frameDt, 1000, target)

	if len(manager.Enemies()) != 2 {
		t.Fatalf("Expected dead enemy kept during fade, got %d", len(manager.Enemies()))
	}
	if len(manager.Living()) != 1 {
		t.Errorf("Expected one living enemy, got %d", len(manager.Living()))
	}

	manager.Update(frameDt, 4000, target)
	if len(manager.Enemies()) != 1 {
		t.Fatalf("Expected faded enemy removed, got %d", len(manager.Enemies()))
	}
	if manager.Enemies()[0] != worm {
		t.Error("Expected the surviving enemy to be the fireworm")
	}
}

func TestManagerIsolatesPanickingEnemy(t *testing.T) {
	manager := NewManager(nil)
	broken := newTestEnemy("demon", 0, 0, Deps{})
	broken.def = nil // forces a nil dereference inside Update
	healthy := newTestEnemy("demon", 50, 0, Deps{})
	manager.Add(broken)
	manager.Add(healthy)
	target := NewMockTarget(100, 0)

	manager.Update(frameDt, 0, target)

	if healthy.State() != StatePursuing {
		t.Errorf("Expected healthy enemy to keep updating, got %v", healthy.State())
	}
}
