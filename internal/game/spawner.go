package game

import (
	"alchemist/internal/combat"
	"alchemist/internal/magic"
)

// boltSpawner adapts the projectile simulator to the enemy package's
// spawner seam.
type boltSpawner struct {
	sim *magic.Simulator
}

func (b *boltSpawner) SpawnBolt(x, y, aimX, aimY, speed float64, damage int, element magic.Element, source combat.Entity) {
	b.sim.Spawn(magic.NewProjectile(x, y, aimX, aimY, speed, damage, element, source))
}
