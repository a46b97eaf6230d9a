package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"alchemist/internal/collision"
	"alchemist/internal/combat"
	"alchemist/internal/config"
	"alchemist/internal/enemy"
	"alchemist/internal/magic"
	"alchemist/internal/pathfind"
	"alchemist/internal/player"
)

// playerSize is the side length of the player's collision box.
const playerSize = 40.0

// Game is the ebiten shell around the simulation core. It owns the
// monotonic simulation clock and drives every system in a fixed order;
// rendering only reads snapshots.
type Game struct {
	config *config.Config
	logger *zap.Logger

	world    *collision.World
	player   *player.Player
	enemies  *enemy.Manager
	combat   *combat.System
	feedback *combat.Feedback
	effects  *magic.Tracker
	casting  *magic.System
	bolts    *magic.Simulator

	input   *InputHandler
	simTime float64 // milliseconds
}

func New(cfg *config.Config, registry *magic.Registry, enemyDefs map[string]*enemy.Definition, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}

	world := collision.NewWorld()
	feedback := combat.NewFeedback(cfg.Feedback.FloatingDurationMs, cfg.Feedback.FloatingRiseSpeed)
	combatSys := combat.NewSystem(cfg.Combat.HistorySize, feedback, logger)
	effects := magic.NewTracker()
	bolts := magic.NewSimulator(combatSys, effects, cfg.World.WorldBound, logger)
	casting := magic.NewSystem(registry, combatSys, effects, bolts, cfg, logger)

	g := &Game{
		config:   cfg,
		logger:   logger,
		world:    world,
		player:   player.New(cfg.Player, 0, 0),
		enemies:  enemy.NewManager(logger),
		combat:   combatSys,
		feedback: feedback,
		effects:  effects,
		casting:  casting,
		bolts:    bolts,
	}
	g.input = NewInputHandler(g)
	g.buildArena(enemyDefs)
	return g
}

// buildArena lays out the demo obstacle course and spawns one enemy of
// each kind around the player.
func (g *Game) buildArena(enemyDefs map[string]*enemy.Definition) {
	tile := g.config.GetTileSize()

	// Pillars and two wall segments around the spawn area
	g.world.AddObstacle(6*tile, 0, tile, tile)
	g.world.AddObstacle(-5*tile, 3*tile, tile, tile)
	g.world.AddObstacle(2*tile, -4*tile, tile, 3*tile)
	g.world.AddObstacle(-3*tile, -2*tile, 3*tile, tile)
	g.world.AddObstacle(4*tile, 5*tile, 5*tile, tile)

	deps := enemy.Deps{
		World:   g.world,
		Effects: g.effects,
		Combat:  g.combat,
		Bolts:   &boltSpawner{sim: g.bolts},
		Logger:  g.logger,
	}

	spawns := []struct {
		kind string
		x, y float64
	}{
		{"demon", 10 * tile, 2 * tile},
		{"demon", -8 * tile, -6 * tile},
		{"fireworm", 14 * tile, -4 * tile},
		{"fireworm", -4 * tile, 10 * tile},
	}
	for _, s := range spawns {
		def, ok := enemyDefs[s.kind]
		if !ok {
			g.logger.Warn("unknown enemy kind in spawn table", zap.String("kind", s.kind))
			continue
		}
		d := deps
		d.Finder = pathfind.NewGridFinder(g.world, tile, def.Width, def.Height, g.config.EnemyAI.PathNodeBudget)
		g.enemies.Add(enemy.New(def, s.x, s.y, d, g.config.EnemyAI))
	}
}

// Update advances the simulation by one frame.
func (g *Game) Update() error {
	g.step(1.0/float64(ebiten.TPS()), g.input.Poll())
	return nil
}

// step runs one simulation frame: clock, expiry, commands, player,
// enemies, projectiles, feedback. dt is in seconds.
func (g *Game) step(dt float64, in frameInput) {
	g.simTime += dt * 1000
	now := g.simTime

	g.combat.Update(now)
	g.casting.Update(now)

	for _, e := range in.selections {
		g.casting.SelectElement(e, now)
	}
	if in.clear {
		g.casting.ClearSelection()
	}
	if in.cast {
		g.casting.CastMagic(g.player, g.enemies.Living(), now)
	}

	g.movePlayer(dt, in.moveX, in.moveY)
	g.player.Update(dt)

	g.enemies.Update(dt, now, g.player)

	targets := append(g.enemies.Living(), g.player)
	g.bolts.Update(dt, now, targets)

	g.feedback.Update(now)
}

// movePlayer applies the held movement direction with the same
// axis-separated sliding the enemies use.
func (g *Game) movePlayer(dt, dx, dy float64) {
	if !g.player.IsAlive() || (dx == 0 && dy == 0) {
		return
	}
	if dx != 0 {
		g.player.SetFacing(dx > 0)
	}

	length := math.Hypot(dx, dy)
	stepX := dx / length * g.player.MoveSpeed() * dt
	stepY := dy / length * g.player.MoveSpeed() * dt

	switch {
	case g.world.CanMoveTo(playerSize, playerSize, g.player.X+stepX, g.player.Y+stepY):
		g.player.X += stepX
		g.player.Y += stepY
	case stepX != 0 && g.world.CanMoveTo(playerSize, playerSize, g.player.X+stepX, g.player.Y):
		g.player.X += stepX
	case stepY != 0 && g.world.CanMoveTo(playerSize, playerSize, g.player.X, g.player.Y+stepY):
		g.player.Y += stepY
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}
