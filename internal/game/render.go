package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"alchemist/internal/combat"
	"alchemist/internal/enemy"
	"alchemist/internal/magic"
)

var (
	colorObstacle  = color.RGBA{70, 70, 80, 255}
	colorPlayer    = color.RGBA{70, 130, 230, 255}
	colorShield    = color.RGBA{160, 160, 170, 220}
	colorHealthBar = color.RGBA{60, 200, 90, 255}
	colorManaBar   = color.RGBA{80, 140, 255, 255}
	colorBarBack   = color.RGBA{30, 30, 36, 200}
)

func elementColor(e magic.Element) color.RGBA {
	switch e {
	case magic.ElementFire:
		return color.RGBA{255, 120, 40, 255}
	case magic.ElementWater:
		return color.RGBA{80, 160, 255, 255}
	case magic.ElementStone:
		return color.RGBA{150, 140, 120, 255}
	default:
		return color.RGBA{200, 200, 200, 255}
	}
}

func feedbackColor(t combat.DamageType) color.RGBA {
	switch t {
	case combat.DamageFire:
		return color.RGBA{255, 120, 40, 255}
	case combat.DamageWater:
		return color.RGBA{80, 160, 255, 255}
	case combat.DamageArea:
		return color.RGBA{200, 120, 255, 255}
	case combat.DamageHealing:
		return color.RGBA{100, 255, 120, 255}
	case combat.DamagePhysical:
		return color.RGBA{255, 220, 80, 255}
	default:
		return color.RGBA{220, 220, 255, 255}
	}
}

func stateColor(s enemy.State) color.RGBA {
	switch s {
	case enemy.StatePursuing:
		return color.RGBA{230, 160, 60, 255}
	case enemy.StateAttacking:
		return color.RGBA{220, 70, 60, 255}
	case enemy.StateDead:
		return color.RGBA{120, 120, 120, 255}
	default:
		return color.RGBA{90, 160, 90, 255}
	}
}

func scaleAlpha(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// Draw renders the debug view: obstacles, entities, projectiles, effect
// animations, floating numbers and the HUD. The camera follows the
// player.
func (g *Game) Draw(screen *ebiten.Image) {
	now := g.simTime
	camX := float64(g.config.GetScreenWidth())/2 - g.player.X
	camY := float64(g.config.GetScreenHeight())/2 - g.player.Y

	for _, o := range g.world.Obstacles() {
		minX, minY, _, _ := o.Box.GetBounds()
		vector.DrawFilledRect(screen,
			float32(minX+camX), float32(minY+camY),
			float32(o.Box.Width), float32(o.Box.Height), colorObstacle, false)
	}

	for _, w := range g.casting.Whirlwinds() {
		g.drawWhirlwind(screen, w, now, camX, camY)
	}

	for _, e := range g.enemies.Enemies() {
		g.drawEnemy(screen, e, now, camX, camY)
	}

	g.drawPlayer(screen, camX, camY)

	for _, p := range g.bolts.Projectiles() {
		vector.DrawFilledCircle(screen,
			float32(p.X+camX), float32(p.Y+camY), 6, elementColor(p.Element), false)
	}

	for _, f := range g.feedback.Records() {
		g.drawFloatingText(screen, f, now, camX, camY)
	}

	g.drawHUD(screen, now)
}

func (g *Game) drawWhirlwind(screen *ebiten.Image, w *magic.Whirlwind, now, camX, camY float64) {
	cx := float32(w.X + camX)
	cy := float32(w.Y + camY)
	progress := w.Progress(now)
	c := feedbackColor(combat.DamageArea)

	switch w.Phase(now) {
	case magic.PhaseRing:
		// Ring expands to full radius over the first third
		r := float32(w.Radius * progress * 3)
		vector.StrokeCircle(screen, cx, cy, r, 3, c, false)
	case magic.PhaseSpiral:
		vector.StrokeCircle(screen, cx, cy, float32(w.Radius), 2, c, false)
		angle := progress * 6 * math.Pi
		tipX := cx + float32(math.Cos(angle)*w.Radius)
		tipY := cy + float32(math.Sin(angle)*w.Radius)
		vector.StrokeLine(screen, cx, cy, tipX, tipY, 2, c, false)
	case magic.PhaseFade:
		alpha := (1 - progress) * 3
		vector.DrawFilledCircle(screen, cx, cy, float32(w.Radius), scaleAlpha(c, alpha*0.4), false)
	}
}

func (g *Game) drawEnemy(screen *ebiten.Image, e *enemy.Enemy, now, camX, camY float64) {
	def := e.Definition()
	alpha := e.FadeAlpha(now)
	body := scaleAlpha(stateColor(e.State()), alpha)

	vector.DrawFilledRect(screen,
		float32(e.X-def.Width/2+camX), float32(e.Y-def.Height/2+camY),
		float32(def.Width), float32(def.Height), body, false)

	if e.State() != enemy.StateDead {
		g.drawBar(screen,
			e.X-def.Width/2+camX, e.Y-def.Height/2-10+camY, def.Width, 5,
			float64(e.Health())/float64(e.MaxHealth()), colorHealthBar)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, camX, camY float64) {
	x := float32(g.player.X - playerSize/2 + camX)
	y := float32(g.player.Y - playerSize/2 + camY)

	body := colorPlayer
	if g.effects.IsInvisible(g.player) {
		body = scaleAlpha(body, 0.35)
	}
	vector.DrawFilledRect(screen, x, y, playerSize, playerSize, body, false)

	if g.effects.IsShielded(g.player) {
		vector.StrokeCircle(screen,
			float32(g.player.X+camX), float32(g.player.Y+camY),
			playerSize*0.9, 3, colorShield, false)
	}
}

func (g *Game) drawFloatingText(screen *ebiten.Image, f *combat.FloatingText, now, camX, camY float64) {
	c := scaleAlpha(feedbackColor(f.Type), f.Alpha(now))
	y := f.Y - 20 - g.feedback.RiseOffset(f, now)

	value := f.Value
	prefix := "-"
	if f.Type == combat.DamageHealing {
		prefix = "+"
	}
	ebitext.Draw(screen, fmt.Sprintf("%s%d", prefix, value),
		basicfont.Face7x13, int(f.X+camX), int(y+camY), c)
}

func (g *Game) drawBar(screen *ebiten.Image, x, y, width, height, ratio float64, c color.RGBA) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), colorBarBack, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*ratio), float32(height), c, false)
}

func (g *Game) drawHUD(screen *ebiten.Image, now float64) {
	g.drawBar(screen, 20, 20, 200, 14,
		float64(g.player.Health())/float64(g.player.MaxHealth()), colorHealthBar)
	g.drawBar(screen, 20, 40, 200, 14,
		g.player.Mana()/g.player.MaxMana(), colorManaBar)

	y := 74
	selection := "selection:"
	for _, e := range g.casting.Selection() {
		selection += " " + e.String()
	}
	ebitext.Draw(screen, selection, basicfont.Face7x13, 20, y, color.White)
	y += 16

	if d := g.casting.ReadyEffect(); d != nil {
		line := d.Name
		if !g.casting.Cooldowns().IsReady(d.ID, now) {
			line += fmt.Sprintf(" (recharging %.1fs)", g.casting.Cooldowns().Remaining(d.ID, now))
		} else {
			line += " - ready"
		}
		ebitext.Draw(screen, line, basicfont.Face7x13, 20, y, color.White)
		y += 16
	}

	if !g.player.IsAlive() {
		ebitext.Draw(screen, "you died", basicfont.Face7x13,
			g.config.GetScreenWidth()/2-30, g.config.GetScreenHeight()/2, color.RGBA{220, 70, 60, 255})
	}

	ebitext.Draw(screen, "1 water  2 fire  3 stone  space cast  c clear",
		basicfont.Face7x13, 20, g.config.GetScreenHeight()-20, color.RGBA{160, 160, 160, 255})
}
