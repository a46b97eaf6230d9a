package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"alchemist/internal/magic"
)

// frameInput is one frame's worth of player commands, decoupled from
// ebiten so the simulation step can be driven directly in tests.
type frameInput struct {
	selections []magic.Element
	cast       bool
	clear      bool
	moveX      float64
	moveY      float64
}

// InputHandler translates keyboard state into simulation commands.
// Keys 1/2/3 select water/fire/stone, space casts, C clears.
type InputHandler struct {
	game *Game
}

func NewInputHandler(game *Game) *InputHandler {
	return &InputHandler{game: game}
}

// Poll reads the keyboard for the current frame.
func (ih *InputHandler) Poll() frameInput {
	var in frameInput

	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		in.selections = append(in.selections, magic.ElementWater)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		in.selections = append(in.selections, magic.ElementFire)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		in.selections = append(in.selections, magic.ElementStone)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.cast = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		in.clear = true
	}

	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.moveY += 1
	}

	return in
}
