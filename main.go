package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"alchemist/internal/config"
	"alchemist/internal/enemy"
	"alchemist/internal/game"
	"alchemist/internal/magic"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := loadConfig(logger)
	registry := magic.MustLoadRegistry("assets/spells.yaml")
	enemyDefs := enemy.MustLoadDefinitions("assets/enemies.yaml")

	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)

	g := game.New(cfg, registry, enemyDefs, logger)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(logger *zap.Logger) *config.Config {
	if _, err := os.Stat("config.yaml"); err != nil {
		logger.Warn("config.yaml not found, using built-in defaults")
		return config.Default()
	}
	return config.MustLoadConfig("config.yaml")
}
