package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all simulation tunables loaded from config.yaml.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Magic    MagicConfig    `yaml:"magic"`
	Combat   CombatConfig   `yaml:"combat"`
	Feedback FeedbackConfig `yaml:"feedback"`
	EnemyAI  EnemyAIConfig  `yaml:"enemy_ai"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
}

type WorldConfig struct {
	TileSize   int     `yaml:"tile_size"`
	WorldBound float64 `yaml:"world_bound"`
}

type PlayerConfig struct {
	MaxHealth        int     `yaml:"max_health"`
	AttackDamage     int     `yaml:"attack_damage"`
	AttackCooldownMs float64 `yaml:"attack_cooldown_ms"`
	MoveSpeed        float64 `yaml:"move_speed"`
	MaxMana          float64 `yaml:"max_mana"`
	ManaRegenPerSec  float64 `yaml:"mana_regen_per_sec"`
}

type MagicConfig struct {
	ManaCost           int     `yaml:"mana_cost"`
	DefaultCooldownSec float64 `yaml:"default_cooldown_sec"`
	DebounceMs         float64 `yaml:"debounce_ms"`
	ProjectileSpeed    float64 `yaml:"projectile_speed"`
	ProjectileAimReach float64 `yaml:"projectile_aim_reach"`
}

type CombatConfig struct {
	HistorySize int `yaml:"history_size"`
}

type FeedbackConfig struct {
	FloatingDurationMs float64 `yaml:"floating_duration_ms"`
	FloatingRiseSpeed  float64 `yaml:"floating_rise_speed"`
}

type EnemyAIConfig struct {
	BlockedFramesBeforePath int     `yaml:"blocked_frames_before_path"`
	WaypointArrivalRadius   float64 `yaml:"waypoint_arrival_radius"`
	PathDiscardDistance     float64 `yaml:"path_discard_distance"`
	PathNodeBudget          int     `yaml:"path_node_budget"`
	DeathFadeMs             float64 `yaml:"death_fade_ms"`
	SeparationPadding       float64 `yaml:"separation_padding"`
}

// LoadConfig reads and parses the YAML config file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filename, err)
	}

	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error.
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	return config
}

// Default returns the built-in tunables. Tests use this directly; main
// falls back to it when no config file is present.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1024,
			ScreenHeight: 768,
			WindowTitle:  "Alchemist",
		},
		World: WorldConfig{
			TileSize:   64,
			WorldBound: 3000,
		},
		Player: PlayerConfig{
			MaxHealth:        100,
			AttackDamage:     25,
			AttackCooldownMs: 1000,
			MoveSpeed:        200,
			MaxMana:          100,
			ManaRegenPerSec:  5,
		},
		Magic: MagicConfig{
			ManaCost:           10,
			DefaultCooldownSec: 3.0,
			DebounceMs:         100,
			ProjectileSpeed:    150,
			ProjectileAimReach: 500,
		},
		Combat: CombatConfig{
			HistorySize: 256,
		},
		Feedback: FeedbackConfig{
			FloatingDurationMs: 2500,
			FloatingRiseSpeed:  20,
		},
		EnemyAI: EnemyAIConfig{
			BlockedFramesBeforePath: 4,
			WaypointArrivalRadius:   12,
			PathDiscardDistance:     160,
			PathNodeBudget:          4096,
			DeathFadeMs:             3000,
			SeparationPadding:       4,
		},
	}
}

// Helper accessors for commonly used values
func (c *Config) GetTileSize() float64 {
	return float64(c.World.TileSize)
}

func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetWorldBound() float64 {
	return c.World.WorldBound
}

func (c *Config) GetManaCost() int {
	return c.Magic.ManaCost
}

func (c *Config) GetProjectileSpeed() float64 {
	return c.Magic.ProjectileSpeed
}
