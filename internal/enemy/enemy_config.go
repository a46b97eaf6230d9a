package enemy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Behavior selects the attack style of an enemy kind.
type Behavior string

const (
	BehaviorMelee  Behavior = "melee"
	BehaviorRanged Behavior = "ranged"
)

// Definition holds the tunables of one enemy kind, loaded from
// assets/enemies.yaml. Ranges are in pixels, times in milliseconds,
// speeds in pixels per second.
type Definition struct {
	Name             string   `yaml:"name"`
	Behavior         Behavior `yaml:"behavior"`
	MaxHealth        int      `yaml:"max_health"`
	Speed            float64  `yaml:"speed"`
	DetectionRange   float64  `yaml:"detection_range"`
	AttackRange      float64  `yaml:"attack_range"`
	AttackDamage     int      `yaml:"attack_damage"`
	AttackCooldownMs float64  `yaml:"attack_cooldown_ms"`
	AttackHoldMs     float64  `yaml:"attack_hold_ms"`
	ProjectileDamage int      `yaml:"projectile_damage"`
	ProjectileSpeed  float64  `yaml:"projectile_speed"`
	Width            float64  `yaml:"width"`
	Height           float64  `yaml:"height"`
}

type enemyFile struct {
	Enemies map[string]*Definition `yaml:"enemies"`
}

// LoadDefinitions reads and validates the enemy kind file.
func LoadDefinitions(filename string) (map[string]*Definition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read enemy file %s: %w", filename, err)
	}

	var file enemyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse enemy file %s: %w", filename, err)
	}
	if len(file.Enemies) == 0 {
		return nil, fmt.Errorf("enemy file %s defines no enemies", filename)
	}

	for key, def := range file.Enemies {
		if def.Name == "" {
			def.Name = key
		}
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("enemy %q: %w", key, err)
		}
	}
	return file.Enemies, nil
}

// MustLoadDefinitions loads the enemy kind file and panics on error.
func MustLoadDefinitions(filename string) map[string]*Definition {
	defs, err := LoadDefinitions(filename)
	if err != nil {
		panic("failed to load enemies: " + err.Error())
	}
	return defs
}

func (def *Definition) validate() error {
	if def.Behavior != BehaviorMelee && def.Behavior != BehaviorRanged {
		return fmt.Errorf("unknown behavior %q", def.Behavior)
	}
	if def.MaxHealth <= 0 {
		return fmt.Errorf("max_health must be positive, got %d", def.MaxHealth)
	}
	if def.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %.1f", def.Speed)
	}
	if def.DetectionRange < def.AttackRange {
		return fmt.Errorf("detection_range %.0f smaller than attack_range %.0f",
			def.DetectionRange, def.AttackRange)
	}
	if def.AttackDamage <= 0 {
		return fmt.Errorf("attack_damage must be positive, got %d", def.AttackDamage)
	}
	if def.Behavior == BehaviorRanged && def.ProjectileSpeed <= 0 {
		return fmt.Errorf("ranged enemy needs positive projectile_speed")
	}
	if def.Width <= 0 || def.Height <= 0 {
		return fmt.Errorf("collision size must be positive, got %.0fx%.0f", def.Width, def.Height)
	}
	return nil
}

// DefaultDefinitions returns the built-in enemy kinds. The YAML file
// produces the same table and may override it at startup.
func DefaultDefinitions() map[string]*Definition {
	return map[string]*Definition{
		"demon": {
			Name:             "demon",
			Behavior:         BehaviorMelee,
			MaxHealth:        200,
			Speed:            100,
			DetectionRange:   8 * 64,
			AttackRange:      3 * 64,
			AttackDamage:     25,
			AttackCooldownMs: 2000,
			AttackHoldMs:     400,
			Width:            48,
			Height:           48,
		},
		"fireworm": {
			Name:             "fireworm",
			Behavior:         BehaviorRanged,
			MaxHealth:        200,
			Speed:            80,
			DetectionRange:   12 * 64,
			AttackRange:      8 * 64,
			AttackDamage:     20,
			AttackCooldownMs: 3000,
			AttackHoldMs:     500,
			ProjectileDamage: 20,
			ProjectileSpeed:  200,
			Width:            48,
			Height:           48,
		},
	}
}
