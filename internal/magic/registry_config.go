package magic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpellDefinition is the YAML form of one combination-table entry.
type SpellDefinition struct {
	Name        string    `yaml:"name"`
	Elements    [2]string `yaml:"elements"`
	Kind        string    `yaml:"kind"`
	Damage      int       `yaml:"damage"`
	Healing     int       `yaml:"healing"`
	DurationMs  float64   `yaml:"duration_ms"`
	Radius      float64   `yaml:"radius"`
	CooldownSec float64   `yaml:"cooldown_sec"`
}

type spellFile struct {
	Spells map[string]*SpellDefinition `yaml:"spells"`
}

// LoadRegistry builds a combination table from a YAML spell file.
func LoadRegistry(filename string) (*Registry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read spell file %s: %w", filename, err)
	}

	var file spellFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse spell file %s: %w", filename, err)
	}
	if len(file.Spells) == 0 {
		return nil, fmt.Errorf("spell file %s defines no spells", filename)
	}

	registry := NewRegistry()
	for id, def := range file.Spells {
		desc, err := def.toDescriptor(id)
		if err != nil {
			return nil, fmt.Errorf("spell %q: %w", id, err)
		}
		registry.Register(desc)
	}
	return registry, nil
}

// MustLoadRegistry loads the spell file and panics on error.
func MustLoadRegistry(filename string) *Registry {
	registry, err := LoadRegistry(filename)
	if err != nil {
		panic("failed to load spells: " + err.Error())
	}
	return registry
}

func (def *SpellDefinition) toDescriptor(id string) (*EffectDescriptor, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	first, err := ParseElement(def.Elements[0])
	if err != nil {
		return nil, err
	}
	second, err := ParseElement(def.Elements[1])
	if err != nil {
		return nil, err
	}
	kind, err := ParseEffectKind(def.Kind)
	if err != nil {
		return nil, err
	}
	if def.CooldownSec < 0 {
		return nil, fmt.Errorf("negative cooldown %.2f", def.CooldownSec)
	}

	switch kind {
	case KindProjectile, KindArea:
		if def.Damage <= 0 {
			return nil, fmt.Errorf("%s spell needs positive damage", def.Kind)
		}
	case KindHealing:
		if def.Healing <= 0 {
			return nil, fmt.Errorf("healing spell needs positive healing")
		}
	case KindShield, KindInvisibility:
		if def.DurationMs <= 0 {
			return nil, fmt.Errorf("%s spell needs positive duration", def.Kind)
		}
	}

	cooldown := def.CooldownSec
	if cooldown == 0 {
		cooldown = 3.0
	}

	return &EffectDescriptor{
		ID:          id,
		Name:        def.Name,
		Kind:        kind,
		Elements:    [2]Element{first, second},
		Damage:      def.Damage,
		Healing:     def.Healing,
		DurationMs:  def.DurationMs,
		Radius:      def.Radius,
		CooldownSec: cooldown,
	}, nil
}
