package magic

import "fmt"

// Element is one castable element token.
type Element int

const (
	ElementNone Element = iota
	ElementFire
	ElementWater
	ElementStone
)

func (e Element) String() string {
	switch e {
	case ElementFire:
		return "fire"
	case ElementWater:
		return "water"
	case ElementStone:
		return "stone"
	default:
		return "none"
	}
}

// ParseElement maps a config name to an element token.
func ParseElement(name string) (Element, error) {
	switch name {
	case "fire":
		return ElementFire, nil
	case "water":
		return ElementWater, nil
	case "stone":
		return ElementStone, nil
	default:
		return ElementNone, fmt.Errorf("unknown element %q", name)
	}
}
