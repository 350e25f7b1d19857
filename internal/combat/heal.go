package combat

import "fmt"

// HealSource tags healing so it lands in the right statistics bucket.
type HealSource int

const (
	HealRegen HealSource = iota
	HealLifesteal
	HealPotion
)

func (s HealSource) String() string {
	switch s {
	case HealRegen:
		return "regen"
	case HealLifesteal:
		return "lifesteal"
	case HealPotion:
		return "potion"
	default:
		return fmt.Sprintf("HealSource(%d)", int(s))
	}
}
