// Package stats derives usable combat numbers from a build's raw upgrade
// levels. Accessors re-derive state-dependent stats on every read; the only
// stateful exception is the transient attack-speed bonus, which is consumed
// through an explicit transition rather than hidden in a getter.
package stats

import "fmt"

// Archetype selects the hunter variant a build belongs to.
type Archetype int

const (
	Borge Archetype = iota
	Ozzy
)

// ParseArchetype maps the archetype id used in build files.
func ParseArchetype(name string) (Archetype, error) {
	switch name {
	case "Borge":
		return Borge, nil
	case "Ozzy":
		return Ozzy, nil
	default:
		return 0, fmt.Errorf("unknown archetype %q", name)
	}
}

func (a Archetype) String() string {
	switch a {
	case Borge:
		return "Borge"
	case Ozzy:
		return "Ozzy"
	default:
		return fmt.Sprintf("Archetype(%d)", int(a))
	}
}
