package config

import "fmt"

// baseStatKeys are the nine growth stats shared by both archetypes.
var baseStatKeys = []string{
	"hp",
	"power",
	"regen",
	"damage_reduction",
	"evade_chance",
	"effect_chance",
	"special_chance",
	"special_damage",
	"speed",
}

var borgeTalentKeys = []string{
	"death_is_my_companion",
	"life_of_the_hunt",
	"unfair_advantage",
	"impeccable_impacts",
	"omen_of_defeat",
	"call_me_lucky_loot",
	"presence_of_god",
	"fires_of_war",
}

var borgeAttributeKeys = []string{
	"soul_of_ares",
	"essence_of_ylith",
	"helltouch_barrier",
	"lifedrain_inhalers",
	"spartan_lineage",
	"explosive_punches",
	"timeless_mastery",
	"book_of_baal",
	"superior_sensors",
}

var ozzyTalentKeys = []string{
	"death_is_my_companion",
	"tricksters_boon",
	"unfair_advantage",
	"thousand_needles",
	"omen_of_defeat",
	"call_me_lucky_loot",
	"dance_of_dashes",
}

var ozzyAttributeKeys = []string{
	"soul_of_snek",
	"living_off_the_land",
	"vectid_elixir",
	"wings_of_ibu",
	"exo_piercers",
	"shimmering_scorpion",
	"timeless_mastery",
	"book_of_baal",
}

var inscriptionKeys = []string{"i3", "i4", "i11", "i13", "i23", "i24", "i27"}

var modKeys = []string{"trample"}

var borgeRelicKeys = []string{"disk_of_dawn"}

var ozzyRelicKeys = []string{"wordless_echo"}

var gemKeys = []string{"attraction_gem"}

// DummyBuild returns the zeroed reference build for an archetype. Every key
// the stat model recognizes is present at level 0; validation diffs user
// builds against this.
func DummyBuild(archetype string) (*BuildConfig, error) {
	cfg := &BuildConfig{
		Meta:         Meta{Hunter: archetype},
		Stats:        zeroed(baseStatKeys),
		Inscriptions: zeroed(inscriptionKeys),
		Gems:         zeroed(gemKeys),
		Mods:         make(map[string]bool, len(modKeys)),
	}
	for _, k := range modKeys {
		cfg.Mods[k] = false
	}

	switch archetype {
	case "Borge":
		cfg.Talents = zeroed(borgeTalentKeys)
		cfg.Attributes = zeroed(borgeAttributeKeys)
		cfg.Relics = zeroed(borgeRelicKeys)
	case "Ozzy":
		cfg.Talents = zeroed(ozzyTalentKeys)
		cfg.Attributes = zeroed(ozzyAttributeKeys)
		cfg.Relics = zeroed(ozzyRelicKeys)
	default:
		return nil, fmt.Errorf("unknown archetype %q", archetype)
	}
	return cfg, nil
}

func zeroed(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}
