package stats

import (
	"math"

	"github.com/lawnchairsociety/huntersim/internal/config"
)

// Snapshot is the mutable run state the stat model depends on. The owning
// entity fills one in before each read so accessors stay pure functions of
// (sheet, snapshot).
type Snapshot struct {
	// CurrentStage is the stage the hunter is fighting on.
	CurrentStage int

	// TimesRevived is the cumulative death-and-revive count this run.
	TimesRevived int

	// MissingHP is max hp minus current hp, in absolute hit points.
	MissingHP float64
}

// OnBossStage reports whether boss-stage-only modifiers apply.
func (s Snapshot) OnBossStage() bool {
	return s.CurrentStage > 0 && s.CurrentStage%100 == 0
}

// Sheet derives final combat stats from a validated build config.
//
// Each final stat is its growth-curve value combined with additive flat
// bonuses first, then multiplicative percentage modifiers, in a fixed
// archetype-specific order. The order is load-bearing: reassociating the
// chain changes outputs and breaks regression comparisons.
type Sheet struct {
	archetype    Archetype
	stats        map[string]int
	talents      map[string]int
	attributes   map[string]int
	inscriptions map[string]int
	relics       map[string]int
	gems         map[string]int
	mods         map[string]bool

	// transientSpeedBonus is a one-shot attack-speed reduction granted by
	// combat events (Borge: fires_of_war on wave clear, Ozzy:
	// dance_of_dashes on evade). It is consumed exactly once via
	// ConsumeTransientSpeedBonus.
	transientSpeedBonus float64
}

// NewSheet builds a Sheet from a validated build config. The config must
// already have passed config.Validate; the sheet uses unchecked map access.
func NewSheet(cfg *config.BuildConfig) (*Sheet, error) {
	archetype, err := ParseArchetype(cfg.Meta.Hunter)
	if err != nil {
		return nil, err
	}
	return &Sheet{
		archetype:    archetype,
		stats:        cfg.Stats,
		talents:      cfg.Talents,
		attributes:   cfg.Attributes,
		inscriptions: cfg.Inscriptions,
		relics:       cfg.Relics,
		gems:         cfg.Gems,
		mods:         cfg.Mods,
	}, nil
}

// Archetype returns the hunter variant this sheet derives stats for.
func (s *Sheet) Archetype() Archetype { return s.archetype }

// Talent returns the invested level of a talent.
func (s *Sheet) Talent(name string) int { return s.talents[name] }

// Mod reports whether a boolean mod is enabled.
func (s *Sheet) Mod(name string) bool { return s.mods[name] }

// MaxHP is stage- and history-independent.
func (s *Sheet) MaxHP() float64 {
	switch s.archetype {
	case Borge:
		return math.Round(
			(42 +
				borgeHPCurve.At(s.stats["hp"]) +
				float64(s.inscriptions["i3"])*6 +
				float64(s.inscriptions["i27"])*24) *
				(1 + float64(s.attributes["soul_of_ares"])*0.01))
	case Ozzy:
		return math.Round(
			(16 +
				ozzyHPCurve.At(s.stats["hp"]) +
				float64(s.inscriptions["i3"])*6 +
				float64(s.inscriptions["i27"])*24) *
				(1 + float64(s.attributes["soul_of_snek"])*0.01))
	default:
		panic("stats: unknown archetype")
	}
}

// Power is both stage-conditional (attraction gem applies on boss stages
// only) and history-conditional (unfair advantage scales with revives).
func (s *Sheet) Power(snap Snapshot) float64 {
	var power float64
	switch s.archetype {
	case Borge:
		power = (3 +
			borgePowerCurve.At(s.stats["power"]) +
			float64(s.inscriptions["i13"]) +
			float64(s.talents["impeccable_impacts"])*2) *
			(1 + float64(s.attributes["soul_of_ares"])*0.002) *
			(1 + float64(s.relics["disk_of_dawn"])*0.01)
	case Ozzy:
		power = (2 +
			ozzyPowerCurve.At(s.stats["power"]) +
			float64(s.inscriptions["i13"])) *
			(1 + float64(s.attributes["soul_of_snek"])*0.002)
	default:
		panic("stats: unknown archetype")
	}
	power *= 1 + float64(s.talents["unfair_advantage"])*0.02*float64(snap.TimesRevived)
	if snap.OnBossStage() {
		power *= 1 + float64(s.gems["attraction_gem"])*0.05
	}
	return power
}

// Regen is history-conditional: part of it scales with missing hp.
func (s *Sheet) Regen(snap Snapshot) float64 {
	switch s.archetype {
	case Borge:
		return (0.02+
			borgeRegenCurve.At(s.stats["regen"])+
			float64(s.attributes["essence_of_ylith"])*0.03)*
			(1+float64(s.attributes["essence_of_ylith"])*0.0075) +
			float64(s.attributes["lifedrain_inhalers"])*0.0008*snap.MissingHP
	case Ozzy:
		return (0.1+
			ozzyRegenCurve.At(s.stats["regen"])+
			float64(s.attributes["living_off_the_land"])*0.03)*
			(1+float64(s.attributes["living_off_the_land"])*0.0075) +
			float64(s.attributes["vectid_elixir"])*0.0004*snap.MissingHP
	default:
		panic("stats: unknown archetype")
	}
}

// DamageReduction is a flat fraction subtracted from incoming damage.
func (s *Sheet) DamageReduction() float64 {
	switch s.archetype {
	case Borge:
		return float64(s.stats["damage_reduction"])*0.0144 +
			float64(s.attributes["spartan_lineage"])*0.015 +
			float64(s.inscriptions["i24"])*0.004
	case Ozzy:
		return float64(s.stats["damage_reduction"])*0.0035 +
			float64(s.attributes["wings_of_ibu"])*0.008
	default:
		panic("stats: unknown archetype")
	}
}

// EvadeChance is the probability of taking zero damage from a hit.
func (s *Sheet) EvadeChance() float64 {
	switch s.archetype {
	case Borge:
		return 0.01 +
			float64(s.stats["evade_chance"])*0.0034 +
			float64(s.attributes["superior_sensors"])*0.016
	case Ozzy:
		return 0.05 +
			float64(s.stats["evade_chance"])*0.0062 +
			float64(s.attributes["wings_of_ibu"])*0.012
	default:
		panic("stats: unknown archetype")
	}
}

// EffectChance gates on-hit procs (stun, lifesteal, sub-attacks).
func (s *Sheet) EffectChance() float64 {
	switch s.archetype {
	case Borge:
		return 0.04 +
			float64(s.stats["effect_chance"])*0.005 +
			float64(s.attributes["superior_sensors"])*0.012 +
			float64(s.inscriptions["i11"])*0.02
	case Ozzy:
		return 0.04 +
			float64(s.stats["effect_chance"])*0.0035 +
			float64(s.attributes["shimmering_scorpion"])*0.012 +
			float64(s.inscriptions["i11"])*0.02
	default:
		panic("stats: unknown archetype")
	}
}

// SpecialChance is the crit chance for Borge and the multistrike trigger
// chance for Ozzy.
func (s *Sheet) SpecialChance() float64 {
	switch s.archetype {
	case Borge:
		return 0.05 +
			float64(s.stats["special_chance"])*0.0018 +
			float64(s.attributes["explosive_punches"])*0.044 +
			float64(s.inscriptions["i4"])*0.0065
	case Ozzy:
		return 0.05 +
			float64(s.stats["special_chance"])*0.0038 +
			float64(s.attributes["exo_piercers"])*0.03 +
			float64(s.inscriptions["i4"])*0.0065
	default:
		panic("stats: unknown archetype")
	}
}

// SpecialDamage multiplies power on a crit (Borge) or sets the fraction of
// main-hand power a multistrike hit deals (Ozzy).
func (s *Sheet) SpecialDamage() float64 {
	switch s.archetype {
	case Borge:
		return 1.30 +
			float64(s.stats["special_damage"])*0.01 +
			float64(s.attributes["explosive_punches"])*0.08
	case Ozzy:
		return 0.25 +
			float64(s.stats["special_damage"])*0.01 +
			float64(s.attributes["exo_piercers"])*0.04
	default:
		panic("stats: unknown archetype")
	}
}

// Speed is the attack wind-up in simulated seconds. Lower is faster.
// The transient bonus is NOT included here; the scheduler applies it via
// ConsumeTransientSpeedBonus when it schedules the next attack.
func (s *Sheet) Speed() float64 {
	switch s.archetype {
	case Borge:
		return 5 -
			float64(s.stats["speed"])*0.03 -
			float64(s.inscriptions["i23"])*0.04
	case Ozzy:
		return 4 -
			float64(s.stats["speed"])*0.02 -
			float64(s.inscriptions["i23"])*0.04
	default:
		panic("stats: unknown archetype")
	}
}

// Lifesteal is the fraction of dealt damage returned as healing when the
// lifesteal proc fires.
func (s *Sheet) Lifesteal() float64 {
	switch s.archetype {
	case Borge:
		return float64(s.talents["life_of_the_hunt"])*0.06 +
			float64(s.attributes["book_of_baal"])*0.0111
	case Ozzy:
		return float64(s.talents["tricksters_boon"])*0.02 +
			float64(s.attributes["book_of_baal"])*0.0111
	default:
		panic("stats: unknown archetype")
	}
}

// StunDuration returns the stun length applied by the archetype's stun
// talent, or 0 if unlearned.
func (s *Sheet) StunDuration() float64 {
	switch s.archetype {
	case Borge:
		return float64(s.talents["impeccable_impacts"]) * 0.1
	case Ozzy:
		return float64(s.talents["thousand_needles"]) * 0.05
	default:
		panic("stats: unknown archetype")
	}
}

// LootMultiplier scales loot gained per kill.
func (s *Sheet) LootMultiplier() float64 {
	return 1 + float64(s.talents["call_me_lucky_loot"])*0.2
}

// EchoChance is the probability a resolved multistrike chains one echo hit
// (Ozzy only; zero for Borge, whose relic slot carries no echo source).
func (s *Sheet) EchoChance() float64 {
	if s.archetype != Ozzy {
		return 0
	}
	return float64(s.talents["tricksters_boon"])*0.05 +
		float64(s.relics["wordless_echo"])*0.02
}

// GrantTransientSpeedBonus stores a one-shot attack-speed bonus to be
// consumed by the next speed query the scheduler makes.
func (s *Sheet) GrantTransientSpeedBonus(bonus float64) {
	if bonus > 0 {
		s.transientSpeedBonus += bonus
	}
}

// TransientSpeedBonusSize returns the bonus the archetype's source grants
// per trigger.
func (s *Sheet) TransientSpeedBonusSize() float64 {
	switch s.archetype {
	case Borge:
		return float64(s.talents["fires_of_war"]) * 0.1
	case Ozzy:
		return float64(s.talents["dance_of_dashes"]) * 0.1
	default:
		panic("stats: unknown archetype")
	}
}

// ConsumeTransientSpeedBonus returns the pending one-shot speed bonus and
// zeroes it. The scheduler calls this exactly once per attack-speed query;
// it is the only stateful read in the stat model.
func (s *Sheet) ConsumeTransientSpeedBonus() float64 {
	bonus := s.transientSpeedBonus
	s.transientSpeedBonus = 0
	return bonus
}

// ReviveCharges returns how many deaths the build can absorb.
func (s *Sheet) ReviveCharges() int {
	return s.talents["death_is_my_companion"]
}

// EnemyRegenReduction is the fraction removed from spawned enemies' regen.
func (s *Sheet) EnemyRegenReduction() float64 {
	r := float64(s.talents["omen_of_defeat"]) * 0.08
	if r > 1 {
		return 1
	}
	return r
}

// BossHPReduction is the fraction removed from a boss's starting hp
// (presence_of_god, Borge only).
func (s *Sheet) BossHPReduction() float64 {
	r := float64(s.talents["presence_of_god"]) * 0.04
	if r > 1 {
		return 1
	}
	return r
}

// ReflectFraction is the share of post-mitigation damage returned to the
// attacker (helltouch_barrier, Borge only).
func (s *Sheet) ReflectFraction() float64 {
	return float64(s.attributes["helltouch_barrier"]) * 0.08
}
