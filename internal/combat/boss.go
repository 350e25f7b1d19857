package combat

import (
	"math"
	"math/rand"

	"github.com/lawnchairsociety/huntersim/internal/stats"
)

// Boss is the single enemy of every 100th stage. Bosses have defenses, a
// second independently-paced special attack track, and an enrage counter
// that accelerates both tracks the longer the fight runs.
type Boss struct {
	HP              float64
	MaxHP           float64
	Power           float64
	Regen           float64
	CritChance      float64
	CritDamage      float64
	DamageReduction float64
	EvadeChance     float64

	baseSpeed        float64
	baseSpecialSpeed float64

	// EnrageStacks increments on every attack from either track and never
	// decreases.
	EnrageStacks int
	escalated    bool
}

// Enrage tuning. Each stack shaves a fraction of base speed off both attack
// tracks, bounded by a hard floor; crossing the escalation threshold
// permanently raises damage and crit chance once.
const (
	enrageSpeedPerStack = 0.0001
	enrageSpeedFloor    = 0.5
	enrageThreshold     = 200
	enragePowerScale    = 1.5
	enrageCritBonus     = 0.05
)

// bossTier holds the hard-coded stats of one boss tier.
type bossTier struct {
	hp, power, speed, specialSpeed, regen float64
	critChance, critDamage                float64
	damageReduction, evadeChance          float64
}

// Boss tier tables per archetype. Tier n guards stage n*100; tiers past the
// table extrapolate from the last entry.
var borgeBossTiers = []bossTier{
	{hp: 36810, power: 263, speed: 9.5, specialSpeed: 6.0, regen: 14.6, critChance: 0.112, critDamage: 2.03, damageReduction: 0.05, evadeChance: 0.004},
	{hp: 104500, power: 702, speed: 9.2, specialSpeed: 5.8, regen: 41.0, critChance: 0.144, critDamage: 2.32, damageReduction: 0.07, evadeChance: 0.006},
	{hp: 298800, power: 1862, speed: 8.9, specialSpeed: 5.6, regen: 114.0, critChance: 0.177, critDamage: 2.61, damageReduction: 0.09, evadeChance: 0.008},
}

var ozzyBossTiers = []bossTier{
	{hp: 29330, power: 195, speed: 8.6, specialSpeed: 5.5, regen: 12.1, critChance: 0.122, critDamage: 1.85, damageReduction: 0.04, evadeChance: 0.01},
	{hp: 83250, power: 520, speed: 8.3, specialSpeed: 5.3, regen: 33.9, critChance: 0.155, critDamage: 2.11, damageReduction: 0.06, evadeChance: 0.013},
	{hp: 238100, power: 1380, speed: 8.0, specialSpeed: 5.1, regen: 94.8, critChance: 0.188, critDamage: 2.37, damageReduction: 0.08, evadeChance: 0.016},
}

// Per-tier growth applied beyond the tabulated tiers.
const bossExtrapolation = 2.85

// NewBoss spawns the boss for a tier (tier = stage/100). hpReduction is the
// hunter's presence_of_god fraction removed from starting hp.
func NewBoss(archetype stats.Archetype, tier int, hpReduction float64) *Boss {
	if tier < 1 {
		tier = 1
	}
	tiers := borgeBossTiers
	if archetype == stats.Ozzy {
		tiers = ozzyBossTiers
	}

	t := tiers[len(tiers)-1]
	if tier <= len(tiers) {
		t = tiers[tier-1]
	} else {
		scale := math.Pow(bossExtrapolation, float64(tier-len(tiers)))
		t.hp *= scale
		t.power *= scale
		t.regen *= scale
	}

	maxHP := t.hp
	return &Boss{
		HP:               maxHP * (1 - hpReduction),
		MaxHP:            maxHP,
		Power:            t.power,
		Regen:            t.regen,
		CritChance:       t.critChance,
		CritDamage:       t.critDamage,
		DamageReduction:  t.damageReduction,
		EvadeChance:      t.evadeChance,
		baseSpeed:        t.speed,
		baseSpecialSpeed: t.specialSpeed,
	}
}

// Alive reports whether the boss can still act.
func (b *Boss) Alive() bool { return b.HP > 0 }

// Speed returns the primary track's current wind-up, shortened by enrage.
func (b *Boss) Speed() float64 {
	return enragedSpeed(b.baseSpeed, b.EnrageStacks)
}

// SpecialSpeed returns the secondary track's current wind-up.
func (b *Boss) SpecialSpeed() float64 {
	return enragedSpeed(b.baseSpecialSpeed, b.EnrageStacks)
}

func enragedSpeed(base float64, stacks int) float64 {
	speed := base * (1 - float64(stacks)*enrageSpeedPerStack)
	if speed < enrageSpeedFloor {
		return enrageSpeedFloor
	}
	return speed
}

// RollDamage rolls one attack from either track, advancing enrage. The
// special track always deals crit-scaled damage; the primary track rolls.
func (b *Boss) RollDamage(rng *rand.Rand, special bool) (damage float64, crit bool) {
	b.gainEnrage()
	if special {
		return b.Power * b.CritDamage, true
	}
	if rng.Float64() < b.CritChance {
		return b.Power * b.CritDamage, true
	}
	return b.Power, false
}

// gainEnrage advances the enrage counter and applies the one-time
// escalation when the threshold is crossed.
func (b *Boss) gainEnrage() {
	b.EnrageStacks++
	if !b.escalated && b.EnrageStacks >= enrageThreshold {
		b.escalated = true
		b.Power *= enragePowerScale
		b.CritChance += enrageCritBonus
	}
}

// ReceiveDamage applies a hit through the boss's evade and mitigation.
func (b *Boss) ReceiveDamage(rng *rand.Rand, damage float64) HitResult {
	if rng.Float64() < b.EvadeChance {
		return HitResult{Evaded: true}
	}
	final := damage * (1 - b.DamageReduction)
	b.HP -= final
	if b.HP < 0 {
		b.HP = 0
	}
	return HitResult{Final: final}
}

// RegenTick restores one regen tick's worth of hp, clamped to max.
func (b *Boss) RegenTick() {
	if !b.Alive() {
		return
	}
	b.HP += b.Regen
	if b.HP > b.MaxHP {
		b.HP = b.MaxHP
	}
}
