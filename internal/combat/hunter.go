package combat

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/lawnchairsociety/huntersim/internal/config"
	"github.com/lawnchairsociety/huntersim/internal/stats"
)

// SubAttackKind identifies a queued triggered attack.
type SubAttackKind int

const (
	SubMultistrike SubAttackKind = iota
	SubEcho
)

// AttackOutcome tells the scheduler what a resolved attack did, so it can
// mutate the event queue (stun delays, sub-attack insertion) without the
// entity layer knowing about events.
type AttackOutcome struct {
	Damage     float64
	Crit       bool
	TargetDied bool

	// StunDuration is non-zero when the stun proc fired; the scheduler
	// delays the target's queued attack by this much.
	StunDuration float64

	// QueuedSub is true when a sub-attack was enqueued and needs an event.
	QueuedSub bool
}

// DefenseOutcome describes what an incoming hit did to the hunter.
type DefenseOutcome struct {
	Evaded  bool
	Final   float64
	Died    bool
	Revived bool
}

// Hunter is the simulated player character. One Hunter belongs to exactly
// one run; it is never shared.
type Hunter struct {
	Sheet *stats.Sheet
	HP    float64

	CurrentStage int
	TimesRevived int

	// Rec accumulates this run's statistics counters.
	Rec Result

	revivesLeft int
	subAttacks  []SubAttackKind

	// LeftoverWindup carries the remaining wind-up of an attacker that died
	// to reflected damage; it shortens the hunter's next attack delay once.
	LeftoverWindup float64

	log *slog.Logger
}

// NewHunter constructs a hunter from a validated build config.
func NewHunter(cfg *config.BuildConfig, log *slog.Logger) (*Hunter, error) {
	sheet, err := stats.NewSheet(cfg)
	if err != nil {
		return nil, err
	}
	h := &Hunter{
		Sheet:       sheet,
		revivesLeft: sheet.ReviveCharges(),
		log:         log,
	}
	h.HP = sheet.MaxHP()
	return h, nil
}

// Snapshot captures the mutable state the stat model reads.
func (h *Hunter) Snapshot() stats.Snapshot {
	return stats.Snapshot{
		CurrentStage: h.CurrentStage,
		TimesRevived: h.TimesRevived,
		MissingHP:    h.MaxHP() - h.HP,
	}
}

// MaxHP re-derives max hp from the sheet.
func (h *Hunter) MaxHP() float64 { return h.Sheet.MaxHP() }

// Power re-derives attack power for the current run state.
func (h *Hunter) Power() float64 { return h.Sheet.Power(h.Snapshot()) }

// Alive reports whether the hunter can still act.
func (h *Hunter) Alive() bool { return h.HP > 0 }

// AttackDelay returns the wind-up before the hunter's next attack. The
// scheduler calls this exactly once per scheduled attack: it consumes the
// one-shot transient speed bonus and the leftover wind-up carried from a
// reflect kill.
func (h *Hunter) AttackDelay() float64 {
	delay := h.Sheet.Speed() - h.Sheet.ConsumeTransientSpeedBonus() - h.LeftoverWindup
	h.LeftoverWindup = 0
	if delay < 0.1 {
		delay = 0.1
	}
	return delay
}

// QueuedSubAttacks returns how many triggered attacks are pending.
func (h *Hunter) QueuedSubAttacks() int { return len(h.subAttacks) }

// ClearSubAttacks drops all pending triggered attacks. The scheduler calls
// this at encounter end: a sub-attack queued by a killing blow has no
// target left and fizzles instead of carrying to the next opponent.
func (h *Hunter) ClearSubAttacks() { h.subAttacks = h.subAttacks[:0] }

// Attack resolves one primary attack against target.
//
// RNG consumption order is fixed: special roll, target evade roll,
// lifesteal proc roll, stun proc roll. Reordering breaks seed-for-seed
// regression comparisons.
func (h *Hunter) Attack(rng *rand.Rand, target Target) AttackOutcome {
	var out AttackOutcome
	damage := h.Power()

	switch h.Sheet.Archetype() {
	case stats.Borge:
		if rng.Float64() < h.Sheet.SpecialChance() {
			damage *= h.Sheet.SpecialDamage()
			out.Crit = true
			h.Rec.Crits++
		}
	case stats.Ozzy:
		// Ozzy's special roll queues a multistrike instead of critting.
		if rng.Float64() < h.Sheet.SpecialChance() {
			h.subAttacks = append(h.subAttacks, SubMultistrike)
			out.QueuedSub = true
		}
	}

	h.Rec.Attacks++
	h.Rec.DamageDealt += damage
	out.Damage = damage

	hit := target.ReceiveDamage(rng, damage)
	if hit.Evaded {
		h.Rec.EnemyEvades++
		h.log.Debug("attack evaded", "damage", damage)
	} else {
		h.log.Debug("attack", "damage", hit.Final, "crit", out.Crit)
		h.rollOnHitProcs(rng, hit.Final, &out)
	}

	out.TargetDied = !target.Alive()
	return out
}

// ResolveSubAttack dequeues and resolves the next queued triggered attack.
// Sub-attack damage always derives from main-hand power, never from the
// attack that triggered it.
func (h *Hunter) ResolveSubAttack(rng *rand.Rand, target Target) AttackOutcome {
	if len(h.subAttacks) == 0 {
		panic("combat: sub-attack event fired with empty queue")
	}
	kind := h.subAttacks[0]
	h.subAttacks = h.subAttacks[1:]

	var out AttackOutcome
	damage := h.Power() * h.Sheet.SpecialDamage()
	switch kind {
	case SubMultistrike:
		h.Rec.Multistrikes++
	case SubEcho:
		damage *= 0.5
		h.Rec.Echoes++
	default:
		panic(fmt.Sprintf("combat: unknown sub-attack kind %d", kind))
	}

	h.Rec.DamageDealt += damage
	out.Damage = damage

	hit := target.ReceiveDamage(rng, damage)
	if hit.Evaded {
		h.Rec.EnemyEvades++
	} else if kind == SubMultistrike && rng.Float64() < h.Sheet.EchoChance() {
		// A landed multistrike can chain a single echo. Echoes never chain.
		h.subAttacks = append(h.subAttacks, SubEcho)
		out.QueuedSub = true
	}

	out.TargetDied = !target.Alive()
	return out
}

// rollOnHitProcs rolls every optional on-hit effect independently. Procs
// are not mutually exclusive.
func (h *Hunter) rollOnHitProcs(rng *rand.Rand, finalDamage float64, out *AttackOutcome) {
	if ls := h.Sheet.Lifesteal(); ls > 0 && rng.Float64() < h.Sheet.EffectChance() {
		h.Rec.LifestealProcs++
		h.Heal(finalDamage*ls, HealLifesteal)
	}
	if sd := h.Sheet.StunDuration(); sd > 0 && rng.Float64() < h.Sheet.EffectChance() {
		out.StunDuration = sd
		h.Rec.StunsApplied++
		h.Rec.StunTimeInflicted += sd
		h.log.Debug("stun applied", "duration", sd)
	}
}

// ReceiveDamage applies an incoming hit through evade and damage reduction,
// then runs the death check. Reflect is the scheduler's job because it
// needs the attacker's queued event.
func (h *Hunter) ReceiveDamage(rng *rand.Rand, raw float64) DefenseOutcome {
	if rng.Float64() < h.Sheet.EvadeChance() {
		h.Rec.Evades++
		h.log.Debug("evade", "raw", raw)
		// Evading feeds Ozzy's one-shot speed bonus.
		if h.Sheet.Archetype() == stats.Ozzy {
			h.Sheet.GrantTransientSpeedBonus(h.Sheet.TransientSpeedBonusSize())
		}
		return DefenseOutcome{Evaded: true}
	}

	final := raw * (1 - h.Sheet.DamageReduction())
	h.Rec.DamageTaken += final
	h.Rec.DamageMitigated += raw - final
	h.HP -= final
	h.log.Debug("take damage", "final", final, "hp", h.HP)

	out := DefenseOutcome{Final: final}
	out.Died, out.Revived = h.checkDeath()
	return out
}

// checkDeath consumes a revive charge if one remains, restoring a fixed
// fraction of max hp and logging the stage; otherwise the hunter is
// terminally dead for this run.
func (h *Hunter) checkDeath() (died, revived bool) {
	if h.HP > 0 {
		return false, false
	}
	if h.revivesLeft > 0 {
		h.revivesLeft--
		h.TimesRevived++
		h.HP = h.MaxHP() * 0.8
		h.Rec.ReviveStages = append(h.Rec.ReviveStages, h.CurrentStage)
		h.log.Info("revived", "stage", h.CurrentStage, "revives_left", h.revivesLeft)
		return false, true
	}
	h.HP = 0
	h.log.Info("died", "stage", h.CurrentStage)
	return true, false
}

// Heal restores hp clamped to missing hp and tallies it into the source's
// statistics bucket. An unknown source means a new effect was added without
// a bucket, which is a programmer error.
func (h *Hunter) Heal(amount float64, source HealSource) {
	missing := h.MaxHP() - h.HP
	applied := amount
	if applied > missing {
		applied = missing
	}
	h.HP += applied

	switch source {
	case HealRegen:
		h.Rec.HealingRegen += applied
	case HealLifesteal:
		h.Rec.HealingLifesteal += applied
	case HealPotion:
		h.Rec.HealingPotion += applied
	default:
		panic(fmt.Sprintf("combat: unknown heal source %v", source))
	}
	h.Rec.Overhealing += amount - applied
}

// RegenTick applies one whole-second regen tick.
func (h *Hunter) RegenTick() {
	h.Heal(h.Sheet.Regen(h.Snapshot()), HealRegen)
}

// ApplyTrample instantly kills up to power/maxHP enemies of a regular wave
// without spending a full attack cycle. It counts as one attack-equivalent
// event. Returns the number killed; the caller awards kills and loot.
func (h *Hunter) ApplyTrample(enemies []*Enemy) int {
	if !h.Sheet.Mod("trample") || len(enemies) == 0 {
		return 0
	}
	tramplePower := int(h.Power() / enemies[0].MaxHP)
	if tramplePower > len(enemies) {
		tramplePower = len(enemies)
	}
	if tramplePower <= 1 {
		return 0
	}
	kills := 0
	for _, e := range enemies {
		if kills >= tramplePower {
			break
		}
		if e.Alive() {
			e.HP = 0
			kills++
		}
	}
	h.Rec.Attacks++
	h.Rec.TrampleKills += kills
	h.log.Debug("trample", "kills", kills)
	return kills
}

// AdvanceStage moves the hunter to the next stage. Clearing a wave feeds
// Borge's one-shot speed bonus.
func (h *Hunter) AdvanceStage() {
	h.CurrentStage++
	if h.Sheet.Archetype() == stats.Borge {
		h.Sheet.GrantTransientSpeedBonus(h.Sheet.TransientSpeedBonusSize())
	}
}
