package combat

import "math/rand"

// HitResult describes what happened to a single incoming hit.
type HitResult struct {
	Evaded bool
	// Final is the post-mitigation damage actually applied.
	Final float64
}

// Target is anything the hunter can hit.
type Target interface {
	ReceiveDamage(rng *rand.Rand, damage float64) HitResult
	Alive() bool
}

// Enemy is a regular wave enemy. Regular enemies crit but have no defenses.
type Enemy struct {
	HP         float64
	MaxHP      float64
	Power      float64
	Speed      float64
	Regen      float64
	CritChance float64
	CritDamage float64
}

// Stage growth constants for regular enemies, from the game's fixed tables.
// Past stage 100 hp and power take an extra multiplicative jump.
const (
	enemyBaseHP          = 9
	enemyHPPerStage      = 4
	enemyBasePower       = 2.5
	enemyPowerPerStage   = 0.7
	enemyBaseSpeed       = 4.53
	enemySpeedPerStage   = 0.006
	enemyRegenPerStage   = 0.08
	enemyBaseCrit        = 0.0322
	enemyCritPerStage    = 0.0004
	enemyBaseCritDmg     = 1.21
	enemyCritDmgPerStage = 0.008
	enemyLateStageJump   = 1.5
)

// NewEnemy spawns a regular enemy for a stage. regenReduction is the
// hunter's omen_of_defeat fraction, applied at spawn time.
func NewEnemy(stage int, regenReduction float64) *Enemy {
	hp := float64(enemyBaseHP + enemyHPPerStage*stage)
	power := enemyBasePower + enemyPowerPerStage*float64(stage)
	if stage > 100 {
		hp *= enemyLateStageJump
		power *= enemyLateStageJump
	}
	regen := 0.0
	if stage > 1 {
		regen = enemyRegenPerStage * float64(stage-1) * (1 - regenReduction)
	}
	return &Enemy{
		HP:         hp,
		MaxHP:      hp,
		Power:      power,
		Speed:      enemyBaseSpeed - enemySpeedPerStage*float64(stage),
		Regen:      regen,
		CritChance: enemyBaseCrit + enemyCritPerStage*float64(stage),
		CritDamage: enemyBaseCritDmg + enemyCritDmgPerStage*float64(stage),
	}
}

// Alive reports whether the enemy can still act.
func (e *Enemy) Alive() bool { return e.HP > 0 }

// ReceiveDamage applies a hit. Regular enemies have no evade or mitigation.
// HP may go negative for the instant before the death check clamps it.
func (e *Enemy) ReceiveDamage(_ *rand.Rand, damage float64) HitResult {
	e.HP -= damage
	if e.HP < 0 {
		e.HP = 0
	}
	return HitResult{Final: damage}
}

// RollDamage rolls the enemy's outgoing damage and whether it crit.
func (e *Enemy) RollDamage(rng *rand.Rand) (damage float64, crit bool) {
	if rng.Float64() < e.CritChance {
		return e.Power * e.CritDamage, true
	}
	return e.Power, false
}

// RegenTick restores one regen tick's worth of hp, clamped to max.
func (e *Enemy) RegenTick() {
	if !e.Alive() {
		return
	}
	e.HP += e.Regen
	if e.HP > e.MaxHP {
		e.HP = e.MaxHP
	}
}
