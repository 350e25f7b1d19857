// Package sim drives one simulation run: a discrete-event loop over a
// time-ordered priority queue, advancing simulated time strictly by popping
// the next event.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/lawnchairsociety/huntersim/internal/combat"
	"github.com/lawnchairsociety/huntersim/internal/config"
)

// Delay between a triggering attack and its queued sub-attack resolving.
const subAttackDelay = 0.05

// Options bounds a run so a pathological build cannot loop forever. The
// ceilings are a required safety net, not tuning knobs.
type Options struct {
	// MaxElapsed is the simulated-time ceiling in seconds.
	MaxElapsed float64

	// MaxStage is the stage ceiling.
	MaxStage int
}

// DefaultOptions returns the engine ceilings used outside of tests.
func DefaultOptions() Options {
	return Options{
		MaxElapsed: 36000, // 10 simulated hours
		MaxStage:   10000,
	}
}

// Simulation owns all state of one run: the hunter, the live enemy set,
// the event queue, and the RNG. Nothing here is shared between runs.
type Simulation struct {
	hunter *combat.Hunter
	stage  *StageController
	rng    *rand.Rand
	log    *slog.Logger
	opts   Options

	elapsed   float64
	nextRegen float64
}

// New constructs a run from a validated build config and a fixed seed.
// Identical config and seed produce an identical result record.
func New(cfg *config.BuildConfig, seed int64, log *slog.Logger, opts Options) (*Simulation, error) {
	if opts.MaxElapsed <= 0 {
		opts.MaxElapsed = DefaultOptions().MaxElapsed
	}
	if opts.MaxStage <= 0 {
		opts.MaxStage = DefaultOptions().MaxStage
	}
	hunter, err := combat.NewHunter(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Simulation{
		hunter:    hunter,
		stage:     NewStageController(hunter.Sheet),
		rng:       rand.New(rand.NewSource(seed)),
		log:       log,
		opts:      opts,
		nextRegen: 1,
	}, nil
}

// Hunter exposes the run's hunter, mainly for tests.
func (s *Simulation) Hunter() *combat.Hunter { return s.hunter }

// Run executes the run to termination and returns its result record. The
// run ends when the hunter dies with no revives left or an engine ceiling
// is hit.
func (s *Simulation) Run() (combat.Result, error) {
	for s.hunter.Alive() && s.elapsed < s.opts.MaxElapsed && s.stage.Stage() <= s.opts.MaxStage {
		var err error
		if s.stage.IsBossStage() {
			err = s.runBossStage()
		} else {
			err = s.runWaveStage()
		}
		if err != nil {
			return combat.Result{}, err
		}
		if !s.hunter.Alive() {
			break
		}
		s.stage.Advance(s.hunter)
	}
	return s.finalize(), nil
}

func (s *Simulation) finalize() combat.Result {
	rec := s.hunter.Rec
	rec.ElapsedTime = roundTime(s.elapsed)
	rec.FinalStage = s.hunter.CurrentStage
	rec.FinalHP = s.hunter.HP
	rec.Survived = s.hunter.Alive()
	return rec
}

// runWaveStage fights a regular wave: trample first, then each survivor
// one at a time.
func (s *Simulation) runWaveStage() error {
	wave := s.stage.SpawnWave()
	s.log.Debug("entering stage", "stage", s.stage.Stage())

	if kills := s.hunter.ApplyTrample(wave); kills > 0 {
		for i := 0; i < kills; i++ {
			s.awardKill(false)
		}
	}

	for _, enemy := range wave {
		if !enemy.Alive() {
			continue
		}
		if err := s.runEncounter(enemy, nil); err != nil {
			return err
		}
		if !s.hunter.Alive() {
			return nil
		}
		s.awardKill(false)
	}
	return nil
}

// runBossStage fights the stage's single boss.
func (s *Simulation) runBossStage() error {
	boss := s.stage.SpawnBoss()
	s.log.Debug("entering boss stage", "stage", s.stage.Stage())

	if err := s.runEncounter(nil, boss); err != nil {
		return err
	}
	s.hunter.Rec.EnrageLog = append(s.hunter.Rec.EnrageLog, boss.EnrageStacks)
	if s.hunter.Alive() {
		s.awardKill(true)
	}
	return nil
}

// runEncounter is the event loop for one hunter-versus-one-opponent fight.
// Exactly one of enemy and boss is non-nil.
func (s *Simulation) runEncounter(enemy *combat.Enemy, boss *combat.Boss) error {
	var target combat.Target
	if boss != nil {
		target = boss
	} else {
		target = enemy
	}

	q := newEventQueue()
	q.Schedule(s.elapsed+s.hunter.AttackDelay(), prioHunterAttack, ActionHunterAttack)
	if boss != nil {
		q.Schedule(s.elapsed+boss.Speed(), prioEnemyAttack, ActionEnemyAttack)
		q.Schedule(s.elapsed+boss.SpecialSpeed(), prioBossSpecial, ActionBossSpecial)
	} else {
		q.Schedule(s.elapsed+enemy.Speed, prioEnemyAttack, ActionEnemyAttack)
	}
	q.Schedule(s.nextRegen, prioRegen, ActionRegen)

	for target.Alive() && s.hunter.Alive() && s.elapsed < s.opts.MaxElapsed {
		ev := q.PopNext()
		s.elapsed = ev.Time

		switch ev.Kind {
		case ActionHunterAttack:
			out := s.hunter.Attack(s.rng, target)
			s.applyAttackOutcome(q, out)
			if !out.TargetDied {
				q.Schedule(s.elapsed+s.hunter.AttackDelay(), prioHunterAttack, ActionHunterAttack)
			}

		case ActionSubAttack:
			out := s.hunter.ResolveSubAttack(s.rng, target)
			s.applyAttackOutcome(q, out)

		case ActionEnemyAttack:
			var damage float64
			if boss != nil {
				damage, _ = boss.RollDamage(s.rng, false)
			} else {
				damage, _ = enemy.RollDamage(s.rng)
			}
			opponentSpeed := s.opponentSpeed(enemy, boss)
			s.resolveIncomingHit(enemy, boss, damage)
			if s.hunter.Alive() && target.Alive() {
				q.Schedule(s.elapsed+opponentSpeed, prioEnemyAttack, ActionEnemyAttack)
			}

		case ActionBossSpecial:
			damage, _ := boss.RollDamage(s.rng, true)
			s.resolveIncomingHit(enemy, boss, damage)
			if s.hunter.Alive() && boss.Alive() {
				q.Schedule(s.elapsed+boss.SpecialSpeed(), prioBossSpecial, ActionBossSpecial)
			}

		case ActionRegen:
			s.nextRegen = ev.Time + 1
			s.hunter.RegenTick()
			if boss != nil {
				boss.RegenTick()
			} else {
				enemy.RegenTick()
			}
			q.Schedule(s.nextRegen, prioRegen, ActionRegen)

		default:
			// Defensive: a kind without a handler means the engine was
			// extended incorrectly. Abort the run rather than skew stats.
			return fmt.Errorf("sim: unrecognized action kind %v at t=%v", ev.Kind, ev.Time)
		}
	}

	// A sub-attack queued by a killing blow has no target left; it fizzles
	// along with the rest of the encounter's queue.
	s.hunter.ClearSubAttacks()
	return nil
}

// applyAttackOutcome translates an attack's side effects into queue
// mutations: stuns delay the opponent's queued primary attack, queued
// sub-attacks get their single-shot event.
func (s *Simulation) applyAttackOutcome(q *eventQueue, out combat.AttackOutcome) {
	if out.StunDuration > 0 {
		q.Delay(ActionEnemyAttack, out.StunDuration)
	}
	if out.QueuedSub {
		q.Schedule(s.elapsed+subAttackDelay, prioSubAttack, ActionSubAttack)
	}
}

func (s *Simulation) opponentSpeed(enemy *combat.Enemy, boss *combat.Boss) float64 {
	if boss != nil {
		return boss.Speed()
	}
	return enemy.Speed
}

// resolveIncomingHit runs the hunter's defense and, when the build
// reflects, returns damage to the attacker. Reflected damage goes through
// the attacker's own defenses, so a boss can evade or mitigate it. A
// reflect kill carries the dead attacker's remaining wind-up into the
// hunter's next attack delay.
func (s *Simulation) resolveIncomingHit(enemy *combat.Enemy, boss *combat.Boss, damage float64) {
	def := s.hunter.ReceiveDamage(s.rng, damage)
	if def.Evaded || def.Final <= 0 || !s.hunter.Alive() {
		return
	}

	reflect := s.hunter.Sheet.ReflectFraction()
	if reflect <= 0 {
		return
	}

	var attacker combat.Target
	var windup float64
	if boss != nil {
		attacker, windup = boss, boss.Speed()
	} else {
		attacker, windup = enemy, enemy.Speed
	}
	hit := attacker.ReceiveDamage(s.rng, def.Final*reflect)
	s.hunter.Rec.DamageReflected += hit.Final
	if !attacker.Alive() {
		s.hunter.LeftoverWindup = windup
		s.log.Debug("attacker died to reflect", "carry", s.hunter.LeftoverWindup)
	}
}

// awardKill tallies a kill and its loot. Boss kills are worth double loot.
func (s *Simulation) awardKill(isBoss bool) {
	rec := &s.hunter.Rec
	rec.Kills++
	loot := (1 + 0.05*float64(s.stage.Stage())) * s.hunter.Sheet.LootMultiplier()
	if isBoss {
		rec.BossKills++
		loot *= 2
	}
	rec.Loot += loot
}
