package combat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lawnchairsociety/huntersim/internal/stats"
)

func TestNewBossTierTables(t *testing.T) {
	b := NewBoss(stats.Borge, 1, 0)
	if b.MaxHP != 36810 || b.Power != 263 {
		t.Errorf("Borge tier 1 = (%v hp, %v power), want (36810, 263)", b.MaxHP, b.Power)
	}

	o := NewBoss(stats.Ozzy, 3, 0)
	if o.MaxHP != 238100 || o.Power != 1380 {
		t.Errorf("Ozzy tier 3 = (%v hp, %v power), want (238100, 1380)", o.MaxHP, o.Power)
	}
}

func TestNewBossExtrapolation(t *testing.T) {
	base := NewBoss(stats.Borge, 3, 0)
	b := NewBoss(stats.Borge, 5, 0)

	scale := math.Pow(2.85, 2)
	if math.Abs(b.MaxHP-base.MaxHP*scale) > 1e-6 {
		t.Errorf("tier 5 hp = %v, want %v", b.MaxHP, base.MaxHP*scale)
	}
	if math.Abs(b.Power-base.Power*scale) > 1e-6 {
		t.Errorf("tier 5 power = %v, want %v", b.Power, base.Power*scale)
	}
	// Speed and defenses do not extrapolate.
	if b.Speed() != base.Speed() {
		t.Errorf("tier 5 speed = %v, want %v", b.Speed(), base.Speed())
	}
}

func TestNewBossHPReduction(t *testing.T) {
	b := NewBoss(stats.Borge, 1, 0.2)
	if math.Abs(b.HP-36810*0.8) > 1e-9 {
		t.Errorf("reduced starting hp = %v, want %v", b.HP, 36810*0.8)
	}
	if b.MaxHP != 36810 {
		t.Errorf("MaxHP = %v, want unreduced 36810", b.MaxHP)
	}
}

func TestBossEnrageSpeedsUp(t *testing.T) {
	b := NewBoss(stats.Borge, 1, 0)
	rng := rand.New(rand.NewSource(1))
	base := b.Speed()

	for i := 0; i < 100; i++ {
		b.RollDamage(rng, false)
	}
	if b.EnrageStacks != 100 {
		t.Fatalf("EnrageStacks = %d, want 100", b.EnrageStacks)
	}
	want := base * (1 - 100*0.0001)
	if math.Abs(b.Speed()-want) > 1e-9 {
		t.Errorf("enraged speed = %v, want %v", b.Speed(), want)
	}
	if b.SpecialSpeed() >= b.baseSpecialSpeed {
		t.Error("special track should also speed up with enrage")
	}
}

func TestBossEnrageSpeedFloor(t *testing.T) {
	b := NewBoss(stats.Borge, 1, 0)
	b.EnrageStacks = 1000000
	if b.Speed() != 0.5 {
		t.Errorf("floored speed = %v, want 0.5", b.Speed())
	}
}

func TestBossEscalationFiresOnce(t *testing.T) {
	b := NewBoss(stats.Borge, 1, 0)
	rng := rand.New(rand.NewSource(1))
	basePower := b.Power
	baseCrit := b.CritChance

	for i := 0; i < 250; i++ {
		b.RollDamage(rng, true)
	}
	if math.Abs(b.Power-basePower*1.5) > 1e-9 {
		t.Errorf("escalated power = %v, want %v", b.Power, basePower*1.5)
	}
	if math.Abs(b.CritChance-(baseCrit+0.05)) > 1e-9 {
		t.Errorf("escalated crit = %v, want %v", b.CritChance, baseCrit+0.05)
	}

	// Further attacks must not escalate again.
	escalatedPower := b.Power
	for i := 0; i < 100; i++ {
		b.RollDamage(rng, false)
	}
	if b.Power != escalatedPower {
		t.Errorf("power = %v after more attacks, want %v (escalation is one-time)", b.Power, escalatedPower)
	}
}

func TestBossSpecialAlwaysCrits(t *testing.T) {
	b := NewBoss(stats.Ozzy, 1, 0)
	rng := rand.New(rand.NewSource(1))
	damage, crit := b.RollDamage(rng, true)
	if !crit {
		t.Fatal("special track should always deal crit-scaled damage")
	}
	if math.Abs(damage-b.Power*b.CritDamage) > 1e-9 {
		t.Errorf("special damage = %v, want %v", damage, b.Power*b.CritDamage)
	}
}

func TestBossReceiveDamageMitigation(t *testing.T) {
	b := NewBoss(stats.Borge, 1, 0)
	b.EvadeChance = 0
	hit := b.ReceiveDamage(rand.New(rand.NewSource(1)), 100)
	want := 100 * (1 - b.DamageReduction)
	if math.Abs(hit.Final-want) > 1e-9 {
		t.Errorf("Final = %v, want %v", hit.Final, want)
	}

	b.EvadeChance = 1
	hit = b.ReceiveDamage(rand.New(rand.NewSource(1)), 100)
	if !hit.Evaded || hit.Final != 0 {
		t.Errorf("guaranteed evade = %+v, want evaded with 0 damage", hit)
	}
}
