package combat

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewEnemyStageScaling(t *testing.T) {
	tests := []struct {
		stage     int
		wantHP    float64
		wantPower float64
	}{
		{0, 9, 2.5},
		{1, 13, 3.2},
		{50, 209, 37.5},
		{100, 409, 72.5},
		{101, (9 + 4*101) * 1.5, (2.5 + 0.7*101) * 1.5}, // late-stage jump
	}

	for _, tc := range tests {
		e := NewEnemy(tc.stage, 0)
		if math.Abs(e.HP-tc.wantHP) > 1e-9 {
			t.Errorf("stage %d hp = %v, want %v", tc.stage, e.HP, tc.wantHP)
		}
		if math.Abs(e.Power-tc.wantPower) > 1e-9 {
			t.Errorf("stage %d power = %v, want %v", tc.stage, e.Power, tc.wantPower)
		}
	}
}

func TestNewEnemyRegen(t *testing.T) {
	if e := NewEnemy(1, 0); e.Regen != 0 {
		t.Errorf("stage 1 regen = %v, want 0", e.Regen)
	}

	e := NewEnemy(11, 0)
	if math.Abs(e.Regen-0.8) > 1e-9 {
		t.Errorf("stage 11 regen = %v, want 0.8", e.Regen)
	}

	// Spawn-time regen reduction.
	reduced := NewEnemy(11, 0.5)
	if math.Abs(reduced.Regen-0.4) > 1e-9 {
		t.Errorf("reduced regen = %v, want 0.4", reduced.Regen)
	}
	capped := NewEnemy(11, 1)
	if capped.Regen != 0 {
		t.Errorf("fully reduced regen = %v, want 0", capped.Regen)
	}
}

func TestEnemyReceiveDamageClampsAtZero(t *testing.T) {
	e := NewEnemy(0, 0)
	hit := e.ReceiveDamage(nil, 1000)
	if hit.Evaded {
		t.Error("regular enemies cannot evade")
	}
	if e.HP != 0 {
		t.Errorf("HP = %v, want 0", e.HP)
	}
	if e.Alive() {
		t.Error("enemy at 0 hp should be dead")
	}
}

func TestEnemyRegenTick(t *testing.T) {
	e := NewEnemy(11, 0)
	e.HP = e.MaxHP - 0.5
	e.RegenTick()
	if e.HP != e.MaxHP {
		t.Errorf("HP = %v, want clamp to max %v", e.HP, e.MaxHP)
	}

	e.HP = 0
	e.RegenTick()
	if e.HP != 0 {
		t.Error("dead enemies must not regenerate")
	}
}

func TestEnemyRollDamageCrit(t *testing.T) {
	e := NewEnemy(10, 0)
	e.CritChance = 1
	damage, crit := e.RollDamage(rand.New(rand.NewSource(1)))
	if !crit {
		t.Fatal("guaranteed crit did not fire")
	}
	if math.Abs(damage-e.Power*e.CritDamage) > 1e-9 {
		t.Errorf("crit damage = %v, want %v", damage, e.Power*e.CritDamage)
	}

	e.CritChance = 0
	damage, crit = e.RollDamage(rand.New(rand.NewSource(1)))
	if crit || damage != e.Power {
		t.Errorf("non-crit = (%v, %v), want (%v, false)", damage, crit, e.Power)
	}
}
