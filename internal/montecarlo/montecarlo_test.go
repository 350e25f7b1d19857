package montecarlo

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/lawnchairsociety/huntersim/internal/combat"
	"github.com/lawnchairsociety/huntersim/internal/config"
	"github.com/lawnchairsociety/huntersim/internal/logger"
	"github.com/lawnchairsociety/huntersim/internal/sim"
)

func testBuild(t *testing.T) *config.BuildConfig {
	t.Helper()
	cfg, err := config.DummyBuild("Borge")
	if err != nil {
		t.Fatalf("DummyBuild failed: %v", err)
	}
	cfg.Stats["hp"] = 10
	cfg.Stats["power"] = 10
	return cfg
}

func testOptions() sim.Options {
	return sim.Options{MaxElapsed: 600, MaxStage: 10}
}

func TestRunManyRejectsNonPositiveIterations(t *testing.T) {
	_, err := RunMany(testBuild(t), Config{Iterations: 0}, logger.Discard())
	if err == nil {
		t.Error("RunMany with 0 iterations should fail")
	}
}

func TestRunManyMatchesRunOne(t *testing.T) {
	build := testBuild(t)
	cfg := Config{Iterations: 3, Seed: 42, Options: testOptions()}

	batch, err := RunMany(build, cfg, logger.Discard())
	if err != nil {
		t.Fatalf("RunMany failed: %v", err)
	}

	for i := range batch {
		single, err := RunOne(build, cfg.Seed+int64(i), logger.Discard(), cfg.Options)
		if err != nil {
			t.Fatalf("RunOne failed: %v", err)
		}
		if !reflect.DeepEqual(batch[i], single) {
			t.Errorf("run %d: batch and single-run records differ", i)
		}
	}
}

func TestRunManyParallelMatchesSequential(t *testing.T) {
	build := testBuild(t)
	seq := Config{Iterations: 8, Workers: 0, Seed: 7, Options: testOptions()}
	par := Config{Iterations: 8, Workers: 4, Seed: 7, Options: testOptions()}

	a, err := RunMany(build, seq, logger.Discard())
	if err != nil {
		t.Fatalf("sequential RunMany failed: %v", err)
	}
	b, err := RunMany(build, par, logger.Discard())
	if err != nil {
		t.Fatalf("parallel RunMany failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("parallel batch differs from sequential batch with identical seeds")
	}
}

func TestRunManySurfacesRunErrors(t *testing.T) {
	// An invalid archetype slips past when the config skips validation.
	bad := &config.BuildConfig{Meta: config.Meta{Hunter: "Knuckles"}}

	_, err := RunMany(bad, Config{Iterations: 2, Seed: 1, Options: testOptions()}, logger.Discard())
	if err == nil {
		t.Fatal("RunMany with a broken build should fail")
	}
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("error type = %T, want *RunError", err)
	}
}

func TestFieldsExplodesListValues(t *testing.T) {
	r := combat.Result{
		Kills:        5,
		Loot:         20,
		ElapsedTime:  7200,
		ReviveStages: []int{31, 58},
		EnrageLog:    []int{12, 240, 80},
		Survived:     true,
	}
	f := Fields(r)

	if f["first_revive_stage"] != 31 || f["second_revive_stage"] != 58 {
		t.Errorf("revive stages = (%v, %v), want (31, 58)",
			f["first_revive_stage"], f["second_revive_stage"])
	}
	if f["peak_enrage_stacks"] != 240 {
		t.Errorf("peak_enrage_stacks = %v, want 240", f["peak_enrage_stacks"])
	}
	if f["revives"] != 2 {
		t.Errorf("revives = %v, want 2", f["revives"])
	}
	if f["survived"] != 1 {
		t.Errorf("survived = %v, want 1", f["survived"])
	}
	if math.Abs(f["loot_per_hour"]-10) > 1e-9 {
		t.Errorf("loot_per_hour = %v, want 10", f["loot_per_hour"])
	}
}

func TestFieldsOmitsAbsentValues(t *testing.T) {
	f := Fields(combat.Result{})
	if _, ok := f["first_revive_stage"]; ok {
		t.Error("first_revive_stage should be absent without revives")
	}
	if _, ok := f["loot_per_hour"]; ok {
		t.Error("loot_per_hour should be absent at zero elapsed time")
	}
	if f["survived"] != 0 {
		t.Errorf("survived = %v, want 0", f["survived"])
	}
}

func TestReduceStats(t *testing.T) {
	results := []combat.Result{
		{Kills: 1},
		{Kills: 3},
	}
	s := Reduce(results)

	if s.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", s.Iterations)
	}
	kills := s.Fields["kills"]
	if kills.Mean != 2 {
		t.Errorf("mean = %v, want 2", kills.Mean)
	}
	// Sample standard deviation over {1, 3}.
	if math.Abs(kills.Std-math.Sqrt2) > 1e-9 {
		t.Errorf("std = %v, want sqrt(2)", kills.Std)
	}
	if kills.Min != 1 || kills.Max != 3 {
		t.Errorf("min/max = (%v, %v), want (1, 3)", kills.Min, kills.Max)
	}
}

func TestReducePartialFields(t *testing.T) {
	// Only one record revived; the field reduces over that record alone.
	results := []combat.Result{
		{ReviveStages: []int{40}},
		{},
	}
	s := Reduce(results)
	if got := s.Fields["first_revive_stage"]; got.Mean != 40 || got.Std != 0 {
		t.Errorf("first_revive_stage = %+v, want mean 40, std 0", got)
	}
}

func TestReduceSingleRunHasZeroStd(t *testing.T) {
	s := Reduce([]combat.Result{{Kills: 4}})
	if got := s.Fields["kills"]; got.Std != 0 {
		t.Errorf("single-run std = %v, want 0", got.Std)
	}
}

func TestCompare(t *testing.T) {
	a := []combat.Result{{Kills: 10}, {Kills: 10}}
	b := []combat.Result{{Kills: 12}, {Kills: 18}}

	cmp := Compare(a, b)
	d := cmp.Fields["kills"]
	if d.Delta != 5 {
		t.Errorf("delta = %v, want 5", d.Delta)
	}
	if math.Abs(d.Pct-50) > 1e-9 {
		t.Errorf("pct = %v, want 50", d.Pct)
	}
}

func TestCompareZeroBaseline(t *testing.T) {
	a := []combat.Result{{}}
	b := []combat.Result{{Kills: 3}}

	cmp := Compare(a, b)
	d := cmp.Fields["kills"]
	if d.Delta != 3 {
		t.Errorf("delta = %v, want 3", d.Delta)
	}
	if d.Pct != 0 {
		t.Errorf("pct = %v, want 0 when the baseline mean is 0", d.Pct)
	}
}

func TestFieldNamesSorted(t *testing.T) {
	s := Reduce([]combat.Result{{}})
	names := s.FieldNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("FieldNames not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
