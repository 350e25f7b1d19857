package montecarlo

import (
	"math"
	"sort"

	"github.com/lawnchairsociety/huntersim/internal/combat"
)

// FieldStats is the reduction of one named field across a batch.
type FieldStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summary is the reduction of a whole batch.
type Summary struct {
	Iterations int                   `json:"iterations"`
	Fields     map[string]FieldStats `json:"fields"`
}

// Fields flattens a result record into named scalars for reduction.
// List-valued fields are exploded into derived scalars (first/second revive
// stage, peak enrage) and derived metrics (loot per hour) are computed
// per-record before reduction.
func Fields(r combat.Result) map[string]float64 {
	f := map[string]float64{
		"attacks":             float64(r.Attacks),
		"crits":               float64(r.Crits),
		"multistrikes":        float64(r.Multistrikes),
		"echoes":              float64(r.Echoes),
		"kills":               float64(r.Kills),
		"boss_kills":          float64(r.BossKills),
		"trample_kills":       float64(r.TrampleKills),
		"damage_dealt":        r.DamageDealt,
		"evades":              float64(r.Evades),
		"enemy_evades":        float64(r.EnemyEvades),
		"damage_taken":        r.DamageTaken,
		"damage_mitigated":    r.DamageMitigated,
		"damage_reflected":    r.DamageReflected,
		"stuns_applied":       float64(r.StunsApplied),
		"stun_time_inflicted": r.StunTimeInflicted,
		"lifesteal_procs":     float64(r.LifestealProcs),
		"healing_regen":       r.HealingRegen,
		"healing_lifesteal":   r.HealingLifesteal,
		"healing_potion":      r.HealingPotion,
		"overhealing":         r.Overhealing,
		"loot":                r.Loot,
		"elapsed_time":        r.ElapsedTime,
		"final_stage":         float64(r.FinalStage),
		"final_hp":            r.FinalHP,
		"revives":             float64(len(r.ReviveStages)),
	}

	if r.Survived {
		f["survived"] = 1
	} else {
		f["survived"] = 0
	}

	// Explode list-valued fields into scalars.
	if len(r.ReviveStages) > 0 {
		f["first_revive_stage"] = float64(r.ReviveStages[0])
	}
	if len(r.ReviveStages) > 1 {
		f["second_revive_stage"] = float64(r.ReviveStages[1])
	}
	if len(r.EnrageLog) > 0 {
		peak := r.EnrageLog[0]
		for _, s := range r.EnrageLog[1:] {
			if s > peak {
				peak = s
			}
		}
		f["peak_enrage_stacks"] = float64(peak)
	}

	// Derived metrics.
	if r.ElapsedTime > 0 {
		f["loot_per_hour"] = r.Loot / (r.ElapsedTime / 3600)
	}

	return f
}

// Reduce computes per-field mean, sample standard deviation and extrema
// across a batch. Fields absent from some records (e.g. revive stages) are
// reduced over the records that have them.
func Reduce(results []combat.Result) Summary {
	sums := make(map[string][]float64)
	for _, r := range results {
		for name, v := range Fields(r) {
			sums[name] = append(sums[name], v)
		}
	}

	summary := Summary{
		Iterations: len(results),
		Fields:     make(map[string]FieldStats, len(sums)),
	}
	for name, values := range sums {
		summary.Fields[name] = reduceField(values)
	}
	return summary
}

func reduceField(values []float64) FieldStats {
	n := float64(len(values))
	if n == 0 {
		return FieldStats{}
	}

	var sum float64
	min, max := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / n

	var std float64
	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / (n - 1))
	}

	return FieldStats{Mean: mean, Std: std, Min: min, Max: max}
}

// FieldNames returns a summary's field names in stable sorted order, for
// rendering.
func (s Summary) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
