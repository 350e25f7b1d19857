package montecarlo

import (
	"math"
	"sort"

	"github.com/lawnchairsociety/huntersim/internal/combat"
)

// HigherIsBetter documents the improvement direction of each field, for
// the presentation layer only; the engine never interprets it. Fields not
// listed have no meaningful direction (they are descriptive).
var HigherIsBetter = map[string]bool{
	"final_stage":       true,
	"kills":             true,
	"boss_kills":        true,
	"loot":              true,
	"loot_per_hour":     true,
	"survived":          true,
	"damage_dealt":      true,
	"healing_lifesteal": true,
	"evades":            true,
	"elapsed_time":      false,
	"damage_taken":      false,
	"revives":           false,
}

// FieldDelta is the per-field comparison of two batches.
type FieldDelta struct {
	A     FieldStats `json:"a"`
	B     FieldStats `json:"b"`
	Delta float64    `json:"delta"`
	// Pct is the signed percentage difference of B's mean relative to A's.
	Pct float64 `json:"pct"`
}

// Comparison holds the reductions of two batches plus their signed deltas.
type Comparison struct {
	A      Summary               `json:"a"`
	B      Summary               `json:"b"`
	Fields map[string]FieldDelta `json:"fields"`
}

// Compare reduces both result sets independently and computes signed
// deltas and percentage differences per field. Fields present in only one
// batch are skipped; a field is only ever compared against itself.
func Compare(a, b []combat.Result) Comparison {
	sa, sb := Reduce(a), Reduce(b)

	cmp := Comparison{
		A:      sa,
		B:      sb,
		Fields: make(map[string]FieldDelta),
	}
	for name, fa := range sa.Fields {
		fb, ok := sb.Fields[name]
		if !ok {
			continue
		}
		delta := fb.Mean - fa.Mean
		pct := 0.0
		if fa.Mean != 0 {
			pct = delta / math.Abs(fa.Mean) * 100
		}
		cmp.Fields[name] = FieldDelta{A: fa, B: fb, Delta: delta, Pct: pct}
	}
	return cmp
}

// FieldNames returns the compared field names in stable sorted order.
func (c Comparison) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for name := range c.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
