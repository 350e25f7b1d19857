package stats

// GrowthCurve models the per-level growth of a base stat:
//
//	value = Base + level*(Linear + Step*floor(level/StepSize))
//
// Every StepSize levels the per-level gain jumps by Step.
type GrowthCurve struct {
	Base     float64
	Linear   float64
	Step     float64
	StepSize int
}

// At returns the curve value at the given upgrade level.
func (c GrowthCurve) At(level int) float64 {
	if level <= 0 {
		return c.Base
	}
	step := 0.0
	if c.StepSize > 0 {
		step = c.Step * float64(level/c.StepSize)
	}
	return c.Base + float64(level)*(c.Linear+step)
}

// Growth curves per archetype. Base constants live in the final-stat
// accessors, not here, because additive bonuses slot in between.
var (
	borgeHPCurve    = GrowthCurve{Linear: 2.53, Step: 0.01, StepSize: 5}
	borgePowerCurve = GrowthCurve{Linear: 0.5, Step: 0.01, StepSize: 10}
	borgeRegenCurve = GrowthCurve{Linear: 0.03, Step: 0.01, StepSize: 30}

	ozzyHPCurve    = GrowthCurve{Linear: 2, Step: 0.03, StepSize: 5}
	ozzyPowerCurve = GrowthCurve{Linear: 0.3, Step: 0.01, StepSize: 10}
	ozzyRegenCurve = GrowthCurve{Linear: 0.05, Step: 0.01, StepSize: 30}
)
