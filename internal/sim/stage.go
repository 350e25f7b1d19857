package sim

import (
	"github.com/lawnchairsociety/huntersim/internal/combat"
	"github.com/lawnchairsociety/huntersim/internal/stats"
)

// Enemies per regular wave.
const waveSize = 10

// StageController spawns the next wave or boss and keeps its stage counter
// in step with the hunter's.
type StageController struct {
	stage           int
	archetype       stats.Archetype
	regenReduction  float64
	bossHPReduction float64
}

// NewStageController derives spawn modifiers from the hunter's sheet once;
// they do not change during a run.
func NewStageController(sheet *stats.Sheet) *StageController {
	return &StageController{
		archetype:       sheet.Archetype(),
		regenReduction:  sheet.EnemyRegenReduction(),
		bossHPReduction: sheet.BossHPReduction(),
	}
}

// Stage returns the controller's current stage.
func (c *StageController) Stage() int { return c.stage }

// IsBossStage reports whether the current stage spawns a boss. Every 100th
// stage does, excluding stage 0.
func (c *StageController) IsBossStage() bool {
	return c.stage > 0 && c.stage%100 == 0
}

// SpawnWave creates the fixed-size wave of regular enemies for the current
// stage.
func (c *StageController) SpawnWave() []*combat.Enemy {
	wave := make([]*combat.Enemy, waveSize)
	for i := range wave {
		wave[i] = combat.NewEnemy(c.stage, c.regenReduction)
	}
	return wave
}

// SpawnBoss creates the boss for the current stage's tier.
func (c *StageController) SpawnBoss() *combat.Boss {
	return combat.NewBoss(c.archetype, c.stage/100, c.bossHPReduction)
}

// Advance completes the current stage, incrementing both the controller's
// counter and the hunter's. A stage completes only once every enemy in its
// wave is dead.
func (c *StageController) Advance(h *combat.Hunter) {
	c.stage++
	h.AdvanceStage()
}
