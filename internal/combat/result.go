package combat

// Result is the flat record of named counters one completed run produces.
// It is written by exactly one simulation and consumed by the aggregator.
type Result struct {
	// Offensive counters.
	Attacks      int     `json:"attacks"`
	Crits        int     `json:"crits"`
	Multistrikes int     `json:"multistrikes"`
	Echoes       int     `json:"echoes"`
	Kills        int     `json:"kills"`
	BossKills    int     `json:"boss_kills"`
	TrampleKills int     `json:"trample_kills"`
	DamageDealt  float64 `json:"damage_dealt"`

	// Defensive counters. DamageTaken is post-mitigation; DamageMitigated
	// is the share removed by damage reduction on non-evaded hits.
	Evades          int     `json:"evades"`
	EnemyEvades     int     `json:"enemy_evades"`
	DamageTaken     float64 `json:"damage_taken"`
	DamageMitigated float64 `json:"damage_mitigated"`
	DamageReflected float64 `json:"damage_reflected"`

	// Proc counters.
	StunsApplied      int     `json:"stuns_applied"`
	StunTimeInflicted float64 `json:"stun_time_inflicted"`
	LifestealProcs    int     `json:"lifesteal_procs"`

	// Healing, bucketed by source. Adding a heal source without adding its
	// bucket here is a programmer error the entity layer panics on.
	HealingRegen     float64 `json:"healing_regen"`
	HealingLifesteal float64 `json:"healing_lifesteal"`
	HealingPotion    float64 `json:"healing_potion"`
	Overhealing      float64 `json:"overhealing"`

	// Progression.
	Loot        float64 `json:"loot"`
	ElapsedTime float64 `json:"elapsed_time"`
	FinalStage  int     `json:"final_stage"`
	FinalHP     float64 `json:"final_hp"`
	Survived    bool    `json:"survived"`

	// ReviveStages logs the stage each revive happened on, in order.
	ReviveStages []int `json:"revive_stages"`

	// EnrageLog records the final enrage stack count of each boss fight.
	EnrageLog []int `json:"enrage_log"`
}
