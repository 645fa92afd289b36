package progression

import "math"

const (
	// MaxLevel is the cap of the main track.
	MaxLevel = 100
	// MaxGoldenGrowthTier is the last golden tier with a growing cost.
	// Tiers past it all cost GoldenFlatCost.
	MaxGoldenGrowthTier = 50

	GoldenBaseCost = 100
	GoldenGrowth   = 1.1
	GoldenFlatCost = 3000
)

// Progress is the position of an XP counter on a track.
type Progress struct {
	Level  int   `json:"level"`
	Needed int64 `json:"needed"` // cost of the next level, 0 at the cap
	Spent  int64 `json:"spent"`  // XP consumed by completed levels
}

// band is a run of levels whose per-level cost grows linearly.
type band struct {
	from, to  int
	base      int64 // cost of the first level in the band
	increment int64 // cost growth per level inside the band
}

var mainBands = []band{
	{1, 10, 100, 150},
	{11, 25, 1750, 250},
	{26, 50, 5900, 400},
	{51, 75, 16100, 600},
	{76, 99, 31300, 800},
}

// MainLevelCost returns the XP required to complete the given level of the
// main track, i.e. to advance from level to level+1. Levels at or past the
// cap cost nothing.
func MainLevelCost(level int) int64 {
	if level < 1 || level >= MaxLevel {
		return 0
	}
	for _, b := range mainBands {
		if level >= b.from && level <= b.to {
			return b.base + b.increment*int64(level-b.from)
		}
	}
	return 0
}

// MainLevel maps accumulated main-track XP to the level the user sits at.
// Accumulates level costs until the next one would exceed xp; xp=0 is
// level 1. Pure: negative input is treated as zero.
func MainLevel(xp int64) Progress {
	if xp < 0 {
		xp = 0
	}

	var spent int64
	level := 1
	for level < MaxLevel {
		cost := MainLevelCost(level)
		if spent+cost > xp {
			return Progress{Level: level, Needed: cost, Spent: spent}
		}
		spent += cost
		level++
	}
	// capped, no further growth
	return Progress{Level: MaxLevel, Needed: 0, Spent: spent}
}

// GoldenTierCost returns the golden-XP required to complete the given tier.
// The cost grows 10% per tier up to tier 50 and is flat afterwards, so the
// pass never runs out of tiers.
func GoldenTierCost(tier int) int64 {
	if tier < 1 {
		return 0
	}
	if tier > MaxGoldenGrowthTier {
		return GoldenFlatCost
	}
	return int64(math.Round(GoldenBaseCost * math.Pow(GoldenGrowth, float64(tier-1))))
}

// GoldenTier maps accumulated golden XP to a pass tier. There is no cap:
// past tier 50 every tier costs GoldenFlatCost.
func GoldenTier(xp int64) Progress {
	if xp < 0 {
		xp = 0
	}

	var spent int64
	tier := 1
	for tier <= MaxGoldenGrowthTier {
		cost := GoldenTierCost(tier)
		if spent+cost > xp {
			return Progress{Level: tier, Needed: cost, Spent: spent}
		}
		spent += cost
		tier++
	}

	// infinite flat-cost tiers
	remaining := xp - spent
	extra := remaining / GoldenFlatCost
	tier += int(extra)
	spent += extra * GoldenFlatCost
	return Progress{Level: tier, Needed: GoldenFlatCost, Spent: spent}
}
