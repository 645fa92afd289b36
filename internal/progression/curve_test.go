package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainLevelFresh(t *testing.T) {
	p := MainLevel(0)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(100), p.Needed)
	assert.Equal(t, int64(0), p.Spent)
}

func TestMainLevelFirstLevelUp(t *testing.T) {
	p := MainLevel(100)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, int64(250), p.Needed)
	assert.Equal(t, int64(100), p.Spent)
}

func TestMainLevelWindowBracketsInput(t *testing.T) {
	for _, xp := range []int64{0, 1, 99, 100, 101, 1449, 1450, 54321, 999999} {
		p := MainLevel(xp)
		if p.Level == MaxLevel {
			continue
		}
		require.LessOrEqual(t, p.Spent, xp, "xp=%d", xp)
		require.Greater(t, p.Spent+p.Needed, xp, "xp=%d", xp)
	}
}

func TestMainLevelMonotonic(t *testing.T) {
	prev := MainLevel(0).Level
	for xp := int64(0); xp < 2_000_000; xp += 777 {
		level := MainLevel(xp).Level
		require.GreaterOrEqual(t, level, prev, "xp=%d", xp)
		prev = level
	}
}

func TestMainLevelCap(t *testing.T) {
	var total int64
	for l := 1; l < MaxLevel; l++ {
		total += MainLevelCost(l)
	}

	p := MainLevel(total)
	assert.Equal(t, MaxLevel, p.Level)
	assert.Equal(t, int64(0), p.Needed)

	p = MainLevel(total + 1_000_000)
	assert.Equal(t, MaxLevel, p.Level)
	assert.Equal(t, int64(0), p.Needed)
	assert.Equal(t, total, p.Spent)
}

func TestMainLevelCostBandBoundaries(t *testing.T) {
	// costs never decrease from one level to the next
	prev := MainLevelCost(1)
	for l := 2; l < MaxLevel; l++ {
		cost := MainLevelCost(l)
		require.GreaterOrEqual(t, cost, prev, "level=%d", l)
		prev = cost
	}
}

func TestGoldenTierFresh(t *testing.T) {
	p := GoldenTier(0)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(100), p.Needed)
	assert.Equal(t, int64(0), p.Spent)
}

func TestGoldenTierGrowth(t *testing.T) {
	// tier 2 costs 110 (10% over the base)
	p := GoldenTier(100)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, int64(110), p.Needed)
	assert.Equal(t, int64(100), p.Spent)
}

func TestGoldenTierFlatAfter50(t *testing.T) {
	var total int64
	for tier := 1; tier <= MaxGoldenGrowthTier; tier++ {
		total += GoldenTierCost(tier)
	}

	p := GoldenTier(total)
	assert.Equal(t, 51, p.Level)
	assert.Equal(t, int64(GoldenFlatCost), p.Needed)

	// every flat tier past 50 costs exactly 3000
	p = GoldenTier(total + 3*GoldenFlatCost + 1)
	assert.Equal(t, 54, p.Level)
	assert.Equal(t, int64(GoldenFlatCost), p.Needed)
	assert.Equal(t, total+3*GoldenFlatCost, p.Spent)
}

func TestGoldenTierWindowBracketsInput(t *testing.T) {
	for _, xp := range []int64{0, 50, 99, 100, 5000, 123456, 9_999_999} {
		p := GoldenTier(xp)
		require.LessOrEqual(t, p.Spent, xp, "xp=%d", xp)
		require.Greater(t, p.Spent+p.Needed, xp, "xp=%d", xp)
	}
}
