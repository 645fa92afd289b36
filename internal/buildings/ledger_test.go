package buildings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saucebot/internal/rewards"
)

func TestCatalogValidates(t *testing.T) {
	require.NoError(t, validateCatalog())
}

func TestCanUpgradeNoPrereqs(t *testing.T) {
	require.NoError(t, CanUpgrade(Levels{}, Lumbermill))
}

func TestCanUpgradeMissingPrereq(t *testing.T) {
	// copper mine requires iron mine level 1; affordability is irrelevant
	err := CanUpgrade(Levels{Lumbermill: 0}, CopperMine)
	require.Error(t, err)

	var pe *PrerequisiteError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CopperMine, pe.Building)
	assert.Equal(t, 1, pe.Missing[IronMine])
}

func TestCanUpgradeAllEdgesRequired(t *testing.T) {
	// gold mine needs silver mine 2; level 1 is not enough
	err := CanUpgrade(Levels{SilverMine: 1}, GoldMine)
	var pe *PrerequisiteError
	require.ErrorAs(t, err, &pe)

	require.NoError(t, CanUpgrade(Levels{SilverMine: 2}, GoldMine))
}

func TestCanUpgradeMaxLevel(t *testing.T) {
	err := CanUpgrade(Levels{Lumbermill: MaxBuildingLevel}, Lumbermill)
	assert.ErrorIs(t, err, ErrMaxLevel)
}

func TestUpgradeCostPerLevelNotCumulative(t *testing.T) {
	c1, err := UpgradeCost(Lumbermill, 1)
	require.NoError(t, err)
	c2, err := UpgradeCost(Lumbermill, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(50), c1[rewards.CurrencyStone])
	assert.Equal(t, int64(140), c2[rewards.CurrencyStone])

	_, err = UpgradeCost(Lumbermill, 4)
	assert.ErrorIs(t, err, ErrMaxLevel)
	_, err = UpgradeCost("castle", 1)
	assert.ErrorIs(t, err, ErrUnknownBuilding)
}

func TestShortfall(t *testing.T) {
	cost := Cost{rewards.CurrencyStone: 140, rewards.CurrencyIron: 20}

	missing := Shortfall(map[string]int64{rewards.CurrencyStone: 140, rewards.CurrencyIron: 20}, cost)
	assert.Empty(t, missing)

	missing = Shortfall(map[string]int64{rewards.CurrencyStone: 100}, cost)
	assert.Equal(t, int64(40), missing[rewards.CurrencyStone])
	assert.Equal(t, int64(20), missing[rewards.CurrencyIron])
}

func TestCollectYieldsFullPeriodOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	inst := Instance{Type: Lumbermill, Level: 1, LastCollected: now.Add(-time.Hour)}

	yield, collectedAt := Collect(inst, 0, now)
	require.True(t, yield.Collected)
	assert.Equal(t, int64(120), yield.Grants[rewards.CurrencyPlanks])
	assert.Equal(t, now, collectedAt)

	// a second collection inside the same period yields nothing
	inst.LastCollected = collectedAt
	yield, collectedAt = Collect(inst, yield.Remainder, now.Add(30*time.Minute))
	assert.False(t, yield.Collected)
	assert.Empty(t, yield.Grants)
	assert.Equal(t, now, collectedAt)
}

func TestCollectNotBuilt(t *testing.T) {
	now := time.Now()
	yield, _ := Collect(Instance{Type: Lumbermill, Level: 0}, 0, now)
	assert.False(t, yield.Collected)
}

func TestCollectFractionalRemainderPooling(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	inst := Instance{Type: DiamondMine, Level: 1} // 0.2 diamonds per period

	remainder := 0.0
	granted := int64(0)
	for i := 0; i < 5; i++ {
		at := now.Add(time.Duration(i+1) * 9 * time.Hour)
		yield, collectedAt := Collect(inst, remainder, at)
		require.True(t, yield.Collected)
		remainder = yield.Remainder
		granted += yield.Grants[rewards.CurrencyDiamond]
		inst.LastCollected = collectedAt
	}

	// five collections of 0.2 cross the whole-unit threshold exactly once
	assert.Equal(t, int64(1), granted)
	assert.InDelta(t, 0.0, remainder, 1e-9)
}

func TestCollectMixedWholeAndFraction(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	inst := Instance{Type: DiamondMine, Level: 3} // 1.25 per period

	yield, _ := Collect(inst, 0.8, now.Add(9*time.Hour))
	require.True(t, yield.Collected)
	// 1 whole from the output plus 0.25+0.8 pooled crossing a unit
	assert.Equal(t, int64(2), yield.Grants[rewards.CurrencyDiamond])
	assert.InDelta(t, 0.05, yield.Remainder, 1e-9)
}
