package services

import (
	"testing"

	"saucebot/internal/rewards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierRewardCadence(t *testing.T) {
	ten := TierReward(10)
	require.Len(t, ten.Grants, 1)
	assert.Equal(t, rewards.GrantBox, ten.Grants[0].Kind)
	assert.Equal(t, rewards.BoxMystery, ten.Grants[0].Box)

	five := TierReward(5)
	require.Len(t, five.Grants, 1)
	assert.Equal(t, rewards.BoxBig, five.Grants[0].Box)

	plain := TierReward(7)
	require.Len(t, plain.Grants, 1)
	assert.Equal(t, rewards.GrantCurrency, plain.Grants[0].Kind)
	assert.Equal(t, rewards.CurrencyGold, plain.Grants[0].Currency)
	assert.Equal(t, int64(14), plain.Grants[0].Amount)
}

func TestTierRewardScalesWithTier(t *testing.T) {
	low := TierReward(1)
	high := TierReward(49)
	assert.Less(t, low.Grants[0].Amount, high.Grants[0].Amount)
}
