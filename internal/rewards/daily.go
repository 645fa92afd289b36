package rewards

import (
	"math/rand"

	"github.com/mroth/weightedrand/v2"
)

// DailyTable is the daily-claim distribution. Amounts scale with the guild's
// boost tier and the user's streak before the draw is applied.
var DailyTable = MustTable("daily-claim", []Entry{
	{Until: 40, Generate: func(r *rand.Rand) Outcome {
		return one("Daily Planks", Currency(CurrencyPlanks, amount(r, 300, 600)))
	}},
	{Until: 65, Generate: func(r *rand.Rand) Outcome {
		return one("Daily Stone", Currency(CurrencyStone, amount(r, 50, 100)))
	}},
	{Until: 85, Generate: func(r *rand.Rand) Outcome {
		return one("Daily Iron", Currency(CurrencyIron, amount(r, 20, 45)))
	}},
	{Until: 95, Generate: func(r *rand.Rand) Outcome {
		return one("Daily Box", Box(BoxSmall, 1))
	}},
	{Until: 100, Generate: func(r *rand.Rand) Outcome {
		return one("Daily Gold", Currency(CurrencyGold, amount(r, 1, 2)))
	}},
})

// WeeklyTable is the weekly-claim distribution, one notch richer across the
// board.
var WeeklyTable = MustTable("weekly-claim", []Entry{
	{Until: 35, Generate: func(r *rand.Rand) Outcome {
		return one("Weekly Planks", Currency(CurrencyPlanks, amount(r, 1500, 3000)))
	}},
	{Until: 60, Generate: func(r *rand.Rand) Outcome {
		return one("Weekly Iron", Currency(CurrencyIron, amount(r, 100, 220)))
	}},
	{Until: 80, Generate: func(r *rand.Rand) Outcome {
		return one("Weekly Box", Box(BoxBig, 1))
	}},
	{Until: 95, Generate: func(r *rand.Rand) Outcome {
		return one("Weekly Gold", Currency(CurrencyGold, amount(r, 5, 12)))
	}},
	{Until: 100, Generate: func(r *rand.Rand) Outcome {
		return one("Weekly Mystery Box", Box(BoxMystery, 1))
	}},
})

// BoostMultiplier maps a guild's booster tier to the claim multiplier.
func BoostMultiplier(tier int) int64 {
	switch {
	case tier >= 3:
		return 4
	case tier == 2:
		return 3
	case tier == 1:
		return 2
	default:
		return 1
	}
}

// DailyClaim draws the daily reward and applies the boost-tier multiplier to
// its numeric component.
func DailyClaim(r *rand.Rand, boostTier int) Outcome {
	return DailyTable.Draw(r).Multiply(BoostMultiplier(boostTier))
}

// WeeklyClaim draws the weekly reward and applies the boost-tier multiplier.
func WeeklyClaim(r *rand.Rand, boostTier int) Outcome {
	return WeeklyTable.Draw(r).Multiply(BoostMultiplier(boostTier))
}

// popupChooser grants the completion reward of a pop-up question.
var popupChooser = newChooser([]weightedrand.Choice[Outcome, int]{
	weightedrand.NewChoice(one("Pop-up Planks", Currency(CurrencyPlanks, 250)), 45),
	weightedrand.NewChoice(one("Pop-up Iron", Currency(CurrencyIron, 25)), 30),
	weightedrand.NewChoice(one("Pop-up Aura", Currency(CurrencyAura, 10)), 15),
	weightedrand.NewChoice(one("Pop-up Box", Box(BoxRegular, 1)), 8),
	weightedrand.NewChoice(one("Pop-up Gold", Currency(CurrencyGold, 2)), 2),
})

// PopupReward picks the reward for a correctly answered pop-up.
func PopupReward() Outcome {
	return popupChooser.Pick()
}
