package rewards

import (
	"math/rand"

	"github.com/mroth/weightedrand/v2"
)

// SugarRushFactor triples the numeric part of a box draw while the window is
// active. Applied post-draw via Outcome.Multiply, never by altering the
// distribution.
const SugarRushFactor = 3

// boxDrawCounts is how many draws from BoxOpenTable each tier grants.
var boxDrawCounts = map[string]int{
	BoxSmall:   2,
	BoxRegular: 4,
	BoxBig:     7,
	BoxMega:    10,
	BoxOmega:   20,
	BoxUltra:   35,
}

// BoxDrawCount returns the number of reward draws for a box tier, 0 for an
// unknown tier.
func BoxDrawCount(tier string) int {
	return boxDrawCounts[tier]
}

// BoxOpenTable is the per-draw distribution inside every standard box.
var BoxOpenTable = MustTable("box-open", []Entry{
	{Until: 35.9, Generate: func(r *rand.Rand) Outcome {
		return one("Planks", Currency(CurrencyPlanks, amount(r, 200, 700)))
	}},
	{Until: 60.9, Generate: func(r *rand.Rand) Outcome {
		return one("Stone", Currency(CurrencyStone, amount(r, 40, 90)))
	}},
	{Until: 80.9, Generate: func(r *rand.Rand) Outcome {
		return one("Iron", Currency(CurrencyIron, amount(r, 12, 30)))
	}},
	{Until: 93.1, Generate: func(r *rand.Rand) Outcome {
		return one("Copper", Currency(CurrencyCopper, amount(r, 30, 90)))
	}},
	{Until: 97.1, Generate: func(r *rand.Rand) Outcome {
		return one("Silver", Currency(CurrencySilver, amount(r, 5, 10)))
	}},
	{Until: 99.1, Generate: func(r *rand.Rand) Outcome {
		return one("Gold", Currency(CurrencyGold, amount(r, 1, 3)))
	}},
	{Until: 99.2, Generate: func(r *rand.Rand) Outcome {
		return one("Diamond", Currency(CurrencyDiamond, 1))
	}},
	{Until: 99.3, Generate: func(r *rand.Rand) Outcome {
		return one("Mystery Box", Box(BoxMystery, 1))
	}},
	{Until: 99.4, Generate: func(r *rand.Rand) Outcome {
		return one("Magic Key", Currency(CurrencyMagicKey, 1))
	}},
	{Until: 99.5, Generate: func(r *rand.Rand) Outcome {
		return one("Ultra Box", Box(BoxUltra, 1))
	}},
	{Until: 100, Generate: func(r *rand.Rand) Outcome {
		return one("Emerald", Currency(CurrencyEmerald, 1))
	}},
})

// boxTierChooser picks which box a user receives from the box command.
// Integer weights, so the chooser is exact here.
var boxTierChooser = newChooser([]weightedrand.Choice[string, int]{
	weightedrand.NewChoice(BoxSmall, 50),
	weightedrand.NewChoice(BoxRegular, 25),
	weightedrand.NewChoice(BoxBig, 15),
	weightedrand.NewChoice(BoxMega, 5),
	weightedrand.NewChoice(BoxOmega, 4),
	weightedrand.NewChoice(BoxUltra, 1),
})

func newChooser[T any](choices []weightedrand.Choice[T, int]) *weightedrand.Chooser[T, int] {
	c, err := weightedrand.NewChooser(choices...)
	if err != nil {
		panic(err)
	}
	return c
}

// PickBoxTier selects a random box tier with the fixed 50/25/15/5/4/1 split.
func PickBoxTier() string {
	return boxTierChooser.Pick()
}

// OpenBox performs every draw for the given tier and returns the outcomes in
// draw order. sugarRush triples currency amounts per draw.
func OpenBox(r *rand.Rand, tier string, sugarRush bool) []Outcome {
	n := BoxDrawCount(tier)
	outcomes := make([]Outcome, 0, n)
	for i := 0; i < n; i++ {
		o := BoxOpenTable.Draw(r)
		if sugarRush {
			o = o.Multiply(SugarRushFactor)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}
