package rewards

import "math/rand"

// MysteryBoxTable is the non-scaling distribution of the mystery box.
var MysteryBoxTable = MustTable("mystery-box", []Entry{
	{Until: 20, Generate: func(r *rand.Rand) Outcome {
		return one("Ultra Box Bundle",
			Box(BoxUltra, 1),
			Currency(CurrencyDiamond, 1),
		)
	}},
	// character grant with an Epic/Mythic/Legendary sub-split
	{Until: 50, Generate: func(r *rand.Rand) Outcome {
		sub := r.Float64() * 100
		switch {
		case sub < 60:
			return characterGrant(r, RarityEpic)
		case sub < 90:
			return characterGrant(r, RarityMythic)
		default:
			return characterGrant(r, RarityLegendary)
		}
	}},
	{Until: 60, Generate: func(r *rand.Rand) Outcome {
		return one("Gold Stash", Currency(CurrencyGold, 100))
	}},
	{Until: 61, Generate: func(r *rand.Rand) Outcome {
		return one("Diamond Cache", Currency(CurrencyDiamond, 5))
	}},
	{Until: 90, Generate: func(r *rand.Rand) Outcome {
		return one("Iron Hoard", Currency(CurrencyIron, 1000))
	}},
	{Until: 100, Generate: func(r *rand.Rand) Outcome {
		return one("Magic Keys", Currency(CurrencyMagicKey, 5))
	}},
})

// OpenMysteryBox performs the single mystery-box draw.
func OpenMysteryBox(r *rand.Rand) Outcome {
	return MysteryBoxTable.Draw(r)
}
