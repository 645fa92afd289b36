package rewards

import "math/rand"

// starrOdds describes the nested roll for one Starr Drop rarity: the chance
// of a character grant, and the currency consolation range otherwise. Higher
// rarities skew toward characters and bigger amounts.
type starrOdds struct {
	characterPct float64
	currency     string
	min, max     int64
}

var starrRewards = map[string]starrOdds{
	RarityRare:           {characterPct: 10, currency: CurrencyIron, min: 100, max: 300},
	RaritySuperRare:      {characterPct: 20, currency: CurrencyCopper, min: 150, max: 400},
	RarityEpic:           {characterPct: 35, currency: CurrencyGold, min: 2, max: 4},
	RarityMythic:         {characterPct: 55, currency: CurrencyGold, min: 5, max: 8},
	RarityLegendary:      {characterPct: 75, currency: CurrencyDiamond, min: 3, max: 5},
	RarityUltraLegendary: {characterPct: 100, currency: CurrencyDiamond, min: 10, max: 10},
}

func starrGenerate(rarity string) func(r *rand.Rand) Outcome {
	return func(r *rand.Rand) Outcome {
		odds := starrRewards[rarity]
		if r.Float64()*100 < odds.characterPct {
			return characterGrant(r, rarity)
		}
		return one(rarity+" Drop", Currency(odds.currency, amount(r, odds.min, odds.max)))
	}
}

// StarrDropRarityTable selects the rarity of a spawned Starr Drop.
var StarrDropRarityTable = MustTable("starr-drop-rarity", []Entry{
	{Until: 50, Generate: starrGenerate(RarityRare)},
	{Until: 82, Generate: starrGenerate(RaritySuperRare)},
	{Until: 94, Generate: starrGenerate(RarityEpic)},
	{Until: 98.9, Generate: starrGenerate(RarityMythic)},
	{Until: 99.9, Generate: starrGenerate(RarityLegendary)},
	{Until: 100, Generate: starrGenerate(RarityUltraLegendary)},
})

// rarityThresholds mirrors StarrDropRarityTable for spawn-time selection,
// when only the rarity is needed and the reward roll happens at claim time.
var rarityThresholds = []struct {
	until  float64
	rarity string
}{
	{50, RarityRare},
	{82, RaritySuperRare},
	{94, RarityEpic},
	{98.9, RarityMythic},
	{99.9, RarityLegendary},
	{100, RarityUltraLegendary},
}

// PickStarrRarity rolls only the rarity of a Starr Drop.
func PickStarrRarity(r *rand.Rand) string {
	roll := r.Float64() * 100
	for _, t := range rarityThresholds {
		if roll < t.until {
			return t.rarity
		}
	}
	return RarityUltraLegendary
}

// StarrDropReward resolves the nested reward roll for an already-selected
// rarity, at claim time.
func StarrDropReward(r *rand.Rand, rarity string) Outcome {
	if _, ok := starrRewards[rarity]; !ok {
		rarity = RarityRare
	}
	return starrGenerate(rarity)(r)
}
