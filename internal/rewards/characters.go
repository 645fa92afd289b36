package rewards

import "math/rand"

// roster of collectible characters per rarity.
var characterRoster = map[string][]string{
	RarityRare:           {"Splat", "Drizzle", "Pickle", "Crouton", "Basil"},
	RaritySuperRare:      {"Mustardo", "Relish", "Saucier", "Peppercorn"},
	RarityEpic:           {"Sir Condiment", "Lady Marinara", "Baron Bechamel"},
	RarityMythic:         {"The Grand Ketchup", "Wasabi Wraith"},
	RarityLegendary:      {"Sauce King", "Umami Oracle"},
	RarityUltraLegendary: {"The Final Sauce"},
}

// PickCharacter returns a uniformly random character of the given rarity.
func PickCharacter(r *rand.Rand, rarity string) string {
	names := characterRoster[rarity]
	if len(names) == 0 {
		names = characterRoster[RarityRare]
	}
	return names[r.Intn(len(names))]
}

// characterGrant is the common "rarity sub-split then roster pick" generator.
func characterGrant(r *rand.Rand, rarity string) Outcome {
	return one(rarity+" Character", Collectible(CollectibleCharacter, PickCharacter(r, rarity)))
}
