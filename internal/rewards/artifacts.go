package rewards

import "math/rand"

// artifactWeights are the fixed percentages of the 15 artifacts; they sum to
// exactly 100. The silver fallback below is reachable only if floating
// rounding leaves a gap.
var artifactWeights = []struct {
	name string
	pct  float64
}{
	{"Ancient Ladle", 14},
	{"Rusty Crown", 12},
	{"Cracked Chalice", 11},
	{"Bronze Sundial", 10},
	{"Weathered Map", 9},
	{"Jade Figurine", 8},
	{"Ivory Dice", 7},
	{"Silver Locket", 6},
	{"Gilded Quill", 5},
	{"Obsidian Mirror", 4.5},
	{"Amber Scarab", 3.5},
	{"Crystal Orb", 3},
	{"Phoenix Feather", 2.5},
	{"Dragon Scale", 2.5},
	{"Celestial Compass", 2},
}

// ArtifactTable draws one of the named artifacts.
var ArtifactTable = buildArtifactTable()

func buildArtifactTable() *Table {
	entries := make([]Entry, 0, len(artifactWeights))
	cum := 0.0
	for _, w := range artifactWeights {
		cum += w.pct
		name := w.name
		entries = append(entries, Entry{
			Until: cum,
			Generate: func(r *rand.Rand) Outcome {
				return one(name, Collectible(CollectibleArtifact, name))
			},
		})
	}
	return MustTable("artifact", entries).WithFallback(func(r *rand.Rand) Outcome {
		return one("Silver Consolation", Currency(CurrencySilver, 10))
	})
}

// OpenArtifactBox performs the single artifact draw.
func OpenArtifactBox(r *rand.Rand) Outcome {
	return ArtifactTable.Draw(r)
}
