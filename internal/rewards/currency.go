package rewards

// Currency names as stored in user balances.
const (
	CurrencyPlanks   = "planks"
	CurrencyStone    = "stone"
	CurrencyIron     = "iron"
	CurrencyCopper   = "copper"
	CurrencySilver   = "silver"
	CurrencyGold     = "gold"
	CurrencyDiamond  = "diamond"
	CurrencyEmerald  = "emerald"
	CurrencyMagicKey = "magic_key"
	CurrencyAura     = "aura"
	CurrencyBling    = "bling"
)

// Box tiers, cheapest first.
const (
	BoxSmall   = "small"
	BoxRegular = "regular"
	BoxBig     = "big"
	BoxMega    = "mega"
	BoxOmega   = "omega"
	BoxUltra   = "ultra"

	BoxMystery  = "mystery"
	BoxArtifact = "artifact"
)

// Collectible kinds.
const (
	CollectibleCharacter = "character"
	CollectibleSkin      = "skin"
	CollectibleArtifact  = "artifact"
	CollectibleBadge     = "badge"
)

// Character rarities, also used for Starr Drops.
const (
	RarityRare           = "Rare"
	RaritySuperRare      = "Super Rare"
	RarityEpic           = "Epic"
	RarityMythic         = "Mythic"
	RarityLegendary      = "Legendary"
	RarityUltraLegendary = "Ultra Legendary"
)
