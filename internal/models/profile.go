package models

// Profile is the read model served to the API and the bot's profile command.
type Profile struct {
	User       *User           `json:"user"`
	Balances   []UserBalance   `json:"balances"`
	Level      int             `json:"level"`
	LevelXP    int64           `json:"level_xp"`
	NextLevel  int64           `json:"next_level_xp"`
	GoldenTier int             `json:"golden_tier"`
	Buildings  []UserBuilding  `json:"buildings"`
	Inventory  []UserInventory `json:"inventory"`
}
