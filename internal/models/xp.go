package models

import "github.com/uptrace/bun"

// UserXP is the main-track experience counter, keyed by (user, guild).
type UserXP struct {
	bun.BaseModel `bun:"table:user_xp"`

	UserID  string `bun:"user_id,pk" json:"user_id"`
	GuildID string `bun:"guild_id,pk" json:"guild_id"`
	XP      int64  `bun:"xp" json:"xp"`
}
