package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is one Discord account. Created lazily on first interaction, never
// deleted.
type User struct {
	bun.BaseModel `bun:"table:user"`

	ID        string    `bun:"id,pk" json:"id"`
	Username  string    `bun:"username" json:"username"`
	CreatedAt time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at" json:"updated_at"`

	// golden pass XP is global, unlike main XP which is per guild
	GoldenXP int64 `bun:"golden_xp" json:"golden_xp"`

	Streak       int        `bun:"streak" json:"streak"`
	LastDailyAt  *time.Time `bun:"last_daily_at" json:"last_daily_at"`
	LastWeeklyAt *time.Time `bun:"last_weekly_at" json:"last_weekly_at"`

	BoxesOpened  int `bun:"boxes_opened" json:"boxes_opened"`
	DropsCaught  int `bun:"drops_caught" json:"drops_caught"`
	CommandsUsed int `bun:"commands_used" json:"commands_used"`

	// pooled fractional building output, shared across the user's
	// diamond-producing buildings
	DiamondRemainder float64 `bun:"diamond_remainder" json:"-"`

	Balances []UserBalance `bun:"-" json:"balances,omitempty"`
}
