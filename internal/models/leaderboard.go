package models

import "time"

const (
	BOARD_GOLD     = "gold"
	BOARD_XP       = "xp"
	BOARD_DIAMONDS = "diamonds"
)

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Score    int64  `json:"score"`
}

// BoostState mirrors an active boost so it survives a process restart.
type BoostState struct {
	Multiplier int       `msgpack:"multiplier" json:"multiplier"`
	ExpiresAt  time.Time `msgpack:"expires_at" json:"expires_at"`
}
