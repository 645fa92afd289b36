package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserBuilding is the per-user level state of one building type. Level 0
// rows are materialized lazily on the first interaction with the type.
type UserBuilding struct {
	bun.BaseModel `bun:"table:user_building"`

	UserID          string    `bun:"user_id,pk" json:"user_id"`
	Type            string    `bun:"type,pk" json:"type"`
	Level           int       `bun:"level" json:"level"`
	LastCollectedAt time.Time `bun:"last_collected_at" json:"last_collected_at"`
}
