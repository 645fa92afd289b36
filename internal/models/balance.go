package models

import "github.com/uptrace/bun"

// UserBalance is one currency balance of one user. Balances never go
// negative; adjustments that would are rejected by the datastore.
type UserBalance struct {
	bun.BaseModel `bun:"table:user_balance"`

	UserID   string `bun:"user_id,pk" json:"user_id"`
	Currency string `bun:"currency,pk" json:"currency"`
	Amount   int64  `bun:"amount" json:"amount"`
}
