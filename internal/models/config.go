package models

import "github.com/uptrace/bun"

// Config is one key/value runtime setting. Guild-scoped settings use keys
// prefixed with the guild id.
type Config struct {
	bun.BaseModel `bun:"table:config"`

	Key   string `bun:"key,pk" json:"key"`
	Value string `bun:"value" json:"value"`
}
