package models

import (
	"fmt"

	"github.com/uptrace/bun"
)

// UserInventory is one (user, item-kind) line. A line whose quantity drops
// to zero or below is deleted.
type UserInventory struct {
	bun.BaseModel `bun:"table:user_inventory"`

	UserID   string `bun:"user_id,pk" json:"user_id"`
	Kind     string `bun:"kind,pk" json:"kind"`
	Quantity int64  `bun:"quantity" json:"quantity"`
}

// Inventory kinds are namespaced strings: "box:small",
// "character:Sauce King", "artifact:Ancient Ladle", "shop:xp_potion".
func BoxKind(tier string) string             { return "box:" + tier }
func CollectibleKind(kind, id string) string { return fmt.Sprintf("%s:%s", kind, id) }
func ShopKind(item string) string            { return "shop:" + item }
