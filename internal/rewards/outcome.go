package rewards

import "fmt"

type GrantKind string

const (
	GrantCurrency    GrantKind = "currency"
	GrantCollectible GrantKind = "collectible"
	GrantBox         GrantKind = "box"
)

// Grant is one thing a draw hands out. Exactly one of the three shapes is
// populated, selected by Kind.
type Grant struct {
	Kind GrantKind `json:"kind"`

	Currency string `json:"currency,omitempty"`
	Amount   int64  `json:"amount,omitempty"`

	CollectibleKind string `json:"collectible_kind,omitempty"`
	Collectible     string `json:"collectible,omitempty"`

	Box      string `json:"box,omitempty"`
	Quantity int64  `json:"quantity,omitempty"`
}

// Outcome is the ephemeral result of one reward draw. It is applied to the
// account/inventory by the caller and never persisted as its own entity.
type Outcome struct {
	Label  string  `json:"label"`
	Grants []Grant `json:"grants"`
}

func Currency(currency string, amount int64) Grant {
	return Grant{Kind: GrantCurrency, Currency: currency, Amount: amount}
}

func Collectible(kind, id string) Grant {
	return Grant{Kind: GrantCollectible, CollectibleKind: kind, Collectible: id}
}

func Box(box string, quantity int64) Grant {
	return Grant{Kind: GrantBox, Box: box, Quantity: quantity}
}

func one(label string, grants ...Grant) Outcome {
	return Outcome{Label: label, Grants: grants}
}

// Multiply scales every currency amount in the outcome, leaving collectible
// and box grants untouched. Used for the Sugar Rush multiplier, which applies
// after the base draw.
func (o Outcome) Multiply(factor int64) Outcome {
	if factor <= 1 {
		return o
	}
	grants := make([]Grant, len(o.Grants))
	copy(grants, o.Grants)
	for i := range grants {
		if grants[i].Kind == GrantCurrency {
			grants[i].Amount *= factor
		}
	}
	return Outcome{Label: o.Label, Grants: grants}
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s (%d grants)", o.Label, len(o.Grants))
}
