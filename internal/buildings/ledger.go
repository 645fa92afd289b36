package buildings

import (
	"errors"
	"fmt"
	"math"
	"time"

	"saucebot/internal/rewards"
)

var (
	ErrUnknownBuilding = errors.New("unknown building type")
	ErrMaxLevel        = errors.New("building already at max level")
)

// PrerequisiteError lists the unmet prerequisite edges of an upgrade attempt.
type PrerequisiteError struct {
	Building string
	Missing  map[string]int // prerequisite name → required minimum level
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("building %q: %d unmet prerequisites", e.Building, len(e.Missing))
}

// InsufficientError lists the per-currency shortfall of an upgrade or
// purchase.
type InsufficientError struct {
	Shortfall map[string]int64
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("insufficient resources in %d currencies", len(e.Shortfall))
}

// Instance is the per-user state of one building. Level 0 means not yet
// built.
type Instance struct {
	Type          string
	Level         int
	LastCollected time.Time
}

// Levels is a user's building levels keyed by type name; absent means 0.
type Levels map[string]int

// CanUpgrade checks every prerequisite edge of the building against the
// user's levels. All edges must be satisfied simultaneously.
func CanUpgrade(levels Levels, name string) error {
	t, ok := Get(name)
	if !ok {
		return ErrUnknownBuilding
	}
	if levels[name] >= MaxBuildingLevel {
		return ErrMaxLevel
	}

	missing := map[string]int{}
	for dep, min := range t.Requires {
		if levels[dep] < min {
			missing[dep] = min
		}
	}
	if len(missing) > 0 {
		return &PrerequisiteError{Building: name, Missing: missing}
	}
	return nil
}

// UpgradeCost returns the fixed cost of one specific target level. Costs are
// per-level, not cumulative: each level is paid in full regardless of prior
// levels.
func UpgradeCost(name string, targetLevel int) (Cost, error) {
	t, ok := Get(name)
	if !ok {
		return nil, ErrUnknownBuilding
	}
	if targetLevel < 1 || targetLevel > MaxBuildingLevel {
		return nil, ErrMaxLevel
	}
	return t.Costs[targetLevel-1], nil
}

// Shortfall compares balances against a cost and returns the missing amount
// per currency; empty means affordable.
func Shortfall(balances map[string]int64, cost Cost) map[string]int64 {
	missing := map[string]int64{}
	for currency, amount := range cost {
		if have := balances[currency]; have < amount {
			missing[currency] = amount - have
		}
	}
	return missing
}

// Yield is the result of one collection: whole currency units to grant plus
// the updated fractional remainder pool.
type Yield struct {
	Grants    map[string]int64
	Remainder float64
	Collected bool
}

// Collect computes the yield of an instance at now. Within one collection
// period of the last collection it yields nothing and leaves the timestamp
// untouched; there are no partial or prorated yields. Fractional output
// accumulates in remainder (a single pool shared across the user's
// buildings) and only whole units are granted.
func Collect(inst Instance, remainder float64, now time.Time) (Yield, time.Time) {
	t, ok := Get(inst.Type)
	if !ok || inst.Level < 1 || inst.Level > MaxBuildingLevel {
		return Yield{Remainder: remainder}, inst.LastCollected
	}
	if now.Sub(inst.LastCollected) < t.Period {
		return Yield{Remainder: remainder}, inst.LastCollected
	}

	grants := map[string]int64{}
	for currency, out := range t.Outputs[inst.Level-1] {
		whole, frac := math.Modf(out)
		if whole > 0 {
			grants[currency] += int64(whole)
		}
		remainder += frac
	}

	// drain whole units out of the pooled remainder; diamonds are the only
	// sub-unit producer in the catalog, so the pool is denominated in them
	if remainder >= 1 {
		whole := math.Floor(remainder)
		grants[rewards.CurrencyDiamond] += int64(whole)
		remainder -= whole
	}

	return Yield{Grants: grants, Remainder: remainder, Collected: true}, now
}
