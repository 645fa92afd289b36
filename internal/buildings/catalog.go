package buildings

import (
	"fmt"
	"time"

	"saucebot/internal/rewards"
)

// MaxBuildingLevel is fixed across the whole catalog.
const MaxBuildingLevel = 3

// Cost is a partial currency → amount mapping.
type Cost map[string]int64

// Output is the per-collection-period yield at one level. Fractional values
// accumulate in the user's remainder pool until a whole unit is reached.
type Output map[string]float64

// Type is one static catalog entry. Levels are 1-based; index 0 of Costs is
// the cost of building level 1, index 0 of Outputs its yield.
type Type struct {
	Name    string
	Costs   []Cost
	Outputs []Output
	Period  time.Duration
	// Requires maps prerequisite building name → minimum level. Every edge
	// must be satisfied before any upgrade (AND semantics).
	Requires map[string]int
}

const (
	Lumbermill  = "lumbermill"
	Quarry      = "quarry"
	IronMine    = "iron_mine"
	CopperMine  = "copper_mine"
	SilverMine  = "silver_mine"
	GoldMine    = "gold_mine"
	DiamondMine = "diamond_mine"
)

// Catalog is the immutable building table. Loaded once; the ledger only
// interprets it.
var Catalog = map[string]*Type{
	Lumbermill: {
		Name: Lumbermill,
		Costs: []Cost{
			{rewards.CurrencyStone: 50},
			{rewards.CurrencyStone: 140, rewards.CurrencyIron: 20},
			{rewards.CurrencyStone: 320, rewards.CurrencyIron: 60},
		},
		Outputs: []Output{
			{rewards.CurrencyPlanks: 120},
			{rewards.CurrencyPlanks: 300},
			{rewards.CurrencyPlanks: 650},
		},
		Period: time.Hour,
	},
	Quarry: {
		Name: Quarry,
		Costs: []Cost{
			{rewards.CurrencyPlanks: 400},
			{rewards.CurrencyPlanks: 900, rewards.CurrencyIron: 25},
			{rewards.CurrencyPlanks: 2000, rewards.CurrencyIron: 80},
		},
		Outputs: []Output{
			{rewards.CurrencyStone: 30},
			{rewards.CurrencyStone: 75},
			{rewards.CurrencyStone: 160},
		},
		Period: time.Hour,
	},
	IronMine: {
		Name: IronMine,
		Costs: []Cost{
			{rewards.CurrencyPlanks: 800, rewards.CurrencyStone: 120},
			{rewards.CurrencyPlanks: 1800, rewards.CurrencyStone: 300},
			{rewards.CurrencyPlanks: 4000, rewards.CurrencyStone: 700},
		},
		Outputs: []Output{
			{rewards.CurrencyIron: 10},
			{rewards.CurrencyIron: 24},
			{rewards.CurrencyIron: 55},
		},
		Period:   2 * time.Hour,
		Requires: map[string]int{Lumbermill: 1},
	},
	CopperMine: {
		Name: CopperMine,
		Costs: []Cost{
			{rewards.CurrencyPlanks: 1200, rewards.CurrencyIron: 40},
			{rewards.CurrencyPlanks: 2600, rewards.CurrencyIron: 110},
			{rewards.CurrencyPlanks: 6000, rewards.CurrencyIron: 280},
		},
		Outputs: []Output{
			{rewards.CurrencyCopper: 18},
			{rewards.CurrencyCopper: 45},
			{rewards.CurrencyCopper: 100},
		},
		Period:   2 * time.Hour,
		Requires: map[string]int{IronMine: 1},
	},
	SilverMine: {
		Name: SilverMine,
		Costs: []Cost{
			{rewards.CurrencyStone: 900, rewards.CurrencyCopper: 150},
			{rewards.CurrencyStone: 2100, rewards.CurrencyCopper: 380},
			{rewards.CurrencyStone: 5000, rewards.CurrencyCopper: 900},
		},
		Outputs: []Output{
			{rewards.CurrencySilver: 4},
			{rewards.CurrencySilver: 9},
			{rewards.CurrencySilver: 20},
		},
		Period:   4 * time.Hour,
		Requires: map[string]int{CopperMine: 1},
	},
	GoldMine: {
		Name: GoldMine,
		Costs: []Cost{
			{rewards.CurrencyIron: 600, rewards.CurrencySilver: 80},
			{rewards.CurrencyIron: 1400, rewards.CurrencySilver: 200},
			{rewards.CurrencyIron: 3200, rewards.CurrencySilver: 480},
		},
		Outputs: []Output{
			{rewards.CurrencyGold: 1},
			{rewards.CurrencyGold: 3},
			{rewards.CurrencyGold: 7},
		},
		Period:   6 * time.Hour,
		Requires: map[string]int{SilverMine: 2},
	},
	DiamondMine: {
		Name: DiamondMine,
		Costs: []Cost{
			{rewards.CurrencyGold: 40, rewards.CurrencySilver: 300},
			{rewards.CurrencyGold: 100, rewards.CurrencySilver: 700},
			{rewards.CurrencyGold: 240, rewards.CurrencySilver: 1600},
		},
		// sub-unit yields; whole diamonds are granted from the pooled
		// remainder
		Outputs: []Output{
			{rewards.CurrencyDiamond: 0.2},
			{rewards.CurrencyDiamond: 0.5},
			{rewards.CurrencyDiamond: 1.25},
		},
		Period:   8 * time.Hour,
		Requires: map[string]int{GoldMine: 2},
	},
}

// Get returns the catalog entry for a building name.
func Get(name string) (*Type, bool) {
	t, ok := Catalog[name]
	return t, ok
}

func init() {
	if err := validateCatalog(); err != nil {
		panic(err)
	}
}

// validateCatalog checks level counts and that the prerequisite graph is a
// DAG with valid edges.
func validateCatalog() error {
	for name, t := range Catalog {
		if len(t.Costs) != MaxBuildingLevel || len(t.Outputs) != MaxBuildingLevel {
			return fmt.Errorf("building %q: want %d levels of costs/outputs", name, MaxBuildingLevel)
		}
		for dep, min := range t.Requires {
			if dep == name {
				return fmt.Errorf("building %q requires itself", name)
			}
			if _, ok := Catalog[dep]; !ok {
				return fmt.Errorf("building %q requires unknown %q", name, dep)
			}
			if min < 1 || min > MaxBuildingLevel {
				return fmt.Errorf("building %q: bad minimum level %d for %q", name, min, dep)
			}
		}
	}

	// cycle check over prerequisite edges
	const (
		unseen = iota
		visiting
		done
	)
	state := map[string]int{}
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("building prerequisite cycle through %q", name)
		case done:
			return nil
		}
		state[name] = visiting
		for dep := range Catalog[name].Requires {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}
	for name := range Catalog {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}
