package rewards

import (
	"fmt"
	"math"
	"math/rand"
)

// tolerance absorbs floating-point drift when summing percentage widths.
const tolerance = 1e-9

// IntegrityError reports a weighted table whose cumulative thresholds do not
// reach exactly 100. It is fatal at construction time: a table that ships
// with a gap silently corrupts drop rates.
type IntegrityError struct {
	Table string
	Total float64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("reward table %q thresholds sum to %v, want 100", e.Table, e.Total)
}

// Entry pairs a cumulative threshold with an outcome generator. A roll r
// selects the first entry with r < Until, so order matters and thresholds
// must be strictly increasing.
type Entry struct {
	Until    float64
	Generate func(r *rand.Rand) Outcome
}

// Table is a categorical distribution over disjoint percentage ranges,
// sampled with a single uniform roll in [0,100).
type Table struct {
	name     string
	entries  []Entry
	fallback func(r *rand.Rand) Outcome
}

// NewTable validates the entries and returns the table. The last threshold
// must land on 100 (within floating tolerance) and thresholds must be
// monotonically increasing.
func NewTable(name string, entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, &IntegrityError{Table: name, Total: 0}
	}
	prev := 0.0
	for _, e := range entries {
		if e.Until <= prev {
			return nil, fmt.Errorf("reward table %q: threshold %v not increasing", name, e.Until)
		}
		prev = e.Until
	}
	if math.Abs(prev-100) > tolerance {
		return nil, &IntegrityError{Table: name, Total: prev}
	}
	return &Table{name: name, entries: entries}, nil
}

// MustTable panics on an invalid table definition. Tables are package-level
// declarations, so a bad definition aborts at startup rather than skewing
// rates at runtime.
func MustTable(name string, entries []Entry) *Table {
	t, err := NewTable(name, entries)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Name() string { return t.name }

// WithFallback sets the outcome used if floating-point rounding leaves a gap
// below 100 and a roll falls through every threshold.
func (t *Table) WithFallback(generate func(r *rand.Rand) Outcome) *Table {
	t.fallback = generate
	return t
}

// Pick resolves a roll in [0,100) against the thresholds; first match wins.
// The generator may consume r for secondary rolls (amount ranges, nested
// tables).
func (t *Table) Pick(roll float64, r *rand.Rand) Outcome {
	for _, e := range t.entries {
		if roll < e.Until {
			return e.Generate(r)
		}
	}
	// only reachable if floating rounding leaves a gap below 100
	if t.fallback != nil {
		return t.fallback(r)
	}
	return t.entries[len(t.entries)-1].Generate(r)
}

// Draw samples the table with r.
func (t *Table) Draw(r *rand.Rand) Outcome {
	return t.Pick(r.Float64()*100, r)
}

// amount draws a uniform integer in [min,max].
func amount(r *rand.Rand, min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + r.Int63n(max-min+1)
}
