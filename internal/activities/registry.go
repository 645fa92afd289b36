package activities

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind of timed activity occupying a scope.
type Kind string

const (
	KindPopup Kind = "popup" // channel/user-scoped question, answer to claim
	KindDrop  Kind = "drop"  // channel-scoped Starr Drop, first claim wins
	KindGuess Kind = "guess" // channel-scoped number guess, 4 tries per user
	KindBoost Kind = "boost" // user-scoped Sugar Rush multiplier window
)

// MaxGuessAttempts is the per-user attempt cap of the guessing game.
const MaxGuessAttempts = 4

// Status of a claim attempt, for the presentation layer to render.
type Status string

const (
	StatusOK                Status = "ok"
	StatusExpired           Status = "expired"
	StatusAlreadyClaimed    Status = "already_claimed"
	StatusNothingToClaim    Status = "nothing_to_claim"
	StatusWrongAnswer       Status = "wrong_answer"
	StatusTooLow            Status = "too_low"
	StatusTooHigh           Status = "too_high"
	StatusAttemptsExhausted Status = "attempts_exhausted"
)

// ErrScopeBusy rejects a spawn into a scope that already holds an active,
// unexpired activity.
var ErrScopeBusy = errors.New("scope already has an active activity")

// Activity is one active timed entry. Payload fields are kind-specific.
type Activity struct {
	ID         string
	Scope      string
	Kind       Kind
	Answer     string // popup: expected answer
	Target     int    // guess: target number
	Rarity     string // drop: pre-rolled rarity
	Multiplier int64  // boost: reward multiplier

	CreatedAt time.Time
	ExpiresAt time.Time

	attempts map[string]int // guess: attempts used per user
}

// Claim is the outcome of a claim attempt against the registry. Activity is
// set when the claim succeeded (terminal) or when an entry just expired.
type Claim struct {
	Status   Status
	Activity *Activity
}

// Registry holds at most one active activity per scope key. The clock is
// injected so expiry can be tested with a fake. The single mutex makes every
// claim/sweep a check-and-act step: a claim and an expiry sweep can never
// both succeed for the same instance.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Activity
	now     func() time.Time
}

func NewRegistry(clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		entries: map[string]*Activity{},
		now:     clock,
	}
}

// ScopeChannel and ScopeUser build scope keys; activities in different
// scopes never collide.
func ScopeChannel(channelID string) string { return "channel:" + channelID }
func ScopeUser(userID string) string       { return "user:" + userID }
func ScopeGuild(guildID string) string     { return "guild:" + guildID }

// Create spawns an activity into the scope. A stale (expired but unswept)
// occupant is replaced; a live one rejects the spawn with ErrScopeBusy.
func (reg *Registry) Create(scope string, kind Kind, ttl time.Duration, configure func(*Activity)) (*Activity, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	if existing, ok := reg.entries[scope]; ok {
		if now.Before(existing.ExpiresAt) {
			return nil, fmt.Errorf("%w: %s", ErrScopeBusy, scope)
		}
		delete(reg.entries, scope)
	}

	a := &Activity{
		ID:        uuid.NewString(),
		Scope:     scope,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		attempts:  map[string]int{},
	}
	if configure != nil {
		configure(a)
	}
	reg.entries[scope] = a
	return a, nil
}

// take resolves the common claim prelude under the lock: absent, expired
// (removing the entry), or live with the expected kind.
func (reg *Registry) take(scope string, kind Kind) (*Activity, *Claim) {
	a, ok := reg.entries[scope]
	if !ok || a.Kind != kind {
		return nil, &Claim{Status: StatusNothingToClaim}
	}
	if !reg.now().Before(a.ExpiresAt) {
		delete(reg.entries, scope)
		return nil, &Claim{Status: StatusExpired, Activity: a}
	}
	return a, nil
}

// ClaimAnswer resolves a pop-up answer. A matching answer (case-insensitive,
// trimmed) claims and removes the entry; a miss leaves it active.
func (reg *Registry) ClaimAnswer(scope, answer string) Claim {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	a, miss := reg.take(scope, KindPopup)
	if miss != nil {
		return *miss
	}
	if !strings.EqualFold(strings.TrimSpace(answer), a.Answer) {
		return Claim{Status: StatusWrongAnswer}
	}
	delete(reg.entries, scope)
	return Claim{Status: StatusOK, Activity: a}
}

// ClaimDrop resolves a Starr Drop claim: the first claimant wins and the
// entry is removed, so a concurrent second claim observes nothing to claim.
func (reg *Registry) ClaimDrop(scope string) Claim {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	a, miss := reg.take(scope, KindDrop)
	if miss != nil {
		if miss.Status == StatusNothingToClaim {
			return Claim{Status: StatusAlreadyClaimed}
		}
		return *miss
	}
	delete(reg.entries, scope)
	return Claim{Status: StatusOK, Activity: a}
}

// SubmitGuess resolves one guess from one user. Exactly MaxGuessAttempts
// attempts per user per instance; after that the user's inputs are ignored
// until the activity resolves or expires.
func (reg *Registry) SubmitGuess(scope, userID string, guess int) Claim {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	a, miss := reg.take(scope, KindGuess)
	if miss != nil {
		return *miss
	}

	if a.attempts[userID] >= MaxGuessAttempts {
		return Claim{Status: StatusAttemptsExhausted}
	}
	a.attempts[userID]++

	switch {
	case guess == a.Target:
		delete(reg.entries, scope)
		return Claim{Status: StatusOK, Activity: a}
	case guess < a.Target:
		return Claim{Status: StatusTooLow}
	default:
		return Claim{Status: StatusTooHigh}
	}
}

// AttemptsLeft reports the user's remaining guesses, 0 when exhausted or no
// guess is active.
func (reg *Registry) AttemptsLeft(scope, userID string) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	a, ok := reg.entries[scope]
	if !ok || a.Kind != KindGuess {
		return 0
	}
	left := MaxGuessAttempts - a.attempts[userID]
	if left < 0 {
		return 0
	}
	return left
}

// ActiveBoost reports the Sugar Rush multiplier for the scope, 1 when no
// window is live.
func (reg *Registry) ActiveBoost(scope string) int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	a, ok := reg.entries[scope]
	if !ok || a.Kind != KindBoost || !reg.now().Before(a.ExpiresAt) {
		return 1
	}
	return a.Multiplier
}

// Active returns the live activity for a scope, nil if absent or expired.
func (reg *Registry) Active(scope string) *Activity {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	a, ok := reg.entries[scope]
	if !ok || !reg.now().Before(a.ExpiresAt) {
		return nil
	}
	return a
}

// Sweep removes every expired entry and returns them, once each, so the
// caller can emit a single "time's up" notification per activity.
func (reg *Registry) Sweep() []*Activity {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	var expired []*Activity
	for scope, a := range reg.entries {
		if !now.Before(a.ExpiresAt) {
			delete(reg.entries, scope)
			expired = append(expired, a)
		}
	}
	return expired
}

// Len reports the number of entries, expired-but-unswept included.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.entries)
}
