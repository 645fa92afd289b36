package activities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestRegistry() (*Registry, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewRegistry(clock.Now), clock
}

func TestCreateRejectsOccupiedScope(t *testing.T) {
	reg, _ := newTestRegistry()
	scope := ScopeChannel("123")

	_, err := reg.Create(scope, KindPopup, time.Minute, func(a *Activity) { a.Answer = "sauce" })
	require.NoError(t, err)

	_, err = reg.Create(scope, KindPopup, time.Minute, nil)
	assert.ErrorIs(t, err, ErrScopeBusy)

	// a different scope is fine
	_, err = reg.Create(ScopeChannel("456"), KindPopup, time.Minute, nil)
	assert.NoError(t, err)
}

func TestCreateReplacesStaleOccupant(t *testing.T) {
	reg, clock := newTestRegistry()
	scope := ScopeChannel("123")

	first, err := reg.Create(scope, KindDrop, time.Minute, nil)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)

	second, err := reg.Create(scope, KindDrop, time.Minute, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestClaimAnswer(t *testing.T) {
	reg, _ := newTestRegistry()
	scope := ScopeChannel("123")

	_, err := reg.Create(scope, KindPopup, time.Minute, func(a *Activity) { a.Answer = "ketchup" })
	require.NoError(t, err)

	// wrong answer leaves the entry active
	c := reg.ClaimAnswer(scope, "mustard")
	assert.Equal(t, StatusWrongAnswer, c.Status)
	assert.NotNil(t, reg.Active(scope))

	// match is case-insensitive and trims whitespace
	c = reg.ClaimAnswer(scope, "  KETCHUP ")
	require.Equal(t, StatusOK, c.Status)
	require.NotNil(t, c.Activity)

	// terminal: the entry is gone
	c = reg.ClaimAnswer(scope, "ketchup")
	assert.Equal(t, StatusNothingToClaim, c.Status)
}

func TestClaimExpiredYieldsExpiredNotReward(t *testing.T) {
	reg, clock := newTestRegistry()
	scope := ScopeChannel("123")

	_, err := reg.Create(scope, KindPopup, time.Minute, func(a *Activity) { a.Answer = "sauce" })
	require.NoError(t, err)

	clock.Advance(61 * time.Second)

	c := reg.ClaimAnswer(scope, "sauce")
	assert.Equal(t, StatusExpired, c.Status)

	// the expired entry was removed by the claim attempt
	c = reg.ClaimAnswer(scope, "sauce")
	assert.Equal(t, StatusNothingToClaim, c.Status)
}

func TestClaimDropFirstWins(t *testing.T) {
	reg, _ := newTestRegistry()
	scope := ScopeChannel("123")

	_, err := reg.Create(scope, KindDrop, time.Minute, func(a *Activity) { a.Rarity = "Rare" })
	require.NoError(t, err)

	first := reg.ClaimDrop(scope)
	require.Equal(t, StatusOK, first.Status)
	assert.Equal(t, "Rare", first.Activity.Rarity)

	// second claimant in the same tick observes already-claimed
	second := reg.ClaimDrop(scope)
	assert.Equal(t, StatusAlreadyClaimed, second.Status)
}

func TestSubmitGuessAttemptCap(t *testing.T) {
	reg, _ := newTestRegistry()
	scope := ScopeChannel("123")

	_, err := reg.Create(scope, KindGuess, time.Minute, func(a *Activity) { a.Target = 50 })
	require.NoError(t, err)

	assert.Equal(t, StatusTooLow, reg.SubmitGuess(scope, "u1", 10).Status)
	assert.Equal(t, StatusTooHigh, reg.SubmitGuess(scope, "u1", 90).Status)
	assert.Equal(t, StatusTooLow, reg.SubmitGuess(scope, "u1", 40).Status)
	assert.Equal(t, StatusTooHigh, reg.SubmitGuess(scope, "u1", 60).Status)

	// fifth attempt from the same user is rejected
	assert.Equal(t, StatusAttemptsExhausted, reg.SubmitGuess(scope, "u1", 50).Status)

	// other participants keep their own budget
	assert.Equal(t, 4, reg.AttemptsLeft(scope, "u2"))
	c := reg.SubmitGuess(scope, "u2", 50)
	require.Equal(t, StatusOK, c.Status)
	assert.Equal(t, 50, c.Activity.Target)
}

func TestSweepRemovesExpiredOnce(t *testing.T) {
	reg, clock := newTestRegistry()

	_, err := reg.Create(ScopeChannel("a"), KindPopup, time.Minute, nil)
	require.NoError(t, err)
	_, err = reg.Create(ScopeChannel("b"), KindDrop, 3*time.Minute, nil)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)

	expired := reg.Sweep()
	require.Len(t, expired, 1)
	assert.Equal(t, ScopeChannel("a"), expired[0].Scope)

	// second sweep emits nothing for the same instance
	assert.Empty(t, reg.Sweep())
	assert.Equal(t, 1, reg.Len())
}

func TestClaimVersusSweepExactlyOneWins(t *testing.T) {
	// whichever observes the active entry first wins; the loser sees absent
	reg, clock := newTestRegistry()
	scope := ScopeChannel("123")

	_, err := reg.Create(scope, KindDrop, time.Minute, nil)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)

	expired := reg.Sweep()
	require.Len(t, expired, 1)

	c := reg.ClaimDrop(scope)
	assert.Equal(t, StatusAlreadyClaimed, c.Status)
}

func TestActiveBoost(t *testing.T) {
	reg, clock := newTestRegistry()
	scope := ScopeUser("u1")

	assert.Equal(t, int64(1), reg.ActiveBoost(scope))

	_, err := reg.Create(scope, KindBoost, 10*time.Minute, func(a *Activity) { a.Multiplier = 3 })
	require.NoError(t, err)
	assert.Equal(t, int64(3), reg.ActiveBoost(scope))

	clock.Advance(11 * time.Minute)
	assert.Equal(t, int64(1), reg.ActiveBoost(scope))
}
