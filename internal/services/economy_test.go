package services

import (
	"testing"
	"time"

	"saucebot/internal/activities"
	"saucebot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRestoreBoostRepopulatesRegistry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	registry := activities.NewRegistry(func() time.Time { return now })

	restored := restoreBoost(registry, "u1", &models.BoostState{
		Multiplier: 3,
		ExpiresAt:  now.Add(10 * time.Minute),
	}, now)

	assert.True(t, restored)
	assert.EqualValues(t, 3, registry.ActiveBoost(activities.ScopeUser("u1")))
}

func TestRestoreBoostIgnoresExpiredMirror(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	registry := activities.NewRegistry(func() time.Time { return now })

	restored := restoreBoost(registry, "u1", &models.BoostState{
		Multiplier: 3,
		ExpiresAt:  now.Add(-time.Minute),
	}, now)

	assert.False(t, restored)
	assert.EqualValues(t, 1, registry.ActiveBoost(activities.ScopeUser("u1")))

	assert.False(t, restoreBoost(registry, "u1", nil, now))
}
