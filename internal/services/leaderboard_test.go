package services

import (
	"testing"

	"saucebot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPodiumTrimsSnapshot(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{Rank: 1, UserID: "a", Score: 500},
		{Rank: 2, UserID: "b", Score: 400},
		{Rank: 3, UserID: "c", Score: 300},
		{Rank: 4, UserID: "d", Score: 200},
	}

	top := podium(entries)
	assert.Len(t, top, 3)
	assert.Equal(t, "c", top[2].UserID)

	assert.Len(t, podium(entries[:2]), 2)
}

func TestStandingMessage(t *testing.T) {
	msg := standingMessage(2, models.BOARD_GOLD, 340)
	assert.Contains(t, msg, "#2")
	assert.Contains(t, msg, "gold")
	assert.Contains(t, msg, "340")
}
