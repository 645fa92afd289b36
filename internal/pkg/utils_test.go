package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameUTCDay(t *testing.T) {
	morning := time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC)
	night := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 6, 0, 1, 0, 0, time.UTC)

	assert.True(t, SameUTCDay(morning, night))
	assert.False(t, SameUTCDay(night, nextDay))
}

func TestSameUTCWeek(t *testing.T) {
	// StartOfWeek truncates against the unix epoch, a Thursday
	a := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	c := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	assert.True(t, SameUTCWeek(a, b))
	assert.False(t, SameUTCWeek(b, c))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2024-03-05", DayKey(time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)))
}
