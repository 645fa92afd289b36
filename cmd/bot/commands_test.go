package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCommand(t *testing.T) {
	assert.True(t, isCommand("profile"))
	assert.True(t, isCommand("rush"))
	assert.True(t, isCommand("reset"))
	assert.False(t, isCommand("dance"))
}

func TestTriggerReply(t *testing.T) {
	assert.Equal(t, "🍅 Did someone say sauce?", triggerReply("I love KETCHUP"))
	assert.Contains(t, triggerReply("genie, what is your wish?"), "sauce kingdom")
	assert.Contains(t, triggerReply("but why???"), "sleep")
	assert.Empty(t, triggerReply("a plain message"))
}
