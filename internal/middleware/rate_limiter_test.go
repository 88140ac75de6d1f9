package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(3, 1, time.Hour)

	assert.True(t, rl.Allow("user-a"))
	assert.True(t, rl.Allow("user-a"))
	assert.True(t, rl.Allow("user-a"))
	assert.False(t, rl.Allow("user-a"))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Hour)

	assert.True(t, rl.Allow("user-a"))
	assert.False(t, rl.Allow("user-a"))
	assert.True(t, rl.Allow("user-b"))
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(2, 1, 10*time.Millisecond)

	assert.True(t, rl.Allow("user-a"))
	assert.True(t, rl.Allow("user-a"))
	assert.False(t, rl.Allow("user-a"))

	time.Sleep(25 * time.Millisecond)
	assert.True(t, rl.Allow("user-a"))
}

func TestRateLimiterRemaining(t *testing.T) {
	rl := NewRateLimiter(5, 1, time.Hour)

	rl.Allow("user-a")
	rl.Allow("user-a")
	assert.Equal(t, 3, rl.Remaining("user-a"))
}
