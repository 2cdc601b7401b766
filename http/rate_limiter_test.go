package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, time.Minute, func() time.Time { return now })

	ok, _ := rl.Allow("a")
	assert.True(t, ok)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)

	now = now.Add(20 * time.Second)
	ok, wait := rl.Allow("a")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, wait)

	ok, _ = rl.Allow("b")
	assert.True(t, ok, "clients have independent buckets")

	now = now.Add(40 * time.Second)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)
}

func TestRateLimiter_SweepDropsExpiredWindows(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(1, time.Minute, func() time.Time { return now })

	rl.Allow("a")
	now = now.Add(30 * time.Second)
	rl.Allow("b")

	assert.Equal(t, 0, rl.sweep(), "both windows still open")

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, rl.sweep())
	assert.NotContains(t, rl.clients, "a")
	assert.Contains(t, rl.clients, "b")

	ok, _ := rl.Allow("a")
	assert.True(t, ok, "a swept client starts with a full bucket")
}

func TestRateLimiter_ExhaustedClientKeptUntilReset(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(1, time.Minute, func() time.Time { return now })

	rl.Allow("a")
	now = now.Add(59 * time.Second)
	ok, wait := rl.Allow("a")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	assert.Equal(t, 0, rl.sweep())
	assert.Contains(t, rl.clients, "a")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
