//go:build unit

package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	t.Run("deadline in the future is not expired", func(t *testing.T) {
		assert.False(t, tokenExpired(now.Add(time.Hour), now))
	})

	t.Run("deadline in the past is expired", func(t *testing.T) {
		assert.True(t, tokenExpired(now.Add(-1*time.Second), now))
	})

	t.Run("deadline exactly now is not expired", func(t *testing.T) {
		assert.False(t, tokenExpired(now, now))
	})
}

func TestWithinRateWindow(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	window := 5 * time.Minute

	t.Run("recent mutation is inside the window", func(t *testing.T) {
		assert.True(t, withinRateWindow(now.Add(-1*time.Minute), window, now))
	})

	t.Run("old mutation is outside the window", func(t *testing.T) {
		assert.False(t, withinRateWindow(now.Add(-10*time.Minute), window, now))
	})

	t.Run("mutation exactly one window ago is outside", func(t *testing.T) {
		assert.False(t, withinRateWindow(now.Add(-window), window, now))
	})
}
