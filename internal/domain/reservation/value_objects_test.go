//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"roomdesk/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, checkIn, checkOut time.Time) reservation.StayWindow {
	t.Helper()
	w, err := reservation.NewStayWindow(checkIn, checkOut)
	require.NoError(t, err)
	return w
}

func TestStayWindow(t *testing.T) {
	base := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("validation", func(t *testing.T) {
		_, err := reservation.NewStayWindow(base, base)
		assert.ErrorIs(t, err, reservation.ErrInvalidStayWindow)

		_, err = reservation.NewStayWindow(base.AddDate(0, 0, 1), base)
		assert.ErrorIs(t, err, reservation.ErrInvalidStayWindow)

		_, err = reservation.NewStayWindow(base, base.AddDate(0, 0, 1))
		assert.NoError(t, err)
	})

	t.Run("nights rounds partial days up", func(t *testing.T) {
		cases := []struct {
			name     string
			duration time.Duration
			expected int
		}{
			{"exactly three days", 72 * time.Hour, 3},
			{"three days and an hour", 73 * time.Hour, 4},
			{"just under one day", 23 * time.Hour, 1},
			{"exactly one day", 24 * time.Hour, 1},
			{"a few hours", 2 * time.Hour, 1},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				w := mustWindow(t, base, base.Add(tc.duration))
				assert.Equal(t, tc.expected, w.Nights())
			})
		}
	})

	t.Run("half-open overlap", func(t *testing.T) {
		stay := mustWindow(t, base, base.AddDate(0, 0, 3))

		assert.True(t, stay.Overlaps(mustWindow(t, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2))), "contained window overlaps")
		assert.True(t, stay.Overlaps(mustWindow(t, base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))), "leading overlap")
		assert.True(t, stay.Overlaps(mustWindow(t, base.AddDate(0, 0, 2), base.AddDate(0, 0, 5))), "trailing overlap")
		assert.True(t, stay.Overlaps(mustWindow(t, base.AddDate(0, 0, -1), base.AddDate(0, 0, 5))), "enclosing window overlaps")

		// check-out day equals check-in day: back to back, no conflict
		assert.False(t, stay.Overlaps(mustWindow(t, base.AddDate(0, 0, 3), base.AddDate(0, 0, 5))), "back-to-back after")
		assert.False(t, stay.Overlaps(mustWindow(t, base.AddDate(0, 0, -2), base)), "back-to-back before")
		assert.False(t, stay.Overlaps(mustWindow(t, base.AddDate(0, 0, 4), base.AddDate(0, 0, 6))), "disjoint")
	})

	t.Run("past window detection uses start of day", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

		sameDay := mustWindow(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, sameDay.ValidateNotPastAt(now), "check-in earlier today is still bookable")

		yesterday := mustWindow(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, yesterday.ValidateNotPastAt(now), reservation.ErrStayInPast)
	})

	t.Run("notice", func(t *testing.T) {
		w := mustWindow(t, base, base.AddDate(0, 0, 2))
		assert.Equal(t, 48*time.Hour, w.NoticeAt(base.Add(-48*time.Hour)))
		assert.Equal(t, -time.Hour, w.NoticeAt(base.Add(time.Hour)))
	})
}

func TestGuestCount(t *testing.T) {
	_, err := reservation.NewGuestCount(0, 0)
	assert.ErrorIs(t, err, reservation.ErrNoAdults)

	_, err = reservation.NewGuestCount(1, -1)
	assert.ErrorIs(t, err, reservation.ErrNegativeChildren)

	g, err := reservation.NewGuestCount(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Total())
}

func TestMoney(t *testing.T) {
	t.Run("non-negative constructor", func(t *testing.T) {
		_, err := reservation.NewNonNegativeMoney(-1)
		assert.ErrorIs(t, err, reservation.ErrNegativePrice)

		m, err := reservation.NewNonNegativeMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})

	t.Run("within epsilon", func(t *testing.T) {
		m := reservation.NewMoney(75000)
		assert.True(t, m.WithinEpsilon(reservation.NewMoney(75000), 0))
		assert.True(t, m.WithinEpsilon(reservation.NewMoney(75001), 1))
		assert.True(t, m.WithinEpsilon(reservation.NewMoney(74999), 1))
		assert.False(t, m.WithinEpsilon(reservation.NewMoney(75002), 1))
		assert.False(t, m.WithinEpsilon(reservation.NewMoney(74998), 1))
	})

	t.Run("arithmetic", func(t *testing.T) {
		m := reservation.NewMoney(25000).MultiplyNights(3).Add(reservation.NewMoney(500))
		assert.Equal(t, int64(75500), m.Cents())
		assert.Equal(t, 755.0, m.Units())
	})
}
