//go:build unit

package reservation_test

import (
	"testing"

	"roomdesk/internal/domain/reservation"
	"roomdesk/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryNewBooking(t *testing.T) {
	t.Run("prices the stay server-side", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithRooms(
			reservation.RoomStay{ID: uuid.New(), Number: "204", Capacity: 2, NightlyRateCents: 25000},
			reservation.RoomStay{ID: uuid.New(), Number: "205", Capacity: 2, NightlyRateCents: 12000},
		)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		// (25000 + 12000) x 3 nights
		assert.Equal(t, int64(111000), res.Price().Cents())
		assert.Equal(t, 3, res.Window().Nights())
		assert.Len(t, res.RoomIDs(), 2)
	})

	t.Run("channel picks the initial status", func(t *testing.T) {
		web, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, web.Status())
		assert.True(t, web.IsBlocking())

		staff, err := builder.NewReservationBuilder().
			WithChannel(reservation.ChannelStaff).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPending, staff.Status())
		assert.True(t, staff.IsBlocking(), "pending holds the rooms while validation is outstanding")
	})

	t.Run("rejects an empty room set", func(t *testing.T) {
		_, err := builder.NewReservationBuilder().WithRooms().BuildDomain()
		assert.ErrorIs(t, err, reservation.ErrNoRooms)
	})

	t.Run("rejects duplicate rooms", func(t *testing.T) {
		stay := reservation.RoomStay{ID: uuid.New(), Number: "204", Capacity: 2, NightlyRateCents: 25000}
		_, err := builder.NewReservationBuilder().WithRooms(stay, stay).BuildDomain()
		assert.ErrorIs(t, err, reservation.ErrDuplicateRoom)
	})

	t.Run("rejects guests beyond combined capacity", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		b.Adults = 3
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, reservation.ErrCapacityExceeded)
	})

	t.Run("rejects a past window", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		b.CheckIn = b.Now.AddDate(0, 0, -2)
		b.CheckOut = b.Now.AddDate(0, 0, 1)
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, reservation.ErrStayInPast)
	})

	t.Run("bookings get distinct ids", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		first, err := b.BuildDomain()
		require.NoError(t, err)
		second, err := b.BuildDomain()
		require.NoError(t, err)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}
