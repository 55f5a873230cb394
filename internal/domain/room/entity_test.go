//go:build unit

package room_test

import (
	"strings"
	"testing"

	"roomdesk/internal/domain/room"
	"roomdesk/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		rm, err := builder.NewRoomBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, rm.ID())
		assert.Equal(t, "204", rm.Number())
		assert.Equal(t, room.TypeDeluxe, rm.Type())
		assert.Equal(t, room.ViewGarden, rm.View())
		assert.Equal(t, room.BedDouble, rm.Bed())
		assert.Equal(t, int64(25000), rm.NightlyRateCents())
		assert.True(t, rm.Sleeps(2))
		assert.False(t, rm.Sleeps(3))
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.RoomBuilder)
			errIs  error
		}{
			{name: "empty number", mutate: func(b *builder.RoomBuilder) { b.Number = "  " }, errIs: room.ErrEmptyNumber},
			{name: "empty name", mutate: func(b *builder.RoomBuilder) { b.Name = "" }, errIs: room.ErrEmptyName},
			{name: "name too long", mutate: func(b *builder.RoomBuilder) { b.Name = strings.Repeat("a", room.MaxNameLength+1) }, errIs: room.ErrNameTooLong},
			{name: "zero capacity", mutate: func(b *builder.RoomBuilder) { b.Capacity = 0 }, errIs: room.ErrInvalidCapacity},
			{name: "negative rate", mutate: func(b *builder.RoomBuilder) { b.NightlyRateCents = -1 }, errIs: room.ErrNegativeRate},
			{name: "minimum capacity ok", mutate: func(b *builder.RoomBuilder) { b.Capacity = 1 }},
			{name: "zero rate ok", mutate: func(b *builder.RoomBuilder) { b.NightlyRateCents = 0 }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := builder.NewRoomBuilder().With(tc.mutate).BuildDomain()
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestRoomEnums(t *testing.T) {
	_, err := room.NewRoomType("penthouse")
	assert.ErrorIs(t, err, room.ErrInvalidRoomType)

	_, err = room.NewViewKind("lake")
	assert.ErrorIs(t, err, room.ErrInvalidViewKind)

	_, err = room.NewBedType("hammock")
	assert.ErrorIs(t, err, room.ErrInvalidBedType)

	rt, err := room.NewRoomType("suite")
	require.NoError(t, err)
	assert.Equal(t, room.TypeSuite, rt)
}
