//go:build unit || e2e

package builder

import (
	"time"

	domroom "roomdesk/internal/domain/room"
	reqdto "roomdesk/internal/handler/dto/request"
	"roomdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID               uuid.UUID
	Number           string
	Name             string
	Floor            int
	RoomType         string
	ViewKind         string
	BedType          string
	Capacity         int
	NightlyRateCents int64
	Amenities        []string
	Images           []string
	Featured         bool
	Rating           float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewRoomBuilder() *RoomBuilder {
	now := time.Now()
	return &RoomBuilder{
		ID:               uuid.New(),
		Number:           "204",
		Name:             "Deluxe Garden Double",
		Floor:            2,
		RoomType:         "deluxe",
		ViewKind:         "garden",
		BedType:          "double",
		Capacity:         2,
		NightlyRateCents: 25000,
		Amenities:        []string{"wifi", "minibar"},
		Images:           []string{"https://img.example.com/rooms/204.jpg"},
		Featured:         false,
		Rating:           4.2,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) WithNumber(n string) *RoomBuilder {
	b.Number = n
	return b
}

func (b *RoomBuilder) WithCapacity(c int) *RoomBuilder {
	b.Capacity = c
	return b
}

func (b *RoomBuilder) WithRate(cents int64) *RoomBuilder {
	b.NightlyRateCents = cents
	return b
}

func (b *RoomBuilder) BuildDomain() (*domroom.Room, error) {
	roomType, err := domroom.NewRoomType(b.RoomType)
	if err != nil {
		return nil, err
	}
	view, err := domroom.NewViewKind(b.ViewKind)
	if err != nil {
		return nil, err
	}
	bed, err := domroom.NewBedType(b.BedType)
	if err != nil {
		return nil, err
	}
	return domroom.NewRoom(b.Number, b.Name, b.Floor, roomType, view, bed,
		b.Capacity, b.NightlyRateCents, b.Amenities, b.Images, b.Featured)
}

func (b *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:               b.ID,
		Number:           b.Number,
		Name:             b.Name,
		Floor:            b.Floor,
		RoomType:         b.RoomType,
		ViewKind:         b.ViewKind,
		BedType:          b.BedType,
		Capacity:         b.Capacity,
		NightlyRateCents: b.NightlyRateCents,
		Amenities:        b.Amenities,
		Images:           b.Images,
		Featured:         b.Featured,
		Rating:           b.Rating,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func (b *RoomBuilder) BuildUpsertRequestDTO() reqdto.UpsertRoomRequest {
	return reqdto.UpsertRoomRequest{
		Number:           b.Number,
		Name:             b.Name,
		Floor:            b.Floor,
		RoomType:         b.RoomType,
		ViewKind:         b.ViewKind,
		BedType:          b.BedType,
		Capacity:         b.Capacity,
		NightlyRateCents: b.NightlyRateCents,
		Amenities:        b.Amenities,
		Images:           b.Images,
		Featured:         b.Featured,
	}
}
