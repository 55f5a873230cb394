package request

import (
	"roomdesk/internal/domain/room"
)

type UpsertRoomRequest struct {
	Number           string   `json:"number" binding:"required,max=16"`
	Name             string   `json:"name" binding:"required,max=255"`
	Floor            int      `json:"floor" binding:"min=0"`
	RoomType         string   `json:"room_type" binding:"required,oneof=standard deluxe suite family"`
	ViewKind         string   `json:"view" binding:"required,oneof=city sea garden courtyard"`
	BedType          string   `json:"bed" binding:"required,oneof=single double queen king twin"`
	Capacity         int      `json:"capacity" binding:"required,min=1"`
	NightlyRateCents int64    `json:"nightly_rate_cents" binding:"min=0"`
	Amenities        []string `json:"amenities"`
	Images           []string `json:"images"`
	Featured         bool     `json:"featured"`
}

func (r UpsertRoomRequest) ToDomain() (*room.Room, error) {
	roomType, err := room.NewRoomType(r.RoomType)
	if err != nil {
		return nil, err
	}
	view, err := room.NewViewKind(r.ViewKind)
	if err != nil {
		return nil, err
	}
	bed, err := room.NewBedType(r.BedType)
	if err != nil {
		return nil, err
	}

	return room.NewRoom(
		r.Number, r.Name, r.Floor,
		roomType, view, bed,
		r.Capacity, r.NightlyRateCents,
		r.Amenities, r.Images, r.Featured,
	)
}
