package request

import (
	"time"

	"roomdesk/internal/usecase/queries"
)

// SearchRoomsRequest binds the availability search query string. Dates
// come in as calendar days and are widened to midnight UTC boundaries,
// matching the half-open stay window convention.
type SearchRoomsRequest struct {
	CheckIn       time.Time `form:"check_in" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	CheckOut      time.Time `form:"check_out" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	Guests        int       `form:"guests,default=1" binding:"min=1"`
	MaxPriceCents *int64    `form:"max_price_cents" binding:"omitempty,min=0"`
	RoomType      *string   `form:"room_type" binding:"omitempty,oneof=standard deluxe suite family"`
	ViewKind      *string   `form:"view" binding:"omitempty,oneof=city sea garden courtyard"`
	BedType       *string   `form:"bed" binding:"omitempty,oneof=single double queen king twin"`
	Amenities     []string  `form:"amenities"`
	Sort          string    `form:"sort,default=recommended" binding:"oneof=recommended price_asc price_desc"`
}

func (r SearchRoomsRequest) ToSearch() queries.AvailabilitySearch {
	return queries.AvailabilitySearch{
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Guests:        r.Guests,
		MaxPriceCents: r.MaxPriceCents,
		RoomType:      r.RoomType,
		ViewKind:      r.ViewKind,
		BedType:       r.BedType,
		Amenities:     r.Amenities,
		Sort:          r.Sort,
	}
}

// RoomAvailabilityRequest is the window for a single room's calendar.
type RoomAvailabilityRequest struct {
	CheckIn  time.Time `form:"check_in" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	CheckOut time.Time `form:"check_out" binding:"required" time_format:"2006-01-02" time_utc:"1"`
}
