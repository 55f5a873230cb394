package response

import (
	"time"

	"roomdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	Name             string    `json:"name"`
	Floor            int       `json:"floor"`
	RoomType         string    `json:"roomType"`
	ViewKind         string    `json:"view"`
	BedType          string    `json:"bed"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightlyRateCents"`
	Amenities        []string  `json:"amenities"`
	Images           []string  `json:"images"`
	Featured         bool      `json:"featured"`
	Rating           float64   `json:"rating"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SearchResultResponse adds the stay total quoted for the searched
// window on top of the room itself.
type SearchResultResponse struct {
	RoomResponse
	Nights           int   `json:"nights"`
	QuotedTotalCents int64 `json:"quotedTotalCents"`
}

type RoomAvailabilityResponse struct {
	RoomID    uuid.UUID      `json:"roomId"`
	Available bool           `json:"available"`
	Conflicts []StayResponse `json:"conflicts"`
}

type StayResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	CheckIn       time.Time `json:"checkIn"`
	CheckOut      time.Time `json:"checkOut"`
	Status        string    `json:"status"`
}

func FromRoomView(rm *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, len(views))
	for i, v := range views {
		out[i] = FromRoomView(v)
	}
	return out
}

func FromSearchResults(views []*queries.RoomView, nights int) []*SearchResultResponse {
	out := make([]*SearchResultResponse, len(views))
	for i, v := range views {
		out[i] = &SearchResultResponse{
			RoomResponse:     *FromRoomView(v),
			Nights:           nights,
			QuotedTotalCents: v.NightlyRateCents * int64(nights),
		}
	}
	return out
}

func FromRoomAvailabilityView(view *queries.RoomAvailabilityView) *RoomAvailabilityResponse {
	conflicts := make([]StayResponse, len(view.Conflicts))
	for i, s := range view.Conflicts {
		conflicts[i] = StayResponse{
			ReservationID: s.ReservationID,
			CheckIn:       s.CheckIn,
			CheckOut:      s.CheckOut,
			Status:        s.Status,
		}
	}
	return &RoomAvailabilityResponse{
		RoomID:    view.RoomID,
		Available: view.Available,
		Conflicts: conflicts,
	}
}
