package response

import (
	"time"

	"roomdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID              uuid.UUID   `json:"id"`
	ClientID        uuid.UUID   `json:"clientId"`
	ClientName      string      `json:"clientName"`
	ClientEmail     string      `json:"clientEmail"`
	CreatedBy       *uuid.UUID  `json:"createdBy,omitempty"`
	RoomIDs         []uuid.UUID `json:"roomIds"`
	RoomNumbers     []string    `json:"roomNumbers"`
	CheckIn         time.Time   `json:"checkIn"`
	CheckOut        time.Time   `json:"checkOut"`
	Nights          int         `json:"nights"`
	Adults          int         `json:"adults"`
	Children        int         `json:"children"`
	TotalPriceCents int64       `json:"totalPriceCents"`
	PromoCode       *string     `json:"promoCode,omitempty"`
	Status          string      `json:"status"`
	StatusReason    *string     `json:"statusReason,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID              uuid.UUID `json:"id"`
	RoomNumbers     []string  `json:"roomNumbers"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	Adults          int       `json:"adults"`
	Children        int       `json:"children"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:              rm.ID,
		ClientID:        rm.ClientID,
		ClientName:      rm.ClientName,
		ClientEmail:     rm.ClientEmail,
		CreatedBy:       rm.CreatedBy,
		RoomIDs:         rm.RoomIDs,
		RoomNumbers:     rm.RoomNumbers,
		CheckIn:         rm.CheckIn,
		CheckOut:        rm.CheckOut,
		Nights:          rm.Nights,
		Adults:          rm.Adults,
		Children:        rm.Children,
		TotalPriceCents: rm.TotalPriceCents,
		PromoCode:       rm.PromoCode,
		Status:          rm.Status,
		StatusReason:    rm.StatusReason,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:              rm.ID,
		RoomNumbers:     rm.RoomNumbers,
		CheckIn:         rm.CheckIn,
		CheckOut:        rm.CheckOut,
		Adults:          rm.Adults,
		Children:        rm.Children,
		TotalPriceCents: rm.TotalPriceCents,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
	}
}

func FromReservationListItems(items []*queries.ReservationListItem) []*ReservationListResponse {
	out := make([]*ReservationListResponse, len(items))
	for i, item := range items {
		out[i] = FromReservationListItem(item)
	}
	return out
}
