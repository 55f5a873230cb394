package request

import (
	"strings"
	"time"

	"roomdesk/internal/domain/reservation"

	"github.com/google/uuid"
)

// GuestDetails identifies the person a staff walk-in booking is made
// for. Self-service bookings omit it; the client profile comes from the
// authenticated user instead.
type GuestDetails struct {
	Name  string  `json:"name" binding:"required,max=255"`
	Email string  `json:"email" binding:"required,email"`
	Phone *string `json:"phone,omitempty"`
}

type CreateBookingRequest struct {
	RoomIDs          []uuid.UUID   `json:"room_ids" binding:"required,min=1"`
	CheckIn          time.Time     `json:"check_in" binding:"required"`
	CheckOut         time.Time     `json:"check_out" binding:"required"`
	Adults           int           `json:"adults" binding:"required,min=1"`
	Children         int           `json:"children" binding:"min=0"`
	PromoCode        *string       `json:"promo_code,omitempty"`
	QuotedTotalCents *int64        `json:"quoted_total_cents,omitempty"`
	Guest            *GuestDetails `json:"guest,omitempty"`
}

func (r CreateBookingRequest) GetPromoCode() *string {
	if r.PromoCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.PromoCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateBookingRequest) ToWindow() (reservation.StayWindow, error) {
	return reservation.NewStayWindow(r.CheckIn, r.CheckOut)
}

func (r CreateBookingRequest) ToGuests() (reservation.GuestCount, error) {
	return reservation.NewGuestCount(r.Adults, r.Children)
}
