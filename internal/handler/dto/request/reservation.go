package request

import (
	"strings"
	"time"

	"roomdesk/internal/domain/reservation"
)

type RescheduleReservationRequest struct {
	CheckIn          time.Time `json:"check_in" binding:"required"`
	CheckOut         time.Time `json:"check_out" binding:"required"`
	Adults           int       `json:"adults" binding:"required,min=1"`
	Children         int       `json:"children" binding:"min=0"`
	QuotedTotalCents *int64    `json:"quoted_total_cents,omitempty"`
}

func (r RescheduleReservationRequest) ToWindow() (reservation.StayWindow, error) {
	return reservation.NewStayWindow(r.CheckIn, r.CheckOut)
}

func (r RescheduleReservationRequest) ToGuests() (reservation.GuestCount, error) {
	return reservation.NewGuestCount(r.Adults, r.Children)
}

type RejectReservationRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func (r RejectReservationRequest) TrimmedReason() string {
	return strings.TrimSpace(r.Reason)
}
