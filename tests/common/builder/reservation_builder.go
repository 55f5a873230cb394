//go:build unit || e2e

package builder

import (
	"time"

	"roomdesk/internal/domain/reservation"
	reqdto "roomdesk/internal/handler/dto/request"
	"roomdesk/internal/pkg/clock"
	"roomdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

// ReservationBuilder assembles bookings around a fixed clock so notice
// window arithmetic in tests is deterministic.
type ReservationBuilder struct {
	ClientID  uuid.UUID
	CreatedBy *uuid.UUID
	Rooms     []reservation.RoomStay
	CheckIn   time.Time
	CheckOut  time.Time
	Adults    int
	Children  int
	Channel   reservation.Channel
	PromoCode *string
	Now       time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ClientID: uuid.New(),
		Rooms: []reservation.RoomStay{
			{ID: uuid.New(), Number: "204", Capacity: 2, NightlyRateCents: 25000},
		},
		CheckIn:  now.AddDate(0, 0, 14),
		CheckOut: now.AddDate(0, 0, 17),
		Adults:   2,
		Children: 0,
		Channel:  reservation.ChannelWeb,
		Now:      now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithRooms(rooms ...reservation.RoomStay) *ReservationBuilder {
	b.Rooms = rooms
	return b
}

func (b *ReservationBuilder) WithWindow(checkIn, checkOut time.Time) *ReservationBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *ReservationBuilder) WithChannel(c reservation.Channel) *ReservationBuilder {
	b.Channel = c
	return b
}

func (b *ReservationBuilder) Factory() *reservation.Factory {
	return reservation.NewFactory(clock.NewFakeClock(b.Now), reservation.NewNightlyPriceCalculator())
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	window, err := reservation.NewStayWindow(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	guests, err := reservation.NewGuestCount(b.Adults, b.Children)
	if err != nil {
		return nil, err
	}
	return b.Factory().NewBooking(b.ClientID, b.CreatedBy, b.Rooms, window, guests, b.Channel, b.PromoCode)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	roomIDs := make([]uuid.UUID, len(b.Rooms))
	for i, r := range b.Rooms {
		roomIDs[i] = r.ID
	}
	return reqdto.CreateBookingRequest{
		RoomIDs:   roomIDs,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Adults:    b.Adults,
		Children:  b.Children,
		PromoCode: b.PromoCode,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	roomIDs := make([]uuid.UUID, len(b.Rooms))
	roomNumbers := make([]string, len(b.Rooms))
	var total int64
	window, _ := reservation.NewStayWindow(b.CheckIn, b.CheckOut)
	for i, r := range b.Rooms {
		roomIDs[i] = r.ID
		roomNumbers[i] = r.Number
		total += r.NightlyRateCents * int64(window.Nights())
	}
	return &queries.ReservationView{
		ID:              uuid.New(),
		ClientID:        b.ClientID,
		ClientName:      "Ada Guest",
		ClientEmail:     "ada@example.com",
		CreatedBy:       b.CreatedBy,
		RoomIDs:         roomIDs,
		RoomNumbers:     roomNumbers,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		Nights:          window.Nights(),
		Adults:          b.Adults,
		Children:        b.Children,
		TotalPriceCents: total,
		Status:          string(b.Channel.InitialStatus()),
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
	}
}
