package reservation

import (
	"roomdesk/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock  clock.Clock
	Pricer PriceCalculator
}

func NewFactory(clk clock.Clock, pricer PriceCalculator) *Factory {
	return &Factory{
		Clock:  clk,
		Pricer: pricer,
	}
}

// NewBooking builds a reservation in its channel-dependent initial
// status. The window, guest counts and room set are validated here; the
// overlap recheck against concurrent bookings stays with the transaction
// that persists the result.
func (f *Factory) NewBooking(
	clientID uuid.UUID,
	createdBy *uuid.UUID,
	rooms []RoomStay,
	window StayWindow,
	guests GuestCount,
	channel Channel,
	promoCode *string,
) (*Reservation, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	seen := make(map[uuid.UUID]struct{}, len(rooms))
	for _, r := range rooms {
		if _, dup := seen[r.ID]; dup {
			return nil, ErrDuplicateRoom
		}
		seen[r.ID] = struct{}{}
	}

	if err := window.ValidateNotPastAt(f.Clock.Now()); err != nil {
		return nil, err
	}
	if guests.Total() > CombinedCapacity(rooms) {
		return nil, ErrCapacityExceeded
	}

	price := f.Pricer.Quote(rooms, window)
	if price.Cents() < 0 {
		return nil, ErrNegativePrice
	}

	roomIDs := make([]uuid.UUID, len(rooms))
	for i, r := range rooms {
		roomIDs[i] = r.ID
	}

	now := f.Clock.Now()
	return &Reservation{
		id:        uuid.New(),
		clientID:  clientID,
		createdBy: createdBy,
		roomIDs:   roomIDs,
		window:    window,
		guests:    guests,
		price:     price,
		promoCode: promoCode,
		status:    channel.InitialStatus(),
		createdAt: now,
		updatedAt: now,
	}, nil
}
