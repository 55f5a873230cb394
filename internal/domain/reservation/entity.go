package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoRooms            = errors.New("a reservation needs at least one room")
	ErrDuplicateRoom      = errors.New("the same room appears twice in the request")
	ErrCapacityExceeded   = errors.New("guest count exceeds the combined room capacity")
	ErrTransitionBlocked  = errors.New("transition is not allowed from the current status")
	ErrNoticeWindowClosed = errors.New("the minimum notice before check-in has passed")
	ErrAlreadyCanceled    = errors.New("reservation is already canceled")
	ErrStayStarted        = errors.New("check-in is no longer in the future")
)

// RoomStay is the slice of a room the booking engine needs: identity,
// how many guests it sleeps and what a night costs.
type RoomStay struct {
	ID               uuid.UUID
	Number           string
	Capacity         int
	NightlyRateCents int64
}

func CombinedCapacity(rooms []RoomStay) int {
	total := 0
	for _, r := range rooms {
		total += r.Capacity
	}
	return total
}

type Reservation struct {
	id           uuid.UUID
	clientID     uuid.UUID
	createdBy    *uuid.UUID
	roomIDs      []uuid.UUID
	window       StayWindow
	guests       GuestCount
	price        Money
	promoCode    *string
	status       Status
	statusReason *string
	createdAt    time.Time
	updatedAt    time.Time
}

func ReconstructReservation(
	id, clientID uuid.UUID,
	createdBy *uuid.UUID,
	roomIDs []uuid.UUID,
	window StayWindow,
	guests GuestCount,
	price Money,
	promoCode *string,
	status Status,
	statusReason *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		clientID:     clientID,
		createdBy:    createdBy,
		roomIDs:      roomIDs,
		window:       window,
		guests:       guests,
		price:        price,
		promoCode:    promoCode,
		status:       status,
		statusReason: statusReason,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) ClientID() uuid.UUID   { return r.clientID }
func (r *Reservation) CreatedBy() *uuid.UUID { return r.createdBy }
func (r *Reservation) RoomIDs() []uuid.UUID  { return r.roomIDs }
func (r *Reservation) Window() StayWindow    { return r.window }
func (r *Reservation) Guests() GuestCount    { return r.guests }
func (r *Reservation) Price() Money          { return r.price }
func (r *Reservation) PromoCode() *string    { return r.promoCode }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) StatusReason() *string { return r.statusReason }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }

func (r *Reservation) IsBlocking() bool { return r.status.IsBlocking() }

// Confirm validates a pending reservation (staff action).
func (r *Reservation) Confirm() error {
	if r.status != StatusPending {
		return ErrTransitionBlocked
	}
	r.status = StatusConfirmed
	return nil
}

// Reject turns a pending reservation down. The reason is kept for
// communication back to the client.
func (r *Reservation) Reject(reason string) error {
	if r.status != StatusPending {
		return ErrTransitionBlocked
	}
	r.status = StatusCanceled
	r.statusReason = &reason
	return nil
}

func (r *Reservation) CheckIn() error {
	if r.status != StatusConfirmed {
		return ErrTransitionBlocked
	}
	r.status = StatusCheckedIn
	return nil
}

func (r *Reservation) CheckOut() error {
	if r.status != StatusCheckedIn {
		return ErrTransitionBlocked
	}
	r.status = StatusCheckedOut
	return nil
}

func (r *Reservation) Complete() error {
	if r.status != StatusCheckedOut {
		return ErrTransitionBlocked
	}
	r.status = StatusCompleted
	return nil
}

// CancelAt applies the client-side cancellation guard: the reservation
// must still be pending or confirmed, check-in must be strictly in the
// future, and at least minNotice must remain before check-in. The guard
// is re-derived on every attempt; an already canceled reservation is a
// distinct conflict, never a silent success.
func (r *Reservation) CancelAt(now time.Time, minNotice time.Duration) error {
	if r.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	if r.status != StatusPending && r.status != StatusConfirmed {
		return ErrTransitionBlocked
	}
	if !r.window.CheckIn().After(now) {
		return ErrStayStarted
	}
	if r.window.NoticeAt(now) <= minNotice {
		return ErrNoticeWindowClosed
	}
	r.status = StatusCanceled
	return nil
}

// CanRescheduleAt is the edit guard: confirmed only, check-in in the
// future, minNotice remaining.
func (r *Reservation) CanRescheduleAt(now time.Time, minNotice time.Duration) error {
	if r.status != StatusConfirmed {
		return ErrTransitionBlocked
	}
	if !r.window.CheckIn().After(now) {
		return ErrStayStarted
	}
	if r.window.NoticeAt(now) <= minNotice {
		return ErrNoticeWindowClosed
	}
	return nil
}

// Reschedule replaces the stay window and guest counts after the edit
// guard and a fresh capacity check pass. The caller supplies the rooms
// to re-derive capacity and the recomputed price; a reschedule never
// keeps the old total.
func (r *Reservation) Reschedule(
	now time.Time,
	minNotice time.Duration,
	rooms []RoomStay,
	window StayWindow,
	guests GuestCount,
	price Money,
) error {
	if err := r.CanRescheduleAt(now, minNotice); err != nil {
		return err
	}
	if guests.Total() > CombinedCapacity(rooms) {
		return ErrCapacityExceeded
	}
	r.window = window
	r.guests = guests
	r.price = price
	return nil
}
