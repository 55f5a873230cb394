package queries

import (
	"context"
	"time"

	"roomdesk/internal/pkg/clock"
	"roomdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidSearchWindow = errs.New("check-in must be before check-out")
	ErrSearchWindowInPast  = errs.New("search window starts in the past")
	ErrRoomNotFound        = errs.New("room not found")
)

type RoomViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	FindAll(ctx context.Context) ([]*RoomView, error)
	SearchAvailable(ctx context.Context, search AvailabilitySearch) ([]*RoomView, error)
}

type StayViewRepo interface {
	FindStaysForRoom(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]StayView, error)
}

type AvailabilityQueries interface {
	SearchRooms(ctx context.Context, search AvailabilitySearch) ([]*RoomView, error)
	RoomCalendar(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*RoomAvailabilityView, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListRooms(ctx context.Context) ([]*RoomView, error)
}

type availabilityQueriesImpl struct {
	rooms RoomViewRepo
	stays StayViewRepo
	clock clock.Clock
}

func NewAvailabilityQueries(rooms RoomViewRepo, stays StayViewRepo, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		rooms: rooms,
		stays: stays,
		clock: clk,
	}
}

func (q *availabilityQueriesImpl) SearchRooms(ctx context.Context, search AvailabilitySearch) ([]*RoomView, error) {
	if err := q.validateWindow(search.CheckIn, search.CheckOut); err != nil {
		return nil, err
	}

	rooms, err := q.rooms.SearchAvailable(ctx, search)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []*RoomView{}
	}
	return rooms, nil
}

// RoomCalendar answers availability for one specific room, exposing the
// blocking stays so callers can render an occupancy calendar.
func (q *availabilityQueriesImpl) RoomCalendar(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*RoomAvailabilityView, error) {
	if err := q.validateWindow(checkIn, checkOut); err != nil {
		return nil, err
	}

	if _, err := q.rooms.FindByID(ctx, roomID); err != nil {
		return nil, err
	}

	stays, err := q.stays.FindStaysForRoom(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &RoomAvailabilityView{
		RoomID:    roomID,
		Available: len(stays) == 0,
		Conflicts: stays,
	}, nil
}

func (q *availabilityQueriesImpl) GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	return q.rooms.FindByID(ctx, id)
}

func (q *availabilityQueriesImpl) ListRooms(ctx context.Context) ([]*RoomView, error) {
	return q.rooms.FindAll(ctx)
}

func (q *availabilityQueriesImpl) validateWindow(checkIn, checkOut time.Time) error {
	if !checkIn.Before(checkOut) {
		return ErrInvalidSearchWindow
	}

	now := q.clock.Now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if checkIn.Before(today) {
		return ErrSearchWindowInPast
	}
	return nil
}
