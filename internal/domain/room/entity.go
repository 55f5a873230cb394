package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyNumber       = errors.New("room number cannot be empty")
	ErrEmptyName         = errors.New("room name cannot be empty")
	ErrNameTooLong       = errors.New("room name is too long (max 255 characters)")
	ErrInvalidCapacity   = errors.New("capacity must be at least one guest")
	ErrNegativeRate      = errors.New("nightly rate cannot be negative")
	ErrRatingOutOfRange  = errors.New("rating must be between 0 and 5")
	ErrRoomStillReserved = errors.New("room has blocking reservations")
)

const MaxNameLength = 255

// Room is catalog reference data. Descriptive attributes (view, beds,
// amenities, images) are irrelevant to overlap logic but carried through
// to availability and pricing responses.
type Room struct {
	id               uuid.UUID
	number           string
	name             string
	floor            int
	roomType         RoomType
	view             ViewKind
	bedType          BedType
	capacity         int
	nightlyRateCents int64
	amenities        []string
	images           []string
	featured         bool
	rating           float64
	createdAt        time.Time
	updatedAt        time.Time
}

func NewRoom(
	number, name string,
	floor int,
	roomType RoomType,
	view ViewKind,
	bedType BedType,
	capacity int,
	nightlyRateCents int64,
	amenities, images []string,
	featured bool,
) (*Room, error) {
	number = strings.TrimSpace(number)
	name = strings.TrimSpace(name)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if !roomType.IsValid() {
		return nil, ErrInvalidRoomType
	}
	if !view.IsValid() {
		return nil, ErrInvalidViewKind
	}
	if !bedType.IsValid() {
		return nil, ErrInvalidBedType
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if nightlyRateCents < 0 {
		return nil, ErrNegativeRate
	}

	return &Room{
		id:               uuid.New(),
		number:           number,
		name:             name,
		floor:            floor,
		roomType:         roomType,
		view:             view,
		bedType:          bedType,
		capacity:         capacity,
		nightlyRateCents: nightlyRateCents,
		amenities:        amenities,
		images:           images,
		featured:         featured,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	number, name string,
	floor int,
	roomType RoomType,
	view ViewKind,
	bedType BedType,
	capacity int,
	nightlyRateCents int64,
	amenities, images []string,
	featured bool,
	rating float64,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:               id,
		number:           number,
		name:             name,
		floor:            floor,
		roomType:         roomType,
		view:             view,
		bedType:          bedType,
		capacity:         capacity,
		nightlyRateCents: nightlyRateCents,
		amenities:        amenities,
		images:           images,
		featured:         featured,
		rating:           rating,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (r *Room) ID() uuid.UUID           { return r.id }
func (r *Room) Number() string          { return r.number }
func (r *Room) Name() string            { return r.name }
func (r *Room) Floor() int              { return r.floor }
func (r *Room) Type() RoomType          { return r.roomType }
func (r *Room) View() ViewKind          { return r.view }
func (r *Room) Bed() BedType            { return r.bedType }
func (r *Room) Capacity() int           { return r.capacity }
func (r *Room) NightlyRateCents() int64 { return r.nightlyRateCents }
func (r *Room) Amenities() []string     { return r.amenities }
func (r *Room) Images() []string        { return r.images }
func (r *Room) Featured() bool          { return r.featured }
func (r *Room) Rating() float64         { return r.rating }
func (r *Room) CreatedAt() time.Time    { return r.createdAt }
func (r *Room) UpdatedAt() time.Time    { return r.updatedAt }

func (r *Room) Sleeps(guests int) bool {
	return guests <= r.capacity
}
