package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read-side views. These are denormalized projections shaped for API
// responses; the write-side domain entities never cross this boundary.

type RoomView struct {
	ID               uuid.UUID
	Number           string
	Name             string
	Floor            int
	RoomType         string
	ViewKind         string
	BedType          string
	Capacity         int
	NightlyRateCents int64
	Amenities        []string
	Images           []string
	Featured         bool
	Rating           float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ReservationView struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	ClientName      string
	ClientEmail     string
	CreatedBy       *uuid.UUID
	RoomIDs         []uuid.UUID
	RoomNumbers     []string
	CheckIn         time.Time
	CheckOut        time.Time
	Nights          int
	Adults          int
	Children        int
	TotalPriceCents int64
	PromoCode       *string
	Status          string
	StatusReason    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ReservationListItem struct {
	ID              uuid.UUID
	RoomNumbers     []string
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	Children        int
	TotalPriceCents int64
	Status          string
	CreatedAt       time.Time
}

// StayView is one occupied span on a room calendar.
type StayView struct {
	ReservationID uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	Status        string
}

// RoomAvailabilityView answers "is this room free for this window", with
// the stays that block it when it is not.
type RoomAvailabilityView struct {
	RoomID    uuid.UUID
	Available bool
	Conflicts []StayView
}

// Sort orders accepted by the availability search.
const (
	SortRecommended = "recommended"
	SortPriceAsc    = "price_asc"
	SortPriceDesc   = "price_desc"
)

// AvailabilitySearch carries the validated filter set for a room search.
// Pointer fields are unset filters.
type AvailabilitySearch struct {
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	MaxPriceCents *int64
	RoomType      *string
	ViewKind      *string
	BedType       *string
	Amenities     []string
	Sort          string
}

// ListCursor is a keyset position: the created_at/id pair of the last row
// of the previous page.
type ListCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// AuthorizedUserView is the account shape auth and middleware work with.
type AuthorizedUserView struct {
	ID       uuid.UUID
	Email    string
	Role     string
	IsActive bool
}
