package commands

import (
	"context"
	"time"

	"roomdesk/internal/domain/reservation"
	"roomdesk/internal/domain/room"
	"roomdesk/internal/domain/user"
	"roomdesk/internal/infra/db"

	"github.com/google/uuid"
)

// Actor is the authenticated principal a command runs on behalf of.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

// ClientProfile is the write-side shape of a guest registry entry.
type ClientProfile struct {
	UserID *uuid.UUID
	Name   string
	Email  string
	Phone  *string
}

type RoomRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, rm *room.Room) error
	Update(ctx context.Context, dbtx db.DBTX, rm *room.Room) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*room.Room, error)
	FindStaysByIDs(ctx context.Context, dbtx db.DBTX, roomIDs []uuid.UUID) ([]reservation.RoomStay, error)
	LockForBooking(ctx context.Context, dbtx db.DBTX, roomIDs []uuid.UUID) ([]reservation.RoomStay, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error
	FindForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	FindConflictingIDs(ctx context.Context, dbtx db.DBTX, roomIDs []uuid.UUID, window reservation.StayWindow, exclude *uuid.UUID) ([]uuid.UUID, error)
	UpdateStay(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error
	UpdateStatus(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error
}

type ClientRegistry interface {
	FindIDByUserID(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (uuid.UUID, error)
	ResolveOrCreate(ctx context.Context, dbtx db.DBTX, p ClientProfile) (uuid.UUID, error)
	CreateForUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, name, email string) (uuid.UUID, error)
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) error
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind string, reservationID uuid.UUID, payload []byte, runAt time.Time) error
}
