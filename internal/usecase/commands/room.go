package commands

import (
	"context"

	"roomdesk/internal/domain/room"
	reqdto "roomdesk/internal/handler/dto/request"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/clock"
	"roomdesk/internal/pkg/errs"
	"roomdesk/internal/usecase/queries"
	"roomdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicateRoomNumber = errs.New("room number already exists")
	ErrRoomHasReservations = errs.New("room still has blocking reservations")
)

// RoomCommands is the admin catalog surface.
type RoomCommands interface {
	CreateRoom(ctx context.Context, req reqdto.UpsertRoomRequest) (*queries.RoomView, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req reqdto.UpsertRoomRequest) (*queries.RoomView, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type roomCommandsImpl struct {
	roomRepo  RoomRepository
	roomViews queries.RoomViewRepo
	db        *pgxpool.Pool
	clock     clock.Clock
}

func NewRoomCommands(
	roomRepo RoomRepository,
	roomViews queries.RoomViewRepo,
	pool *pgxpool.Pool,
	clk clock.Clock,
) RoomCommands {
	return &roomCommandsImpl{
		roomRepo:  roomRepo,
		roomViews: roomViews,
		db:        pool,
		clock:     clk,
	}
}

func (u *roomCommandsImpl) CreateRoom(ctx context.Context, req reqdto.UpsertRoomRequest) (*queries.RoomView, error) {
	rm, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = shared.RunInTx(ctx, u.db, func(tx db.DBTX) (struct{}, error) {
		if createErr := u.roomRepo.Create(ctx, tx, rm); createErr != nil {
			return struct{}{}, mapRoomRepoErr(createErr)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	return u.roomViews.FindByID(ctx, rm.ID())
}

func (u *roomCommandsImpl) UpdateRoom(ctx context.Context, id uuid.UUID, req reqdto.UpsertRoomRequest) (*queries.RoomView, error) {
	_, err := shared.RunInTx(ctx, u.db, func(tx db.DBTX) (struct{}, error) {
		existing, findErr := u.roomRepo.FindByID(ctx, tx, id)
		if findErr != nil {
			return struct{}{}, mapRoomRepoErr(findErr)
		}

		updated, buildErr := buildUpdatedRoom(existing, req, u.clock)
		if buildErr != nil {
			return struct{}{}, errs.Mark(buildErr, ErrDomainValidation)
		}

		if updErr := u.roomRepo.Update(ctx, tx, updated); updErr != nil {
			return struct{}{}, mapRoomRepoErr(updErr)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	return u.roomViews.FindByID(ctx, id)
}

func (u *roomCommandsImpl) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	_, err := shared.RunInTx(ctx, u.db, func(tx db.DBTX) (struct{}, error) {
		if delErr := u.roomRepo.Delete(ctx, tx, id); delErr != nil {
			return struct{}{}, mapRoomRepoErr(delErr)
		}
		return struct{}{}, nil
	})
	return err
}

// buildUpdatedRoom revalidates the request through the domain
// constructor, then rebinds identity and derived fields the request
// cannot change.
func buildUpdatedRoom(existing *room.Room, req reqdto.UpsertRoomRequest, clk clock.Clock) (*room.Room, error) {
	validated, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	return room.ReconstructRoom(
		existing.ID(),
		validated.Number(), validated.Name(), validated.Floor(),
		validated.Type(), validated.View(), validated.Bed(),
		validated.Capacity(), validated.NightlyRateCents(),
		validated.Amenities(), validated.Images(), validated.Featured(),
		existing.Rating(),
		existing.CreatedAt(), clk.Now(),
	), nil
}

func mapRoomRepoErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrRoomNotFound)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, ErrDuplicateRoomNumber)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrRoomHasReservations)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
