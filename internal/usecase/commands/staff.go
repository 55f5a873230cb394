package commands

import (
	"context"

	"roomdesk/internal/domain/reservation"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/clock"
	"roomdesk/internal/pkg/errs"
	"roomdesk/internal/usecase/queries"
	"roomdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StaffCommands are the back-office lifecycle transitions. Route-level
// role checks keep clients out; ownership is irrelevant here.
type StaffCommands interface {
	Validate(ctx context.Context, actor Actor, id uuid.UUID) (*queries.ReservationView, error)
	Reject(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*queries.ReservationView, error)
	CheckIn(ctx context.Context, actor Actor, id uuid.UUID) (*queries.ReservationView, error)
	CheckOut(ctx context.Context, actor Actor, id uuid.UUID) (*queries.ReservationView, error)
	Complete(ctx context.Context, actor Actor, id uuid.UUID) (*queries.ReservationView, error)
}

type staffCommandsImpl struct {
	reservationRepo    ReservationRepository
	notificationRepo   NotificationRepository
	reservationQueries queries.ReservationQueries
	db                 *pgxpool.Pool
	clock              clock.Clock
}

func NewStaffCommands(
	reservationRepo ReservationRepository,
	notificationRepo NotificationRepository,
	reservationQueries queries.ReservationQueries,
	pool *pgxpool.Pool,
	clk clock.Clock,
) StaffCommands {
	return &staffCommandsImpl{
		reservationRepo:    reservationRepo,
		notificationRepo:   notificationRepo,
		reservationQueries: reservationQueries,
		db:                 pool,
		clock:              clk,
	}
}

func (u *staffCommandsImpl) Validate(ctx context.Context, _ Actor, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, id, NotificationReservationValidated, func(res *reservation.Reservation) error {
		return res.Confirm()
	})
}

func (u *staffCommandsImpl) Reject(ctx context.Context, _ Actor, id uuid.UUID, reason string) (*queries.ReservationView, error) {
	return u.transition(ctx, id, NotificationReservationRejected, func(res *reservation.Reservation) error {
		return res.Reject(reason)
	})
}

func (u *staffCommandsImpl) CheckIn(ctx context.Context, _ Actor, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, id, NotificationReservationCheckedIn, func(res *reservation.Reservation) error {
		return res.CheckIn()
	})
}

func (u *staffCommandsImpl) CheckOut(ctx context.Context, _ Actor, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, id, NotificationReservationCheckedOut, func(res *reservation.Reservation) error {
		return res.CheckOut()
	})
}

func (u *staffCommandsImpl) Complete(ctx context.Context, _ Actor, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, id, "", func(res *reservation.Reservation) error {
		return res.Complete()
	})
}

// transition locks the reservation, applies the state change and
// persists the result. An empty notification kind means the transition
// is silent.
func (u *staffCommandsImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	notificationKind string,
	apply func(res *reservation.Reservation) error,
) (*queries.ReservationView, error) {
	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx db.DBTX) (struct{}, error) {
		res, loadErr := u.reservationRepo.FindForUpdate(ctx, tx, id)
		if loadErr != nil {
			if infra.IsKind(loadErr, infra.KindNotFound) {
				return struct{}{}, errs.Mark(loadErr, ErrReservationNotFound)
			}
			return struct{}{}, errs.Mark(loadErr, ErrDatabaseOperationFailed)
		}

		if applyErr := apply(res); applyErr != nil {
			return struct{}{}, mapGuardErr(applyErr)
		}

		if updErr := u.reservationRepo.UpdateStatus(ctx, tx, res); updErr != nil {
			return struct{}{}, errs.Mark(updErr, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	if notificationKind != "" {
		enqueueNotificationJob(ctx, u.notificationRepo, u.db, u.clock, notificationKind, id)
	}

	view, err := u.reservationQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
