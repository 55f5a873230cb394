package commands

import (
	"context"
	"errors"

	"roomdesk/internal/domain/reservation"
	reqdto "roomdesk/internal/handler/dto/request"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/clock"
	"roomdesk/internal/pkg/config"
	"roomdesk/internal/pkg/errs"
	"roomdesk/internal/usecase/queries"
	"roomdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrNotReservationOwner = errs.New("reservation belongs to another client")
	ErrAlreadyCanceled     = errs.New("reservation is already canceled")
	ErrInvalidTransition   = errs.New("transition is not allowed from the current status")
	ErrNoticeWindowClosed  = errs.New("the minimum notice before check-in has passed")
	ErrStayAlreadyStarted  = errs.New("check-in is no longer in the future")
)

type ReservationCommands interface {
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*queries.ReservationView, error)
	Reschedule(ctx context.Context, actor Actor, id uuid.UUID, req reqdto.RescheduleReservationRequest) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	roomRepo           RoomRepository
	reservationRepo    ReservationRepository
	clients            ClientRegistry
	notificationRepo   NotificationRepository
	pricer             reservation.PriceCalculator
	reservationQueries queries.ReservationQueries
	db                 *pgxpool.Pool
	clock              clock.Clock
	cfg                config.BookingConfig
}

func NewReservationCommands(
	roomRepo RoomRepository,
	reservationRepo ReservationRepository,
	clients ClientRegistry,
	notificationRepo NotificationRepository,
	pricer reservation.PriceCalculator,
	reservationQueries queries.ReservationQueries,
	pool *pgxpool.Pool,
	clk clock.Clock,
	cfg config.BookingConfig,
) ReservationCommands {
	return &reservationCommandsImpl{
		roomRepo:           roomRepo,
		reservationRepo:    reservationRepo,
		clients:            clients,
		notificationRepo:   notificationRepo,
		pricer:             pricer,
		reservationQueries: reservationQueries,
		db:                 pool,
		clock:              clk,
		cfg:                cfg,
	}
}

// Cancel re-derives the cancellation guard inside the transaction on
// every attempt. Staff cancel without a notice requirement; clients get
// the configured window. Repeating a cancel surfaces as a conflict, not
// a silent success.
func (u *reservationCommandsImpl) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*queries.ReservationView, error) {
	minNotice := u.cfg.CancelMinNotice
	if actor.IsStaff() {
		minNotice = 0
	}

	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx db.DBTX) (struct{}, error) {
		res, loadErr := u.loadOwned(ctx, tx, actor, id)
		if loadErr != nil {
			return struct{}{}, loadErr
		}

		if cancelErr := res.CancelAt(u.clock.Now(), minNotice); cancelErr != nil {
			return struct{}{}, mapGuardErr(cancelErr)
		}

		if updErr := u.reservationRepo.UpdateStatus(ctx, tx, res); updErr != nil {
			return struct{}{}, errs.Mark(updErr, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	enqueueNotificationJob(ctx, u.notificationRepo, u.db, u.clock, NotificationReservationCanceled, id)

	view, err := u.reservationQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Reschedule moves a confirmed stay to a new window and occupancy. The
// rooms stay fixed; availability is rechecked against everyone else and
// the total is recomputed from current rates. The old price never
// survives an edit.
func (u *reservationCommandsImpl) Reschedule(ctx context.Context, actor Actor, id uuid.UUID, req reqdto.RescheduleReservationRequest) (*queries.ReservationView, error) {
	window, err := req.ToWindow()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	guests, err := req.ToGuests()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := window.ValidateNotPastAt(u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	minNotice := u.cfg.EditMinNotice
	if actor.IsStaff() {
		minNotice = 0
	}

	_, err = shared.WithDefaultRetry(ctx, u.db, func(tx db.DBTX) (struct{}, error) {
		res, loadErr := u.loadOwned(ctx, tx, actor, id)
		if loadErr != nil {
			return struct{}{}, loadErr
		}

		if guardErr := res.CanRescheduleAt(u.clock.Now(), minNotice); guardErr != nil {
			return struct{}{}, mapGuardErr(guardErr)
		}

		stays, lockErr := u.roomRepo.LockForBooking(ctx, tx, res.RoomIDs())
		if lockErr != nil {
			return struct{}{}, errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		resID := res.ID()
		conflicts, confErr := u.reservationRepo.FindConflictingIDs(ctx, tx, res.RoomIDs(), window, &resID)
		if confErr != nil {
			return struct{}{}, errs.Mark(confErr, ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return struct{}{}, ErrRoomConflict
		}

		price := u.pricer.Quote(stays, window)

		if reschedErr := res.Reschedule(u.clock.Now(), minNotice, stays, window, guests, price); reschedErr != nil {
			return struct{}{}, mapGuardErr(reschedErr)
		}

		if updErr := u.reservationRepo.UpdateStay(ctx, tx, res); updErr != nil {
			return struct{}{}, errs.Mark(updErr, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	enqueueNotificationJob(ctx, u.notificationRepo, u.db, u.clock, NotificationReservationRescheduled, id)

	view, err := u.reservationQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// loadOwned locks the reservation row and enforces ownership for
// non-staff actors.
func (u *reservationCommandsImpl) loadOwned(ctx context.Context, tx db.DBTX, actor Actor, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := u.reservationRepo.FindForUpdate(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !actor.IsStaff() {
		clientID, clientErr := u.clients.FindIDByUserID(ctx, tx, actor.UserID)
		if clientErr != nil {
			return nil, errs.Mark(clientErr, ErrNotReservationOwner)
		}
		if res.ClientID() != clientID {
			return nil, ErrNotReservationOwner
		}
	}
	return res, nil
}

func mapGuardErr(err error) error {
	switch {
	case errors.Is(err, reservation.ErrAlreadyCanceled):
		return errs.Mark(err, ErrAlreadyCanceled)
	case errors.Is(err, reservation.ErrTransitionBlocked):
		return errs.Mark(err, ErrInvalidTransition)
	case errors.Is(err, reservation.ErrNoticeWindowClosed):
		return errs.Mark(err, ErrNoticeWindowClosed)
	case errors.Is(err, reservation.ErrStayStarted):
		return errs.Mark(err, ErrStayAlreadyStarted)
	case errors.Is(err, reservation.ErrCapacityExceeded):
		return errs.Mark(err, ErrDomainValidation)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
