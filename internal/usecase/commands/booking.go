package commands

import (
	"context"
	"log/slog"

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
	ErrRoomNotFound            = errs.New("room not found")
	ErrRoomConflict            = errs.New("rooms are already booked for the requested stay")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrPriceMismatch           = errs.New("quoted total does not match the server price")
	ErrGuestDetailsRequired    = errs.New("guest details are required for staff bookings")
	ErrClientNotFound          = errs.New("no client profile for user")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Notification job kinds enqueued after commit.
const (
	NotificationReservationCreated     = "reservation_created"
	NotificationReservationCanceled    = "reservation_canceled"
	NotificationReservationRescheduled = "reservation_rescheduled"
	NotificationReservationValidated   = "reservation_validated"
	NotificationReservationRejected    = "reservation_rejected"
	NotificationReservationCheckedIn   = "reservation_checked_in"
	NotificationReservationCheckedOut  = "reservation_checked_out"
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, actor Actor) (*queries.ReservationView, error)
}

type bookingUseCaseImpl struct {
	roomRepo           RoomRepository
	reservationRepo    ReservationRepository
	clients            ClientRegistry
	notificationRepo   NotificationRepository
	factory            *reservation.Factory
	reservationQueries queries.ReservationQueries
	db                 *pgxpool.Pool
	clock              clock.Clock
	cfg                config.BookingConfig
}

func NewBookingUseCase(
	roomRepo RoomRepository,
	reservationRepo ReservationRepository,
	clients ClientRegistry,
	notificationRepo NotificationRepository,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	pool *pgxpool.Pool,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingUseCaseImpl{
		roomRepo:           roomRepo,
		reservationRepo:    reservationRepo,
		clients:            clients,
		notificationRepo:   notificationRepo,
		factory:            factory,
		reservationQueries: reservationQueries,
		db:                 pool,
		clock:              clk,
		cfg:                cfg,
	}
}

// CreateBooking runs the whole booking inside one retried transaction:
// lock the rooms, recheck overlaps against committed blocking stays,
// price server-side, persist. Two racing requests for the same room and
// window serialize on the room locks, so exactly one can win.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, actor Actor) (*queries.ReservationView, error) {
	window, err := req.ToWindow()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	guests, err := req.ToGuests()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := u.preValidate(ctx, req.RoomIDs, window, guests); err != nil {
		return nil, err
	}

	channel := reservation.ChannelWeb
	var createdBy *uuid.UUID
	if actor.IsStaff() {
		channel = reservation.ChannelStaff
		staffID := actor.UserID
		createdBy = &staffID
	}

	reservationID, err := shared.WithDefaultRetry(ctx, u.db, func(tx db.DBTX) (uuid.UUID, error) {
		stays, lockErr := u.roomRepo.LockForBooking(ctx, tx, req.RoomIDs)
		if lockErr != nil {
			if infra.IsKind(lockErr, infra.KindNotFound) {
				return uuid.Nil, errs.Mark(lockErr, ErrRoomNotFound)
			}
			return uuid.Nil, errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		conflicts, confErr := u.reservationRepo.FindConflictingIDs(ctx, tx, req.RoomIDs, window, nil)
		if confErr != nil {
			return uuid.Nil, errs.Mark(confErr, ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return uuid.Nil, ErrRoomConflict
		}

		clientID, clientErr := u.resolveClient(ctx, tx, actor, req.Guest)
		if clientErr != nil {
			return uuid.Nil, clientErr
		}

		res, factErr := u.factory.NewBooking(clientID, createdBy, stays, window, guests, channel, req.GetPromoCode())
		if factErr != nil {
			return uuid.Nil, errs.Mark(factErr, ErrDomainValidation)
		}

		if quoteErr := u.checkQuotedTotal(req.QuotedTotalCents, res.Price()); quoteErr != nil {
			return uuid.Nil, quoteErr
		}

		if createErr := u.reservationRepo.Create(ctx, tx, res); createErr != nil {
			return uuid.Nil, errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		return res.ID(), nil
	})
	if err != nil {
		return nil, err
	}

	enqueueNotificationJob(ctx, u.notificationRepo, u.db, u.clock, NotificationReservationCreated, reservationID)

	view, err := u.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// preValidate rejects everything a plain read can rule out before any
// transaction begins: duplicate room ids, past check-ins, unknown rooms
// and guest counts the requested rooms cannot hold. The locked read
// inside the transaction re-validates via the factory, so a room edited
// between the two reads still cannot slip through.
func (u *bookingUseCaseImpl) preValidate(ctx context.Context, roomIDs []uuid.UUID, window reservation.StayWindow, guests reservation.GuestCount) error {
	seen := make(map[uuid.UUID]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		if _, dup := seen[id]; dup {
			return errs.Mark(reservation.ErrDuplicateRoom, ErrDomainValidation)
		}
		seen[id] = struct{}{}
	}

	if err := window.ValidateNotPastAt(u.clock.Now()); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	stays, err := u.roomRepo.FindStaysByIDs(ctx, u.db, roomIDs)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrRoomNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if guests.Total() > reservation.CombinedCapacity(stays) {
		return errs.Mark(reservation.ErrCapacityExceeded, ErrDomainValidation)
	}
	return nil
}

func (u *bookingUseCaseImpl) resolveClient(ctx context.Context, tx db.DBTX, actor Actor, guest *reqdto.GuestDetails) (uuid.UUID, error) {
	if actor.IsStaff() {
		if guest == nil {
			return uuid.Nil, ErrGuestDetailsRequired
		}
		return u.clients.ResolveOrCreate(ctx, tx, ClientProfile{
			Name:  guest.Name,
			Email: guest.Email,
			Phone: guest.Phone,
		})
	}

	clientID, err := u.clients.FindIDByUserID(ctx, tx, actor.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, ErrClientNotFound)
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return clientID, nil
}

// checkQuotedTotal compares the client's displayed total against the
// server-side price. The server price always wins; whether a divergence
// beyond the epsilon rejects the booking or only logs is a policy knob.
func (u *bookingUseCaseImpl) checkQuotedTotal(quotedCents *int64, price reservation.Money) error {
	if quotedCents == nil {
		return nil
	}

	quoted := reservation.NewMoney(*quotedCents)
	if price.WithinEpsilon(quoted, u.cfg.PriceEpsilonCents) {
		return nil
	}

	if u.cfg.PriceMismatchReject {
		return ErrPriceMismatch
	}

	slog.Warn("quoted total differs from server price",
		"quoted_cents", *quotedCents,
		"server_cents", price.Cents())
	return nil
}
