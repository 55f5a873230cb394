package repository

import (
	"context"

	"roomdesk/internal/domain/reservation"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error {
	const insertReservation = `
		INSERT INTO reservations (id, client_id, created_by, check_in, check_out,
			adults, children, total_price_cents, promo_code, status, status_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := dbtx.Exec(ctx, insertReservation,
		res.ID(), res.ClientID(), pgconv.UUIDPtrToPgtype(res.CreatedBy()),
		res.Window().CheckIn(), res.Window().CheckOut(),
		res.Guests().Adults(), res.Guests().Children(),
		res.Price().Cents(), pgconv.StringPtrToPgtype(res.PromoCode()),
		res.Status().String(), pgconv.StringPtrToPgtype(res.StatusReason()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	const insertRooms = `
		INSERT INTO reservation_rooms (reservation_id, room_id)
		SELECT $1, unnest($2::uuid[])`

	if _, err := dbtx.Exec(ctx, insertRooms, res.ID(), res.RoomIDs()); err != nil {
		return infra.WrapRepoErr("failed to attach rooms to reservation", err)
	}
	return nil
}

// FindForUpdate loads a reservation with its row locked, so status
// transitions and edits serialize per reservation.
func (r *ReservationRepository) FindForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	const query = `
		SELECT id, client_id, created_by, check_in, check_out, adults, children,
			total_price_cents, promo_code, status, status_reason, created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE`

	var (
		resID, clientID      uuid.UUID
		createdBy            pgtype.UUID
		checkIn, checkOut    pgtype.Timestamptz
		adults, children     int
		totalPriceCents      int64
		promoCode            pgtype.Text
		status               string
		statusReason         pgtype.Text
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := dbtx.QueryRow(ctx, query, id).Scan(
		&resID, &clientID, &createdBy, &checkIn, &checkOut, &adults, &children,
		&totalPriceCents, &promoCode, &status, &statusReason, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	roomIDs, err := r.findRoomIDs(ctx, dbtx, resID)
	if err != nil {
		return nil, err
	}

	window, err := reservation.NewStayWindow(checkIn.Time, checkOut.Time)
	if err != nil {
		return nil, infra.WrapRepoErr("stored stay window is invalid", err)
	}
	guests, err := reservation.NewGuestCount(adults, children)
	if err != nil {
		return nil, infra.WrapRepoErr("stored guest count is invalid", err)
	}
	st, err := reservation.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored status is invalid", err)
	}

	return reservation.ReconstructReservation(
		resID, clientID,
		pgconv.UUIDPtrFromPgtype(createdBy),
		roomIDs, window, guests,
		reservation.NewMoney(totalPriceCents),
		pgconv.StringPtrFromPgtype(promoCode),
		st,
		pgconv.StringPtrFromPgtype(statusReason),
		createdAt.Time, updatedAt.Time,
	), nil
}

func (r *ReservationRepository) findRoomIDs(ctx context.Context, dbtx db.DBTX, reservationID uuid.UUID) ([]uuid.UUID, error) {
	const query = `
		SELECT room_id
		FROM reservation_rooms
		WHERE reservation_id = $1
		ORDER BY room_id`

	rows, err := dbtx.Query(ctx, query, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation rooms", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation room", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rooms", err)
	}
	return ids, nil
}

// FindConflictingIDs returns reservations in a blocking status whose stay
// intersects the half-open window on any of the given rooms. exclude
// skips the reservation being edited so it never conflicts with itself.
func (r *ReservationRepository) FindConflictingIDs(
	ctx context.Context,
	dbtx db.DBTX,
	roomIDs []uuid.UUID,
	window reservation.StayWindow,
	exclude *uuid.UUID,
) ([]uuid.UUID, error) {
	const query = `
		SELECT DISTINCT res.id
		FROM reservations res
		JOIN reservation_rooms rr ON rr.reservation_id = res.id
		WHERE rr.room_id = ANY($1)
		  AND res.status = ANY($2)
		  AND res.check_in < $3
		  AND res.check_out > $4
		  AND ($5::uuid IS NULL OR res.id <> $5)`

	rows, err := dbtx.Query(ctx, query,
		roomIDs, reservation.BlockingStatusStrings(),
		window.CheckOut(), window.CheckIn(),
		pgconv.UUIDPtrToPgtype(exclude),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query conflicting reservations", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan conflict row", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read conflict rows", err)
	}
	return ids, nil
}

// UpdateStay persists the result of a reschedule: window, guests and the
// recomputed total.
func (r *ReservationRepository) UpdateStay(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error {
	const query = `
		UPDATE reservations
		SET check_in = $2, check_out = $3, adults = $4, children = $5,
			total_price_cents = $6, updated_at = now()
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query,
		res.ID(), res.Window().CheckIn(), res.Window().CheckOut(),
		res.Guests().Adults(), res.Guests().Children(), res.Price().Cents(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation stay", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error {
	const query = `
		UPDATE reservations
		SET status = $2, status_reason = $3, updated_at = now()
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query,
		res.ID(), res.Status().String(), pgconv.StringPtrToPgtype(res.StatusReason()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
