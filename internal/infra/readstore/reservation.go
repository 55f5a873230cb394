package readstore

import (
	"context"
	"time"

	"roomdesk/internal/domain/reservation"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/pgconv"
	"roomdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(pool db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: pool}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const query = `
		SELECT res.id, res.client_id, c.name, c.email, res.created_by,
			array_agg(rm.id ORDER BY rm.number), array_agg(rm.number ORDER BY rm.number),
			res.check_in, res.check_out, res.adults, res.children,
			res.total_price_cents, res.promo_code, res.status, res.status_reason,
			res.created_at, res.updated_at
		FROM reservations res
		JOIN clients c ON c.id = res.client_id
		JOIN reservation_rooms rr ON rr.reservation_id = res.id
		JOIN rooms rm ON rm.id = rr.room_id
		WHERE res.id = $1
		GROUP BY res.id, c.name, c.email`

	var (
		v                    queries.ReservationView
		createdBy            pgtype.UUID
		checkIn, checkOut    pgtype.Timestamptz
		promoCode            pgtype.Text
		statusReason         pgtype.Text
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.ClientID, &v.ClientName, &v.ClientEmail, &createdBy,
		&v.RoomIDs, &v.RoomNumbers,
		&checkIn, &checkOut, &v.Adults, &v.Children,
		&v.TotalPriceCents, &promoCode, &v.Status, &statusReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	v.CreatedBy = pgconv.UUIDPtrFromPgtype(createdBy)
	v.CheckIn = checkIn.Time
	v.CheckOut = checkOut.Time
	v.PromoCode = pgconv.StringPtrFromPgtype(promoCode)
	v.StatusReason = pgconv.StringPtrFromPgtype(statusReason)
	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	if window, werr := reservation.NewStayWindow(v.CheckIn, v.CheckOut); werr == nil {
		v.Nights = window.Nights()
	}

	return &v, nil
}

// FindByClientID pages a client's reservation history newest-first with a
// keyset cursor on (created_at, id).
func (r *ReservationReadStore) FindByClientID(ctx context.Context, clientID uuid.UUID, limit int32, cursor *queries.ListCursor) ([]*queries.ReservationListItem, error) {
	const query = `
		SELECT res.id, array_agg(rm.number ORDER BY rm.number),
			res.check_in, res.check_out, res.adults, res.children,
			res.total_price_cents, res.status, res.created_at
		FROM reservations res
		JOIN reservation_rooms rr ON rr.reservation_id = res.id
		JOIN rooms rm ON rm.id = rr.room_id
		WHERE res.client_id = $1
		  AND ($2::timestamptz IS NULL OR (res.created_at, res.id) < ($2, $3))
		GROUP BY res.id
		ORDER BY res.created_at DESC, res.id DESC
		LIMIT $4`

	var (
		cursorAt pgtype.Timestamptz
		cursorID pgtype.UUID
	)
	if cursor != nil {
		cursorAt = pgconv.TimeToPgtype(cursor.CreatedAt)
		cursorID = pgconv.UUIDToPgtype(cursor.ID)
	}

	rows, err := r.db.Query(ctx, query, clientID, cursorAt, cursorID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			item                 queries.ReservationListItem
			checkIn, checkOut    pgtype.Timestamptz
			createdAt            pgtype.Timestamptz
		)
		err := rows.Scan(&item.ID, &item.RoomNumbers, &checkIn, &checkOut,
			&item.Adults, &item.Children, &item.TotalPriceCents, &item.Status, &createdAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.CheckIn = checkIn.Time
		item.CheckOut = checkOut.Time
		item.CreatedAt = createdAt.Time
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return items, nil
}

// FindStaysForRoom lists the blocking stays on one room that intersect
// the given window, for the per-room availability calendar.
func (r *ReservationReadStore) FindStaysForRoom(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]queries.StayView, error) {
	const query = `
		SELECT res.id, res.check_in, res.check_out, res.status
		FROM reservations res
		JOIN reservation_rooms rr ON rr.reservation_id = res.id
		WHERE rr.room_id = $1
		  AND res.status = ANY($2)
		  AND res.check_in < $3
		  AND res.check_out > $4
		ORDER BY res.check_in`

	rows, err := r.db.Query(ctx, query, roomID, reservation.BlockingStatusStrings(), checkOut, checkIn)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room stays", err)
	}
	defer rows.Close()

	var stays []queries.StayView
	for rows.Next() {
		var (
			s        queries.StayView
			in, out  pgtype.Timestamptz
		)
		if err := rows.Scan(&s.ReservationID, &in, &out, &s.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stay row", err)
		}
		s.CheckIn = in.Time
		s.CheckOut = out.Time
		stays = append(stays, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read stay rows", err)
	}
	return stays, nil
}
