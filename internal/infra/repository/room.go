package repository

import (
	"context"

	"roomdesk/internal/domain/reservation"
	"roomdesk/internal/domain/room"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

const roomColumns = `id, number, name, floor, room_type, view_kind, bed_type,
	capacity, nightly_rate_cents, amenities, images, featured, rating, created_at, updated_at`

func (r *RoomRepository) Create(ctx context.Context, dbtx db.DBTX, rm *room.Room) error {
	const query = `
		INSERT INTO rooms (id, number, name, floor, room_type, view_kind, bed_type,
			capacity, nightly_rate_cents, amenities, images, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := dbtx.Exec(ctx, query,
		rm.ID(), rm.Number(), rm.Name(), rm.Floor(),
		rm.Type().String(), rm.View().String(), rm.Bed().String(),
		rm.Capacity(), rm.NightlyRateCents(), rm.Amenities(), rm.Images(), rm.Featured(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, dbtx db.DBTX, rm *room.Room) error {
	const query = `
		UPDATE rooms
		SET number = $2, name = $3, floor = $4, room_type = $5, view_kind = $6,
			bed_type = $7, capacity = $8, nightly_rate_cents = $9, amenities = $10,
			images = $11, featured = $12, updated_at = now()
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query,
		rm.ID(), rm.Number(), rm.Name(), rm.Floor(),
		rm.Type().String(), rm.View().String(), rm.Bed().String(),
		rm.Capacity(), rm.NightlyRateCents(), rm.Amenities(), rm.Images(), rm.Featured(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete removes a room only when no blocking reservation still occupies
// it. Historical (terminal) reservations do not keep a room alive.
func (r *RoomRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const guard = `
		SELECT EXISTS (
			SELECT 1
			FROM reservations res
			JOIN reservation_rooms rr ON rr.reservation_id = res.id
			WHERE rr.room_id = $1 AND res.status = ANY($2)
		)`

	var blocked bool
	if err := dbtx.QueryRow(ctx, guard, id, reservation.BlockingStatusStrings()).Scan(&blocked); err != nil {
		return infra.WrapRepoErr("failed to check room reservations", err)
	}
	if blocked {
		return infra.WrapRepoErr("room has blocking reservations", nil, infra.KindConflict)
	}

	tag, err := dbtx.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*room.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	rm, err := scanRoom(dbtx.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return rm, nil
}

// FindStaysByIDs reads the capacity/rate snapshot for a set of rooms
// without locking. Booking pre-validation uses it; the authoritative
// read for pricing stays with LockForBooking inside the transaction.
func (r *RoomRepository) FindStaysByIDs(ctx context.Context, dbtx db.DBTX, roomIDs []uuid.UUID) ([]reservation.RoomStay, error) {
	const query = `
		SELECT id, number, capacity, nightly_rate_cents
		FROM rooms
		WHERE id = ANY($1)
		ORDER BY id`

	rows, err := dbtx.Query(ctx, query, roomIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find rooms", err)
	}
	defer rows.Close()

	stays := make([]reservation.RoomStay, 0, len(roomIDs))
	for rows.Next() {
		var s reservation.RoomStay
		if err := rows.Scan(&s.ID, &s.Number, &s.Capacity, &s.NightlyRateCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		stays = append(stays, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}

	if len(stays) != len(roomIDs) {
		return nil, infra.WrapRepoErr("one or more rooms do not exist", nil, infra.KindNotFound)
	}
	return stays, nil
}

// LockForBooking takes row locks on the requested rooms in a stable order
// and returns the capacity/rate snapshot the booking is priced against.
// Locking in id order keeps concurrent multi-room bookings deadlock-free.
func (r *RoomRepository) LockForBooking(ctx context.Context, dbtx db.DBTX, roomIDs []uuid.UUID) ([]reservation.RoomStay, error) {
	const query = `
		SELECT id, number, capacity, nightly_rate_cents
		FROM rooms
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`

	rows, err := dbtx.Query(ctx, query, roomIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock rooms", err)
	}
	defer rows.Close()

	stays := make([]reservation.RoomStay, 0, len(roomIDs))
	for rows.Next() {
		var s reservation.RoomStay
		if err := rows.Scan(&s.ID, &s.Number, &s.Capacity, &s.NightlyRateCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		stays = append(stays, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}

	if len(stays) != len(roomIDs) {
		return nil, infra.WrapRepoErr("one or more rooms do not exist", nil, infra.KindNotFound)
	}
	return stays, nil
}

func scanRoom(row pgx.Row) (*room.Room, error) {
	var (
		id                   uuid.UUID
		number, name         string
		floor                int
		roomType, view, bed  string
		capacity             int
		nightlyRateCents     int64
		amenities, images    []string
		featured             bool
		rating               float64
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &number, &name, &floor, &roomType, &view, &bed,
		&capacity, &nightlyRateCents, &amenities, &images, &featured, &rating,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return room.ReconstructRoom(
		id, number, name, floor,
		room.RoomType(roomType), room.ViewKind(view), room.BedType(bed),
		capacity, nightlyRateCents, amenities, images, featured, rating,
		createdAt.Time, updatedAt.Time,
	), nil
}
