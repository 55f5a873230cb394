package readstore

import (
	"context"

	"roomdesk/internal/domain/reservation"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/pgconv"
	"roomdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(pool db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: pool}
}

const roomViewColumns = `rm.id, rm.number, rm.name, rm.floor, rm.room_type, rm.view_kind,
	rm.bed_type, rm.capacity, rm.nightly_rate_cents, rm.amenities, rm.images,
	rm.featured, rm.rating, rm.created_at, rm.updated_at`

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	query := `SELECT ` + roomViewColumns + ` FROM rooms rm WHERE rm.id = $1`

	view, err := scanRoomView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return view, nil
}

func (r *RoomReadStore) FindAll(ctx context.Context) ([]*queries.RoomView, error) {
	query := `SELECT ` + roomViewColumns + ` FROM rooms rm ORDER BY rm.number`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	return collectRoomViews(rows)
}

// SearchAvailable returns rooms with no blocking reservation intersecting
// the half-open search window, narrowed by the optional filters. The sort
// order is resolved from a fixed whitelist, never interpolated from user
// input.
func (r *RoomReadStore) SearchAvailable(ctx context.Context, search queries.AvailabilitySearch) ([]*queries.RoomView, error) {
	query := `
		SELECT ` + roomViewColumns + `
		FROM rooms rm
		WHERE rm.capacity >= $1
		  AND ($2::bigint IS NULL OR rm.nightly_rate_cents <= $2)
		  AND ($3::text IS NULL OR rm.room_type = $3)
		  AND ($4::text IS NULL OR rm.view_kind = $4)
		  AND ($5::text IS NULL OR rm.bed_type = $5)
		  AND (cardinality($6::text[]) = 0 OR rm.amenities @> $6)
		  AND NOT EXISTS (
			SELECT 1
			FROM reservations res
			JOIN reservation_rooms rr ON rr.reservation_id = res.id
			WHERE rr.room_id = rm.id
			  AND res.status = ANY($7)
			  AND res.check_in < $8
			  AND res.check_out > $9
		  )
		ORDER BY ` + orderClause(search.Sort)

	amenities := search.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	rows, err := r.db.Query(ctx, query,
		search.Guests,
		int64PtrToPgtype(search.MaxPriceCents),
		pgconv.StringPtrToPgtype(search.RoomType),
		pgconv.StringPtrToPgtype(search.ViewKind),
		pgconv.StringPtrToPgtype(search.BedType),
		amenities,
		reservation.BlockingStatusStrings(),
		search.CheckOut,
		search.CheckIn,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search available rooms", err)
	}
	defer rows.Close()

	return collectRoomViews(rows)
}

func orderClause(sort string) string {
	switch sort {
	case queries.SortPriceAsc:
		return "rm.nightly_rate_cents ASC, rm.number ASC"
	case queries.SortPriceDesc:
		return "rm.nightly_rate_cents DESC, rm.number ASC"
	default:
		return "rm.featured DESC, rm.rating DESC, rm.nightly_rate_cents ASC, rm.number ASC"
	}
}

func collectRoomViews(rows pgx.Rows) ([]*queries.RoomView, error) {
	var views []*queries.RoomView
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}
	return views, nil
}

func scanRoomView(row pgx.Row) (*queries.RoomView, error) {
	var (
		v                    queries.RoomView
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&v.ID, &v.Number, &v.Name, &v.Floor, &v.RoomType, &v.ViewKind,
		&v.BedType, &v.Capacity, &v.NightlyRateCents, &v.Amenities, &v.Images,
		&v.Featured, &v.Rating, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time
	return &v, nil
}

func int64PtrToPgtype(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}
