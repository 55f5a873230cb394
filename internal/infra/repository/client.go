package repository

import (
	"context"

	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/pgconv"
	"roomdesk/internal/usecase/commands"

	"github.com/google/uuid"
)

type ClientRepository struct{}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

func (r *ClientRepository) FindIDByUserID(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (uuid.UUID, error) {
	const query = `SELECT id FROM clients WHERE user_id = $1`

	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, query, userID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("client not found for user", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find client by user", err)
	}
	return id, nil
}

// ResolveOrCreate matches an existing client by email and updates its
// profile, otherwise inserts a new one. Staff walk-in bookings reach the
// registry through this path.
func (r *ClientRepository) ResolveOrCreate(ctx context.Context, dbtx db.DBTX, p commands.ClientProfile) (uuid.UUID, error) {
	const query = `
		INSERT INTO clients (id, user_id, name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
			phone = COALESCE(EXCLUDED.phone, clients.phone),
			updated_at = now()
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		uuid.New(), pgconv.UUIDPtrToPgtype(p.UserID), p.Name, p.Email, pgconv.StringPtrToPgtype(p.Phone),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to resolve client", err)
	}
	return id, nil
}

// CreateForUser registers the client profile that backs a freshly signed
// up user account.
func (r *ClientRepository) CreateForUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, name, email string) (uuid.UUID, error) {
	const query = `
		INSERT INTO clients (id, user_id, name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, query, uuid.New(), userID, name, email).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create client", err)
	}
	return id, nil
}
