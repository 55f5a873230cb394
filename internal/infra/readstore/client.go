package readstore

import (
	"context"

	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ClientReadStore struct {
	db db.DBTX
}

func NewClientReadStore(pool db.DBTX) *ClientReadStore {
	return &ClientReadStore{db: pool}
}

func (r *ClientReadStore) FindIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	const query = `SELECT id FROM clients WHERE user_id = $1`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, userID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("client not found for user", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find client by user", err)
	}
	return id, nil
}
