package repository

import (
	"context"

	"roomdesk/internal/domain/user"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := dbtx.Exec(ctx, query,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const query = `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

	if _, err := dbtx.Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
