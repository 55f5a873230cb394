//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Every fixture user logs in with "password123". The hash is computed
// once per process at MinCost to keep seeding cheap.
var testPasswordHash = sync.OnceValue(func() string {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
})

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT DO NOTHING",
		userID, email, testPasswordHash(), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

// CreateTestClient attaches a guest profile to a user account.
func CreateTestClient(t *testing.T, db DBLike, userID uuid.UUID, name, email string) uuid.UUID {
	t.Helper()

	clientID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO clients (id, user_id, name, email) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		clientID, userID, name, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM clients WHERE email = $1", email).Scan(&clientID)
	}

	return clientID
}

func CreateTestRoom(t *testing.T, db DBLike, number string, capacity int, nightlyRateCents int64) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO rooms (id, number, name, floor, room_type, view_kind, bed_type,
			capacity, nightly_rate_cents, amenities, images, featured, rating)
		VALUES ($1, $2, $3, 1, 'standard', 'city', 'double', $4, $5, '{}', '{}', false, 0)`,
		roomID, number, "Room "+number, capacity, nightlyRateCents)
	require.NoError(t, err)

	return roomID
}

// NotificationKinds lists the outbox job kinds queued for a reservation,
// oldest first.
func NotificationKinds(t *testing.T, db DBLike, reservationID uuid.UUID) []string {
	t.Helper()

	rows, err := db.Query(context.Background(),
		"SELECT kind FROM notification_jobs WHERE reservation_id = $1 ORDER BY created_at, kind",
		reservationID)
	require.NoError(t, err)
	defer rows.Close()

	var kinds []string
	for rows.Next() {
		var kind string
		require.NoError(t, rows.Scan(&kind))
		kinds = append(kinds, kind)
	}
	require.NoError(t, rows.Err())
	return kinds
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}
	return nil
}
