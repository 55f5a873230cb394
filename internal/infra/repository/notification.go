package repository

import (
	"context"
	"time"

	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// CreateJob enqueues an outbox row for a downstream sender to pick up.
// Callers run this after commit so a slow or failing notification channel
// can never roll a booking back.
func (r *NotificationRepository) CreateJob(ctx context.Context, dbtx db.DBTX, kind string, reservationID uuid.UUID, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (id, kind, reservation_id, payload, run_at, status)
		VALUES ($1, $2, $3, $4, $5, 'queued')`

	_, err := dbtx.Exec(ctx, query, uuid.New(), kind, reservationID, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, dbtx db.DBTX, jobID uuid.UUID, status string, lastError *string) error {
	const query = `
		UPDATE notification_jobs
		SET status = $2, last_error = $3, updated_at = now()
		WHERE id = $1`

	if _, err := dbtx.Exec(ctx, query, jobID, status, pgconv.StringPtrToPgtype(lastError)); err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
