package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"roomdesk/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// enqueueNotificationJob writes an outbox row after the owning command's
// transaction has committed. Failures are logged and swallowed; a broken
// notification channel never undoes a state change.
func enqueueNotificationJob(
	ctx context.Context,
	repo NotificationRepository,
	pool *pgxpool.Pool,
	clk clock.Clock,
	kind string,
	reservationID uuid.UUID,
) {
	payload, err := json.Marshal(map[string]string{
		"reservation_id": reservationID.String(),
		"kind":           kind,
	})
	if err != nil {
		slog.Error("failed to encode notification payload", "kind", kind, "error", err)
		return
	}

	if err := repo.CreateJob(ctx, pool, kind, reservationID, payload, clk.Now()); err != nil {
		slog.Error("failed to enqueue notification job",
			"kind", kind,
			"reservation_id", reservationID,
			"error", err)
	}
}
