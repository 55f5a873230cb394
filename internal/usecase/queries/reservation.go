package queries

import (
	"context"

	"roomdesk/internal/domain/user"
	"roomdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation belongs to another client")
)

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit int32, cursor *ListCursor) ([]*ReservationListItem, error)
}

type ClientLookup interface {
	FindIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actorUserID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error)
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListOwn(ctx context.Context, actorUserID uuid.UUID, limit int, cursor *ListCursor) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo    ReservationViewRepo
	clients ClientLookup
}

func NewReservationQueries(repo ReservationViewRepo, clients ClientLookup) ReservationQueries {
	return &reservationQueriesImpl{
		repo:    repo,
		clients: clients,
	}
}

// GetByID enforces ownership: clients only see reservations billed to
// their own profile, staff see everything.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorUserID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole.IsStaff() {
		return view, nil
	}

	clientID, err := q.clients.FindIDByUserID(ctx, actorUserID)
	if err != nil {
		return nil, errs.Mark(err, ErrReservationAccess)
	}
	if view.ClientID != clientID {
		return nil, ErrReservationAccess
	}
	return view, nil
}

// GetByIDSystem skips the ownership check for internal read-after-write.
func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) ListOwn(ctx context.Context, actorUserID uuid.UUID, limit int, cursor *ListCursor) ([]*ReservationListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	clientID, err := q.clients.FindIDByUserID(ctx, actorUserID)
	if err != nil {
		return nil, err
	}

	items, err := q.repo.FindByClientID(ctx, clientID, int32(limit), cursor)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*ReservationListItem{}
	}
	return items, nil
}
