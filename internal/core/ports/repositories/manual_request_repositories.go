package repositories

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// ManualRequestFilter narrows manual request listings.
type ManualRequestFilter struct {
	UserID string
	Status *domain.ManualRequestStatus
}

// ManualRequestReader defines read operations over manual clock requests.
type ManualRequestReader interface {
	// FindRequestByID returns a request or apperrors.ErrNotFound.
	FindRequestByID(ctx context.Context, requestID string) (*domain.ManualClockRequest, error)

	// ListRequests returns requests matching the filter ordered by
	// RequestedAt descending, with cursor pagination.
	ListRequests(ctx context.Context, filter ManualRequestFilter, limit int, nextToken *string) ([]domain.ManualClockRequest, *string, error)

	// FindResolvableExitBetween returns the user's oldest PENDING or
	// APPROVED exit request whose RequestedAt falls in (after, before) and
	// that has no clock event linked yet, or nil when none exists. Used to
	// detect whether a dangling entry already has a fix in flight.
	FindResolvableExitBetween(ctx context.Context, userID string, after, before time.Time) (*domain.ManualClockRequest, error)
}

// ManualRequestWriter defines write operations over manual clock requests.
type ManualRequestWriter interface {
	// SaveRequest persists a new PENDING request.
	SaveRequest(ctx context.Context, request domain.ManualClockRequest) error

	// Resolve flips the request to its terminal status and, when event is
	// non-nil, inserts the synthesized clock event in the same storage
	// transaction. Returns apperrors.ErrAlreadyResolved when the request is
	// no longer PENDING.
	Resolve(ctx context.Context, requestID string, status domain.ManualRequestStatus, resolverID string, resolvedAt time.Time, rejectionReason *string, event *domain.ClockEvent) error
}

// ManualRequestRepositoryFacade combines all manual request repository
// interfaces.
type ManualRequestRepositoryFacade interface {
	ManualRequestReader
	ManualRequestWriter
}
