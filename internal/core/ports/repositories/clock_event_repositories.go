package repositories

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// ClockEventReader defines read operations over clock events. Sequencing reads
// ignore INVALIDATED rows, matching the alternation invariant.
type ClockEventReader interface {
	// FindLastEventByUser returns the most recent non-invalidated event for
	// the user, or apperrors.ErrNotFound when the user has none.
	FindLastEventByUser(ctx context.Context, userID string) (*domain.ClockEvent, error)

	// ListEventsByUser returns all events for the user ordered by timestamp
	// ascending, including provisional and invalidated rows.
	ListEventsByUser(ctx context.Context, userID string) ([]domain.ClockEvent, error)

	// ListEventsByUserBetween returns the user's events with timestamps in
	// [from, to), ordered ascending.
	ListEventsByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.ClockEvent, error)

	// HasEntryAtOrBefore reports whether any non-invalidated ENTRY event
	// exists for the user at or before the given instant.
	HasEntryAtOrBefore(ctx context.Context, userID string, ts time.Time) (bool, error)

	// FindEventBySourceRequest returns the event linked to a manual request,
	// or apperrors.ErrNotFound.
	FindEventBySourceRequest(ctx context.Context, requestID string) (*domain.ClockEvent, error)
}

// ClockEventWriter defines write operations over clock events. Events are
// append-only; only validity and the source-request link ever change.
type ClockEventWriter interface {
	// SaveEvent persists a single new clock event.
	SaveEvent(ctx context.Context, event domain.ClockEvent) error

	// SaveEventWithAutoClose persists the synthetic closing EXIT and the new
	// ENTRY within one storage transaction, so an auto-closed shift and the
	// event that triggered it are never observable separately.
	SaveEventWithAutoClose(ctx context.Context, closing domain.ClockEvent, event domain.ClockEvent) error

	// UpdateEventValidity flips an event's validity (manual-correction
	// resolution path only).
	UpdateEventValidity(ctx context.Context, eventID string, validity domain.ClockEventValidity, updatedBy string, updatedAt time.Time) error
}

// ClockEventRepositoryFacade combines all clock-event repository interfaces.
type ClockEventRepositoryFacade interface {
	ClockEventReader
	ClockEventWriter
}
