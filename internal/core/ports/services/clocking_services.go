package services

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// ClockingReaderSvc defines read operations for clock event data
type ClockingReaderSvc interface {
	// GetLastEvent returns the user's most recent non-invalidated event, or
	// nil when the user has never clocked.
	GetLastEvent(ctx context.Context, principal domain.Principal, userID string) (*domain.ClockEvent, error)

	// ListEvents retrieves a paginated list of the user's events.
	ListEvents(ctx context.Context, principal domain.Principal, userID string, params dto.ListClockEventsParams) (*dto.ListClockEventsResponse, error)
}

// ClockingWriterSvc defines write operations for clock event data
type ClockingWriterSvc interface {
	// RecordEvent validates sequencing and persists a punch for the
	// principal. A nil timestamp means "now".
	RecordEvent(ctx context.Context, principal domain.Principal, kind domain.ClockEventKind, timestamp *time.Time) (*domain.ClockEvent, error)
}

// ClockingSvcFacade combines all clocking service interfaces
type ClockingSvcFacade interface {
	ClockingReaderSvc
	ClockingWriterSvc
}
