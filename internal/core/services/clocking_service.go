package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
	"github.com/clockwork-hr/attendance_app/internal/middleware"
	"github.com/clockwork-hr/attendance_app/internal/utils"
	"github.com/clockwork-hr/attendance_app/internal/utils/pagination"
)

// clockingService validates punch sequencing and persists clock events.
type clockingService struct {
	eventRepo   portsrepo.ClockEventRepositoryFacade
	absenceRepo portsrepo.AbsenceReader
	requestRepo portsrepo.ManualRequestReader
	auditSvc    portssvc.AuditSvc
	loc         *time.Location
}

// NewClockingService creates a new ClockingService.
func NewClockingService(eventRepo portsrepo.ClockEventRepositoryFacade, absenceRepo portsrepo.AbsenceReader, requestRepo portsrepo.ManualRequestReader, auditSvc portssvc.AuditSvc, loc *time.Location) portssvc.ClockingSvcFacade {
	return &clockingService{
		eventRepo:   eventRepo,
		absenceRepo: absenceRepo,
		requestRepo: requestRepo,
		auditSvc:    auditSvc,
		loc:         loc,
	}
}

var _ portssvc.ClockingSvcFacade = (*clockingService)(nil)

// RecordEvent validates sequencing and persists a punch for the principal.
// Punching is always a self-service operation; admins correct other users'
// records through the manual request workflow instead.
func (s *clockingService) RecordEvent(ctx context.Context, principal domain.Principal, kind domain.ClockEventKind, timestamp *time.Time) (*domain.ClockEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidKind, kind)
	}

	now := time.Now().UTC()
	ts := now
	if timestamp != nil {
		ts = timestamp.UTC()
	}

	if err := s.checkAbsenceBlock(ctx, principal.UserID, ts); err != nil {
		return nil, err
	}

	last, err := s.eventRepo.FindLastEventByUser(ctx, principal.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to fetch last clock event", slog.String("user_id", principal.UserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch last event: %w", err)
	}

	if kind == domain.Exit && last == nil {
		return nil, fmt.Errorf("%w: cannot clock out before ever clocking in", apperrors.ErrMissingEntry)
	}

	event := domain.ClockEvent{
		EventID:     uuid.NewString(),
		UserID:      principal.UserID,
		Kind:        kind,
		Timestamp:   ts,
		IsManual:    false,
		Validity:    domain.ValidityValid,
		ContentHash: utils.ClockEventHash(principal.UserID, kind, ts),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}

	if last != nil && last.Kind == kind {
		if kind != domain.Entry {
			return nil, fmt.Errorf("%w: consecutive %s events", apperrors.ErrDuplicateKind, kind)
		}
		// An ENTRY after a dangling ENTRY is allowed only when an
		// unresolved manual EXIT request falls inside the open interval;
		// the synthetic EXIT closes the shift.
		closing, err := s.buildAutoClose(ctx, principal.UserID, *last, ts, now)
		if err != nil {
			return nil, err
		}
		if err := s.eventRepo.SaveEventWithAutoClose(ctx, *closing, event); err != nil {
			logger.Error("Failed to save auto-closed shift", slog.String("user_id", principal.UserID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save events: %w", err)
		}
		s.auditSvc.Record(ctx, &principal.UserID, domain.ActionEventRecorded,
			fmt.Sprintf("auto-closed open shift from %s and recorded %s", last.Timestamp.Format(time.RFC3339), kind), nil)
		return &event, nil
	}

	if err := s.eventRepo.SaveEvent(ctx, event); err != nil {
		logger.Error("Failed to save clock event", slog.String("user_id", principal.UserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	s.auditSvc.Record(ctx, &principal.UserID, domain.ActionEventRecorded,
		fmt.Sprintf("recorded %s at %s", kind, ts.Format(time.RFC3339)), nil)
	return &event, nil
}

// checkAbsenceBlock rejects punches on instants covered by an approved paid
// absence: a full-day absence blocks the whole date, a partial one only its
// clipped window.
func (s *clockingService) checkAbsenceBlock(ctx context.Context, userID string, ts time.Time) error {
	date := domain.DateOf(ts, s.loc)
	approved, err := s.absenceRepo.FindApprovedOnDate(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("failed to check absences: %w", err)
	}
	for _, a := range approved {
		if !a.Paid {
			continue
		}
		if a.BlocksWholeDay() {
			return fmt.Errorf("%w: approved %s covers %s", apperrors.ErrAbsenceBlock, a.Type, date.Format("2006-01-02"))
		}
		if a.Partial && a.Tramo(date, s.loc).Contains(ts) {
			return fmt.Errorf("%w: approved partial %s covers this time", apperrors.ErrAbsenceBlock, a.Type)
		}
	}
	return nil
}

// buildAutoClose synthesizes the EXIT that closes a dangling open shift,
// sourced from the user's unresolved manual EXIT request inside the open
// interval. A pending request yields a provisional event that approval later
// confirms; an approved one yields a valid event directly. Without such a
// request the duplicate ENTRY stays rejected.
func (s *clockingService) buildAutoClose(ctx context.Context, userID string, open domain.ClockEvent, newTS, now time.Time) (*domain.ClockEvent, error) {
	req, err := s.requestRepo.FindResolvableExitBetween(ctx, userID, open.Timestamp, newTS)
	if err != nil {
		return nil, fmt.Errorf("failed to look up exit correction request: %w", err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: open shift since %s has no exit correction", apperrors.ErrDuplicateKind, open.Timestamp.Format(time.RFC3339))
	}

	validity := domain.ValidityProvisional
	if req.Status == domain.ManualApproved {
		validity = domain.ValidityValid
	}
	exitTS := req.RequestedAt.UTC()
	return &domain.ClockEvent{
		EventID:         uuid.NewString(),
		UserID:          userID,
		Kind:            domain.Exit,
		Timestamp:       exitTS,
		IsManual:        true,
		Validity:        validity,
		SourceRequestID: &req.RequestID,
		ContentHash:     utils.ClockEventHash(userID, domain.Exit, exitTS),
		Reason:          &req.Reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// GetLastEvent returns the user's most recent non-invalidated event, or nil
// when the user has never clocked.
func (s *clockingService) GetLastEvent(ctx context.Context, principal domain.Principal, userID string) (*domain.ClockEvent, error) {
	if !principal.ActsOnSelf(userID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	last, err := s.eventRepo.FindLastEventByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last event: %w", err)
	}
	return last, nil
}

// ListEvents retrieves a paginated list of the user's events.
func (s *clockingService) ListEvents(ctx context.Context, principal domain.Principal, userID string, params dto.ListClockEventsParams) (*dto.ListClockEventsResponse, error) {
	if !principal.ActsOnSelf(userID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}

	var events []domain.ClockEvent
	var err error
	if params.From != nil || params.To != nil {
		from := time.Time{}
		to := time.Now().UTC().Add(24 * time.Hour)
		if params.From != nil {
			from = domain.DayStart(*params.From, s.loc)
		}
		if params.To != nil {
			to = domain.DayEnd(*params.To, s.loc)
		}
		events, err = s.eventRepo.ListEventsByUserBetween(ctx, userID, from, to)
	} else {
		events, err = s.eventRepo.ListEventsByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	// Events come back ordered ascending; paginate in memory on the cursor.
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	start := 0
	if params.NextToken != nil {
		ts, id, err := pagination.DecodeTimeIDToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		for i, e := range events {
			if e.Timestamp.After(ts) || (e.Timestamp.Equal(ts) && e.EventID > id) {
				start = i
				break
			}
			start = i + 1
		}
	}
	end := start + limit
	if end > len(events) {
		end = len(events)
	}
	page := events[start:end]

	var nextToken *string
	if end < len(events) && len(page) > 0 {
		tok := pagination.EncodeTimeIDToken(page[len(page)-1].Timestamp, page[len(page)-1].EventID)
		nextToken = &tok
	}

	resp := dto.ToListClockEventsResponse(page, nextToken)
	return &resp, nil
}
