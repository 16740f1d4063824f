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
)

// manualRequestService runs the manual clock-correction workflow.
type manualRequestService struct {
	requestRepo portsrepo.ManualRequestRepositoryFacade
	eventRepo   portsrepo.ClockEventRepositoryFacade
	auditSvc    portssvc.AuditSvc
}

// NewManualRequestService creates a new ManualRequestService.
func NewManualRequestService(requestRepo portsrepo.ManualRequestRepositoryFacade, eventRepo portsrepo.ClockEventRepositoryFacade, auditSvc portssvc.AuditSvc) portssvc.ManualRequestSvcFacade {
	return &manualRequestService{
		requestRepo: requestRepo,
		eventRepo:   eventRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.ManualRequestSvcFacade = (*manualRequestService)(nil)

// CreateRequest validates and persists a PENDING correction request for the
// principal. Corrections always point into the past.
func (s *manualRequestService) CreateRequest(ctx context.Context, principal domain.Principal, req dto.CreateManualRequestRequest, originIP string) (*domain.ManualClockRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidKind, req.Kind)
	}
	now := time.Now().UTC()
	requestedAt := req.RequestedAt.UTC()
	if requestedAt.After(now) {
		return nil, fmt.Errorf("%w: requested timestamp is in the future", apperrors.ErrValidation)
	}

	request := domain.ManualClockRequest{
		RequestID:   uuid.NewString(),
		UserID:      principal.UserID,
		Kind:        req.Kind,
		RequestedAt: requestedAt,
		Reason:      req.Reason,
		Status:      domain.ManualPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}
	if originIP != "" {
		request.OriginIP = &originIP
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		logger.Error("Failed to save manual request", slog.String("user_id", principal.UserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	s.auditSvc.Record(ctx, &principal.UserID, domain.ActionManualRequestCreated,
		fmt.Sprintf("requested manual %s at %s", req.Kind, requestedAt.Format(time.RFC3339)), &req.Reason)
	return &request, nil
}

// ResolveRequest approves or rejects a PENDING request. Approval synthesizes
// the manual clock event (or confirms the provisional one created by an
// auto-close); rejection invalidates any linked provisional event while
// keeping it visible for audit.
func (s *manualRequestService) ResolveRequest(ctx context.Context, principal domain.Principal, requestID string, req dto.ResolveManualRequestRequest) (*domain.ManualClockRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrAlreadyResolved, requestID, request.Status)
	}

	now := time.Now().UTC()
	linked, err := s.eventRepo.FindEventBySourceRequest(ctx, requestID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up linked event: %w", err)
	}

	if !req.Approve {
		if err := s.requestRepo.Resolve(ctx, requestID, domain.ManualRejected, principal.UserID, now, req.RejectionReason, nil); err != nil {
			return nil, fmt.Errorf("failed to reject request: %w", err)
		}
		if linked != nil {
			if err := s.eventRepo.UpdateEventValidity(ctx, linked.EventID, domain.ValidityInvalidated, principal.UserID, now); err != nil {
				logger.Error("Failed to invalidate linked event", slog.String("event_id", linked.EventID), slog.String("error", err.Error()))
				return nil, fmt.Errorf("failed to invalidate linked event: %w", err)
			}
		}
		request.Status = domain.ManualRejected
		request.ResolvedBy = &principal.UserID
		request.ResolvedAt = &now
		request.RejectionReason = req.RejectionReason
		s.auditSvc.Record(ctx, &request.UserID, domain.ActionManualRequestRejected,
			fmt.Sprintf("rejected manual request %s", requestID), req.RejectionReason)
		return request, nil
	}

	// An EXIT correction only makes sense after some ENTRY exists.
	if request.Kind == domain.Exit {
		hasEntry, err := s.eventRepo.HasEntryAtOrBefore(ctx, request.UserID, request.RequestedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to check prior entry: %w", err)
		}
		if !hasEntry {
			return nil, fmt.Errorf("%w: no entry precedes %s", apperrors.ErrNoPriorEntry, request.RequestedAt.Format(time.RFC3339))
		}
	}

	var synthesized *domain.ClockEvent
	if linked == nil {
		synthesized = &domain.ClockEvent{
			EventID:         uuid.NewString(),
			UserID:          request.UserID,
			Kind:            request.Kind,
			Timestamp:       request.RequestedAt,
			IsManual:        true,
			Validity:        domain.ValidityValid,
			SourceRequestID: &request.RequestID,
			ContentHash:     utils.ClockEventHash(request.UserID, request.Kind, request.RequestedAt),
			Reason:          &request.Reason,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     principal.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: principal.UserID,
			},
		}
	}

	if err := s.requestRepo.Resolve(ctx, requestID, domain.ManualApproved, principal.UserID, now, nil, synthesized); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyResolved) {
			return nil, err
		}
		logger.Error("Failed to approve manual request", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to approve request: %w", err)
	}
	if linked != nil && linked.Validity == domain.ValidityProvisional {
		if err := s.eventRepo.UpdateEventValidity(ctx, linked.EventID, domain.ValidityValid, principal.UserID, now); err != nil {
			return nil, fmt.Errorf("failed to confirm linked event: %w", err)
		}
	}

	request.Status = domain.ManualApproved
	request.ResolvedBy = &principal.UserID
	request.ResolvedAt = &now
	s.auditSvc.Record(ctx, &request.UserID, domain.ActionManualRequestApproved,
		fmt.Sprintf("approved manual request %s", requestID), nil)
	return request, nil
}

// GetRequestByID retrieves a specific manual clock request.
func (s *manualRequestService) GetRequestByID(ctx context.Context, principal domain.Principal, requestID string) (*domain.ManualClockRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !principal.ActsOnSelf(request.UserID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	return request, nil
}

// ListRequests retrieves a paginated list of manual requests. Employees only
// see their own.
func (s *manualRequestService) ListRequests(ctx context.Context, principal domain.Principal, params dto.ListManualRequestsParams) (*dto.ListManualRequestsResponse, error) {
	filter := portsrepo.ManualRequestFilter{
		UserID: params.UserID,
		Status: params.Status,
	}
	if !principal.Role.CanApprove() {
		filter.UserID = principal.UserID
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	requests, nextToken, err := s.requestRepo.ListRequests(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	resp := dto.ToListManualRequestsResponse(requests, nextToken)
	return &resp, nil
}
