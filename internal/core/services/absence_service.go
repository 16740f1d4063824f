package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
	"github.com/clockwork-hr/attendance_app/internal/middleware"
)

// absenceService runs the absence request state machine: coherence and overlap
// validation on create, atomic balance consumption on approval.
type absenceService struct {
	absenceRepo    portsrepo.AbsenceRepositoryFacade
	agreementSvc   portssvc.AgreementSvc
	calendarSvc    portssvc.CalendarSvc
	auditSvc       portssvc.AuditSvc
	loc            *time.Location
	consumingTypes map[domain.AbsenceType]bool
}

// NewAbsenceService creates a new AbsenceService. consumingTypes lists the
// absence types that draw days from a balance on approval.
func NewAbsenceService(absenceRepo portsrepo.AbsenceRepositoryFacade, agreementSvc portssvc.AgreementSvc, calendarSvc portssvc.CalendarSvc, auditSvc portssvc.AuditSvc, loc *time.Location, consumingTypes []domain.AbsenceType) portssvc.AbsenceSvcFacade {
	consuming := make(map[domain.AbsenceType]bool, len(consumingTypes))
	for _, t := range consumingTypes {
		consuming[t] = true
	}
	return &absenceService{
		absenceRepo:    absenceRepo,
		agreementSvc:   agreementSvc,
		calendarSvc:    calendarSvc,
		auditSvc:       auditSvc,
		loc:            loc,
		consumingTypes: consuming,
	}
}

var _ portssvc.AbsenceSvcFacade = (*absenceService)(nil)

// validateCoherence enforces the structural invariants of a request.
func (s *absenceService) validateCoherence(a domain.AbsenceRequest) error {
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: unknown absence type %q", apperrors.ErrValidation, a.Type)
	}
	if a.DateEnd.Before(a.DateStart) {
		return fmt.Errorf("%w: dateEnd before dateStart", apperrors.ErrValidation)
	}
	if a.Partial {
		if a.TimeStart == nil || a.TimeEnd == nil {
			return fmt.Errorf("%w: partial absence requires timeStart and timeEnd", apperrors.ErrValidation)
		}
		if domain.SameDate(a.DateStart, a.DateEnd) && !a.TimeStart.Before(*a.TimeEnd) {
			return fmt.Errorf("%w: timeEnd must be after timeStart", apperrors.ErrValidation)
		}
	} else if a.TimeStart != nil || a.TimeEnd != nil {
		return fmt.Errorf("%w: hour bounds only apply to partial absences", apperrors.ErrValidation)
	}
	return nil
}

// conflicts applies the overlap tie-break between a candidate and an existing
// request whose date ranges already intersect: any full-day participant means
// overlap, partials on different single days too; only two partials on the
// same single day are compared by their half-open hour windows.
func conflicts(a, b domain.AbsenceRequest) bool {
	if !a.Partial || !b.Partial {
		return true
	}
	aSingle := domain.SameDate(a.DateStart, a.DateEnd)
	bSingle := domain.SameDate(b.DateStart, b.DateEnd)
	if !aSingle || !bSingle || !domain.SameDate(a.DateStart, b.DateStart) {
		return true
	}
	return a.TimeStart.Minutes() < b.TimeEnd.Minutes() && b.TimeStart.Minutes() < a.TimeEnd.Minutes()
}

// checkOverlap rejects the request when it conflicts with a PENDING or
// APPROVED request of the same user.
func (s *absenceService) checkOverlap(ctx context.Context, a domain.AbsenceRequest, excludeID string) error {
	candidates, err := s.absenceRepo.FindOverlappingCandidates(ctx, a.UserID, a.DateStart, a.DateEnd, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlaps: %w", err)
	}
	for _, c := range candidates {
		if conflicts(a, c) {
			return fmt.Errorf("%w: conflicts with %s request %s", apperrors.ErrOverlap, c.Status, c.RequestID)
		}
	}
	return nil
}

// CreateAbsence validates and persists a new PENDING request for the principal.
func (s *absenceService) CreateAbsence(ctx context.Context, principal domain.Principal, req dto.CreateAbsenceRequest) (*domain.AbsenceRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	absence, err := req.ToDomain(principal.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.validateCoherence(absence); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, absence, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	absence.RequestID = uuid.NewString()
	absence.Status = domain.AbsencePending
	absence.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     principal.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: principal.UserID,
	}

	if err := s.absenceRepo.SaveAbsence(ctx, absence); err != nil {
		logger.Error("Failed to save absence request", slog.String("user_id", principal.UserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save absence: %w", err)
	}

	s.auditSvc.Record(ctx, &principal.UserID, domain.ActionAbsenceCreated,
		fmt.Sprintf("requested %s %s..%s", absence.Type, absence.DateStart.Format("2006-01-02"), absence.DateEnd.Format("2006-01-02")), absence.Reason)
	return &absence, nil
}

// UpdateAbsence edits a still-PENDING request, re-running validation while
// excluding the request itself from the overlap scan.
func (s *absenceService) UpdateAbsence(ctx context.Context, principal domain.Principal, requestID string, req dto.CreateAbsenceRequest) (*domain.AbsenceRequest, error) {
	existing, err := s.absenceRepo.FindAbsenceByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !principal.ActsOnSelf(existing.UserID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	if existing.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrAlreadyResolved, requestID, existing.Status)
	}

	updated, err := req.ToDomain(existing.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.validateCoherence(updated); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, updated, requestID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated.RequestID = existing.RequestID
	updated.Status = existing.Status
	updated.AuditFields = existing.AuditFields
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = principal.UserID

	if err := s.absenceRepo.UpdateAbsence(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update absence: %w", err)
	}

	s.auditSvc.Record(ctx, &existing.UserID, domain.ActionAbsenceUpdated,
		fmt.Sprintf("updated request %s", requestID), nil)
	return &updated, nil
}

// requestedDays computes the ledger cost of a request under the governing
// rule.
func (s *absenceService) requestedDays(ctx context.Context, a *domain.AbsenceRequest) (decimal.Decimal, error) {
	return requestedDaysFor(ctx, s.agreementSvc, s.calendarSvc, a)
}

// requestedDaysFor computes the ledger cost of a request under the governing
// rule: 0.5 for a same-day partial when half days are allowed, otherwise a
// calendar or working day count. The consumption preview uses the same path
// as approval so the two never disagree.
func requestedDaysFor(ctx context.Context, agreementSvc portssvc.AgreementSvc, calendarSvc portssvc.CalendarSvc, a *domain.AbsenceRequest) (decimal.Decimal, error) {
	rule, err := agreementSvc.ResolveRule(ctx, a.UserID, a.Type, a.DateStart)
	if err != nil {
		return decimal.Zero, err
	}

	if a.Partial && domain.SameDate(a.DateStart, a.DateEnd) && rule != nil && rule.AllowsHalfDay {
		return decimal.NewFromFloat(0.5), nil
	}

	counting := domain.CountCalendar
	if rule != nil {
		counting = rule.DayCounting
	}
	days, err := calendarSvc.CountDays(ctx, a.UserID, a.DateStart, a.DateEnd, counting)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(int64(days)), nil
}

// ApproveAbsence flips a PENDING request to APPROVED, consuming balance
// atomically when the type draws from a pool.
func (s *absenceService) ApproveAbsence(ctx context.Context, principal domain.Principal, requestID string) (*domain.AbsenceRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	existing, err := s.absenceRepo.FindAbsenceByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if existing.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrAlreadyResolved, requestID, existing.Status)
	}
	if err := s.validateCoherence(*existing); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, *existing, requestID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var debit *portsrepo.BalanceDebit
	if s.consumingTypes[existing.Type] {
		days, err := s.requestedDays(ctx, existing)
		if err != nil {
			return nil, err
		}
		ref := "absence:" + existing.RequestID
		debit = &portsrepo.BalanceDebit{
			UserID:        existing.UserID,
			Type:          existing.Type,
			Year:          existing.DateStart.Year(),
			RequestedDays: days,
			Reference:     ref,
		}
	}

	if err := s.absenceRepo.ApproveWithConsumption(ctx, requestID, principal.UserID, now, debit); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) || errors.Is(err, apperrors.ErrAlreadyResolved) {
			return nil, err
		}
		logger.Error("Failed to approve absence", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to approve absence: %w", err)
	}

	existing.Status = domain.AbsenceApproved
	existing.ApprovedBy = &principal.UserID
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = principal.UserID

	s.auditSvc.Record(ctx, &existing.UserID, domain.ActionAbsenceApproved,
		fmt.Sprintf("approved request %s", requestID), nil)
	return existing, nil
}

// RejectAbsence flips a PENDING request to REJECTED. The ledger is never
// touched.
func (s *absenceService) RejectAbsence(ctx context.Context, principal domain.Principal, requestID string) (*domain.AbsenceRequest, error) {
	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	existing, err := s.absenceRepo.FindAbsenceByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if existing.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrAlreadyResolved, requestID, existing.Status)
	}

	now := time.Now().UTC()
	if err := s.absenceRepo.Reject(ctx, requestID, principal.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to reject absence: %w", err)
	}

	existing.Status = domain.AbsenceRejected
	existing.ApprovedBy = &principal.UserID
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = principal.UserID

	s.auditSvc.Record(ctx, &existing.UserID, domain.ActionAbsenceRejected,
		fmt.Sprintf("rejected request %s", requestID), nil)
	return existing, nil
}

// GetAbsenceByID retrieves a specific absence request.
func (s *absenceService) GetAbsenceByID(ctx context.Context, principal domain.Principal, requestID string) (*domain.AbsenceRequest, error) {
	absence, err := s.absenceRepo.FindAbsenceByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !principal.ActsOnSelf(absence.UserID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	return absence, nil
}

// ListAbsences retrieves a paginated list of absence requests. Employees only
// see their own.
func (s *absenceService) ListAbsences(ctx context.Context, principal domain.Principal, params dto.ListAbsencesParams) (*dto.ListAbsencesResponse, error) {
	filter := portsrepo.AbsenceFilter{
		UserID: params.UserID,
		Status: params.Status,
		Type:   params.Type,
		From:   params.From,
		To:     params.To,
	}
	if !principal.Role.CanApprove() {
		filter.UserID = principal.UserID
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	absences, nextToken, err := s.absenceRepo.ListAbsences(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	resp := dto.ToListAbsencesResponse(absences, nextToken, s.loc)
	return &resp, nil
}
