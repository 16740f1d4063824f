package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
	"github.com/clockwork-hr/attendance_app/internal/middleware"
)

// balanceService manages the per user/type/year absence day ledger.
type balanceService struct {
	balanceRepo    portsrepo.BalanceRepositoryFacade
	absenceRepo    portsrepo.AbsenceReader
	agreementSvc   portssvc.AgreementSvc
	calendarSvc    portssvc.CalendarSvc
	auditSvc       portssvc.AuditSvc
	consumingTypes map[domain.AbsenceType]bool
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, absenceRepo portsrepo.AbsenceReader, agreementSvc portssvc.AgreementSvc, calendarSvc portssvc.CalendarSvc, auditSvc portssvc.AuditSvc, consumingTypes []domain.AbsenceType) portssvc.BalanceSvcFacade {
	consuming := make(map[domain.AbsenceType]bool, len(consumingTypes))
	for _, t := range consumingTypes {
		consuming[t] = true
	}
	return &balanceService{
		balanceRepo:    balanceRepo,
		absenceRepo:    absenceRepo,
		agreementSvc:   agreementSvc,
		calendarSvc:    calendarSvc,
		auditSvc:       auditSvc,
		consumingTypes: consuming,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalance returns the balance for (user, type, year), synthesizing a zero
// balance when no row exists yet. Rows are only materialized by writes.
func (s *balanceService) GetBalance(ctx context.Context, principal domain.Principal, userID string, absenceType domain.AbsenceType, year int) (*domain.AbsenceBalance, error) {
	if !principal.ActsOnSelf(userID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	if !absenceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown absence type %q", apperrors.ErrValidation, absenceType)
	}

	balance, err := s.balanceRepo.FindBalance(ctx, userID, absenceType, year)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.AbsenceBalance{
				UserID:    userID,
				Type:      absenceType,
				Year:      year,
				Allocated: decimal.Zero,
				CarryOver: decimal.Zero,
				Spent:     decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}
	return balance, nil
}

// ListBalances returns all of the user's balances for a year.
func (s *balanceService) ListBalances(ctx context.Context, principal domain.Principal, userID string, year int) ([]domain.AbsenceBalance, error) {
	if !principal.ActsOnSelf(userID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	balances, err := s.balanceRepo.ListBalancesByUser(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	return balances, nil
}

// ListMovements returns the ledger of one balance.
func (s *balanceService) ListMovements(ctx context.Context, principal domain.Principal, balanceID string, params dto.PaginationParams) (*dto.ListMovementsResponse, error) {
	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	movements, nextToken, err := s.balanceRepo.ListMovements(ctx, balanceID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	resp := dto.ToListMovementsResponse(movements, nextToken)
	return &resp, nil
}

// PreviewConsumption reports what approving a PENDING absence would cost
// without committing anything. It walks the same day-counting path as
// approval.
func (s *balanceService) PreviewConsumption(ctx context.Context, principal domain.Principal, requestID string) (*dto.ConsumptionPreviewResponse, error) {
	absence, err := s.absenceRepo.FindAbsenceByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !principal.ActsOnSelf(absence.UserID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}

	preview := &dto.ConsumptionPreviewResponse{RequestID: requestID}
	if !s.consumingTypes[absence.Type] {
		preview.Sufficient = true
		return preview, nil
	}
	preview.ConsumesPool = true

	days, err := requestedDaysFor(ctx, s.agreementSvc, s.calendarSvc, absence)
	if err != nil {
		return nil, err
	}
	balance, err := s.GetBalance(ctx, principal, absence.UserID, absence.Type, absence.DateStart.Year())
	if err != nil {
		return nil, err
	}

	preview.Days = days
	preview.Available = balance.Available()
	preview.Sufficient = balance.Available().GreaterThanOrEqual(days)
	preview.AfterApproval = balance.Available().Sub(days)
	return preview, nil
}

// Allocate grants days to a user's pool.
func (s *balanceService) Allocate(ctx context.Context, principal domain.Principal, req dto.AllocateBalanceRequest) (*domain.AbsenceBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	if req.Days.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: allocation must be positive", apperrors.ErrValidation)
	}

	balance, err := s.balanceRepo.Allocate(ctx, req.UserID, req.Type, req.Year, req.Days, principal.UserID)
	if err != nil {
		logger.Error("Failed to allocate balance", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to allocate: %w", err)
	}

	s.auditSvc.Record(ctx, &req.UserID, domain.ActionBalanceAllocated,
		fmt.Sprintf("allocated %s %s days for %d", req.Days.String(), req.Type, req.Year), nil)
	return balance, nil
}

// CarryOver moves unused days into a year's carry-over bucket, capped by the
// governing rule's max carry-over when one is defined.
func (s *balanceService) CarryOver(ctx context.Context, principal domain.Principal, req dto.CarryOverBalanceRequest) (*domain.AbsenceBalance, error) {
	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	if req.Days.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: carry-over must be positive", apperrors.ErrValidation)
	}

	days := req.Days
	refDate := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rule, err := s.agreementSvc.ResolveRule(ctx, req.UserID, req.Type, refDate)
	if err != nil {
		return nil, err
	}
	if rule != nil && rule.MaxCarryOver != nil && days.GreaterThan(*rule.MaxCarryOver) {
		days = *rule.MaxCarryOver
	}

	balance, err := s.balanceRepo.CarryOver(ctx, req.UserID, req.Type, req.Year, days, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to carry over: %w", err)
	}

	s.auditSvc.Record(ctx, &req.UserID, domain.ActionBalanceAdjusted,
		fmt.Sprintf("carried over %s %s days into %d", days.String(), req.Type, req.Year), nil)
	return balance, nil
}

// Adjust applies a signed manual correction to allocated days.
func (s *balanceService) Adjust(ctx context.Context, principal domain.Principal, req dto.AdjustBalanceRequest) (*domain.AbsenceBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: zero adjustment", apperrors.ErrInvalidAdjustment)
	}

	balance, err := s.balanceRepo.Adjust(ctx, req.UserID, req.Type, req.Year, req.Delta, principal.UserID, req.Reason)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAdjustment) || errors.Is(err, apperrors.ErrWouldGoNegative) {
			return nil, err
		}
		logger.Error("Failed to adjust balance", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to adjust: %w", err)
	}

	s.auditSvc.Record(ctx, &req.UserID, domain.ActionBalanceAdjusted,
		fmt.Sprintf("adjusted %s %d by %s", req.Type, req.Year, req.Delta.String()), &req.Reason)
	return balance, nil
}

// ReverseConsumption credits back the days consumed by an APPROVED absence,
// recording a REVERSAL movement. This is the admin correction path; the
// absence itself stays APPROVED.
func (s *balanceService) ReverseConsumption(ctx context.Context, principal domain.Principal, requestID string) (*domain.AbsenceBalance, error) {
	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	absence, err := s.absenceRepo.FindAbsenceByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if absence.Status != domain.AbsenceApproved {
		return nil, fmt.Errorf("%w: request %s is %s, only approved requests reverse", apperrors.ErrConflict, requestID, absence.Status)
	}
	if !s.consumingTypes[absence.Type] {
		return nil, fmt.Errorf("%w: request %s never consumed balance", apperrors.ErrConflict, requestID)
	}

	days, err := requestedDaysFor(ctx, s.agreementSvc, s.calendarSvc, absence)
	if err != nil {
		return nil, err
	}
	balance, err := s.balanceRepo.Reverse(ctx, absence.UserID, absence.Type, absence.DateStart.Year(), days, principal.UserID, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to reverse: %w", err)
	}

	s.auditSvc.Record(ctx, &absence.UserID, domain.ActionBalanceReversed,
		fmt.Sprintf("reversed %s days of request %s", days.String(), requestID), nil)
	return balance, nil
}
