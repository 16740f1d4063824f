package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// agreementService manages labor agreements and resolves the rule governing
// an absence request.
type agreementService struct {
	agreementRepo portsrepo.AgreementRepositoryFacade
}

// NewAgreementService creates a new AgreementService.
func NewAgreementService(agreementRepo portsrepo.AgreementRepositoryFacade) portssvc.AgreementSvc {
	return &agreementService{agreementRepo: agreementRepo}
}

var _ portssvc.AgreementSvc = (*agreementService)(nil)

// CreateAgreement persists an agreement with its rules.
func (s *agreementService) CreateAgreement(ctx context.Context, principal domain.Principal, req dto.CreateAgreementRequest) (*domain.Agreement, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	agreement := domain.Agreement{
		AgreementID: uuid.NewString(),
		Name:        req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}

	rules := make([]domain.AbsenceRule, len(req.Rules))
	seen := make(map[domain.AbsenceType]bool, len(req.Rules))
	for i, r := range req.Rules {
		if seen[r.Type] {
			return nil, fmt.Errorf("%w: duplicate rule for type %s", apperrors.ErrValidation, r.Type)
		}
		seen[r.Type] = true
		accrual := r.Accrual
		if accrual == "" {
			accrual = domain.AccrualAnnual
		}
		rules[i] = domain.AbsenceRule{
			RuleID:               uuid.NewString(),
			AgreementID:          agreement.AgreementID,
			Type:                 r.Type,
			AnnualDays:           r.AnnualDays,
			DayCounting:          r.DayCounting,
			AllowsHalfDay:        r.AllowsHalfDay,
			Accrual:              accrual,
			MaxCarryOver:         r.MaxCarryOver,
			CarryOverExpiryMonth: r.CarryOverExpiryMonth,
		}
	}

	if err := s.agreementRepo.SaveAgreement(ctx, agreement, rules); err != nil {
		return nil, fmt.Errorf("failed to save agreement: %w", err)
	}
	return &agreement, nil
}

// AssignAgreement links a user to an agreement from a given date.
func (s *agreementService) AssignAgreement(ctx context.Context, principal domain.Principal, req dto.AssignAgreementRequest) error {
	if principal.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return fmt.Errorf("%w: invalid effectiveFrom", apperrors.ErrValidation)
	}
	assignment := domain.UserAgreement{
		AssignmentID:  uuid.NewString(),
		UserID:        req.UserID,
		AgreementID:   req.AgreementID,
		EffectiveFrom: effectiveFrom,
	}
	if req.EffectiveTo != nil {
		effectiveTo, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return fmt.Errorf("%w: invalid effectiveTo", apperrors.ErrValidation)
		}
		if effectiveTo.Before(effectiveFrom) {
			return fmt.Errorf("%w: effectiveTo before effectiveFrom", apperrors.ErrValidation)
		}
		assignment.EffectiveTo = &effectiveTo
	}

	if err := s.agreementRepo.AssignAgreement(ctx, assignment); err != nil {
		return fmt.Errorf("failed to assign agreement: %w", err)
	}
	return nil
}

// ResolveRule returns the rule governing the user's absence type on date d,
// or nil when no agreement or rule applies. The repository already picks the
// most recent effective assignment.
func (s *agreementService) ResolveRule(ctx context.Context, userID string, absenceType domain.AbsenceType, d time.Time) (*domain.AbsenceRule, error) {
	agreement, err := s.agreementRepo.FindEffectiveAgreement(ctx, userID, d)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve agreement: %w", err)
	}

	rule, err := s.agreementRepo.FindRule(ctx, agreement.AgreementID, absenceType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve rule: %w", err)
	}
	return rule, nil
}
