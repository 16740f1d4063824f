package repositories

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// AgreementReader defines read operations over labor agreements and their
// absence rules.
type AgreementReader interface {
	// FindEffectiveAgreement returns the user's agreement assignment in
	// force on date d, preferring the most recent EffectiveFrom. Returns
	// apperrors.ErrNotFound when the user has no assignment covering d.
	FindEffectiveAgreement(ctx context.Context, userID string, d time.Time) (*domain.Agreement, error)

	// FindRule returns the agreement's rule for an absence type, or
	// apperrors.ErrNotFound when the agreement does not define one.
	FindRule(ctx context.Context, agreementID string, absenceType domain.AbsenceType) (*domain.AbsenceRule, error)
}

// AgreementWriter defines write operations over agreements.
type AgreementWriter interface {
	// SaveAgreement persists an agreement with its rules.
	SaveAgreement(ctx context.Context, agreement domain.Agreement, rules []domain.AbsenceRule) error

	// AssignAgreement links a user to an agreement from effectiveFrom.
	AssignAgreement(ctx context.Context, assignment domain.UserAgreement) error
}

// AgreementRepositoryFacade combines all agreement repository interfaces.
type AgreementRepositoryFacade interface {
	AgreementReader
	AgreementWriter
}
