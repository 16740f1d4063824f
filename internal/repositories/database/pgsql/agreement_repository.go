package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	"github.com/clockwork-hr/attendance_app/internal/models"
	"github.com/clockwork-hr/attendance_app/internal/utils/mapping"
)

type PgxAgreementRepository struct {
	BaseRepository
}

func newPgxAgreementRepository(pool *pgxpool.Pool) portsrepo.AgreementRepositoryFacade {
	return &PgxAgreementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AgreementRepositoryFacade = (*PgxAgreementRepository)(nil)

func (r *PgxAgreementRepository) FindEffectiveAgreement(ctx context.Context, userID string, d time.Time) (*domain.Agreement, error) {
	query := `
		SELECT a.agreement_id, a.name, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM user_agreements ua
		JOIN agreements a ON a.agreement_id = ua.agreement_id
		WHERE ua.user_id = $1
		  AND ua.effective_from <= $2
		  AND (ua.effective_to IS NULL OR ua.effective_to >= $2)
		ORDER BY ua.effective_from DESC
		LIMIT 1;
	`
	var m models.Agreement
	err := r.Pool.QueryRow(ctx, query, userID, d).Scan(
		&m.AgreementID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find effective agreement: %w", err)
	}
	d2 := mapping.ToDomainAgreement(m)
	return &d2, nil
}

func (r *PgxAgreementRepository) FindRule(ctx context.Context, agreementID string, absenceType domain.AbsenceType) (*domain.AbsenceRule, error) {
	query := `
		SELECT rule_id, agreement_id, type, annual_days, day_counting, allows_half_day, accrual, max_carry_over, carry_over_expiry_month
		FROM absence_rules
		WHERE agreement_id = $1 AND type = $2;
	`
	var m models.AbsenceRule
	err := r.Pool.QueryRow(ctx, query, agreementID, string(absenceType)).Scan(
		&m.RuleID, &m.AgreementID, &m.Type, &m.AnnualDays, &m.DayCounting,
		&m.AllowsHalfDay, &m.Accrual, &m.MaxCarryOver, &m.CarryOverExpiryMonth,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rule: %w", err)
	}
	rule := mapping.ToDomainAbsenceRule(m)
	return &rule, nil
}

func (r *PgxAgreementRepository) SaveAgreement(ctx context.Context, agreement domain.Agreement, rules []domain.AbsenceRule) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAgreement(agreement)
	insertAgreement := `
		INSERT INTO agreements (agreement_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, insertAgreement,
		m.AgreementID, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: agreement %s", apperrors.ErrDuplicate, agreement.Name)
		}
		return fmt.Errorf("failed to save agreement: %w", err)
	}

	insertRule := `
		INSERT INTO absence_rules (rule_id, agreement_id, type, annual_days, day_counting, allows_half_day, accrual, max_carry_over, carry_over_expiry_month)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, rule := range rules {
		rm := mapping.ToModelAbsenceRule(rule)
		_, err = tx.Exec(ctx, insertRule,
			rm.RuleID, rm.AgreementID, rm.Type, rm.AnnualDays, rm.DayCounting,
			rm.AllowsHalfDay, rm.Accrual, rm.MaxCarryOver, rm.CarryOverExpiryMonth,
		)
		if err != nil {
			return fmt.Errorf("failed to save rule %s: %w", rule.Type, err)
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAgreementRepository) AssignAgreement(ctx context.Context, assignment domain.UserAgreement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Close the user's currently open assignment so effective ranges never
	// overlap.
	closeOpen := `
		UPDATE user_agreements
		SET effective_to = $2
		WHERE user_id = $1 AND effective_to IS NULL AND effective_from < $2;
	`
	if _, err := tx.Exec(ctx, closeOpen, assignment.UserID, assignment.EffectiveFrom); err != nil {
		return fmt.Errorf("failed to close open assignment: %w", err)
	}

	m := mapping.ToModelUserAgreement(assignment)
	insert := `
		INSERT INTO user_agreements (assignment_id, user_id, agreement_id, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, insert, m.AssignmentID, m.UserID, m.AgreementID, m.EffectiveFrom, m.EffectiveTo); err != nil {
		return fmt.Errorf("failed to assign agreement: %w", err)
	}
	return r.Commit(ctx, tx)
}
