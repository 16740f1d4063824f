package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	"github.com/clockwork-hr/attendance_app/internal/models"
	"github.com/clockwork-hr/attendance_app/internal/utils/mapping"
	"github.com/clockwork-hr/attendance_app/internal/utils/pagination"
)

type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

const balanceColumns = `balance_id, user_id, type, year, allocated, carry_over, spent, created_at, created_by, last_updated_at, last_updated_by`

func scanBalance(row pgx.Row) (*models.AbsenceBalance, error) {
	var m models.AbsenceBalance
	err := row.Scan(
		&m.BalanceID,
		&m.UserID,
		&m.Type,
		&m.Year,
		&m.Allocated,
		&m.CarryOver,
		&m.Spent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxBalanceRepository) FindBalance(ctx context.Context, userID string, absenceType domain.AbsenceType, year int) (*domain.AbsenceBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM absence_balances WHERE user_id = $1 AND type = $2 AND year = $3;`
	m, err := scanBalance(r.Pool.QueryRow(ctx, query, userID, string(absenceType), year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance: %w", err)
	}
	d := mapping.ToDomainAbsenceBalance(*m)
	return &d, nil
}

func (r *PgxBalanceRepository) ListBalancesByUser(ctx context.Context, userID string, year int) ([]domain.AbsenceBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM absence_balances WHERE user_id = $1 AND year = $2 ORDER BY type ASC;`
	rows, err := r.Pool.Query(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	var ms []models.AbsenceBalance
	for rows.Next() {
		m, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}
	return mapping.ToDomainAbsenceBalanceSlice(ms), nil
}

func (r *PgxBalanceRepository) ListMovements(ctx context.Context, balanceID string, limit int, nextToken *string) ([]domain.BalanceMovement, *string, error) {
	query := `
		SELECT movement_id, balance_id, timestamp, delta, reason, reference, created_by
		FROM balance_movements
		WHERE balance_id = $1
	`
	args := []any{balanceID}
	if nextToken != nil {
		ts, id, err := pagination.DecodeTimeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (timestamp, movement_id) < ($2, $3)`
		args = append(args, ts, id)
	}
	query += ` ORDER BY timestamp DESC, movement_id DESC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	var ms []models.BalanceMovement
	for rows.Next() {
		var m models.BalanceMovement
		if err := rows.Scan(&m.MovementID, &m.BalanceID, &m.Timestamp, &m.Delta, &m.Reason, &m.Reference, &m.CreatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate movements: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		tok := pagination.EncodeTimeIDToken(last.Timestamp, last.MovementID)
		next = &tok
	}
	return mapping.ToDomainBalanceMovementSlice(ms), next, nil
}

func (r *PgxBalanceRepository) Allocate(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID string) (*domain.AbsenceBalance, error) {
	return r.writeMovement(ctx, userID, absenceType, year, days, domain.MovementAllocation, nil, actorID)
}

func (r *PgxBalanceRepository) CarryOver(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID string) (*domain.AbsenceBalance, error) {
	return r.writeMovement(ctx, userID, absenceType, year, days, domain.MovementCarryOver, nil, actorID)
}

func (r *PgxBalanceRepository) Adjust(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, delta decimal.Decimal, actorID, reason string) (*domain.AbsenceBalance, error) {
	return r.writeMovement(ctx, userID, absenceType, year, delta, domain.MovementAdjustment, &reason, actorID)
}

func (r *PgxBalanceRepository) Reverse(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID, requestID string) (*domain.AbsenceBalance, error) {
	reference := "absence:" + requestID
	return r.writeMovement(ctx, userID, absenceType, year, days, domain.MovementReversal, &reference, actorID)
}

// writeMovement locks (creating if needed) the balance row, checks that the
// movement would not push availability below zero, then appends the movement
// and folds it into the row in one transaction.
func (r *PgxBalanceRepository) writeMovement(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, delta decimal.Decimal, reason domain.MovementReason, reference *string, actorID string) (*domain.AbsenceBalance, error) {
	now := time.Now().UTC()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	row, err := lockOrCreateBalance(ctx, tx, userID, string(absenceType), year, actorID, now)
	if err != nil {
		return nil, err
	}

	if reason == domain.MovementAdjustment {
		// Adjustments land in Allocated; both the allocated floor and the
		// availability floor apply.
		if err := row.CheckAdjustment(delta); err != nil {
			return nil, err
		}
	} else if row.Available().Add(delta).IsNegative() {
		// Whichever column the movement lands in, Available changes by delta.
		return nil, fmt.Errorf("%w: %s available, %s delta", apperrors.ErrWouldGoNegative, row.Available().String(), delta.String())
	}

	var ref *string
	if reference != nil && *reference != "" {
		ref = reference
	}
	if err := applyMovement(ctx, tx, row.BalanceID, delta, string(reason), ref, actorID, now); err != nil {
		return nil, err
	}

	query := `SELECT ` + balanceColumns + ` FROM absence_balances WHERE balance_id = $1;`
	m, err := scanBalance(tx.QueryRow(ctx, query, row.BalanceID))
	if err != nil {
		return nil, fmt.Errorf("failed to read back balance: %w", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	d := mapping.ToDomainAbsenceBalance(*m)
	return &d, nil
}
