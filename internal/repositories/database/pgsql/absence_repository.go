package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
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

type PgxAbsenceRepository struct {
	BaseRepository
}

func newPgxAbsenceRepository(pool *pgxpool.Pool) portsrepo.AbsenceRepositoryFacade {
	return &PgxAbsenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AbsenceRepositoryFacade = (*PgxAbsenceRepository)(nil)

const absenceColumns = `request_id, user_id, type, subtype, date_start, time_start, date_end, time_end, partial, paid, status, reason, approved_by, created_at, created_by, last_updated_at, last_updated_by`

func scanAbsence(row pgx.Row) (*models.AbsenceRequest, error) {
	var m models.AbsenceRequest
	err := row.Scan(
		&m.RequestID,
		&m.UserID,
		&m.Type,
		&m.Subtype,
		&m.DateStart,
		&m.TimeStart,
		&m.DateEnd,
		&m.TimeEnd,
		&m.Partial,
		&m.Paid,
		&m.Status,
		&m.Reason,
		&m.ApprovedBy,
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

func (r *PgxAbsenceRepository) SaveAbsence(ctx context.Context, request domain.AbsenceRequest) error {
	m := mapping.ToModelAbsenceRequest(request)
	query := `
		INSERT INTO absence_requests (` + absenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID, m.UserID, m.Type, m.Subtype, m.DateStart, m.TimeStart,
		m.DateEnd, m.TimeEnd, m.Partial, m.Paid, m.Status, m.Reason, m.ApprovedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save absence: %w", err)
	}
	return nil
}

func (r *PgxAbsenceRepository) UpdateAbsence(ctx context.Context, request domain.AbsenceRequest) error {
	m := mapping.ToModelAbsenceRequest(request)
	query := `
		UPDATE absence_requests
		SET type = $2, subtype = $3, date_start = $4, time_start = $5, date_end = $6,
		    time_end = $7, partial = $8, paid = $9, reason = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE request_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RequestID, m.Type, m.Subtype, m.DateStart, m.TimeStart, m.DateEnd,
		m.TimeEnd, m.Partial, m.Paid, m.Reason, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update absence %s: %w", request.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyResolved
	}
	return nil
}

// ApproveWithConsumption flips the request to APPROVED and, when debit is
// non-nil, debits the balance in the same transaction. The absence and the
// balance row are both locked so concurrent approvals serialize.
func (r *PgxAbsenceRepository) ApproveWithConsumption(ctx context.Context, requestID, approverID string, approvedAt time.Time, debit *portsrepo.BalanceDebit) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM absence_requests WHERE request_id = $1 FOR UPDATE`, requestID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock absence %s: %w", requestID, err)
	}
	if status != string(domain.AbsencePending) {
		return fmt.Errorf("%w: absence %s is %s", apperrors.ErrAlreadyResolved, requestID, status)
	}

	if debit != nil {
		row, err := lockOrCreateBalance(ctx, tx, debit.UserID, string(debit.Type), debit.Year, approverID, approvedAt)
		if err != nil {
			return err
		}
		if row.Available().LessThan(debit.RequestedDays) {
			return fmt.Errorf("%w: %s available, %s requested", apperrors.ErrInsufficientBalance, row.Available().String(), debit.RequestedDays.String())
		}
		if err := applyMovement(ctx, tx, row.BalanceID, debit.RequestedDays.Neg(), string(domain.MovementApproval), &debit.Reference, approverID, approvedAt); err != nil {
			return err
		}
	}

	query := `
		UPDATE absence_requests
		SET status = 'APPROVED', approved_by = $2, last_updated_at = $3, last_updated_by = $2
		WHERE request_id = $1;
	`
	if _, err := tx.Exec(ctx, query, requestID, approverID, approvedAt); err != nil {
		return fmt.Errorf("failed to approve absence %s: %w", requestID, err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAbsenceRepository) Reject(ctx context.Context, requestID, approverID string, rejectedAt time.Time) error {
	query := `
		UPDATE absence_requests
		SET status = 'REJECTED', approved_by = $2, last_updated_at = $3, last_updated_by = $2
		WHERE request_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, requestID, approverID, rejectedAt)
	if err != nil {
		return fmt.Errorf("failed to reject absence %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM absence_requests WHERE request_id = $1)`, requestID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check absence %s: %w", requestID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrAlreadyResolved
	}
	return nil
}

func (r *PgxAbsenceRepository) FindAbsenceByID(ctx context.Context, requestID string) (*domain.AbsenceRequest, error) {
	query := `SELECT ` + absenceColumns + ` FROM absence_requests WHERE request_id = $1;`
	m, err := scanAbsence(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find absence %s: %w", requestID, err)
	}
	d, err := mapping.ToDomainAbsenceRequest(*m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxAbsenceRepository) FindOverlappingCandidates(ctx context.Context, userID string, dateStart, dateEnd time.Time, excludeID string) ([]domain.AbsenceRequest, error) {
	query := `
		SELECT ` + absenceColumns + `
		FROM absence_requests
		WHERE user_id = $1
		  AND status IN ('PENDING', 'APPROVED')
		  AND date_start <= $3 AND date_end >= $2
		  AND ($4 = '' OR request_id <> $4)
		ORDER BY date_start ASC;
	`
	return r.queryAbsences(ctx, query, userID, dateStart, dateEnd, excludeID)
}

func (r *PgxAbsenceRepository) FindApprovedOnDate(ctx context.Context, userID string, d time.Time) ([]domain.AbsenceRequest, error) {
	query := `
		SELECT ` + absenceColumns + `
		FROM absence_requests
		WHERE user_id = $1 AND status = 'APPROVED' AND date_start <= $2 AND date_end >= $2
		ORDER BY date_start ASC;
	`
	return r.queryAbsences(ctx, query, userID, d)
}

func (r *PgxAbsenceRepository) FindApprovedByUser(ctx context.Context, userID string) ([]domain.AbsenceRequest, error) {
	query := `
		SELECT ` + absenceColumns + `
		FROM absence_requests
		WHERE user_id = $1 AND status = 'APPROVED'
		ORDER BY date_start ASC;
	`
	return r.queryAbsences(ctx, query, userID)
}

func (r *PgxAbsenceRepository) FindByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.AbsenceRequest, error) {
	query := `
		SELECT ` + absenceColumns + `
		FROM absence_requests
		WHERE user_id = $1 AND date_start <= $3 AND date_end >= $2
		ORDER BY date_start ASC;
	`
	return r.queryAbsences(ctx, query, userID, from, to)
}

func (r *PgxAbsenceRepository) queryAbsences(ctx context.Context, query string, args ...any) ([]domain.AbsenceRequest, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var ms []models.AbsenceRequest
	for rows.Next() {
		m, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absences: %w", err)
	}
	return mapping.ToDomainAbsenceRequestSlice(ms)
}

func (r *PgxAbsenceRepository) ListAbsences(ctx context.Context, filter portsrepo.AbsenceFilter, limit int, nextToken *string) ([]domain.AbsenceRequest, *string, error) {
	query := `SELECT ` + absenceColumns + ` FROM absence_requests WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.UserID != "" {
		query += ` AND user_id = ` + arg(filter.UserID)
	}
	if filter.Status != nil {
		query += ` AND status = ` + arg(string(*filter.Status))
	}
	if filter.Type != nil {
		query += ` AND type = ` + arg(string(*filter.Type))
	}
	if filter.From != nil {
		query += ` AND date_end >= ` + arg(*filter.From)
	}
	if filter.To != nil {
		query += ` AND date_start <= ` + arg(*filter.To)
	}
	if nextToken != nil {
		ts, id, err := pagination.DecodeTimeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (date_start, request_id) < (` + arg(ts) + `, ` + arg(id) + `)`
	}
	query += ` ORDER BY date_start DESC, request_id DESC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var ms []models.AbsenceRequest
	for rows.Next() {
		m, err := scanAbsence(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate absences: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		tok := pagination.EncodeTimeIDToken(last.DateStart, last.RequestID)
		next = &tok
	}
	ds, err := mapping.ToDomainAbsenceRequestSlice(ms)
	if err != nil {
		return nil, nil, err
	}
	return ds, next, nil
}

// lockOrCreateBalance upserts the (user, type, year) balance row and locks it,
// returning a snapshot of its current figures.
func lockOrCreateBalance(ctx context.Context, tx pgx.Tx, userID, absenceType string, year int, actorID string, now time.Time) (domain.AbsenceBalance, error) {
	upsert := `
		INSERT INTO absence_balances (balance_id, user_id, type, year, allocated, carry_over, spent, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, 0, 0, 0, $5, $6, $5, $6)
		ON CONFLICT (user_id, type, year) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, upsert, uuid.NewString(), userID, absenceType, year, now, actorID); err != nil {
		return domain.AbsenceBalance{}, fmt.Errorf("failed to upsert balance: %w", err)
	}

	row := domain.AbsenceBalance{UserID: userID, Type: domain.AbsenceType(absenceType), Year: year}
	query := `
		SELECT balance_id, allocated, carry_over, spent
		FROM absence_balances
		WHERE user_id = $1 AND type = $2 AND year = $3
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, query, userID, absenceType, year).Scan(&row.BalanceID, &row.Allocated, &row.CarryOver, &row.Spent); err != nil {
		return domain.AbsenceBalance{}, fmt.Errorf("failed to lock balance: %w", err)
	}
	return row, nil
}

// applyMovement appends a ledger movement and folds its delta into the locked
// balance row. APPROVAL and REVERSAL deltas mutate spent (with flipped sign);
// ALLOCATION and ADJUSTMENT mutate allocated; CARRY_OVER mutates carry_over.
func applyMovement(ctx context.Context, tx pgx.Tx, balanceID string, delta decimal.Decimal, reason string, reference *string, actorID string, now time.Time) error {
	insert := `
		INSERT INTO balance_movements (movement_id, balance_id, timestamp, delta, reason, reference, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, insert, uuid.NewString(), balanceID, now, delta, reason, reference, actorID); err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}

	var column string
	value := delta
	switch domain.MovementReason(reason) {
	case domain.MovementApproval, domain.MovementReversal:
		column = "spent"
		value = delta.Neg()
	case domain.MovementCarryOver:
		column = "carry_over"
	default:
		column = "allocated"
	}
	update := fmt.Sprintf(`
		UPDATE absence_balances
		SET %s = %s + $2, last_updated_at = $3, last_updated_by = $4
		WHERE balance_id = $1;
	`, column, column)
	if _, err := tx.Exec(ctx, update, balanceID, value, now, actorID); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	return nil
}
