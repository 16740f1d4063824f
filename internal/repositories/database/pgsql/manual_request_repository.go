package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	"github.com/clockwork-hr/attendance_app/internal/models"
	"github.com/clockwork-hr/attendance_app/internal/utils/mapping"
	"github.com/clockwork-hr/attendance_app/internal/utils/pagination"
)

type PgxManualRequestRepository struct {
	BaseRepository
}

func newPgxManualRequestRepository(pool *pgxpool.Pool) portsrepo.ManualRequestRepositoryFacade {
	return &PgxManualRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ManualRequestRepositoryFacade = (*PgxManualRequestRepository)(nil)

const manualRequestColumns = `request_id, user_id, kind, requested_at, reason, status, resolved_by, resolved_at, rejection_reason, origin_ip, created_at, created_by, last_updated_at, last_updated_by`

func scanManualRequest(row pgx.Row) (*models.ManualClockRequest, error) {
	var m models.ManualClockRequest
	err := row.Scan(
		&m.RequestID,
		&m.UserID,
		&m.Kind,
		&m.RequestedAt,
		&m.Reason,
		&m.Status,
		&m.ResolvedBy,
		&m.ResolvedAt,
		&m.RejectionReason,
		&m.OriginIP,
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

func (r *PgxManualRequestRepository) SaveRequest(ctx context.Context, request domain.ManualClockRequest) error {
	m := mapping.ToModelManualClockRequest(request)
	query := `
		INSERT INTO manual_clock_requests (` + manualRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID, m.UserID, m.Kind, m.RequestedAt, m.Reason, m.Status,
		m.ResolvedBy, m.ResolvedAt, m.RejectionReason, m.OriginIP,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save manual request: %w", err)
	}
	return nil
}

// Resolve flips a PENDING request to its terminal status and, when event is
// non-nil, inserts the synthesized clock event in the same transaction. The
// status guard in the UPDATE makes double resolution race-safe.
func (r *PgxManualRequestRepository) Resolve(ctx context.Context, requestID string, status domain.ManualRequestStatus, resolverID string, resolvedAt time.Time, rejectionReason *string, event *domain.ClockEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE manual_clock_requests
		SET status = $2, resolved_by = $3, resolved_at = $4, rejection_reason = $5,
		    last_updated_at = $4, last_updated_by = $3
		WHERE request_id = $1 AND status = 'PENDING';
	`
	tag, err := tx.Exec(ctx, query, requestID, string(status), resolverID, resolvedAt, rejectionReason)
	if err != nil {
		return fmt.Errorf("failed to resolve request %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already terminal; disambiguate for the caller.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM manual_clock_requests WHERE request_id = $1)`, requestID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check request %s: %w", requestID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrAlreadyResolved
	}

	if event != nil {
		m := mapping.ToModelClockEvent(*event)
		if _, err := tx.Exec(ctx, insertClockEventQuery, clockEventArgs(m)...); err != nil {
			return fmt.Errorf("failed to insert synthesized event: %w", err)
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxManualRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ManualClockRequest, error) {
	query := `SELECT ` + manualRequestColumns + ` FROM manual_clock_requests WHERE request_id = $1;`
	m, err := scanManualRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find manual request %s: %w", requestID, err)
	}
	d := mapping.ToDomainManualClockRequest(*m)
	return &d, nil
}

func (r *PgxManualRequestRepository) FindResolvableExitBetween(ctx context.Context, userID string, after, before time.Time) (*domain.ManualClockRequest, error) {
	query := `
		SELECT ` + manualRequestColumns + `
		FROM manual_clock_requests mcr
		WHERE mcr.user_id = $1 AND mcr.kind = 'EXIT'
		  AND mcr.status IN ('PENDING', 'APPROVED')
		  AND mcr.requested_at > $2 AND mcr.requested_at < $3
		  AND NOT EXISTS (
			SELECT 1 FROM clock_events ce
			WHERE ce.source_request_id = mcr.request_id
			  AND ce.validity <> 'INVALIDATED'
		  )
		ORDER BY mcr.requested_at ASC
		LIMIT 1;
	`
	m, err := scanManualRequest(r.Pool.QueryRow(ctx, query, userID, after, before))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find resolvable exit request: %w", err)
	}
	d := mapping.ToDomainManualClockRequest(*m)
	return &d, nil
}

func (r *PgxManualRequestRepository) ListRequests(ctx context.Context, filter portsrepo.ManualRequestFilter, limit int, nextToken *string) ([]domain.ManualClockRequest, *string, error) {
	query := `SELECT ` + manualRequestColumns + ` FROM manual_clock_requests WHERE 1=1`
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
	if nextToken != nil {
		ts, id, err := pagination.DecodeTimeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (requested_at, request_id) < (` + arg(ts) + `, ` + arg(id) + `)`
	}
	query += ` ORDER BY requested_at DESC, request_id DESC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query manual requests: %w", err)
	}
	defer rows.Close()

	var ms []models.ManualClockRequest
	for rows.Next() {
		m, err := scanManualRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan manual request: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate manual requests: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		tok := pagination.EncodeTimeIDToken(last.RequestedAt, last.RequestID)
		next = &tok
	}
	return mapping.ToDomainManualClockRequestSlice(ms), next, nil
}
