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

type PgxClockEventRepository struct {
	BaseRepository
}

func newPgxClockEventRepository(pool *pgxpool.Pool) portsrepo.ClockEventRepositoryFacade {
	return &PgxClockEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClockEventRepositoryFacade = (*PgxClockEventRepository)(nil)

const clockEventColumns = `event_id, user_id, kind, timestamp, is_manual, validity, source_request_id, content_hash, reason, created_at, created_by, last_updated_at, last_updated_by`

const insertClockEventQuery = `
	INSERT INTO clock_events (` + clockEventColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

func scanClockEvent(row pgx.Row) (*models.ClockEvent, error) {
	var m models.ClockEvent
	err := row.Scan(
		&m.EventID,
		&m.UserID,
		&m.Kind,
		&m.Timestamp,
		&m.IsManual,
		&m.Validity,
		&m.SourceRequestID,
		&m.ContentHash,
		&m.Reason,
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

func clockEventArgs(m models.ClockEvent) []any {
	return []any{
		m.EventID, m.UserID, m.Kind, m.Timestamp, m.IsManual, m.Validity,
		m.SourceRequestID, m.ContentHash, m.Reason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxClockEventRepository) SaveEvent(ctx context.Context, event domain.ClockEvent) error {
	m := mapping.ToModelClockEvent(event)
	if _, err := r.Pool.Exec(ctx, insertClockEventQuery, clockEventArgs(m)...); err != nil {
		return fmt.Errorf("failed to save clock event: %w", err)
	}
	return nil
}

// SaveEventWithAutoClose inserts the synthetic closing EXIT and the new ENTRY
// in one transaction.
func (r *PgxClockEventRepository) SaveEventWithAutoClose(ctx context.Context, closing domain.ClockEvent, event domain.ClockEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, insertClockEventQuery, clockEventArgs(mapping.ToModelClockEvent(closing))...); err != nil {
		return fmt.Errorf("failed to insert closing event: %w", err)
	}
	if _, err := tx.Exec(ctx, insertClockEventQuery, clockEventArgs(mapping.ToModelClockEvent(event))...); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxClockEventRepository) UpdateEventValidity(ctx context.Context, eventID string, validity domain.ClockEventValidity, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE clock_events
		SET validity = $2, last_updated_at = $3, last_updated_by = $4
		WHERE event_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, eventID, string(validity), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update event validity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClockEventRepository) FindLastEventByUser(ctx context.Context, userID string) (*domain.ClockEvent, error) {
	query := `
		SELECT ` + clockEventColumns + `
		FROM clock_events
		WHERE user_id = $1 AND validity <> 'INVALIDATED'
		ORDER BY timestamp DESC
		LIMIT 1;
	`
	m, err := scanClockEvent(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find last event for user %s: %w", userID, err)
	}
	e := mapping.ToDomainClockEvent(*m)
	return &e, nil
}

func (r *PgxClockEventRepository) ListEventsByUser(ctx context.Context, userID string) ([]domain.ClockEvent, error) {
	query := `
		SELECT ` + clockEventColumns + `
		FROM clock_events
		WHERE user_id = $1
		ORDER BY timestamp ASC;
	`
	return r.queryEvents(ctx, query, userID)
}

func (r *PgxClockEventRepository) ListEventsByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.ClockEvent, error) {
	query := `
		SELECT ` + clockEventColumns + `
		FROM clock_events
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp ASC;
	`
	return r.queryEvents(ctx, query, userID, from, to)
}

func (r *PgxClockEventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]domain.ClockEvent, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clock events: %w", err)
	}
	defer rows.Close()

	var ms []models.ClockEvent
	for rows.Next() {
		m, err := scanClockEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clock events: %w", err)
	}
	return mapping.ToDomainClockEventSlice(ms), nil
}

func (r *PgxClockEventRepository) HasEntryAtOrBefore(ctx context.Context, userID string, ts time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM clock_events
			WHERE user_id = $1 AND kind = 'ENTRY' AND validity <> 'INVALIDATED' AND timestamp <= $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, ts).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check prior entry: %w", err)
	}
	return exists, nil
}

func (r *PgxClockEventRepository) FindEventBySourceRequest(ctx context.Context, requestID string) (*domain.ClockEvent, error) {
	query := `
		SELECT ` + clockEventColumns + `
		FROM clock_events
		WHERE source_request_id = $1
		LIMIT 1;
	`
	m, err := scanClockEvent(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event by source request %s: %w", requestID, err)
	}
	e := mapping.ToDomainClockEvent(*m)
	return &e, nil
}
