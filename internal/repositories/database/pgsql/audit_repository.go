package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	"github.com/clockwork-hr/attendance_app/internal/models"
	"github.com/clockwork-hr/attendance_app/internal/utils/pagination"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (log_id, user_id, action, detail, reason, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.LogID, entry.UserID, string(entry.Action), entry.Detail, entry.Reason, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, userID *string, action *domain.AuditAction, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	query := `SELECT log_id, user_id, action, detail, reason, timestamp FROM audit_logs WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if userID != nil {
		query += ` AND user_id = ` + arg(*userID)
	}
	if action != nil {
		query += ` AND action = ` + arg(string(*action))
	}
	if nextToken != nil {
		ts, id, err := pagination.DecodeTimeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (timestamp, log_id) < (` + arg(ts) + `, ` + arg(id) + `)`
	}
	query += ` ORDER BY timestamp DESC, log_id DESC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var ms []models.AuditLog
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.LogID, &m.UserID, &m.Action, &m.Detail, &m.Reason, &m.Timestamp); err != nil {
			return nil, nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		tok := pagination.EncodeTimeIDToken(last.Timestamp, last.LogID)
		next = &tok
	}

	ds := make([]domain.AuditLog, 0, len(ms))
	for _, m := range ms {
		ds = append(ds, domain.AuditLog{
			LogID:     m.LogID,
			UserID:    m.UserID,
			Action:    domain.AuditAction(m.Action),
			Detail:    m.Detail,
			Reason:    m.Reason,
			Timestamp: m.Timestamp,
		})
	}
	return ds, next, nil
}
