package repositories

import (
	"context"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// AuditRepository persists audit log entries.
type AuditRepository interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// ListAuditLogs returns entries ordered by Timestamp descending with
	// cursor pagination, optionally filtered by subject user and action.
	ListAuditLogs(ctx context.Context, userID *string, action *domain.AuditAction, limit int, nextToken *string) ([]domain.AuditLog, *string, error)
}
