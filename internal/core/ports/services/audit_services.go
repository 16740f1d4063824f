package services

import (
	"context"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// AuditSvc records and queries the append-only audit trail. Record is
// fire-and-forget: failures are logged, never propagated.
type AuditSvc interface {
	Record(ctx context.Context, userID *string, action domain.AuditAction, detail string, reason *string)

	List(ctx context.Context, principal domain.Principal, userID *string, action *domain.AuditAction, params dto.PaginationParams) ([]domain.AuditLog, *string, error)
}
