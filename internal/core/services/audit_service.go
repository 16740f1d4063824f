package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
	"github.com/clockwork-hr/attendance_app/internal/middleware"
)

// auditService records the append-only audit trail. Recording is
// fire-and-forget: a failed audit write is logged and never fails the
// operation that triggered it.
type auditService struct {
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditSvc {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// Record appends one audit entry.
func (s *auditService) Record(ctx context.Context, userID *string, action domain.AuditAction, detail string, reason *string) {
	entry := domain.AuditLog{
		LogID:     uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	}
	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to write audit log",
			slog.String("action", string(action)), slog.String("error", err.Error()))
	}
}

// List returns audit entries, optionally filtered. Admin territory.
func (s *auditService) List(ctx context.Context, principal domain.Principal, userID *string, action *domain.AuditAction, params dto.PaginationParams) ([]domain.AuditLog, *string, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, nil, apperrors.ErrForbidden
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.auditRepo.ListAuditLogs(ctx, userID, action, limit, params.NextToken)
}
