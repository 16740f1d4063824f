package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// auditHandler handles HTTP requests for the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvc
}

func newAuditHandler(as portssvc.AuditSvc) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers audit-log routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := newAuditHandler(auditService)

	rg.GET("/audit-logs", h.listAuditLogs) // Admin only
}

func (h *auditHandler) listAuditLogs(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var params dto.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	var userID *string
	if v := c.Query("userID"); v != "" {
		userID = &v
	}
	var action *domain.AuditAction
	if v := c.Query("action"); v != "" {
		a := domain.AuditAction(v)
		action = &a
	}

	logs, nextToken, err := h.auditService.List(c.Request.Context(), principal, userID, action, params)
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "nextToken": nextToken})
}
