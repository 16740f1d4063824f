package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/middleware"
	"github.com/clockwork-hr/attendance_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.User, services.Token)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Token))

	registerUserRoutes(v1, services.User)
	registerClockingRoutes(v1, services.Clocking)
	registerSummaryRoutes(v1, services.Summary)
	registerAbsenceRoutes(v1, services.Absence, services.Balance, cfg.OrgLocation)
	registerBalanceRoutes(v1, services.Balance)
	registerManualRequestRoutes(v1, services.ManualRequest)
	registerCalendarRoutes(v1, services.Calendar)
	registerAgreementRoutes(v1, services.Agreement)
	registerAuditRoutes(v1, services.Audit)
}
