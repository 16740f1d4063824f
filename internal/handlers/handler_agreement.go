package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// agreementHandler handles HTTP requests for labor agreements.
type agreementHandler struct {
	agreementService portssvc.AgreementSvc
}

func newAgreementHandler(as portssvc.AgreementSvc) *agreementHandler {
	return &agreementHandler{agreementService: as}
}

// registerAgreementRoutes registers agreement administration routes.
func registerAgreementRoutes(rg *gin.RouterGroup, agreementService portssvc.AgreementSvc) {
	h := newAgreementHandler(agreementService)

	agreements := rg.Group("/agreements")
	{
		agreements.POST("", h.createAgreement) // Admin only
		agreements.POST("/assignments", h.assignAgreement)
	}
}

func (h *agreementHandler) createAgreement(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	agreement, err := h.agreementService.CreateAgreement(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create agreement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAgreementResponse(agreement, nil))
}

func (h *agreementHandler) assignAgreement(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.AssignAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.agreementService.AssignAgreement(c.Request.Context(), principal, req); err != nil {
		respondError(c, err, "Failed to assign agreement")
		return
	}
	c.Status(http.StatusNoContent)
}
