package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// absenceHandler handles HTTP requests for absence requests. Consumption
// preview and reversal live here too since they are addressed by request ID.
type absenceHandler struct {
	absenceService portssvc.AbsenceSvcFacade
	balanceService portssvc.BalanceSvcFacade
	loc            *time.Location
}

func newAbsenceHandler(as portssvc.AbsenceSvcFacade, bs portssvc.BalanceSvcFacade, loc *time.Location) *absenceHandler {
	return &absenceHandler{absenceService: as, balanceService: bs, loc: loc}
}

// registerAbsenceRoutes registers all absence-related routes.
func registerAbsenceRoutes(rg *gin.RouterGroup, absenceService portssvc.AbsenceSvcFacade, balanceService portssvc.BalanceSvcFacade, loc *time.Location) {
	h := newAbsenceHandler(absenceService, balanceService, loc)

	absences := rg.Group("/absences")
	{
		absences.POST("", h.createAbsence)
		absences.GET("", h.listAbsences)
		absences.GET("/:id", h.getAbsence)
		absences.PUT("/:id", h.updateAbsence)
		absences.POST("/:id/approve", h.approveAbsence)
		absences.POST("/:id/reject", h.rejectAbsence)
		absences.GET("/:id/preview", h.previewConsumption)
		absences.POST("/:id/reverse", h.reverseConsumption)
	}
}

func (h *absenceHandler) createAbsence(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	absence, err := h.absenceService.CreateAbsence(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create absence request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAbsenceResponse(absence, h.loc))
}

func (h *absenceHandler) getAbsence(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	absence, err := h.absenceService.GetAbsenceByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve absence request")
		return
	}
	c.JSON(http.StatusOK, dto.ToAbsenceResponse(absence, h.loc))
}

func (h *absenceHandler) listAbsences(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var params dto.ListAbsencesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.absenceService.ListAbsences(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err, "Failed to list absence requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *absenceHandler) updateAbsence(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	absence, err := h.absenceService.UpdateAbsence(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update absence request")
		return
	}
	c.JSON(http.StatusOK, dto.ToAbsenceResponse(absence, h.loc))
}

func (h *absenceHandler) approveAbsence(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	absence, err := h.absenceService.ApproveAbsence(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to approve absence request")
		return
	}
	c.JSON(http.StatusOK, dto.ToAbsenceResponse(absence, h.loc))
}

func (h *absenceHandler) rejectAbsence(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	absence, err := h.absenceService.RejectAbsence(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to reject absence request")
		return
	}
	c.JSON(http.StatusOK, dto.ToAbsenceResponse(absence, h.loc))
}

func (h *absenceHandler) previewConsumption(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	preview, err := h.balanceService.PreviewConsumption(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to preview consumption")
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *absenceHandler) reverseConsumption(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	balance, err := h.balanceService.ReverseConsumption(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to reverse consumption")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
