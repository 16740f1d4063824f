package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// calendarHandler handles HTTP requests for the merged calendar view and
// holiday administration.
type calendarHandler struct {
	calendarService portssvc.CalendarSvc
}

func newCalendarHandler(cs portssvc.CalendarSvc) *calendarHandler {
	return &calendarHandler{calendarService: cs}
}

// registerCalendarRoutes registers calendar and holiday routes.
func registerCalendarRoutes(rg *gin.RouterGroup, calendarService portssvc.CalendarSvc) {
	h := newCalendarHandler(calendarService)

	rg.GET("/calendar", h.getCalendar)

	holidays := rg.Group("/holidays")
	{
		holidays.POST("", h.createHoliday) // Admin only
		holidays.DELETE("/:id", h.deleteHoliday)
	}
}

func (h *calendarHandler) getCalendar(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var params dto.CalendarParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID := c.Query("userID")
	if userID == "" {
		userID = principal.UserID
	}

	events, err := h.calendarService.GetCalendar(c.Request.Context(), principal, userID, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to build calendar")
		return
	}
	c.JSON(http.StatusOK, dto.ToCalendarResponse(events))
}

func (h *calendarHandler) createHoliday(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	holiday, err := h.calendarService.CreateHoliday(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create holiday")
		return
	}
	c.JSON(http.StatusCreated, holiday)
}

func (h *calendarHandler) deleteHoliday(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.calendarService.DeleteHoliday(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete holiday")
		return
	}
	c.Status(http.StatusNoContent)
}
