package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// clockingHandler handles HTTP requests for clock events.
type clockingHandler struct {
	clockingService portssvc.ClockingSvcFacade
}

func newClockingHandler(cs portssvc.ClockingSvcFacade) *clockingHandler {
	return &clockingHandler{clockingService: cs}
}

// registerClockingRoutes registers all clock-event routes.
func registerClockingRoutes(rg *gin.RouterGroup, clockingService portssvc.ClockingSvcFacade) {
	h := newClockingHandler(clockingService)

	events := rg.Group("/clock-events")
	{
		events.POST("", h.recordEvent)
		events.GET("", h.listEvents)
		events.GET("/last", h.getLastEvent)
	}
}

func (h *clockingHandler) recordEvent(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.RecordClockEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	event, err := h.clockingService.RecordEvent(c.Request.Context(), principal, req.Kind, req.Timestamp)
	if err != nil {
		respondError(c, err, "Failed to record clock event")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClockEventResponse(event))
}

func (h *clockingHandler) getLastEvent(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	userID := c.Query("userID")
	if userID == "" {
		userID = principal.UserID
	}

	event, err := h.clockingService.GetLastEvent(c.Request.Context(), principal, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve last event")
		return
	}
	if event == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToClockEventResponse(event))
}

func (h *clockingHandler) listEvents(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var params dto.ListClockEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID := c.Query("userID")
	if userID == "" {
		userID = principal.UserID
	}

	resp, err := h.clockingService.ListEvents(c.Request.Context(), principal, userID, params)
	if err != nil {
		respondError(c, err, "Failed to list clock events")
		return
	}
	c.JSON(http.StatusOK, resp)
}
