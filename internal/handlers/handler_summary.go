package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// summaryHandler handles HTTP requests for attendance summaries.
type summaryHandler struct {
	summaryService portssvc.SummarySvc
}

func newSummaryHandler(ss portssvc.SummarySvc) *summaryHandler {
	return &summaryHandler{summaryService: ss}
}

// registerSummaryRoutes registers all summary routes.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvc) {
	h := newSummaryHandler(summaryService)

	summaries := rg.Group("/summaries/:userID")
	{
		summaries.GET("", h.getSummary)
		summaries.GET("/week", h.getWeekSummary)
		summaries.GET("/export", h.exportCSV)
	}
}

// getSummary returns the per-day reconciliation. Without a from/to range it
// covers the user's whole clocking history.
func (h *summaryHandler) getSummary(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID := c.Param("userID")

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" && toStr == "" {
		summary, err := h.summaryService.SummarizeUser(c.Request.Context(), principal, userID)
		if err != nil {
			respondError(c, err, "Failed to build summary")
			return
		}
		var from, to time.Time
		if len(summary.Days) > 0 {
			from = summary.Days[0].Date
			to = summary.Days[len(summary.Days)-1].Date
		}
		c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, from, to))
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.summaryService.SummarizeRange(c.Request.Context(), principal, userID, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, params.From, params.To))
}

// getWeekSummary aggregates the Monday-based week containing ref (today when
// omitted).
func (h *summaryHandler) getWeekSummary(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID := c.Param("userID")

	ref := time.Now().UTC()
	if refStr := c.Query("ref"); refStr != "" {
		parsed, err := time.Parse("2006-01-02", refStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid ref date, expected YYYY-MM-DD"})
			return
		}
		ref = parsed
	}

	week, err := h.summaryService.SummarizeWeek(c.Request.Context(), principal, userID, ref)
	if err != nil {
		respondError(c, err, "Failed to build week summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToWeekSummaryResponse(week))
}

func (h *summaryHandler) exportCSV(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID := c.Param("userID")

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	data, err := h.summaryService.ExportCSV(c.Request.Context(), principal, userID, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to export summary")
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.csv",
		userID, params.From.Format("2006-01-02"), params.To.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
