package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// balanceHandler handles HTTP requests for absence balances and their ledger.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers all balance-related routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.GET("", h.getBalances)
		balances.GET("/movements/:balanceID", h.listMovements)
		balances.POST("/allocate", h.allocate)
		balances.POST("/carry-over", h.carryOver)
		balances.POST("/adjust", h.adjust)
	}
}

// getBalances returns a single balance when type is given, otherwise all of
// the user's balances for the year. Year defaults to the current one.
func (h *balanceHandler) getBalances(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	userID := c.Query("userID")
	if userID == "" {
		userID = principal.UserID
	}

	year := time.Now().UTC().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
			return
		}
		year = parsed
	}

	if typeStr := c.Query("type"); typeStr != "" {
		balance, err := h.balanceService.GetBalance(c.Request.Context(), principal, userID, domain.AbsenceType(typeStr), year)
		if err != nil {
			respondError(c, err, "Failed to retrieve balance")
			return
		}
		c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
		return
	}

	balances, err := h.balanceService.ListBalances(c.Request.Context(), principal, userID, year)
	if err != nil {
		respondError(c, err, "Failed to list balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBalancesResponse(balances))
}

func (h *balanceHandler) listMovements(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var params dto.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.balanceService.ListMovements(c.Request.Context(), principal, c.Param("balanceID"), params)
	if err != nil {
		respondError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *balanceHandler) allocate(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.AllocateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	balance, err := h.balanceService.Allocate(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to allocate balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

func (h *balanceHandler) carryOver(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CarryOverBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	balance, err := h.balanceService.CarryOver(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to carry over balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

func (h *balanceHandler) adjust(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	balance, err := h.balanceService.Adjust(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to adjust balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
