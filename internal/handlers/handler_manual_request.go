package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// manualRequestHandler handles HTTP requests for manual clock corrections.
type manualRequestHandler struct {
	requestService portssvc.ManualRequestSvcFacade
}

func newManualRequestHandler(ms portssvc.ManualRequestSvcFacade) *manualRequestHandler {
	return &manualRequestHandler{requestService: ms}
}

// registerManualRequestRoutes registers all manual request routes.
func registerManualRequestRoutes(rg *gin.RouterGroup, requestService portssvc.ManualRequestSvcFacade) {
	h := newManualRequestHandler(requestService)

	requests := rg.Group("/manual-requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:id", h.getRequest)
		requests.POST("/:id/resolve", h.resolveRequest)
	}
}

func (h *manualRequestHandler) createRequest(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateManualRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), principal, req, c.ClientIP())
	if err != nil {
		respondError(c, err, "Failed to create manual request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToManualRequestResponse(request))
}

func (h *manualRequestHandler) getRequest(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	request, err := h.requestService.GetRequestByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve manual request")
		return
	}
	c.JSON(http.StatusOK, dto.ToManualRequestResponse(request))
}

func (h *manualRequestHandler) listRequests(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var params dto.ListManualRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.requestService.ListRequests(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err, "Failed to list manual requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *manualRequestHandler) resolveRequest(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.ResolveManualRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	request, err := h.requestService.ResolveRequest(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to resolve manual request")
		return
	}
	c.JSON(http.StatusOK, dto.ToManualRequestResponse(request))
}
