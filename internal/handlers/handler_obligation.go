package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/dto"
	"github.com/finovabs/backoffice_app/internal/middleware"
)

// obligationHandler serves obligation reads and the mark-paid transition.
type obligationHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// newObligationHandler creates a new obligationHandler.
func newObligationHandler(as portssvc.ApprovalSvcFacade) *obligationHandler {
	return &obligationHandler{approvalService: as}
}

// registerObligationRoutes registers routes related to obligations.
func registerObligationRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newObligationHandler(approvalService)

	obligations := rg.Group("/obligations")
	{
		obligations.GET("/open", h.listOpenObligations)
		obligations.GET("/:obligationID", h.getObligation)
		obligations.POST("/:obligationID/pay", h.markPaid)
	}
}

// getObligation godoc
// @Summary Get an obligation by ID
// @Description Retrieves an obligation together with its request envelope
// @Tags obligations
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Security BearerAuth
// @Router /obligations/{obligationID} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	obligationID := c.Param("obligationID")

	obligation, request, err := h.approvalService.GetObligation(c.Request.Context(), obligationID)
	if err != nil {
		respondApprovalError(c, "Failed to get obligation", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation, request))
}

// listOpenObligations godoc
// @Summary List open obligations
// @Description Retrieves every obligation currently in the open status
// @Tags obligations
// @Produce  json
// @Success 200 {array} dto.ObligationResponse
// @Security BearerAuth
// @Router /obligations/open [get]
func (h *obligationHandler) listOpenObligations(c *gin.Context) {
	obligations, err := h.approvalService.ListOpenObligations(c.Request.Context())
	if err != nil {
		respondApprovalError(c, "Failed to list open obligations", err)
		return
	}

	responses := make([]dto.ObligationResponse, len(obligations))
	for i := range obligations {
		responses[i] = dto.ToObligationResponse(&obligations[i], nil)
	}
	c.JSON(http.StatusOK, responses)
}

// markPaid godoc
// @Summary Mark an obligation as paid
// @Description Transitions an open obligation to paid and removes its alert synchronously
// @Tags obligations
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Success 204
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation is not open"
// @Security BearerAuth
// @Router /obligations/{obligationID}/pay [post]
func (h *obligationHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.approvalService.MarkPaid(c.Request.Context(), obligationID, actorUserID); err != nil {
		respondApprovalError(c, "Failed to mark obligation paid", err)
		return
	}

	logger.Info("Obligation marked paid", slog.String("obligation_id", obligationID))
	c.Status(http.StatusNoContent)
}
