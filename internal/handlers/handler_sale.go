package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finovabs/backoffice_app/internal/apperrors"
	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/dto"
	"github.com/finovabs/backoffice_app/internal/middleware"
)

// saleHandler handles HTTP requests for the sale side of the approval workflow.
type saleHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// newSaleHandler creates a new saleHandler.
func newSaleHandler(as portssvc.ApprovalSvcFacade) *saleHandler {
	return &saleHandler{approvalService: as}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newSaleHandler(approvalService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.POST("/:obligationID/approve", h.approveSale)
		sales.POST("/:obligationID/reject", h.rejectSale)
	}
}

// createSale godoc
// @Summary Create a new sale
// @Description Records a sale owed by a client; the obligation starts pending approval
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, request, err := h.approvalService.CreateSale(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondApprovalError(c, "Failed to create sale", err)
		return
	}

	logger.Info("Sale created", slog.String("obligation_id", obligation.ObligationID))
	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation, request))
}

// approveSale godoc
// @Summary Approve a pending sale
// @Description Fixes payment terms and invoice number, computes the due date and opens the obligation
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Param   approval body dto.ApproveSaleRequest true "Approval details"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation is not pending approval"
// @Security BearerAuth
// @Router /sales/{obligationID}/approve [post]
func (h *saleHandler) approveSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	var req dto.ApproveSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, err := h.approvalService.ApproveSale(c.Request.Context(), obligationID, req, approverUserID)
	if err != nil {
		respondApprovalError(c, "Failed to approve sale", err)
		return
	}

	logger.Info("Sale approved", slog.String("obligation_id", obligationID))
	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation, nil))
}

// rejectSale godoc
// @Summary Reject a pending sale
// @Description Terminally rejects a pending sale; a reason is mandatory
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Param   rejection body dto.RejectRequest true "Rejection reason"
// @Success 204
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation is not pending approval"
// @Security BearerAuth
// @Router /sales/{obligationID}/reject [post]
func (h *saleHandler) rejectSale(c *gin.Context) {
	rejectObligation(c, h.approvalService)
}

// rejectObligation is shared by the sale and payment-request reject routes:
// the rejection semantics are identical for both kinds.
func rejectObligation(c *gin.Context, approvalService portssvc.ApprovalSvcFacade) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Reject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rejecterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := approvalService.Reject(c.Request.Context(), obligationID, req, rejecterUserID); err != nil {
		respondApprovalError(c, "Failed to reject obligation", err)
		return
	}

	logger.Info("Obligation rejected", slog.String("obligation_id", obligationID))
	c.Status(http.StatusNoContent)
}

// respondApprovalError maps service errors onto HTTP statuses.
func respondApprovalError(c *gin.Context, message string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn(message, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(message, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn(message, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(message, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
