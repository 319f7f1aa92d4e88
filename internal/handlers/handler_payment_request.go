package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/dto"
	"github.com/finovabs/backoffice_app/internal/middleware"
)

// paymentRequestHandler handles HTTP requests for the supplier side of the
// approval workflow.
type paymentRequestHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// newPaymentRequestHandler creates a new paymentRequestHandler.
func newPaymentRequestHandler(as portssvc.ApprovalSvcFacade) *paymentRequestHandler {
	return &paymentRequestHandler{approvalService: as}
}

// registerPaymentRequestRoutes registers routes related to payment requests.
func registerPaymentRequestRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newPaymentRequestHandler(approvalService)

	paymentRequests := rg.Group("/payment-requests")
	{
		paymentRequests.POST("", h.createPaymentRequest)
		paymentRequests.POST("/:obligationID/approve", h.approvePaymentRequest)
		paymentRequests.POST("/:obligationID/reject", h.rejectPaymentRequest)
	}
}

// createPaymentRequest godoc
// @Summary Create a new payment request
// @Description Records a payment owed to a supplier; the obligation starts pending approval
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   paymentRequest body dto.CreatePaymentRequestRequest true "Payment request details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /payment-requests [post]
func (h *paymentRequestHandler) createPaymentRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePaymentRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, request, err := h.approvalService.CreatePaymentRequest(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondApprovalError(c, "Failed to create payment request", err)
		return
	}

	logger.Info("Payment request created", slog.String("obligation_id", obligation.ObligationID))
	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation, request))
}

// approvePaymentRequest godoc
// @Summary Approve a pending payment request
// @Description Opens the obligation using the supplier's fixed payment terms
// @Tags payment-requests
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation is not pending approval"
// @Security BearerAuth
// @Router /payment-requests/{obligationID}/approve [post]
func (h *paymentRequestHandler) approvePaymentRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, err := h.approvalService.ApprovePaymentRequest(c.Request.Context(), obligationID, approverUserID)
	if err != nil {
		respondApprovalError(c, "Failed to approve payment request", err)
		return
	}

	logger.Info("Payment request approved", slog.String("obligation_id", obligationID))
	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation, nil))
}

// rejectPaymentRequest godoc
// @Summary Reject a pending payment request
// @Description Terminally rejects a pending payment request; a reason is mandatory
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Param   rejection body dto.RejectRequest true "Rejection reason"
// @Success 204
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Obligation is not pending approval"
// @Security BearerAuth
// @Router /payment-requests/{obligationID}/reject [post]
func (h *paymentRequestHandler) rejectPaymentRequest(c *gin.Context) {
	rejectObligation(c, h.approvalService)
}
