package dto

import (
	"time"

	"github.com/finovabs/backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest defines the data a branch manager submits for a new sale.
type CreateSaleRequest struct {
	ClientID    string          `json:"clientID" binding:"required"`
	BranchID    string          `json:"branchID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	InvoiceDate time.Time       `json:"invoiceDate" binding:"required"` // Transaction date
	Description string          `json:"description"`                    // Optional
}

// CreatePaymentRequestRequest defines the data for a new payment owed to a supplier.
type CreatePaymentRequestRequest struct {
	SupplierID  string          `json:"supplierID" binding:"required"`
	BranchID    string          `json:"branchID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	InvoiceDate time.Time       `json:"invoiceDate" binding:"required"`
	Description string          `json:"description"` // Optional
}

// ApproveSaleRequest carries the facts fixed at sale approval time.
// Both fields are mandatory: the due date cannot be computed without terms,
// and a sale cannot be opened without its invoice number.
type ApproveSaleRequest struct {
	PaymentTerms  domain.PaymentTerms `json:"paymentTerms" binding:"required,payment_terms"`
	InvoiceNumber string              `json:"invoiceNumber" binding:"required"`
}

// RejectRequest carries the mandatory reason for rejecting a pending request.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ObligationResponse defines the data returned for an obligation.
type ObligationResponse struct {
	ObligationID string                  `json:"obligationID"`
	Amount       decimal.Decimal         `json:"amount"`
	DueDate      *time.Time              `json:"dueDate,omitempty"`
	Status       domain.ObligationStatus `json:"status"`
	Description  string                  `json:"description,omitempty"`
	AlertID      *string                 `json:"alertID,omitempty"`
	Request      *RequestResponse        `json:"request,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	CreatedBy    string                  `json:"createdBy"`
}

// RequestResponse defines the data returned for a request envelope.
type RequestResponse struct {
	RequestID       string               `json:"requestID"`
	Kind            domain.RequestKind   `json:"kind"`
	Status          domain.RequestStatus `json:"status"`
	BranchID        string               `json:"branchID"`
	CounterpartyID  string               `json:"counterpartyID"`
	InvoiceDate     time.Time            `json:"invoiceDate"`
	PaymentTerms    *domain.PaymentTerms `json:"paymentTerms,omitempty"`
	InvoiceNumber   *string              `json:"invoiceNumber,omitempty"`
	ApprovedBy      *string              `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time           `json:"approvedAt,omitempty"`
	RejectedBy      *string              `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time           `json:"rejectedAt,omitempty"`
	RejectionReason *string              `json:"rejectionReason,omitempty"`
}

// ScanSummaryResponse is the manual scan trigger's response body.
type ScanSummaryResponse struct {
	TransactionsChecked int `json:"transactionsChecked"`
	AlertsCreated       int `json:"alertsCreated"`
	AlertsUpdated       int `json:"alertsUpdated"`
}

// ToObligationResponse converts a domain Obligation (and optionally its
// request) to an ObligationResponse DTO.
func ToObligationResponse(o *domain.Obligation, r *domain.Request) ObligationResponse {
	resp := ObligationResponse{
		ObligationID: o.ObligationID,
		Amount:       o.Amount,
		DueDate:      o.DueDate,
		Status:       o.Status,
		Description:  o.Description,
		AlertID:      o.AlertID,
		CreatedAt:    o.CreatedAt,
		CreatedBy:    o.CreatedBy,
	}
	if r != nil {
		resp.Request = &RequestResponse{
			RequestID:       r.RequestID,
			Kind:            r.Kind,
			Status:          r.Status,
			BranchID:        r.BranchID,
			CounterpartyID:  r.CounterpartyID,
			InvoiceDate:     r.InvoiceDate,
			PaymentTerms:    r.PaymentTerms,
			InvoiceNumber:   r.InvoiceNumber,
			ApprovedBy:      r.ApprovedBy,
			ApprovedAt:      r.ApprovedAt,
			RejectedBy:      r.RejectedBy,
			RejectedAt:      r.RejectedAt,
			RejectionReason: r.RejectionReason,
		}
	}
	return resp
}

// ToScanSummaryResponse converts a domain ScanSummary to its response DTO.
func ToScanSummaryResponse(s domain.ScanSummary) ScanSummaryResponse {
	return ScanSummaryResponse(s)
}
