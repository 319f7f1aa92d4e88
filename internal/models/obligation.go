package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation mirrors the obligations table.
type Obligation struct {
	ObligationID string          `json:"obligationID"` // Primary Key (UUID)
	Amount       decimal.Decimal `json:"amount"`
	DueDate      *time.Time      `json:"dueDate"` // Nullable until approval
	Status       string          `json:"status"`
	Description  string          `json:"description"`
	AlertID      *string         `json:"alertID"` // Nullable FK -> alerts.alert_id
	AuditFields
}

// Request mirrors the requests table.
type Request struct {
	RequestID       string     `json:"requestID"` // Primary Key (UUID)
	ObligationID    string     `json:"obligationID"`
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	BranchID        string     `json:"branchID"`
	CounterpartyID  string     `json:"counterpartyID"`
	InvoiceDate     time.Time  `json:"invoiceDate"`
	PaymentTerms    *string    `json:"paymentTerms"`
	InvoiceNumber   *string    `json:"invoiceNumber"`
	ApprovedBy      *string    `json:"approvedBy"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectedBy      *string    `json:"rejectedBy"`
	RejectedAt      *time.Time `json:"rejectedAt"`
	RejectionReason *string    `json:"rejectionReason"`
	AuditFields
}
