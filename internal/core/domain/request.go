package domain

import "time"

// RequestKind discriminates the two request variants that can own an
// obligation. A sale carries per-approval payment terms and an invoice
// number; a payment request uses the terms fixed at supplier level.
type RequestKind string

const (
	RequestKindSale    RequestKind = "sale"
	RequestKindPayment RequestKind = "payment_request"
)

// RequestStatus is the workflow state of a request envelope. The vocabulary
// is shared with the sibling supplier/client request workflows.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Request is the business envelope around an Obligation: who the
// counterparty is, which branch raised it, and the approval metadata.
// PaymentTerms and InvoiceNumber stay nil while the obligation is
// pending approval; they become fixed facts at approval time.
type Request struct {
	RequestID      string        `json:"requestID"`      // Primary Key (UUID)
	ObligationID   string        `json:"obligationID"`   // FK -> Obligation (exactly one owner)
	Kind           RequestKind   `json:"kind"`           // sale | payment_request
	Status         RequestStatus `json:"status"`         // pending | approved | rejected
	BranchID       string        `json:"branchID"`       // Branch that raised the request
	CounterpartyID string        `json:"counterpartyID"` // ClientID for sales, SupplierID for payment requests
	InvoiceDate    time.Time     `json:"invoiceDate"`    // Transaction date used for due-date computation

	PaymentTerms  *PaymentTerms `json:"paymentTerms"`  // Sales only, set at approval
	InvoiceNumber *string       `json:"invoiceNumber"` // Sales only, set at approval

	ApprovedBy      *string    `json:"approvedBy"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectedBy      *string    `json:"rejectedBy"`
	RejectedAt      *time.Time `json:"rejectedAt"`
	RejectionReason *string    `json:"rejectionReason"`
	AuditFields
}
