package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationStatus is the lifecycle state of an obligation. Values are stored
// verbatim and shared with other consumers of the database; never rename them.
type ObligationStatus string

const (
	ObligationPendingApproval ObligationStatus = "pending_approval"
	ObligationOpen            ObligationStatus = "open"
	ObligationPaid            ObligationStatus = "paid"
	ObligationRejected        ObligationStatus = "rejected"

	// Legacy states reachable only through external paths. This core never
	// writes them but must tolerate reading them.
	ObligationFrozen  ObligationStatus = "frozen"
	ObligationDeleted ObligationStatus = "deleted"
)

// Obligation is a single owed amount moving in either direction: a client owes
// the organization (sale) or the organization owes a supplier (payment request).
// The direction is implied by the kind of the owning Request.
type Obligation struct {
	ObligationID string           `json:"obligationID"` // Primary Key (UUID)
	Amount       decimal.Decimal  `json:"amount"`       // Always positive
	DueDate      *time.Time       `json:"dueDate"`      // Set at approval time, immutable afterwards
	Status       ObligationStatus `json:"status"`
	Description  string           `json:"description"` // Nullable
	AlertID      *string          `json:"alertID"`     // At most one alert per obligation
	AuditFields
}
