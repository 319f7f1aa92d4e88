package services

import (
	"context"

	"github.com/finovabs/backoffice_app/internal/core/domain"
	"github.com/finovabs/backoffice_app/internal/dto"
)

// ApprovalSvcFacade exposes the approval workflow: the only way obligations
// are created and moved between statuses.
type ApprovalSvcFacade interface {
	// CreateSale records a sale owed by a client. The obligation starts in
	// pending_approval with no due date; terms are chosen at approval time.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Obligation, *domain.Request, error)

	// CreatePaymentRequest records a payment owed to a supplier. The
	// obligation starts in pending_approval; the supplier's fixed payment
	// terms are applied at approval time.
	CreatePaymentRequest(ctx context.Context, req dto.CreatePaymentRequestRequest, creatorUserID string) (*domain.Obligation, *domain.Request, error)

	// ApproveSale fixes the payment terms and invoice number, computes the
	// due date and opens the obligation. Fails with apperrors.ErrConflict
	// unless the obligation is currently pending_approval.
	ApproveSale(ctx context.Context, obligationID string, req dto.ApproveSaleRequest, approverUserID string) (*domain.Obligation, error)

	// ApprovePaymentRequest opens a supplier obligation using the supplier's
	// fixed payment terms. Same guard as ApproveSale.
	ApprovePaymentRequest(ctx context.Context, obligationID string, approverUserID string) (*domain.Obligation, error)

	// Reject terminally rejects a pending obligation. A non-empty reason is
	// required.
	Reject(ctx context.Context, obligationID string, req dto.RejectRequest, rejecterUserID string) error

	// MarkPaid reacts to an external payment: moves the obligation from open
	// to paid and removes its alert synchronously, in the same transition.
	MarkPaid(ctx context.Context, obligationID string, actorUserID string) error

	// GetObligation returns an obligation together with its request envelope.
	GetObligation(ctx context.Context, obligationID string) (*domain.Obligation, *domain.Request, error)

	// ListOpenObligations returns every obligation currently open.
	ListOpenObligations(ctx context.Context) ([]domain.Obligation, error)
}
