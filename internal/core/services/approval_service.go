package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finovabs/backoffice_app/internal/apperrors"
	"github.com/finovabs/backoffice_app/internal/core/domain"
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/dto"
	"github.com/finovabs/backoffice_app/internal/middleware"
	"github.com/finovabs/backoffice_app/internal/utils/duedate"
)

var (
	ErrAmountNotPositive       = errors.New("obligation amount must be positive")
	ErrInvoiceNumberRequired   = errors.New("invoice number is required to approve a sale")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrNotASale                = errors.New("obligation is not owned by a sale request")
	ErrNotAPaymentRequest      = errors.New("obligation is not owned by a payment request")
)

// approvalService implements the approval workflow state machine:
// pending_approval -> open -> paid, or pending_approval -> rejected.
// Every transition is compare-and-set guarded at the repository so that
// two competing approvers (or a double-click) yield exactly one success.
type approvalService struct {
	obligationRepo portsrepo.ObligationRepositoryFacade
	orgRepo        portsrepo.SupplierReader
	alertSvc       portssvc.AlertSvcFacade
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(obligationRepo portsrepo.ObligationRepositoryFacade, orgRepo portsrepo.SupplierReader, alertSvc portssvc.AlertSvcFacade) portssvc.ApprovalSvcFacade {
	return &approvalService{
		obligationRepo: obligationRepo,
		orgRepo:        orgRepo,
		alertSvc:       alertSvc,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// CreateSale records a client obligation in pending_approval. The due date is
// deliberately absent: it depends on the payment terms chosen at approval.
func (s *approvalService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Obligation, *domain.Request, error) {
	return s.createObligation(ctx, domain.RequestKindSale, req.ClientID, req.BranchID, req.Amount, req.InvoiceDate, req.Description, creatorUserID)
}

// CreatePaymentRequest records a supplier obligation in pending_approval.
func (s *approvalService) CreatePaymentRequest(ctx context.Context, req dto.CreatePaymentRequestRequest, creatorUserID string) (*domain.Obligation, *domain.Request, error) {
	return s.createObligation(ctx, domain.RequestKindPayment, req.SupplierID, req.BranchID, req.Amount, req.InvoiceDate, req.Description, creatorUserID)
}

func (s *approvalService) createObligation(ctx context.Context, kind domain.RequestKind, counterpartyID, branchID string, amount decimal.Decimal, invoiceDate time.Time, description, creatorUserID string) (*domain.Obligation, *domain.Request, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	obligation := domain.Obligation{
		ObligationID: uuid.NewString(),
		Amount:       amount,
		Status:       domain.ObligationPendingApproval,
		Description:  description,
		AuditFields:  audit,
	}
	request := domain.Request{
		RequestID:      uuid.NewString(),
		ObligationID:   obligation.ObligationID,
		Kind:           kind,
		Status:         domain.RequestPending,
		BranchID:       branchID,
		CounterpartyID: counterpartyID,
		InvoiceDate:    duedate.Midnight(invoiceDate),
		AuditFields:    audit,
	}

	if err := s.obligationRepo.SaveObligationWithRequest(ctx, obligation, request); err != nil {
		logger.Error("Failed to save obligation", slog.String("obligation_id", obligation.ObligationID), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to save obligation: %w", err)
	}

	logger.Info("Obligation created",
		slog.String("obligation_id", obligation.ObligationID),
		slog.String("kind", string(kind)),
		slog.String("amount", amount.String()),
	)
	return &obligation, &request, nil
}

// ApproveSale opens a sale obligation. Payment terms and invoice number become
// fixed facts here and are never altered afterwards.
func (s *approvalService) ApproveSale(ctx context.Context, obligationID string, req dto.ApproveSaleRequest, approverUserID string) (*domain.Obligation, error) {
	if strings.TrimSpace(req.InvoiceNumber) == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvoiceNumberRequired)
	}
	if req.PaymentTerms == "" {
		return nil, fmt.Errorf("%w: payment terms are required to approve a sale", apperrors.ErrValidation)
	}

	return s.approve(ctx, obligationID, approverUserID, func(request *domain.Request) (domain.PaymentTerms, error) {
		if request.Kind != domain.RequestKindSale {
			return "", fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNotASale)
		}
		return req.PaymentTerms, nil
	}, func(request *domain.Request) {
		terms := req.PaymentTerms
		invoice := req.InvoiceNumber
		request.PaymentTerms = &terms
		request.InvoiceNumber = &invoice
	})
}

// ApprovePaymentRequest opens a supplier obligation. There is no per-approval
// terms negotiation: the supplier's fixed terms drive the due date.
func (s *approvalService) ApprovePaymentRequest(ctx context.Context, obligationID string, approverUserID string) (*domain.Obligation, error) {
	return s.approve(ctx, obligationID, approverUserID, func(request *domain.Request) (domain.PaymentTerms, error) {
		if request.Kind != domain.RequestKindPayment {
			return "", fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNotAPaymentRequest)
		}
		supplier, err := s.orgRepo.FindSupplierByID(ctx, request.CounterpartyID)
		if err != nil {
			return "", fmt.Errorf("failed to resolve supplier %s: %w", request.CounterpartyID, err)
		}
		return supplier.PaymentTerms, nil
	}, func(request *domain.Request) {})
}

// approve holds the shared approval path. resolveTerms yields the payment
// terms for the due-date computation; decorate stamps kind-specific fields
// onto the request before it is persisted.
func (s *approvalService) approve(ctx context.Context, obligationID, approverUserID string, resolveTerms func(*domain.Request) (domain.PaymentTerms, error), decorate func(*domain.Request)) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	obligation, request, err := s.GetObligation(ctx, obligationID)
	if err != nil {
		return nil, err
	}

	// Early guard for a friendly error; the repository re-checks the status
	// inside the same atomic unit that writes the new one.
	if obligation.Status != domain.ObligationPendingApproval {
		return nil, fmt.Errorf("%w: obligation %s is %s, expected %s", apperrors.ErrConflict, obligationID, obligation.Status, domain.ObligationPendingApproval)
	}

	terms, err := resolveTerms(request)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dueDate := duedate.ComputeDueDate(request.InvoiceDate, terms)

	obligation.Status = domain.ObligationOpen
	obligation.DueDate = &dueDate
	obligation.LastUpdatedAt = now
	obligation.LastUpdatedBy = approverUserID

	request.Status = domain.RequestApproved
	request.ApprovedBy = &approverUserID
	request.ApprovedAt = &now
	request.LastUpdatedAt = now
	request.LastUpdatedBy = approverUserID
	decorate(request)

	if err := s.obligationRepo.RecordApproval(ctx, *obligation, *request); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent approval detected", slog.String("obligation_id", obligationID))
		}
		return nil, err
	}

	logger.Info("Obligation approved",
		slog.String("obligation_id", obligationID),
		slog.String("kind", string(request.Kind)),
		slog.String("payment_terms", string(terms)),
		slog.String("due_date", dueDate.Format("2006-01-02")),
	)
	return obligation, nil
}

// Reject terminally rejects a pending obligation. Pending obligations never
// carry an alert (only open ones are scanned), so there is nothing to clean up.
func (s *approvalService) Reject(ctx context.Context, obligationID string, req dto.RejectRequest, rejecterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrRejectionReasonRequired)
	}

	obligation, request, err := s.GetObligation(ctx, obligationID)
	if err != nil {
		return err
	}
	if obligation.Status != domain.ObligationPendingApproval {
		return fmt.Errorf("%w: obligation %s is %s, expected %s", apperrors.ErrConflict, obligationID, obligation.Status, domain.ObligationPendingApproval)
	}

	now := time.Now().UTC()
	reason := req.Reason

	obligation.Status = domain.ObligationRejected
	obligation.LastUpdatedAt = now
	obligation.LastUpdatedBy = rejecterUserID

	request.Status = domain.RequestRejected
	request.RejectedBy = &rejecterUserID
	request.RejectedAt = &now
	request.RejectionReason = &reason
	request.LastUpdatedAt = now
	request.LastUpdatedBy = rejecterUserID

	if err := s.obligationRepo.RecordRejection(ctx, *obligation, *request); err != nil {
		return err
	}

	logger.Info("Obligation rejected", slog.String("obligation_id", obligationID), slog.String("reason", reason))
	return nil
}

// MarkPaid reacts to an external payment. The alert removal happens
// synchronously as part of the same transition, never deferred to the next
// scheduled scan.
func (s *approvalService) MarkPaid(ctx context.Context, obligationID string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.obligationRepo.TransitionStatus(ctx, obligationID, domain.ObligationOpen, domain.ObligationPaid, actorUserID, now); err != nil {
		return err
	}

	if err := s.alertSvc.RemoveAlertForObligation(ctx, obligationID); err != nil {
		// The obligation is already paid; surface the orphaned alert rather
		// than hiding it, so the operator can reconcile.
		logger.Error("Failed to remove alert for paid obligation", slog.String("obligation_id", obligationID), slog.String("error", err.Error()))
		return fmt.Errorf("obligation %s marked paid but alert removal failed: %w", obligationID, err)
	}

	logger.Info("Obligation marked paid", slog.String("obligation_id", obligationID))
	return nil
}

// GetObligation returns an obligation with its owning request.
func (s *approvalService) GetObligation(ctx context.Context, obligationID string) (*domain.Obligation, *domain.Request, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, nil, err
	}
	request, err := s.obligationRepo.FindRequestByObligationID(ctx, obligationID)
	if err != nil {
		return nil, nil, err
	}
	return obligation, request, nil
}

// ListOpenObligations returns every obligation currently open.
func (s *approvalService) ListOpenObligations(ctx context.Context) ([]domain.Obligation, error) {
	return s.obligationRepo.ListOpenObligations(ctx)
}
