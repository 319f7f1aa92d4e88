package repositories

import (
	"context"
	"time"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// ObligationReader defines read operations for obligation data
type ObligationReader interface {
	// FindObligationByID retrieves a specific obligation by its unique identifier.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// FindRequestByObligationID retrieves the request envelope owning the obligation.
	FindRequestByObligationID(ctx context.Context, obligationID string) (*domain.Request, error)

	// ListOpenObligations retrieves every obligation currently in the open
	// status. Obligations in any other status are invisible to the monitor.
	ListOpenObligations(ctx context.Context) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligation data.
//
// Every status-changing method takes the status the caller last observed and
// applies it as a compare-and-set guard: the write succeeds only if the row
// still carries that status, otherwise apperrors.ErrConflict is returned.
// This is what makes approval and rejection single-shot under concurrent
// double-clicks or competing approvers.
type ObligationWriter interface {
	// SaveObligationWithRequest persists a new obligation and its owning
	// request atomically. An obligation never exists without its request.
	SaveObligationWithRequest(ctx context.Context, obligation domain.Obligation, request domain.Request) error

	// TransitionStatus moves the obligation from the expected status to the
	// new one. Returns apperrors.ErrConflict if the current status differs
	// from expected, apperrors.ErrNotFound if the obligation does not exist.
	TransitionStatus(ctx context.Context, obligationID string, expected, next domain.ObligationStatus, updatedBy string, updatedAt time.Time) error

	// RecordApproval atomically transitions the obligation from
	// pending_approval to open, stamps its due date, and writes the approval
	// metadata onto the request. Conflict semantics as in TransitionStatus.
	RecordApproval(ctx context.Context, obligation domain.Obligation, request domain.Request) error

	// RecordRejection atomically transitions the obligation from
	// pending_approval to rejected and writes the rejection metadata onto
	// the request. Conflict semantics as in TransitionStatus.
	RecordRejection(ctx context.Context, obligation domain.Obligation, request domain.Request) error
}

// ObligationRepositoryFacade combines all obligation-related repository interfaces
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
}

// ObligationRepositoryWithTx extends ObligationRepositoryFacade with transaction capabilities
type ObligationRepositoryWithTx interface {
	ObligationRepositoryFacade
	TransactionManager
}
