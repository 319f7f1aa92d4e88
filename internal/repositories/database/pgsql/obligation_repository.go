package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finovabs/backoffice_app/internal/apperrors"
	"github.com/finovabs/backoffice_app/internal/core/domain"
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	"github.com/finovabs/backoffice_app/internal/models"
	"github.com/finovabs/backoffice_app/internal/utils/mapping"
)

// PgxObligationRepository persists obligations and their request envelopes.
//
// All status transitions are compare-and-set: the UPDATE carries the expected
// current status in its WHERE clause, so a stale writer affects zero rows and
// gets apperrors.ErrConflict instead of silently overwriting.
type PgxObligationRepository struct {
	BaseRepository
}

// newPgxObligationRepository creates a new repository for obligation data.
func newPgxObligationRepository(pool *pgxpool.Pool) *PgxObligationRepository {
	return &PgxObligationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ObligationRepositoryWithTx = (*PgxObligationRepository)(nil)

const obligationColumns = `obligation_id, amount, due_date, status, description, alert_id, created_at, created_by, last_updated_at, last_updated_by`

const requestColumns = `request_id, obligation_id, kind, status, branch_id, counterparty_id, invoice_date, payment_terms, invoice_number, approved_by, approved_at, rejected_by, rejected_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

func scanObligation(row pgx.Row) (*models.Obligation, error) {
	var m models.Obligation
	err := row.Scan(
		&m.ObligationID,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.Description,
		&m.AlertID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveObligationWithRequest inserts a new obligation and its owning request
// in one database transaction.
func (r *PgxObligationRepository) SaveObligationWithRequest(ctx context.Context, obligation domain.Obligation, request domain.Request) error {
	o := mapping.ToModelObligation(obligation)
	q := mapping.ToModelRequest(request)

	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	obligationQuery := `
		INSERT INTO obligations (` + obligationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, obligationQuery,
		o.ObligationID,
		o.Amount,
		o.DueDate,
		o.Status,
		o.Description,
		o.AlertID,
		o.CreatedAt,
		o.CreatedBy,
		o.LastUpdatedAt,
		o.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert obligation %s: %w", o.ObligationID, err)
	}

	requestQuery := `
		INSERT INTO requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, requestQuery,
		q.RequestID,
		q.ObligationID,
		q.Kind,
		q.Status,
		q.BranchID,
		q.CounterpartyID,
		q.InvoiceDate,
		q.PaymentTerms,
		q.InvoiceNumber,
		q.ApprovedBy,
		q.ApprovedAt,
		q.RejectedBy,
		q.RejectedAt,
		q.RejectionReason,
		q.CreatedAt,
		q.CreatedBy,
		q.LastUpdatedAt,
		q.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request for obligation %s: %w", o.ObligationID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit obligation %s: %w", o.ObligationID, err)
	}
	return nil
}

// FindObligationByID retrieves an obligation by its ID.
func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE obligation_id = $1;`

	m, err := scanObligation(r.Pool.QueryRow(ctx, query, obligationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find obligation by ID %s: %w", obligationID, err)
	}

	obligation := mapping.ToDomainObligation(*m)
	return &obligation, nil
}

// FindRequestByObligationID retrieves the request envelope owning an obligation.
func (r *PgxObligationRepository) FindRequestByObligationID(ctx context.Context, obligationID string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE obligation_id = $1;`

	var m models.Request
	err := r.Pool.QueryRow(ctx, query, obligationID).Scan(
		&m.RequestID,
		&m.ObligationID,
		&m.Kind,
		&m.Status,
		&m.BranchID,
		&m.CounterpartyID,
		&m.InvoiceDate,
		&m.PaymentTerms,
		&m.InvoiceNumber,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectedBy,
		&m.RejectedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request for obligation %s: %w", obligationID, err)
	}

	request := mapping.ToDomainRequest(m)
	return &request, nil
}

// ListOpenObligations retrieves every obligation in the open status.
func (r *PgxObligationRepository) ListOpenObligations(ctx context.Context) ([]domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE status = $1 ORDER BY due_date, obligation_id;`

	rows, err := r.Pool.Query(ctx, query, string(domain.ObligationOpen))
	if err != nil {
		return nil, fmt.Errorf("failed to query open obligations: %w", err)
	}
	defer rows.Close()

	obligations := []domain.Obligation{}
	for rows.Next() {
		m, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation row: %w", err)
		}
		obligations = append(obligations, mapping.ToDomainObligation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open obligations: %w", err)
	}
	return obligations, nil
}

// TransitionStatus moves an obligation between statuses with a CAS guard.
func (r *PgxObligationRepository) TransitionStatus(ctx context.Context, obligationID string, expected, next domain.ObligationStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE obligations
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE obligation_id = $4 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, string(next), updatedAt, updatedBy, obligationID, string(expected))
	if err != nil {
		return fmt.Errorf("failed to transition obligation %s to %s: %w", obligationID, next, err)
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrNotFound(ctx, obligationID, expected)
	}
	return nil
}

// RecordApproval stamps the due date, opens the obligation and writes the
// approval metadata onto the request, all within one transaction. The
// obligation UPDATE carries the pending_approval guard.
func (r *PgxObligationRepository) RecordApproval(ctx context.Context, obligation domain.Obligation, request domain.Request) error {
	o := mapping.ToModelObligation(obligation)
	q := mapping.ToModelRequest(request)

	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	obligationQuery := `
		UPDATE obligations
		SET status = $1, due_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE obligation_id = $5 AND status = $6;
	`
	tag, err := tx.Exec(ctx, obligationQuery,
		o.Status,
		o.DueDate,
		o.LastUpdatedAt,
		o.LastUpdatedBy,
		o.ObligationID,
		string(domain.ObligationPendingApproval),
	)
	if err != nil {
		return fmt.Errorf("failed to approve obligation %s: %w", o.ObligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrNotFound(ctx, o.ObligationID, domain.ObligationPendingApproval)
	}

	requestQuery := `
		UPDATE requests
		SET status = $1, payment_terms = $2, invoice_number = $3, approved_by = $4, approved_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE request_id = $8;
	`
	_, err = tx.Exec(ctx, requestQuery,
		q.Status,
		q.PaymentTerms,
		q.InvoiceNumber,
		q.ApprovedBy,
		q.ApprovedAt,
		q.LastUpdatedAt,
		q.LastUpdatedBy,
		q.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to record approval on request %s: %w", q.RequestID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit approval of obligation %s: %w", o.ObligationID, err)
	}
	return nil
}

// RecordRejection rejects the obligation and writes the rejection metadata
// onto the request, within one transaction and under the pending guard.
func (r *PgxObligationRepository) RecordRejection(ctx context.Context, obligation domain.Obligation, request domain.Request) error {
	o := mapping.ToModelObligation(obligation)
	q := mapping.ToModelRequest(request)

	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	obligationQuery := `
		UPDATE obligations
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE obligation_id = $4 AND status = $5;
	`
	tag, err := tx.Exec(ctx, obligationQuery,
		o.Status,
		o.LastUpdatedAt,
		o.LastUpdatedBy,
		o.ObligationID,
		string(domain.ObligationPendingApproval),
	)
	if err != nil {
		return fmt.Errorf("failed to reject obligation %s: %w", o.ObligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrNotFound(ctx, o.ObligationID, domain.ObligationPendingApproval)
	}

	requestQuery := `
		UPDATE requests
		SET status = $1, rejected_by = $2, rejected_at = $3, rejection_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE request_id = $7;
	`
	_, err = tx.Exec(ctx, requestQuery,
		q.Status,
		q.RejectedBy,
		q.RejectedAt,
		q.RejectionReason,
		q.LastUpdatedAt,
		q.LastUpdatedBy,
		q.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to record rejection on request %s: %w", q.RequestID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rejection of obligation %s: %w", o.ObligationID, err)
	}
	return nil
}

// conflictOrNotFound distinguishes a CAS miss from a missing row after an
// UPDATE affected zero rows.
func (r *PgxObligationRepository) conflictOrNotFound(ctx context.Context, obligationID string, expected domain.ObligationStatus) error {
	var current string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM obligations WHERE obligation_id = $1;`, obligationID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read status of obligation %s: %w", obligationID, err)
	}
	return fmt.Errorf("%w: obligation %s is %s, expected %s", apperrors.ErrConflict, obligationID, current, expected)
}
