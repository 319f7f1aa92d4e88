package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finovabs/backoffice_app/internal/apperrors"
	"github.com/finovabs/backoffice_app/internal/core/domain"
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	"github.com/finovabs/backoffice_app/internal/models"
	"github.com/finovabs/backoffice_app/internal/utils/mapping"
)

// PgxAlertRepository persists alerts and keeps the obligation's alert
// reference consistent with the alert rows. The alerts table carries a
// unique constraint on obligation_id, so even a racing double-insert cannot
// produce two alerts for one obligation.
type PgxAlertRepository struct {
	BaseRepository
}

// newPgxAlertRepository creates a new repository for alert data.
func newPgxAlertRepository(pool *pgxpool.Pool) *PgxAlertRepository {
	return &PgxAlertRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AlertRepositoryFacade = (*PgxAlertRepository)(nil)

const alertColumns = `alert_id, obligation_id, type, severity, days_until_due, triggered_at, created_at, created_by, last_updated_at, last_updated_by`

// FindAlertByObligationID retrieves the alert linked to an obligation.
func (r *PgxAlertRepository) FindAlertByObligationID(ctx context.Context, obligationID string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE obligation_id = $1;`

	var m models.Alert
	err := r.Pool.QueryRow(ctx, query, obligationID).Scan(
		&m.AlertID,
		&m.ObligationID,
		&m.Type,
		&m.Severity,
		&m.DaysUntilDue,
		&m.TriggeredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find alert for obligation %s: %w", obligationID, err)
	}

	alert := mapping.ToDomainAlert(m)
	return &alert, nil
}

// CreateAlert inserts the alert row and links it to its obligation in one
// transaction. The link UPDATE is guarded on the obligation still being open;
// losing that race rolls the insert back and returns apperrors.ErrConflict.
func (r *PgxAlertRepository) CreateAlert(ctx context.Context, alert domain.Alert) error {
	m := mapping.ToModelAlert(alert)

	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	insertQuery := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.AlertID,
		m.ObligationID,
		m.Type,
		m.Severity,
		m.DaysUntilDue,
		m.TriggeredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert for obligation %s: %w", m.ObligationID, err)
	}

	linkQuery := `
		UPDATE obligations
		SET alert_id = $1
		WHERE obligation_id = $2 AND status = $3;
	`
	tag, err := tx.Exec(ctx, linkQuery, m.AlertID, m.ObligationID, string(domain.ObligationOpen))
	if err != nil {
		return fmt.Errorf("failed to link alert to obligation %s: %w", m.ObligationID, err)
	}
	if tag.RowsAffected() == 0 {
		// Obligation left the open status since the scan read it.
		return fmt.Errorf("%w: obligation %s is no longer open", apperrors.ErrConflict, m.ObligationID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit alert for obligation %s: %w", m.ObligationID, err)
	}
	return nil
}

// UpdateAlert refreshes an existing alert row in place.
func (r *PgxAlertRepository) UpdateAlert(ctx context.Context, alert domain.Alert) error {
	m := mapping.ToModelAlert(alert)

	query := `
		UPDATE alerts
		SET type = $1, severity = $2, days_until_due = $3, triggered_at = $4, last_updated_at = $5
		WHERE alert_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Type,
		m.Severity,
		m.DaysUntilDue,
		m.TriggeredAt,
		m.LastUpdatedAt,
		m.AlertID,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert %s: %w", m.AlertID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAlertByObligationID removes the alert and clears the obligation's
// reference in one transaction. Idempotent: no alert means nothing to do.
func (r *PgxAlertRepository) DeleteAlertByObligationID(ctx context.Context, obligationID string) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `UPDATE obligations SET alert_id = NULL WHERE obligation_id = $1;`, obligationID); err != nil {
		return fmt.Errorf("failed to clear alert reference on obligation %s: %w", obligationID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM alerts WHERE obligation_id = $1;`, obligationID); err != nil {
		return fmt.Errorf("failed to delete alert for obligation %s: %w", obligationID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit alert removal for obligation %s: %w", obligationID, err)
	}
	return nil
}
