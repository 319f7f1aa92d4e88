package repositories

import (
	"context"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// AlertReader defines read operations for alert data
type AlertReader interface {
	// FindAlertByObligationID retrieves the alert linked to an obligation,
	// or apperrors.ErrNotFound if the obligation carries no alert.
	FindAlertByObligationID(ctx context.Context, obligationID string) (*domain.Alert, error)
}

// AlertWriter defines write operations for alert data.
//
// The obligation's alert reference and the alert row are two halves of one
// relation; every writer method keeps them consistent inside a single
// database transaction so a concurrent scan and payment cannot race into a
// lost update or a duplicate alert.
type AlertWriter interface {
	// CreateAlert inserts the alert and links it to its obligation. The link
	// is guarded on the obligation still being open; if the obligation was
	// paid (or otherwise left open) in the meantime, apperrors.ErrConflict
	// is returned and no alert row remains.
	CreateAlert(ctx context.Context, alert domain.Alert) error

	// UpdateAlert refreshes type, severity, daysUntilDue and triggeredAt of
	// an existing alert in place.
	UpdateAlert(ctx context.Context, alert domain.Alert) error

	// DeleteAlertByObligationID removes the alert and clears the
	// obligation's alert reference. It is idempotent: deleting an alert
	// that does not exist is a no-op.
	DeleteAlertByObligationID(ctx context.Context, obligationID string) error
}

// AlertRepositoryFacade combines all alert-related repository interfaces
type AlertRepositoryFacade interface {
	AlertReader
	AlertWriter
}
