package services

import (
	"context"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// NotifierSvcFacade renders alert events into durable user-facing messages
// and serves the notification inbox.
type NotifierSvcFacade interface {
	// NotifyAlert renders a title and message for the alert event and
	// appends a notification for the responsible user. Called on every
	// trigger day, even when the alert row was merely updated: the
	// notification log records each time something was communicated.
	NotifyAlert(ctx context.Context, obligation domain.Obligation, alert domain.Alert) error

	// ListNotifications returns a page of the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error)

	// MarkRead flips the read flag on a notification owned by the user.
	MarkRead(ctx context.Context, notificationID string, userID string) error
}
