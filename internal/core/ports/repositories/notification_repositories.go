package repositories

import (
	"context"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// NotificationReader defines read operations for notification data
type NotificationReader interface {
	// ListNotificationsByUser retrieves a page of notifications for a user,
	// newest first.
	ListNotificationsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notification data.
// Notifications are append-only; the read flag is the only mutable field.
type NotificationWriter interface {
	// SaveNotification appends a notification to the log.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkNotificationRead flips the read flag of one of the user's
	// notifications. Returns apperrors.ErrNotFound if the notification does
	// not exist or belongs to another user.
	MarkNotificationRead(ctx context.Context, notificationID string, userID string) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
