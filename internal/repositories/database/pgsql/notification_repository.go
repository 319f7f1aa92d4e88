package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finovabs/backoffice_app/internal/apperrors"
	"github.com/finovabs/backoffice_app/internal/core/domain"
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	"github.com/finovabs/backoffice_app/internal/models"
	"github.com/finovabs/backoffice_app/internal/utils/mapping"
)

// PgxNotificationRepository persists the append-only notification log.
type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for notification data.
func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

// SaveNotification appends a notification.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)

	query := `
		INSERT INTO notifications (notification_id, user_id, title, message, category, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.NotificationID,
		m.UserID,
		m.Title,
		m.Message,
		m.Category,
		m.IsRead,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification %s: %w", m.NotificationID, err)
	}
	return nil
}

// ListNotificationsByUser retrieves a page of a user's notifications, newest first.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, title, message, category, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, notification_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		if err := rows.Scan(
			&m.NotificationID,
			&m.UserID,
			&m.Title,
			&m.Message,
			&m.Category,
			&m.IsRead,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, mapping.ToDomainNotification(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flips the read flag on a user's notification.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1 AND user_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
