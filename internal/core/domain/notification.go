package domain

import "time"

// Notification is a durable, user-facing message produced from an alert
// event. Notifications outlive the alert that produced them: they are an
// append-only audit trail of what was communicated and when, immutable once
// created except for the read flag.
type Notification struct {
	NotificationID string    `json:"notificationID"` // Primary Key (UUID)
	UserID         string    `json:"userID"`         // Recipient
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Category       string    `json:"category"` // Alert type that produced it
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
