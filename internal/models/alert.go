package models

import "time"

// Alert mirrors the alerts table. obligation_id carries a unique constraint
// so the database enforces the one-alert-per-obligation rule.
type Alert struct {
	AlertID      string    `json:"alertID"` // Primary Key (UUID)
	ObligationID string    `json:"obligationID"`
	Type         string    `json:"type"`
	Severity     string    `json:"severity"`
	DaysUntilDue int       `json:"daysUntilDue"`
	TriggeredAt  time.Time `json:"triggeredAt"`
	AuditFields
}

// Notification mirrors the notifications table.
type Notification struct {
	NotificationID string    `json:"notificationID"` // Primary Key (UUID)
	UserID         string    `json:"userID"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Category       string    `json:"category"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
