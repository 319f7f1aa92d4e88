package dto

import (
	"time"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Category       string    `json:"category"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain Notification to its response DTO.
func ToNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Message:        n.Message,
		Category:       n.Category,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of domain Notifications.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = ToNotificationResponse(n)
	}
	return responses
}
